package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lexintel/caselaw-intelligence/internal/application/parse"
)

func newDropCmd() *cobra.Command {
	var opts parse.DropOptions

	cmd := &cobra.Command{
		Use:   "drop",
		Short: "Find and remove unpublished duplicate cases",
		Long: "Scan the corpus for unpublished records that duplicate another case by\n" +
			"name or docket number on the same date and court.  Without --remove the\n" +
			"duplicates are only reported.  Published records are never dropped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := buildApp(cmd, 0)
			if err != nil {
				return err
			}
			defer app.Close()
			return runDrop(cmd, app.Service, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Remove, "remove", false, "delete the matched records")
	cmd.Flags().BoolVar(&opts.RemovePatents, "remove-patents", false, "also delete cached patent data of removed cases")
	cmd.Flags().StringSliceVar(&opts.External, "external", nil, "extra case ids to remove regardless of the scan")
	return cmd
}

func runDrop(cmd *cobra.Command, svc *parse.Service, opts parse.DropOptions) error {
	dropped, err := svc.DropRedundant(cmd.Context(), opts)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(dropped) == 0 && len(opts.External) == 0 {
		fmt.Fprintln(out, "no redundant cases found")
		return nil
	}

	verb := "would drop"
	if opts.Remove {
		verb = color.RedString("dropped")
	}
	for _, id := range dropped {
		fmt.Fprintf(out, "%s %s\n", verb, id)
	}
	for _, id := range opts.External {
		if opts.Remove {
			fmt.Fprintf(out, "%s %s (external)\n", verb, id)
		}
	}
	fmt.Fprintf(out, "\n%d redundant cases\n", len(dropped))
	return nil
}
