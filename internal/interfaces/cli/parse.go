package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lexintel/caselaw-intelligence/internal/application/parse"
)

func newParseCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "parse <case-id-or-url>",
		Short: "Download and parse a single case-law page",
		Long: "Download the case-law page for a case id or scholar URL, parse the\n" +
			"opinion into a structured record, and store it in the corpus.  Patent\n" +
			"claim data is gathered for the patents in suit unless disabled in the\n" +
			"parse configuration.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := buildApp(cmd, 0)
			if err != nil {
				return err
			}
			defer app.Close()
			return runParse(cmd, app.Service, args[0], asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print the parsed record as JSON")
	return cmd
}

func runParse(cmd *cobra.Command, svc *parse.Service, urlOrID string, asJSON bool) error {
	record, err := svc.ParseCase(cmd.Context(), urlOrID)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd, record)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", color.GreenString("parsed"), record.ID)
	fmt.Fprintf(out, "  %s\n", record.Citation)
	fmt.Fprintf(out, "  %s, %s\n", record.Court.FullName, record.Date)
	if len(record.PatentsInSuit) > 0 {
		fmt.Fprintf(out, "  patents in suit: %d\n", len(record.PatentsInSuit))
	}
	if len(record.CitesTo) > 0 {
		fmt.Fprintf(out, "  cited cases: %d\n", len(record.CitesTo))
	}
	return nil
}
