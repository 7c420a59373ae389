package cli

import (
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/lexintel/caselaw-intelligence/internal/application/parse"
)

func newListCmd() *cobra.Command {
	var (
		csvName string
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the stored corpus, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := buildApp(cmd, 0)
			if err != nil {
				return err
			}
			defer app.Close()
			return runList(cmd, app.Service, csvName, asJSON)
		},
	}

	cmd.Flags().StringVar(&csvName, "csv", "", "export a spreadsheet file with the given name instead of printing")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print summaries as JSON")
	return cmd
}

func runList(cmd *cobra.Command, svc *parse.Service, csvName string, asJSON bool) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if csvName != "" {
		path, err := svc.ExportCSV(ctx, csvName)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", path)
		return nil
	}

	summaries, err := svc.ListSummaries(ctx)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd, summaries)
	}
	if len(summaries) == 0 {
		fmt.Fprintln(out, "the corpus is empty")
		return nil
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"#", "Case", "Date", "Court", "URL"})
	for i, s := range summaries {
		table.Append([]string{
			strconv.Itoa(i + 1),
			truncate(s.Citation, 60),
			s.Date,
			s.Court.ShortName,
			s.URL,
		})
	}
	table.Render()
	fmt.Fprintf(out, "\n%d cases\n", len(summaries))
	return nil
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
