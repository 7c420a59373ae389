package cli

import (
	"fmt"
	"sort"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/lexintel/caselaw-intelligence/internal/application/parse"
)

func newCitesCmd() *cobra.Command {
	var (
		blue   bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "cites",
		Short: "Bundle the citation graph of the stored corpus",
		Long: "Group the citations found across all stored opinions by cited case and\n" +
			"pick the best citation form for each.  With --blue, citations are\n" +
			"confirmed against the long bluebook format and tokenized into their\n" +
			"name, reporter, court, and date parts; entries that cannot be confirmed\n" +
			"are flagged for manual review.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := buildApp(cmd, 0)
			if err != nil {
				return err
			}
			defer app.Close()
			return runCites(cmd, app.Service, blue, asJSON)
		},
	}

	cmd.Flags().BoolVar(&blue, "blue", false, "confirm and tokenize long bluebook citations")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the bundle as JSON")
	return cmd
}

func runCites(cmd *cobra.Command, svc *parse.Service, blue, asJSON bool) error {
	bundle, err := svc.BundleCites(cmd.Context(), blue)
	if err != nil {
		return err
	}
	if asJSON {
		return printJSON(cmd, bundle)
	}

	var review []string
	for id, entry := range bundle {
		if entry.NeedsReview {
			review = append(review, id)
		}
	}
	sort.Strings(review)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "bundled citations for %d cases\n", len(bundle))

	if len(review) > 0 {
		fmt.Fprintf(out, "%s %d entries need manual review:\n",
			color.YellowString("warning:"), len(review))
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"Case ID", "Citation"})
		for _, id := range review {
			table.Append([]string{id, truncate(bundle[id].Citation, 70)})
		}
		table.Render()
	}
	return nil
}
