package cli

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/lexintel/caselaw-intelligence/internal/application/parse"
	"github.com/lexintel/caselaw-intelligence/pkg/errors"
)

func newBatchCmd() *cobra.Command {
	var (
		file        string
		politeness  time.Duration
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "batch [case-id ...]",
		Short: "Download and parse many cases concurrently",
		Long: "Parse a list of case ids or scholar URLs with the configured worker\n" +
			"concurrency.  Failures are isolated per case; cases that no longer\n" +
			"exist upstream are recorded in the 404 log for the cites command.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := args
			if file != "" {
				fromFile, err := readIDFile(file)
				if err != nil {
					return err
				}
				ids = append(ids, fromFile...)
			}
			if len(ids) == 0 {
				return errors.InvalidParam("no case ids given; pass ids as arguments or use --file")
			}

			if metricsAddr != "" {
				cliCtx, err := GetCLIContext(cmd)
				if err != nil {
					return err
				}
				cliCtx.Config.Metrics.Enabled = true
				cliCtx.Config.Metrics.Addr = metricsAddr
			}

			app, err := buildApp(cmd, politeness)
			if err != nil {
				return err
			}
			defer app.Close()
			return runBatch(cmd, app.Service, ids)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "file with one case id or URL per line")
	cmd.Flags().DurationVar(&politeness, "politeness", 0, "maximum random delay between requests")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address for the run")
	return cmd
}

func runBatch(cmd *cobra.Command, svc *parse.Service, ids []string) error {
	result, err := svc.ParseBatch(cmd.Context(), ids)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range result.Results {
		switch {
		case r.Err == nil:
			fmt.Fprintf(out, "%s %s  %s\n", color.GreenString("ok  "), r.ID, r.Record.Citation)
		case errors.IsNotFound(r.Err):
			fmt.Fprintf(out, "%s %s  gone upstream\n", color.YellowString("404 "), r.ID)
		default:
			fmt.Fprintf(out, "%s %s  %v\n", color.RedString("fail"), r.ID, r.Err)
		}
	}
	fmt.Fprintf(out, "\nrun %s: %d parsed, %d not found, %d failed\n",
		result.RunID, result.Parsed, result.NotFound, result.Failed)

	if result.Failed > 0 {
		return errors.Internal(fmt.Sprintf("%d of %d cases failed", result.Failed, len(ids)))
	}
	return nil
}
