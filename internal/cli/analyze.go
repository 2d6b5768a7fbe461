package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentscope/agentscope/internal/detect"
	"github.com/agentscope/agentscope/internal/logging"
	"github.com/agentscope/agentscope/internal/observability"
	"github.com/agentscope/agentscope/internal/report"
)

// NewAnalyzeCmd wires the analyze command: scan a repository, print the
// report, optionally emit the machine-readable record.
func NewAnalyzeCmd(opts *Options) *cobra.Command {
	var emitJSON bool

	cmd := &cobra.Command{
		Use:   "analyze <repo-path>",
		Short: "Scan a repository and report which review agents to enable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			logger, err := logging.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck // best-effort

			analyzer, err := detect.New(cfg, logger, observability.NewMetrics())
			if err != nil {
				return err
			}

			res, err := analyzer.Analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, report.Render(res.Snapshot, res.Evaluation, analyzer.Table()))

			if emitJSON {
				data, err := json.MarshalIndent(res.Record, "", "  ")
				if err != nil {
					return fmt.Errorf("encode record: %w", err)
				}
				fmt.Fprintln(out, string(data))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&emitJSON, "json", false, "Also emit the structured detection record as JSON")
	return cmd
}
