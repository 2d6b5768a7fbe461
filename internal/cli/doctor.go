package cli

import (
	"fmt"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/agentscope/agentscope/internal/trigger"
)

// NewDoctorCmd returns a health-check command validating config and environment.
func NewDoctorCmd(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Validate configuration and environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			table := trigger.Builtin()
			fmt.Fprintf(out, "Config OK. Default agents: %d, optional rules: %d\n", len(table.Defaults), len(table.Rules))

			if cfg.Rules.Path != "" {
				extra, err := trigger.LoadRuleFile(cfg.Rules.Path)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Rule file OK: %s (%d rules)\n", cfg.Rules.Path, len(extra))
			}

			if _, err := exec.LookPath("git"); err != nil {
				fmt.Fprintln(out, "git: not found (contributor counts will be 0)")
			} else {
				fmt.Fprintln(out, "git: available")
			}
			return nil
		},
	}
}
