package cli

import (
	"github.com/spf13/cobra"

	"github.com/rustyeddy/prereg/config"
	"github.com/rustyeddy/prereg/harness"
	"github.com/rustyeddy/prereg/journal"
)

func newRunCmd(rc *rootConfig) *cobra.Command {
	var (
		out        string
		seed       int64
		blindFlag  bool
		revealFlag bool
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execute one preregistered experiment run",
		Long: `Run commits the preregistration, simulates the three conditions
(baseline, ablation, negative control), evaluates the gates, and writes the
artifacts and ledger into the output directory.

Exit status is 0 when all gates pass and 2 when any gate fails.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.LoadFromFile(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			// Explicit flags win over the config file.
			if cmd.Flags().Changed("out") || cfg.Out == "" {
				cfg.Out = out
			}
			if cmd.Flags().Changed("seed") {
				cfg.Seed = seed
			}

			opts := harness.Options{
				OutDir: cfg.Out,
				Seed:   cfg.Seed,
				Blind:  blindFlag,
				Reveal: revealFlag,
				Params: cfg.Params,
			}

			if rc.DBPath != "" {
				j, err := journal.NewSQLite(rc.DBPath)
				if err != nil {
					return err
				}
				defer j.Close()
				opts.Journal = j
			}

			sum, err := harness.Run(opts)
			if err != nil {
				return err
			}
			if !sum.Results.OverallPass {
				return errGatesFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "outputs_unblind", "Output directory for this run")
	cmd.Flags().Int64Var(&seed, "seed", 123, "Run seed")
	cmd.Flags().BoolVar(&blindFlag, "blind", false, "Blind condition labels in results")
	cmd.Flags().BoolVar(&revealFlag, "reveal", false, "Echo the blind map after results (with --blind)")
	cmd.Flags().StringVar(&configPath, "config", "", "Parameter file (YAML or JSON, optional)")

	return cmd
}
