package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/prereg/journal"
)

func newJournalCmd(rc *rootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Query the run journal",
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := openJournal(rc)
			if err != nil {
				return err
			}
			defer j.Close()

			runs, err := j.ListRuns(limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			for _, r := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  seed=%d  AEQ=%s  CID=%s  pass=%t\n",
					r.RunID, r.Time.UTC().Format("2006-01-02T15:04:05Z"), r.Seed, r.AEQ, r.CID, r.OverallPass)
			}
			return nil
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list (0 = all)")

	showCmd := &cobra.Command{
		Use:   "run RUN_ID",
		Short: "Show one recorded run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := openJournal(rc)
			if err != nil {
				return err
			}
			defer j.Close()

			r, err := j.GetRun(args[0])
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "run_id:          %s\n", r.RunID)
			fmt.Fprintf(w, "time:            %s\n", r.Time.UTC().Format("2006-01-02T15:04:05Z"))
			fmt.Fprintf(w, "out_dir:         %s\n", r.OutDir)
			fmt.Fprintf(w, "seed:            %d\n", r.Seed)
			fmt.Fprintf(w, "AEQ:             %s\n", r.AEQ)
			fmt.Fprintf(w, "CID:             %s\n", r.CID)
			fmt.Fprintf(w, "blind:           %t\n", r.Blind)
			fmt.Fprintf(w, "baseline sharpe: %.6f\n", r.BaselineSharpe)
			fmt.Fprintf(w, "ablation sharpe: %.6f\n", r.AblationSharpe)
			fmt.Fprintf(w, "negctrl sharpe:  %.6f\n", r.NegCtrlSharpe)
			fmt.Fprintf(w, "delta sharpe:    %.6f\n", r.DeltaSharpe)
			fmt.Fprintf(w, "overall pass:    %t\n", r.OverallPass)
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}

func openJournal(rc *rootConfig) (*journal.SQLite, error) {
	if rc.DBPath == "" {
		return nil, fmt.Errorf("--db is required for journal commands")
	}
	return journal.NewSQLite(rc.DBPath)
}
