package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/prereg/artifact"
)

func newVerifyCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Audit a run directory against its manifest and ledger",
		Long: `Verify recomputes the content hash of every file the manifest names,
replays the ledger for causal order, and checks that write-once artifacts
still match the hashes their ledger entries recorded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			problems, err := artifact.Verify(out)
			if err != nil {
				return err
			}
			if len(problems) > 0 {
				for _, p := range problems {
					fmt.Fprintln(cmd.ErrOrStderr(), p)
				}
				return fmt.Errorf("%s: %d integrity problem(s)", out, len(problems))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: all artifacts verified\n", out)
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "outputs_unblind", "Run directory to verify")
	return cmd
}
