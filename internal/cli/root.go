// Package cli wires the cobra command tree for the prereg binary.
package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// rootConfig carries the global flag values shared by subcommands.
type rootConfig struct {
	LogLevel string
	NoColor  bool
	DBPath   string
}

// errGatesFailed signals a data outcome, not a fault: at least one
// preregistered gate did not pass.
var errGatesFailed = errors.New("one or more gates failed")

func newRootCmd() *cobra.Command {
	rc := &rootConfig{}

	cmd := &cobra.Command{
		Use:   "prereg",
		Short: "Preregistered signal-evaluation harness",
		Long: `prereg runs a deterministic trading-signal experiment against two
controls, gates the results against thresholds committed before any
evidence exists, and seals every artifact into a hash-chained ledger.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&rc.LogLevel, "log-level", "info", "Log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVar(&rc.NoColor, "no-color", false, "Disable colored output")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "", "SQLite run journal (optional)")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return setupLogging(rc)
	}

	cmd.AddCommand(
		newRunCmd(rc),
		newVerifyCmd(),
		newJournalCmd(rc),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("prereg (dev)")
		},
	})

	return cmd
}

func setupLogging(rc *rootConfig) error {
	level, err := zerolog.ParseLevel(rc.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", rc.LogLevel, err)
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
		NoColor:    rc.NoColor,
	})
	return nil
}

// Execute runs the command tree and maps the outcome to a process exit
// status: 0 success, 2 gate failure, 1 any other fault.
func Execute() int {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, errGatesFailed) {
			return 2
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
