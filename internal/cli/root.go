package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// globalOptions override the environment for a single invocation.
type globalOptions struct {
	dataDir  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:          "dreamstay",
		Short:        "DreamStay hotel booking service",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "directory holding rooms.txt and bookings.txt (overrides DATA_DIR)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	cmd.AddCommand(
		serveCmd(opts),
		roomsCmd(opts),
		bookingsCmd(opts),
		bookCmd(opts),
		checkInCmd(opts),
		checkOutCmd(opts),
	)
	return cmd
}
