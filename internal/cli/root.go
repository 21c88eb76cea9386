// Package cli implements the gridctl command tree: a thin client over the
// gridd HTTP API.
package cli

import (
	"log/slog"
	"os"

	"github.com/me/gogrid/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
	client *Client
)

// defaultServer returns the default server URL, honoring GRIDD_SERVER.
func defaultServer() string {
	if s := os.Getenv("GRIDD_SERVER"); s != "" {
		return s
	}
	return "http://localhost:8080"
}

// NewRootCmd creates the root cobra command for gridctl.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "gridctl",
		Short: "Manage a gridd compute grid",
		Long:  "gridctl registers users and machines, submits jobs, and queries a running gridd daemon.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.New(flagLogLevel, flagLogFormat)
			client = NewClient(flagServer, logger)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", defaultServer(), "gridd server URL (or GRIDD_SERVER env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newStatusCmd(),
		newUsersCmd(),
		newMachinesCmd(),
		newSubmitCmd(),
		newQueryCmd(),
		newSnapshotCmd(),
	)

	return root
}
