// ABOUTME: TUI command for projecthub CLI
// ABOUTME: Launches the interactive login, register and dashboard screens

package cmd

import (
	"fmt"
	"os"

	"github.com/markalston/projecthub-cli/internal/client"
	"github.com/markalston/projecthub-cli/internal/logger"
	"github.com/markalston/projecthub-cli/internal/tui"
	"github.com/markalston/projecthub-cli/internal/tui/debuglog"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Start the interactive interface",
	Long: `Start the interactive interface.

Request logs go to debug.log in the config directory while the
interface owns the terminal. Set LOG_LEVEL=debug to see every request.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		os.Exit(runTUI())
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI() int {
	if err := debuglog.Init(cfg.ConfigDir, logger.Level(cfg.LogLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: debug log disabled: %v\n", err)
	}
	defer debuglog.Close()

	if err := tui.Run(newServices(client.WithLogger(debuglog.Logger())), cfg.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitBackend
	}
	return exitOK
}
