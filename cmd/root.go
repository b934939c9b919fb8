// ABOUTME: Root command for projecthub CLI
// ABOUTME: Handles global flags, configuration and shared service wiring

package cmd

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/markalston/projecthub-cli/internal/client"
	"github.com/markalston/projecthub-cli/internal/config"
	"github.com/markalston/projecthub-cli/internal/logger"
	"github.com/markalston/projecthub-cli/internal/service"
	"github.com/markalston/projecthub-cli/internal/session"
	"github.com/spf13/cobra"
)

// Exit codes shared by every command
const (
	exitOK      = 0
	exitUser    = 1 // invalid input or rejected credentials
	exitBackend = 2 // backend or connectivity error
	exitAuth    = 3 // no session, or the session expired
)

var (
	apiURL     string
	jsonOutput bool
	configDir  string
	timeout    time.Duration
	logLevel   string

	cfg = &config.Config{APIURL: client.DefaultBaseURL}
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "projecthub",
	Short: "CLI for ProjectHub",
	Long: `projecthub is a command-line client for the ProjectHub project management API.

Log in once and the session is kept under the config directory until you log out
or the backend rejects it.

Environment Variables:
  PROJECTHUB_API_URL     Backend API URL (default: http://localhost:3000/dev)
  PROJECTHUB_CONFIG_DIR  Session directory (default: $XDG_CONFIG_HOME/projecthub)
  PROJECTHUB_TIMEOUT     Per-request timeout, e.g. 10s (default: none)
  LOG_LEVEL              debug, info, warn, error (default: warn)
  LOG_FORMAT             text, json (default: text)

Variables may also be placed in a .env file in the working directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&apiURL, "api-url", "", "Backend API URL (overrides PROJECTHUB_API_URL)")
	flags.BoolVar(&jsonOutput, "json", false, "Output JSON instead of human-readable text")
	flags.StringVar(&configDir, "config-dir", "", "Directory holding the session (overrides PROJECTHUB_CONFIG_DIR)")
	flags.DurationVar(&timeout, "timeout", 0, "Per-request timeout (overrides PROJECTHUB_TIMEOUT)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides LOG_LEVEL)")
}

// loadConfig resolves configuration once per invocation and sets up logging
func loadConfig(cmd *cobra.Command) error {
	c, err := config.Load(cmd.Flags(), config.DefaultEnvFile)
	if err != nil {
		return err
	}
	cfg = c
	logger.Init(os.Stderr, cfg.LogLevel)
	slog.Debug("Configuration loaded", "api_url", cfg.APIURL, "config_dir", cfg.ConfigDir)
	return nil
}

// GetAPIURL returns the resolved backend URL
func GetAPIURL() string {
	return cfg.APIURL
}

// IsJSONOutput returns whether JSON output is requested
func IsJSONOutput() bool {
	return cfg.JSON
}

// newServices builds the facade over the persisted session
func newServices(opts ...client.Option) *service.Services {
	sess := session.New(session.NewFileStore(cfg.ConfigDir))
	opts = append([]client.Option{
		client.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		client.WithLogger(slog.Default()),
	}, opts...)
	return service.New(cfg.APIURL, sess, opts...)
}
