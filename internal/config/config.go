// ABOUTME: Configuration loader for the projecthub CLI
// ABOUTME: Resolves settings from flags, environment, .env file and defaults

package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/markalston/projecthub-cli/internal/client"
	"github.com/markalston/projecthub-cli/internal/session"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Environment variables
const (
	EnvAPIURL    = "PROJECTHUB_API_URL"
	EnvConfigDir = "PROJECTHUB_CONFIG_DIR"
	EnvTimeout   = "PROJECTHUB_TIMEOUT"
	EnvLogLevel  = "LOG_LEVEL"
)

// DefaultEnvFile is read from the working directory when present.
const DefaultEnvFile = ".env"

// Config keys, shared between viper and the flags bound to them.
const (
	keyAPIURL    = "api_url"
	keyConfigDir = "config_dir"
	keyTimeout   = "timeout"
	keyJSON      = "json"
	keyLogLevel  = "log_level"
)

// flagNames maps config keys to the persistent flags that can override them.
var flagNames = map[string]string{
	keyAPIURL:    "api-url",
	keyConfigDir: "config-dir",
	keyTimeout:   "timeout",
	keyJSON:      "json",
	keyLogLevel:  "log-level",
}

type Config struct {
	APIURL    string        // backend base URL, no trailing slash
	ConfigDir string        // where the session file lives
	Timeout   time.Duration // per-request timeout; zero means none
	JSON      bool          // machine-readable output
	LogLevel  string        // debug, info, warn, error
}

// Load resolves configuration. Priority: flag > env > env file > default.
// Values in envFile never override variables already set in the environment.
func Load(flags *pflag.FlagSet, envFile string) (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	v := viper.New()
	setDefaults(v)
	bindEnvs(v)
	if err := bindFlags(v, flags); err != nil {
		return nil, err
	}

	cfg := &Config{
		APIURL:    strings.TrimRight(strings.TrimSpace(v.GetString(keyAPIURL)), "/"),
		ConfigDir: v.GetString(keyConfigDir),
		Timeout:   v.GetDuration(keyTimeout),
		JSON:      v.GetBool(keyJSON),
		LogLevel:  v.GetString(keyLogLevel),
	}
	if cfg.APIURL == "" {
		cfg.APIURL = client.DefaultBaseURL
	}
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = session.DefaultConfigDir()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the resolved values are usable
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid API URL %q: scheme must be http or https", c.APIURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid API URL %q: missing host", c.APIURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	envMap, err := godotenv.Read(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	for k, val := range envMap {
		if _, exists := os.LookupEnv(k); !exists {
			_ = os.Setenv(k, val)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyAPIURL, client.DefaultBaseURL)
	v.SetDefault(keyTimeout, time.Duration(0))
	v.SetDefault(keyJSON, false)
	v.SetDefault(keyLogLevel, "")
}

func bindEnvs(v *viper.Viper) {
	_ = v.BindEnv(keyAPIURL, EnvAPIURL)
	_ = v.BindEnv(keyConfigDir, EnvConfigDir)
	_ = v.BindEnv(keyTimeout, EnvTimeout)
	_ = v.BindEnv(keyLogLevel, EnvLogLevel)
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	if flags == nil {
		return nil
	}
	for key, name := range flagNames {
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}
