// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development selects human-readable log output.
	Development Environment = "development"
	// Production selects JSON log output.
	Production Environment = "production"
	// Test is used by automated test deployments.
	Test Environment = "test"
)

// SlackMode selects how the bot receives Slack events.
type SlackMode string

const (
	// SocketMode connects outbound over a WebSocket using the app-level
	// token. No public endpoint is needed.
	SocketMode SlackMode = "socket"
	// HTTPMode serves the Events API and interactivity endpoints and
	// verifies requests with the signing secret.
	HTTPMode SlackMode = "http"
)

// StoreBackend selects the processed-set implementation.
type StoreBackend string

const (
	// FileBackend is a newline-delimited text file.
	FileBackend StoreBackend = "file"
	// SQLiteBackend is a SQLite table with atomic insert-if-absent.
	SQLiteBackend StoreBackend = "sqlite"
)

// Config is the complete runtime configuration. It is built once at
// startup and passed by pointer into each component's constructor.
type Config struct {
	// Environment is the deployment environment. Required.
	Environment Environment `yaml:"environment" env:"ENVIRONMENT"`

	// LogLevel is one of debug, info, warn, error. Default: info.
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	Slack  SlackConfig  `yaml:"slack"`
	GitHub GitHubConfig `yaml:"github"`
	Store  StoreConfig  `yaml:"store"`
}

// SlackConfig configures the Slack app.
type SlackConfig struct {
	// BotToken is the bot user OAuth token (xoxb-...). Required.
	BotToken string `yaml:"bot_token" env:"SLACK_BOT_TOKEN"`

	// SigningSecret verifies inbound HTTP requests. Required.
	SigningSecret string `yaml:"signing_secret" env:"SLACK_SIGNING_SECRET"`

	// AppToken is the app-level token (xapp-...) used by Socket Mode.
	// Required.
	AppToken string `yaml:"app_token" env:"SLACK_APP_TOKEN"`

	// AdminUserID is mentioned in invitation failure replies when set.
	// Optional; must look like a Slack user ID.
	AdminUserID string `yaml:"admin_user_id" env:"SLACK_ADMIN_USER_ID"`

	// Mode selects Socket Mode or HTTP delivery. Default: socket.
	Mode SlackMode `yaml:"mode" env:"SLACK_MODE"`

	// ListenAddress is the HTTP listen address in HTTP mode.
	// Default: ":3000".
	ListenAddress string `yaml:"listen_address" env:"HTTP_LISTEN"`
}

// GitHubConfig configures the GitHub organization and API access.
type GitHubConfig struct {
	// Token is a token with admin:org scope. Required.
	Token string `yaml:"token" env:"GITHUB_TOKEN"`

	// Org is the organization login invitations are issued for.
	// Required.
	Org string `yaml:"org" env:"GITHUB_ORG"`

	// TeamID is the numeric team every invitee is added to. Required.
	TeamID string `yaml:"team_id" env:"GITHUB_TEAM_ID"`

	// APIURL is the REST API root. Default: https://api.github.com.
	APIURL string `yaml:"api_url" env:"GITHUB_API_URL"`

	// Timeout bounds each GitHub request. Default: 15s.
	Timeout time.Duration `yaml:"timeout" env:"GITHUB_TIMEOUT"`
}

// StoreConfig configures the processed-set store.
type StoreConfig struct {
	// Backend is file or sqlite. Default: file.
	Backend StoreBackend `yaml:"backend" env:"STORE_BACKEND"`

	// FilePath is the newline-delimited file for the file backend.
	FilePath string `yaml:"file_path" env:"PROCESSED_USERS_FILE"`

	// DatabasePath is the SQLite database for the sqlite backend.
	DatabasePath string `yaml:"database_path" env:"PROCESSED_USERS_DB"`
}

// Default returns a Config with every optional field set. Required
// credentials are left empty.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Slack: SlackConfig{
			Mode:          SocketMode,
			ListenAddress: ":3000",
		},
		GitHub: GitHubConfig{
			APIURL:  "https://api.github.com",
			Timeout: 15 * time.Second,
		},
		Store: StoreConfig{
			Backend:      FileBackend,
			FilePath:     "./data/processed_users.txt",
			DatabasePath: "./data/processed_users.db",
		},
	}
}

// LoadOptions selects the configuration sources.
type LoadOptions struct {
	// ConfigFile is an optional YAML, JSON, or JSONC file.
	ConfigFile string

	// EnvFile is an optional dotenv file.
	EnvFile string

	// EnvFileOptional suppresses the error when EnvFile does not exist.
	// Used for the implicit ".env" default.
	EnvFileOptional bool

	// Environment replaces the process environment when non-nil.
	Environment map[string]string
}

// Load builds a Config from the given sources. It does not validate;
// call Validate on the result.
func Load(options LoadOptions) (*Config, error) {
	cfg := Default()

	if options.ConfigFile != "" {
		if err := cfg.loadFile(options.ConfigFile); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", options.ConfigFile, err)
		}
	}

	environment := make(map[string]string)
	if options.EnvFile != "" {
		values, err := godotenv.Read(options.EnvFile)
		switch {
		case err == nil:
			for key, value := range values {
				environment[key] = value
			}
		case options.EnvFileOptional && errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("loading env file %s: %w", options.EnvFile, err)
		}
	}

	processEnvironment := options.Environment
	if processEnvironment == nil {
		processEnvironment = environToMap(os.Environ())
	}
	for key, value := range processEnvironment {
		environment[key] = value
	}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	return cfg, nil
}

// loadFile merges a configuration file into c. Files ending in .json
// or .jsonc may carry comments and trailing commas; once stripped they
// are valid YAML and share the YAML field names.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}
	return yaml.Unmarshal(data, c)
}

func environToMap(environ []string) map[string]string {
	result := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, found := strings.Cut(entry, "=")
		if found {
			result[key] = value
		}
	}
	return result
}

var (
	// slackUserIDPattern matches Slack user IDs: U followed by 8-11
	// uppercase alphanumerics.
	slackUserIDPattern = regexp.MustCompile(`^U[A-Z0-9]{8,11}$`)

	validLogLevels = map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
)

// minGitHubTokenLength rejects obviously truncated tokens. Classic PATs
// are 40 characters, fine-grained tokens longer.
const minGitHubTokenLength = 30

// Validate checks the configuration for errors. All problems are
// reported together.
func (c *Config) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"SLACK_BOT_TOKEN", c.Slack.BotToken},
		{"SLACK_SIGNING_SECRET", c.Slack.SigningSecret},
		{"SLACK_APP_TOKEN", c.Slack.AppToken},
		{"GITHUB_TOKEN", c.GitHub.Token},
		{"GITHUB_ORG", c.GitHub.Org},
		{"GITHUB_TEAM_ID", c.GitHub.TeamID},
		{"ENVIRONMENT", string(c.Environment)},
	}
	var missing []string
	for _, variable := range required {
		if variable.value == "" {
			missing = append(missing, variable.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	var errs []error

	if !strings.HasPrefix(c.Slack.BotToken, "xoxb-") {
		errs = append(errs, fmt.Errorf("invalid SLACK_BOT_TOKEN format (want xoxb- prefix)"))
	}
	if !strings.HasPrefix(c.Slack.AppToken, "xapp-") {
		errs = append(errs, fmt.Errorf("invalid SLACK_APP_TOKEN format (want xapp- prefix)"))
	}
	if len(c.GitHub.Token) < minGitHubTokenLength {
		errs = append(errs, fmt.Errorf("GITHUB_TOKEN appears to be invalid"))
	}
	if _, err := c.GitHub.ParsedTeamID(); err != nil {
		errs = append(errs, err)
	}
	if c.Slack.AdminUserID != "" && !slackUserIDPattern.MatchString(c.Slack.AdminUserID) {
		errs = append(errs, fmt.Errorf("SLACK_ADMIN_USER_ID must be a valid Slack user ID (starts with U followed by 8-11 characters)"))
	}

	switch c.Environment {
	case Development, Production, Test:
	default:
		errs = append(errs, fmt.Errorf("invalid ENVIRONMENT %q: must be one of development, production, test", c.Environment))
	}

	if _, ok := validLogLevels[c.LogLevel]; !ok {
		errs = append(errs, fmt.Errorf("invalid LOG_LEVEL %q: must be one of debug, info, warn, error", c.LogLevel))
	}

	switch c.Slack.Mode {
	case SocketMode:
	case HTTPMode:
		if c.Slack.ListenAddress == "" {
			errs = append(errs, fmt.Errorf("HTTP_LISTEN is required when SLACK_MODE=http"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid SLACK_MODE %q: must be socket or http", c.Slack.Mode))
	}

	if !strings.HasPrefix(c.GitHub.APIURL, "https://") {
		errs = append(errs, fmt.Errorf("GITHUB_API_URL must use https (got %q)", c.GitHub.APIURL))
	}
	if c.GitHub.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("GITHUB_TIMEOUT must be positive (got %s)", c.GitHub.Timeout))
	}

	switch c.Store.Backend {
	case FileBackend:
		if c.Store.FilePath == "" {
			errs = append(errs, fmt.Errorf("PROCESSED_USERS_FILE is required when STORE_BACKEND=file"))
		}
	case SQLiteBackend:
		if c.Store.DatabasePath == "" {
			errs = append(errs, fmt.Errorf("PROCESSED_USERS_DB is required when STORE_BACKEND=sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid STORE_BACKEND %q: must be file or sqlite", c.Store.Backend))
	}

	return errors.Join(errs...)
}

// ParsedTeamID returns TeamID as a positive integer.
func (g GitHubConfig) ParsedTeamID() (int64, error) {
	teamID, err := strconv.ParseInt(strings.TrimSpace(g.TeamID), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("GITHUB_TEAM_ID must be a number (got %q)", g.TeamID)
	}
	if teamID <= 0 {
		return 0, fmt.Errorf("GITHUB_TEAM_ID must be positive (got %d)", teamID)
	}
	return teamID, nil
}

// SlogLevel returns LogLevel as a slog.Level, defaulting to Info for
// unrecognized values.
func (c *Config) SlogLevel() slog.Level {
	if level, ok := validLogLevels[c.LogLevel]; ok {
		return level
	}
	return slog.LevelInfo
}

// LogValue reports non-secret settings and the presence of each
// credential.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("environment", string(c.Environment)),
		slog.String("log_level", c.LogLevel),
		slog.String("slack_mode", string(c.Slack.Mode)),
		slog.Bool("slack_bot_token_set", c.Slack.BotToken != ""),
		slog.Bool("slack_signing_secret_set", c.Slack.SigningSecret != ""),
		slog.Bool("slack_app_token_set", c.Slack.AppToken != ""),
		slog.Bool("slack_admin_set", c.Slack.AdminUserID != ""),
		slog.Bool("github_token_set", c.GitHub.Token != ""),
		slog.String("github_org", c.GitHub.Org),
		slog.String("github_team_id", c.GitHub.TeamID),
		slog.String("github_api_url", c.GitHub.APIURL),
		slog.Duration("github_timeout", c.GitHub.Timeout),
		slog.String("store_backend", string(c.Store.Backend)),
	)
}
