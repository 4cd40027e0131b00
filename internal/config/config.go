// Package config loads the process configuration once at startup.
//
// Values come from the environment, optionally seeded from a .env file in
// the working directory. The resulting Config is never mutated afterwards;
// it is passed explicitly into the tracker client, tools and server.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Defaults.
const (
	DefaultPort       = 8080
	DefaultProjectKey = "DP"
	DefaultLogLevel   = "info"
)

// Config is the immutable process configuration.
type Config struct {
	// Tracker connection
	TrackerURL   string
	TrackerEmail string
	TrackerToken string

	// ProjectKey scopes jira_get_issues.
	ProjectKey string

	// RateLimit caps outbound tracker requests per second. Zero disables it.
	RateLimit float64

	// Server
	Port     int
	LogLevel string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is applied first when present; real environment
// variables win over it.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}
	return FromViper(newViper()), nil
}

// newViper binds every key to its environment variables. Later names are
// fallbacks kept for compatibility with JIRA_* deployments.
func newViper() *viper.Viper {
	v := viper.New()

	_ = v.BindEnv("tracker_url", "TRACKER_URL", "JIRA_URL")
	_ = v.BindEnv("tracker_email", "TRACKER_EMAIL", "JIRA_EMAIL")
	_ = v.BindEnv("tracker_token", "TRACKER_TOKEN", "JIRA_TOKEN")
	_ = v.BindEnv("project_key", "TRACKER_PROJECT")
	_ = v.BindEnv("rate_limit", "TRACKER_RATE_LIMIT")
	_ = v.BindEnv("port", "PORT")
	_ = v.BindEnv("log_level", "LOG_LEVEL")

	v.SetDefault("project_key", DefaultProjectKey)
	v.SetDefault("rate_limit", 0)
	v.SetDefault("port", DefaultPort)
	v.SetDefault("log_level", DefaultLogLevel)

	return v
}

// FromViper builds a Config from an already-populated viper instance.
func FromViper(v *viper.Viper) *Config {
	cfg := &Config{
		TrackerURL:   strings.TrimRight(strings.TrimSpace(v.GetString("tracker_url")), "/"),
		TrackerEmail: strings.TrimSpace(v.GetString("tracker_email")),
		TrackerToken: strings.TrimSpace(v.GetString("tracker_token")),
		ProjectKey:   strings.TrimSpace(v.GetString("project_key")),
		RateLimit:    v.GetFloat64("rate_limit"),
		Port:         v.GetInt("port"),
		LogLevel:     strings.ToLower(strings.TrimSpace(v.GetString("log_level"))),
	}
	if cfg.ProjectKey == "" {
		cfg.ProjectKey = DefaultProjectKey
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	return cfg
}

// Validate reports every missing or malformed setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.TrackerURL == "" {
		errs = append(errs, errors.New("TRACKER_URL is required"))
	} else if u, err := url.Parse(c.TrackerURL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("TRACKER_URL %q is not an absolute URL", c.TrackerURL))
	}
	if c.TrackerEmail == "" {
		errs = append(errs, errors.New("TRACKER_EMAIL is required"))
	}
	if c.TrackerToken == "" {
		errs = append(errs, errors.New("TRACKER_TOKEN is required"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d is out of range", c.Port))
	}
	if c.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("TRACKER_RATE_LIMIT %v must not be negative", c.RateLimit))
	}

	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP transport. It binds every
// interface so a forwarding proxy can reach it.
func (c *Config) Addr() string {
	return fmt.Sprintf("0.0.0.0:%d", c.Port)
}
