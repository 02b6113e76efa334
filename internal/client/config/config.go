package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/confportal/internal/logging"
)

const DefaultAPIBaseURL = "http://localhost:8080"

// Config holds runtime settings for the portal CLI.
type Config struct {
	APIBaseURL    string
	StatePath     string
	DownloadDir   string
	DueSoonWindow time.Duration
	LogLevel      string
	PageSize      int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.StatePath = defaultStatePath()
	c.DownloadDir = "downloads"
	c.DueSoonWindow = 72 * time.Hour
	c.LogLevel = "info"
	c.PageSize = 20
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "confportal.db"
	}
	return filepath.Join(dir, "confportal", "state.db")
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid API base URL %q", c.APIBaseURL)
	}
	if c.StatePath == "" {
		return errors.New("state path is empty")
	}
	if c.DueSoonWindow < 0 {
		return fmt.Errorf("negative due-soon window %s", c.DueSoonWindow)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Load builds a Config from defaults, the JSON file, the environment and
// args, in that order. args excludes the program name.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
