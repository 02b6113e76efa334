package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// dotenvFile is loaded before the environment is parsed. Variables already
// set in the process environment win over the file.
var dotenvFile = ".env"

type envConfig struct {
	APIURL        string        `env:"CONFPORTAL_API_URL"`
	ProxyTarget   string        `env:"API_PROXY_TARGET"`
	StatePath     string        `env:"CONFPORTAL_STATE_PATH"`
	DownloadDir   string        `env:"CONFPORTAL_DOWNLOAD_DIR"`
	DueSoonWindow time.Duration `env:"CONFPORTAL_DUE_SOON_WINDOW"`
	LogLevel      string        `env:"CONFPORTAL_LOG_LEVEL"`
	PageSize      int           `env:"CONFPORTAL_PAGE_SIZE"`
}

func parseEnv(cfg *Config) error {
	if err := godotenv.Load(dotenvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", dotenvFile, err)
	}

	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	switch {
	case ec.APIURL != "":
		cfg.APIBaseURL = ec.APIURL
	case ec.ProxyTarget != "":
		cfg.APIBaseURL = ec.ProxyTarget
	}
	if ec.StatePath != "" {
		cfg.StatePath = ec.StatePath
	}
	if ec.DownloadDir != "" {
		cfg.DownloadDir = ec.DownloadDir
	}
	if ec.DueSoonWindow != 0 {
		cfg.DueSoonWindow = ec.DueSoonWindow
	}
	if ec.LogLevel != "" {
		cfg.LogLevel = ec.LogLevel
	}
	if ec.PageSize != 0 {
		cfg.PageSize = ec.PageSize
	}
	return nil
}
