package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/confportal/internal/flagx"
)

// parseFlags populates cfg from the flags it knows about. Other arguments
// are dropped with flagx.FilterArgs so they cannot break parsing.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-d", "-w", "-l"})

	fs := flag.NewFlagSet("confportal", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the portal backend")
	fs.StringVar(&cfg.StatePath, "s", cfg.StatePath, "path of the local session cache")
	fs.StringVar(&cfg.DownloadDir, "d", cfg.DownloadDir, "download directory")
	fs.DurationVar(&cfg.DueSoonWindow, "w", cfg.DueSoonWindow, "due-soon window for review assignments")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
