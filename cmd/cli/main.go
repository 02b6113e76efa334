package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/confportal/internal/client/cli"
	"github.com/dmitrijs2005/confportal/internal/client/config"
	"github.com/dmitrijs2005/confportal/internal/logging"
)

// Set with -ldflags "-X main.buildVersion=...".
var (
	buildVersion = "N/A"
	buildDate    = "N/A"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		config.Exitf("config: %v", err)
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	log := logging.New(os.Stderr, level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Build version: %s, build date: %s\n", buildVersion, buildDate)

	app, err := cli.NewApp(ctx, cfg, log)
	if err != nil {
		config.Exitf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
