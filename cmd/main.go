/*
Package main is the entry point for the storefront terminal client.

It loads configuration, initializes the global logging system, wires the API
client, session synchronizer, and application services together, starts the
session poll, and runs the interactive screen loop until the user quits or an
interrupt signal (SIGINT, SIGTERM) arrives.
*/
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"storefront/internal/app/account"
	"storefront/internal/app/catalog"
	"storefront/internal/app/session"
	"storefront/internal/cli"
	"storefront/internal/client"
	"storefront/internal/configs"
	"storefront/internal/pkg/logx"
)

func main() {
	// Load .env if present; real environment variables take precedence.
	_ = godotenv.Load()

	cfg, err := configs.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logx.InitGlobalLogger(cfg.Environment == "development")
	logx.Info("Configuration loaded",
		"environment", cfg.Environment,
		"api_base_url", cfg.APIBaseURL,
		"session_file", cfg.SessionFile,
		"poll_interval", cfg.PollInterval.String(),
	)

	// Create a context that listens for the interrupt signal from the OS.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var store session.Store
	if cfg.SessionFile != "" {
		store = session.NewFileStore(cfg.SessionFile)
	} else {
		store = session.NewMemoryStore()
	}

	sync := session.NewSynchronizer(store, cfg.PollInterval)
	go sync.Run(ctx)

	api := client.New(client.Config{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.RequestTimeout,
		Rate:    cfg.RequestRate,
		Burst:   cfg.RequestBurst,
		Tokens:  sync,
	})

	accounts := account.NewService(api, sync)
	cat := catalog.NewService(api)

	app := cli.NewApp(api, sync, accounts, cat, os.Stdin, os.Stdout)
	if err := app.Run(ctx); err != nil && err != context.Canceled {
		logx.Fatal(err, "Storefront client exited abnormally")
	}

	logx.Info("Storefront client stopped.")
}
