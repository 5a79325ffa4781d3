// Package main is the entry point for the gnotes CLI.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gnotes/internal/backend/notesapi"
	"gnotes/internal/cli"
	"gnotes/internal/commands"
	"gnotes/internal/config"
	"gnotes/internal/service"
)

func main() {
	// Create context that cancels on interrupt
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	factory := func(ctx context.Context, cfg *config.Config) (service.Service, error) {
		return notesapi.New(cfg, cfg.Logger()), nil
	}

	dispatcher := cli.NewDispatcher(commands.DefaultRegistry, factory)

	code := dispatcher.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	cancel()
	os.Exit(code)
}
