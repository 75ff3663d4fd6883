package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/byigitt/kaiban/common/id"
	"github.com/byigitt/kaiban/common/logger"
	"github.com/byigitt/kaiban/core/config"
	"github.com/byigitt/kaiban/internal/bootstrap"
	"github.com/byigitt/kaiban/internal/cli"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, load, version, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

func load(ctx context.Context) (*bootstrap.App, error) {
	cfg, err := config.Load(config.ServiceTypeCLI)
	if err != nil {
		return nil, err
	}
	logger.SetupTo(cfg, os.Stderr)

	if err := id.Init(cfg.NodeID); err != nil {
		return nil, fmt.Errorf("initializing id generator: %w", err)
	}
	return bootstrap.New(ctx, cfg, bootstrap.Options{})
}
