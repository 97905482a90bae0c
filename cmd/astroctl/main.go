// Command astroctl runs administrative tasks against the astrochat store.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/astrochat/internal/cli"
	"github.com/dmitrijs2005/astrochat/internal/logging"
	"github.com/dmitrijs2005/astrochat/internal/server/config"
	"github.com/dmitrijs2005/astrochat/internal/server/gateway"
	"github.com/dmitrijs2005/astrochat/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/astrochat/internal/server/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "astroctl:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogBackend, os.Stderr, false)
	if err != nil {
		return err
	}

	rm, err := repomanager.New(cfg.DatabaseDriver)
	if err != nil {
		return err
	}
	db, err := repomanager.Open(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	g := gateway.New(db, rm, session.NewRegistry(), nil, logger, gateway.Options{
		ResetTokenTTL: cfg.ResetTokenValidityDuration,
	})

	return cli.NewApp(g, os.Stdout).Run(ctx, cli.SplitCommand(os.Args[1:]))
}
