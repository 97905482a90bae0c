// Package server assembles the astrochat server: it opens the database,
// applies migrations, wires the gateway and runs the HTTP API until a
// termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/astrochat/internal/logging"
	"github.com/dmitrijs2005/astrochat/internal/server/config"
	"github.com/dmitrijs2005/astrochat/internal/server/gateway"
	"github.com/dmitrijs2005/astrochat/internal/server/httpapi"
	"github.com/dmitrijs2005/astrochat/internal/server/notify"
	"github.com/dmitrijs2005/astrochat/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/astrochat/internal/server/session"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	gateway *gateway.Gateway
}

// openDB is a seam for tests.
var openDB = repomanager.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogBackend, os.Stdout, c.GinMode == "debug")
	if err != nil {
		return nil, err
	}

	rm, err := repomanager.New(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	db, err := openDB(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	var n notify.Notifier
	if c.MailEnabled() {
		n = notify.NewMailgunNotifier(c.MailgunDomain, c.MailgunAPIKey, c.MailgunSender)
	} else {
		n = notify.NewLogNotifier(logger)
	}

	warnResetDelivery(ctx, logger, c)

	g := gateway.New(db, rm, session.NewRegistry(), n, logger, gateway.Options{
		SessionTTL:    c.SessionValidityDuration,
		ResetTokenTTL: c.ResetTokenValidityDuration,
	})
	if err := g.InitializeSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("db migration error: %w", err)
	}

	return &App{config: c, logger: logger, db: db, gateway: g}, nil
}

// warnResetDelivery reports a setup in which reset tokens requested over HTTP
// reach nobody. It returns whether it warned.
func warnResetDelivery(ctx context.Context, logger logging.Logger, c *config.Config) bool {
	if c.MailEnabled() || c.ResetTokenInResponse {
		return false
	}
	logger.Warn(ctx, "password reset tokens are not delivered: mail is not configured and demo mode is off; use astroctl issue-token")
	return true
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.gateway, app.logger, httpapi.Options{
		Address:              app.config.EndpointAddrHTTP,
		SecretKey:            app.config.SecretKey,
		SessionValidity:      app.config.SessionValidityDuration,
		ResetTokenInResponse: app.config.ResetTokenInResponse,
		GinMode:              app.config.GinMode,
	})

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or a termination signal arrives, then
// closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "db_driver", app.config.DatabaseDriver, "mail", app.config.MailEnabled())

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "error closing database", "error", err)
	}
	app.logger.Info(ctx, "Stopped")
}
