// Package server initializes and runs the application: it picks the storage
// backend, runs migrations, builds the user service and serves the HTTP API
// until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gatekeeper/internal/dbx"
	"github.com/dmitrijs2005/gatekeeper/internal/logging"
	"github.com/dmitrijs2005/gatekeeper/internal/server/auth"
	"github.com/dmitrijs2005/gatekeeper/internal/server/config"
	"github.com/dmitrijs2005/gatekeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gatekeeper/internal/server/rest"
	"github.com/dmitrijs2005/gatekeeper/internal/server/services"
	"github.com/gin-gonic/gin"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *rest.Server
}

// openDB is a seam for tests.
var openDB = dbx.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	return newApp(ctx, c, os.Stdout)
}

func newApp(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {

	logger := logging.NewJSON(logOut, c.LogLevel)
	gin.SetMode(c.GinMode)

	app := &App{config: c, logger: logger}

	var (
		conn dbx.DBTX
		rm   repomanager.RepositoryManager
	)

	if c.DatabaseDSN != "" {
		db, err := openDB(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}

		rm = repomanager.NewPostgresRepositoryManager()
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrations error: %w", err)
		}

		app.db = db
		conn = db
	} else {
		logger.Warn(ctx, "no database configured, users are kept in memory")
		rm = repomanager.NewMemoryRepositoryManager()
	}

	hasher, err := auth.NewHasher(c.HashAlgorithm, c.HashCost)
	if err != nil {
		app.closeDB(ctx)
		return nil, err
	}

	issuer, err := auth.NewIssuer(c.SecretKey)
	if err != nil {
		app.closeDB(ctx)
		return nil, err
	}

	us := services.NewUserService(conn, rm, hasher, issuer)

	app.server = rest.NewServer(c.EndpointAddrHTTP, logger, us, issuer,
		rest.WithSecureCookie(c.CookieSecure),
		rest.WithCORSOrigins(c.CORSAllowedOrigins),
	)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) closeDB(ctx context.Context) {
	if app.db == nil {
		return
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}

// Run serves HTTP until ctx is cancelled or a termination signal is received.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()
	defer app.closeDB(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, "http server error", "error", err)
		return err
	}

	app.logger.Info(ctx, "App stopped")
	return nil
}
