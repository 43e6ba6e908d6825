// Package server initializes and runs the trivia quiz API: it opens the
// database, applies migrations, wires the services and runs the HTTP and
// gRPC servers until the process is told to stop.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/triviaquiz/internal/cryptox"
	"github.com/dmitrijs2005/triviaquiz/internal/logging"
	"github.com/dmitrijs2005/triviaquiz/internal/server/auth"
	"github.com/dmitrijs2005/triviaquiz/internal/server/config"
	"github.com/dmitrijs2005/triviaquiz/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/triviaquiz/internal/server/rest"
	"github.com/dmitrijs2005/triviaquiz/internal/server/services"
	"golang.org/x/sync/errgroup"

	gs "github.com/dmitrijs2005/triviaquiz/internal/server/grpc"
)

// runner is a server that blocks until its context is done.
type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	db      *sql.DB
	servers []runner
}

// NewApp opens the database, migrates it and builds both servers. The
// returned App owns the database handle.
func NewApp(ctx context.Context, c *config.Config, out io.Writer) (*App, error) {
	logger := logging.New(out, c.Env, c.LogLevel)

	db, err := repomanager.Open(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(ctx, c, logger, db, repomanager.NewPostgresRepositoryManager())
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) (*App, error) {
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	issuer, err := newIssuer(c)
	if err != nil {
		return nil, err
	}

	hasher := cryptox.NewHasher(cryptox.DefaultParams, c.HashWorkers)

	as, err := services.NewAuthService(db, rm, hasher, issuer, logger)
	if err != nil {
		return nil, fmt.Errorf("auth service: %w", err)
	}
	us := services.NewUserService(db, rm, hasher, logger)
	qs := services.NewQuizService(db, rm, logger)

	router, err := rest.NewRouter(rest.NewHandler(as, us, qs, db, logger))
	if err != nil {
		return nil, fmt.Errorf("router: %w", err)
	}

	timeouts := rest.Timeouts{Read: c.HTTPReadTimeout, Write: c.HTTPWriteTimeout, Idle: c.HTTPIdleTimeout}

	return &App{
		config: c,
		logger: logger,
		db:     db,
		servers: []runner{
			rest.NewHTTPServer(c.EndpointAddrHTTP, router, timeouts, logger),
			gs.NewGRPCServer(c.EndpointAddrGRPC, db, logger),
		},
	}, nil
}

func newIssuer(c *config.Config) (*auth.Issuer, error) {
	privateKey, err := c.PrivateKeyPEM()
	if err != nil {
		return nil, fmt.Errorf("private key: %w", err)
	}
	publicKey, err := c.PublicKeyPEM()
	if err != nil {
		return nil, fmt.Errorf("public key: %w", err)
	}

	return auth.NewIssuer(auth.IssuerConfig{
		PrivateKeyPEM: privateKey,
		PublicKeyPEM:  publicKey,
		Issuer:        c.JWTIssuer,
		Algorithm:     c.JWTAlgorithm,
		TTL:           c.AccessTokenTTL,
	})
}

// Run serves until ctx is done, a stop signal arrives, or one of the servers
// fails. The remaining servers are then stopped and the database closed.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	g, ctx := errgroup.WithContext(ctx)
	for _, s := range app.servers {
		g.Go(func() error {
			return s.Run(ctx)
		})
	}

	err := g.Wait()
	if err != nil {
		app.logger.Error(context.Background(), "server failed", "error", err.Error())
	}

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(context.Background(), "closing db", "error", cerr.Error())
	}

	app.logger.Info(context.Background(), "App stopped")
	return err
}
