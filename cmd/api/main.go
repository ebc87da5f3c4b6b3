package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"vidly/internal/auth"
	"vidly/internal/config"
	"vidly/internal/data"
	"vidly/internal/docstore"
	"vidly/internal/docstore/memory"
	"vidly/internal/docstore/mongodb"
	"vidly/internal/docstore/postgres"
	"vidly/internal/mailer"
)

// mailSender delivers templated mail; mailer.Mailer is the production
// implementation.
type mailSender interface {
	Send(recipient, templateFile string, data any) error
}

type application struct {
	config *config.Config
	logger *slog.Logger
	store  docstore.Store
	models data.Models
	tokens *auth.TokenService
	mailer mailSender
	wg     sync.WaitGroup
}

var (
	version   = "1.0.0"
	buildTime string
)

func main() {
	displayVersion := flag.Bool("version", false, "Display version and exit")
	env := flag.String("env", "", "Environment (development|staging|production)")
	flag.Parse()

	if *displayVersion {
		fmt.Printf("Version:\t%s\n", version)
		fmt.Printf("Build time:\t%s\n", buildTime)
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
	if *env != "" {
		cfg.Env = *env
	}

	if err := run(cfg, logger); err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	tokens, err := auth.NewTokenService(cfg.Auth.JWTPrivateKey, cfg.Auth.TokenTTL)
	if err != nil {
		return err
	}

	store, err := openStore(context.Background(), cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(ctx); err != nil {
			logger.Error("closing store", slog.String("err", err.Error()))
		}
	}()

	logger.Info("document store connection established", slog.String("driver", cfg.Store.Driver))

	app := &application{
		config: cfg,
		logger: logger,
		store:  store,
		models: data.NewModels(store),
		tokens: tokens,
	}
	if cfg.SMTP.Host != "" {
		app.mailer = mailer.New(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.Sender)
	}

	return app.serve()
}

func (app *application) serve() error {
	e := app.routes()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", slog.Int("port", app.config.Port), slog.String("env", app.config.Env))
		if err := e.Start(fmt.Sprintf(":%d", app.config.Port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}

	app.logger.Info("completing background tasks...")
	app.wg.Wait()

	app.logger.Info("stopped server")
	return nil
}

func openStore(ctx context.Context, cfg config.StoreConfig) (docstore.Store, error) {
	switch cfg.Driver {
	case "mongo":
		return mongodb.Open(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case "postgres":
		return postgres.Open(ctx, postgres.Config{
			DSN:             cfg.DSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			MaxIdleLifeTime: cfg.MaxIdleLifeTime,
		})
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
