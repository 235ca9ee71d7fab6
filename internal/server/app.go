// Package server initializes and runs the main application server.
// It validates configuration, selects the storage backend, runs schema
// migrations, and starts the HTTP server with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/avagulans/inkpost/internal/logging"
	"github.com/avagulans/inkpost/internal/server/auth"
	"github.com/avagulans/inkpost/internal/server/config"
	"github.com/avagulans/inkpost/internal/server/httpapi"
	"github.com/avagulans/inkpost/internal/server/repositories/repomanager"
	"github.com/avagulans/inkpost/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repoManager repomanager.RepositoryManager
	userService *services.UserService
	blogService *services.BlogService
	codec       *auth.Codec
}

func NewApp(cfg *config.Config) (*App, error) {

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	codec, err := auth.NewCodec(cfg.SecretKey, cfg.SigningAlgorithm, cfg.AccessTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token codec error: %w", err)
	}

	var db *sql.DB
	var m repomanager.RepositoryManager

	if cfg.InMemoryStore {
		m = repomanager.NewInMemoryRepositoryManager()
	} else {
		db, err = sql.Open("pgx", cfg.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
		m, err = repomanager.NewPostgresRepositoryManager(db)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}

	us := services.NewUserService(db, m, codec)
	bs := services.NewBlogService(db, m)

	return &App{
		config:      cfg,
		logger:      logger,
		db:          db,
		repoManager: m,
		userService: us,
		blogService: bs,
		codec:       codec,
	}, nil
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

	s, err := httpapi.NewHTTPServer(app.config, app.logger, app.userService, app.blogService, app.codec)

	if err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
		return
	}

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	if app.db != nil {
		defer app.db.Close()
		if err := app.repoManager.RunMigrations(ctx, app.db); err != nil {
			return fmt.Errorf("migration error: %w", err)
		}
	}

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	return nil
}
