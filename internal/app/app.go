// Package app wires the configuration, logging, client storage, backend
// client and HTTP router of the Nexus web front-end and runs the server
// with graceful shutdown.
package app

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patric-chuzhbe/nexusweb/internal/apiclient"
	"github.com/patric-chuzhbe/nexusweb/internal/auth"
	"github.com/patric-chuzhbe/nexusweb/internal/clientid"
	"github.com/patric-chuzhbe/nexusweb/internal/config"
	"github.com/patric-chuzhbe/nexusweb/internal/db/jsondb"
	"github.com/patric-chuzhbe/nexusweb/internal/db/memorystorage"
	"github.com/patric-chuzhbe/nexusweb/internal/db/postgresdb"
	"github.com/patric-chuzhbe/nexusweb/internal/db/redisdb"
	"github.com/patric-chuzhbe/nexusweb/internal/db/storage"
	"github.com/patric-chuzhbe/nexusweb/internal/logger"
	"github.com/patric-chuzhbe/nexusweb/internal/models"
	"github.com/patric-chuzhbe/nexusweb/internal/roadmap"
	"github.com/patric-chuzhbe/nexusweb/internal/router"
	"github.com/patric-chuzhbe/nexusweb/internal/session"
	"github.com/patric-chuzhbe/nexusweb/internal/ui"
)

const shutdownTimeout = 10 * time.Second

// App holds everything needed to serve the front-end.
type App struct {
	cfg         *config.Config
	db          storage.Storage
	httpHandler http.Handler
}

// New loads the configuration, initialises the logger, opens the client
// storage and builds the router.
func New(options ...config.InitOption) (*App, error) {
	var err error
	app := &App{}

	app.cfg, err = config.New(options...)
	if err != nil {
		return nil, err
	}

	err = logger.Init(app.cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	clientCookieSigningSecretKey, err := base64.URLEncoding.DecodeString(app.cfg.ClientCookieSigningSecretKey)
	if err != nil {
		return nil, fmt.Errorf("in internal/app/app.go/New(): error while `base64.URLEncoding.DecodeString()` calling: %w", err)
	}

	app.db, err = getStorageByType(app.cfg)
	if err != nil {
		return nil, err
	}

	renderer, err := ui.New()
	if err != nil {
		_ = app.db.Close()
		return nil, err
	}

	api := apiclient.New(app.cfg.APIBaseURL)

	app.httpHandler = router.New(
		auth.New(api, session.New(app.db)),
		roadmap.New(api, roadmap.WithDemoFallback(app.cfg.DemoFallback, app.cfg.DemoFallbackDelay)),
		renderer,
		app.db,
		clientid.New(app.cfg.ClientCookieName, clientCookieSigningSecretKey),
	)

	return app, nil
}

// Handler is the root HTTP handler.
func (a *App) Handler() http.Handler {
	return a.httpHandler
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM or a server error.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Log.Infoln(
		"server running",
		"RunAddr", a.cfg.RunAddr,
		"APIBaseURL", a.cfg.APIBaseURL,
		"DemoFallback", a.cfg.DemoFallback,
	)

	server := &http.Server{
		Addr:              a.cfg.RunAddr,
		Handler:           a.httpHandler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrCh := make(chan error, 1)
	go func() {
		serverErrCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Log.Infoln("Received shutdown signal. Closing the client storage and exiting...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}

		return a.db.Close()

	case err := <-serverErrCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	}
}

// Close flushes the logger.
func (a *App) Close() {
	if err := logger.Sync(); err != nil {
		fmt.Println("Logger sync error:", err)
	}
}

func getAvailableStorageType(cfg *config.Config) int {
	if cfg.DatabaseDSN != "" {
		return models.StorageTypePostgresql
	}

	if cfg.RedisAddr != "" {
		return models.StorageTypeRedis
	}

	if cfg.StorageFilePath != "" {
		return models.StorageTypeFile
	}

	return models.StorageTypeMemory
}

func getStorageByType(cfg *config.Config) (storage.Storage, error) {
	switch getAvailableStorageType(cfg) {
	case models.StorageTypeUnknown:
		return nil, errors.New("unknown storage type")

	case models.StorageTypePostgresql:
		options := []postgresdb.InitOption{}
		if cfg.MigrationsDir != "" {
			options = append(options, postgresdb.WithMigrationsDir(cfg.MigrationsDir))
		}
		return postgresdb.New(
			context.Background(),
			cfg.DatabaseDSN,
			cfg.DBConnectionTimeout,
			options...,
		)

	case models.StorageTypeRedis:
		return redisdb.New(context.Background(), cfg.RedisAddr, cfg.RedisPassword)

	case models.StorageTypeFile:
		return jsondb.New(cfg.StorageFilePath)
	}

	return memorystorage.New()
}
