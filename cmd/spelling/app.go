package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/japaniel/spelling/pkg/config"
	"github.com/japaniel/spelling/pkg/db"
	"github.com/japaniel/spelling/pkg/slot"
	"github.com/japaniel/spelling/pkg/words"
	"github.com/japaniel/spelling/pkg/wordsource"
)

// App is the session: it owns the configuration, the opened storage and the
// word store loaded from it. Commands receive it explicitly.
type App struct {
	Config  *config.Config
	Log     *slog.Logger
	Store   *words.Store
	Fetcher *wordsource.Fetcher

	conn *sql.DB
}

// NewApp opens the configured storage backend and loads the word store.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{
		Config:  cfg,
		Log:     logger,
		Fetcher: wordsource.NewFetcher(cfg.Fetch, logger),
	}

	var s words.Slot
	switch cfg.Storage.Backend {
	case config.BackendFile:
		s = slot.NewFile(cfg.Storage.Path)
	case config.BackendSQLite:
		conn, err := db.Open(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("open database %s: %w", cfg.Storage.Path, err)
		}
		app.conn = conn
		s = db.NewSlot(conn, cfg.Storage.Slot)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	app.Store = words.Load(s, words.WithLogger(logger))
	logger.Debug("session started",
		slog.String("backend", cfg.Storage.Backend),
		slog.String("path", cfg.Storage.Path),
		slog.Int("entries", app.Store.Len()),
	)
	return app, nil
}

// Close releases the storage backend.
func (a *App) Close() error {
	if a.conn == nil {
		return nil
	}
	return a.conn.Close()
}
