package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"apptrack.local/internal/api"
	"apptrack.local/internal/auth"
	"apptrack.local/internal/cli"
	"apptrack.local/internal/config"
	applog "apptrack.local/internal/log"
	"apptrack.local/internal/session"
	"apptrack.local/internal/store"
	"apptrack.local/internal/tracker"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "apptrack:", err)
		os.Exit(1)
	}

	logger := applog.New(cfg.LogLevel)

	if err := os.MkdirAll(filepath.Dir(cfg.StatePath), 0o755); err != nil {
		logger.Fatal().Err(err).Msg("create state dir")
	}

	db, err := store.OpenSQLite(cfg.StatePath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.StatePath).Msg("open state db")
	}
	defer db.Close()

	ctx := context.Background()

	st := store.New(db)
	if err := st.Migrate(ctx); err != nil {
		logger.Fatal().Err(err).Msg("migrate state db")
	}

	// One-time session rehydration; commands run only after this resolves.
	sess := session.New(st)
	if err := sess.Initialize(ctx); err != nil {
		logger.Fatal().Err(err).Msg("initialize session")
	}

	client := api.New(cfg.APIURL, sess.Token)
	client.OnUnauthorized(func() {
		// Token expired or revoked: drop the session before the failing call
		// returns, the same way the web client forces a trip to /login.
		if err := sess.Logout(ctx); err != nil {
			logger.Warn().Err(err).Msg("clear session")
		}
		fmt.Fprintln(os.Stderr, "Session expired. Please run 'apptrack login'.")
	})

	app := &cli.App{
		Config:  cfg,
		Log:     logger,
		Session: sess,
		Flow:    auth.New(client, sess),
		Tracker: tracker.New(client, st, logger),
		Stdout:  os.Stdout,
		Stdin:   os.Stdin,
	}

	if err := app.Root().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "apptrack:", err)
		os.Exit(1)
	}
}
