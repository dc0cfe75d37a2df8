// Movie Recommendation System - Recommendation & Trending Engine
// Copyright 2026 Ninjaa-aa
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Ninjaa-aa/movie-recommendation-system-sub000

// Package main is the entry point for the recommendation engine server.
//
// The server initializes components in the following order:
//
//  1. Configuration: layered defaults, config file, and MRE_ environment
//     variables (Koanf v2)
//  2. Logging: zerolog, JSON or console format
//  3. Database: DuckDB-backed signal store with schema creation
//  4. Circuit breaker: store decorator that fails fast when DuckDB is down
//  5. Engine: similarity, personalized, trending, and top-rated ranking
//  6. HTTP server: Chi router with /api/v1 endpoints, /healthz, /metrics
//
// Shutdown on SIGINT or SIGTERM is graceful: the listener stops accepting
// connections, in-flight requests get the configured drain window, then
// the database closes.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/api"
	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/config"
	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/database"
	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/logging"
	"github.com/Ninjaa-aa/movie-recommendation-system-sub000/internal/recommend"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logging.Info().
		Str("addr", fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)).
		Str("database", cfg.Database.Path).
		Msg("starting recommendation engine server")

	db, err := database.New(&cfg.Database)
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to open database")
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("failed to close database")
		}
	}()

	store := database.NewBreakerStore(db)
	engine, err := recommend.NewEngine(store, &cfg.Recommend, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to create recommendation engine")
	}

	router := api.NewRouter(engine, &cfg.API, store.State)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logging.Error().Err(err).Msg("HTTP server failed")
	case sig := <-stop:
		logging.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("graceful shutdown incomplete, forcing close")
		_ = server.Close()
	}
	logging.Info().Msg("server stopped")
}
