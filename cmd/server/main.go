// Package main initializes and starts the counter HTTP server, setting
// up configuration, logging, session signing, repositories, services,
// and handlers.
package main

import (
	"cmp"
	"crypto/rand"
	"fmt"

	nethttp "net/http"

	"github.com/merchco/counterpos/internal/config"
	"github.com/merchco/counterpos/internal/logger"
	"github.com/merchco/counterpos/internal/middleware"
	"github.com/merchco/counterpos/internal/repository"
	"github.com/merchco/counterpos/internal/server/handler/http"
	"github.com/merchco/counterpos/internal/service"
	"github.com/merchco/counterpos/internal/session"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	// A missing secret gets a random one: the server still works, but
	// every restart logs all browsers out.
	secret := []byte(options.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			zapLogger.Fatal("failed to generate session secret", zap.Error(err))
		}
		zapLogger.Warn("no session secret configured, generated a volatile one")
	}
	sessions := session.NewManager(secret, options.SessionTTL)

	// Initialize the flat-file repositories.
	staffRepo := repository.NewStaffFile(options.DataDir)
	inventoryRepo := repository.NewInventoryFile(options.DataDir)
	ledger := repository.NewLedger(options.DataDir)

	// Initialize business-logic services.
	authService := service.NewAuthService(staffRepo)
	counterService := service.NewCounterService(inventoryRepo, ledger)

	// Create HTTP handlers for auth, transactions, and pages.
	authHandler := &http.AuthHandler{AuthService: authService, Sessions: sessions}
	counterHandler := &http.CounterHandler{CounterService: counterService}
	pagesHandler, err := http.NewPagesHandler()
	if err != nil {
		zapLogger.Fatal("failed to parse page templates", zap.Error(err))
	}
	sessionAuth := &middleware.SessionAuth{Sessions: sessions}

	// Build the router with middleware and routes.
	router := http.NewRouter(authHandler, counterHandler, pagesHandler, sessionAuth, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Addr,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server",
		zap.String("addr", options.Addr),
		zap.String("data_dir", options.DataDir),
	)
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
