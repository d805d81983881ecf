// main.go
package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go-parcel/config"
	"go-parcel/controllers"
	"go-parcel/logger"
	"go-parcel/middleware"
	"go-parcel/routes"
	"go-parcel/store"
	"go-parcel/utils"
)

func main() {
	cfg, envFileFound, err := config.Load()
	if err != nil {
		logger.NewLogger("parcel-api", "debug").Fatal().Err(err).Msg("error loading config")
	}

	log := logger.NewLogger("parcel-api", cfg.LogLevel)
	if !envFileFound {
		log.Info().Msg("no .env file found, proceeding with environment variables")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to MongoDB
	client, err := store.Connect(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("error disconnecting from database")
		}
	}()

	db := client.Database(cfg.DB.Name)
	if err := store.EnsureIndexes(ctx, db); err != nil {
		log.Error().Err(err).Msg("error creating indexes")
	}
	storages := store.NewStorages(db)

	// External collaborators
	verifier := utils.NewFirebaseVerifier(cfg.Firebase)
	gateway := utils.NewStripeGateway(cfg.Payment)
	notifier := utils.NewEmailService(cfg.Email)

	// Initialize controllers
	handler := routes.NewHandler(routes.Controllers{
		Users:    controllers.NewUserController(storages.Users, cfg.RequestTimeout),
		Parcels:  controllers.NewParcelController(storages.Parcels, cfg.RequestTimeout),
		Tracking: controllers.NewTrackingController(storages.Tracking, cfg.RequestTimeout),
		Payments: controllers.NewPaymentController(storages.Parcels, storages.Payments, notifier, cfg.RequestTimeout),
		Intents:  controllers.NewPaymentIntentController(gateway),
	}, middleware.NewAuth(verifier), log)

	server := &http.Server{
		Addr:    net.JoinHostPort("", cfg.Port),
		Handler: handler,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("server is running")
		serverErr <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("HTTP server shutdown")
		}
	}
}
