package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"cupcake-store/internal/auth"
	"cupcake-store/internal/client"
	"cupcake-store/internal/config"
	"cupcake-store/internal/logging"
	"cupcake-store/internal/repository"
	"cupcake-store/internal/server"
	"cupcake-store/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.New(os.Stdout, cfg.Log)
	if err != nil {
		fmt.Printf("Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("shutting down with error", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx := context.Background()

	if !cfg.Environment.IsDevelopment() && cfg.Auth.TokenSecret == config.DefaultTokenSecret {
		log.Warn("AUTH_TOKEN_SECRET uses the development default", "environment", cfg.Environment.Name)
	}

	db, err := client.OpenDB(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.CloseDB(db); err != nil {
			log.Error("close database", "err", err)
		}
		log.Info("database connection closed")
	}()

	if err := client.Migrate(db); err != nil {
		return err
	}

	accountRepo := repository.NewAccountRepository(db)
	productRepo := repository.NewProductRepository(db)
	favoriteRepo := repository.NewFavoriteRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	issuer := auth.NewTokenIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	services := server.Services{
		Account:  service.NewAccountService(log, hasher, accountRepo),
		Catalog:  service.NewCatalogService(log, productRepo),
		Favorite: service.NewFavoriteService(favoriteRepo, productRepo),
		Order:    service.NewOrderService(db, log, productRepo, orderRepo),
		Report:   service.NewReportService(statsRepo, productRepo),
	}

	if cfg.Catalog.Seed {
		if _, err := services.Catalog.Seed(ctx); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}
	if _, err := services.Account.BootstrapAdmin(ctx, cfg.Admin); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	// Init HTTP server
	srv := server.NewServer(log, cfg, issuer, services)

	serverErr := make(chan error, 1)
	log.Info("Starting HTTP server", "addr", cfg.HTTP.Addr(), "environment", cfg.Environment.Name)
	go func() {
		if err := srv.Start(cfg.HTTP.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigChan:
		log.Info("Signal received, starting graceful shutdown...", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}
