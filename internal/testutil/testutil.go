// Package testutil builds throwaway databases and servers for tests.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"cupcake-store/internal/auth"
	"cupcake-store/internal/client"
	"cupcake-store/internal/config"
	"cupcake-store/internal/model"
	"cupcake-store/internal/repository"
	"cupcake-store/internal/server"
	"cupcake-store/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	TokenSecret   = "test-secret"
	AdminEmail    = "admin@sweetcupcakes.com"
	AdminPassword = "admin123"
)

func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewDB opens a migrated SQLite file that lives as long as the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := client.OpenDB(&config.Database{
		Driver:          "sqlite",
		URL:             filepath.Join(t.TempDir(), "cupcakes.db") + "?_foreign_keys=on",
		MaxIdleConns:    1,
		MaxOpenConns:    1,
		ConnMaxLifetime: time.Hour,
		SlowThreshold:   time.Second,
		LogLevel:        "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.CloseDB(db) })

	require.NoError(t, client.Migrate(db))
	return db
}

func CreateProduct(t testing.TB, db *gorm.DB, name, price string, available bool) *model.Product {
	t.Helper()

	product := &model.Product{
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Category:  model.DefaultCategory,
		Available: available,
	}
	require.NoError(t, repository.NewProductRepository(db).Create(context.Background(), product))
	return product
}

func CreateAccount(t testing.TB, db *gorm.DB, email string, role model.Role) *model.Account {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)

	account := &model.Account{
		Name:         "Test " + string(role),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, repository.NewAccountRepository(db).Create(context.Background(), account))
	return account
}

func Config() *config.Config {
	return &config.Config{
		Environment: config.Environment{Name: "test"},
		Log:         config.Log{Level: "error", Format: "json"},
		HTTP:        config.HTTPServer{AllowOrigins: []string{"*"}},
		Auth: config.Auth{
			TokenSecret: TokenSecret,
			TokenTTL:    time.Hour,
			BcryptCost:  bcrypt.MinCost,
		},
		Admin: config.Admin{
			Name:     "Administrador",
			Email:    AdminEmail,
			Password: AdminPassword,
		},
	}
}

type App struct {
	DB       *gorm.DB
	Issuer   *auth.TokenIssuer
	Services server.Services
	Server   *server.Server
}

// NewApp wires the whole API the same way cmd/api does, with the seeded
// catalog and the default administrator.
func NewApp(t testing.TB) *App {
	t.Helper()

	cfg := Config()
	log := Logger()
	db := NewDB(t)

	productRepo := repository.NewProductRepository(db)
	issuer := auth.NewTokenIssuer(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL)

	services := server.Services{
		Account:  service.NewAccountService(log, auth.NewPasswordHasher(cfg.Auth.BcryptCost), repository.NewAccountRepository(db)),
		Catalog:  service.NewCatalogService(log, productRepo),
		Favorite: service.NewFavoriteService(repository.NewFavoriteRepository(db), productRepo),
		Order:    service.NewOrderService(db, log, productRepo, repository.NewOrderRepository(db)),
		Report:   service.NewReportService(repository.NewStatsRepository(db), productRepo),
	}

	ctx := context.Background()
	_, err := services.Catalog.Seed(ctx)
	require.NoError(t, err)
	_, err = services.Account.BootstrapAdmin(ctx, cfg.Admin)
	require.NoError(t, err)

	return &App{
		DB:       db,
		Issuer:   issuer,
		Services: services,
		Server:   server.NewServer(log, cfg, issuer, services),
	}
}
