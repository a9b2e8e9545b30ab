package service_test

import (
	"testing"

	"cupcake-store/internal/auth"
	"cupcake-store/internal/repository"
	"cupcake-store/internal/service"
	"cupcake-store/internal/testutil"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type services struct {
	db       *gorm.DB
	account  service.AccountService
	catalog  service.CatalogService
	favorite service.FavoriteService
	order    service.OrderService
	report   service.ReportService
}

func newServices(t *testing.T) *services {
	t.Helper()

	db := testutil.NewDB(t)
	log := testutil.Logger()
	productRepo := repository.NewProductRepository(db)

	return &services{
		db:       db,
		account:  service.NewAccountService(log, auth.NewPasswordHasher(bcrypt.MinCost), repository.NewAccountRepository(db)),
		catalog:  service.NewCatalogService(log, productRepo),
		favorite: service.NewFavoriteService(repository.NewFavoriteRepository(db), productRepo),
		order:    service.NewOrderService(db, log, productRepo, repository.NewOrderRepository(db)),
		report:   service.NewReportService(repository.NewStatsRepository(db), productRepo),
	}
}
