package repository_test

import (
	"context"
	"errors"
	"testing"

	"cupcake-store/internal/model"
	"cupcake-store/internal/repository"
	"cupcake-store/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSeedOnlyFillsEmptyCatalog(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewProductRepository(db)

	n, err := repo.Seed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	n, err = repo.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	products, err := repo.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, products, 6)
	assert.Equal(t, "Cupcake de Chocolate", products[0].Name)
	assert.Equal(t, "8.50", products[0].Price.StringFixed(2))
}

func TestAvailabilityFilters(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewProductRepository(db)

	onSale := testutil.CreateProduct(t, db, "Chocolate", "8.50", true)
	hidden := testutil.CreateProduct(t, db, "Sazonal", "9.00", false)

	available, err := repo.ListAvailable(ctx)
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, onSale.ID, available[0].ID)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = repo.FindAvailableByID(ctx, hidden.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err := repo.FindByID(ctx, hidden.ID)
	require.NoError(t, err)
	assert.False(t, found.Available)

	count, err := repo.CountAvailable(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewProductRepository(db)
	product := testutil.CreateProduct(t, db, "Chocolate", "8.50", true)

	err := repo.Update(ctx, &model.Product{
		ID:        product.ID,
		Name:      "Chocolate Belga",
		Price:     decimal.RequireFromString("11.00"),
		Category:  "chocolate",
		Available: false,
	})
	require.NoError(t, err)

	got, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chocolate Belga", got.Name)
	assert.Equal(t, "11.00", got.Price.StringFixed(2))
	assert.False(t, got.Available)

	err = repo.Update(ctx, &model.Product{ID: 999, Name: "x", Price: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestFavorites(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	favorites := repository.NewFavoriteRepository(db)

	account := testutil.CreateAccount(t, db, "ana@example.com", model.RoleUser)
	first := testutil.CreateProduct(t, db, "Chocolate", "8.50", true)
	second := testutil.CreateProduct(t, db, "Baunilha", "7.50", true)

	ids, err := favorites.ListProductIDs(ctx, account.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
	assert.NotNil(t, ids)

	require.NoError(t, favorites.Add(ctx, account.ID, first.ID))
	require.NoError(t, favorites.Add(ctx, account.ID, first.ID))
	require.NoError(t, favorites.Add(ctx, account.ID, second.ID))

	ids, err = favorites.ListProductIDs(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{first.ID, second.ID}, ids)

	products, err := favorites.ListProducts(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, products, 2)
	for _, p := range products {
		assert.Contains(t, []uint{first.ID, second.ID}, p.ID)
		assert.NotEmpty(t, p.Name)
	}

	ok, err := favorites.Exists(ctx, account.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, favorites.Remove(ctx, account.ID, first.ID))
	require.NoError(t, favorites.Remove(ctx, account.ID, first.ID))

	ok, err = favorites.Exists(ctx, account.ID, first.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteProductRemovesFavorites(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	products := repository.NewProductRepository(db)
	favorites := repository.NewFavoriteRepository(db)

	account := testutil.CreateAccount(t, db, "ana@example.com", model.RoleUser)
	product := testutil.CreateProduct(t, db, "Chocolate", "8.50", true)
	require.NoError(t, favorites.Add(ctx, account.ID, product.ID))

	require.NoError(t, products.Delete(ctx, product.ID))

	ids, err := favorites.ListProductIDs(ctx, account.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	err = products.Delete(ctx, product.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewAccountRepository(db)

	admin := testutil.CreateAccount(t, db, "admin@example.com", model.RoleAdmin)
	testutil.CreateAccount(t, db, "ana@example.com", model.RoleUser)

	found, err := repo.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, found.ID)

	exists, err := repo.ExistsByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, exists)

	admins, err := repo.CountByRole(ctx, model.RoleAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 1, admins)

	err = repo.Create(ctx, &model.Account{Name: "dup", Email: "ana@example.com", PasswordHash: "x", Role: model.RoleUser})
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)

	_, err = repo.FindByID(ctx, 999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func createOrder(t *testing.T, db *gorm.DB, status model.OrderStatus, items ...*model.OrderItem) *model.Order {
	t.Helper()
	ctx := context.Background()
	repo := repository.NewOrderRepository(db)

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	order := &model.Order{
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		TotalAmount:   total,
		Status:        status,
	}

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		if err := repo.Create(ctx, tx, order); err != nil {
			return err
		}
		for _, item := range items {
			item.OrderID = order.ID
		}
		return repo.CreateOrderItems(ctx, tx, items)
	}))
	return order
}

func TestOrderStatusUpdate(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewOrderRepository(db)

	order := createOrder(t, db, model.OrderStatusPending,
		&model.OrderItem{ProductID: 1, ProductName: "Chocolate", Quantity: 1, UnitPrice: decimal.RequireFromString("8.50")},
	)

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, model.OrderStatusCompleted))
	got, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, got.Status)

	// same status again must not look like a missing row
	require.NoError(t, repo.UpdateStatus(ctx, order.ID, model.OrderStatusCompleted))

	err = repo.UpdateStatus(ctx, 999, model.OrderStatusCompleted)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestStatsEmpty(t *testing.T) {
	ctx := context.Background()
	stats := repository.NewStatsRepository(testutil.NewDB(t))

	orders, err := stats.CountOrders(ctx)
	require.NoError(t, err)
	assert.Zero(t, orders)

	revenue, err := stats.Revenue(ctx)
	require.NoError(t, err)
	assert.True(t, revenue.IsZero())

	top, err := stats.TopSeller(ctx)
	require.NoError(t, err)
	assert.Nil(t, top)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	stats := repository.NewStatsRepository(db)

	price := decimal.RequireFromString("8.50")
	createOrder(t, db, model.OrderStatusPending,
		&model.OrderItem{ProductID: 1, ProductName: "Chocolate", Quantity: 2, UnitPrice: price},
		&model.OrderItem{ProductID: 2, ProductName: "Baunilha", Quantity: 1, UnitPrice: decimal.RequireFromString("7.50")},
	)
	createOrder(t, db, model.OrderStatusCompleted,
		&model.OrderItem{ProductID: 1, ProductName: "Chocolate", Quantity: 1, UnitPrice: price},
	)
	createOrder(t, db, model.OrderStatusCancelled,
		&model.OrderItem{ProductID: 2, ProductName: "Baunilha", Quantity: 5, UnitPrice: decimal.RequireFromString("7.50")},
	)

	orders, err := stats.CountOrders(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, orders)

	pending, err := stats.CountOrdersByStatus(ctx, model.OrderStatusPending)
	require.NoError(t, err)
	assert.EqualValues(t, 1, pending)

	revenue, err := stats.Revenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, "33.00", revenue.StringFixed(2))

	top, err := stats.TopSeller(ctx)
	require.NoError(t, err)
	require.NotNil(t, top)
	assert.Equal(t, "Baunilha", top.Name)
	assert.EqualValues(t, 6, top.TotalSold)
}

func TestOrderItemsBelongToOrder(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewDB(t)
	repo := repository.NewOrderRepository(db)

	orphan := []*model.OrderItem{{OrderID: 999, ProductID: 1, ProductName: "Chocolate", Quantity: 1, UnitPrice: decimal.RequireFromString("8.50")}}
	err := repo.CreateOrderItems(ctx, db, orphan)
	assert.Error(t, err)

	order := createOrder(t, db, model.OrderStatusPending,
		&model.OrderItem{ProductID: 1, ProductName: "Chocolate", Quantity: 2, UnitPrice: decimal.RequireFromString("8.50")},
	)
	require.NoError(t, db.Delete(&model.Order{}, order.ID).Error)

	items, err := repo.GetOrderItems(ctx, []uint{order.ID})
	require.NoError(t, err)
	assert.Empty(t, items)
}
