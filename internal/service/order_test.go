package service_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"cupcake-store/internal/apperr"
	"cupcake-store/internal/client"
	"cupcake-store/internal/config"
	"cupcake-store/internal/dto"
	"cupcake-store/internal/model"
	"cupcake-store/internal/repository"
	"cupcake-store/internal/service"
	"cupcake-store/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderRequest(items ...*dto.Item) *dto.CreateOrderRequest {
	return &dto.CreateOrderRequest{
		CustomerName:  "Ana",
		CustomerEmail: "ana@example.com",
		CustomerPhone: "11 99999-0000",
		Items:         items,
	}
}

func TestCreateOrderPricesFromCatalog(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	chocolate := testutil.CreateProduct(t, s.db, "Chocolate", "8.50", true)
	vanilla := testutil.CreateProduct(t, s.db, "Baunilha", "7.50", true)

	order, err := s.order.CreateOrder(ctx, nil, orderRequest(
		&dto.Item{CupcakeID: chocolate.ID, Quantity: 2},
		&dto.Item{CupcakeID: vanilla.ID, Quantity: 1},
	))
	require.NoError(t, err)
	assert.Equal(t, "24.50", order.TotalAmount.StringFixed(2))
	assert.Equal(t, model.OrderStatusPending, order.Status)
	assert.Nil(t, order.AccountID)

	detail, err := s.order.GetOrderDetail(ctx, order.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 2)
	assert.Equal(t, "Chocolate", detail.Items[0].CupcakeName)
	assert.Equal(t, 2, detail.Items[0].Quantity)
	assert.Equal(t, "8.50", detail.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "7.50", detail.Items[1].UnitPrice.StringFixed(2))
}

func TestCreateOrderForAccount(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	account := testutil.CreateAccount(t, s.db, "ana@example.com", model.RoleUser)
	other := testutil.CreateAccount(t, s.db, "bob@example.com", model.RoleUser)
	product := testutil.CreateProduct(t, s.db, "Chocolate", "8.50", true)

	order, err := s.order.CreateOrder(ctx, &account.ID, orderRequest(&dto.Item{CupcakeID: product.ID, Quantity: 3}))
	require.NoError(t, err)
	require.NotNil(t, order.AccountID)
	assert.Equal(t, account.ID, *order.AccountID)

	mine, err := s.order.ListAccountOrders(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Chocolate (x3)", mine[0].Items)

	theirs, err := s.order.ListAccountOrders(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestCreateOrderSkipsUnavailableItems(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	chocolate := testutil.CreateProduct(t, s.db, "Chocolate", "8.50", true)
	hidden := testutil.CreateProduct(t, s.db, "Sazonal", "9.00", false)

	order, err := s.order.CreateOrder(ctx, nil, orderRequest(
		&dto.Item{CupcakeID: chocolate.ID, Quantity: 1},
		&dto.Item{CupcakeID: hidden.ID, Quantity: 4},
		&dto.Item{CupcakeID: 999, Quantity: 1},
	))
	require.NoError(t, err)
	assert.Equal(t, "8.50", order.TotalAmount.StringFixed(2))

	detail, err := s.order.GetOrderDetail(ctx, order.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Items, 1)
}

func TestCreateOrderRejectsInvalidRequests(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	hidden := testutil.CreateProduct(t, s.db, "Sazonal", "9.00", false)

	tests := []struct {
		name string
		req  *dto.CreateOrderRequest
	}{
		{name: "nil request"},
		{name: "no items", req: orderRequest()},
		{name: "missing customer", req: &dto.CreateOrderRequest{CustomerEmail: "a@example.com", Items: []*dto.Item{{CupcakeID: 1, Quantity: 1}}}},
		{name: "missing cupcake id", req: orderRequest(&dto.Item{Quantity: 1})},
		{name: "zero quantity", req: orderRequest(&dto.Item{CupcakeID: hidden.ID, Quantity: 0})},
		{name: "negative quantity", req: orderRequest(&dto.Item{CupcakeID: hidden.ID, Quantity: -2})},
		{name: "nothing orderable", req: orderRequest(&dto.Item{CupcakeID: hidden.ID, Quantity: 1})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.order.CreateOrder(ctx, nil, tt.req)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}

	orders, err := s.order.ListOrders(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderHistorySurvivesPriceChange(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)

	product, err := s.catalog.Create(ctx, 1, &dto.ProductInput{Name: "Chocolate", Price: price("8.50")})
	require.NoError(t, err)

	order, err := s.order.CreateOrder(ctx, nil, orderRequest(&dto.Item{CupcakeID: product.ID, Quantity: 2}))
	require.NoError(t, err)

	_, err = s.catalog.Update(ctx, 1, product.ID, &dto.ProductInput{Name: "Chocolate Premium", Price: price("12.00")})
	require.NoError(t, err)

	detail, err := s.order.GetOrderDetail(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "17.00", detail.TotalAmount.StringFixed(2))
	require.Len(t, detail.Items, 1)
	assert.Equal(t, "8.50", detail.Items[0].UnitPrice.StringFixed(2))
	assert.Equal(t, "Chocolate", detail.Items[0].CupcakeName)

	require.NoError(t, s.catalog.Delete(ctx, 1, product.ID))

	detail, err = s.order.GetOrderDetail(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Chocolate", detail.Items[0].CupcakeName)
}

func TestUpdateOrderStatus(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	product := testutil.CreateProduct(t, s.db, "Chocolate", "8.50", true)

	order, err := s.order.CreateOrder(ctx, nil, orderRequest(&dto.Item{CupcakeID: product.ID, Quantity: 1}))
	require.NoError(t, err)

	require.NoError(t, s.order.UpdateStatus(ctx, 1, order.ID, model.OrderStatusProcessing))

	err = s.order.UpdateStatus(ctx, 1, order.ID, model.OrderStatus("shipped"))
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	detail, err := s.order.GetOrderDetail(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusProcessing, detail.Status)

	err = s.order.UpdateStatus(ctx, 1, 999, model.OrderStatusCompleted)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = s.order.GetOrderDetail(ctx, 999)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestListOrdersNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := newServices(t)
	chocolate := testutil.CreateProduct(t, s.db, "Chocolate", "8.50", true)
	vanilla := testutil.CreateProduct(t, s.db, "Baunilha", "7.50", true)

	first, err := s.order.CreateOrder(ctx, nil, orderRequest(&dto.Item{CupcakeID: chocolate.ID, Quantity: 1}))
	require.NoError(t, err)
	second, err := s.order.CreateOrder(ctx, nil, orderRequest(
		&dto.Item{CupcakeID: chocolate.ID, Quantity: 2},
		&dto.Item{CupcakeID: vanilla.ID, Quantity: 1},
	))
	require.NoError(t, err)

	orders, err := s.order.ListOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, second.ID, orders[0].ID)
	assert.Equal(t, "Chocolate (x2), Baunilha (x1)", orders[0].Items)
	assert.Equal(t, first.ID, orders[1].ID)
}

func TestConcurrentCheckouts(t *testing.T) {
	ctx := context.Background()

	// pool sized like the production defaults
	db, err := client.OpenDB(&config.Database{
		Driver:          "sqlite",
		URL:             filepath.Join(t.TempDir(), "checkout.db"),
		MaxIdleConns:    10,
		MaxOpenConns:    50,
		ConnMaxLifetime: time.Hour,
		SlowThreshold:   time.Second,
		LogLevel:        "silent",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.CloseDB(db) })
	require.NoError(t, client.Migrate(db))

	product := testutil.CreateProduct(t, db, "Chocolate", "8.50", true)
	orders := service.NewOrderService(db, testutil.Logger(), repository.NewProductRepository(db), repository.NewOrderRepository(db))

	const workers = 40
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := orders.CreateOrder(ctx, nil, orderRequest(&dto.Item{CupcakeID: product.ID, Quantity: 1}))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}

	list, err := orders.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, list, workers)
}
