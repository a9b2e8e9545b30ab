package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cupcake-store/internal/apperr"
	"cupcake-store/internal/dto"
	"cupcake-store/internal/model"
	"cupcake-store/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const msgOrderNotFound = "order not found"

var errNoValidItems = apperr.Validation("no valid items in order")

type OrderService interface {
	CreateOrder(ctx context.Context, accountID *uint, req *dto.CreateOrderRequest) (*model.Order, error)
	ListOrders(ctx context.Context) ([]*dto.OrderSummary, error)
	ListAccountOrders(ctx context.Context, accountID uint) ([]*dto.OrderSummary, error)
	GetOrderDetail(ctx context.Context, orderID uint) (*dto.OrderDetail, error)
	UpdateStatus(ctx context.Context, actorID uint, orderID uint, status model.OrderStatus) error
}

type orderServiceImpl struct {
	db          *gorm.DB
	log         *slog.Logger
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
}

func NewOrderService(
	db *gorm.DB,
	log *slog.Logger,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) OrderService {
	return &orderServiceImpl{
		db:          db,
		log:         log,
		productRepo: productRepo,
		orderRepo:   orderRepo,
	}
}

func validateOrderRequest(req *dto.CreateOrderRequest) error {
	if req == nil ||
		strings.TrimSpace(req.CustomerName) == "" ||
		strings.TrimSpace(req.CustomerEmail) == "" ||
		len(req.Items) == 0 {
		return apperr.Validation("incomplete order data")
	}

	for _, item := range req.Items {
		if item == nil || item.CupcakeID == 0 {
			return apperr.Validation("every item needs a cupcakeId")
		}
		if item.Quantity <= 0 {
			return apperr.Validation("item quantity must be positive")
		}
	}
	return nil
}

// CreateOrder prices the cart from the catalog, never from the client. Items
// whose product is gone or unavailable are skipped; the price lookup and the
// inserts share one transaction.
func (s *orderServiceImpl) CreateOrder(ctx context.Context, accountID *uint, req *dto.CreateOrderRequest) (*model.Order, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	productIDs := make([]uint, 0, len(req.Items))
	seen := make(map[uint]struct{}, len(req.Items))
	for _, item := range req.Items {
		if _, ok := seen[item.CupcakeID]; ok {
			continue
		}
		seen[item.CupcakeID] = struct{}{}
		productIDs = append(productIDs, item.CupcakeID)
	}

	order := &model.Order{
		AccountID:     accountID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerEmail: strings.TrimSpace(req.CustomerEmail),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Status:        model.OrderStatusPending,
	}

	var skipped []uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		products, err := s.productRepo.FindAvailableMany(ctx, tx, productIDs)
		if err != nil {
			return fmt.Errorf("get many products by item ids: %w", err)
		}

		productMap := make(map[uint]*model.Product, len(products))
		for _, product := range products {
			productMap[product.ID] = product
		}

		totalAmount := decimal.Zero
		orderItems := make([]*model.OrderItem, 0, len(req.Items))
		for _, item := range req.Items {
			product, ok := productMap[item.CupcakeID]
			if !ok {
				skipped = append(skipped, item.CupcakeID)
				continue
			}

			orderItem := &model.OrderItem{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   product.Price,
			}
			totalAmount = totalAmount.Add(orderItem.Subtotal())
			orderItems = append(orderItems, orderItem)
		}

		if len(orderItems) == 0 {
			return errNoValidItems
		}

		order.TotalAmount = totalAmount
		if err := s.orderRepo.Create(ctx, tx, order); err != nil {
			return fmt.Errorf("store order in db: %w", err)
		}

		for _, orderItem := range orderItems {
			orderItem.OrderID = order.ID
		}
		if err := s.orderRepo.CreateOrderItems(ctx, tx, orderItems); err != nil {
			return fmt.Errorf("store order items in db: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, errNoValidItems) {
			return nil, err
		}
		return nil, apperr.Storage(err)
	}

	if len(skipped) > 0 {
		s.log.WarnContext(ctx, "order items skipped, product unavailable", "order_id", order.ID, "product_ids", skipped)
	}
	s.log.InfoContext(ctx, "order created", "order_id", order.ID, "total", order.TotalAmount.StringFixed(2))
	return order, nil
}

func (s *orderServiceImpl) ListOrders(ctx context.Context) ([]*dto.OrderSummary, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, storageErr("list orders", err)
	}
	return s.summarize(ctx, orders)
}

func (s *orderServiceImpl) ListAccountOrders(ctx context.Context, accountID uint) ([]*dto.OrderSummary, error) {
	orders, err := s.orderRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, storageErr("list account orders", err)
	}
	return s.summarize(ctx, orders)
}

func (s *orderServiceImpl) summarize(ctx context.Context, orders []*model.Order) ([]*dto.OrderSummary, error) {
	orderIDs := make([]uint, len(orders))
	for i, order := range orders {
		orderIDs[i] = order.ID
	}

	items, err := s.orderRepo.GetOrderItems(ctx, orderIDs)
	if err != nil {
		return nil, storageErr("get order items", err)
	}

	lines := make(map[uint][]string, len(orders))
	for _, item := range items {
		lines[item.OrderID] = append(lines[item.OrderID], fmt.Sprintf("%s (x%d)", item.ProductName, item.Quantity))
	}

	summaries := make([]*dto.OrderSummary, len(orders))
	for i, order := range orders {
		summaries[i] = &dto.OrderSummary{
			ID:            order.ID,
			UserID:        order.AccountID,
			CustomerName:  order.CustomerName,
			CustomerEmail: order.CustomerEmail,
			CustomerPhone: order.CustomerPhone,
			TotalAmount:   order.TotalAmount,
			Status:        order.Status,
			CreatedAt:     order.CreatedAt,
			Items:         strings.Join(lines[order.ID], ", "),
		}
	}
	return summaries, nil
}

func (s *orderServiceImpl) GetOrderDetail(ctx context.Context, orderID uint) (*dto.OrderDetail, error) {
	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound(msgOrderNotFound)
		}
		return nil, storageErr("find order", err)
	}

	items, err := s.orderRepo.GetOrderItems(ctx, []uint{order.ID})
	if err != nil {
		return nil, storageErr("get order items", err)
	}

	lines := make([]*dto.OrderLine, len(items))
	for i, item := range items {
		lines[i] = &dto.OrderLine{
			CupcakeName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		}
	}

	return &dto.OrderDetail{
		ID:            order.ID,
		UserID:        order.AccountID,
		CustomerName:  order.CustomerName,
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		TotalAmount:   order.TotalAmount,
		Status:        order.Status,
		CreatedAt:     order.CreatedAt,
		Items:         lines,
	}, nil
}

// UpdateStatus allows any transition between the four known statuses.
func (s *orderServiceImpl) UpdateStatus(ctx context.Context, actorID uint, orderID uint, status model.OrderStatus) error {
	if !status.Valid() {
		return apperr.Validation("invalid status")
	}

	if err := s.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		if isNotFound(err) {
			return apperr.NotFound(msgOrderNotFound)
		}
		return storageErr("update order status", err)
	}

	s.log.InfoContext(ctx, "order status updated", "order_id", orderID, "status", status, "admin_id", actorID)
	return nil
}
