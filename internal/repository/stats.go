package repository

import (
	"context"

	"cupcake-store/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type TopSeller struct {
	ProductID uint
	Name      string
	TotalSold int64
}

type StatsRepository interface {
	CountOrders(ctx context.Context) (int64, error)
	CountOrdersByStatus(ctx context.Context, status model.OrderStatus) (int64, error)
	Revenue(ctx context.Context) (decimal.Decimal, error)
	TopSeller(ctx context.Context) (*TopSeller, error)
}

type statsRepoImpl struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepoImpl{
		db: db,
	}
}

func (r *statsRepoImpl) CountOrders(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&count).Error
	return count, err
}

func (r *statsRepoImpl) CountOrdersByStatus(ctx context.Context, status model.OrderStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ?", status).
		Count(&count).Error

	return count, err
}

// Revenue sums the totals of every order that was not cancelled.
func (r *statsRepoImpl) Revenue(ctx context.Context) (decimal.Decimal, error) {
	var revenue decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("SUM(total_amount)").
		Where("status <> ?", model.OrderStatusCancelled).
		Row().
		Scan(&revenue)
	if err != nil {
		return decimal.Zero, err
	}

	if !revenue.Valid {
		return decimal.Zero, nil
	}
	return revenue.Decimal.Round(2), nil
}

// TopSeller returns nil when no order item exists yet.
func (r *statsRepoImpl) TopSeller(ctx context.Context) (*TopSeller, error) {
	var rows []*TopSeller
	err := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Select("product_id, MAX(product_name) AS name, SUM(quantity) AS total_sold").
		Group("product_id").
		Order("total_sold DESC").
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}
