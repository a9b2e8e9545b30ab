package service

import (
	"context"

	"cupcake-store/internal/dto"
	"cupcake-store/internal/model"
	"cupcake-store/internal/repository"
)

// NoTopCupcake is reported while no order item exists.
var NoTopCupcake = dto.TopCupcake{Name: "N/A", TotalSold: 0}

type ReportService interface {
	Stats(ctx context.Context) (*dto.Stats, error)
}

type reportServiceImpl struct {
	statsRepo   repository.StatsRepository
	productRepo repository.ProductRepository
}

func NewReportService(statsRepo repository.StatsRepository, productRepo repository.ProductRepository) ReportService {
	return &reportServiceImpl{
		statsRepo:   statsRepo,
		productRepo: productRepo,
	}
}

func (s *reportServiceImpl) Stats(ctx context.Context) (*dto.Stats, error) {
	var (
		stats dto.Stats
		err   error
	)

	if stats.TotalOrders, err = s.statsRepo.CountOrders(ctx); err != nil {
		return nil, storageErr("count orders", err)
	}
	if stats.TotalRevenue, err = s.statsRepo.Revenue(ctx); err != nil {
		return nil, storageErr("sum revenue", err)
	}
	if stats.TotalCupcakes, err = s.productRepo.CountAvailable(ctx); err != nil {
		return nil, storageErr("count available products", err)
	}
	if stats.PendingOrders, err = s.statsRepo.CountOrdersByStatus(ctx, model.OrderStatusPending); err != nil {
		return nil, storageErr("count pending orders", err)
	}

	top, err := s.statsRepo.TopSeller(ctx)
	if err != nil {
		return nil, storageErr("find top seller", err)
	}
	stats.TopCupcake = NoTopCupcake
	if top != nil {
		stats.TopCupcake = dto.TopCupcake{Name: top.Name, TotalSold: top.TotalSold}
	}

	return &stats, nil
}
