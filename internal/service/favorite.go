package service

import (
	"context"

	"cupcake-store/internal/apperr"
	"cupcake-store/internal/model"
	"cupcake-store/internal/repository"
)

type FavoriteService interface {
	Add(ctx context.Context, accountID, productID uint) error
	Remove(ctx context.Context, accountID, productID uint) error
	List(ctx context.Context, accountID uint) ([]*model.Product, error)
	ListIDs(ctx context.Context, accountID uint) ([]uint, error)
	Check(ctx context.Context, accountID, productID uint) (bool, error)
}

type favoriteServiceImpl struct {
	favoriteRepo repository.FavoriteRepository
	productRepo  repository.ProductRepository
}

func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	productRepo repository.ProductRepository,
) FavoriteService {
	return &favoriteServiceImpl{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
	}
}

// Add succeeds whether or not the pair already exists.
func (s *favoriteServiceImpl) Add(ctx context.Context, accountID, productID uint) error {
	if accountID == 0 || productID == 0 {
		return apperr.Validation("userId and cupcakeId are required")
	}

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		if isNotFound(err) {
			return apperr.NotFound(msgCupcakeNotFound)
		}
		return storageErr("find product", err)
	}

	if err := s.favoriteRepo.Add(ctx, accountID, productID); err != nil {
		return storageErr("add favorite", err)
	}
	return nil
}

// Remove succeeds whether or not the pair exists.
func (s *favoriteServiceImpl) Remove(ctx context.Context, accountID, productID uint) error {
	if err := s.favoriteRepo.Remove(ctx, accountID, productID); err != nil {
		return storageErr("remove favorite", err)
	}
	return nil
}

func (s *favoriteServiceImpl) List(ctx context.Context, accountID uint) ([]*model.Product, error) {
	products, err := s.favoriteRepo.ListProducts(ctx, accountID)
	if err != nil {
		return nil, storageErr("list favorites", err)
	}
	return products, nil
}

func (s *favoriteServiceImpl) ListIDs(ctx context.Context, accountID uint) ([]uint, error) {
	ids, err := s.favoriteRepo.ListProductIDs(ctx, accountID)
	if err != nil {
		return nil, storageErr("list favorite ids", err)
	}
	return ids, nil
}

func (s *favoriteServiceImpl) Check(ctx context.Context, accountID, productID uint) (bool, error) {
	ok, err := s.favoriteRepo.Exists(ctx, accountID, productID)
	if err != nil {
		return false, storageErr("check favorite", err)
	}
	return ok, nil
}
