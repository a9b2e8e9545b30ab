package service

import (
	"context"
	"log/slog"
	"strings"

	"cupcake-store/internal/apperr"
	"cupcake-store/internal/dto"
	"cupcake-store/internal/model"
	"cupcake-store/internal/repository"
)

const msgCupcakeNotFound = "cupcake not found"

type CatalogService interface {
	ListAvailable(ctx context.Context) ([]*model.Product, error)
	ListAll(ctx context.Context) ([]*model.Product, error)
	GetByID(ctx context.Context, productID uint) (*model.Product, error)
	Create(ctx context.Context, actorID uint, input *dto.ProductInput) (*model.Product, error)
	Update(ctx context.Context, actorID uint, productID uint, input *dto.ProductInput) (*model.Product, error)
	Delete(ctx context.Context, actorID uint, productID uint) error
	Seed(ctx context.Context) (int, error)
}

type catalogServiceImpl struct {
	log         *slog.Logger
	productRepo repository.ProductRepository
}

func NewCatalogService(log *slog.Logger, productRepo repository.ProductRepository) CatalogService {
	return &catalogServiceImpl{
		log:         log,
		productRepo: productRepo,
	}
}

func (s *catalogServiceImpl) ListAvailable(ctx context.Context) ([]*model.Product, error) {
	products, err := s.productRepo.ListAvailable(ctx)
	if err != nil {
		return nil, storageErr("list available products", err)
	}
	return products, nil
}

func (s *catalogServiceImpl) ListAll(ctx context.Context) ([]*model.Product, error) {
	products, err := s.productRepo.ListAll(ctx)
	if err != nil {
		return nil, storageErr("list products", err)
	}
	return products, nil
}

// GetByID only sees products that are currently on sale.
func (s *catalogServiceImpl) GetByID(ctx context.Context, productID uint) (*model.Product, error) {
	product, err := s.productRepo.FindAvailableByID(ctx, productID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound(msgCupcakeNotFound)
		}
		return nil, storageErr("find product", err)
	}
	return product, nil
}

func validateProductInput(input *dto.ProductInput) error {
	if input == nil || strings.TrimSpace(input.Name) == "" || input.Price == nil {
		return apperr.Validation("name and price are required")
	}
	if !input.Price.IsPositive() {
		return apperr.Validation("price must be greater than zero")
	}
	if !input.Price.Equal(input.Price.Round(2)) {
		return apperr.Validation("price must have at most two decimal places")
	}
	return nil
}

func productFromInput(input *dto.ProductInput) *model.Product {
	category := strings.TrimSpace(input.Category)
	if category == "" {
		category = model.DefaultCategory
	}

	available := true
	if input.Available != nil {
		available = *input.Available
	}

	return &model.Product{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price.Round(2),
		ImageURL:    input.ImageURL,
		Category:    category,
		Available:   available,
	}
}

func (s *catalogServiceImpl) Create(ctx context.Context, actorID uint, input *dto.ProductInput) (*model.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := productFromInput(input)
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, storageErr("create product", err)
	}

	s.log.InfoContext(ctx, "cupcake created", "product_id", product.ID, "name", product.Name, "admin_id", actorID)
	return product, nil
}

// Update is a full replace of the mutable fields, availability included.
func (s *catalogServiceImpl) Update(ctx context.Context, actorID uint, productID uint, input *dto.ProductInput) (*model.Product, error) {
	if err := validateProductInput(input); err != nil {
		return nil, err
	}

	product := productFromInput(input)
	product.ID = productID
	if err := s.productRepo.Update(ctx, product); err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound(msgCupcakeNotFound)
		}
		return nil, storageErr("update product", err)
	}

	s.log.InfoContext(ctx, "cupcake updated", "product_id", product.ID, "name", product.Name, "admin_id", actorID)
	return product, nil
}

func (s *catalogServiceImpl) Delete(ctx context.Context, actorID uint, productID uint) error {
	if err := s.productRepo.Delete(ctx, productID); err != nil {
		if isNotFound(err) {
			return apperr.NotFound(msgCupcakeNotFound)
		}
		return storageErr("delete product", err)
	}

	s.log.InfoContext(ctx, "cupcake deleted", "product_id", productID, "admin_id", actorID)
	return nil
}

func (s *catalogServiceImpl) Seed(ctx context.Context) (int, error) {
	n, err := s.productRepo.Seed(ctx)
	if err != nil {
		return 0, storageErr("seed catalog", err)
	}
	if n > 0 {
		s.log.InfoContext(ctx, "catalog seeded", "count", n)
	}
	return n, nil
}
