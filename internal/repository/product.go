package repository

import (
	"context"

	"cupcake-store/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRepository interface {
	Seed(ctx context.Context) (int, error)
	FindByID(ctx context.Context, productID uint) (*model.Product, error)
	FindAvailableByID(ctx context.Context, productID uint) (*model.Product, error)
	FindAvailableMany(ctx context.Context, tx *gorm.DB, productIDs []uint) ([]*model.Product, error)
	ListAvailable(ctx context.Context) ([]*model.Product, error)
	ListAll(ctx context.Context) ([]*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	Update(ctx context.Context, product *model.Product) error
	Delete(ctx context.Context, productID uint) error
	CountAvailable(ctx context.Context) (int64, error)
}

type productRepoImpl struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepoImpl{
		db: db,
	}
}

func DefaultCatalog() []*model.Product {
	return []*model.Product{
		{Name: "Cupcake de Chocolate", Description: "Delicioso cupcake de chocolate com cobertura cremosa", Price: decimal.RequireFromString("8.50"), ImageURL: "https://images.unsplash.com/photo-1576618148400-f54bed99fcfd?w=400&h=300&fit=crop", Category: "chocolate", Available: true},
		{Name: "Cupcake de Baunilha", Description: "Cupcake clássico de baunilha com buttercream", Price: decimal.RequireFromString("7.50"), ImageURL: "https://images.unsplash.com/photo-1426869884541-df7117556757?w=400&h=300&fit=crop", Category: "baunilha", Available: true},
		{Name: "Cupcake Red Velvet", Description: "O famoso red velvet com cream cheese", Price: decimal.RequireFromString("9.50"), ImageURL: "https://images.unsplash.com/photo-1614707267537-b85aaf00c4b7?w=400&h=300&fit=crop", Category: "especial", Available: true},
		{Name: "Cupcake de Morango", Description: "Cupcake de morango com pedaços da fruta", Price: decimal.RequireFromString("8.00"), ImageURL: "https://images.unsplash.com/photo-1519915212116-7cfef71f1d3e?w=400&h=300&fit=crop", Category: "frutas", Available: true},
		{Name: "Cupcake de Limão", Description: "Refrescante cupcake de limão com cobertura cítrica", Price: decimal.RequireFromString("8.00"), ImageURL: "https://images.unsplash.com/photo-1599785209707-a456fc1337bb?w=400&h=300&fit=crop", Category: "frutas", Available: true},
		{Name: "Cupcake de Nutella", Description: "Irresistível cupcake recheado com Nutella", Price: decimal.RequireFromString("10.00"), ImageURL: "https://images.unsplash.com/photo-1587668178277-295251f900ce?w=400&h=300&fit=crop", Category: "especial", Available: true},
	}
}

// Seed fills an empty catalog with the default cupcakes and reports how many
// rows were inserted.
func (r *productRepoImpl) Seed(ctx context.Context) (int, error) {
	inserted := 0
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Product{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		products := DefaultCatalog()
		if err := tx.Create(&products).Error; err != nil {
			return err
		}
		inserted = len(products)
		return nil
	})

	return inserted, err
}

func (r *productRepoImpl) FindByID(ctx context.Context, productID uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindAvailableByID(ctx context.Context, productID uint) (*model.Product, error) {
	var product model.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND available = ?", productID, true).
		First(&product).Error

	if err != nil {
		return nil, err
	}

	return &product, nil
}

func (r *productRepoImpl) FindAvailableMany(ctx context.Context, tx *gorm.DB, productIDs []uint) ([]*model.Product, error) {
	var products []*model.Product
	err := tx.WithContext(ctx).
		Where("id IN ? AND available = ?", productIDs, true).
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) ListAvailable(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("id ASC").
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) ListAll(ctx context.Context) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&products).
		Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *productRepoImpl) Create(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

// Update replaces every mutable field of an existing product.
func (r *productRepoImpl) Update(ctx context.Context, product *model.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Product
		if err := tx.Where("id = ?", product.ID).First(&existing).Error; err != nil {
			return err
		}

		err := tx.Model(&existing).
			Select("name", "description", "price", "image_url", "category", "available").
			Updates(map[string]interface{}{
				"name":        product.Name,
				"description": product.Description,
				"price":       product.Price,
				"image_url":   product.ImageURL,
				"category":    product.Category,
				"available":   product.Available,
			}).Error
		if err != nil {
			return err
		}

		product.CreatedAt = existing.CreatedAt
		return nil
	})
}

// Delete removes the product and its favorites. Order items keep their
// snapshot so order history is unaffected.
func (r *productRepoImpl) Delete(ctx context.Context, productID uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", productID).Delete(&model.Product{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return nil
	})
}

func (r *productRepoImpl) CountAvailable(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("available = ?", true).
		Count(&count).Error

	return count, err
}
