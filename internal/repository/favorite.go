package repository

import (
	"context"

	"cupcake-store/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FavoriteRepository interface {
	Add(ctx context.Context, accountID, productID uint) error
	Remove(ctx context.Context, accountID, productID uint) error
	ListProducts(ctx context.Context, accountID uint) ([]*model.Product, error)
	ListProductIDs(ctx context.Context, accountID uint) ([]uint, error)
	Exists(ctx context.Context, accountID, productID uint) (bool, error)
}

type favoriteRepoImpl struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepoImpl{
		db: db,
	}
}

// Add is insert-or-ignore on the (account, product) pair.
func (r *favoriteRepoImpl) Add(ctx context.Context, accountID, productID uint) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "account_id"}, {Name: "product_id"}},
			DoNothing: true,
		}).
		Create(&model.Favorite{
			AccountID: accountID,
			ProductID: productID,
		}).Error
}

func (r *favoriteRepoImpl) Remove(ctx context.Context, accountID, productID uint) error {
	return r.db.WithContext(ctx).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		Delete(&model.Favorite{}).Error
}

func (r *favoriteRepoImpl) ListProducts(ctx context.Context, accountID uint) ([]*model.Product, error) {
	var products []*model.Product
	err := r.db.WithContext(ctx).
		Model(&model.Product{}).
		Select("products.*").
		Joins("INNER JOIN favorites ON favorites.product_id = products.id").
		Where("favorites.account_id = ?", accountID).
		Order("favorites.created_at DESC").
		Order("favorites.id DESC").
		Find(&products).Error

	if err != nil {
		return nil, err
	}

	return products, nil
}

func (r *favoriteRepoImpl) ListProductIDs(ctx context.Context, accountID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).
		Model(&model.Favorite{}).
		Where("account_id = ?", accountID).
		Order("id ASC").
		Pluck("product_id", &ids).Error

	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *favoriteRepoImpl) Exists(ctx context.Context, accountID, productID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Favorite{}).
		Where("account_id = ? AND product_id = ?", accountID, productID).
		Count(&count).Error

	return count > 0, err
}
