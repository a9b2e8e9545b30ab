package model

import "time"

type Favorite struct {
	ID        uint `gorm:"primaryKey"`
	AccountID uint `gorm:"not null;uniqueIndex:idx_favorite_account_product"`
	ProductID uint `gorm:"not null;uniqueIndex:idx_favorite_account_product;index"`
	CreatedAt time.Time

	Account Account `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	Product Product `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}
