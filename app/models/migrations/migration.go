package migrations

import (
	"github.com/ckendallart/storefront/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Product{},
		&models.Variant{},
		&models.ImageAsset{},
	)
}
