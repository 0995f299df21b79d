package seeders

import (
	"context"

	"github.com/ckendallart/storefront/app/db/fakers"
	"github.com/ckendallart/storefront/app/models"
	"github.com/ckendallart/storefront/app/repositories"
	"gorm.io/gorm"
)

const seedProductCount = 12

// DBSeed fills the catalog cache with fake products, replacing whatever is
// there. Development only; production catalogs come from sync-catalog.
func DBSeed(db *gorm.DB) error {
	products := make([]models.Product, 0, seedProductCount)
	for i := 0; i < seedProductCount; i++ {
		products = append(products, *fakers.ProductFaker())
	}

	repo := repositories.NewCatalogRepository(db)
	return repo.ReplaceAll(context.Background(), products)
}
