package repositories

import (
	"context"

	"github.com/ckendallart/storefront/app/models"
	"gorm.io/gorm"
)

// CatalogRepository reads the locally cached product catalog. The cache is
// replaced wholesale by sync-catalog rather than patched row by row.
type CatalogRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByHandle(ctx context.Context, handle string) (*models.Product, error)
	GetByType(ctx context.Context, productType string) ([]models.Product, error)
	ReplaceAll(ctx context.Context, products []models.Product) error
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db}
}

func (r *catalogRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Preload("Variants.LocalFile").
		Order("title ASC").
		Find(&products).Error
	return products, err
}

func (r *catalogRepository) GetByHandle(ctx context.Context, handle string) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).
		Preload("Variants").
		Preload("Variants.LocalFile").
		Where("handle = ?", handle).
		First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *catalogRepository) GetByType(ctx context.Context, productType string) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Preload("Variants.LocalFile").
		Where("LOWER(product_type) = LOWER(?)", productType).
		Order("title ASC").
		Find(&products).Error
	return products, err
}

func (r *catalogRepository) ReplaceAll(ctx context.Context, products []models.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{&models.ImageAsset{}, &models.Variant{}, &models.Product{}} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}
		if len(products) == 0 {
			return nil
		}
		return tx.Create(&products).Error
	})
}
