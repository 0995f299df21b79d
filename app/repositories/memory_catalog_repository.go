package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/ckendallart/storefront/app/models"
)

// memoryCatalogRepository serves the catalog from memory. Used by tests and
// by dev setups running without a database.
type memoryCatalogRepository struct {
	mu       sync.RWMutex
	products []models.Product
}

func NewMemoryCatalogRepository(products []models.Product) CatalogRepository {
	return &memoryCatalogRepository{products: products}
}

func (r *memoryCatalogRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Product{}, r.products...), nil
}

func (r *memoryCatalogRepository) GetByHandle(ctx context.Context, handle string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, product := range r.products {
		if product.Handle == handle {
			return &product, nil
		}
	}
	return nil, fmt.Errorf("product %s not found", handle)
}

func (r *memoryCatalogRepository) GetByType(ctx context.Context, productType string) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var products []models.Product
	for _, product := range r.products {
		if strings.EqualFold(product.ProductType, productType) {
			products = append(products, product)
		}
	}
	return products, nil
}

func (r *memoryCatalogRepository) ReplaceAll(ctx context.Context, products []models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = append([]models.Product{}, products...)
	return nil
}
