package repositories

import (
	"context"
	"testing"

	"github.com/ckendallart/storefront/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryFixture() []models.Product {
	return []models.Product{
		{ID: "prod-1", Title: "Harvest Moon", Handle: "harvest-moon", ProductType: "Original"},
		{ID: "prod-2", Title: "Winter Field", Handle: "winter-field", ProductType: "Print"},
		{ID: "prod-3", Title: "Spring Creek", Handle: "spring-creek", ProductType: "print"},
	}
}

func TestMemoryRepositoryGetByHandle(t *testing.T) {
	repo := NewMemoryCatalogRepository(memoryFixture())

	product, err := repo.GetByHandle(context.Background(), "winter-field")
	require.NoError(t, err)
	assert.Equal(t, "prod-2", product.ID)

	_, err = repo.GetByHandle(context.Background(), "no-such-piece")
	assert.Error(t, err)
}

func TestMemoryRepositoryGetByTypeIsCaseInsensitive(t *testing.T) {
	repo := NewMemoryCatalogRepository(memoryFixture())

	prints, err := repo.GetByType(context.Background(), "Print")
	require.NoError(t, err)
	assert.Len(t, prints, 2)
}

func TestMemoryRepositoryReplaceAll(t *testing.T) {
	repo := NewMemoryCatalogRepository(memoryFixture())

	require.NoError(t, repo.ReplaceAll(context.Background(), []models.Product{
		{ID: "prod-9", Handle: "new-piece"},
	}))

	products, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "prod-9", products[0].ID)
}
