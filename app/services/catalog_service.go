package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ckendallart/storefront/app/models"
	"github.com/ckendallart/storefront/app/models/other"
	"github.com/ckendallart/storefront/app/repositories"
)

// The three fixed renditions cached per variant image, matching the
// breakpoints the responsive image helper serves.
var imageRenditionWidths = map[string]int{
	"small":  300,
	"medium": 500,
	"large":  700,
}

// ProductFetcher supplies the raw catalog from the commerce API.
type ProductFetcher interface {
	FetchProducts(ctx context.Context) ([]other.RemoteProduct, error)
}

// SyncCatalog replaces the local catalog cache with the commerce API's
// current product list. This is the storefront's stand-in for a build-time
// data layer: handlers only ever read the local cache.
func SyncCatalog(ctx context.Context, fetcher ProductFetcher, repo repositories.CatalogRepository) error {
	remoteProducts, err := fetcher.FetchProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch products for catalog sync: %w", err)
	}

	products := make([]models.Product, 0, len(remoteProducts))
	for _, remote := range remoteProducts {
		products = append(products, mapRemoteProduct(remote))
	}

	if err := repo.ReplaceAll(ctx, products); err != nil {
		return fmt.Errorf("failed to store synced catalog: %w", err)
	}

	log.Printf("CatalogService: synced %d products into the local catalog", len(products))
	return nil
}

func mapRemoteProduct(remote other.RemoteProduct) models.Product {
	product := models.Product{
		ID:             remote.ID,
		Title:          remote.Title,
		Handle:         remote.Handle,
		ProductType:    remote.ProductType,
		Description:    remote.Description,
		Tags:           strings.Join(remote.Tags, ","),
		TotalInventory: remote.TotalInventory,
	}

	for i, remoteVariant := range remote.Variants {
		variant := models.Variant{
			ID:               remoteVariant.ID,
			ProductID:        remote.ID,
			Title:            remoteVariant.Title,
			Price:            remoteVariant.Price,
			AvailableForSale: remoteVariant.AvailableForSale,
		}
		if remoteVariant.Image != nil {
			variant.LocalFile = buildImageAsset(remoteVariant.ID, *remoteVariant.Image)
		}

		if i == 0 || remoteVariant.Price.LessThan(product.PriceLow) {
			product.PriceLow = remoteVariant.Price
		}
		if remoteVariant.Price.GreaterThan(product.PriceHigh) {
			product.PriceHigh = remoteVariant.Price
		}

		product.Variants = append(product.Variants, variant)
	}

	return product
}

// buildImageAsset derives the three fixed renditions from the source image,
// scaling height to preserve aspect ratio.
func buildImageAsset(variantID string, img other.RemoteImage) *models.ImageAsset {
	if img.Src == "" || img.Width <= 0 || img.Height <= 0 {
		return nil
	}

	rendition := func(size string) models.ImageFixed {
		width := imageRenditionWidths[size]
		return models.ImageFixed{
			Src:    fmt.Sprintf("%s?width=%d", img.Src, width),
			Width:  width,
			Height: img.Height * width / img.Width,
		}
	}

	return &models.ImageAsset{
		VariantID: variantID,
		Small:     rendition("small"),
		Medium:    rendition("medium"),
		Large:     rendition("large"),
	}
}
