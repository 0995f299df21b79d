package fakers

import (
	"encoding/base64"
	"fmt"
	"math/rand"

	"github.com/ckendallart/storefront/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

var productTypes = []string{"Original", "Print"}

// ProductFaker builds a catalog entry shaped like a synced one: opaque
// base64 ids carrying a trailing numeric id, a price range spanning the
// variants, and a fixed-size image asset per variant.
func ProductFaker() *models.Product {
	title := faker.Word() + " " + faker.Word()
	productID := encodeGlobalID("Product", rand.Int63n(1_000_000_000))

	numVariants := rand.Intn(3) + 1
	variants := make([]models.Variant, numVariants)

	low := fakePrice()
	high := low
	for i := 0; i < numVariants; i++ {
		price := fakePrice()
		if price.LessThan(low) {
			low = price
		}
		if price.GreaterThan(high) {
			high = price
		}

		variantID := encodeGlobalID("ProductVariant", rand.Int63n(1_000_000_000))
		variants[i] = models.Variant{
			ID:               variantID,
			ProductID:        productID,
			Title:            fmt.Sprintf("%d x %d", 8*(i+1), 10*(i+1)),
			Price:            price,
			AvailableForSale: true,
			LocalFile:        imageAssetFaker(variantID),
		}
	}

	return &models.Product{
		ID:             productID,
		Title:          title,
		Handle:         slug.Make(title),
		ProductType:    productTypes[rand.Intn(len(productTypes))],
		Description:    faker.Paragraph() + " Details: oil on canvas; signed; ships in 5 days",
		Tags:           "art, " + faker.Word(),
		PriceLow:       low,
		PriceHigh:      high,
		TotalInventory: rand.Intn(20) + 1,
		Variants:       variants,
	}
}

func imageAssetFaker(variantID string) *models.ImageAsset {
	src := "https://cdn.example.com/images/" + faker.UUIDDigit() + ".jpg"
	return &models.ImageAsset{
		VariantID: variantID,
		Small:     models.ImageFixed{Src: src + "?width=300", Width: 300, Height: 375},
		Medium:    models.ImageFixed{Src: src + "?width=500", Width: 500, Height: 625},
		Large:     models.ImageFixed{Src: src + "?width=700", Width: 700, Height: 875},
	}
}

func encodeGlobalID(kind string, id int64) string {
	raw := fmt.Sprintf("gid://shopify/%s/%d", kind, id)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

func fakePrice() decimal.Decimal {
	return decimal.NewFromInt(int64(rand.Intn(900) + 100))
}
