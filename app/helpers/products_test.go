package helpers

import (
	"testing"

	"github.com/ckendallart/storefront/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPrettyPrice(t *testing.T) {
	assert.Equal(t, "$1,234.50", GetPrettyPrice(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "$35.00", GetPrettyPrice(decimal.NewFromInt(35)))
	assert.Equal(t, "$0.00", GetPrettyPrice(decimal.Zero))
}

func TestGetAfterPaySingleInstallment(t *testing.T) {
	assert.Equal(t, "$100.00", GetAfterPaySingleInstallment(decimal.NewFromInt(400)))
	assert.Equal(t, "$8.75", GetAfterPaySingleInstallment(decimal.NewFromInt(35)))
}

func TestGetDefaultProductImage(t *testing.T) {
	product := catalogFixture()[0]

	imgs := GetDefaultProductImage(product)
	require.Len(t, imgs, 3)
	assert.Equal(t, "small", imgs[0].ImgSize)

	bare := catalogFixture()[1]
	assert.Nil(t, GetDefaultProductImage(bare))
}

func TestGetDefaultProductImageSkipsBareVariants(t *testing.T) {
	product := models.Product{Variants: []models.Variant{
		{ID: "variant-a"},
		{ID: "variant-b", LocalFile: &models.ImageAsset{
			Small: models.ImageFixed{Src: "https://cdn.example.com/b.jpg", Width: 300, Height: 375},
		}},
	}}

	imgs := GetDefaultProductImage(product)
	require.Len(t, imgs, 1)
	assert.Equal(t, "https://cdn.example.com/b.jpg", imgs[0].Src)
}

func TestGetLowestPrice(t *testing.T) {
	products := []models.Product{
		{PriceLow: decimal.NewFromInt(400)},
		{PriceLow: decimal.NewFromInt(35)},
		{PriceLow: decimal.NewFromInt(65)},
	}

	assert.True(t, GetLowestPrice(products).Equal(decimal.NewFromInt(35)))
	assert.True(t, GetLowestPrice(nil).IsZero())
}

func TestGetResponsiveImages(t *testing.T) {
	assert.Nil(t, GetResponsiveImages(nil))

	set := GetResponsiveImages(&models.ImageAsset{
		Small:  models.ImageFixed{Src: "https://cdn.example.com/a.jpg?width=300", Width: 300, Height: 375},
		Medium: models.ImageFixed{},
		Large:  models.ImageFixed{Src: "https://cdn.example.com/a.jpg?width=700", Width: 700, Height: 875},
	})

	// The never-generated medium rendition is left out.
	require.Len(t, set.ResponsiveImgs, 2)
	assert.Equal(t, "small", set.ResponsiveImgs[0].ImgSize)
	assert.Equal(t, "large", set.ResponsiveImgs[1].ImgSize)
	assert.Equal(t, "(min-width: 1400px)", set.ResponsiveImgs[1].Media)
}

func TestGetServerSideMediaQueries(t *testing.T) {
	set := GetResponsiveImages(catalogFixture()[0].Variants[0].LocalFile)
	css := GetServerSideMediaQueries(set.ResponsiveImgs, ".product-img")

	assert.Contains(t, css, "@media(min-width: 0px) and (max-width: 767px)")
	assert.Contains(t, css, ".product-img { width: 300px !important; height: 375px !important; }")
	assert.Contains(t, css, "width: 700px")
}
