package helpers

import (
	"github.com/ckendallart/storefront/app/models"
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

var usd = accounting.Accounting{Symbol: "$", Precision: 2, Thousand: ",", Decimal: "."}

// GetPrettyPrice formats a price for display, e.g. 1234.5 -> "$1,234.50".
func GetPrettyPrice(price decimal.Decimal) string {
	return usd.FormatMoneyDecimal(price)
}

// GetAfterPaySingleInstallment is the price split over four installments.
func GetAfterPaySingleInstallment(price decimal.Decimal) string {
	return GetPrettyPrice(price.Div(decimal.NewFromInt(4)))
}

// GetDefaultProductImage picks the image shown on grid pages: the first
// variant that has a cached asset. Nil when no variant has one.
func GetDefaultProductImage(product models.Product) []models.ResponsiveImage {
	for _, variant := range product.Variants {
		if set := GetResponsiveImages(variant.LocalFile); set != nil {
			return set.ResponsiveImgs
		}
	}
	return nil
}

// GetLowestPrice returns the lowest low-end price across products. Zero when
// the list is empty.
func GetLowestPrice(products []models.Product) decimal.Decimal {
	lowest := decimal.Zero
	for i, product := range products {
		if i == 0 || product.PriceLow.LessThan(lowest) {
			lowest = product.PriceLow
		}
	}
	return lowest
}
