package helpers

import (
	"fmt"

	"github.com/ckendallart/storefront/app/models"
)

// ParseLineItemsFromRemoteCart maps the raw remote line items to the local
// shape. Every local line item carries a lineItemId custom attribute holding
// the remote line's own id: kept as-is when already present, appended
// otherwise. The remote id is not exposed anywhere else on the local shape.
func ParseLineItemsFromRemoteCart(checkout *models.Checkout) []models.LineItem {
	lineItems := make([]models.LineItem, 0, len(checkout.LineItems))
	for _, item := range checkout.LineItems {
		attrs := item.CustomAttributes
		if !hasCustomAttribute(attrs, models.AttrLineItemID) {
			attrs = append(append([]models.CustomAttribute{}, attrs...), models.CustomAttribute{
				Key:   models.AttrLineItemID,
				Value: item.ID,
			})
		}
		lineItems = append(lineItems, models.LineItem{
			VariantID:        item.Variant.ID,
			Quantity:         item.Quantity,
			CustomAttributes: attrs,
		})
	}
	return lineItems
}

// GetImages precomputes the responsive image descriptor for every requested
// variant id found in the catalog. Products with no matching variant and
// variants without a cached image are skipped silently; consumers must
// tolerate a missing entry.
func GetImages(selectedVariantIDs []string, products []models.Product) map[string]*models.ResponsiveImageSet {
	selected := make(map[string]bool, len(selectedVariantIDs))
	for _, id := range selectedVariantIDs {
		selected[id] = true
	}

	images := map[string]*models.ResponsiveImageSet{}
	for _, product := range products {
		for _, variant := range product.Variants {
			if !selected[variant.ID] {
				continue
			}
			set := GetResponsiveImages(variant.LocalFile)
			if set == nil {
				continue
			}
			images[variant.ID] = set
		}
	}
	return images
}

// ParseDataFromRemoteCart normalizes a raw remote checkout against the
// catalog. It re-derives everything from the full checkout on every call;
// the remote service returns the complete authoritative state after any
// mutation, so local patching would only invite drift.
func ParseDataFromRemoteCart(checkout *models.Checkout, products []models.Product) models.RemoteCartData {
	lineItems := ParseLineItemsFromRemoteCart(checkout)

	variantIDs := make([]string, 0, len(lineItems))
	for _, item := range lineItems {
		variantIDs = append(variantIDs, item.VariantID)
	}

	return models.RemoteCartData{
		ID:                checkout.ID,
		LineItems:         lineItems,
		TotalPrice:        checkout.TotalPrice,
		TotalTax:          checkout.TotalTax,
		WebURL:            checkout.WebURL,
		ImagesByVariantID: GetImages(variantIDs, products),
	}
}

// AddCustomAttributesToLineItem attaches the catalog metadata the cart page
// needs to render a line without re-querying the catalog.
func AddCustomAttributesToLineItem(product models.Product, variant models.Variant) []models.CustomAttribute {
	return []models.CustomAttribute{
		{Key: "productId", Value: product.ID},
		{Key: "pricePerUnit", Value: variant.Price.String()},
		{Key: "productTitle", Value: product.Title},
		{Key: "variantTitle", Value: variant.Title},
		{Key: "handle", Value: product.Handle},
		{Key: "collection", Value: product.ProductType},
	}
}

// GetLineItemForAddToCart builds the add payload for a single variant.
func GetLineItemForAddToCart(product models.Product, variant models.Variant, quantity int) []models.CheckoutLineItemInput {
	return []models.CheckoutLineItemInput{{
		VariantID:        variant.ID,
		Quantity:         quantity,
		CustomAttributes: AddCustomAttributesToLineItem(product, variant),
	}}
}

// GetCustomAttributeFromCartByVariantID returns the named attribute of the
// first line item matching the variant id. First match is deliberate: the
// data model assumes at most one line per variant, and duplicates (should the
// remote ever return them) resolve to the earliest line.
func GetCustomAttributeFromCartByVariantID(lineItems []models.LineItem, variantID, key string) (string, bool) {
	for _, item := range lineItems {
		if item.VariantID != variantID {
			continue
		}
		for _, attr := range item.CustomAttributes {
			if attr.Key == key {
				return attr.Value, true
			}
		}
		return "", false
	}
	return "", false
}

// IsVariantInCart reports whether the variant already has a line item.
func IsVariantInCart(cart models.CartState, variantID string) bool {
	for _, item := range cart.LineItems {
		if item.VariantID == variantID {
			return true
		}
	}
	return false
}

// GetLineItemForUpdateToCart resolves a variant id to the update payload
// addressing its remote line.
func GetLineItemForUpdateToCart(lineItems []models.LineItem, variantID string) (models.CheckoutLineItemUpdate, error) {
	for _, item := range lineItems {
		if item.VariantID != variantID {
			continue
		}
		lineItemID, ok := GetCustomAttributeFromCartByVariantID([]models.LineItem{item}, variantID, models.AttrLineItemID)
		if !ok {
			return models.CheckoutLineItemUpdate{}, fmt.Errorf("line item for variant %s has no %s attribute", variantID, models.AttrLineItemID)
		}
		return models.CheckoutLineItemUpdate{ID: lineItemID, Quantity: item.Quantity}, nil
	}
	return models.CheckoutLineItemUpdate{}, fmt.Errorf("variant %s is not in the cart", variantID)
}

// TotalItemsInCart sums line item quantities.
func TotalItemsInCart(cart models.CartState) int {
	total := 0
	for _, item := range cart.LineItems {
		total += item.Quantity
	}
	return total
}

// GetParsedVariants replaces the placeholder "Default Title" variant name
// with the product title.
func GetParsedVariants(variants []models.Variant, title string) []models.Variant {
	parsed := make([]models.Variant, len(variants))
	for i, variant := range variants {
		if variant.Title == "Default Title" {
			variant.Title = title
		}
		parsed[i] = variant
	}
	return parsed
}

func hasCustomAttribute(attrs []models.CustomAttribute, key string) bool {
	for _, attr := range attrs {
		if attr.Key == key {
			return true
		}
	}
	return false
}
