package models

import "github.com/shopspring/decimal"

// Checkout is the raw remote checkout exactly as the commerce API returns
// it. Normalization into CartState happens in the helpers, not here.
type Checkout struct {
	ID         string             `json:"id"`
	WebURL     string             `json:"webUrl"`
	TotalPrice decimal.Decimal    `json:"totalPrice"`
	TotalTax   decimal.Decimal    `json:"totalTax"`
	LineItems  []CheckoutLineItem `json:"lineItems"`
}

// CheckoutLineItem is one remote line. Its ID addresses the line in update
// and remove calls and is distinct from the variant id.
type CheckoutLineItem struct {
	ID               string            `json:"id"`
	Quantity         int               `json:"quantity"`
	Variant          CheckoutVariant   `json:"variant"`
	CustomAttributes []CustomAttribute `json:"customAttributes"`
}

type CheckoutVariant struct {
	ID    string          `json:"id"`
	Title string          `json:"title"`
	Price decimal.Decimal `json:"price"`
}

// CheckoutLineItemInput is the payload for adding a line to a checkout.
type CheckoutLineItemInput struct {
	VariantID        string            `json:"variantId"`
	Quantity         int               `json:"quantity"`
	CustomAttributes []CustomAttribute `json:"customAttributes"`
}

// CheckoutLineItemUpdate addresses an existing line by its remote id.
type CheckoutLineItemUpdate struct {
	ID       string `json:"id"`
	Quantity int    `json:"quantity"`
}
