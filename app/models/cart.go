package models

import "github.com/shopspring/decimal"

// LoadingCart is the status flag carried by a cart that is still hydrating
// from the remote checkout. It is a string rather than a bool because it
// names which operation is in flight.
const LoadingCart = "cart"

// AttrLineItemID is the custom attribute key that carries the remote
// checkout's per-line identifier. It is the join key between local line
// items and remote mutation calls.
const AttrLineItemID = "lineItemId"

type CustomAttribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// LineItem is one variant-and-quantity entry of the local cart. The remote
// line item id and the catalog display metadata ride along as custom
// attributes, since the remote checkout's line items carry neither.
type LineItem struct {
	VariantID        string            `json:"variantId"`
	Quantity         int               `json:"quantity"`
	CustomAttributes []CustomAttribute `json:"customAttributes"`
}

// CartState is the authoritative in-memory cart. It is replaced wholesale by
// every reducer transition, never mutated in place.
type CartState struct {
	ID                string                         `json:"id"`
	TotalPrice        decimal.Decimal                `json:"totalPrice"`
	TotalTax          decimal.Decimal                `json:"totalTax"`
	WebURL            string                         `json:"webUrl"`
	LineItems         []LineItem                     `json:"lineItems"`
	ImagesByVariantID map[string]*ResponsiveImageSet `json:"imagesByVariantId"`
	Loading           string                         `json:"loading"`
	Error             error                          `json:"-"`
}

// RemoteCartData is the normalized projection of a raw remote checkout plus
// the product catalog.
type RemoteCartData struct {
	ID                string
	LineItems         []LineItem
	TotalPrice        decimal.Decimal
	TotalTax          decimal.Decimal
	WebURL            string
	ImagesByVariantID map[string]*ResponsiveImageSet
}

// CheckoutRef is the persisted pointer to a remote checkout. TimeStamp is
// epoch milliseconds from the moment the checkout was created.
type CheckoutRef struct {
	ID        string `json:"id"`
	TimeStamp int64  `json:"timeStamp"`
}
