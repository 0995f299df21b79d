package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Product is a cached catalog entry synced from the commerce API. The cart
// normalizer consumes these synchronously, so the whole catalog lives in a
// local table rather than behind per-request remote calls.
type Product struct {
	ID             string          `gorm:"size:64;not null;uniqueIndex;primary_key" json:"id"`
	Title          string          `gorm:"size:255;not null" json:"title"`
	Handle         string          `gorm:"size:255;not null;uniqueIndex" json:"handle"`
	ProductType    string          `gorm:"size:100" json:"productType"`
	Description    string          `gorm:"type:text" json:"description"`
	Tags           string          `gorm:"type:text" json:"tags"`
	PriceLow       decimal.Decimal `gorm:"type:decimal(16,2)" json:"priceLow"`
	PriceHigh      decimal.Decimal `gorm:"type:decimal(16,2)" json:"priceHigh"`
	TotalInventory int             `json:"totalInventory"`
	Variants       []Variant       `gorm:"foreignKey:ProductID" json:"variants"`
	CreatedAt      time.Time       `json:"-"`
	UpdatedAt      time.Time       `json:"-"`
}

// TagList splits the comma-separated tag column.
func (p Product) TagList() []string {
	if p.Tags == "" {
		return nil
	}
	tags := strings.Split(p.Tags, ",")
	for i := range tags {
		tags[i] = strings.TrimSpace(tags[i])
	}
	return tags
}

// ExternalLink returns the destination for products sold elsewhere, marked
// with a "link:https://..." tag. Empty when the product is sold here.
func (p Product) ExternalLink() string {
	for _, tag := range p.TagList() {
		if strings.Contains(tag, "link") {
			if _, url, ok := strings.Cut(tag, ":https://"); ok {
				return "https://" + url
			}
		}
	}
	return ""
}

// Variant is a purchasable SKU of a product.
type Variant struct {
	ID               string          `gorm:"size:64;not null;uniqueIndex;primary_key" json:"id"`
	ProductID        string          `gorm:"size:64;index" json:"-"`
	Title            string          `gorm:"size:255" json:"title"`
	Price            decimal.Decimal `gorm:"type:decimal(16,2)" json:"price"`
	AvailableForSale bool            `json:"availableForSale"`
	LocalFile        *ImageAsset     `gorm:"foreignKey:VariantID" json:"localFile,omitempty"`
}

// ImageAsset is a variant's locally cached image in three fixed sizes. A size
// with an empty Src was never generated.
type ImageAsset struct {
	VariantID string     `gorm:"size:64;primary_key" json:"-"`
	Small     ImageFixed `gorm:"embedded;embeddedPrefix:small_" json:"small"`
	Medium    ImageFixed `gorm:"embedded;embeddedPrefix:medium_" json:"medium"`
	Large     ImageFixed `gorm:"embedded;embeddedPrefix:large_" json:"large"`
}

type ImageFixed struct {
	Src    string `gorm:"size:512" json:"src"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// ResponsiveImage is one rendition of an asset plus the media query that
// selects it.
type ResponsiveImage struct {
	ImgSize string `json:"imgSize"`
	Src     string `json:"src"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Media   string `json:"media"`
}

// ResponsiveImageSet is the precomputed descriptor stored per variant id in
// the cart state.
type ResponsiveImageSet struct {
	ResponsiveImgs []ResponsiveImage `json:"responsiveImgs"`
}
