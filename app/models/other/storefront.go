package other

import "github.com/shopspring/decimal"

// Raw catalog shapes returned by the commerce API's product listing, consumed
// by the sync-catalog command and mapped into the local catalog cache.

type ProductsResponse struct {
	Products []RemoteProduct `json:"products"`
}

type RemoteProduct struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Handle         string          `json:"handle"`
	ProductType    string          `json:"productType"`
	Description    string          `json:"description"`
	Tags           []string        `json:"tags"`
	TotalInventory int             `json:"totalInventory"`
	Variants       []RemoteVariant `json:"variants"`
}

type RemoteVariant struct {
	ID               string          `json:"id"`
	Title            string          `json:"title"`
	Price            decimal.Decimal `json:"price"`
	AvailableForSale bool            `json:"availableForSale"`
	Image            *RemoteImage    `json:"image,omitempty"`
}

type RemoteImage struct {
	Src    string `json:"src"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}
