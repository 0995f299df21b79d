package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/ckendallart/storefront/app/helpers"
	"github.com/ckendallart/storefront/app/models"
	"github.com/ckendallart/storefront/app/repositories"
	"github.com/ckendallart/storefront/app/services"
	"github.com/ckendallart/storefront/app/store"
	"github.com/ckendallart/storefront/app/utils/sessions"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type ProductHandler struct {
	catalogRepo repositories.CatalogRepository
	cartSvc     *services.CartService
	checkoutSvc services.CheckoutClient
	render      *render.Render
}

func NewProductHandler(catalogRepo repositories.CatalogRepository, cartSvc *services.CartService, checkoutSvc services.CheckoutClient, renderer *render.Render) *ProductHandler {
	return &ProductHandler{catalogRepo, cartSvc, checkoutSvc, renderer}
}

// ListProducts serves the grid pages. An optional ?collection= filter
// narrows to one product type.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	var (
		products []models.Product
		err      error
	)
	if collection := r.URL.Query().Get("collection"); collection != "" {
		products, err = h.catalogRepo.GetByType(r.Context(), collection)
	} else {
		products, err = h.catalogRepo.GetAll(r.Context())
	}
	if err != nil {
		log.Printf("ListProducts: failed loading catalog: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "failed to load products"})
		return
	}

	views := make([]map[string]interface{}, 0, len(products))
	for _, product := range products {
		views = append(views, map[string]interface{}{
			"id":           product.ID,
			"title":        product.Title,
			"handle":       product.Handle,
			"collection":   product.ProductType,
			"priceLow":     helpers.GetPrettyPrice(product.PriceLow),
			"priceHigh":    helpers.GetPrettyPrice(product.PriceHigh),
			"afterPay":     helpers.GetAfterPaySingleInstallment(product.PriceLow),
			"defaultImage": helpers.GetDefaultProductImage(product),
			"externalLink": product.ExternalLink(),
		})
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"products": views})
}

// GetProduct serves a single product page's data: parsed variants with
// responsive images, details split out of the description, prices.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	handle := mux.Vars(r)["handle"]

	product, err := h.catalogRepo.GetByHandle(r.Context(), handle)
	if err != nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]interface{}{"error": "product not found"})
		return
	}

	parsedVariants := helpers.GetParsedVariants(product.Variants, product.Title)
	variantViews := make([]map[string]interface{}, 0, len(parsedVariants))
	for _, variant := range parsedVariants {
		variantViews = append(variantViews, map[string]interface{}{
			"id":               variant.ID,
			"title":            variant.Title,
			"price":            helpers.GetPrettyPrice(variant.Price),
			"afterPay":         helpers.GetAfterPaySingleInstallment(variant.Price),
			"availableForSale": variant.AvailableForSale,
			"images":           helpers.GetResponsiveImages(variant.LocalFile),
		})
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"id":           product.ID,
		"title":        product.Title,
		"handle":       product.Handle,
		"collection":   product.ProductType,
		"description":  product.Description,
		"details":      parseDetails(product.Description),
		"externalLink": product.ExternalLink(),
		"variants":     variantViews,
	})
}

// GetInventory reports remote stock for a variant alongside the quantity
// still available to this visitor's cart. The counts are absent when the
// lookup fails; absence must not block a purchase.
func (h *ProductHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	variantID := mux.Vars(r)["variantId"]
	if variantID == "" {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": "variantId is required"})
		return
	}

	products, err := h.catalogRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("GetInventory: failed loading catalog: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "failed to load catalog"})
		return
	}

	st := store.NewStore()
	bridge := &store.Bridge{Refs: sessions.NewCheckoutRefSession(w, r), Fetcher: h.checkoutSvc}
	bridge.Reconcile(r.Context(), st, products)

	remote, remaining, known := h.cartSvc.InventoryDetails(r.Context(), st.State(), variantID)
	if !known {
		_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"known": false})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"known":             true,
		"remoteQuantity":    remote,
		"remainingQuantity": remaining,
	})
}

// parseDetails pulls the "Details: a; b; c" tail off a product description.
func parseDetails(description string) []string {
	_, tail, found := strings.Cut(description, "Details: ")
	if !found {
		return nil
	}

	var details []string
	for _, detail := range strings.Split(tail, ";") {
		if trimmed := strings.TrimSpace(detail); trimmed != "" {
			details = append(details, trimmed)
		}
	}
	return details
}
