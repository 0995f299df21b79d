package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/ckendallart/storefront/app/helpers"
	"github.com/ckendallart/storefront/app/models"
	"github.com/ckendallart/storefront/app/repositories"
	"github.com/ckendallart/storefront/app/services"
	"github.com/ckendallart/storefront/app/store"
	"github.com/ckendallart/storefront/app/utils/sessions"
	"github.com/gorilla/csrf"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

type CartHandler struct {
	catalogRepo repositories.CatalogRepository
	cartSvc     *services.CartService
	checkoutSvc services.CheckoutClient
	render      *render.Render
}

func NewCartHandler(catalogRepo repositories.CatalogRepository, cartSvc *services.CartService, checkoutSvc services.CheckoutClient, renderer *render.Render) *CartHandler {
	return &CartHandler{catalogRepo, cartSvc, checkoutSvc, renderer}
}

// hydrate rebuilds the cart for this page-load cycle: a fresh store
// reconciled against the visitor's persisted checkout pointer.
func (h *CartHandler) hydrate(w http.ResponseWriter, r *http.Request) (*store.Store, *sessions.CheckoutRefSession, []models.Product, error) {
	products, err := h.catalogRepo.GetAll(r.Context())
	if err != nil {
		return nil, nil, nil, err
	}

	st := store.NewStore()
	refs := sessions.NewCheckoutRefSession(w, r)
	bridge := &store.Bridge{Refs: refs, Fetcher: h.checkoutSvc}
	bridge.Reconcile(r.Context(), st, products)

	return st, refs, products, nil
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	st, _, _, err := h.hydrate(w, r)
	if err != nil {
		log.Printf("GetCart: failed loading catalog: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "failed to load cart"})
		return
	}

	payload := h.cartView(st.State())
	payload["csrfToken"] = csrf.Token(r)
	_ = h.render.JSON(w, http.StatusOK, payload)
}

type addToCartRequest struct {
	Handle    string `json:"handle"`
	VariantID string `json:"variantId"`
}

func (h *CartHandler) AddItemCart(w http.ResponseWriter, r *http.Request) {
	var body addToCartRequest
	if err := decodeJSONBody(r, &body); err != nil || body.Handle == "" || body.VariantID == "" {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": "handle and variantId are required"})
		return
	}

	product, err := h.catalogRepo.GetByHandle(r.Context(), body.Handle)
	if err != nil {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]interface{}{"error": "product not found"})
		return
	}

	// Products sold elsewhere never enter the cart; hand the renderer the
	// destination instead.
	if link := product.ExternalLink(); link != "" {
		_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"redirect": link})
		return
	}

	variant, found := findVariant(*product, body.VariantID)
	if !found {
		_ = h.render.JSON(w, http.StatusNotFound, map[string]interface{}{"error": "variant not found"})
		return
	}

	st, refs, products, err := h.hydrate(w, r)
	if err != nil {
		log.Printf("AddItemCart: failed loading catalog: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "failed to load cart"})
		return
	}

	parsed := helpers.GetParsedVariants([]models.Variant{variant}, product.Title)
	if err := h.cartSvc.AddToCart(r.Context(), st, refs, products, *product, parsed[0]); err != nil {
		h.renderCartError(w, st, err)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, h.cartView(st.State()))
}

type mutateCartRequest struct {
	VariantID string `json:"variantId"`
}

func (h *CartHandler) IncrementCartItem(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, h.cartSvc.IncrementItem)
}

func (h *CartHandler) DecrementCartItem(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, h.cartSvc.DecrementItem)
}

func (h *CartHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	h.mutateItem(w, r, h.cartSvc.RemoveItem)
}

func (h *CartHandler) mutateItem(w http.ResponseWriter, r *http.Request, mutate func(ctx context.Context, st *store.Store, products []models.Product, variantID string) error) {
	var body mutateCartRequest
	if err := decodeJSONBody(r, &body); err != nil || body.VariantID == "" {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": "variantId is required"})
		return
	}

	st, _, products, err := h.hydrate(w, r)
	if err != nil {
		log.Printf("mutateItem: failed loading catalog: %v", err)
		_ = h.render.JSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "failed to load cart"})
		return
	}

	if st.State().ID == "" {
		_ = h.render.JSON(w, http.StatusConflict, map[string]interface{}{"error": "no active cart"})
		return
	}

	if err := mutate(r.Context(), st, products, body.VariantID); err != nil {
		h.renderCartError(w, st, err)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, h.cartView(st.State()))
}

// CheckoutHandoff redirects the visitor to the remote checkout's hosted
// payment page.
func (h *CartHandler) CheckoutHandoff(w http.ResponseWriter, r *http.Request) {
	st, _, _, err := h.hydrate(w, r)
	if err != nil {
		log.Printf("CheckoutHandoff: failed loading catalog: %v", err)
		http.Error(w, "failed to load cart", http.StatusInternalServerError)
		return
	}

	cart := st.State()
	if cart.WebURL == "" {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	helpers.LogEvent(helpers.Event{
		Category: "Cart",
		Action:   "Checkout Handoff",
		Label:    cart.ID,
	})
	http.Redirect(w, r, cart.WebURL, http.StatusSeeOther)
}

func (h *CartHandler) renderCartError(w http.ResponseWriter, st *store.Store, err error) {
	if errors.Is(err, services.ErrOutOfStock) {
		_ = h.render.JSON(w, http.StatusConflict, map[string]interface{}{
			"error":       "out of stock",
			"unavailable": true,
		})
		return
	}
	log.Printf("CartHandler: cart mutation failed: %v", err)
	payload := h.cartView(st.State())
	payload["error"] = err.Error()
	_ = h.render.JSON(w, http.StatusBadGateway, payload)
}

// cartView shapes the state for the external renderer: line items enriched
// from their custom attributes so the cart page needs no catalog query.
func (h *CartHandler) cartView(cart models.CartState) map[string]interface{} {
	type lineView struct {
		VariantID    string                     `json:"variantId"`
		Quantity     int                        `json:"quantity"`
		Title        string                     `json:"title"`
		Slug         string                     `json:"slug"`
		PricePerUnit string                     `json:"pricePerUnit"`
		LineTotal    string                     `json:"lineTotal"`
		Images       *models.ResponsiveImageSet `json:"images,omitempty"`
	}

	lines := []lineView{}
	for _, item := range cart.LineItems {
		if item.VariantID == "" || item.Quantity <= 0 {
			continue
		}

		attr := func(key string) string {
			value, _ := helpers.GetCustomAttributeFromCartByVariantID([]models.LineItem{item}, item.VariantID, key)
			return value
		}

		productTitle := attr("productTitle")
		variantTitle := attr("variantTitle")
		title := productTitle
		if variantTitle != "" && variantTitle != productTitle {
			title = productTitle + ", (" + variantTitle + ")"
		}

		slug := "/originals/" + attr("handle")
		if strings.EqualFold(attr("collection"), "print") {
			slug = "/prints/" + attr("handle")
		}

		pricePerUnit, err := decimal.NewFromString(attr("pricePerUnit"))
		if err != nil {
			pricePerUnit = decimal.Zero
		}

		lines = append(lines, lineView{
			VariantID:    item.VariantID,
			Quantity:     item.Quantity,
			Title:        title,
			Slug:         slug,
			PricePerUnit: helpers.GetPrettyPrice(pricePerUnit),
			LineTotal:    helpers.GetPrettyPrice(pricePerUnit.Mul(decimal.NewFromInt(int64(item.Quantity)))),
			Images:       cart.ImagesByVariantID[item.VariantID],
		})
	}

	payload := map[string]interface{}{
		"id":         cart.ID,
		"lineItems":  lines,
		"totalItems": helpers.TotalItemsInCart(cart),
		"totalPrice": helpers.GetPrettyPrice(cart.TotalPrice),
		"totalTax":   helpers.GetPrettyPrice(cart.TotalTax),
		"webUrl":     cart.WebURL,
		"loading":    cart.Loading,
	}
	if cart.Error != nil {
		payload["error"] = cart.Error.Error()
	}
	return payload
}

func findVariant(product models.Product, variantID string) (models.Variant, bool) {
	for _, variant := range product.Variants {
		if variant.ID == variantID {
			return variant, true
		}
	}
	return models.Variant{}, false
}
