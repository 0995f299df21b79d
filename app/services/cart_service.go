package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ckendallart/storefront/app/helpers"
	"github.com/ckendallart/storefront/app/models"
	"github.com/ckendallart/storefront/app/store"
)

var ErrOutOfStock = errors.New("variant is out of stock")

// CartService drives every remote cart mutation: it creates the checkout on
// first add, guards adds with an inventory check, and dispatches the
// resulting checkout payloads into the store. A single mutex serializes
// mutations so rapid repeated requests cannot interleave remote calls and
// lose updates; the reducer itself stays unguarded and pure.
type CartService struct {
	mu         sync.Mutex
	checkout   CheckoutClient
	middleware MiddlewareClient
}

func NewCartService(checkout CheckoutClient, middleware MiddlewareClient) *CartService {
	return &CartService{
		checkout:   checkout,
		middleware: middleware,
	}
}

// InventoryDetails returns the remote stock count and the count remaining
// after subtracting what the cart already holds. ok is false when the remote
// count is unknown; unknown must never block a purchase.
func (s *CartService) InventoryDetails(ctx context.Context, cart models.CartState, variantID string) (remote, remaining int, ok bool) {
	remote, ok = s.middleware.FetchInventory(ctx, variantID)
	if !ok {
		return 0, 0, false
	}

	held := 0
	for _, item := range cart.LineItems {
		if item.VariantID == variantID {
			held = item.Quantity
			break
		}
	}
	return remote, remote - held, true
}

// AddToCart puts one unit of the variant into the cart. A variant already in
// the cart gets its quantity bumped instead of a second line item. When no
// remote checkout exists yet, one is created and its pointer persisted
// before the line item goes in.
func (s *CartService) AddToCart(ctx context.Context, st *store.Store, refs store.CheckoutRefStore, products []models.Product, product models.Product, variant models.Variant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	helpers.LogEvent(helpers.Event{
		Category: "Cart",
		Action:   "Add to Cart",
		Label:    fmt.Sprintf("%s : %s", product.Title, variant.Title),
	})

	cart := st.State()
	if _, remaining, known := s.InventoryDetails(ctx, cart, variant.ID); known && remaining <= 0 {
		return ErrOutOfStock
	}

	checkoutID := cart.ID
	if checkoutID == "" {
		resp, err := s.checkout.CreateCheckout(ctx)
		if err != nil {
			helpers.LogEvent(helpers.Event{
				Category: "Cart",
				Action:   "Error adding to Cart",
				Label:    err.Error(),
			})
			st.Dispatch(store.Action{Type: store.ErrorFromCart, Err: err})
			return fmt.Errorf("failed to create checkout: %w", err)
		}

		if err := refs.Put(models.CheckoutRef{ID: resp.ID, TimeStamp: time.Now().UnixMilli()}); err != nil {
			log.Printf("CartService: failed persisting checkout ref %s: %v", resp.ID, err)
		}
		cart = st.Dispatch(store.Action{Type: store.InitCart, Payload: resp})
		checkoutID = resp.ID
	}

	if helpers.IsVariantInCart(cart, variant.ID) {
		update, err := helpers.GetLineItemForUpdateToCart(cart.LineItems, variant.ID)
		if err != nil {
			st.Dispatch(store.Action{Type: store.ErrorFromCart, Err: err})
			return err
		}
		update.Quantity++

		payload, err := s.checkout.UpdateLineItems(ctx, checkoutID, []models.CheckoutLineItemUpdate{update})
		if err != nil {
			st.Dispatch(store.Action{Type: store.ErrorFromCart, Err: err})
			return fmt.Errorf("failed to update line item in cart: %w", err)
		}
		st.Dispatch(store.Action{Type: store.UpdateCart, Payload: payload, Products: products})
		return nil
	}

	payload, err := s.checkout.AddLineItems(ctx, checkoutID, helpers.GetLineItemForAddToCart(product, variant, 1))
	if err != nil {
		helpers.LogEvent(helpers.Event{
			Category: "Cart",
			Action:   "Error adding to Cart",
			Label:    err.Error(),
		})
		st.Dispatch(store.Action{Type: store.ErrorFromCart, Err: err})
		return fmt.Errorf("failed to add line item to cart: %w", err)
	}
	st.Dispatch(store.Action{Type: store.AddToCart, Payload: payload, Products: products})
	return nil
}

// IncrementItem raises an existing line's quantity by one, subject to the
// same inventory guard as AddToCart.
func (s *CartService) IncrementItem(ctx context.Context, st *store.Store, products []models.Product, variantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := st.State()
	if _, remaining, known := s.InventoryDetails(ctx, cart, variantID); known && remaining <= 0 {
		return ErrOutOfStock
	}

	update, err := helpers.GetLineItemForUpdateToCart(cart.LineItems, variantID)
	if err != nil {
		st.Dispatch(store.Action{Type: store.ErrorFromCart, Err: err})
		return err
	}
	update.Quantity++

	payload, err := s.checkout.UpdateLineItems(ctx, cart.ID, []models.CheckoutLineItemUpdate{update})
	if err != nil {
		st.Dispatch(store.Action{Type: store.ErrorFromCart, Err: err})
		return fmt.Errorf("failed to update line item in cart: %w", err)
	}
	st.Dispatch(store.Action{Type: store.UpdateCart, Payload: payload, Products: products})
	return nil
}

// DecrementItem lowers an existing line's quantity by one, removing the line
// entirely when it would hit zero.
func (s *CartService) DecrementItem(ctx context.Context, st *store.Store, products []models.Product, variantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := st.State()
	update, err := helpers.GetLineItemForUpdateToCart(cart.LineItems, variantID)
	if err != nil {
		st.Dispatch(store.Action{Type: store.ErrorFromCart, Err: err})
		return err
	}

	if update.Quantity > 1 {
		update.Quantity--
		payload, err := s.checkout.UpdateLineItems(ctx, cart.ID, []models.CheckoutLineItemUpdate{update})
		if err != nil {
			st.Dispatch(store.Action{Type: store.ErrorFromCart, Err: err})
			return fmt.Errorf("failed to update line item in cart: %w", err)
		}
		st.Dispatch(store.Action{Type: store.UpdateCart, Payload: payload, Products: products})
		return nil
	}

	return s.removeLine(ctx, st, products, cart.ID, update.ID)
}

// RemoveItem drops a variant's line from the cart regardless of quantity.
func (s *CartService) RemoveItem(ctx context.Context, st *store.Store, products []models.Product, variantID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := st.State()
	lineItemID, ok := helpers.GetCustomAttributeFromCartByVariantID(cart.LineItems, variantID, models.AttrLineItemID)
	if !ok {
		err := fmt.Errorf("variant %s is not in the cart", variantID)
		st.Dispatch(store.Action{Type: store.ErrorFromCart, Err: err})
		return err
	}

	return s.removeLine(ctx, st, products, cart.ID, lineItemID)
}

func (s *CartService) removeLine(ctx context.Context, st *store.Store, products []models.Product, checkoutID, lineItemID string) error {
	payload, err := s.checkout.RemoveLineItems(ctx, checkoutID, []string{lineItemID})
	if err != nil {
		st.Dispatch(store.Action{Type: store.ErrorFromCart, Err: err})
		return fmt.Errorf("failed to remove line item from cart: %w", err)
	}
	st.Dispatch(store.Action{Type: store.RemoveFromCart, Payload: payload, Products: products})
	return nil
}
