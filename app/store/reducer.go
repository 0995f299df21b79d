package store

import (
	"github.com/ckendallart/storefront/app/helpers"
	"github.com/ckendallart/storefront/app/models"
)

type ActionType string

const (
	InitCart       ActionType = "INIT_CART"
	InitRemoteCart ActionType = "INIT_REMOTE_CART"
	AddToCart      ActionType = "ADD_TO_CART"
	UpdateCart     ActionType = "UPDATE_CART"
	RemoveFromCart ActionType = "REMOVE_FROM_CART"
	ResetCart      ActionType = "RESET_CART"
	ErrorFromCart  ActionType = "ERROR_FROM_CART"
	ClearLoading   ActionType = "CLEAR_LOADING"
)

// Action carries a raw remote checkout payload plus whatever the transition
// needs alongside it. Normalizing actions require the full catalog because
// image lookup needs the variant-to-asset associations at dispatch time.
type Action struct {
	Type     ActionType
	Payload  *models.Checkout
	Products []models.Product
	Err      error
}

// InitialState is the cart of a fresh page-load cycle: empty, and marked as
// still loading until reconciliation against the persisted checkout pointer
// has run.
func InitialState() models.CartState {
	return models.CartState{
		LineItems:         []models.LineItem{},
		ImagesByVariantID: map[string]*models.ResponsiveImageSet{},
		Loading:           models.LoadingCart,
	}
}

// Reduce is the cart's pure state-transition function. Unrecognized action
// types return the state unchanged.
func Reduce(state models.CartState, action Action) models.CartState {
	switch action.Type {
	case InitCart:
		return mergeCheckout(state, action.Payload)

	case InitRemoteCart:
		data := helpers.ParseDataFromRemoteCart(action.Payload, action.Products)
		return models.CartState{
			ID:                data.ID,
			TotalPrice:        data.TotalPrice,
			TotalTax:          data.TotalTax,
			WebURL:            data.WebURL,
			LineItems:         data.LineItems,
			ImagesByVariantID: data.ImagesByVariantID,
			Loading:           "",
		}

	case AddToCart:
		return mergeRemoteData(state, helpers.ParseDataFromRemoteCart(action.Payload, action.Products))

	case UpdateCart:
		// An update never introduces a new variant, so the previous image
		// map is restored verbatim instead of the freshly derived one.
		next := mergeRemoteData(state, helpers.ParseDataFromRemoteCart(action.Payload, action.Products))
		next.ImagesByVariantID = state.ImagesByVariantID
		return next

	case RemoveFromCart:
		return mergeRemoteData(state, helpers.ParseDataFromRemoteCart(action.Payload, action.Products))

	case ResetCart:
		next := InitialState()
		next.Loading = ""
		return next

	case ErrorFromCart:
		state.Loading = ""
		state.Error = action.Err
		return state

	case ClearLoading:
		state.Loading = ""
		return state

	default:
		return state
	}
}

// mergeCheckout lays a raw checkout's own fields over the state with no
// normalization: no lineItemId injection and no image derivation.
func mergeCheckout(state models.CartState, checkout *models.Checkout) models.CartState {
	if checkout == nil {
		return state
	}
	state.ID = checkout.ID
	state.TotalPrice = checkout.TotalPrice
	state.TotalTax = checkout.TotalTax
	state.WebURL = checkout.WebURL

	lineItems := make([]models.LineItem, 0, len(checkout.LineItems))
	for _, item := range checkout.LineItems {
		lineItems = append(lineItems, models.LineItem{
			VariantID:        item.Variant.ID,
			Quantity:         item.Quantity,
			CustomAttributes: item.CustomAttributes,
		})
	}
	state.LineItems = lineItems
	return state
}

// mergeRemoteData lays normalized remote data over the state, leaving the
// loading flag and last error untouched.
func mergeRemoteData(state models.CartState, data models.RemoteCartData) models.CartState {
	state.ID = data.ID
	state.TotalPrice = data.TotalPrice
	state.TotalTax = data.TotalTax
	state.WebURL = data.WebURL
	state.LineItems = data.LineItems
	state.ImagesByVariantID = data.ImagesByVariantID
	return state
}
