package store

import (
	"errors"
	"testing"

	"github.com/ckendallart/storefront/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() []models.Product {
	return []models.Product{
		{
			ID:          "prod-1",
			Title:       "Harvest Moon",
			Handle:      "harvest-moon",
			ProductType: "Original",
			Variants: []models.Variant{
				{
					ID:    "variant-1",
					Title: "Default Title",
					Price: decimal.NewFromInt(400),
					LocalFile: &models.ImageAsset{
						VariantID: "variant-1",
						Small:     models.ImageFixed{Src: "https://cdn.example.com/hm.jpg?width=300", Width: 300, Height: 375},
						Medium:    models.ImageFixed{Src: "https://cdn.example.com/hm.jpg?width=500", Width: 500, Height: 625},
						Large:     models.ImageFixed{Src: "https://cdn.example.com/hm.jpg?width=700", Width: 700, Height: 875},
					},
				},
			},
		},
		{
			ID:          "prod-2",
			Title:       "Winter Field",
			Handle:      "winter-field",
			ProductType: "Print",
			Variants: []models.Variant{
				{ID: "variant-2", Title: "8 x 10", Price: decimal.NewFromInt(35)},
				{ID: "variant-3", Title: "16 x 20", Price: decimal.NewFromInt(65)},
			},
		},
	}
}

func testCheckout() *models.Checkout {
	return &models.Checkout{
		ID:         "checkout-1",
		WebURL:     "https://shop.example.com/checkouts/checkout-1",
		TotalPrice: decimal.NewFromInt(400),
		LineItems: []models.CheckoutLineItem{
			{
				ID:       "line-1",
				Quantity: 1,
				Variant:  models.CheckoutVariant{ID: "variant-1", Title: "Default Title", Price: decimal.NewFromInt(400)},
			},
		},
	}
}

func TestInitialStateIsLoading(t *testing.T) {
	state := InitialState()

	assert.Empty(t, state.ID)
	assert.Empty(t, state.LineItems)
	assert.Empty(t, state.ImagesByVariantID)
	assert.Equal(t, models.LoadingCart, state.Loading)
}

func TestReduceInitCartMergesCheckoutVerbatim(t *testing.T) {
	state := Reduce(InitialState(), Action{Type: InitCart, Payload: testCheckout()})

	assert.Equal(t, "checkout-1", state.ID)
	assert.Equal(t, "https://shop.example.com/checkouts/checkout-1", state.WebURL)
	require.Len(t, state.LineItems, 1)
	assert.Equal(t, "variant-1", state.LineItems[0].VariantID)

	// No normalization on this path: the remote line id is not injected and
	// no images are derived.
	assert.Empty(t, state.LineItems[0].CustomAttributes)
	assert.Empty(t, state.ImagesByVariantID)
	assert.Equal(t, models.LoadingCart, state.Loading)
}

func TestReduceInitCartNilPayload(t *testing.T) {
	initial := InitialState()
	state := Reduce(initial, Action{Type: InitCart})

	assert.Equal(t, initial.ID, state.ID)
	assert.Equal(t, initial.Loading, state.Loading)
}

func TestReduceInitRemoteCartNormalizesAndClearsLoading(t *testing.T) {
	state := Reduce(InitialState(), Action{
		Type:     InitRemoteCart,
		Payload:  testCheckout(),
		Products: testCatalog(),
	})

	assert.Equal(t, "checkout-1", state.ID)
	assert.Empty(t, state.Loading)
	require.Len(t, state.LineItems, 1)

	var lineItemID string
	for _, attr := range state.LineItems[0].CustomAttributes {
		if attr.Key == models.AttrLineItemID {
			lineItemID = attr.Value
		}
	}
	assert.Equal(t, "line-1", lineItemID)

	require.Contains(t, state.ImagesByVariantID, "variant-1")
	assert.Len(t, state.ImagesByVariantID["variant-1"].ResponsiveImgs, 3)
}

func TestReduceAddToCartPreservesLoadingAndError(t *testing.T) {
	prior := InitialState()
	prior.Error = errors.New("previous failure")

	state := Reduce(prior, Action{
		Type:     AddToCart,
		Payload:  testCheckout(),
		Products: testCatalog(),
	})

	assert.Equal(t, "checkout-1", state.ID)
	assert.Equal(t, models.LoadingCart, state.Loading)
	assert.EqualError(t, state.Error, "previous failure")
}

func TestReduceUpdateCartRestoresPreviousImageMap(t *testing.T) {
	prior := Reduce(InitialState(), Action{
		Type:     InitRemoteCart,
		Payload:  testCheckout(),
		Products: testCatalog(),
	})

	// A sentinel entry proves the previous map object survives the update
	// rather than being rebuilt from the payload.
	prior.ImagesByVariantID["sentinel"] = &models.ResponsiveImageSet{}

	updated := testCheckout()
	updated.LineItems[0].Quantity = 3

	state := Reduce(prior, Action{
		Type:     UpdateCart,
		Payload:  updated,
		Products: testCatalog(),
	})

	assert.Equal(t, 3, state.LineItems[0].Quantity)
	assert.Contains(t, state.ImagesByVariantID, "sentinel")
	assert.Contains(t, state.ImagesByVariantID, "variant-1")
}

func TestReduceRemoveFromCartReplacesLineItems(t *testing.T) {
	prior := Reduce(InitialState(), Action{
		Type:     InitRemoteCart,
		Payload:  testCheckout(),
		Products: testCatalog(),
	})

	emptied := testCheckout()
	emptied.LineItems = nil
	emptied.TotalPrice = decimal.Zero

	state := Reduce(prior, Action{
		Type:     RemoveFromCart,
		Payload:  emptied,
		Products: testCatalog(),
	})

	assert.Empty(t, state.LineItems)
	assert.Empty(t, state.ImagesByVariantID)
	assert.True(t, state.TotalPrice.IsZero())
}

func TestReduceResetCartYieldsEmptySettledCart(t *testing.T) {
	prior := Reduce(InitialState(), Action{
		Type:     InitRemoteCart,
		Payload:  testCheckout(),
		Products: testCatalog(),
	})
	prior.Error = errors.New("stale")

	state := Reduce(prior, Action{Type: ResetCart})

	assert.Empty(t, state.ID)
	assert.Empty(t, state.LineItems)
	assert.Empty(t, state.Loading)
	assert.NoError(t, state.Error)
}

func TestReduceErrorFromCartKeepsLineItems(t *testing.T) {
	prior := Reduce(InitialState(), Action{
		Type:     InitRemoteCart,
		Payload:  testCheckout(),
		Products: testCatalog(),
	})

	failure := errors.New("remote cart unavailable")
	state := Reduce(prior, Action{Type: ErrorFromCart, Err: failure})

	assert.Empty(t, state.Loading)
	assert.Equal(t, failure, state.Error)
	assert.Len(t, state.LineItems, 1)
	assert.Equal(t, "checkout-1", state.ID)
}

func TestReduceClearLoading(t *testing.T) {
	state := Reduce(InitialState(), Action{Type: ClearLoading})
	assert.Empty(t, state.Loading)
}

func TestReduceUnrecognizedActionIsIdentity(t *testing.T) {
	prior := Reduce(InitialState(), Action{
		Type:     InitRemoteCart,
		Payload:  testCheckout(),
		Products: testCatalog(),
	})

	state := Reduce(prior, Action{Type: ActionType("SOMETHING_ELSE")})

	assert.Equal(t, prior.ID, state.ID)
	assert.Equal(t, prior.Loading, state.Loading)
	assert.Equal(t, prior.LineItems, state.LineItems)
}

func TestStoreDispatchScenario(t *testing.T) {
	st := NewStore()
	catalog := testCatalog()

	assert.Equal(t, models.LoadingCart, st.State().Loading)

	st.Dispatch(Action{Type: InitCart, Payload: testCheckout()})

	added := testCheckout()
	added.LineItems = append(added.LineItems, models.CheckoutLineItem{
		ID:       "line-2",
		Quantity: 1,
		Variant:  models.CheckoutVariant{ID: "variant-2", Title: "8 x 10", Price: decimal.NewFromInt(35)},
	})
	state := st.Dispatch(Action{Type: AddToCart, Payload: added, Products: catalog})
	require.Len(t, state.LineItems, 2)

	state = st.Dispatch(Action{Type: ResetCart})
	assert.Empty(t, state.LineItems)
	assert.Empty(t, state.Loading)
}
