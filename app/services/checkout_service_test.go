package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ckendallart/storefront/app/models"
	"github.com/ckendallart/storefront/app/models/other"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkoutServer(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*httptest.Server, *StorefrontService) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(handler))
	t.Cleanup(server.Close)
	return server, NewStorefrontService(server.URL, "test-token")
}

func writeCheckout(w http.ResponseWriter, checkout models.Checkout) {
	_ = json.NewEncoder(w).Encode(map[string]models.Checkout{"checkout": checkout})
}

func TestCreateCheckout(t *testing.T) {
	var gotMethod, gotPath, gotToken string
	_, svc := checkoutServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		gotToken = r.Header.Get("X-Storefront-Access-Token")
		writeCheckout(w, models.Checkout{ID: "checkout-1", WebURL: "https://shop.example.com/checkouts/checkout-1"})
	})

	checkout, err := svc.CreateCheckout(context.Background())

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "/checkouts", gotPath)
	assert.Equal(t, "test-token", gotToken)
	assert.Equal(t, "checkout-1", checkout.ID)
}

func TestFetchCheckout(t *testing.T) {
	var gotPath string
	_, svc := checkoutServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeCheckout(w, models.Checkout{ID: "checkout-1", TotalPrice: decimal.NewFromInt(400)})
	})

	checkout, err := svc.FetchCheckout(context.Background(), "checkout-1")

	require.NoError(t, err)
	assert.Equal(t, "/checkouts/checkout-1", gotPath)
	assert.True(t, checkout.TotalPrice.Equal(decimal.NewFromInt(400)))
}

func TestAddLineItems(t *testing.T) {
	var gotPath string
	var gotBody map[string][]models.CheckoutLineItemInput
	_, svc := checkoutServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeCheckout(w, models.Checkout{
			ID: "checkout-1",
			LineItems: []models.CheckoutLineItem{{
				ID:       "line-1",
				Quantity: 1,
				Variant:  models.CheckoutVariant{ID: "variant-1"},
			}},
		})
	})

	checkout, err := svc.AddLineItems(context.Background(), "checkout-1", []models.CheckoutLineItemInput{{
		VariantID: "variant-1",
		Quantity:  1,
	}})

	require.NoError(t, err)
	assert.Equal(t, "/checkouts/checkout-1/line_items", gotPath)
	require.Len(t, gotBody["lineItems"], 1)
	assert.Equal(t, "variant-1", gotBody["lineItems"][0].VariantID)
	assert.Len(t, checkout.LineItems, 1)
}

func TestUpdateLineItems(t *testing.T) {
	var gotMethod string
	var gotBody map[string][]models.CheckoutLineItemUpdate
	_, svc := checkoutServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeCheckout(w, models.Checkout{ID: "checkout-1"})
	})

	_, err := svc.UpdateLineItems(context.Background(), "checkout-1", []models.CheckoutLineItemUpdate{{
		ID:       "line-1",
		Quantity: 2,
	}})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, gotMethod)
	require.Len(t, gotBody["lineItems"], 1)
	assert.Equal(t, 2, gotBody["lineItems"][0].Quantity)
}

func TestRemoveLineItems(t *testing.T) {
	var gotPath string
	var gotBody map[string][]string
	_, svc := checkoutServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		writeCheckout(w, models.Checkout{ID: "checkout-1"})
	})

	_, err := svc.RemoveLineItems(context.Background(), "checkout-1", []string{"line-1"})

	require.NoError(t, err)
	assert.Equal(t, "/checkouts/checkout-1/line_items/remove", gotPath)
	assert.Equal(t, []string{"line-1"}, gotBody["lineItemIds"])
}

func TestCheckoutRequestNonOKStatusFails(t *testing.T) {
	_, svc := checkoutServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "checkout not found", http.StatusNotFound)
	})

	_, err := svc.FetchCheckout(context.Background(), "checkout-gone")
	assert.Error(t, err)
}

func TestFetchProducts(t *testing.T) {
	_, svc := checkoutServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products", r.URL.Path)
		_ = json.NewEncoder(w).Encode(other.ProductsResponse{Products: []other.RemoteProduct{
			{ID: "prod-1", Title: "Harvest Moon", Handle: "harvest-moon"},
			{ID: "prod-2", Title: "Winter Field", Handle: "winter-field"},
		}})
	})

	products, err := svc.FetchProducts(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, "harvest-moon", products[0].Handle)
}
