package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/ckendallart/storefront/app/models"
	"github.com/ckendallart/storefront/app/models/other"
)

// CheckoutClient is the remote commerce service's checkout sub-resource.
// Each operation is a single network call with no retry; every call returns
// the full current checkout, and failures propagate to the caller.
type CheckoutClient interface {
	CreateCheckout(ctx context.Context) (*models.Checkout, error)
	FetchCheckout(ctx context.Context, checkoutID string) (*models.Checkout, error)
	AddLineItems(ctx context.Context, checkoutID string, items []models.CheckoutLineItemInput) (*models.Checkout, error)
	UpdateLineItems(ctx context.Context, checkoutID string, updates []models.CheckoutLineItemUpdate) (*models.Checkout, error)
	RemoveLineItems(ctx context.Context, checkoutID string, lineItemIDs []string) (*models.Checkout, error)
}

type StorefrontService struct {
	client      *http.Client
	baseURL     string
	accessToken string
}

func NewStorefrontService(baseURL, accessToken string) *StorefrontService {
	return &StorefrontService{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		accessToken: accessToken,
	}
}

type checkoutEnvelope struct {
	Checkout models.Checkout `json:"checkout"`
}

func (s *StorefrontService) CreateCheckout(ctx context.Context) (*models.Checkout, error) {
	return s.doCheckoutRequest(ctx, http.MethodPost, "/checkouts", struct{}{})
}

func (s *StorefrontService) FetchCheckout(ctx context.Context, checkoutID string) (*models.Checkout, error) {
	return s.doCheckoutRequest(ctx, http.MethodGet, "/checkouts/"+checkoutID, nil)
}

func (s *StorefrontService) AddLineItems(ctx context.Context, checkoutID string, items []models.CheckoutLineItemInput) (*models.Checkout, error) {
	payload := map[string]interface{}{"lineItems": items}
	return s.doCheckoutRequest(ctx, http.MethodPost, "/checkouts/"+checkoutID+"/line_items", payload)
}

func (s *StorefrontService) UpdateLineItems(ctx context.Context, checkoutID string, updates []models.CheckoutLineItemUpdate) (*models.Checkout, error) {
	payload := map[string]interface{}{"lineItems": updates}
	return s.doCheckoutRequest(ctx, http.MethodPut, "/checkouts/"+checkoutID+"/line_items", payload)
}

func (s *StorefrontService) RemoveLineItems(ctx context.Context, checkoutID string, lineItemIDs []string) (*models.Checkout, error) {
	payload := map[string]interface{}{"lineItemIds": lineItemIDs}
	return s.doCheckoutRequest(ctx, http.MethodPost, "/checkouts/"+checkoutID+"/line_items/remove", payload)
}

// FetchProducts pulls the full catalog from the commerce API. Consumed by
// the sync-catalog command, not by request handlers.
func (s *StorefrontService) FetchProducts(ctx context.Context) ([]other.RemoteProduct, error) {
	body, err := s.doRequest(ctx, http.MethodGet, "/products", nil)
	if err != nil {
		return nil, err
	}

	var productsResponse other.ProductsResponse
	if err := json.Unmarshal(body, &productsResponse); err != nil {
		return nil, fmt.Errorf("failed to parse products response: %w", err)
	}

	log.Printf("StorefrontService: fetched %d products from the commerce API", len(productsResponse.Products))
	return productsResponse.Products, nil
}

func (s *StorefrontService) doCheckoutRequest(ctx context.Context, method, path string, payload interface{}) (*models.Checkout, error) {
	body, err := s.doRequest(ctx, method, path, payload)
	if err != nil {
		return nil, err
	}

	var envelope checkoutEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse checkout response: %w", err)
	}

	return &envelope.Checkout, nil
}

func (s *StorefrontService) doRequest(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request payload: %w", err)
		}
		reqBody = bytes.NewBuffer(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Storefront-Access-Token", s.accessToken)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("StorefrontService: error performing %s %s: %v", method, path, err)
		return nil, fmt.Errorf("failed to perform request to commerce API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Printf("StorefrontService: commerce API returned non-OK status: %d, Body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("commerce API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
