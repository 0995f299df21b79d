package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ckendallart/storefront/app/models/other"
)

// The print-on-demand provider does not track discrete stock, so its
// variants report this sentinel instead of a real count.
const (
	printfulFulfillmentService = "printful"
	unlimitedInventory         = 999
)

// MiddlewareClient talks to the serverless middleware backing the
// storefront: inventory lookup, email subscription, captcha verification and
// commission requests.
type MiddlewareClient interface {
	FetchInventory(ctx context.Context, encodedVariantID string) (int, bool)
	SubscribeEmail(ctx context.Context, email, status string) (*other.SubscribeResult, error)
	VerifyCaptcha(ctx context.Context, token string) (*other.CaptchaResult, error)
	RequestCommission(ctx context.Context, commission other.CommissionRequest) error
}

type MiddlewareService struct {
	client  *http.Client
	baseURL string
}

func NewMiddlewareService(baseURL string) *MiddlewareService {
	return &MiddlewareService{
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: baseURL,
	}
}

// FetchInventory decodes the opaque variant id, extracts the trailing
// numeric id and queries the inventory endpoint. Any failure is swallowed
// here and reported as unknown (ok == false); callers must not treat an
// unknown count as zero stock.
func (s *MiddlewareService) FetchInventory(ctx context.Context, encodedVariantID string) (int, bool) {
	decoded, err := base64.StdEncoding.DecodeString(encodedVariantID)
	if err != nil {
		log.Printf("MiddlewareService: error decoding variant id %q: %v", encodedVariantID, err)
		return 0, false
	}
	parts := strings.Split(string(decoded), "/")
	numericID := parts[len(parts)-1]

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/inventory?variantId="+numericID, nil)
	if err != nil {
		log.Printf("MiddlewareService: error creating inventory request: %v", err)
		return 0, false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("MiddlewareService: error fetching inventory: %v", err)
		return 0, false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("MiddlewareService: error reading inventory response: %v", err)
		return 0, false
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("MiddlewareService: inventory endpoint returned non-OK status: %d, Body: %s", resp.StatusCode, string(body))
		return 0, false
	}

	var inventoryResponse other.InventoryResponse
	if err := json.Unmarshal(body, &inventoryResponse); err != nil {
		log.Printf("MiddlewareService: error parsing inventory response: %v, Raw Body: %s", err, string(body))
		return 0, false
	}

	variant := inventoryResponse.Body.Variant
	if variant.FulfillmentService == printfulFulfillmentService {
		return unlimitedInventory, true
	}
	return variant.InventoryQuantity, true
}

// SubscribeEmail posts a subscription attempt. The response body is decoded
// on error statuses too: "Member Exists" and "Invalid Resource" arrive as
// ordinary records distinguished by their Title, and the caller branches on
// it. Only transport failures return a non-nil error.
func (s *MiddlewareService) SubscribeEmail(ctx context.Context, email, status string) (*other.SubscribeResult, error) {
	payload := other.SubscribeRequest{
		EmailAddress: email,
		Status:       status,
		MergeFields: map[string]string{
			"MERGE0": email,
		},
	}

	body, err := s.post(ctx, "/email-subscribe", payload)
	if err != nil {
		return nil, err
	}

	var result other.SubscribeResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse subscribe response: %w", err)
	}
	return &result, nil
}

// VerifyCaptcha checks a captcha token with the middleware.
func (s *MiddlewareService) VerifyCaptcha(ctx context.Context, token string) (*other.CaptchaResult, error) {
	body, err := s.post(ctx, "/recaptcha", other.CaptchaRequest{Token: token})
	if err != nil {
		return nil, err
	}

	var result other.CaptchaResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse captcha response: %w", err)
	}
	return &result, nil
}

// RequestCommission forwards a commission inquiry to the send-email
// endpoint.
func (s *MiddlewareService) RequestCommission(ctx context.Context, commission other.CommissionRequest) error {
	_, err := s.post(ctx, "/send-email", commission)
	if err != nil {
		return fmt.Errorf("failed to send commission request: %w", err)
	}
	return nil
}

// post sends a JSON body and returns the raw response body. Non-2xx statuses
// are not errors here when a body came back; endpoints like email-subscribe
// answer conflicts with meaningful bodies on error statuses.
func (s *MiddlewareService) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewBuffer(encoded))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("MiddlewareService: error performing POST %s: %v", path, err)
		return nil, fmt.Errorf("failed to perform request to middleware: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		log.Printf("MiddlewareService: middleware returned status %d, Body: %s", resp.StatusCode, string(body))
		return nil, fmt.Errorf("middleware error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
