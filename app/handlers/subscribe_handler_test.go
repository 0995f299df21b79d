package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ckendallart/storefront/app/models/other"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unrolled/render"
)

type fakeMiddlewareClient struct {
	subscribeResult *other.SubscribeResult
	subscribeErr    error
	captchaResult   *other.CaptchaResult
	captchaErr      error
	commissionErr   error

	gotStatus     string
	gotEmail      string
	gotCommission other.CommissionRequest
}

func (f *fakeMiddlewareClient) FetchInventory(ctx context.Context, encodedVariantID string) (int, bool) {
	return 0, false
}

func (f *fakeMiddlewareClient) SubscribeEmail(ctx context.Context, email, status string) (*other.SubscribeResult, error) {
	f.gotEmail, f.gotStatus = email, status
	return f.subscribeResult, f.subscribeErr
}

func (f *fakeMiddlewareClient) VerifyCaptcha(ctx context.Context, token string) (*other.CaptchaResult, error) {
	return f.captchaResult, f.captchaErr
}

func (f *fakeMiddlewareClient) RequestCommission(ctx context.Context, commission other.CommissionRequest) error {
	f.gotCommission = commission
	return f.commissionErr
}

func postJSON(t *testing.T, handler http.HandlerFunc, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/subscribe", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSubscribeWithoutCaptchaSubscribesDirectly(t *testing.T) {
	middleware := &fakeMiddlewareClient{
		subscribeResult: &other.SubscribeResult{Status: other.StatusSubscribed},
	}
	h := NewSubscribeHandler(middleware, render.New())

	rec := postJSON(t, h.Subscribe, map[string]string{"email": "visitor@example.com"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, other.StatusSubscribed, middleware.gotStatus)
	assert.Equal(t, "visitor@example.com", middleware.gotEmail)
	assert.Equal(t, other.StatusSubscribed, decodeResponse(t, rec)["status"])
}

func TestSubscribeFailedCaptchaDemotesToPending(t *testing.T) {
	middleware := &fakeMiddlewareClient{
		captchaResult:   &other.CaptchaResult{Success: false},
		subscribeResult: &other.SubscribeResult{Status: other.StatusPending},
	}
	h := NewSubscribeHandler(middleware, render.New())

	rec := postJSON(t, h.Subscribe, map[string]string{
		"email":        "visitor@example.com",
		"captchaToken": "some-token",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, other.StatusPending, middleware.gotStatus)
}

func TestSubscribeCaptchaErrorIsIgnored(t *testing.T) {
	middleware := &fakeMiddlewareClient{
		captchaErr:      errors.New("captcha service down"),
		subscribeResult: &other.SubscribeResult{Status: other.StatusSubscribed},
	}
	h := NewSubscribeHandler(middleware, render.New())

	rec := postJSON(t, h.Subscribe, map[string]string{
		"email":        "visitor@example.com",
		"captchaToken": "some-token",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, other.StatusSubscribed, middleware.gotStatus)
}

func TestSubscribeExistingMemberIsNotAnError(t *testing.T) {
	middleware := &fakeMiddlewareClient{
		subscribeResult: &other.SubscribeResult{Title: other.TitleMemberExists},
	}
	h := NewSubscribeHandler(middleware, render.New())

	rec := postJSON(t, h.Subscribe, map[string]string{"email": "visitor@example.com"})

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeResponse(t, rec)
	assert.Equal(t, other.StatusSubscribed, body["status"])
	assert.Equal(t, true, body["alreadyExists"])
}

func TestSubscribeInvalidResourceIsUnprocessable(t *testing.T) {
	middleware := &fakeMiddlewareClient{
		subscribeResult: &other.SubscribeResult{Title: other.TitleInvalidResource},
	}
	h := NewSubscribeHandler(middleware, render.New())

	rec := postJSON(t, h.Subscribe, map[string]string{"email": "fake@fake.fake"})

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSubscribeRejectsInvalidEmail(t *testing.T) {
	middleware := &fakeMiddlewareClient{}
	h := NewSubscribeHandler(middleware, render.New())

	rec := postJSON(t, h.Subscribe, map[string]string{"email": "not-an-email"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, middleware.gotEmail)
}

func TestSubscribeMiddlewareFailure(t *testing.T) {
	middleware := &fakeMiddlewareClient{subscribeErr: errors.New("middleware down")}
	h := NewSubscribeHandler(middleware, render.New())

	rec := postJSON(t, h.Subscribe, map[string]string{"email": "visitor@example.com"})

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestRequestCommission(t *testing.T) {
	middleware := &fakeMiddlewareClient{}
	h := NewSubscribeHandler(middleware, render.New())

	rec := postJSON(t, h.RequestCommission, other.CommissionRequest{
		Name:    "A Visitor",
		Email:   "visitor@example.com",
		Details: "A large landscape piece",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "A Visitor", middleware.gotCommission.Name)
}

func TestRequestCommissionRejectsIncompleteRequest(t *testing.T) {
	middleware := &fakeMiddlewareClient{}
	h := NewSubscribeHandler(middleware, render.New())

	rec := postJSON(t, h.RequestCommission, map[string]string{"name": "A Visitor"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, middleware.gotCommission.Name)
}
