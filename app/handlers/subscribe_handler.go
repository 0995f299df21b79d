package handlers

import (
	"log"
	"net/http"

	"github.com/ckendallart/storefront/app/models/other"
	"github.com/ckendallart/storefront/app/services"
	"github.com/go-playground/validator/v10"
	"github.com/unrolled/render"
)

type SubscribeHandler struct {
	middleware services.MiddlewareClient
	validate   *validator.Validate
	render     *render.Render
}

func NewSubscribeHandler(middleware services.MiddlewareClient, renderer *render.Render) *SubscribeHandler {
	return &SubscribeHandler{
		middleware: middleware,
		validate:   validator.New(),
		render:     renderer,
	}
}

type subscribeRequest struct {
	Email        string `json:"email" validate:"required,email"`
	CaptchaToken string `json:"captchaToken"`
}

// Subscribe adds an email to the mailing list. The captcha verdict only
// chooses the initial list status: a failed check demotes the signup to
// pending (double opt-in) instead of rejecting it, and a broken captcha
// service is ignored entirely.
func (h *SubscribeHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var body subscribeRequest
	if err := decodeJSONBody(r, &body); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(body); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": "a valid email is required"})
		return
	}

	status := h.resolveStatus(r, body.CaptchaToken)

	result, err := h.middleware.SubscribeEmail(r.Context(), body.Email, status)
	if err != nil {
		log.Printf("SubscribeHandler: subscribe failed for %s: %v", body.Email, err)
		_ = h.render.JSON(w, http.StatusBadGateway, map[string]interface{}{"error": "subscription service unavailable"})
		return
	}

	switch result.Title {
	case other.TitleMemberExists:
		_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
			"status":        other.StatusSubscribed,
			"alreadyExists": true,
		})
	case other.TitleInvalidResource:
		_ = h.render.JSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error": "email address looks invalid",
		})
	default:
		_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{
			"status": result.Status,
		})
	}
}

func (h *SubscribeHandler) resolveStatus(r *http.Request, token string) string {
	if token == "" {
		return other.StatusSubscribed
	}

	verdict, err := h.middleware.VerifyCaptcha(r.Context(), token)
	if err != nil {
		log.Printf("SubscribeHandler: captcha verification errored, proceeding: %v", err)
		return other.StatusSubscribed
	}
	if !verdict.Success {
		return other.StatusPending
	}
	return other.StatusSubscribed
}

// RequestCommission forwards a commission inquiry to the artist's inbox.
func (h *SubscribeHandler) RequestCommission(w http.ResponseWriter, r *http.Request) {
	var body other.CommissionRequest
	if err := decodeJSONBody(r, &body); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid request body"})
		return
	}

	if err := h.validate.Struct(body); err != nil {
		_ = h.render.JSON(w, http.StatusBadRequest, map[string]interface{}{"error": "name, email and details are required"})
		return
	}

	if err := h.middleware.RequestCommission(r.Context(), body); err != nil {
		log.Printf("SubscribeHandler: commission request failed: %v", err)
		_ = h.render.JSON(w, http.StatusBadGateway, map[string]interface{}{"error": "failed to send commission request"})
		return
	}

	_ = h.render.JSON(w, http.StatusOK, map[string]interface{}{"sent": true})
}
