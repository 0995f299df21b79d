package sessions

import (
	"encoding/json"
	"net/http"

	"github.com/ckendallart/storefront/app/configs"
	"github.com/ckendallart/storefront/app/models"
	"github.com/gorilla/sessions"
)

// The visitor's pointer to their remote checkout lives in a cookie session,
// the server-side analog of the original storefront's localStorage key.
const (
	SessionCheckoutKey = "ckendallart_checkout"
	checkoutRefKey     = "checkout_ref"
)

var (
	secret = configs.LoadEnv()
	store  = sessions.NewCookieStore([]byte(secret.SESSION_KEY))
)

func init() {
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   false,
	}
}

// CheckoutRefSession reads and writes one request's checkout pointer. It
// satisfies store.CheckoutRefStore.
type CheckoutRefSession struct {
	w http.ResponseWriter
	r *http.Request
}

func NewCheckoutRefSession(w http.ResponseWriter, r *http.Request) *CheckoutRefSession {
	return &CheckoutRefSession{w: w, r: r}
}

func (s *CheckoutRefSession) Get() (*models.CheckoutRef, error) {
	session, err := store.Get(s.r, SessionCheckoutKey)
	if err != nil {
		return nil, err
	}

	raw, ok := session.Values[checkoutRefKey].(string)
	if !ok || raw == "" {
		return nil, nil
	}

	var ref models.CheckoutRef
	if err := json.Unmarshal([]byte(raw), &ref); err != nil {
		return nil, err
	}
	return &ref, nil
}

func (s *CheckoutRefSession) Put(ref models.CheckoutRef) error {
	session, err := store.Get(s.r, SessionCheckoutKey)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(ref)
	if err != nil {
		return err
	}
	session.Values[checkoutRefKey] = string(raw)
	return session.Save(s.r, s.w)
}

func (s *CheckoutRefSession) Delete() error {
	session, err := store.Get(s.r, SessionCheckoutKey)
	if err != nil {
		return err
	}

	delete(session.Values, checkoutRefKey)
	return session.Save(s.r, s.w)
}
