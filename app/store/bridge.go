package store

import (
	"context"
	"log"
	"time"

	"github.com/ckendallart/storefront/app/models"
)

// Remote checkouts go stale after about a day; past this many hours the
// persisted pointer is discarded instead of fetched. The boundary is
// exclusive: a pointer aged exactly 23.9 hours is still fetched.
const maxCartAgeHours = 23.9

// CheckoutRefStore reads and writes the persisted {id, timeStamp} pointer to
// the visitor's remote checkout.
type CheckoutRefStore interface {
	Get() (*models.CheckoutRef, error)
	Put(ref models.CheckoutRef) error
	Delete() error
}

// CheckoutFetcher retrieves a remote checkout by id.
type CheckoutFetcher interface {
	FetchCheckout(ctx context.Context, checkoutID string) (*models.Checkout, error)
}

// Bridge reconciles the persisted checkout pointer against the in-memory
// cart once per page-load cycle. Now is overridable for tests and defaults
// to time.Now.
type Bridge struct {
	Refs    CheckoutRefStore
	Fetcher CheckoutFetcher
	Now     func() time.Time
}

// Reconcile runs the mount-time state machine:
//   - pointer present, no in-memory id: expired pointer is erased and the
//     cart reset; otherwise the remote checkout is fetched and hydrated, or
//     the fetch error surfaced.
//   - in-memory id present, no pointer: the local cart reference was lost,
//     reset to an empty cart.
//   - both or neither: the in-memory state is already usable.
//
// Every path ends with the loading flag cleared.
func (b *Bridge) Reconcile(ctx context.Context, st *Store, products []models.Product) {
	now := b.Now
	if now == nil {
		now = time.Now
	}

	ref, err := b.Refs.Get()
	if err != nil {
		log.Printf("Bridge: failed reading checkout ref, treating as absent: %v", err)
		ref = nil
	}
	state := st.State()

	switch {
	case ref != nil && state.ID == "":
		ageInHours := now().Sub(time.UnixMilli(ref.TimeStamp)).Hours()
		if ageInHours > maxCartAgeHours {
			if err := b.Refs.Delete(); err != nil {
				log.Printf("Bridge: failed deleting expired checkout ref: %v", err)
			}
			st.Dispatch(Action{Type: ResetCart})
			return
		}

		payload, err := b.Fetcher.FetchCheckout(ctx, ref.ID)
		if err != nil {
			log.Printf("Bridge: error fetching remote cart %s: %v", ref.ID, err)
			st.Dispatch(Action{Type: ErrorFromCart, Err: err})
			return
		}
		st.Dispatch(Action{Type: InitRemoteCart, Payload: payload, Products: products})

	case state.ID != "" && ref == nil:
		// The in-memory cart points at a checkout we no longer have a
		// reference to. Favor consistency over recovery.
		st.Dispatch(Action{Type: ResetCart})

	default:
		st.Dispatch(Action{Type: ClearLoading})
	}
}
