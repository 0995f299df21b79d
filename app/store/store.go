package store

import (
	"sync"

	"github.com/ckendallart/storefront/app/models"
)

// Store owns one CartState and funnels every transition through Reduce.
// There is no ambient singleton; whoever needs the cart gets a Store handed
// to them.
type Store struct {
	mu    sync.Mutex
	state models.CartState
}

func NewStore() *Store {
	return &Store{state: InitialState()}
}

// State returns the current cart state.
func (s *Store) State() models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies an action and returns the resulting state.
func (s *Store) Dispatch(action Action) models.CartState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, action)
	return s.state
}
