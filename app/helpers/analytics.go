package helpers

import (
	"log"
	"sync"

	"github.com/google/uuid"
)

// Event is one analytics data-layer entry.
type Event struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Action   string `json:"action"`
	Label    string `json:"label"`
	Value    string `json:"value,omitempty"`
}

type dataLayer struct {
	mu     sync.Mutex
	events []Event
}

var layer dataLayer

// LogEvent records an event on the in-process data layer and the log. The
// data layer is established lazily on first push.
func LogEvent(event Event) Event {
	event.ID = uuid.New().String()

	layer.mu.Lock()
	defer layer.mu.Unlock()
	layer.events = append(layer.events, event)

	log.Printf("Analytics: %s / %s (%s)", event.Category, event.Action, event.Label)
	return event
}

// Events returns a copy of the recorded data layer.
func Events() []Event {
	layer.mu.Lock()
	defer layer.mu.Unlock()
	return append([]Event{}, layer.events...)
}
