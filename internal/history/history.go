// Package history records completed searches for later inspection.
package history

import (
	"context"
	"time"
)

// Event is one recorded search.
type Event struct {
	ID          string    `json:"id"`
	Query       string    `json:"query"`
	Specialty   string    `json:"specialty,omitempty"`
	Location    string    `json:"location,omitempty"`
	ResultCount int       `json:"result_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// Sink persists search events. Implementations must be safe for concurrent
// use; the engine records events from response goroutines.
type Sink interface {
	Record(ctx context.Context, e Event) error
	Recent(ctx context.Context, limit int) ([]Event, error)
	Close() error
}

// Nop is a Sink that discards everything. Used when history is disabled.
type Nop struct{}

func (Nop) Record(context.Context, Event) error          { return nil }
func (Nop) Recent(context.Context, int) ([]Event, error) { return nil, nil }
func (Nop) Close() error                                 { return nil }
