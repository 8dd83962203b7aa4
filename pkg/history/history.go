// Package history records console operations and aggregates them for the dashboard.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when an operation ID is unknown.
var ErrNotFound = errors.New("operation not found")

// Status is the lifecycle state of a recorded operation.
type Status string

const (
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Operation is one submission that reached Pending.
type Operation struct {
	ID           uuid.UUID  `json:"id"`
	Form         string     `json:"form"`
	Network      string     `json:"network"`
	Address      string     `json:"address"`
	Status       Status     `json:"status"`
	ErrorKind    string     `json:"error_kind,omitempty"`
	ErrorMessage string     `json:"error_message,omitempty"`
	TxID         string     `json:"tx_id,omitempty"`
	Amount       string     `json:"amount,omitempty"`
	Recipient    string     `json:"recipient,omitempty"`
	StartedAt    time.Time  `json:"started_at"`
	FinishedAt   *time.Time `json:"finished_at,omitempty"`
}

// New creates a pending operation with a fresh ID.
func New(form, network, address string, startedAt time.Time) *Operation {
	return &Operation{
		ID:        uuid.New(),
		Form:      form,
		Network:   network,
		Address:   address,
		Status:    StatusPending,
		StartedAt: startedAt.UTC(),
	}
}

// Duration is the time from start to finish, or zero while pending.
func (o *Operation) Duration() time.Duration {
	if o.FinishedAt == nil {
		return 0
	}
	return o.FinishedAt.Sub(o.StartedAt)
}

// Completion is the resolution of a pending operation.
type Completion struct {
	Status       Status
	ErrorKind    string
	ErrorMessage string
	TxID         string
	FinishedAt   time.Time
}

// Summary aggregates the operations started within a window.
type Summary struct {
	Total      int
	Succeeded  int
	Failed     int
	AvgConfirm time.Duration
}

// DayCount is the number of operations started on one UTC day.
type DayCount struct {
	Day   time.Time `json:"day"`
	Count int       `json:"count"`
}

// ListOptions filters List.
type ListOptions struct {
	Limit int
	Form  string
}

// Store persists operations.
type Store interface {
	Create(ctx context.Context, op *Operation) error
	Complete(ctx context.Context, id uuid.UUID, c Completion) error
	Get(ctx context.Context, id uuid.UUID) (*Operation, error)
	// List returns the most recent operations first.
	List(ctx context.Context, opts ListOptions) ([]*Operation, error)
	// Summarize aggregates operations with from <= started_at < to.
	Summarize(ctx context.Context, from, to time.Time) (Summary, error)
	// Daily counts operations per UTC day with from <= started_at < to.
	Daily(ctx context.Context, from, to time.Time) ([]DayCount, error)
}
