package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps operations in process memory. It is used when the database is disabled.
type MemoryStore struct {
	mu  sync.RWMutex
	ops map[uuid.UUID]*Operation
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{ops: make(map[uuid.UUID]*Operation)}
}

func (s *MemoryStore) Create(_ context.Context, op *Operation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *op
	s.ops[op.ID] = &cp
	return nil
}

func (s *MemoryStore) Complete(_ context.Context, id uuid.UUID, c Completion) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	op, ok := s.ops[id]
	if !ok {
		return ErrNotFound
	}
	applyCompletion(op, c)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id uuid.UUID) (*Operation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	op, ok := s.ops[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *op
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context, opts ListOptions) ([]*Operation, error) {
	s.mu.RLock()
	out := make([]*Operation, 0, len(s.ops))
	for _, op := range s.ops {
		if opts.Form != "" && op.Form != opts.Form {
			continue
		}
		cp := *op
		out = append(out, &cp)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (s *MemoryStore) Summarize(_ context.Context, from, to time.Time) (Summary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		sum      Summary
		confirm  time.Duration
		confirms int
	)
	for _, op := range s.ops {
		if op.StartedAt.Before(from) || !op.StartedAt.Before(to) {
			continue
		}
		sum.Total++
		switch op.Status {
		case StatusSucceeded:
			sum.Succeeded++
			if op.FinishedAt != nil {
				confirm += op.Duration()
				confirms++
			}
		case StatusFailed:
			sum.Failed++
		}
	}
	if confirms > 0 {
		sum.AvgConfirm = confirm / time.Duration(confirms)
	}
	return sum, nil
}

func (s *MemoryStore) Daily(_ context.Context, from, to time.Time) ([]DayCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[time.Time]int)
	for _, op := range s.ops {
		if op.StartedAt.Before(from) || !op.StartedAt.Before(to) {
			continue
		}
		counts[dayStart(op.StartedAt)]++
	}
	out := make([]DayCount, 0, len(counts))
	for day, n := range counts {
		out = append(out, DayCount{Day: day, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day.Before(out[j].Day) })
	return out, nil
}

func applyCompletion(op *Operation, c Completion) {
	finished := c.FinishedAt.UTC()
	op.Status = c.Status
	op.ErrorKind = c.ErrorKind
	op.ErrorMessage = c.ErrorMessage
	op.TxID = c.TxID
	op.FinishedAt = &finished
}
