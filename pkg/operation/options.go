package operation

import (
	"time"

	"go.uber.org/zap"
)

// DefaultResetDelay is how long a form stays Succeeded before returning to Idle.
const DefaultResetDelay = 3 * time.Second

// Timer is the handle of a scheduled reset.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules fn to run once after d.
type AfterFunc func(d time.Duration, fn func()) Timer

// StdAfterFunc schedules with the runtime timer.
func StdAfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Option configures a Form using the functional options pattern.
type Option func(*settings)

type settings struct {
	resetDelay time.Duration
	afterFunc  AfterFunc
	now        func() time.Time
	observers  []Observer
	logger     *zap.Logger
}

// WithResetDelay overrides DefaultResetDelay. Non-positive values are ignored.
func WithResetDelay(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.resetDelay = d
		}
	}
}

// WithAfterFunc replaces the timer used for the delayed reset.
func WithAfterFunc(fn AfterFunc) Option {
	return func(s *settings) { s.afterFunc = fn }
}

// WithClock replaces the clock used to stamp events.
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// WithObserver registers observers of pending and resolved submissions.
func WithObserver(obs ...Observer) Option {
	return func(s *settings) { s.observers = append(s.observers, obs...) }
}

// WithLogger sets a logger for phase transitions.
func WithLogger(l *zap.Logger) Option {
	return func(s *settings) { s.logger = l }
}

func applyOptions(opts []Option) settings {
	s := settings{
		resetDelay: DefaultResetDelay,
		afterFunc:  StdAfterFunc,
		now:        time.Now,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&s)
		}
	}
	return s
}
