package operation

import "time"

// Event describes one submission at a phase boundary.
type Event struct {
	Form       string
	Submission uint64
	Phase      Phase
	Kind       Kind
	Message    string
	Err        error
	Input      any
	Result     any
	StartedAt  time.Time
	FinishedAt time.Time
}

// Duration is the time between entering Pending and resolution.
func (e Event) Duration() time.Duration {
	if e.StartedAt.IsZero() || e.FinishedAt.IsZero() {
		return 0
	}
	return e.FinishedAt.Sub(e.StartedAt)
}

// Observer is called synchronously by a Form. Implementations must not block.
type Observer interface {
	// OnPending is called after a valid submission enters Pending.
	OnPending(e Event)
	// OnResolved is called once the external call succeeded or failed.
	OnResolved(e Event)
	// OnRejected is called when local validation refused a submission.
	OnRejected(e Event)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	Pending  func(Event)
	Resolved func(Event)
	Rejected func(Event)
}

func (o ObserverFuncs) OnPending(e Event) {
	if o.Pending != nil {
		o.Pending(e)
	}
}

func (o ObserverFuncs) OnResolved(e Event) {
	if o.Resolved != nil {
		o.Resolved(e)
	}
}

func (o ObserverFuncs) OnRejected(e Event) {
	if o.Rejected != nil {
		o.Rejected(e)
	}
}
