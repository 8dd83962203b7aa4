package console

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/chainsafe/wallet-console/pkg/operation"
)

// Outcome is the type-erased resolution of one submission.
type Outcome struct {
	Form    string          `json:"form"`
	Phase   operation.Phase `json:"phase"`
	Kind    operation.Kind  `json:"kind,omitempty"`
	Message string          `json:"message,omitempty"`
	Result  any             `json:"result,omitempty"`
	Err     error           `json:"-"`
}

// formHandle lets the session drive forms of different input and result types.
type formHandle interface {
	Name() string
	View() operation.View
	Disabled() bool
	setInput(raw []byte) error
	submit(ctx context.Context) (<-chan Outcome, error)
	Close()
}

type typedForm[In, Out any] struct {
	*operation.Form[In, Out]
}

func (f typedForm[In, Out]) setInput(raw []byte) error {
	var in In
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		return &inputError{err: err}
	}
	return f.SetInput(in)
}

func (f typedForm[In, Out]) submit(ctx context.Context) (<-chan Outcome, error) {
	typed, err := f.Submit(ctx)
	if err != nil {
		return nil, err
	}
	out := make(chan Outcome, 1)
	go func() {
		defer close(out)
		o, ok := <-typed
		if !ok {
			return
		}
		res := Outcome{Form: f.Name(), Phase: o.Phase, Kind: o.Kind, Message: o.Message, Err: o.Err}
		if o.Phase == operation.PhaseSucceeded {
			res.Result = o.Result
		}
		out <- res
	}()
	return out, nil
}

// inputError reports a form input body that does not decode.
type inputError struct {
	err error
}

func (e *inputError) Error() string { return "invalid form input: " + e.err.Error() }

func (e *inputError) Unwrap() error { return e.err }
