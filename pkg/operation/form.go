package operation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Notifier surfaces transient success and error messages to the user.
type Notifier interface {
	NotifySuccess(text string)
	NotifyError(text string)
}

// Definition parameterizes a Form with its external call, validation rule and messages.
type Definition[In, Out any] struct {
	// Name identifies the form in views, events and logs.
	Name string
	// Validate checks local preconditions. A failure is reported and leaves the phase unchanged.
	Validate func(in In) error
	// Execute performs the external call. It runs on its own goroutine.
	Execute func(ctx context.Context, in In) (Out, error)
	// SuccessMessage renders the success notification.
	SuccessMessage func(in In, out Out) string
	Messages       Messages
}

// Outcome is the resolution of one submission.
type Outcome[Out any] struct {
	Phase   Phase
	Result  Out
	Kind    Kind
	Message string
	Err     error
}

// View is a read-only copy of a form's state.
type View struct {
	Form     string `json:"form"`
	Phase    Phase  `json:"phase"`
	Input    any    `json:"input"`
	Error    string `json:"error,omitzero"`
	Result   any    `json:"result,omitzero"`
	Disabled bool   `json:"disabled"`
}

// Form runs one Definition. At most one submission is in flight at a time.
type Form[In, Out any] struct {
	def      Definition[In, Out]
	notifier Notifier
	settings settings

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	mu     sync.Mutex
	input  In
	phase  Phase
	errMsg string
	result Out
	gen    uint64
	timer  Timer
	closed bool
}

// NewForm creates an Idle form.
func NewForm[In, Out any](def Definition[In, Out], notifier Notifier, opts ...Option) (*Form[In, Out], error) {
	if def.Name == "" {
		return nil, fmt.Errorf("form name is required")
	}
	if def.Execute == nil {
		return nil, fmt.Errorf("form %s: execute function is required", def.Name)
	}
	if def.Messages.Failure == "" {
		return nil, fmt.Errorf("form %s: failure message is required", def.Name)
	}
	if notifier == nil {
		return nil, fmt.Errorf("form %s: notifier is required", def.Name)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Form[In, Out]{
		def:      def,
		notifier: notifier,
		settings: applyOptions(opts),
		baseCtx:  ctx,
		cancel:   cancel,
	}, nil
}

// Name returns the form name.
func (f *Form[In, Out]) Name() string {
	return f.def.Name
}

// Phase returns the current phase.
func (f *Form[In, Out]) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase
}

// Disabled reports whether input and submission are currently rejected.
func (f *Form[In, Out]) Disabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.phase.Disables()
}

// Input returns the current input value.
func (f *Form[In, Out]) Input() In {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.input
}

// SetInput replaces the input value unless the form is disabled.
func (f *Form[In, Out]) SetInput(in In) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return ErrClosed
	}
	if f.phase.Disables() {
		return ErrDisabled
	}
	f.input = in
	return nil
}

// View returns a snapshot of the form.
func (f *Form[In, Out]) View() View {
	f.mu.Lock()
	defer f.mu.Unlock()
	v := View{
		Form:     f.def.Name,
		Phase:    f.phase,
		Input:    f.input,
		Error:    f.errMsg,
		Disabled: f.phase.Disables(),
	}
	if f.phase == PhaseSucceeded {
		v.Result = f.result
	}
	return v
}

// Submit validates the current input and starts the external call.
//
// A disabled form returns ErrDisabled and nothing changes. A validation
// failure is notified and returned as *ValidationError, also without a phase
// change. Otherwise the form enters Pending and the returned channel receives
// exactly one Outcome once the call resolves.
func (f *Form[In, Out]) Submit(ctx context.Context) (<-chan Outcome[Out], error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrClosed
	}
	if f.phase.Disables() {
		f.mu.Unlock()
		return nil, ErrDisabled
	}
	in := f.input
	if f.def.Validate != nil {
		if err := f.def.Validate(in); err != nil {
			f.mu.Unlock()
			return nil, f.reportInvalid(err)
		}
	}

	f.gen++
	gen := f.gen
	f.phase = PhasePending
	f.errMsg = ""
	var zero Out
	f.result = zero
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	started := f.settings.now()
	f.wg.Add(1)
	f.mu.Unlock()

	f.settings.logger.Debug("form submitted",
		zap.String("form", f.def.Name),
		zap.Uint64("submission", gen))
	f.observe(func(o Observer) {
		o.OnPending(Event{
			Form:       f.def.Name,
			Submission: gen,
			Phase:      PhasePending,
			Input:      in,
			StartedAt:  started,
		})
	})

	out := make(chan Outcome[Out], 1)
	go f.run(ctx, gen, in, started, out)
	return out, nil
}

// Close stops a pending reset, cancels in-flight calls and waits for them to resolve.
func (f *Form[In, Out]) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	if f.timer != nil {
		f.timer.Stop()
		f.timer = nil
	}
	f.mu.Unlock()

	f.cancel()
	f.wg.Wait()
}

func (f *Form[In, Out]) reportInvalid(err error) error {
	var verr *ValidationError
	if !errors.As(err, &verr) {
		verr = &ValidationError{Message: err.Error()}
		err = verr
	}
	f.notifier.NotifyError(verr.Message)
	f.observe(func(o Observer) {
		o.OnRejected(Event{
			Form:    f.def.Name,
			Phase:   f.Phase(),
			Kind:    KindValidation,
			Message: verr.Message,
			Err:     err,
		})
	})
	return err
}

func (f *Form[In, Out]) run(ctx context.Context, gen uint64, in In, started time.Time, out chan<- Outcome[Out]) {
	defer f.wg.Done()
	defer close(out)

	// The call outlives the submitting request but not the form.
	execCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	defer cancel()
	stop := context.AfterFunc(f.baseCtx, cancel)
	defer stop()

	result, err := f.execute(execCtx, in)
	finished := f.settings.now()

	if err != nil {
		kind, msg := Classify(err, f.def.Messages)
		f.mu.Lock()
		if f.gen == gen {
			f.phase = PhaseFailed
			f.errMsg = msg
		}
		f.mu.Unlock()

		f.settings.logger.Debug("form failed",
			zap.String("form", f.def.Name),
			zap.Uint64("submission", gen),
			zap.String("kind", kind.String()),
			zap.Error(err))
		f.notifier.NotifyError(msg)
		f.observe(func(o Observer) {
			o.OnResolved(Event{
				Form:       f.def.Name,
				Submission: gen,
				Phase:      PhaseFailed,
				Kind:       kind,
				Message:    msg,
				Err:        err,
				Input:      in,
				StartedAt:  started,
				FinishedAt: finished,
			})
		})
		out <- Outcome[Out]{Phase: PhaseFailed, Kind: kind, Message: msg, Err: err}
		return
	}

	msg := ""
	if f.def.SuccessMessage != nil {
		msg = f.def.SuccessMessage(in, result)
	}

	f.mu.Lock()
	if f.gen == gen && !f.closed {
		f.phase = PhaseSucceeded
		f.result = result
		f.timer = f.settings.afterFunc(f.settings.resetDelay, func() { f.reset(gen) })
	}
	f.mu.Unlock()

	f.settings.logger.Debug("form succeeded",
		zap.String("form", f.def.Name),
		zap.Uint64("submission", gen),
		zap.Duration("reset_in", f.settings.resetDelay))
	if msg != "" {
		f.notifier.NotifySuccess(msg)
	}
	f.observe(func(o Observer) {
		o.OnResolved(Event{
			Form:       f.def.Name,
			Submission: gen,
			Phase:      PhaseSucceeded,
			Message:    msg,
			Input:      in,
			Result:     result,
			StartedAt:  started,
			FinishedAt: finished,
		})
	})
	out <- Outcome[Out]{Phase: PhaseSucceeded, Result: result, Message: msg}
}

func (f *Form[In, Out]) execute(ctx context.Context, in In) (result Out, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: execute panicked: %v", f.def.Name, r)
		}
	}()
	return f.def.Execute(ctx, in)
}

// reset returns a succeeded form to Idle and clears its input. A timer from an
// earlier submission is a no-op.
func (f *Form[In, Out]) reset(gen uint64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.gen != gen || f.phase != PhaseSucceeded {
		return
	}
	var (
		zeroIn  In
		zeroOut Out
	)
	f.phase = PhaseIdle
	f.input = zeroIn
	f.result = zeroOut
	f.timer = nil
	f.settings.logger.Debug("form reset", zap.String("form", f.def.Name), zap.Uint64("submission", gen))
}

func (f *Form[In, Out]) observe(fn func(Observer)) {
	for _, o := range f.settings.observers {
		fn(o)
	}
}
