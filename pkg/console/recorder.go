package console

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chainsafe/wallet-console/internal/metrics"
	"github.com/chainsafe/wallet-console/pkg/history"
	"github.com/chainsafe/wallet-console/pkg/operation"
)

const (
	recorderQueue   = 256
	recorderTimeout = 5 * time.Second
)

type submissionKey struct {
	form string
	n    uint64
}

// recorder writes form events to the history store on one background
// goroutine, so a create is always stored before its completion.
type recorder struct {
	session *Session
	store   history.Store
	logger  *zap.Logger

	mu      sync.Mutex
	pending map[submissionKey]uuid.UUID
	closed  bool
	jobs    chan func(ctx context.Context) error
	done    chan struct{}
}

var _ operation.Observer = (*recorder)(nil)

func newRecorder(s *Session, store history.Store, logger *zap.Logger) *recorder {
	r := &recorder{
		session: s,
		store:   store,
		logger:  logger.Named("history"),
		pending: make(map[submissionKey]uuid.UUID),
		jobs:    make(chan func(ctx context.Context) error, recorderQueue),
		done:    make(chan struct{}),
	}
	go r.loop()
	return r
}

func (r *recorder) OnPending(e operation.Event) {
	metrics.FormsPending.WithLabelValues(e.Form).Inc()

	_, network := r.session.current()
	op := history.New(e.Form, network, r.session.wallet.Address(), e.StartedAt)
	switch in := e.Input.(type) {
	case AirdropInput:
		op.Amount = in.Amount
	case TransferInput:
		op.Amount = in.Amount
		op.Recipient = in.Recipient
	}

	r.mu.Lock()
	r.pending[submissionKey{e.Form, e.Submission}] = op.ID
	r.mu.Unlock()

	r.enqueue(func(ctx context.Context) error {
		return r.store.Create(ctx, op)
	})
}

func (r *recorder) OnResolved(e operation.Event) {
	outcome := "succeeded"
	if e.Phase != operation.PhaseSucceeded {
		outcome = e.Kind.String()
	}
	metrics.FormsPending.WithLabelValues(e.Form).Dec()
	metrics.OperationsTotal.WithLabelValues(e.Form, outcome).Inc()
	metrics.OperationDuration.WithLabelValues(e.Form).Observe(e.Duration().Seconds())

	key := submissionKey{e.Form, e.Submission}
	r.mu.Lock()
	id, ok := r.pending[key]
	delete(r.pending, key)
	r.mu.Unlock()
	if !ok {
		r.logger.Warn("resolved submission was never recorded",
			zap.String("form", e.Form), zap.Uint64("submission", e.Submission))
		return
	}

	c := history.Completion{Status: history.StatusSucceeded, FinishedAt: e.FinishedAt}
	if e.Phase != operation.PhaseSucceeded {
		c.Status = history.StatusFailed
		c.ErrorKind = e.Kind.String()
		c.ErrorMessage = e.Message
	}
	switch res := e.Result.(type) {
	case AirdropResult:
		c.TxID = res.TxID
	case TransferResult:
		c.TxID = res.TxID
	}

	r.enqueue(func(ctx context.Context) error {
		return r.store.Complete(ctx, id, c)
	})
}

func (r *recorder) OnRejected(e operation.Event) {
	metrics.ValidationRejections.WithLabelValues(e.Form).Inc()
}

func (r *recorder) enqueue(job func(ctx context.Context) error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	select {
	case r.jobs <- job:
	default:
		r.logger.Warn("history queue full, dropping write")
	}
}

func (r *recorder) loop() {
	defer close(r.done)
	for job := range r.jobs {
		ctx, cancel := context.WithTimeout(context.Background(), recorderTimeout)
		if err := job(ctx); err != nil {
			r.logger.Error("failed to record operation", zap.Error(err))
		}
		cancel()
	}
}

// close drains queued writes.
func (r *recorder) close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	close(r.jobs)
	r.mu.Unlock()
	<-r.done
}

// flush waits until every write queued so far has been applied.
func (r *recorder) flush() {
	done := make(chan struct{})
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.jobs <- func(context.Context) error {
		close(done)
		return nil
	}
	r.mu.Unlock()
	<-done
}
