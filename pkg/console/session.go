// Package console drives one connected wallet through the airdrop, transfer
// and sign forms, keeps the shared balance, and records every submission.
package console

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chainsafe/wallet-console/internal/metrics"
	apperrors "github.com/chainsafe/wallet-console/pkg/app/errors"
	"github.com/chainsafe/wallet-console/pkg/balance"
	"github.com/chainsafe/wallet-console/pkg/chain"
	"github.com/chainsafe/wallet-console/pkg/history"
	"github.com/chainsafe/wallet-console/pkg/operation"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Service is the console API shared by the HTTP handlers and the CLI.
//
//go:generate mockery --name Service --output mocks --outpkg mocks --filename mock_service.go --with-expecter
type Service interface {
	Wallet(ctx context.Context) (*WalletInfo, error)
	Connect(ctx context.Context) (*WalletInfo, error)
	Disconnect(ctx context.Context) (*WalletInfo, error)
	RefreshBalance(ctx context.Context) (*WalletInfo, error)
	SetNetwork(ctx context.Context, network string) (*WalletInfo, error)
	Forms(ctx context.Context) ([]operation.View, error)
	Form(ctx context.Context, name string) (*operation.View, error)
	SetInput(ctx context.Context, name string, input json.RawMessage) (*operation.View, error)
	// Submit starts a submission and returns the form as it entered Pending.
	Submit(ctx context.Context, name string) (*operation.View, error)
	// Run sets the input, submits and waits for the outcome.
	Run(ctx context.Context, name string, input json.RawMessage) (*Outcome, error)
	History(ctx context.Context, limit int) ([]*history.Operation, error)
	Stats(ctx context.Context) (*history.Stats, error)
}

// WalletInfo is the wallet panel state.
type WalletInfo struct {
	Kind      chain.Kind       `json:"kind"`
	Connected bool             `json:"connected"`
	Address   string           `json:"address,omitempty"`
	Network   string           `json:"network"`
	Networks  []string         `json:"networks"`
	Balance   balance.Snapshot `json:"balance"`
}

// Config configures a Session.
type Config struct {
	Kind           chain.Kind
	Networks       []string
	DefaultNetwork string
	ResetDelay     time.Duration
}

// Deps are the collaborators of a Session.
type Deps struct {
	Wallet   chain.Wallet
	Verifier chain.Verifier
	Dialer   chain.Dialer
	Notifier operation.Notifier
	// Store defaults to an in-memory store.
	Store history.Store
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock replaces the clock used for events and stats.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithFormOptions appends options applied to every form.
func WithFormOptions(opts ...operation.Option) Option {
	return func(s *Session) { s.formOpts = append(s.formOpts, opts...) }
}

// Session is the console state for one wallet.
type Session struct {
	kind     chain.Kind
	networks []string
	wallet   chain.Wallet
	verifier chain.Verifier
	dialer   chain.Dialer
	store    history.Store
	balance  *balance.Balance
	recorder *recorder
	logger   *zap.Logger
	now      func() time.Time
	formOpts []operation.Option

	// gate orders submissions against network switches.
	gate sync.RWMutex

	clientMu sync.Mutex
	client   chain.Client
	network  string

	forms map[string]formHandle
	order []formHandle
}

var _ Service = (*Session)(nil)

// NewSession dials the default network and builds the three forms.
func NewSession(ctx context.Context, cfg Config, deps Deps, opts ...Option) (*Session, error) {
	if err := cfg.Kind.Validate(); err != nil {
		return nil, err
	}
	if deps.Wallet == nil || deps.Verifier == nil || deps.Dialer == nil || deps.Notifier == nil {
		return nil, fmt.Errorf("wallet, verifier, dialer and notifier are required")
	}
	if deps.Wallet.Kind() != cfg.Kind {
		return nil, fmt.Errorf("wallet kind %s does not match chain kind %s", deps.Wallet.Kind(), cfg.Kind)
	}
	if !slices.Contains(cfg.Networks, cfg.DefaultNetwork) {
		return nil, fmt.Errorf("default network %q is not configured", cfg.DefaultNetwork)
	}

	s := &Session{
		kind:     cfg.Kind,
		networks: slices.Clone(cfg.Networks),
		wallet:   deps.Wallet,
		verifier: deps.Verifier,
		dialer:   deps.Dialer,
		store:    deps.Store,
		balance:  balance.New(cfg.Kind.Decimals(), cfg.Kind.Symbol()),
		logger:   zap.NewNop(),
		now:      time.Now,
		forms:    make(map[string]formHandle),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = history.NewMemoryStore()
	}
	slices.Sort(s.networks)

	client, err := s.dialer.Dial(ctx, cfg.DefaultNetwork)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.DefaultNetwork, err)
	}
	s.client = client
	s.network = cfg.DefaultNetwork

	s.balance.Subscribe(func(snap balance.Snapshot) {
		if snap.Known() {
			metrics.WalletBalance.WithLabelValues(snap.Network).Set(snap.Tokens(s.kind.Decimals()).InexactFloat64())
		}
	})
	s.recorder = newRecorder(s, s.store, s.logger)

	formOpts := append([]operation.Option{
		operation.WithResetDelay(cfg.ResetDelay),
		operation.WithObserver(s.recorder),
		operation.WithLogger(s.logger.Named("form")),
		operation.WithClock(s.now),
	}, s.formOpts...)

	airdrop, err := operation.NewForm(s.airdropDefinition(), deps.Notifier, formOpts...)
	if err != nil {
		return nil, err
	}
	transfer, err := operation.NewForm(s.transferDefinition(), deps.Notifier, formOpts...)
	if err != nil {
		return nil, err
	}
	sign, err := operation.NewForm(s.signDefinition(), deps.Notifier, formOpts...)
	if err != nil {
		return nil, err
	}
	for _, f := range []formHandle{
		typedForm[AirdropInput, AirdropResult]{airdrop},
		typedForm[TransferInput, TransferResult]{transfer},
		typedForm[SignInput, SignResult]{sign},
	} {
		s.forms[f.Name()] = f
		s.order = append(s.order, f)
	}
	return s, nil
}

// Wallet returns the wallet panel state.
func (s *Session) Wallet(context.Context) (*WalletInfo, error) {
	_, network := s.current()
	info := &WalletInfo{
		Kind:      s.kind,
		Connected: s.wallet.Connected(),
		Network:   network,
		Networks:  slices.Clone(s.networks),
		Balance:   s.balance.Get(),
	}
	if info.Connected {
		info.Address = s.wallet.Address()
	}
	return info, nil
}

// Connect connects the wallet and loads its balance. A balance failure is
// logged and leaves the balance unknown.
func (s *Session) Connect(ctx context.Context) (*WalletInfo, error) {
	if err := s.wallet.Connect(ctx); err != nil {
		return nil, apperrors.DependencyError(err, "failed to connect wallet")
	}
	client, _ := s.current()
	if _, err := s.fetchBalance(ctx, client, s.wallet.Address()); err != nil {
		s.logger.Warn("failed to load balance after connect", zap.Error(err))
	}
	return s.Wallet(ctx)
}

// Disconnect disconnects the wallet and forgets the balance.
func (s *Session) Disconnect(ctx context.Context) (*WalletInfo, error) {
	s.wallet.Disconnect()
	s.balance.Clear()
	return s.Wallet(ctx)
}

// RefreshBalance re-reads the wallet balance from the current network.
func (s *Session) RefreshBalance(ctx context.Context) (*WalletInfo, error) {
	if !s.wallet.Connected() {
		return nil, apperrors.BadRequestError(chain.ErrNotConnected, msgConnectWallet)
	}
	client, _ := s.current()
	if _, err := s.fetchBalance(ctx, client, s.wallet.Address()); err != nil {
		if operation.IsRateLimited(err) {
			return nil, apperrors.TooManyRequestsError(err, msgRateLimited)
		}
		return nil, apperrors.DependencyError(err, "failed to fetch balance")
	}
	return s.Wallet(ctx)
}

// SetNetwork switches every form to another network. It is refused while any
// form is pending or showing a success.
func (s *Session) SetNetwork(ctx context.Context, network string) (*WalletInfo, error) {
	if !slices.Contains(s.networks, network) {
		return nil, apperrors.BadRequestError(nil, fmt.Sprintf("unknown network %q", network))
	}

	s.gate.Lock()
	old, current := s.current()
	if network == current {
		s.gate.Unlock()
		return s.Wallet(ctx)
	}
	for _, f := range s.order {
		if f.Disabled() {
			s.gate.Unlock()
			return nil, apperrors.LockedError(operation.ErrDisabled,
				fmt.Sprintf("cannot switch network while %s is in progress", f.Name()))
		}
	}
	client, err := s.dialer.Dial(ctx, network)
	if err != nil {
		s.gate.Unlock()
		return nil, apperrors.DependencyError(err, fmt.Sprintf("failed to connect to %s", network))
	}
	s.clientMu.Lock()
	s.client = client
	s.network = network
	s.clientMu.Unlock()
	s.gate.Unlock()

	old.Close()
	s.balance.Clear()
	s.logger.Info("network switched", zap.String("from", current), zap.String("to", network))

	if s.wallet.Connected() {
		if _, err := s.fetchBalance(ctx, client, s.wallet.Address()); err != nil {
			s.logger.Warn("failed to load balance after network switch", zap.Error(err))
		}
	}
	return s.Wallet(ctx)
}

// Forms returns every form in a stable order.
func (s *Session) Forms(context.Context) ([]operation.View, error) {
	views := make([]operation.View, 0, len(s.order))
	for _, f := range s.order {
		views = append(views, f.View())
	}
	return views, nil
}

// Form returns one form.
func (s *Session) Form(_ context.Context, name string) (*operation.View, error) {
	f, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	v := f.View()
	return &v, nil
}

// SetInput replaces a form's input with the decoded JSON object.
func (s *Session) SetInput(_ context.Context, name string, input json.RawMessage) (*operation.View, error) {
	f, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	if err := f.setInput(input); err != nil {
		return nil, formError(err)
	}
	v := f.View()
	return &v, nil
}

// Submit starts a submission.
func (s *Session) Submit(ctx context.Context, name string) (*operation.View, error) {
	f, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	if _, err := s.submit(ctx, f); err != nil {
		return nil, formError(err)
	}
	v := f.View()
	return &v, nil
}

// Run sets input (when given), submits and blocks until the outcome or ctx is
// done. The outcome is recorded in the history before Run returns.
func (s *Session) Run(ctx context.Context, name string, input json.RawMessage) (*Outcome, error) {
	f, err := s.lookup(name)
	if err != nil {
		return nil, err
	}
	if len(input) > 0 {
		if err := f.setInput(input); err != nil {
			return nil, formError(err)
		}
	}
	ch, err := s.submit(ctx, f)
	if err != nil {
		return nil, formError(err)
	}
	select {
	case o, ok := <-ch:
		if !ok {
			return nil, apperrors.GeneralError(fmt.Errorf("%s: submission dropped", name))
		}
		s.recorder.flush()
		return &o, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// History returns the most recent operations first.
func (s *Session) History(ctx context.Context, limit int) ([]*history.Operation, error) {
	switch {
	case limit <= 0:
		limit = defaultHistoryLimit
	case limit > maxHistoryLimit:
		limit = maxHistoryLimit
	}
	ops, err := s.store.List(ctx, history.ListOptions{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	return ops, nil
}

// Stats returns the dashboard statistics.
func (s *Session) Stats(ctx context.Context) (*history.Stats, error) {
	return history.ComputeStats(ctx, s.store, s.now())
}

// Close stops every form, flushes history writes and closes the chain client.
func (s *Session) Close() {
	for _, f := range s.order {
		f.Close()
	}
	s.recorder.close()
	client, _ := s.current()
	client.Close()
}

func (s *Session) submit(ctx context.Context, f formHandle) (<-chan Outcome, error) {
	s.gate.RLock()
	defer s.gate.RUnlock()
	return f.submit(ctx)
}

func (s *Session) current() (chain.Client, string) {
	s.clientMu.Lock()
	defer s.clientMu.Unlock()
	return s.client, s.network
}

func (s *Session) lookup(name string) (formHandle, error) {
	f, ok := s.forms[name]
	if !ok {
		return nil, apperrors.ResourceNotFoundError(nil, fmt.Sprintf("unknown form %q", name))
	}
	return f, nil
}

// formError maps form errors to service errors.
func formError(err error) error {
	var (
		verr *operation.ValidationError
		ierr *inputError
	)
	switch {
	case errors.As(err, &verr):
		return apperrors.BadRequestError(err, verr.Message)
	case errors.As(err, &ierr):
		return apperrors.BadRequestError(err, "invalid form input")
	case errors.Is(err, operation.ErrDisabled):
		return apperrors.LockedError(err, "form is busy")
	case errors.Is(err, operation.ErrClosed):
		return apperrors.NotSupportedError(err, "console is shutting down")
	default:
		return apperrors.GeneralError(err)
	}
}
