package console

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apperrors "github.com/chainsafe/wallet-console/pkg/app/errors"
	"github.com/chainsafe/wallet-console/pkg/chain"
	"github.com/chainsafe/wallet-console/pkg/chain/solana"
	"github.com/chainsafe/wallet-console/pkg/history"
	"github.com/chainsafe/wallet-console/pkg/notify"
	"github.com/chainsafe/wallet-console/pkg/operation"
)

const (
	testAddress   = "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"
	testRecipient = "4Nd1mBQtrMJVYVfKf2PJy9NZUZdTAsp7D4xWLs4gDB4T"
)

var errBadAddress = errors.New("invalid recipient address")

type fakeTx struct {
	to     string
	amount *big.Int
}

func (fakeTx) Kind() chain.Kind { return chain.KindSolana }

type fakeClient struct {
	network string

	mu         sync.Mutex
	balance    *big.Int
	airdropTx  string
	airdropErr error
	confirmErr error
	balanceErr error
	block      chan struct{}
	closed     bool
	sent       []fakeTx
}

func newFakeClient(network string) *fakeClient {
	return &fakeClient{network: network, balance: big.NewInt(0), airdropTx: "airdrop-tx"}
}

func (c *fakeClient) Kind() chain.Kind { return chain.KindSolana }
func (c *fakeClient) Network() string  { return c.network }

func (c *fakeClient) RequestAirdrop(ctx context.Context, _ string, amount *big.Int) (string, error) {
	c.mu.Lock()
	block, err := c.block, c.airdropErr
	c.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if err != nil {
		return "", err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balance.Add(c.balance, amount)
	return c.airdropTx, nil
}

func (c *fakeClient) ConfirmTransaction(context.Context, string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirmErr
}

func (c *fakeClient) GetBalance(context.Context, string) (*big.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.balanceErr != nil {
		return nil, c.balanceErr
	}
	return new(big.Int).Set(c.balance), nil
}

func (c *fakeClient) NewTransfer(_ context.Context, _, to string, amount *big.Int) (chain.Transaction, error) {
	if to != testRecipient {
		return nil, fmt.Errorf("%w: recipient %q", errBadAddress, to)
	}
	return fakeTx{to: to, amount: amount}, nil
}

func (c *fakeClient) Broadcast(_ context.Context, tx chain.Transaction) (string, error) {
	t := tx.(fakeTx)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balance.Sub(c.balance, t.amount)
	c.sent = append(c.sent, t)
	return "transfer-tx", nil
}

func (c *fakeClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *fakeClient) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

type fakeWallet struct {
	mu        sync.Mutex
	connected bool
	signature []byte
	address   string
}

func (w *fakeWallet) Kind() chain.Kind { return chain.KindSolana }

func (w *fakeWallet) Connected() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.connected
}

func (w *fakeWallet) Connect(context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.connected = true
	return nil
}

func (w *fakeWallet) Disconnect() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.connected = false
}

func (w *fakeWallet) Address() string {
	if !w.Connected() {
		return ""
	}
	if w.address != "" {
		return w.address
	}
	return testAddress
}

func (w *fakeWallet) PublicKey() []byte { return []byte("pub") }

func (w *fakeWallet) SignMessage(context.Context, []byte) ([]byte, error) {
	return w.signature, nil
}

func (w *fakeWallet) SendTransaction(ctx context.Context, client chain.Client, tx chain.Transaction) (string, error) {
	return client.Broadcast(ctx, tx)
}

type fakeVerifier struct {
	valid bool
}

func (v fakeVerifier) Verify([]byte, []byte, []byte) bool { return v.valid }

func (fakeVerifier) EncodeSignature(sig []byte) string { return hex.EncodeToString(sig) }

// manualTimers runs scheduled resets only when fire is called.
type manualTimers struct {
	mu  sync.Mutex
	fns []func()
}

type manualTimer struct{}

func (manualTimer) Stop() bool { return true }

func (m *manualTimers) AfterFunc(_ time.Duration, fn func()) operation.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fns = append(m.fns, fn)
	return manualTimer{}
}

func (m *manualTimers) fire() {
	m.mu.Lock()
	fns := m.fns
	m.fns = nil
	m.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

type testSession struct {
	*Session
	clients  map[string]*fakeClient
	wallet   chain.Wallet
	notes    *notify.Recorder
	timers   *manualTimers
	store    history.Store
	dialed   []string
	dialedMu sync.Mutex
}

func newTestSession(t *testing.T, wallet chain.Wallet, verifier chain.Verifier) *testSession {
	t.Helper()
	ts := &testSession{
		clients: map[string]*fakeClient{
			"devnet":  newFakeClient("devnet"),
			"testnet": newFakeClient("testnet"),
		},
		wallet: wallet,
		notes:  &notify.Recorder{},
		timers: &manualTimers{},
		store:  history.NewMemoryStore(),
	}
	dialer := chain.DialerFunc(func(_ context.Context, network string) (chain.Client, error) {
		ts.dialedMu.Lock()
		defer ts.dialedMu.Unlock()
		ts.dialed = append(ts.dialed, network)
		c, ok := ts.clients[network]
		if !ok {
			return nil, fmt.Errorf("no client for %s", network)
		}
		return c, nil
	})

	s, err := NewSession(context.Background(), Config{
		Kind:           chain.KindSolana,
		Networks:       []string{"devnet", "testnet"},
		DefaultNetwork: "devnet",
	}, Deps{
		Wallet:   wallet,
		Verifier: verifier,
		Dialer:   dialer,
		Notifier: notify.NewMulti(ts.notes),
		Store:    ts.store,
	}, WithFormOptions(operation.WithAfterFunc(ts.timers.AfterFunc)))
	require.NoError(t, err)
	t.Cleanup(s.Close)
	ts.Session = s
	return ts
}

func (ts *testSession) lastNote(t *testing.T) notify.Notification {
	t.Helper()
	n, ok := ts.notes.Last()
	if !ok {
		t.Fatal("expected a notification")
	}
	return n
}

func raw(v any) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

func requireCategory(t *testing.T, err error, cat apperrors.Category, msg string) {
	t.Helper()
	var svcErr *apperrors.ServiceError
	require.ErrorAs(t, err, &svcErr)
	require.Equal(t, cat, svcErr.Category, "unexpected category for %v", err)
	if msg != "" {
		require.Equal(t, msg, svcErr.Message)
	}
}

func TestSession_AirdropSucceedsAndResets(t *testing.T) {
	ts := newTestSession(t, &fakeWallet{}, fakeVerifier{valid: true})
	ctx := context.Background()

	info, err := ts.Connect(ctx)
	require.NoError(t, err)
	require.True(t, info.Connected)
	require.Equal(t, "0", info.Balance.Value)

	out, err := ts.Run(ctx, FormAirdrop, raw(AirdropInput{Amount: "1.5"}))
	require.NoError(t, err)
	require.Equal(t, operation.PhaseSucceeded, out.Phase)
	res, ok := out.Result.(AirdropResult)
	require.True(t, ok, "unexpected result type %T", out.Result)
	require.Equal(t, "airdrop-tx", res.TxID)
	require.Equal(t, "1.5", res.Balance)

	note := ts.lastNote(t)
	require.Equal(t, notify.LevelSuccess, note.Level)
	require.Equal(t, "1.5 SOL airdropped successfully", note.Text)

	wallet, err := ts.Wallet(ctx)
	require.NoError(t, err)
	require.Equal(t, "1.5", wallet.Balance.Value)
	require.Equal(t, "devnet", wallet.Balance.Network)

	view, err := ts.Form(ctx, FormAirdrop)
	require.NoError(t, err)
	require.Equal(t, operation.PhaseSucceeded, view.Phase)
	require.True(t, view.Disabled)

	_, err = ts.SetInput(ctx, FormAirdrop, raw(AirdropInput{Amount: "2"}))
	requireCategory(t, err, apperrors.CategoryLocked, "")

	ts.timers.fire()
	view, err = ts.Form(ctx, FormAirdrop)
	require.NoError(t, err)
	require.Equal(t, operation.PhaseIdle, view.Phase)
	require.Equal(t, AirdropInput{}, view.Input)

	ops, err := ts.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	require.Equal(t, history.StatusSucceeded, ops[0].Status)
	require.Equal(t, "airdrop-tx", ops[0].TxID)
	require.Equal(t, "1.5", ops[0].Amount)
	require.Equal(t, testAddress, ops[0].Address)
	require.Equal(t, "devnet", ops[0].Network)
}

func TestSession_ValidationLeavesPhaseUnchanged(t *testing.T) {
	tests := []struct {
		name    string
		connect bool
		form    string
		input   any
		wantMsg string
	}{
		{"airdrop disconnected", false, FormAirdrop, AirdropInput{Amount: "1"}, "Please connect your wallet"},
		{"airdrop empty amount", true, FormAirdrop, AirdropInput{}, "Please enter a valid amount"},
		{"airdrop zero amount", true, FormAirdrop, AirdropInput{Amount: "0"}, "Please enter a valid amount"},
		{"airdrop not a number", true, FormAirdrop, AirdropInput{Amount: "abc"}, "Please enter a valid amount"},
		{"transfer disconnected", false, FormTransfer, TransferInput{Recipient: testRecipient, Amount: "1"}, "Please connect your wallet"},
		{"transfer no recipient", true, FormTransfer, TransferInput{Recipient: "  ", Amount: "1"}, "Please enter a recipient address"},
		{"transfer negative amount", true, FormTransfer, TransferInput{Recipient: testRecipient, Amount: "-1"}, "Please enter a valid amount"},
		{"sign disconnected", false, FormSign, SignInput{Message: "hello"}, "Please connect your wallet"},
		{"sign blank message", true, FormSign, SignInput{Message: " \t "}, "Please enter a message to sign"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestSession(t, &fakeWallet{}, fakeVerifier{valid: true})
			ctx := context.Background()
			if tt.connect {
				_, err := ts.Connect(ctx)
				require.NoError(t, err)
			}

			_, err := ts.SetInput(ctx, tt.form, raw(tt.input))
			require.NoError(t, err)

			_, err = ts.Submit(ctx, tt.form)
			requireCategory(t, err, apperrors.CategoryDataError, tt.wantMsg)

			note := ts.lastNote(t)
			require.Equal(t, notify.LevelError, note.Level)
			require.Equal(t, tt.wantMsg, note.Text)

			view, err := ts.Form(ctx, tt.form)
			require.NoError(t, err)
			require.Equal(t, operation.PhaseIdle, view.Phase)
			require.Empty(t, view.Error)

			ops, err := ts.History(ctx, 10)
			require.NoError(t, err)
			require.Empty(t, ops)
		})
	}
}

func TestSession_AirdropRateLimited(t *testing.T) {
	ts := newTestSession(t, &fakeWallet{}, fakeVerifier{valid: true})
	ctx := context.Background()
	_, err := ts.Connect(ctx)
	require.NoError(t, err)
	ts.clients["devnet"].airdropErr = chain.ErrRateLimited

	out, err := ts.Run(ctx, FormAirdrop, raw(AirdropInput{Amount: "1"}))
	require.NoError(t, err)
	require.Equal(t, operation.PhaseFailed, out.Phase)
	require.Equal(t, operation.KindRateLimit, out.Kind)
	require.Equal(t, "Rate limit exceeded. Please try again later.", out.Message)
	require.Equal(t, "Rate limit exceeded. Please try again later.", ts.lastNote(t).Text)

	// Failed stays put and remains editable.
	ts.timers.fire()
	view, err := ts.SetInput(ctx, FormAirdrop, raw(AirdropInput{Amount: "0.5"}))
	require.NoError(t, err)
	require.Equal(t, operation.PhaseFailed, view.Phase)
	require.False(t, view.Disabled)
	require.Equal(t, "Rate limit exceeded. Please try again later.", view.Error)

	ops, err := ts.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, ops, 1)
	require.Equal(t, history.StatusFailed, ops[0].Status)
	require.Equal(t, "rate_limit", ops[0].ErrorKind)
}

func TestSession_AirdropConfirmFailureUsesGenericMessage(t *testing.T) {
	ts := newTestSession(t, &fakeWallet{}, fakeVerifier{valid: true})
	ctx := context.Background()
	_, err := ts.Connect(ctx)
	require.NoError(t, err)
	ts.clients["devnet"].confirmErr = errors.New("transaction expired")

	out, err := ts.Run(ctx, FormAirdrop, raw(AirdropInput{Amount: "1"}))
	require.NoError(t, err)
	require.Equal(t, operation.PhaseFailed, out.Phase)
	require.Equal(t, operation.KindOperation, out.Kind)
	require.Equal(t, "Failed to request airdrop. Please try again.", out.Message)
}

func TestSession_Transfer(t *testing.T) {
	ts := newTestSession(t, &fakeWallet{}, fakeVerifier{valid: true})
	ctx := context.Background()
	_, err := ts.Connect(ctx)
	require.NoError(t, err)
	ts.clients["devnet"].balance = big.NewInt(2_000_000_000)

	out, err := ts.Run(ctx, FormTransfer, raw(TransferInput{Recipient: "not-an-address", Amount: "0.5"}))
	require.NoError(t, err)
	require.Equal(t, operation.PhaseFailed, out.Phase)
	require.Equal(t, "Failed to send transaction. Please try again.", out.Message)
	require.ErrorIs(t, out.Err, errBadAddress)

	out, err = ts.Run(ctx, FormTransfer, raw(TransferInput{Recipient: " " + testRecipient + " ", Amount: "0.5"}))
	require.NoError(t, err)
	require.Equal(t, operation.PhaseSucceeded, out.Phase)
	res := out.Result.(TransferResult)
	require.Equal(t, "transfer-tx", res.TxID)
	require.Equal(t, testRecipient, res.Recipient)
	require.Equal(t, "1.5", res.Balance)
	require.Equal(t, "0.5 SOL sent to 4Nd1mBQt...DB4T", ts.lastNote(t).Text)

	sent := ts.clients["devnet"].sent
	require.Len(t, sent, 1)
	require.Equal(t, big.NewInt(500_000_000), sent[0].amount)

	ops, err := ts.History(ctx, 10)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	require.Equal(t, history.StatusSucceeded, ops[0].Status)
	require.Equal(t, history.StatusFailed, ops[1].Status)
}

func TestSession_FailureTextWith429IsNotRateLimited(t *testing.T) {
	ctx := context.Background()

	t.Run("transfer recipient", func(t *testing.T) {
		ts := newTestSession(t, &fakeWallet{}, fakeVerifier{valid: true})
		_, err := ts.Connect(ctx)
		require.NoError(t, err)

		out, err := ts.Run(ctx, FormTransfer, raw(TransferInput{Recipient: "abc429", Amount: "0.5"}))
		require.NoError(t, err)
		require.Equal(t, operation.PhaseFailed, out.Phase)
		require.Equal(t, operation.KindOperation, out.Kind)
		require.Equal(t, "Failed to send transaction. Please try again.", out.Message)
		require.Contains(t, out.Err.Error(), "abc429")
	})

	t.Run("confirmation of a transaction id", func(t *testing.T) {
		ts := newTestSession(t, &fakeWallet{}, fakeVerifier{valid: true})
		_, err := ts.Connect(ctx)
		require.NoError(t, err)
		ts.clients["devnet"].airdropTx = "3xq429JfZk"
		ts.clients["devnet"].confirmErr = errors.New("transaction expired")

		out, err := ts.Run(ctx, FormAirdrop, raw(AirdropInput{Amount: "1"}))
		require.NoError(t, err)
		require.Equal(t, operation.KindOperation, out.Kind)
		require.Equal(t, "Failed to request airdrop. Please try again.", out.Message)

		ops, err := ts.History(ctx, 10)
		require.NoError(t, err)
		require.Len(t, ops, 1)
		require.Equal(t, "operation", ops[0].ErrorKind)
	})

	t.Run("verification of a signer", func(t *testing.T) {
		wallet := &fakeWallet{signature: []byte{1}, address: "0x4290000000000000000000000000000000000429"}
		ts := newTestSession(t, wallet, fakeVerifier{valid: false})
		_, err := ts.Connect(ctx)
		require.NoError(t, err)

		out, err := ts.Run(ctx, FormSign, raw(SignInput{Message: "hello"}))
		require.NoError(t, err)
		require.Equal(t, operation.KindVerification, out.Kind)
		require.Equal(t, "Signature verification failed. Please try again.", out.Message)
	})
}

func TestSession_TransferWithSolanaClientRejectsRecipient(t *testing.T) {
	secret, err := solana.GenerateKey()
	require.NoError(t, err)
	wallet, err := solana.NewWallet(secret)
	require.NoError(t, err)
	client, err := solana.NewClient(solana.Config{Network: "devnet", RPCURL: "http://127.0.0.1:1"}, nil)
	require.NoError(t, err)

	s, err := NewSession(context.Background(), Config{
		Kind:           chain.KindSolana,
		Networks:       []string{"devnet"},
		DefaultNetwork: "devnet",
	}, Deps{
		Wallet:   wallet,
		Verifier: solana.Verifier{},
		Dialer: chain.DialerFunc(func(context.Context, string) (chain.Client, error) {
			return client, nil
		}),
		Notifier: notify.NewMulti(&notify.Recorder{}),
		Store:    history.NewMemoryStore(),
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	require.NoError(t, wallet.Connect(context.Background()))

	for _, recipient := range []string{"abc", "abc429"} {
		out, err := s.Run(context.Background(), FormTransfer, raw(TransferInput{Recipient: recipient, Amount: "0.5"}))
		require.NoError(t, err)
		require.Equal(t, operation.PhaseFailed, out.Phase, "recipient %q", recipient)
		require.Equal(t, operation.KindOperation, out.Kind, "recipient %q", recipient)
		require.Equal(t, "Failed to send transaction. Please try again.", out.Message)
		require.ErrorIs(t, out.Err, chain.ErrInvalidAddress)
	}
}

func TestSession_SignWithSolanaWallet(t *testing.T) {
	secret, err := solana.GenerateKey()
	require.NoError(t, err)
	wallet, err := solana.NewWallet(secret)
	require.NoError(t, err)

	ts := newTestSession(t, wallet, solana.Verifier{})
	ctx := context.Background()
	_, err = ts.Connect(ctx)
	require.NoError(t, err)

	out, err := ts.Run(ctx, FormSign, raw(SignInput{Message: "hello console"}))
	require.NoError(t, err)
	require.Equal(t, operation.PhaseSucceeded, out.Phase, "message: %s", out.Message)
	res := out.Result.(SignResult)
	require.Equal(t, wallet.Address(), res.Signer)
	require.NotEmpty(t, res.Signature)
	require.Equal(t, "Message signed successfully", ts.lastNote(t).Text)
}

func TestSession_SignFailures(t *testing.T) {
	tests := []struct {
		name      string
		signature []byte
		valid     bool
		wantKind  operation.Kind
		wantMsg   string
	}{
		{"no signature", nil, true, operation.KindSignatureUnavailable, "Failed to generate signature. Please try again."},
		{"verification fails", []byte{1, 2, 3}, false, operation.KindVerification, "Signature verification failed. Please try again."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestSession(t, &fakeWallet{signature: tt.signature}, fakeVerifier{valid: tt.valid})
			ctx := context.Background()
			_, err := ts.Connect(ctx)
			require.NoError(t, err)

			out, err := ts.Run(ctx, FormSign, raw(SignInput{Message: "hello"}))
			require.NoError(t, err)
			require.Equal(t, operation.PhaseFailed, out.Phase)
			require.Equal(t, tt.wantKind, out.Kind)
			require.Equal(t, tt.wantMsg, out.Message)
			require.Equal(t, tt.wantMsg, ts.lastNote(t).Text)
		})
	}
}

func TestSession_PendingFormLocksInputAndNetwork(t *testing.T) {
	ts := newTestSession(t, &fakeWallet{}, fakeVerifier{valid: true})
	ctx := context.Background()
	_, err := ts.Connect(ctx)
	require.NoError(t, err)

	devnet := ts.clients["devnet"]
	devnet.block = make(chan struct{})

	_, err = ts.SetInput(ctx, FormAirdrop, raw(AirdropInput{Amount: "1"}))
	require.NoError(t, err)
	view, err := ts.Submit(ctx, FormAirdrop)
	require.NoError(t, err)
	require.Equal(t, operation.PhasePending, view.Phase)
	require.True(t, view.Disabled)

	_, err = ts.Submit(ctx, FormAirdrop)
	requireCategory(t, err, apperrors.CategoryLocked, "form is busy")
	_, err = ts.SetInput(ctx, FormAirdrop, raw(AirdropInput{Amount: "2"}))
	requireCategory(t, err, apperrors.CategoryLocked, "form is busy")
	_, err = ts.SetNetwork(ctx, "testnet")
	requireCategory(t, err, apperrors.CategoryLocked, "")

	// Other forms stay independent.
	_, err = ts.SetInput(ctx, FormSign, raw(SignInput{Message: "still editable"}))
	require.NoError(t, err)

	devnet.mu.Lock()
	devnet.airdropErr = errors.New("node unavailable")
	devnet.mu.Unlock()
	close(devnet.block)

	require.Eventually(t, func() bool {
		v, err := ts.Form(ctx, FormAirdrop)
		return err == nil && v.Phase == operation.PhaseFailed
	}, 2*time.Second, 10*time.Millisecond)

	info, err := ts.SetNetwork(ctx, "testnet")
	require.NoError(t, err)
	require.Equal(t, "testnet", info.Network)
	require.Equal(t, "testnet", info.Balance.Network)
	require.True(t, devnet.isClosed())
}

func TestSession_SetNetworkErrors(t *testing.T) {
	ts := newTestSession(t, &fakeWallet{}, fakeVerifier{valid: true})
	ctx := context.Background()

	_, err := ts.SetNetwork(ctx, "mainnet")
	requireCategory(t, err, apperrors.CategoryDataError, `unknown network "mainnet"`)

	info, err := ts.SetNetwork(ctx, "devnet")
	require.NoError(t, err)
	require.Equal(t, "devnet", info.Network)
	require.Equal(t, []string{"devnet", "testnet"}, info.Networks)
	require.Equal(t, []string{"devnet"}, ts.dialed)
}

func TestSession_UnknownFormAndBadInput(t *testing.T) {
	ts := newTestSession(t, &fakeWallet{}, fakeVerifier{valid: true})
	ctx := context.Background()

	_, err := ts.Form(ctx, "stake")
	requireCategory(t, err, apperrors.CategoryResourceNotFound, `unknown form "stake"`)

	_, err = ts.SetInput(ctx, FormAirdrop, json.RawMessage(`{"amount": 1}`))
	requireCategory(t, err, apperrors.CategoryDataError, "invalid form input")

	_, err = ts.SetInput(ctx, FormAirdrop, json.RawMessage(`{"amount": "1", "extra": true}`))
	requireCategory(t, err, apperrors.CategoryDataError, "invalid form input")
}

func TestSession_RefreshBalanceAndDisconnect(t *testing.T) {
	ts := newTestSession(t, &fakeWallet{}, fakeVerifier{valid: true})
	ctx := context.Background()

	_, err := ts.RefreshBalance(ctx)
	requireCategory(t, err, apperrors.CategoryDataError, "Please connect your wallet")

	_, err = ts.Connect(ctx)
	require.NoError(t, err)
	ts.clients["devnet"].balance = big.NewInt(3_250_000_000)

	info, err := ts.RefreshBalance(ctx)
	require.NoError(t, err)
	require.Equal(t, "3.25", info.Balance.Value)
	version := info.Balance.Version

	ts.clients["devnet"].balanceErr = chain.ErrRateLimited
	_, err = ts.RefreshBalance(ctx)
	requireCategory(t, err, apperrors.CategoryTooManyRequests, "Rate limit exceeded. Please try again later.")

	info, err = ts.Disconnect(ctx)
	require.NoError(t, err)
	require.False(t, info.Connected)
	require.Empty(t, info.Address)
	require.False(t, info.Balance.Known())
	require.Greater(t, info.Balance.Version, version)
}

func TestSession_Stats(t *testing.T) {
	ts := newTestSession(t, &fakeWallet{}, fakeVerifier{valid: true})
	ctx := context.Background()
	_, err := ts.Connect(ctx)
	require.NoError(t, err)

	_, err = ts.Run(ctx, FormAirdrop, raw(AirdropInput{Amount: "1"}))
	require.NoError(t, err)
	ts.timers.fire()

	ts.clients["devnet"].airdropErr = errors.New("boom")
	_, err = ts.Run(ctx, FormAirdrop, raw(AirdropInput{Amount: "1"}))
	require.NoError(t, err)

	stats, err := ts.Stats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Total)
	require.Equal(t, 1, stats.Succeeded)
	require.Equal(t, 1, stats.Failed)
	require.InDelta(t, 50.0, stats.SuccessRate, 0.01)
	require.Len(t, stats.Daily, 7)
}

func TestShortAddress(t *testing.T) {
	require.Equal(t, "4Nd1mBQt...DB4T", shortAddress(testRecipient))
	require.Equal(t, "0xabc", shortAddress("0xabc"))
	require.Equal(t, "0x529084...9EE7", shortAddress("0x52908400098527886E0F7030069857D2E4169EE7"))
}
