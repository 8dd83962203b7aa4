// Package solana implements the chain contracts on Solana JSON-RPC.
package solana

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	sol "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/programs/system"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/gagliardetto/solana-go/rpc/jsonrpc"
	"go.uber.org/zap"

	"github.com/chainsafe/wallet-console/internal/metrics"
	"github.com/chainsafe/wallet-console/pkg/chain"
)

const (
	defaultPollInterval   = 500 * time.Millisecond
	defaultConfirmTimeout = 60 * time.Second
)

var (
	// ErrTransactionFailed is returned when a confirmed transaction carries an execution error.
	ErrTransactionFailed = errors.New("transaction failed")
	// ErrAmountOutOfRange is returned for amounts that do not fit a lamport count.
	ErrAmountOutOfRange = errors.New("amount out of lamport range")
	// ErrInvalidSignature is returned for a transaction ID that is not a base58 signature.
	ErrInvalidSignature = errors.New("invalid signature")
)

// rpcAPI is the subset of *rpc.Client the console uses.
type rpcAPI interface {
	RequestAirdrop(ctx context.Context, account sol.PublicKey, lamports uint64, commitment rpc.CommitmentType) (sol.Signature, error)
	GetBalance(ctx context.Context, account sol.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
	GetLatestBlockhash(ctx context.Context, commitment rpc.CommitmentType) (*rpc.GetLatestBlockhashResult, error)
	SendTransaction(ctx context.Context, tx *sol.Transaction) (sol.Signature, error)
	GetSignatureStatuses(ctx context.Context, searchTransactionHistory bool, sigs ...sol.Signature) (*rpc.GetSignatureStatusesResult, error)
	Close() error
}

// Config configures a Client.
type Config struct {
	Network        string
	RPCURL         string
	PollInterval   time.Duration
	ConfirmTimeout time.Duration
}

// Client is a chain.Client backed by a Solana RPC endpoint.
type Client struct {
	rpc            rpcAPI
	network        string
	pollInterval   time.Duration
	confirmTimeout time.Duration
	logger         *zap.Logger
}

var _ chain.Client = (*Client)(nil)

// NewClient connects to cfg.RPCURL.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.RPCURL == "" {
		return nil, fmt.Errorf("rpc url is required for network %q", cfg.Network)
	}
	c := newClient(rpc.New(cfg.RPCURL), cfg, logger)
	c.logger.Info("Connected to Solana",
		zap.String("network", cfg.Network),
		zap.String("rpc_url", cfg.RPCURL))
	return c, nil
}

func newClient(api rpcAPI, cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.ConfirmTimeout <= 0 {
		cfg.ConfirmTimeout = defaultConfirmTimeout
	}
	return &Client{
		rpc:            api,
		network:        cfg.Network,
		pollInterval:   cfg.PollInterval,
		confirmTimeout: cfg.ConfirmTimeout,
		logger:         logger,
	}
}

func (c *Client) Kind() chain.Kind { return chain.KindSolana }

func (c *Client) Network() string { return c.network }

// RequestAirdrop requests lamports from the network faucet.
func (c *Client) RequestAirdrop(ctx context.Context, account string, amount *big.Int) (string, error) {
	pk, err := parseAddress("account", account)
	if err != nil {
		return "", err
	}
	lamports, err := toLamports(amount)
	if err != nil {
		return "", err
	}
	sig, err := c.rpc.RequestAirdrop(ctx, pk, lamports, rpc.CommitmentConfirmed)
	if err != nil {
		return "", rpcError("requestAirdrop", err)
	}
	return sig.String(), nil
}

// ConfirmTransaction polls the signature status until it reaches confirmed or finalized.
func (c *Client) ConfirmTransaction(ctx context.Context, txID string) error {
	sig, err := sol.SignatureFromBase58(txID)
	if err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidSignature, txID, err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		done, err := c.checkStatus(ctx, sig)
		if err != nil || done {
			return err
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("confirm transaction %s: %w", txID, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (c *Client) checkStatus(ctx context.Context, sig sol.Signature) (bool, error) {
	out, err := c.rpc.GetSignatureStatuses(ctx, true, sig)
	if err != nil {
		err = rpcError("getSignatureStatuses", err)
		if errors.Is(err, chain.ErrRateLimited) {
			return false, err
		}
		c.logger.Warn("Failed to get signature status", zap.String("signature", sig.String()), zap.Error(err))
		return false, nil
	}
	if out == nil || len(out.Value) == 0 || out.Value[0] == nil {
		return false, nil
	}
	status := out.Value[0]
	if status.Err != nil {
		return false, fmt.Errorf("%w: %v", ErrTransactionFailed, status.Err)
	}
	switch status.ConfirmationStatus {
	case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
		return true, nil
	default:
		return false, nil
	}
}

// GetBalance returns the confirmed balance in lamports.
func (c *Client) GetBalance(ctx context.Context, account string) (*big.Int, error) {
	pk, err := parseAddress("account", account)
	if err != nil {
		return nil, err
	}
	out, err := c.rpc.GetBalance(ctx, pk, rpc.CommitmentConfirmed)
	if err != nil {
		return nil, rpcError("getBalance", err)
	}
	return new(big.Int).SetUint64(out.Value), nil
}

// NewTransfer builds a system transfer from from to to.
func (c *Client) NewTransfer(ctx context.Context, from, to string, amount *big.Int) (chain.Transaction, error) {
	payer, err := parseAddress("sender", from)
	if err != nil {
		return nil, err
	}
	recipient, err := parseAddress("recipient", to)
	if err != nil {
		return nil, err
	}
	lamports, err := toLamports(amount)
	if err != nil {
		return nil, err
	}

	latest, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
	if err != nil {
		return nil, rpcError("getLatestBlockhash", err)
	}

	tx, err := sol.NewTransaction(
		[]sol.Instruction{system.NewTransferInstruction(lamports, payer, recipient).Build()},
		latest.Value.Blockhash,
		sol.TransactionPayer(payer),
	)
	if err != nil {
		return nil, fmt.Errorf("build transfer: %w", err)
	}
	return &Transfer{tx: tx, payer: payer}, nil
}

// Broadcast submits a signed transfer.
func (c *Client) Broadcast(ctx context.Context, tx chain.Transaction) (string, error) {
	t, ok := tx.(*Transfer)
	if !ok {
		return "", chain.ErrWrongKind
	}
	if !t.signed {
		return "", fmt.Errorf("transaction is not signed")
	}
	sig, err := c.rpc.SendTransaction(ctx, t.tx)
	if err != nil {
		return "", rpcError("sendTransaction", err)
	}
	return sig.String(), nil
}

func (c *Client) Close() {
	if err := c.rpc.Close(); err != nil {
		c.logger.Debug("Failed to close rpc client", zap.Error(err))
	}
}

// Transfer is a native SOL transfer built by Client.NewTransfer.
type Transfer struct {
	tx     *sol.Transaction
	payer  sol.PublicKey
	signed bool
}

func (t *Transfer) Kind() chain.Kind { return chain.KindSolana }

func toLamports(amount *big.Int) (uint64, error) {
	if amount == nil || amount.Sign() <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}
	if !amount.IsUint64() {
		return 0, ErrAmountOutOfRange
	}
	return amount.Uint64(), nil
}

// parseAddress decodes a base58 public key. The input is kept out of the root cause.
func parseAddress(role, address string) (sol.PublicKey, error) {
	pk, err := sol.PublicKeyFromBase58(address)
	if err != nil {
		return sol.PublicKey{}, fmt.Errorf("%w: %s %q: %v", chain.ErrInvalidAddress, role, address, err)
	}
	return pk, nil
}

// rpcError counts a failed node call and wraps it as a chain.RPCError carrying
// the HTTP or JSON-RPC code.
func rpcError(method string, err error) error {
	metrics.RPCErrors.WithLabelValues(string(chain.KindSolana), method).Inc()
	out := &chain.RPCError{Method: method, Err: err}
	var httpErr *jsonrpc.HTTPError
	var rpcErr *jsonrpc.RPCError
	switch {
	case errors.As(err, &rpcErr):
		out.Code = rpcErr.Code
		out.Message = rpcErr.Message
	case errors.As(err, &httpErr):
		out.Code = httpErr.Code
	}
	return out
}
