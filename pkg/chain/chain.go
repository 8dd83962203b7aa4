// Package chain defines the contracts between the console and a blockchain:
// an RPC client, a wallet that signs for one account, and a signature verifier.
package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"strings"
)

var (
	// ErrNotConnected is returned by wallet operations before Connect.
	ErrNotConnected = errors.New("wallet not connected")
	// ErrRateLimited is returned when the airdrop source throttled the request.
	ErrRateLimited error = throttled("429 Too Many Requests: airdrop rate limit reached")
	// ErrAirdropUnavailable is returned by networks without an airdrop source.
	ErrAirdropUnavailable = errors.New("airdrop not available on this network")
	// ErrWrongKind is returned when a transaction built for one chain reaches another.
	ErrWrongKind = errors.New("transaction belongs to a different chain")
	// ErrInvalidAddress is returned for an account or recipient the chain cannot parse.
	ErrInvalidAddress = errors.New("invalid address")
	// ErrWrongSender is returned when a wallet is asked to sign another account's transaction.
	ErrWrongSender = errors.New("transaction sender is not the wallet")
)

type throttled string

func (e throttled) Error() string { return string(e) }

func (throttled) RateLimited() bool { return true }

// RPCError is a failed call to a chain node. Backends return it for every
// node failure so callers can tell throttling apart from other errors without
// reading the wrapped text.
type RPCError struct {
	Method string
	// Code is the HTTP status or JSON-RPC error code. Zero for transport failures.
	Code int
	// Message is the error message sent by the node, if any.
	Message string
	Err     error
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc %s: %v", e.Method, e.Err)
}

func (e *RPCError) Unwrap() error {
	return e.Err
}

// RateLimited reports whether the node throttled the call.
func (e *RPCError) RateLimited() bool {
	return e.Code == http.StatusTooManyRequests ||
		strings.Contains(e.Message, strconv.Itoa(http.StatusTooManyRequests))
}

// Is matches ErrRateLimited for throttled calls.
func (e *RPCError) Is(target error) bool {
	return target == ErrRateLimited && e.RateLimited()
}

// Kind selects a chain family.
type Kind string

const (
	KindSolana Kind = "solana"
	KindEVM    Kind = "evm"
)

// Decimals is the number of base units per token as a power of ten.
func (k Kind) Decimals() int32 {
	switch k {
	case KindEVM:
		return 18
	default:
		return 9
	}
}

// Symbol is the native token ticker.
func (k Kind) Symbol() string {
	switch k {
	case KindEVM:
		return "ETH"
	default:
		return "SOL"
	}
}

// Validate rejects unknown kinds.
func (k Kind) Validate() error {
	switch k {
	case KindSolana, KindEVM:
		return nil
	default:
		return fmt.Errorf("unknown chain kind %q", string(k))
	}
}

// Transaction is an unsigned or signed transaction built by a Client.
type Transaction interface {
	Kind() Kind
}

// Client talks to one network of one chain.
type Client interface {
	Kind() Kind
	// Network is the configured network name, e.g. "devnet".
	Network() string
	// RequestAirdrop asks the network to credit account with amount base units.
	RequestAirdrop(ctx context.Context, account string, amount *big.Int) (string, error)
	// ConfirmTransaction blocks until txID is confirmed or failed.
	ConfirmTransaction(ctx context.Context, txID string) error
	// GetBalance returns the balance of account in base units.
	GetBalance(ctx context.Context, account string) (*big.Int, error)
	// NewTransfer builds an unsigned native transfer. An unparsable recipient is an error here.
	NewTransfer(ctx context.Context, from, to string, amount *big.Int) (Transaction, error)
	// Broadcast submits a signed transaction and returns its ID.
	Broadcast(ctx context.Context, tx Transaction) (string, error)
	Close()
}

// Wallet signs for a single account.
type Wallet interface {
	Kind() Kind
	Connected() bool
	Connect(ctx context.Context) error
	Disconnect()
	// Address is the encoded account address. Empty when disconnected.
	Address() string
	PublicKey() []byte
	SignMessage(ctx context.Context, message []byte) ([]byte, error)
	// SendTransaction signs tx and broadcasts it through client.
	SendTransaction(ctx context.Context, client Client, tx Transaction) (string, error)
}

// Verifier checks a detached message signature against a public key.
type Verifier interface {
	Verify(signature, message, publicKey []byte) bool
	// EncodeSignature renders a signature the way the chain's tooling displays it.
	EncodeSignature(signature []byte) string
}

// Dialer opens a Client for a named network.
type Dialer interface {
	Dial(ctx context.Context, network string) (Client, error)
}

// DialerFunc adapts a function to Dialer.
type DialerFunc func(ctx context.Context, network string) (Client, error)

func (f DialerFunc) Dial(ctx context.Context, network string) (Client, error) {
	return f(ctx, network)
}
