package console

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"go.uber.org/zap"

	"github.com/chainsafe/wallet-console/pkg/amount"
	"github.com/chainsafe/wallet-console/pkg/chain"
	"github.com/chainsafe/wallet-console/pkg/operation"
)

// Form names.
const (
	FormAirdrop  = "airdrop"
	FormTransfer = "transfer"
	FormSign     = "sign"
)

// User-facing texts.
const (
	msgConnectWallet  = "Please connect your wallet"
	msgInvalidAmount  = "Please enter a valid amount"
	msgEnterRecipient = "Please enter a recipient address"
	msgEnterMessage   = "Please enter a message to sign"

	msgAirdropFailed        = "Failed to request airdrop. Please try again."
	msgTransferFailed       = "Failed to send transaction. Please try again."
	msgSignFailed           = "Failed to sign message. Please try again."
	msgSignatureUnavailable = "Failed to generate signature. Please try again."
	msgVerificationFailed   = "Signature verification failed. Please try again."
	msgRateLimited          = "Rate limit exceeded. Please try again later."
	msgSigned               = "Message signed successfully"
)

// AirdropInput is the airdrop form input.
type AirdropInput struct {
	Amount string `json:"amount"`
}

// AirdropResult is returned by a confirmed airdrop.
type AirdropResult struct {
	TxID    string `json:"tx_id"`
	Amount  string `json:"amount"`
	Balance string `json:"balance"`
}

// TransferInput is the transfer form input.
type TransferInput struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

// TransferResult is returned by a confirmed transfer.
type TransferResult struct {
	TxID      string `json:"tx_id"`
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
	Balance   string `json:"balance"`
}

// SignInput is the sign form input.
type SignInput struct {
	Message string `json:"message"`
}

// SignResult carries a verified signature.
type SignResult struct {
	Signature string `json:"signature"`
	Signer    string `json:"signer"`
}

func (s *Session) airdropDefinition() operation.Definition[AirdropInput, AirdropResult] {
	return operation.Definition[AirdropInput, AirdropResult]{
		Name: FormAirdrop,
		Validate: func(in AirdropInput) error {
			if !s.wallet.Connected() {
				return operation.Invalid(msgConnectWallet)
			}
			if _, err := amount.Parse(in.Amount); err != nil {
				return operation.Invalid(msgInvalidAmount)
			}
			return nil
		},
		Execute: s.executeAirdrop,
		SuccessMessage: func(in AirdropInput, _ AirdropResult) string {
			return fmt.Sprintf("%s %s airdropped successfully", strings.TrimSpace(in.Amount), s.kind.Symbol())
		},
		Messages: operation.Messages{
			Failure:     msgAirdropFailed,
			RateLimited: msgRateLimited,
		},
	}
}

func (s *Session) executeAirdrop(ctx context.Context, in AirdropInput) (AirdropResult, error) {
	client, _ := s.current()
	units, err := s.baseUnits(in.Amount)
	if err != nil {
		return AirdropResult{}, err
	}
	address := s.wallet.Address()

	txID, err := client.RequestAirdrop(ctx, address, units)
	if err != nil {
		return AirdropResult{}, fmt.Errorf("request airdrop: %w", err)
	}
	if err := client.ConfirmTransaction(ctx, txID); err != nil {
		return AirdropResult{}, fmt.Errorf("confirm airdrop %s: %w", txID, err)
	}
	bal, err := s.fetchBalance(ctx, client, address)
	if err != nil {
		return AirdropResult{}, err
	}
	return AirdropResult{TxID: txID, Amount: strings.TrimSpace(in.Amount), Balance: bal}, nil
}

func (s *Session) transferDefinition() operation.Definition[TransferInput, TransferResult] {
	return operation.Definition[TransferInput, TransferResult]{
		Name: FormTransfer,
		Validate: func(in TransferInput) error {
			if !s.wallet.Connected() {
				return operation.Invalid(msgConnectWallet)
			}
			if strings.TrimSpace(in.Recipient) == "" {
				return operation.Invalid(msgEnterRecipient)
			}
			if _, err := amount.Parse(in.Amount); err != nil {
				return operation.Invalid(msgInvalidAmount)
			}
			return nil
		},
		Execute: s.executeTransfer,
		SuccessMessage: func(in TransferInput, _ TransferResult) string {
			return fmt.Sprintf("%s %s sent to %s", strings.TrimSpace(in.Amount), s.kind.Symbol(),
				shortAddress(strings.TrimSpace(in.Recipient)))
		},
		Messages: operation.Messages{
			Failure:     msgTransferFailed,
			RateLimited: msgRateLimited,
		},
	}
}

func (s *Session) executeTransfer(ctx context.Context, in TransferInput) (TransferResult, error) {
	client, _ := s.current()
	units, err := s.baseUnits(in.Amount)
	if err != nil {
		return TransferResult{}, err
	}
	from := s.wallet.Address()
	to := strings.TrimSpace(in.Recipient)

	tx, err := client.NewTransfer(ctx, from, to, units)
	if err != nil {
		return TransferResult{}, fmt.Errorf("build transfer: %w", err)
	}
	txID, err := s.wallet.SendTransaction(ctx, client, tx)
	if err != nil {
		return TransferResult{}, fmt.Errorf("send transfer: %w", err)
	}
	if err := client.ConfirmTransaction(ctx, txID); err != nil {
		return TransferResult{}, fmt.Errorf("confirm transfer %s: %w", txID, err)
	}
	bal, err := s.fetchBalance(ctx, client, from)
	if err != nil {
		return TransferResult{}, err
	}
	return TransferResult{TxID: txID, Recipient: to, Amount: strings.TrimSpace(in.Amount), Balance: bal}, nil
}

func (s *Session) signDefinition() operation.Definition[SignInput, SignResult] {
	return operation.Definition[SignInput, SignResult]{
		Name: FormSign,
		Validate: func(in SignInput) error {
			if !s.wallet.Connected() {
				return operation.Invalid(msgConnectWallet)
			}
			if strings.TrimSpace(in.Message) == "" {
				return operation.Invalid(msgEnterMessage)
			}
			return nil
		},
		Execute: s.executeSign,
		SuccessMessage: func(SignInput, SignResult) string {
			return msgSigned
		},
		Messages: operation.Messages{
			Failure:              msgSignFailed,
			RateLimited:          msgRateLimited,
			SignatureUnavailable: msgSignatureUnavailable,
			VerificationFailed:   msgVerificationFailed,
		},
	}
}

func (s *Session) executeSign(ctx context.Context, in SignInput) (SignResult, error) {
	message := []byte(in.Message)
	signer := s.wallet.Address()

	sig, err := s.wallet.SignMessage(ctx, message)
	if err != nil {
		return SignResult{}, fmt.Errorf("sign message: %w", err)
	}
	if len(sig) == 0 {
		return SignResult{}, operation.ErrSignatureUnavailable
	}
	if !s.verifier.Verify(sig, message, s.wallet.PublicKey()) {
		return SignResult{}, &operation.VerificationError{Signer: signer}
	}
	return SignResult{Signature: s.verifier.EncodeSignature(sig), Signer: signer}, nil
}

// baseUnits converts a validated decimal amount to chain base units.
func (s *Session) baseUnits(value string) (*big.Int, error) {
	d, err := amount.Parse(value)
	if err != nil {
		return nil, operation.Invalid(msgInvalidAmount)
	}
	return amount.ToBaseUnits(d, s.kind.Decimals())
}

// fetchBalance reads the balance of address and overwrites the shared value.
func (s *Session) fetchBalance(ctx context.Context, client chain.Client, address string) (string, error) {
	units, err := client.GetBalance(ctx, address)
	if err != nil {
		return "", fmt.Errorf("fetch balance: %w", err)
	}
	version := s.balance.Set(client.Network(), units)
	value := amount.Format(amount.FromBaseUnits(units, s.kind.Decimals()))
	s.logger.Debug("balance updated",
		zap.String("network", client.Network()),
		zap.String("value", value),
		zap.Uint64("version", version))
	return value, nil
}

// shortAddress renders the first 8 and last 4 characters of an address.
func shortAddress(addr string) string {
	if len(addr) <= 12 {
		return addr
	}
	return addr[:8] + "..." + addr[len(addr)-4:]
}
