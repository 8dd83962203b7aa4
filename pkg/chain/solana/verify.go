package solana

import (
	sol "github.com/gagliardetto/solana-go"

	"github.com/chainsafe/wallet-console/pkg/chain"
)

// Verifier checks ed25519 signatures.
type Verifier struct{}

var _ chain.Verifier = Verifier{}

func (Verifier) Verify(signature, message, publicKey []byte) bool {
	if len(signature) != sol.SignatureLength || len(publicKey) != sol.PublicKeyLength {
		return false
	}
	return sol.SignatureFromBytes(signature).Verify(sol.PublicKeyFromBytes(publicKey), message)
}

// EncodeSignature returns the base58 form used by explorers and wallets.
func (Verifier) EncodeSignature(signature []byte) string {
	if len(signature) != sol.SignatureLength {
		return ""
	}
	return sol.SignatureFromBytes(signature).String()
}
