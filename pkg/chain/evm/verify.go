package evm

import (
	"bytes"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/chainsafe/wallet-console/pkg/chain"
)

// Verifier checks EIP-191 personal_sign signatures.
type Verifier struct{}

var _ chain.Verifier = Verifier{}

// Verify recovers the signer of message and compares it with the address of publicKey.
func (Verifier) Verify(signature, message, publicKey []byte) bool {
	if len(signature) != crypto.SignatureLength {
		return false
	}
	pub, err := crypto.UnmarshalPubkey(publicKey)
	if err != nil {
		return false
	}

	sig := bytes.Clone(signature)
	// v can be 0, 1, 27, or 28
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	recovered, err := crypto.SigToPub(accounts.TextHash(message), sig)
	if err != nil {
		return false
	}
	return crypto.PubkeyToAddress(*recovered) == crypto.PubkeyToAddress(*pub)
}

// EncodeSignature returns the 0x-prefixed hex form.
func (Verifier) EncodeSignature(signature []byte) string {
	return hexutil.Encode(signature)
}
