package keys

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chainsafe/wallet-console/pkg/chain"
	"github.com/chainsafe/wallet-console/pkg/chain/evm"
	"github.com/chainsafe/wallet-console/pkg/chain/solana"
)

const (
	keystoreVersion = 1
	hkdfInfo        = "wallet-console-keystore-v1"
	saltSize        = 16
)

// ErrMasterKeyMissing is returned when the master key environment variable is unset.
var ErrMasterKeyMissing = errors.New("master key not set")

// Key is a decrypted wallet secret.
type Key struct {
	Kind    chain.Kind
	Address string
	Secret  []byte
}

// file is the on-disk keystore layout.
type file struct {
	Version    int        `json:"version"`
	Kind       chain.Kind `json:"kind"`
	Address    string     `json:"address"`
	Salt       string     `json:"salt"`
	Ciphertext string     `json:"ciphertext"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Generate creates a new random key for kind.
func Generate(kind chain.Kind) (*Key, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	var (
		secret []byte
		err    error
	)
	switch kind {
	case chain.KindEVM:
		secret, err = evm.GenerateKey()
	default:
		secret, err = solana.GenerateKey()
	}
	if err != nil {
		return nil, err
	}
	return newKey(kind, secret)
}

func newKey(kind chain.Kind, secret []byte) (*Key, error) {
	var address string
	switch kind {
	case chain.KindEVM:
		addr, err := evm.AddressOf(secret)
		if err != nil {
			return nil, fmt.Errorf("invalid evm key: %w", err)
		}
		address = addr
	case chain.KindSolana:
		if len(secret) != 64 {
			return nil, fmt.Errorf("invalid solana key length %d", len(secret))
		}
		address = solana.AddressOf(secret)
	default:
		return nil, fmt.Errorf("unknown chain kind %q", string(kind))
	}
	return &Key{Kind: kind, Address: address, Secret: secret}, nil
}

// Wallet builds the chain wallet for the key.
func (k *Key) Wallet() (chain.Wallet, error) {
	switch k.Kind {
	case chain.KindEVM:
		return evm.NewWallet(k.Secret)
	case chain.KindSolana:
		return solana.NewWallet(k.Secret)
	default:
		return nil, fmt.Errorf("unknown chain kind %q", string(k.Kind))
	}
}

// Save encrypts k under masterKey and writes it to path with 0600 permissions.
func Save(path string, k *Key, masterKey []byte) error {
	salt := make([]byte, saltSize)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}
	encKey, err := deriveKey(masterKey, salt, hkdfInfo)
	if err != nil {
		return err
	}
	sealed, err := seal(k.Secret, encKey, additionalData(k.Kind, k.Address))
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(file{
		Version:    keystoreVersion,
		Kind:       k.Kind,
		Address:    k.Address,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Ciphertext: base64.StdEncoding.EncodeToString(sealed),
		CreatedAt:  time.Now().UTC(),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode keystore: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("create keystore dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write keystore: %w", err)
	}
	return nil
}

// Load reads and decrypts the keystore at path.
func Load(path string, masterKey []byte) (*Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keystore: %w", err)
	}
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode keystore: %w", err)
	}
	if f.Version != keystoreVersion {
		return nil, fmt.Errorf("unsupported keystore version %d", f.Version)
	}
	salt, err := base64.StdEncoding.DecodeString(f.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	sealed, err := base64.StdEncoding.DecodeString(f.Ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
	}
	encKey, err := deriveKey(masterKey, salt, hkdfInfo)
	if err != nil {
		return nil, err
	}
	secret, err := open(sealed, encKey, additionalData(f.Kind, f.Address))
	if err != nil {
		return nil, err
	}

	k, err := newKey(f.Kind, secret)
	if err != nil {
		return nil, err
	}
	if k.Address != f.Address {
		return nil, fmt.Errorf("keystore address mismatch: file has %s, key derives %s", f.Address, k.Address)
	}
	return k, nil
}

// MasterKeyFromEnv reads a base64 master key from the named environment variable.
func MasterKeyFromEnv(name string) ([]byte, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return nil, fmt.Errorf("%w: %s", ErrMasterKeyMissing, name)
	}
	return MasterKeyFromBase64(v)
}

func additionalData(kind chain.Kind, address string) []byte {
	return []byte(string(kind) + ":" + address)
}
