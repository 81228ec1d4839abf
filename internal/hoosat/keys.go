// Package hoosat implements the chain primitives this wallet needs locally:
// secp256k1 key generation, the BLAKE3+bech32 address codec, and WIF
// encoding. Transaction signing is deliberately absent - it is delegated to
// the Hoosat SDKs, which this wallet only hands unsigned transactions to.
package hoosat

import (
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// PrivateKeyLen is the raw secp256k1 private key length in bytes
const PrivateKeyLen = 32

// GenerateKeyPair generates a random secp256k1 key pair.
// Returns the 32-byte private key and the compressed public key.
// Caller should zero the private key after use.
func GenerateKeyPair() (privateKey, publicKey []byte, err error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to generate private key: %w", err)
	}

	privateKey = priv.Serialize()
	publicKey = priv.PubKey().SerializeCompressed()
	priv.Zero()

	return privateKey, publicKey, nil
}

// PublicKeyFromPrivate derives the compressed public key from a raw
// 32-byte private key.
func PublicKeyFromPrivate(privateKey []byte) ([]byte, error) {
	if len(privateKey) != PrivateKeyLen {
		return nil, fmt.Errorf("invalid private key length: expected %d bytes, got %d", PrivateKeyLen, len(privateKey))
	}

	priv := secp256k1.PrivKeyFromBytes(privateKey)
	pub := priv.PubKey().SerializeCompressed()
	priv.Zero()

	return pub, nil
}

// ParsePrivateKeyHex decodes a hex private key and checks its length.
func ParsePrivateKeyHex(s string) ([]byte, error) {
	key, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid private key hex: %w", err)
	}
	if len(key) != PrivateKeyLen {
		return nil, fmt.Errorf("invalid private key length: expected %d bytes, got %d", PrivateKeyLen, len(key))
	}
	return key, nil
}
