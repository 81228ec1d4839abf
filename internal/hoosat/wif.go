package hoosat

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// WIF version bytes
const (
	wifVersionMainnet = 0x80
	wifVersionTestnet = 0xEF
)

// compressedFlag is appended to the key when the corresponding public key
// is compressed
const compressedFlag = 0x01

// EncodeWIF converts a raw private key to Wallet Import Format.
func EncodeWIF(privateKey []byte, network string, compressed bool) (string, error) {
	if len(privateKey) != PrivateKeyLen {
		return "", fmt.Errorf("invalid private key length: expected %d bytes, got %d", PrivateKeyLen, len(privateKey))
	}

	version := byte(wifVersionMainnet)
	if network == NetworkTestnet {
		version = wifVersionTestnet
	} else if network != NetworkMainnet {
		return "", fmt.Errorf("invalid network: %s", network)
	}

	payload := make([]byte, 0, PrivateKeyLen+1)
	payload = append(payload, privateKey...)
	if compressed {
		payload = append(payload, compressedFlag)
	}
	defer clear(payload)

	return base58.CheckEncode(payload, version), nil
}

// DecodeWIF converts a WIF string back to a raw private key.
// Returns the key, the network the WIF was encoded for, and whether the
// compressed flag was set.
func DecodeWIF(wif string) (privateKey []byte, network string, compressed bool, err error) {
	payload, version, err := base58.CheckDecode(wif)
	if err != nil {
		return nil, "", false, fmt.Errorf("invalid WIF: %w", err)
	}

	switch version {
	case wifVersionMainnet:
		network = NetworkMainnet
	case wifVersionTestnet:
		network = NetworkTestnet
	default:
		return nil, "", false, fmt.Errorf("invalid WIF version byte: 0x%02x", version)
	}

	switch len(payload) {
	case PrivateKeyLen:
		compressed = false
	case PrivateKeyLen + 1:
		if payload[PrivateKeyLen] != compressedFlag {
			return nil, "", false, fmt.Errorf("invalid WIF compression flag: 0x%02x", payload[PrivateKeyLen])
		}
		compressed = true
	default:
		return nil, "", false, fmt.Errorf("invalid WIF payload length: %d", len(payload))
	}

	privateKey = make([]byte, PrivateKeyLen)
	copy(privateKey, payload[:PrivateKeyLen])
	clear(payload)

	return privateKey, network, compressed, nil
}
