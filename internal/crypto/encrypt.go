package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"haw/internal/model"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// PBKDF2 parameters for the wallet vault.
	//
	// 100,000 iterations of SHA-256 keeps unlock under ~100ms on commodity
	// hardware while making offline brute force of a decent master password
	// impractical. The salt is random per vault, so identical passwords
	// produce unrelated keys.
	kdfIterations = 100_000
	kdfKeyLen     = 32
	saltLen       = 16
	nonceLen      = 12
)

// EncryptVault encrypts vault data into the wallets.enc file format.
// password must be []byte for security (caller should zero it after use)
func EncryptVault(data *model.VaultData, password []byte) ([]byte, error) {
	// Generate salt and nonce
	salt := make([]byte, saltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Derive key from password
	key := pbkdf2.Key(password, salt, kdfIterations, kdfKeyLen, sha256.New)
	defer clear(key)

	// Create AES cipher
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	// Create GCM
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}

	// Serialize vault data
	plaintext, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vault data: %w", err)
	}
	defer clear(plaintext) // wipe plaintext bytes from memory

	// Encrypt
	ciphertext := aesGCM.Seal(nil, nonce, plaintext, nil)

	// Build file structure
	vaultFile := model.VaultFile{
		Version:    model.ConfigVersion,
		Salt:       base64.StdEncoding.EncodeToString(salt),
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		CipherText: base64.StdEncoding.EncodeToString(ciphertext),
	}

	fileData, err := json.MarshalIndent(vaultFile, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vault file: %w", err)
	}

	return fileData, nil
}
