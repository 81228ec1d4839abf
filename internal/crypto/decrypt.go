package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"haw/internal/model"

	"golang.org/x/crypto/pbkdf2"
)

// ErrInvalidPassword is returned when the password fails to authenticate
// the vault ciphertext.
var ErrInvalidPassword = errors.New("invalid password")

// DecryptVault decrypts wallets.enc file contents.
// password must be []byte for security (caller should zero it after use)
func DecryptVault(fileData, password []byte) (*model.VaultData, error) {
	var vaultFile model.VaultFile
	if err := json.Unmarshal(fileData, &vaultFile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vault file: %w", err)
	}

	// Decode salt, nonce and ciphertext
	salt, err := base64.StdEncoding.DecodeString(vaultFile.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}

	nonce, err := base64.StdEncoding.DecodeString(vaultFile.Nonce)
	if err != nil {
		return nil, fmt.Errorf("failed to decode nonce: %w", err)
	}

	ciphertext, err := base64.StdEncoding.DecodeString(vaultFile.CipherText)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext: %w", err)
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

	// Decrypt. GCM authenticates, so a wrong password surfaces here.
	plaintext, err := aesGCM.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, ErrInvalidPassword
	}
	defer clear(plaintext) // wipe decrypted bytes from memory

	var data model.VaultData
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vault data: %w", err)
	}

	if data.Wallets == nil {
		data.Wallets = map[string]*model.Wallet{}
	}

	return &data, nil
}

// VerifyPassword reports whether the password can decrypt the vault.
func VerifyPassword(fileData, password []byte) bool {
	_, err := DecryptVault(fileData, password)
	return err == nil
}
