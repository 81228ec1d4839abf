// Package wallet implements the on-disk agent wallet store: an encrypted
// vault of private keys, a plain JSON address book and config document, and
// an append-only transaction log, all living under one directory
// (~/.hoosat-wallets by default).
package wallet

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"haw/internal/config"
	"haw/internal/crypto"
	"haw/internal/hoosat"
	"haw/internal/model"

	"github.com/rs/zerolog"
)

// File names inside the wallet directory
const (
	vaultFileName       = "wallets.enc"
	configFileName      = "config.json"
	addressBookFileName = "address-book.json"
	txLogFileName       = "transactions.log"
)

// Store manages the wallet directory. All file access is serialized behind
// one mutex; the config document and address book are rewritten wholesale on
// every change.
type Store struct {
	dir     string
	session *config.Session
	log     zerolog.Logger

	mu    sync.Mutex
	cfg   *model.AgentConfig
	vault *model.VaultData
	book  map[string]model.AddressEntry
}

// NewStore opens (creating if needed) the wallet directory and loads the
// config document.
func NewStore(dir string, log zerolog.Logger) (*Store, error) {
	if dir == "" {
		dir = config.DefaultWalletDir()
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create wallet directory: %w", err)
	}

	s := &Store{
		dir: dir,
		log: log,
	}

	cfg, err := s.loadOrCreateConfig()
	if err != nil {
		return nil, err
	}
	s.cfg = cfg
	s.session = config.NewSession(time.Duration(cfg.Security.SessionTimeout) * time.Second)

	return s, nil
}

// Dir returns the wallet directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Session returns the password session.
func (s *Store) Session() *config.Session {
	return s.session
}

func (s *Store) vaultPath() string {
	return filepath.Join(s.dir, vaultFileName)
}

// Initialized reports whether the vault file exists.
func (s *Store) Initialized() bool {
	info, err := os.Stat(s.vaultPath())
	return err == nil && info.Size() > 0
}

// Initialize creates an empty vault protected by the master password.
// password must be []byte for security (caller should zero it after use)
func (s *Store) Initialize(password []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Initialized() {
		return ErrAlreadyInitialized
	}

	empty := &model.VaultData{
		Version: model.ConfigVersion,
		Wallets: map[string]*model.Wallet{},
	}

	fileData, err := crypto.EncryptVault(empty, password)
	if err != nil {
		return fmt.Errorf("failed to encrypt vault: %w", err)
	}
	if err := os.WriteFile(s.vaultPath(), fileData, 0600); err != nil {
		return fmt.Errorf("failed to write vault: %w", err)
	}

	// Empty address book alongside the vault
	if err := s.saveAddressBook(map[string]model.AddressEntry{}); err != nil {
		return err
	}

	s.session.SetPassword(password)
	s.vault = empty
	s.log.Info().Str("dir", s.dir).Msg("wallet system initialized")
	return nil
}

// Unlock verifies the master password and starts a session.
// password must be []byte for security (caller should zero it after use)
func (s *Store) Unlock(password []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fileData, err := os.ReadFile(s.vaultPath())
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read vault: %w", err)
	}

	vault, err := crypto.DecryptVault(fileData, password)
	if err != nil {
		return err
	}

	s.session.SetPassword(password)
	s.vault = vault
	return nil
}

// Lock clears the session and all decrypted caches.
func (s *Store) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session.Clear()
	s.vault = nil
	s.book = nil
}

// loadVault returns the decrypted vault, using the cache when present.
// Caller must hold s.mu.
func (s *Store) loadVault() (*model.VaultData, error) {
	if s.vault != nil {
		return s.vault, nil
	}

	password, err := s.session.Password()
	if err != nil {
		return nil, ErrLocked
	}
	defer clear(password)

	fileData, err := os.ReadFile(s.vaultPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotInitialized
		}
		return nil, fmt.Errorf("failed to read vault: %w", err)
	}

	vault, err := crypto.DecryptVault(fileData, password)
	if err != nil {
		return nil, err
	}

	s.vault = vault
	return vault, nil
}

// saveVault encrypts and writes the vault. Caller must hold s.mu.
func (s *Store) saveVault(vault *model.VaultData) error {
	password, err := s.session.Password()
	if err != nil {
		return ErrLocked
	}
	defer clear(password)

	fileData, err := crypto.EncryptVault(vault, password)
	if err != nil {
		return fmt.Errorf("failed to encrypt vault: %w", err)
	}
	if err := os.WriteFile(s.vaultPath(), fileData, 0600); err != nil {
		return fmt.Errorf("failed to write vault: %w", err)
	}

	s.vault = vault
	return nil
}

// CreateWallet generates a fresh key pair and stores it under a unique name.
func (s *Store) CreateWallet(name, network string) (*model.Wallet, error) {
	if name == "" {
		return nil, errors.New("wallet name cannot be empty")
	}
	if _, err := hoosat.NetworkPrefix(network); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	vault, err := s.loadVault()
	if err != nil {
		return nil, err
	}
	if _, exists := vault.Wallets[name]; exists {
		return nil, fmt.Errorf("wallet '%s': %w", name, ErrWalletExists)
	}

	privateKey, publicKey, err := hoosat.GenerateKeyPair()
	if err != nil {
		return nil, err
	}
	defer clear(privateKey)

	address, err := hoosat.AddressFromPublicKey(publicKey, network)
	if err != nil {
		return nil, err
	}

	w := &model.Wallet{
		Name:       name,
		Address:    address,
		PrivateKey: hex.EncodeToString(privateKey),
		Network:    network,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	vault.Wallets[name] = w
	if err := s.saveVault(vault); err != nil {
		return nil, err
	}

	s.log.Info().Str("wallet", name).Str("network", network).Msg("wallet created")
	return w, nil
}

// ImportWallet stores an existing private key (hex or WIF) under a new name.
func (s *Store) ImportWallet(name, key, network string) (*model.Wallet, error) {
	if name == "" {
		return nil, errors.New("wallet name cannot be empty")
	}

	// WIF carries its own network; hex does not
	privateKey, wifNetwork, _, err := hoosat.DecodeWIF(key)
	if err != nil {
		privateKey, err = hoosat.ParsePrivateKeyHex(key)
		if err != nil {
			return nil, fmt.Errorf("private key is neither valid WIF nor hex: %w", err)
		}
	} else if network == "" {
		network = wifNetwork
	}
	defer clear(privateKey)

	if network == "" {
		network = hoosat.NetworkTestnet
	}
	if _, err := hoosat.NetworkPrefix(network); err != nil {
		return nil, err
	}

	publicKey, err := hoosat.PublicKeyFromPrivate(privateKey)
	if err != nil {
		return nil, err
	}
	address, err := hoosat.AddressFromPublicKey(publicKey, network)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	vault, err := s.loadVault()
	if err != nil {
		return nil, err
	}
	if _, exists := vault.Wallets[name]; exists {
		return nil, fmt.Errorf("wallet '%s': %w", name, ErrWalletExists)
	}

	w := &model.Wallet{
		Name:       name,
		Address:    address,
		PrivateKey: hex.EncodeToString(privateKey),
		Network:    network,
		CreatedAt:  time.Now().Format(time.RFC3339),
	}

	vault.Wallets[name] = w
	if err := s.saveVault(vault); err != nil {
		return nil, err
	}

	s.log.Info().Str("wallet", name).Str("network", network).Msg("wallet imported")
	return w, nil
}

// GetWallet returns a wallet by name, including its private key.
func (s *Store) GetWallet(name string) (*model.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vault, err := s.loadVault()
	if err != nil {
		return nil, err
	}
	w, ok := vault.Wallets[name]
	if !ok {
		return nil, fmt.Errorf("wallet '%s': %w", name, ErrWalletNotFound)
	}
	return w, nil
}

// WalletInfo returns a wallet view without the private key.
func (s *Store) WalletInfo(name string) (*model.WalletInfo, error) {
	w, err := s.GetWallet(name)
	if err != nil {
		return nil, err
	}
	info := w.Info()
	return &info, nil
}

// ListWallets returns all wallets without private keys, sorted by name.
func (s *Store) ListWallets() ([]model.WalletInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vault, err := s.loadVault()
	if err != nil {
		return nil, err
	}

	infos := make([]model.WalletInfo, 0, len(vault.Wallets))
	for _, w := range vault.Wallets {
		infos = append(infos, w.Info())
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// ExportWallet returns the full wallet record, private key included, plus
// the WIF encoding of the key.
func (s *Store) ExportWallet(name string) (*model.Wallet, string, error) {
	w, err := s.GetWallet(name)
	if err != nil {
		return nil, "", err
	}

	privateKey, err := hex.DecodeString(w.PrivateKey)
	if err != nil {
		return nil, "", fmt.Errorf("corrupt private key for wallet '%s': %w", name, err)
	}
	defer clear(privateKey)

	wif, err := hoosat.EncodeWIF(privateKey, w.Network, true)
	if err != nil {
		return nil, "", err
	}
	return w, wif, nil
}

// DeleteWallet removes a wallet from the vault.
func (s *Store) DeleteWallet(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	vault, err := s.loadVault()
	if err != nil {
		return err
	}
	if _, ok := vault.Wallets[name]; !ok {
		return fmt.Errorf("wallet '%s': %w", name, ErrWalletNotFound)
	}

	delete(vault.Wallets, name)
	if err := s.saveVault(vault); err != nil {
		return err
	}

	s.log.Info().Str("wallet", name).Msg("wallet deleted")
	return nil
}

// ChangePassword re-encrypts the vault under a new master password.
// Both passwords must be []byte (caller should zero them after use).
func (s *Store) ChangePassword(oldPassword, newPassword []byte) error {
	if len(newPassword) == 0 {
		return errors.New("new password cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	fileData, err := os.ReadFile(s.vaultPath())
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read vault: %w", err)
	}

	vault, err := crypto.DecryptVault(fileData, oldPassword)
	if err != nil {
		return err
	}

	newFileData, err := crypto.EncryptVault(vault, newPassword)
	if err != nil {
		return fmt.Errorf("failed to encrypt vault: %w", err)
	}
	if err := os.WriteFile(s.vaultPath(), newFileData, 0600); err != nil {
		return fmt.Errorf("failed to write vault: %w", err)
	}

	s.session.SetPassword(newPassword)
	s.vault = vault
	s.log.Info().Msg("master password changed")
	return nil
}
