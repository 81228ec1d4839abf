package wallet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"haw/internal/hoosat"
	"haw/internal/model"
)

func (s *Store) addressBookPath() string {
	return filepath.Join(s.dir, addressBookFileName)
}

// loadAddressBook returns the address book, using the cache when present.
// Caller must hold s.mu.
func (s *Store) loadAddressBook() (map[string]model.AddressEntry, error) {
	if s.book != nil {
		return s.book, nil
	}

	fileData, err := os.ReadFile(s.addressBookPath())
	if err != nil {
		if os.IsNotExist(err) {
			s.book = map[string]model.AddressEntry{}
			return s.book, nil
		}
		return nil, fmt.Errorf("failed to read address book: %w", err)
	}

	book := map[string]model.AddressEntry{}
	if err := json.Unmarshal(fileData, &book); err != nil {
		return nil, fmt.Errorf("failed to unmarshal address book: %w", err)
	}

	s.book = book
	return book, nil
}

// saveAddressBook writes the address book wholesale. Caller must hold s.mu.
func (s *Store) saveAddressBook(book map[string]model.AddressEntry) error {
	fileData, err := json.MarshalIndent(book, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal address book: %w", err)
	}
	if err := os.WriteFile(s.addressBookPath(), fileData, 0600); err != nil {
		return fmt.Errorf("failed to write address book: %w", err)
	}

	s.book = book
	return nil
}

// AddAddress adds or replaces an address book entry.
func (s *Store) AddAddress(label, address, network string) (*model.AddressEntry, error) {
	if label == "" {
		return nil, fmt.Errorf("label cannot be empty")
	}
	if !hoosat.HasKnownPrefix(address) {
		return nil, fmt.Errorf("invalid address %q: expected %s: or %s: prefix",
			address, hoosat.PrefixMainnet, hoosat.PrefixTestnet)
	}
	if network == "" {
		network = hoosat.NetworkMainnet
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := s.loadAddressBook()
	if err != nil {
		return nil, err
	}

	entry := model.AddressEntry{
		Label:   label,
		Address: address,
		Network: network,
		AddedAt: time.Now().Format(time.RFC3339),
	}
	book[label] = entry

	if err := s.saveAddressBook(book); err != nil {
		return nil, err
	}
	return &entry, nil
}

// GetAddress returns the address stored under a label.
func (s *Store) GetAddress(label string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := s.loadAddressBook()
	if err != nil {
		return "", err
	}
	entry, ok := book[label]
	if !ok {
		return "", fmt.Errorf("label '%s': %w", label, ErrLabelNotFound)
	}
	return entry.Address, nil
}

// ListAddresses returns all address book entries sorted by label.
func (s *Store) ListAddresses() ([]model.AddressEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := s.loadAddressBook()
	if err != nil {
		return nil, err
	}

	entries := make([]model.AddressEntry, 0, len(book))
	for _, entry := range book {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Label < entries[j].Label })
	return entries, nil
}

// RemoveAddress deletes an address book entry.
func (s *Store) RemoveAddress(label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	book, err := s.loadAddressBook()
	if err != nil {
		return err
	}
	if _, ok := book[label]; !ok {
		return fmt.Errorf("label '%s': %w", label, ErrLabelNotFound)
	}

	delete(book, label)
	return s.saveAddressBook(book)
}

// ResolveAddress resolves an identifier to an address: address book label
// first, then wallet name, then a literal address with a known prefix.
func (s *Store) ResolveAddress(identifier string) (string, error) {
	if address, err := s.GetAddress(identifier); err == nil {
		return address, nil
	}

	if w, err := s.GetWallet(identifier); err == nil {
		return w.Address, nil
	}

	if hoosat.HasKnownPrefix(identifier) {
		return identifier, nil
	}

	return "", fmt.Errorf("%q: %w", identifier, ErrUnresolvable)
}
