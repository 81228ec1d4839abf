package model

// Wallet represents a single named wallet held in the encrypted vault
type Wallet struct {
	Name       string `json:"name"`
	Address    string `json:"address"`
	PrivateKey string `json:"privateKey"` // 32-byte secp256k1 key, hex encoded
	Network    string `json:"network"`
	CreatedAt  string `json:"createdAt"`
}

// WalletInfo is a wallet view without the private key
type WalletInfo struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Network   string `json:"network"`
	CreatedAt string `json:"createdAt"`
}

// Info returns the wallet view safe to display or serve
func (w *Wallet) Info() WalletInfo {
	return WalletInfo{
		Name:      w.Name,
		Address:   w.Address,
		Network:   w.Network,
		CreatedAt: w.CreatedAt,
	}
}

// AddressEntry represents an address book entry
type AddressEntry struct {
	Label   string `json:"label"`
	Address string `json:"address"`
	Network string `json:"network"`
	AddedAt string `json:"addedAt"`
}

// VaultFile represents the wallets.enc file structure
type VaultFile struct {
	Version    string `json:"version"`
	Salt       string `json:"salt"`
	Nonce      string `json:"nonce"`
	CipherText string `json:"cipherText"`
}

// VaultData represents the decrypted contents of wallets.enc
type VaultData struct {
	Version string             `json:"version"`
	Wallets map[string]*Wallet `json:"wallets"`
}
