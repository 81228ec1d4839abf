package model

// APIResponse is the envelope used by the local daemon, matching the shape
// of the upstream proxy: {success, data, timestamp, path} on success and
// {success: false, error, ...} on failure.
type APIResponse struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	Error     string `json:"error,omitempty"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

// CreateWalletRequest is the body of POST /api/v1/wallet
type CreateWalletRequest struct {
	Name    string `json:"name"`
	Network string `json:"network,omitempty"`
}

// ImportWalletRequest is the body of POST /api/v1/wallet/import
type ImportWalletRequest struct {
	Name       string `json:"name"`
	PrivateKey string `json:"privateKey"` // hex or WIF
	Network    string `json:"network,omitempty"`
}

// AddAddressRequest is the body of POST /api/v1/address-book
type AddAddressRequest struct {
	Label   string `json:"label"`
	Address string `json:"address"`
	Network string `json:"network,omitempty"`
}

// TransferRequest is the body of POST /api/v1/transfer
type TransferRequest struct {
	FromWallet string `json:"fromWallet"`
	To         string `json:"to"`     // wallet name, address book label, or address
	Amount     string `json:"amount"` // HTN decimal string
	Confirm    *bool  `json:"confirm,omitempty"`
}

// ConsolidateRequest is the body of POST /api/v1/consolidate
type ConsolidateRequest struct {
	Wallet   string `json:"wallet"`
	MaxUTXOs int    `json:"maxUtxos,omitempty"`
}

// SubmitRequest is the body of POST /api/v1/transaction/submit
type SubmitRequest struct {
	Wallet      string          `json:"wallet,omitempty"`
	Recipient   string          `json:"recipient,omitempty"`
	Transaction *RPCTransaction `json:"transaction"`
}

// BalanceResponse is the data of GET /api/v1/wallet/{name}/balance
type BalanceResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Balance string `json:"balance"` // sompi
	HTN     string `json:"htn"`
	Rate    string `json:"rate,omitempty"` // HTN/USD
	USD     string `json:"usd,omitempty"`
}

// QRResponse is the data of GET /api/v1/wallet/{name}/qr
type QRResponse struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	QR      string `json:"qr"` // base64 PNG
}
