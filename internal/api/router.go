package api

import (
	"net/http"

	"haw/internal/client"
	"haw/internal/handler"
	"haw/internal/wallet"

	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up the daemon router with handlers over an unlocked store.
func SetupRouter(store *wallet.Store, hc *client.HoosatClient, log zerolog.Logger) http.Handler {
	walletHandler := handler.NewWalletHandler(store, hc, log)
	transactHandler := handler.NewTransactHandler(store, hc, log)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet store
	mux.HandleFunc("/api/v1/wallet", walletHandler.Create)
	mux.HandleFunc("/api/v1/wallet/import", walletHandler.Import)
	mux.HandleFunc("/api/v1/wallets", walletHandler.List)
	mux.HandleFunc("/api/v1/wallet/{name}", walletHandler.Wallet)
	mux.HandleFunc("/api/v1/wallet/{name}/balance", walletHandler.Balance)
	mux.HandleFunc("/api/v1/wallet/{name}/qr", walletHandler.QR)
	mux.HandleFunc("/api/v1/wallet/{name}/utxos", transactHandler.UTXOs)

	// Address book and config
	mux.HandleFunc("/api/v1/address-book", walletHandler.AddressBook)
	mux.HandleFunc("/api/v1/address-book/{label}", walletHandler.AddressBookEntry)
	mux.HandleFunc("/api/v1/config", walletHandler.Config)

	// Transactions
	mux.HandleFunc("/api/v1/transfer", transactHandler.Transfer)
	mux.HandleFunc("/api/v1/consolidate", transactHandler.Consolidate)
	mux.HandleFunc("/api/v1/transaction/submit", transactHandler.Submit)
	mux.HandleFunc("/api/v1/transaction/{txId}/status", transactHandler.Status)
	mux.HandleFunc("/api/v1/transactions", transactHandler.History)
	mux.HandleFunc("/api/v1/node/info", transactHandler.NodeInfo)

	return mux
}
