package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"haw/internal/client"
	"haw/internal/common"
	"haw/internal/model"
	"haw/internal/wallet"

	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"
)

const qrSize = 256

// WalletHandler serves wallet store and address book operations.
type WalletHandler struct {
	store  *wallet.Store
	price  *client.CoinGeckoClient
	hoosat *client.HoosatClient
	log    zerolog.Logger
}

// NewWalletHandler creates a new WalletHandler over an unlocked store.
func NewWalletHandler(store *wallet.Store, hc *client.HoosatClient, log zerolog.Logger) *WalletHandler {
	return &WalletHandler{
		store:  store,
		price:  client.NewCoinGeckoClient(),
		hoosat: hc,
		log:    log,
	}
}

func statusForStoreError(err error) int {
	switch {
	case errors.Is(err, wallet.ErrWalletNotFound), errors.Is(err, wallet.ErrLabelNotFound):
		return http.StatusNotFound
	case errors.Is(err, wallet.ErrWalletExists):
		return http.StatusConflict
	case errors.Is(err, wallet.ErrLocked), errors.Is(err, wallet.ErrNotInitialized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Create handles POST /api/v1/wallet
// @Summary      Create wallet
// @Description  Generates a new keypair and stores it in the encrypted vault
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.CreateWalletRequest  true  "Wallet name and network"
// @Success      200      {object}  model.APIResponse
// @Router       /api/v1/wallet [post]
func (h *WalletHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.CreateWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	created, err := h.store.CreateWallet(req.Name, req.Network)
	if err != nil {
		writeError(w, r, statusForStoreError(err), err)
		return
	}

	h.log.Info().Str("wallet", created.Name).Str("address", created.Address).Msg("wallet created")
	writeData(w, r, http.StatusOK, created.Info())
}

// Import handles POST /api/v1/wallet/import
// @Summary      Import wallet
// @Description  Imports a private key (hex or WIF) into the encrypted vault
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportWalletRequest  true  "Wallet name and private key"
// @Success      200      {object}  model.APIResponse
// @Router       /api/v1/wallet/import [post]
func (h *WalletHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ImportWalletRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	imported, err := h.store.ImportWallet(req.Name, req.PrivateKey, req.Network)
	if err != nil {
		writeError(w, r, statusForStoreError(err), err)
		return
	}

	h.log.Info().Str("wallet", imported.Name).Str("address", imported.Address).Msg("wallet imported")
	writeData(w, r, http.StatusOK, imported.Info())
}

// List handles GET /api/v1/wallets
// @Summary      List wallets
// @Description  Lists stored wallets without key material
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.APIResponse
// @Router       /api/v1/wallets [get]
func (h *WalletHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	wallets, err := h.store.ListWallets()
	if err != nil {
		writeError(w, r, statusForStoreError(err), err)
		return
	}
	writeData(w, r, http.StatusOK, wallets)
}

// Wallet handles GET and DELETE /api/v1/wallet/{name}
// @Summary      Get or delete a wallet
// @Description  GET returns wallet info; DELETE removes it from the vault
// @Tags         wallet
// @Produce      json
// @Param        name  path      string  true  "Wallet name"
// @Success      200   {object}  model.APIResponse
// @Router       /api/v1/wallet/{name} [get]
func (h *WalletHandler) Wallet(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	switch r.Method {
	case http.MethodGet:
		info, err := h.store.WalletInfo(name)
		if err != nil {
			writeError(w, r, statusForStoreError(err), err)
			return
		}
		writeData(w, r, http.StatusOK, info)
	case http.MethodDelete:
		if err := h.store.DeleteWallet(name); err != nil {
			writeError(w, r, statusForStoreError(err), err)
			return
		}
		h.log.Info().Str("wallet", name).Msg("wallet deleted")
		writeData(w, r, http.StatusOK, map[string]string{"deleted": name})
	default:
		http.Error(w, "Method not allowed. Should be GET or DELETE", http.StatusMethodNotAllowed)
	}
}

// Balance handles GET /api/v1/wallet/{name}/balance
// @Summary      Get wallet balance
// @Description  Returns the confirmed balance in sompi, HTN and USD
// @Tags         wallet
// @Produce      json
// @Param        name  path      string  true  "Wallet name"
// @Success      200   {object}  model.APIResponse
// @Router       /api/v1/wallet/{name}/balance [get]
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	name := r.PathValue("name")
	stored, err := h.store.GetWallet(name)
	if err != nil {
		writeError(w, r, statusForStoreError(err), err)
		return
	}

	balance, err := h.hoosat.GetBalance(r.Context(), stored.Address)
	if err != nil {
		writeError(w, r, http.StatusBadGateway, err)
		return
	}

	resp := model.BalanceResponse{
		Name:    name,
		Address: stored.Address,
		Balance: strconv.FormatUint(balance, 10),
		HTN:     common.SompiToHTN(balance),
	}

	// Rate is best effort, the balance itself never depends on CoinGecko.
	// USD is a display value, float math is fine here.
	if rate, err := h.price.GetHTNtoUSDRate(); err == nil {
		resp.Rate = rate
		if rateF, err := strconv.ParseFloat(rate, 64); err == nil {
			resp.USD = strconv.FormatFloat(float64(balance)/common.SompiPerHTN*rateF, 'f', 2, 64)
		}
	}

	writeData(w, r, http.StatusOK, resp)
}

// QR handles GET /api/v1/wallet/{name}/qr
// @Summary      Address QR code
// @Description  Returns the wallet address as a base64 PNG QR code
// @Tags         wallet
// @Produce      json
// @Param        name  path      string  true  "Wallet name"
// @Success      200   {object}  model.APIResponse
// @Router       /api/v1/wallet/{name}/qr [get]
func (h *WalletHandler) QR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	name := r.PathValue("name")
	stored, err := h.store.GetWallet(name)
	if err != nil {
		writeError(w, r, statusForStoreError(err), err)
		return
	}

	png, err := qrcode.Encode(stored.Address, qrcode.Medium, qrSize)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}

	writeData(w, r, http.StatusOK, model.QRResponse{
		Name:    name,
		Address: stored.Address,
		QR:      base64.StdEncoding.EncodeToString(png),
	})
}

// AddressBook handles GET and POST /api/v1/address-book
// @Summary      List or add address book entries
// @Tags         address-book
// @Accept       json
// @Produce      json
// @Success      200  {object}  model.APIResponse
// @Router       /api/v1/address-book [get]
func (h *WalletHandler) AddressBook(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		entries, err := h.store.ListAddresses()
		if err != nil {
			writeError(w, r, statusForStoreError(err), err)
			return
		}
		writeData(w, r, http.StatusOK, entries)
	case http.MethodPost:
		var req model.AddAddressRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}
		entry, err := h.store.AddAddress(req.Label, req.Address, req.Network)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}
		writeData(w, r, http.StatusOK, entry)
	default:
		http.Error(w, "Method not allowed. Should be GET or POST", http.StatusMethodNotAllowed)
	}
}

// AddressBookEntry handles DELETE /api/v1/address-book/{label}
// @Summary      Remove an address book entry
// @Tags         address-book
// @Produce      json
// @Param        label  path      string  true  "Entry label"
// @Success      200    {object}  model.APIResponse
// @Router       /api/v1/address-book/{label} [delete]
func (h *WalletHandler) AddressBookEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed. Should be DELETE", http.StatusMethodNotAllowed)
		return
	}

	label := r.PathValue("label")
	if err := h.store.RemoveAddress(label); err != nil {
		writeError(w, r, statusForStoreError(err), err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]string{"removed": label})
}

// Config handles GET /api/v1/config
// @Summary      Get agent configuration
// @Tags         config
// @Produce      json
// @Success      200  {object}  model.APIResponse
// @Router       /api/v1/config [get]
func (h *WalletHandler) Config(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}
	writeData(w, r, http.StatusOK, h.store.Config())
}
