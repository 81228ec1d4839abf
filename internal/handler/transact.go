package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"haw/agent"
	"haw/internal/client"
	"haw/internal/model"
	"haw/internal/wallet"

	"github.com/rs/zerolog"
)

// TransactHandler serves transaction operations: transfers, consolidation,
// submission of externally signed transactions and status lookups.
type TransactHandler struct {
	store  *wallet.Store
	exec   *agent.Executor
	hoosat *client.HoosatClient
	log    zerolog.Logger
}

// NewTransactHandler creates a new TransactHandler.
func NewTransactHandler(store *wallet.Store, hc *client.HoosatClient, log zerolog.Logger) *TransactHandler {
	return &TransactHandler{
		store:  store,
		exec:   agent.NewExecutor(store, hc, log),
		hoosat: hc,
		log:    log,
	}
}

// Transfer handles POST /api/v1/transfer
// @Summary      Transfer HTN
// @Description  Builds an unsigned transfer honoring dry-run and auto-approve policy
// @Tags         transact
// @Accept       json
// @Produce      json
// @Param        request  body      model.TransferRequest  true  "Transfer data"
// @Success      200      {object}  model.APIResponse
// @Router       /api/v1/transfer [post]
func (h *TransactHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	result := h.exec.Transfer(r.Context(), agent.TransferRequest{
		FromWallet: req.FromWallet,
		To:         req.To,
		AmountHTN:  req.Amount,
		Confirm:    req.Confirm,
	})
	if !result.Success {
		writeData(w, r, http.StatusUnprocessableEntity, result)
		return
	}
	writeData(w, r, http.StatusOK, result)
}

// Consolidate handles POST /api/v1/consolidate
// @Summary      Consolidate UTXOs
// @Description  Sweeps a wallet's UTXOs into one output when they exceed the threshold
// @Tags         transact
// @Accept       json
// @Produce      json
// @Param        request  body      model.ConsolidateRequest  true  "Wallet and threshold"
// @Success      200      {object}  model.APIResponse
// @Router       /api/v1/consolidate [post]
func (h *TransactHandler) Consolidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ConsolidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	result := h.exec.Consolidate(r.Context(), req.Wallet, req.MaxUTXOs)
	if !result.Success {
		writeData(w, r, http.StatusUnprocessableEntity, result)
		return
	}
	writeData(w, r, http.StatusOK, result)
}

// Submit handles POST /api/v1/transaction/submit
// @Summary      Submit signed transaction
// @Description  Pushes an externally signed transaction to the network
// @Tags         transact
// @Accept       json
// @Produce      json
// @Param        request  body      model.SubmitRequest  true  "Signed transaction"
// @Success      200      {object}  model.APIResponse
// @Router       /api/v1/transaction/submit [post]
func (h *TransactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.SubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}
	if req.Transaction == nil {
		writeError(w, r, http.StatusBadRequest, errors.New("transaction is required"))
		return
	}

	txID, err := h.exec.Submit(r.Context(), req.Transaction, req.Wallet, req.Recipient)
	if err != nil {
		writeError(w, r, http.StatusBadGateway, err)
		return
	}
	writeData(w, r, http.StatusOK, map[string]string{"transactionId": txID})
}

// Status handles GET /api/v1/transaction/{txId}/status
// @Summary      Transaction status
// @Tags         transact
// @Produce      json
// @Param        txId  path      string  true  "Transaction ID"
// @Success      200   {object}  model.APIResponse
// @Router       /api/v1/transaction/{txId}/status [get]
func (h *TransactHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	status, err := h.exec.Status(r.Context(), r.PathValue("txId"))
	if err != nil {
		writeError(w, r, http.StatusBadGateway, err)
		return
	}
	writeData(w, r, http.StatusOK, status)
}

// UTXOs handles GET /api/v1/wallet/{name}/utxos
// @Summary      Wallet UTXOs
// @Tags         transact
// @Produce      json
// @Param        name  path      string  true  "Wallet name"
// @Success      200   {object}  model.APIResponse
// @Router       /api/v1/wallet/{name}/utxos [get]
func (h *TransactHandler) UTXOs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	utxos, err := h.exec.UTXOs(r.Context(), r.PathValue("name"))
	if err != nil {
		writeError(w, r, statusForStoreError(err), err)
		return
	}
	writeData(w, r, http.StatusOK, utxos)
}

// History handles GET /api/v1/transactions
// @Summary      Transaction history
// @Description  Returns logged transfers, newest last. Use ?limit=N for the tail.
// @Tags         transact
// @Produce      json
// @Success      200  {object}  model.APIResponse
// @Router       /api/v1/transactions [get]
func (h *TransactHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err)
			return
		}
		limit = n
	}

	entries, err := h.store.TransactionHistory(limit)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	writeData(w, r, http.StatusOK, entries)
}

// NodeInfo handles GET /api/v1/node/info
// @Summary      Node info
// @Description  Proxies node information from the upstream network
// @Tags         transact
// @Produce      json
// @Success      200  {object}  model.APIResponse
// @Router       /api/v1/node/info [get]
func (h *TransactHandler) NodeInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	info, err := h.hoosat.GetNodeInfo(r.Context())
	if err != nil {
		writeError(w, r, http.StatusBadGateway, err)
		return
	}
	writeData(w, r, http.StatusOK, info)
}
