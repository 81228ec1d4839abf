package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"haw/internal/client"
	"haw/internal/hoosat"
	"haw/internal/model"
	"haw/internal/wallet"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandlers(t *testing.T) (*WalletHandler, *wallet.Store) {
	t.Helper()

	store, err := wallet.NewStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, store.Initialize([]byte("test-password")))

	// Endpoints that reach out to the proxy are not exercised here
	h := NewWalletHandler(store, client.NewHoosatClient("http://127.0.0.1:1"), zerolog.Nop())
	return h, store
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) model.APIResponse {
	t.Helper()
	var env model.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestCreate_ReturnsWalletInfo(t *testing.T) {
	h, _ := newTestHandlers(t)

	body := strings.NewReader(`{"name":"bot","network":"testnet"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallet", body)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "/api/v1/wallet", env.Path)
	assert.NotEmpty(t, env.Timestamp)

	data, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var info model.WalletInfo
	require.NoError(t, json.Unmarshal(data, &info))
	assert.Equal(t, "bot", info.Name)
	assert.True(t, hoosat.ValidateAddress(info.Address, hoosat.NetworkTestnet))
	assert.NotContains(t, rec.Body.String(), "privateKey")
}

func TestCreate_DuplicateIsConflict(t *testing.T) {
	h, store := newTestHandlers(t)
	_, err := store.CreateWallet("bot", hoosat.NetworkTestnet)
	require.NoError(t, err)

	body := strings.NewReader(`{"name":"bot","network":"testnet"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallet", body)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Error)
}

func TestCreate_WrongMethod(t *testing.T) {
	h, _ := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet", nil)
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestWallet_NotFound(t *testing.T) {
	h, _ := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet/ghost", nil)
	req.SetPathValue("name", "ghost")
	rec := httptest.NewRecorder()
	h.Wallet(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
}

func TestWallet_Delete(t *testing.T) {
	h, store := newTestHandlers(t)
	_, err := store.CreateWallet("doomed", hoosat.NetworkTestnet)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/wallet/doomed", nil)
	req.SetPathValue("name", "doomed")
	rec := httptest.NewRecorder()
	h.Wallet(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	_, err = store.GetWallet("doomed")
	assert.Error(t, err)
}

func TestAddressBook_AddAndList(t *testing.T) {
	h, _ := newTestHandlers(t)

	body := strings.NewReader(`{"label":"exchange","address":"hoosat:qypexchange"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/address-book", body)
	rec := httptest.NewRecorder()
	h.AddressBook(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/api/v1/address-book", nil)
	rec = httptest.NewRecorder()
	h.AddressBook(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "exchange")
}

func TestQR_ReturnsBase64PNG(t *testing.T) {
	h, store := newTestHandlers(t)
	_, err := store.CreateWallet("bot", hoosat.NetworkTestnet)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallet/bot/qr", nil)
	req.SetPathValue("name", "bot")
	rec := httptest.NewRecorder()
	h.QR(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	data, err := json.Marshal(env.Data)
	require.NoError(t, err)
	var qr model.QRResponse
	require.NoError(t, json.Unmarshal(data, &qr))
	// PNG magic bytes, base64 encoded
	assert.True(t, strings.HasPrefix(qr.QR, "iVBOR"), qr.QR[:16])
}

func TestConfig_Get(t *testing.T) {
	h, _ := newTestHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/config", nil)
	rec := httptest.NewRecorder()
	h.Config(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "dryRun")
}
