package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"haw/internal/model"
)

// DefaultAPIURL is the public Hoosat REST proxy
const DefaultAPIURL = "https://proxy.hoosat.net/api/v1"

// HoosatClient is a client for the Hoosat REST proxy API
type HoosatClient struct {
	baseURL string
	client  *http.Client
}

// NewHoosatClient creates a new proxy client. Empty baseURL uses the
// public proxy.
func NewHoosatClient(baseURL string) *HoosatClient {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	return &HoosatClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// envelope is the proxy response wrapper:
// {success, data, timestamp, path} or {success: false, error, ...}
type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Timestamp string          `json:"timestamp"`
	Path      string          `json:"path"`
}

// get performs a GET request and unmarshals the envelope data into out
func (c *HoosatClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return c.do(req, out)
}

// post performs a POST request with a JSON body and unmarshals the envelope
// data into out
func (c *HoosatClient) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *HoosatClient) do(req *http.Request, out any) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("API error: status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	if !env.Success {
		if env.Error != "" {
			return fmt.Errorf("API error: %s", env.Error)
		}
		return fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("failed to decode response data: %w", err)
	}
	return nil
}

// GetBalance returns the confirmed balance of an address in sompi.
func (c *HoosatClient) GetBalance(ctx context.Context, address string) (uint64, error) {
	var data struct {
		Address string `json:"address"`
		Balance string `json:"balance"`
	}
	if err := c.get(ctx, "/address/"+address+"/balance", &data); err != nil {
		return 0, err
	}

	balance, err := strconv.ParseUint(data.Balance, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse balance %q: %w", data.Balance, err)
	}
	return balance, nil
}

// GetUTXOs returns the unspent outputs of the given addresses.
func (c *HoosatClient) GetUTXOs(ctx context.Context, addresses []string) ([]model.UTXO, error) {
	body := struct {
		Addresses []string `json:"addresses"`
	}{Addresses: addresses}

	var data struct {
		UTXOs []model.UTXO `json:"utxos"`
	}
	if err := c.post(ctx, "/address/utxos", body, &data); err != nil {
		return nil, err
	}
	return data.UTXOs, nil
}

// GetFeeEstimate returns the current mempool fee estimate.
func (c *HoosatClient) GetFeeEstimate(ctx context.Context) (*model.FeeEstimate, error) {
	var data model.FeeEstimate
	if err := c.get(ctx, "/mempool/fee-estimate", &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// SubmitTransaction submits a signed transaction and returns its ID.
func (c *HoosatClient) SubmitTransaction(ctx context.Context, tx *model.RPCTransaction) (string, error) {
	body := struct {
		Transaction *model.RPCTransaction `json:"transaction"`
	}{Transaction: tx}

	var data struct {
		TransactionID string `json:"transactionId"`
	}
	if err := c.post(ctx, "/transaction/submit", body, &data); err != nil {
		return "", err
	}
	return data.TransactionID, nil
}

// GetTransactionStatus returns the acceptance status of a transaction.
func (c *HoosatClient) GetTransactionStatus(ctx context.Context, txID string) (*model.TransactionStatus, error) {
	var data model.TransactionStatus
	if err := c.get(ctx, "/transaction/"+txID+"/status", &data); err != nil {
		return nil, err
	}
	if data.TransactionID == "" {
		data.TransactionID = txID
	}
	return &data, nil
}

// GetNodeInfo returns information about the node behind the proxy.
func (c *HoosatClient) GetNodeInfo(ctx context.Context) (*model.NodeInfo, error) {
	var data model.NodeInfo
	if err := c.get(ctx, "/node/info", &data); err != nil {
		return nil, err
	}
	return &data, nil
}
