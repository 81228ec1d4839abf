// Package agent orchestrates wallet store, chain primitives and proxy client
// into the operations an agent invokes: transfers, consolidation, balance
// checks. Transactions are built unsigned; signing is delegated to the
// Hoosat SDKs and signed transactions come back through Submit.
package agent

import (
	"fmt"

	"haw/internal/model"
)

// Result is the outcome of a transaction operation. Failures are reported
// in Error rather than a Go error so callers (and the agent reading the
// output) always get a structured, serializable answer.
type Result struct {
	Success bool   `json:"success"`
	TxID    string `json:"txId,omitempty"`
	Error   string `json:"error,omitempty"`
	DryRun  bool   `json:"dryRun,omitempty"`

	// Unsigned is set when a real (non-dry-run) transfer was built but not
	// submitted because signing is delegated to an external SDK.
	Unsigned *model.RPCTransaction `json:"unsignedTransaction,omitempty"`

	Details *Details `json:"details,omitempty"`
}

// Details carries the numbers behind a Result for display and logging.
// Amounts are sompi.
type Details struct {
	Action    string `json:"action,omitempty"`
	From      string `json:"from,omitempty"`
	To        string `json:"to,omitempty"`
	Amount    uint64 `json:"amount,omitempty"`
	Fee       uint64 `json:"fee,omitempty"`
	FeeRate   uint64 `json:"feeRate,omitempty"`
	Total     uint64 `json:"total,omitempty"`
	Change    uint64 `json:"change,omitempty"`
	UTXOCount int    `json:"utxoCount,omitempty"`
	Message   string `json:"message,omitempty"`
}

// failure builds an error Result.
func failure(format string, args ...any) *Result {
	return &Result{Success: false, Error: fmt.Sprintf(format, args...)}
}
