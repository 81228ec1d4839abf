package agent

import (
	"context"
	"fmt"

	"haw/internal/client"
	"haw/internal/common"
	"haw/internal/model"
	"haw/internal/wallet"

	"github.com/rs/zerolog"
)

// DefaultConsolidateThreshold is the UTXO count above which consolidation
// is worthwhile.
const DefaultConsolidateThreshold = 10

// Executor runs transaction operations against the Hoosat network on behalf
// of the agent, honoring the store's dry-run, confirmation and auto-approve
// policy.
type Executor struct {
	store   *wallet.Store
	client  *client.HoosatClient
	builder *Builder
	log     zerolog.Logger
}

// NewExecutor creates an executor for the given store and proxy client.
func NewExecutor(store *wallet.Store, c *client.HoosatClient, log zerolog.Logger) *Executor {
	return &Executor{
		store:   store,
		client:  c,
		builder: NewBuilder(c),
		log:     log,
	}
}

// Balance returns the confirmed balance of a wallet in sompi.
func (e *Executor) Balance(ctx context.Context, walletName string) (uint64, error) {
	w, err := e.store.GetWallet(walletName)
	if err != nil {
		return 0, err
	}
	return e.client.GetBalance(ctx, w.Address)
}

// UTXOs returns the unspent outputs of a wallet.
func (e *Executor) UTXOs(ctx context.Context, walletName string) ([]model.UTXO, error) {
	w, err := e.store.GetWallet(walletName)
	if err != nil {
		return nil, err
	}
	return e.client.GetUTXOs(ctx, []string{w.Address})
}

// TransferRequest describes a transfer for Transfer.
type TransferRequest struct {
	FromWallet string
	To         string // wallet name, address book label, or address
	AmountHTN  string // decimal HTN string
	// Confirm overrides the confirm-transactions feature flag when set
	Confirm *bool
}

// Transfer moves HTN from a wallet to a resolved recipient.
//
// Order of gates: recipient resolution, balance, UTXO availability,
// confirmation policy, dry-run. A real run builds the unsigned transaction
// for the signing SDK; nothing is submitted here.
func (e *Executor) Transfer(ctx context.Context, req TransferRequest) *Result {
	recipient, err := e.store.ResolveAddress(req.To)
	if err != nil {
		return failure("could not resolve address: %s", req.To)
	}

	w, err := e.store.GetWallet(req.FromWallet)
	if err != nil {
		return failure("%v", err)
	}

	amountSompi, err := common.HTNToSompi(req.AmountHTN)
	if err != nil {
		return failure("invalid amount %q: %v", req.AmountHTN, err)
	}

	balance, err := e.client.GetBalance(ctx, w.Address)
	if err != nil {
		return failure("could not get balance: %v", err)
	}
	if balance < amountSompi {
		return failure("insufficient balance: have %s HTN, need %s HTN",
			common.SompiToHTN(balance), req.AmountHTN)
	}

	feeRate := e.builder.FeeRate(ctx)

	shouldConfirm := e.store.ShouldConfirm()
	if req.Confirm != nil {
		shouldConfirm = *req.Confirm
	}

	if shouldConfirm && !e.store.ShouldAutoApprove(req.FromWallet, amountSompi) {
		return &Result{
			Success: false,
			DryRun:  true,
			Error: fmt.Sprintf("transaction requires confirmation: send %s HTN to %s",
				req.AmountHTN, recipient),
			Details: &Details{
				Action:  "transfer",
				From:    w.Address,
				To:      recipient,
				Amount:  amountSompi,
				FeeRate: feeRate,
			},
		}
	}

	if e.store.DryRun() {
		utxos, err := e.client.GetUTXOs(ctx, []string{w.Address})
		if err != nil {
			return failure("could not get UTXOs: %v", err)
		}
		e.log.Info().
			Str("wallet", req.FromWallet).
			Str("to", recipient).
			Uint64("amount", amountSompi).
			Msg("dry-run transfer")
		return &Result{
			Success: true,
			TxID:    "DRY-RUN-TX-ID",
			DryRun:  true,
			Details: &Details{
				Action:    "transfer",
				From:      w.Address,
				To:        recipient,
				Amount:    amountSompi,
				FeeRate:   feeRate,
				UTXOCount: len(utxos),
			},
		}
	}

	built, err := e.builder.BuildTransfer(ctx, w.Address, recipient, amountSompi, feeRate)
	if err != nil {
		return failure("failed to build transaction: %v", err)
	}

	e.log.Info().
		Str("wallet", req.FromWallet).
		Str("to", recipient).
		Uint64("amount", amountSompi).
		Uint64("fee", built.Fee).
		Int("inputs", built.UTXOCount).
		Msg("unsigned transaction built")

	return &Result{
		Success:  true,
		Unsigned: built.Transaction,
		Details: &Details{
			Action:    "transfer",
			From:      w.Address,
			To:        recipient,
			Amount:    amountSompi,
			Fee:       built.Fee,
			FeeRate:   feeRate,
			Total:     built.TotalInput,
			Change:    built.Change,
			UTXOCount: built.UTXOCount,
			Message:   "unsigned transaction built, sign and submit with the Hoosat SDK",
		},
	}
}

// SendAll transfers the whole balance of a wallet minus the fee.
func (e *Executor) SendAll(ctx context.Context, fromWallet, to string) *Result {
	balance, err := e.Balance(ctx, fromWallet)
	if err != nil {
		return failure("could not get balance: %v", err)
	}

	fee := EstimateFee(e.builder.FeeRate(ctx))
	if balance <= fee {
		return failure("insufficient funds after fee: balance %s HTN, fee %s HTN",
			common.SompiToHTN(balance), common.SompiToHTN(fee))
	}

	return e.Transfer(ctx, TransferRequest{
		FromWallet: fromWallet,
		To:         to,
		AmountHTN:  common.SompiToHTN(balance - fee),
	})
}

// Consolidate sweeps a wallet's UTXOs into one output when their count
// exceeds maxUTXOs (DefaultConsolidateThreshold when <= 0).
func (e *Executor) Consolidate(ctx context.Context, walletName string, maxUTXOs int) *Result {
	if maxUTXOs <= 0 {
		maxUTXOs = DefaultConsolidateThreshold
	}

	w, err := e.store.GetWallet(walletName)
	if err != nil {
		return failure("%v", err)
	}

	utxos, err := e.client.GetUTXOs(ctx, []string{w.Address})
	if err != nil {
		return failure("could not get UTXOs: %v", err)
	}

	if len(utxos) <= maxUTXOs {
		return &Result{
			Success: true,
			Details: &Details{
				Action:    "consolidate",
				UTXOCount: len(utxos),
				Message:   fmt.Sprintf("only %d UTXOs, no consolidation needed", len(utxos)),
			},
		}
	}

	feeRate := e.builder.FeeRate(ctx)

	if e.store.DryRun() {
		var total uint64
		for _, u := range utxos {
			total += utxoAmount(u)
		}
		fee := EstimateFee(feeRate)
		if total <= fee {
			return failure("not worth consolidating: total %d sompi does not cover fee %d", total, fee)
		}
		return &Result{
			Success: true,
			TxID:    "DRY-RUN-CONSOLIDATE",
			DryRun:  true,
			Details: &Details{
				Action:    "consolidate",
				From:      w.Address,
				To:        w.Address,
				Amount:    total - fee,
				Fee:       fee,
				FeeRate:   feeRate,
				Total:     total,
				UTXOCount: len(utxos),
			},
		}
	}

	built, err := e.builder.BuildSweep(ctx, w.Address, feeRate)
	if err != nil {
		return failure("failed to build consolidation: %v", err)
	}

	e.log.Info().
		Str("wallet", walletName).
		Int("utxos", built.UTXOCount).
		Uint64("fee", built.Fee).
		Msg("unsigned consolidation built")

	return &Result{
		Success:  true,
		Unsigned: built.Transaction,
		Details: &Details{
			Action:    "consolidate",
			From:      w.Address,
			To:        w.Address,
			Amount:    built.TotalInput - built.Fee,
			Fee:       built.Fee,
			FeeRate:   feeRate,
			Total:     built.TotalInput,
			UTXOCount: built.UTXOCount,
			Message:   "unsigned transaction built, sign and submit with the Hoosat SDK",
		},
	}
}

// Submit pushes an externally signed transaction to the network and logs it.
// walletName and recipient are for the transaction log only and may be empty.
func (e *Executor) Submit(ctx context.Context, tx *model.RPCTransaction, walletName, recipient string) (string, error) {
	txID, err := e.client.SubmitTransaction(ctx, tx)
	if err != nil {
		return "", err
	}

	var amount uint64
	if len(tx.Outputs) > 0 {
		// First output is the payment by convention; change comes second
		amount = parseAmount(tx.Outputs[0].Amount)
	}
	if err := e.store.LogTransaction(walletName, txID, recipient, amount); err != nil {
		e.log.Warn().Err(err).Str("txId", txID).Msg("failed to log transaction")
	}

	return txID, nil
}

// Status returns the acceptance status of a transaction.
func (e *Executor) Status(ctx context.Context, txID string) (*model.TransactionStatus, error) {
	return e.client.GetTransactionStatus(ctx, txID)
}

func parseAmount(s string) uint64 {
	var n uint64
	_, err := fmt.Sscanf(s, "%d", &n)
	if err != nil {
		return 0
	}
	return n
}
