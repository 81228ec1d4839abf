package agent

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"haw/internal/client"
	"haw/internal/common"
	"haw/internal/hoosat"
	"haw/internal/model"
)

const (
	// defaultFeeRate is used when the fee estimate endpoint is unreachable
	defaultFeeRate = 100

	// estimatedTxMass is the rough transaction mass (grams) used for fee
	// calculation until the real mass is known after signing
	estimatedTxMass = 200

	// zeroSubnetworkID marks a plain payment transaction
	zeroSubnetworkID = "0000000000000000000000000000000000000000"
)

// BuiltTransaction is an unsigned transaction with its accounting.
// Amounts are sompi.
type BuiltTransaction struct {
	Transaction *model.RPCTransaction
	Fee         uint64
	TotalInput  uint64
	Change      uint64
	UTXOCount   int
}

// Builder assembles unsigned transactions from proxy state.
type Builder struct {
	client *client.HoosatClient
}

// NewBuilder creates a builder against the given proxy client.
func NewBuilder(c *client.HoosatClient) *Builder {
	return &Builder{client: c}
}

// FeeRate fetches the normal-bucket fee rate, falling back to the default
// when the proxy cannot answer.
func (b *Builder) FeeRate(ctx context.Context) uint64 {
	estimate, err := b.client.GetFeeEstimate(ctx)
	if err != nil || estimate.NormalBucket.FeeRate == 0 {
		return defaultFeeRate
	}
	return estimate.NormalBucket.FeeRate
}

// EstimateFee converts a fee rate into an absolute fee using the mass
// heuristic.
func EstimateFee(feeRate uint64) uint64 {
	return feeRate * estimatedTxMass
}

// selectUTXOs picks UTXOs to cover the needed amount, largest first so the
// transaction has fewer inputs.
func selectUTXOs(utxos []model.UTXO, needed uint64) ([]model.UTXO, uint64, error) {
	sorted := make([]model.UTXO, len(utxos))
	copy(sorted, utxos)
	sort.Slice(sorted, func(i, j int) bool {
		return utxoAmount(sorted[i]) > utxoAmount(sorted[j])
	})

	var selected []model.UTXO
	var total uint64
	for _, u := range sorted {
		selected = append(selected, u)
		total += utxoAmount(u)
		if total >= needed {
			return selected, total, nil
		}
	}

	return nil, 0, fmt.Errorf("insufficient funds: need %s HTN, have %s HTN",
		common.SompiToHTN(needed), common.SompiToHTN(total))
}

func utxoAmount(u model.UTXO) uint64 {
	amount, err := strconv.ParseUint(u.UTXOEntry.Amount, 10, 64)
	if err != nil {
		return 0
	}
	return amount
}

// BuildTransfer assembles an unsigned transfer of amountSompi from sender to
// recipient. Change below the dust threshold folds into the fee.
//
// signatureScript and output scriptPublicKey are left empty: both are filled
// in by the signing SDK, which owns script encoding.
func (b *Builder) BuildTransfer(ctx context.Context, sender, recipient string, amountSompi, feeRate uint64) (*BuiltTransaction, error) {
	if !hoosat.HasKnownPrefix(sender) {
		return nil, fmt.Errorf("invalid sender address: %s", sender)
	}
	if !hoosat.HasKnownPrefix(recipient) {
		return nil, fmt.Errorf("invalid recipient address: %s", recipient)
	}
	if amountSompi <= common.DustThreshold {
		return nil, fmt.Errorf("amount %d sompi is at or below the dust threshold (%d)",
			amountSompi, common.DustThreshold)
	}

	utxos, err := b.client.GetUTXOs(ctx, []string{sender})
	if err != nil {
		return nil, fmt.Errorf("failed to get UTXOs: %w", err)
	}
	if len(utxos) == 0 {
		return nil, fmt.Errorf("no UTXOs available for %s", sender)
	}

	if feeRate == 0 {
		feeRate = b.FeeRate(ctx)
	}
	fee := EstimateFee(feeRate)

	selected, totalInput, err := selectUTXOs(utxos, amountSompi+fee)
	if err != nil {
		return nil, err
	}

	inputs := make([]model.RPCInput, 0, len(selected))
	for _, u := range selected {
		inputs = append(inputs, model.RPCInput{
			PreviousOutpoint: u.Outpoint,
			SignatureScript:  "",
			Sequence:         0,
			SigOpCount:       1,
		})
	}

	outputs := []model.RPCOutput{{
		Amount:          strconv.FormatUint(amountSompi, 10),
		ScriptPublicKey: model.ScriptPublicKey{Version: 0},
	}}

	change := totalInput - amountSompi - fee
	if change > common.DustThreshold {
		outputs = append(outputs, model.RPCOutput{
			Amount:          strconv.FormatUint(change, 10),
			ScriptPublicKey: model.ScriptPublicKey{Version: 0},
		})
	} else {
		// Dust change is cheaper to burn as fee than to carry as an output
		fee += change
		change = 0
	}

	return &BuiltTransaction{
		Transaction: &model.RPCTransaction{
			Version:      0,
			Inputs:       inputs,
			Outputs:      outputs,
			LockTime:     "0",
			SubnetworkID: zeroSubnetworkID,
			Gas:          "0",
			Payload:      "",
		},
		Fee:        fee,
		TotalInput: totalInput,
		Change:     change,
		UTXOCount:  len(selected),
	}, nil
}

// BuildSweep assembles an unsigned transaction spending every UTXO of the
// address into a single output to the same address, minus the fee. Used for
// consolidation.
func (b *Builder) BuildSweep(ctx context.Context, address string, feeRate uint64) (*BuiltTransaction, error) {
	if !hoosat.HasKnownPrefix(address) {
		return nil, fmt.Errorf("invalid address: %s", address)
	}

	utxos, err := b.client.GetUTXOs(ctx, []string{address})
	if err != nil {
		return nil, fmt.Errorf("failed to get UTXOs: %w", err)
	}
	if len(utxos) == 0 {
		return nil, fmt.Errorf("no UTXOs available for %s", address)
	}

	if feeRate == 0 {
		feeRate = b.FeeRate(ctx)
	}
	fee := EstimateFee(feeRate)

	var total uint64
	inputs := make([]model.RPCInput, 0, len(utxos))
	for _, u := range utxos {
		total += utxoAmount(u)
		inputs = append(inputs, model.RPCInput{
			PreviousOutpoint: u.Outpoint,
			SignatureScript:  "",
			Sequence:         0,
			SigOpCount:       1,
		})
	}

	if total <= fee {
		return nil, fmt.Errorf("not worth consolidating: total %d sompi does not cover fee %d", total, fee)
	}

	return &BuiltTransaction{
		Transaction: &model.RPCTransaction{
			Version: 0,
			Inputs:  inputs,
			Outputs: []model.RPCOutput{{
				Amount:          strconv.FormatUint(total-fee, 10),
				ScriptPublicKey: model.ScriptPublicKey{Version: 0},
			}},
			LockTime:     "0",
			SubnetworkID: zeroSubnetworkID,
			Gas:          "0",
			Payload:      "",
		},
		Fee:        fee,
		TotalInput: total,
		UTXOCount:  len(utxos),
	}, nil
}
