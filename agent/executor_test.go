package agent

import (
	"context"
	"testing"

	"haw/internal/client"
	"haw/internal/hoosat"
	"haw/internal/model"
	"haw/internal/wallet"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestExecutor(t *testing.T, proxy *fakeProxy) (*Executor, *wallet.Store) {
	t.Helper()

	store, err := wallet.NewStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, store.Initialize([]byte("test-password")))

	srv := proxy.server(t)
	t.Cleanup(srv.Close)

	exec := NewExecutor(store, client.NewHoosatClient(srv.URL), zerolog.Nop())
	return exec, store
}

func createWallet(t *testing.T, store *wallet.Store, name string) string {
	t.Helper()
	created, err := store.CreateWallet(name, hoosat.NetworkTestnet)
	require.NoError(t, err)
	return created.Address
}

func TestTransfer_DryRunNeverBuilds(t *testing.T) {
	exec, store := newTestExecutor(t, &fakeProxy{
		balance:     1_000_000_000,
		utxoAmounts: []uint64{1_000_000_000},
		feeRate:     100,
	})
	createWallet(t, store, "bot")
	require.NoError(t, store.SetConfirmTransactions(false))

	result := exec.Transfer(context.Background(), TransferRequest{
		FromWallet: "bot",
		To:         testRecipient,
		AmountHTN:  "1",
	})

	require.True(t, result.Success)
	assert.True(t, result.DryRun)
	assert.Nil(t, result.Unsigned, "dry-run must not build a transaction")
	assert.Equal(t, uint64(100_000_000), result.Details.Amount)
}

func TestTransfer_BuildsUnsignedWhenLive(t *testing.T) {
	exec, store := newTestExecutor(t, &fakeProxy{
		balance:     1_000_000_000,
		utxoAmounts: []uint64{1_000_000_000},
		feeRate:     100,
	})
	createWallet(t, store, "bot")
	require.NoError(t, store.SetConfirmTransactions(false))
	require.NoError(t, store.SetDryRun(false))

	result := exec.Transfer(context.Background(), TransferRequest{
		FromWallet: "bot",
		To:         testRecipient,
		AmountHTN:  "1",
	})

	require.True(t, result.Success, result.Error)
	assert.False(t, result.DryRun)
	require.NotNil(t, result.Unsigned)
	assert.Empty(t, result.TxID, "nothing was submitted")
	assert.Equal(t, "100000000", result.Unsigned.Outputs[0].Amount)
}

func TestTransfer_RequiresConfirmationByDefault(t *testing.T) {
	exec, store := newTestExecutor(t, &fakeProxy{
		balance:     1_000_000_000,
		utxoAmounts: []uint64{1_000_000_000},
		feeRate:     100,
	})
	createWallet(t, store, "bot")

	result := exec.Transfer(context.Background(), TransferRequest{
		FromWallet: "bot",
		To:         testRecipient,
		AmountHTN:  "1",
	})

	require.False(t, result.Success)
	assert.Contains(t, result.Error, "requires confirmation")
	assert.Nil(t, result.Unsigned)
}

func TestTransfer_ConfirmOverrideSkipsGate(t *testing.T) {
	exec, store := newTestExecutor(t, &fakeProxy{
		balance:     1_000_000_000,
		utxoAmounts: []uint64{1_000_000_000},
		feeRate:     100,
	})
	createWallet(t, store, "bot")

	skip := false
	result := exec.Transfer(context.Background(), TransferRequest{
		FromWallet: "bot",
		To:         testRecipient,
		AmountHTN:  "1",
		Confirm:    &skip,
	})
	assert.True(t, result.Success, result.Error)
}

func TestTransfer_AutoApproveUnderCap(t *testing.T) {
	exec, store := newTestExecutor(t, &fakeProxy{
		balance:     1_000_000_000,
		utxoAmounts: []uint64{1_000_000_000},
		feeRate:     100,
	})
	createWallet(t, store, "bot")
	require.NoError(t, store.SetAutoApproveEnabled(true))
	require.NoError(t, store.SetAutoApprove("bot", "100000000", true))

	// Exactly at the cap passes
	result := exec.Transfer(context.Background(), TransferRequest{
		FromWallet: "bot", To: testRecipient, AmountHTN: "1",
	})
	assert.True(t, result.Success, result.Error)

	// Over the cap still gated
	result = exec.Transfer(context.Background(), TransferRequest{
		FromWallet: "bot", To: testRecipient, AmountHTN: "1.00000001",
	})
	require.False(t, result.Success)
	assert.Contains(t, result.Error, "requires confirmation")
}

func TestTransfer_InsufficientBalance(t *testing.T) {
	exec, store := newTestExecutor(t, &fakeProxy{
		balance: 1000,
		feeRate: 100,
	})
	createWallet(t, store, "bot")

	result := exec.Transfer(context.Background(), TransferRequest{
		FromWallet: "bot",
		To:         testRecipient,
		AmountHTN:  "1",
	})

	require.False(t, result.Success)
	assert.Contains(t, result.Error, "insufficient balance")
}

func TestTransfer_ResolvesWalletRecipient(t *testing.T) {
	exec, store := newTestExecutor(t, &fakeProxy{
		balance:     1_000_000_000,
		utxoAmounts: []uint64{1_000_000_000},
		feeRate:     100,
	})
	createWallet(t, store, "bot")
	savingsAddr := createWallet(t, store, "savings")
	require.NoError(t, store.SetConfirmTransactions(false))

	result := exec.Transfer(context.Background(), TransferRequest{
		FromWallet: "bot",
		To:         "savings",
		AmountHTN:  "0.5",
	})

	require.True(t, result.Success, result.Error)
	assert.Equal(t, savingsAddr, result.Details.To)
}

func TestTransfer_UnresolvableRecipient(t *testing.T) {
	exec, store := newTestExecutor(t, &fakeProxy{balance: 1_000_000_000, feeRate: 100})
	createWallet(t, store, "bot")

	result := exec.Transfer(context.Background(), TransferRequest{
		FromWallet: "bot",
		To:         "nobody",
		AmountHTN:  "1",
	})

	require.False(t, result.Success)
	assert.Contains(t, result.Error, "could not resolve")
}

func TestTransfer_UnknownWallet(t *testing.T) {
	exec, _ := newTestExecutor(t, &fakeProxy{feeRate: 100})

	result := exec.Transfer(context.Background(), TransferRequest{
		FromWallet: "ghost",
		To:         testRecipient,
		AmountHTN:  "1",
	})
	assert.False(t, result.Success)
}

func TestConsolidate_NoOpUnderThreshold(t *testing.T) {
	exec, store := newTestExecutor(t, &fakeProxy{
		utxoAmounts: []uint64{100_000, 200_000},
		feeRate:     100,
	})
	createWallet(t, store, "bot")

	result := exec.Consolidate(context.Background(), "bot", 0)
	require.True(t, result.Success)
	assert.Nil(t, result.Unsigned)
	assert.Contains(t, result.Details.Message, "no consolidation needed")
	assert.Equal(t, 2, result.Details.UTXOCount)
}

func TestConsolidate_BuildsSweepAboveThreshold(t *testing.T) {
	amounts := make([]uint64, 12)
	for i := range amounts {
		amounts[i] = 100_000
	}
	exec, store := newTestExecutor(t, &fakeProxy{
		utxoAmounts: amounts,
		feeRate:     100,
	})
	createWallet(t, store, "bot")
	require.NoError(t, store.SetDryRun(false))

	result := exec.Consolidate(context.Background(), "bot", 0)
	require.True(t, result.Success, result.Error)
	require.NotNil(t, result.Unsigned)
	assert.Len(t, result.Unsigned.Inputs, 12)
	assert.Len(t, result.Unsigned.Outputs, 1)
	assert.Equal(t, 12, result.Details.UTXOCount)
}

func TestConsolidate_DryRun(t *testing.T) {
	amounts := make([]uint64, 11)
	for i := range amounts {
		amounts[i] = 100_000
	}
	exec, store := newTestExecutor(t, &fakeProxy{
		utxoAmounts: amounts,
		feeRate:     100,
	})
	createWallet(t, store, "bot")

	result := exec.Consolidate(context.Background(), "bot", 0)
	require.True(t, result.Success, result.Error)
	assert.True(t, result.DryRun)
	assert.Nil(t, result.Unsigned)
}

func TestSubmit_LogsTransaction(t *testing.T) {
	proxy := &fakeProxy{feeRate: 100}
	exec, store := newTestExecutor(t, proxy)
	createWallet(t, store, "bot")

	tx := &model.RPCTransaction{
		Version:      0,
		Outputs:      []model.RPCOutput{{Amount: "5000000"}},
		LockTime:     "0",
		SubnetworkID: zeroSubnetworkID,
		Gas:          "0",
	}
	txID, err := exec.Submit(context.Background(), tx, "bot", testRecipient)
	require.NoError(t, err)
	assert.Equal(t, "submitted-tx", txID)
	require.Len(t, proxy.submitted, 1)

	history, err := store.TransactionHistory(0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "submitted-tx", history[0].TxID)
	assert.Equal(t, "bot", history[0].Wallet)
	assert.Equal(t, "5000000", history[0].Amount)
}

func TestBalance(t *testing.T) {
	exec, store := newTestExecutor(t, &fakeProxy{balance: 42})
	createWallet(t, store, "bot")

	balance, err := exec.Balance(context.Background(), "bot")
	require.NoError(t, err)
	assert.Equal(t, uint64(42), balance)
}
