package wallet

import (
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"haw/internal/config"
	"haw/internal/crypto"
	"haw/internal/hoosat"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	os.Unsetenv(config.SessionEnvVar)

	s, err := NewStore(t.TempDir(), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Initialize([]byte("test-password")))
	return s
}

func TestInitialize_CreatesFiles(t *testing.T) {
	s := newTestStore(t)

	assert.True(t, s.Initialized())
	assert.FileExists(t, filepath.Join(s.Dir(), "wallets.enc"))
	assert.FileExists(t, filepath.Join(s.Dir(), "config.json"))
	assert.FileExists(t, filepath.Join(s.Dir(), "address-book.json"))
}

func TestInitialize_Twice(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.Initialize([]byte("other")), ErrAlreadyInitialized)
}

func TestUnlock_WrongPassword(t *testing.T) {
	s := newTestStore(t)
	s.Lock()

	assert.ErrorIs(t, s.Unlock([]byte("wrong")), crypto.ErrInvalidPassword)
	assert.NoError(t, s.Unlock([]byte("test-password")))
}

func TestCreateWallet(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateWallet("trading", hoosat.NetworkTestnet)
	require.NoError(t, err)
	assert.Equal(t, "trading", created.Name)
	assert.True(t, hoosat.ValidateAddress(created.Address, hoosat.NetworkTestnet))
	assert.Len(t, created.PrivateKey, 64)
}

func TestCreateWallet_DuplicateName(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateWallet("trading", hoosat.NetworkMainnet)
	require.NoError(t, err)

	_, err = s.CreateWallet("trading", hoosat.NetworkMainnet)
	assert.ErrorIs(t, err, ErrWalletExists)
}

func TestCreateWallet_BadInput(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateWallet("", hoosat.NetworkMainnet)
	assert.Error(t, err)

	_, err = s.CreateWallet("w", "devnet")
	assert.Error(t, err)
}

func TestCreateWallet_SurvivesReopen(t *testing.T) {
	s := newTestStore(t)
	created, err := s.CreateWallet("persistent", hoosat.NetworkMainnet)
	require.NoError(t, err)

	reopened, err := NewStore(s.Dir(), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, reopened.Unlock([]byte("test-password")))

	got, err := reopened.GetWallet("persistent")
	require.NoError(t, err)
	assert.Equal(t, created.Address, got.Address)
	assert.Equal(t, created.PrivateKey, got.PrivateKey)
}

func TestImportWallet_Hex(t *testing.T) {
	s := newTestStore(t)

	privateKey, publicKey, err := hoosat.GenerateKeyPair()
	require.NoError(t, err)

	imported, err := s.ImportWallet("imported", hex.EncodeToString(privateKey), hoosat.NetworkMainnet)
	require.NoError(t, err)

	expected, err := hoosat.AddressFromPublicKey(publicKey, hoosat.NetworkMainnet)
	require.NoError(t, err)
	assert.Equal(t, expected, imported.Address)
}

func TestImportWallet_WIFCarriesNetwork(t *testing.T) {
	s := newTestStore(t)

	privateKey, _, err := hoosat.GenerateKeyPair()
	require.NoError(t, err)
	wif, err := hoosat.EncodeWIF(privateKey, hoosat.NetworkMainnet, true)
	require.NoError(t, err)

	imported, err := s.ImportWallet("from-wif", wif, "")
	require.NoError(t, err)
	assert.Equal(t, hoosat.NetworkMainnet, imported.Network)
	assert.Equal(t, hex.EncodeToString(privateKey), imported.PrivateKey)
}

func TestImportWallet_GarbageKey(t *testing.T) {
	s := newTestStore(t)

	_, err := s.ImportWallet("bad", "neither-wif-nor-hex", "")
	assert.Error(t, err)
}

func TestListWallets_SortedWithoutKeys(t *testing.T) {
	s := newTestStore(t)
	for _, name := range []string{"charlie", "alpha", "bravo"} {
		_, err := s.CreateWallet(name, hoosat.NetworkTestnet)
		require.NoError(t, err)
	}

	infos, err := s.ListWallets()
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, "alpha", infos[0].Name)
	assert.Equal(t, "bravo", infos[1].Name)
	assert.Equal(t, "charlie", infos[2].Name)
}

func TestExportWallet_WIFRoundTrip(t *testing.T) {
	s := newTestStore(t)
	created, err := s.CreateWallet("export-me", hoosat.NetworkTestnet)
	require.NoError(t, err)

	exported, wif, err := s.ExportWallet("export-me")
	require.NoError(t, err)
	assert.Equal(t, created.PrivateKey, exported.PrivateKey)

	decoded, network, _, err := hoosat.DecodeWIF(wif)
	require.NoError(t, err)
	assert.Equal(t, hoosat.NetworkTestnet, network)
	assert.Equal(t, created.PrivateKey, hex.EncodeToString(decoded))
}

func TestDeleteWallet(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CreateWallet("doomed", hoosat.NetworkMainnet)
	require.NoError(t, err)

	require.NoError(t, s.DeleteWallet("doomed"))

	_, err = s.GetWallet("doomed")
	assert.ErrorIs(t, err, ErrWalletNotFound)

	assert.ErrorIs(t, s.DeleteWallet("doomed"), ErrWalletNotFound)
}

func TestChangePassword(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CreateWallet("survivor", hoosat.NetworkMainnet)
	require.NoError(t, err)

	require.NoError(t, s.ChangePassword([]byte("test-password"), []byte("new-password")))

	reopened, err := NewStore(s.Dir(), zerolog.Nop())
	require.NoError(t, err)
	assert.ErrorIs(t, reopened.Unlock([]byte("test-password")), crypto.ErrInvalidPassword)
	require.NoError(t, reopened.Unlock([]byte("new-password")))

	_, err = reopened.GetWallet("survivor")
	assert.NoError(t, err)
}

func TestAddressBook_AddListRemove(t *testing.T) {
	s := newTestStore(t)

	entry, err := s.AddAddress("exchange", "hoosat:qypexchange", "")
	require.NoError(t, err)
	assert.Equal(t, hoosat.NetworkMainnet, entry.Network)

	_, err = s.AddAddress("pool", "hoosattest:qyppool", hoosat.NetworkTestnet)
	require.NoError(t, err)

	entries, err := s.ListAddresses()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "exchange", entries[0].Label)
	assert.Equal(t, "pool", entries[1].Label)

	require.NoError(t, s.RemoveAddress("pool"))
	assert.ErrorIs(t, s.RemoveAddress("pool"), ErrLabelNotFound)
}

func TestAddAddress_RejectsForeignPrefix(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddAddress("bad", "kaspa:qypsomething", "")
	assert.Error(t, err)

	_, err = s.AddAddress("", "hoosat:qypvalid", "")
	assert.Error(t, err)
}

func TestResolveAddress_Precedence(t *testing.T) {
	s := newTestStore(t)

	created, err := s.CreateWallet("savings", hoosat.NetworkMainnet)
	require.NoError(t, err)

	_, err = s.AddAddress("exchange", "hoosat:qypexchange", "")
	require.NoError(t, err)

	// Label beats everything
	got, err := s.ResolveAddress("exchange")
	require.NoError(t, err)
	assert.Equal(t, "hoosat:qypexchange", got)

	// Then wallet name
	got, err = s.ResolveAddress("savings")
	require.NoError(t, err)
	assert.Equal(t, created.Address, got)

	// Then a literal prefixed address
	got, err = s.ResolveAddress("hoosat:qypliteral")
	require.NoError(t, err)
	assert.Equal(t, "hoosat:qypliteral", got)

	_, err = s.ResolveAddress("nothing-matches")
	assert.ErrorIs(t, err, ErrUnresolvable)
}

func TestAutoApprove_Policy(t *testing.T) {
	s := newTestStore(t)

	// Disabled globally by default
	assert.False(t, s.ShouldAutoApprove("bot", 1))

	require.NoError(t, s.SetAutoApproveEnabled(true))
	assert.False(t, s.ShouldAutoApprove("bot", 1), "no per-wallet rule yet")

	require.NoError(t, s.SetAutoApprove("bot", "50000000", true))
	assert.True(t, s.ShouldAutoApprove("bot", 50_000_000))
	assert.False(t, s.ShouldAutoApprove("bot", 50_000_001))
	assert.False(t, s.ShouldAutoApprove("other", 1))

	// Empty cap falls back to the global default (1 HTN)
	require.NoError(t, s.SetAutoApprove("bot", "", true))
	assert.True(t, s.ShouldAutoApprove("bot", 100_000_000))
	assert.False(t, s.ShouldAutoApprove("bot", 100_000_001))

	require.NoError(t, s.SetAutoApproveEnabled(false))
	assert.False(t, s.ShouldAutoApprove("bot", 1))
}

func TestSetAutoApprove_RejectsBadAmount(t *testing.T) {
	s := newTestStore(t)
	assert.Error(t, s.SetAutoApprove("bot", "1.5", true))
}

func TestConfig_TogglesPersist(t *testing.T) {
	s := newTestStore(t)

	assert.True(t, s.DryRun(), "dry-run defaults on")
	require.NoError(t, s.SetDryRun(false))
	require.NoError(t, s.SetDefaultNetwork(hoosat.NetworkMainnet))
	require.NoError(t, s.SetConfirmTransactions(false))

	reopened, err := NewStore(s.Dir(), zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, reopened.DryRun())
	assert.False(t, reopened.ShouldConfirm())
	assert.Equal(t, hoosat.NetworkMainnet, reopened.DefaultNetwork())
}

func TestTransactionLog_AppendAndHistory(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.LogTransaction("bot", "tx1", "hoosat:qypdest", 1000))
	require.NoError(t, s.LogTransaction("bot", "tx2", "hoosat:qypdest", 2000))
	require.NoError(t, s.LogTransaction("bot", "tx3", "hoosat:qypdest", 3000))

	all, err := s.TransactionHistory(0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "tx1", all[0].TxID)

	tail, err := s.TransactionHistory(2)
	require.NoError(t, err)
	require.Len(t, tail, 2)
	assert.Equal(t, "tx2", tail[0].TxID)
	assert.Equal(t, "tx3", tail[1].TxID)
	assert.Equal(t, "3000", tail[1].Amount)
}

func TestTransactionLog_DisabledIsNoOp(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetLogTransactions(false))

	require.NoError(t, s.LogTransaction("bot", "tx1", "hoosat:qypdest", 1000))
	entries, err := s.TransactionHistory(0)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLock_DropsAccess(t *testing.T) {
	s := newTestStore(t)
	_, err := s.CreateWallet("w", hoosat.NetworkMainnet)
	require.NoError(t, err)

	s.Lock()

	_, err = s.GetWallet("w")
	assert.ErrorIs(t, err, ErrLocked)
}
