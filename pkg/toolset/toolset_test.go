package toolset

import (
	"bytes"
	"encoding/hex"
	"path/filepath"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"

	coreDatabase "github.com/snsbt/governance/core/database"
	"github.com/snsbt/governance/pkg/basicauth"
	"github.com/snsbt/governance/pkg/database"
	"github.com/snsbt/governance/pkg/model/account"
	"github.com/snsbt/governance/pkg/model/ledger"
)

func TestNewPasswordHash(t *testing.T) {
	result, err := newPasswordHash([]byte("secret"))
	require.NoError(t, err)

	salt, err := hex.DecodeString(result.PasswordSalt)
	require.NoError(t, err)
	require.Len(t, salt, 32)

	hash, err := hex.DecodeString(result.PasswordHash)
	require.NoError(t, err)

	valid, err := basicauth.VerifyPassword([]byte("secret"), salt, hash)
	require.NoError(t, err)
	require.True(t, valid)

	valid, err = basicauth.VerifyPassword([]byte("wrong"), salt, hash)
	require.NoError(t, err)
	require.False(t, valid)
}

func TestNewAddressInfo(t *testing.T) {
	publicKey := bytes.Repeat([]byte{7}, account.PublicKeyLength)
	expected, err := account.NewAddressFromPublicKey(account.ChainIDTestNet, publicKey)
	require.NoError(t, err)

	info, err := newAddressInfo(base58.Encode(publicKey), "T")
	require.NoError(t, err)
	require.Equal(t, expected.String(), info.Address)
	require.Equal(t, "T", info.ChainID)

	_, err = newAddressInfo(base58.Encode(publicKey), "TT")
	require.Error(t, err)

	_, err = newAddressInfo(base58.Encode(publicKey[:10]), "T")
	require.ErrorIs(t, err, account.ErrInvalidPublicKey)
}

func TestLoadDatabaseInfo(t *testing.T) {
	dbPath := t.TempDir()

	governanceDB, err := database.DatabaseWithDefaultSettings(filepath.Join(dbPath, coreDatabase.GovernanceDatabaseDirectoryName), true, database.EnginePebble)
	require.NoError(t, err)
	governanceLedger := ledger.New(governanceDB.KVStore())
	require.NoError(t, governanceLedger.SetEntries(
		ledger.NewIntegerEntry("balance_a", 100),
		ledger.NewIntegerEntry("balance_b", 200),
	))
	require.NoError(t, governanceLedger.Close())

	registryDB, err := database.DatabaseWithDefaultSettings(filepath.Join(dbPath, coreDatabase.RegistryDatabaseDirectoryName), true, database.EnginePebble)
	require.NoError(t, err)
	registryLedger := ledger.New(registryDB.KVStore())
	require.NoError(t, registryLedger.SetEntries(ledger.NewStringEntry("proposal_1", "data")))
	require.NoError(t, registryLedger.Close())

	results, err := loadDatabaseInfo(dbPath)
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.Equal(t, coreDatabase.GovernanceDatabaseDirectoryName, results[0].Name)
	require.Equal(t, string(database.EnginePebble), results[0].Engine)
	require.Equal(t, 2, results[0].Entries)
	require.False(t, results[0].Corrupted)
	require.Greater(t, results[0].SizeBytes, int64(0))

	require.Equal(t, coreDatabase.RegistryDatabaseDirectoryName, results[1].Name)
	require.Equal(t, 1, results[1].Entries)
}

func TestLoadDatabaseInfoMissing(t *testing.T) {
	_, err := loadDatabaseInfo(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
}
