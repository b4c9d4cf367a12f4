package account_test

import (
	"bytes"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/require"

	"github.com/snsbt/governance/pkg/model/account"
)

func testPublicKey(seed byte) []byte {
	return bytes.Repeat([]byte{seed}, account.PublicKeyLength)
}

func TestAddressFromPublicKey(t *testing.T) {

	addr, err := account.NewAddressFromPublicKey(account.ChainIDTestNet, testPublicKey(7))
	require.NoError(t, err)
	require.Equal(t, account.AddressVersion, addr[0])
	require.Equal(t, account.ChainIDTestNet, addr.ChainID())

	parsed, err := account.ParseAddress(addr.String())
	require.NoError(t, err)
	require.Equal(t, addr, parsed)

	_, err = account.ParseAddressForChain(addr.String(), account.ChainIDTestNet)
	require.NoError(t, err)

	_, err = account.ParseAddressForChain(addr.String(), account.ChainIDMainNet)
	require.ErrorIs(t, err, account.ErrInvalidAddress)

	_, err = account.NewAddressFromPublicKey(account.ChainIDTestNet, []byte{1, 2, 3})
	require.ErrorIs(t, err, account.ErrInvalidPublicKey)
}

func TestParseAddressInvalid(t *testing.T) {

	addr, err := account.NewAddressFromPublicKey(account.ChainIDMainNet, testPublicKey(1))
	require.NoError(t, err)

	badChecksum := addr
	badChecksum[account.AddressLength-1] ^= 0xff

	badVersion := addr
	badVersion[0] = 2

	for _, s := range []string{
		"",
		"0OIl",
		base58.Encode(addr[:20]),
		badChecksum.String(),
		badVersion.String(),
	} {
		_, err := account.ParseAddress(s)
		require.ErrorIs(t, err, account.ErrInvalidAddress, s)
	}
}

func TestPublicKeyAndAssetID(t *testing.T) {

	pkString := base58.Encode(testPublicKey(3))
	pk, err := account.ParsePublicKey(pkString)
	require.NoError(t, err)
	require.Equal(t, pkString, pk.String())

	fromKey, err := account.NewAddressFromPublicKey(account.ChainIDStageNet, testPublicKey(3))
	require.NoError(t, err)
	require.Equal(t, fromKey, pk.Address(account.ChainIDStageNet))

	_, err = account.ParsePublicKey(base58.Encode([]byte{1, 2}))
	require.ErrorIs(t, err, account.ErrInvalidPublicKey)

	assetString := base58.Encode(bytes.Repeat([]byte{9}, account.AssetIDLength))
	asset, err := account.ParseAssetID(assetString)
	require.NoError(t, err)
	require.Equal(t, assetString, asset.String())

	_, err = account.ParseAssetID("WAVES")
	require.ErrorIs(t, err, account.ErrInvalidAssetID)
}
