package account

import (
	"bytes"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

const (
	// AddressVersion is the version byte of an address.
	AddressVersion byte = 1
	// AddressLength is the length of a decoded address.
	AddressLength = 26
	// AssetIDLength is the length of a decoded asset id.
	AssetIDLength = 32
	// PublicKeyLength is the length of a decoded public key.
	PublicKeyLength = 32

	addressHashLength     = 20
	addressChecksumLength = 4

	ChainIDMainNet  byte = 'W'
	ChainIDTestNet  byte = 'T'
	ChainIDStageNet byte = 'S'
)

var (
	ErrInvalidAddress   = errors.New("invalid address")
	ErrInvalidAssetID   = errors.New("invalid asset id")
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// Address is a decoded account address.
type Address [AddressLength]byte

// secureHash is keccak256(blake2b256(data)).
func secureHash(data []byte) []byte {
	b := blake2b.Sum256(data)
	k := sha3.NewLegacyKeccak256()
	k.Write(b[:])
	return k.Sum(nil)
}

// NewAddressFromPublicKey derives the address of a public key on the given chain.
func NewAddressFromPublicKey(chainID byte, publicKey []byte) (Address, error) {
	var addr Address
	if len(publicKey) != PublicKeyLength {
		return addr, errors.Wrapf(ErrInvalidPublicKey, "invalid length: %d", len(publicKey))
	}

	addr[0] = AddressVersion
	addr[1] = chainID
	copy(addr[2:2+addressHashLength], secureHash(publicKey)[:addressHashLength])
	copy(addr[2+addressHashLength:], secureHash(addr[:2+addressHashLength])[:addressChecksumLength])
	return addr, nil
}

// ParseAddress decodes and validates a base58 address.
func ParseAddress(s string) (Address, error) {
	var addr Address

	data, err := base58.Decode(s)
	if err != nil {
		return addr, errors.Wrapf(ErrInvalidAddress, "%s: %s", s, err)
	}
	if len(data) != AddressLength {
		return addr, errors.Wrapf(ErrInvalidAddress, "%s: invalid length %d", s, len(data))
	}
	if data[0] != AddressVersion {
		return addr, errors.Wrapf(ErrInvalidAddress, "%s: unsupported version %d", s, data[0])
	}

	body := data[:AddressLength-addressChecksumLength]
	checksum := data[AddressLength-addressChecksumLength:]
	if !bytes.Equal(secureHash(body)[:addressChecksumLength], checksum) {
		return addr, errors.Wrapf(ErrInvalidAddress, "%s: checksum mismatch", s)
	}

	copy(addr[:], data)
	return addr, nil
}

// ParseAddressForChain decodes an address and checks its chain id.
func ParseAddressForChain(s string, chainID byte) (Address, error) {
	addr, err := ParseAddress(s)
	if err != nil {
		return addr, err
	}
	if addr.ChainID() != chainID {
		return addr, errors.Wrapf(ErrInvalidAddress, "%s: chain id %q, expected %q", s, addr.ChainID(), chainID)
	}
	return addr, nil
}

func (a Address) ChainID() byte {
	return a[1]
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

// AssetID is a decoded asset id.
type AssetID [AssetIDLength]byte

// ParseAssetID decodes a base58 asset id.
func ParseAssetID(s string) (AssetID, error) {
	var id AssetID

	data, err := base58.Decode(s)
	if err != nil {
		return id, errors.Wrapf(ErrInvalidAssetID, "%s: %s", s, err)
	}
	if len(data) != AssetIDLength {
		return id, errors.Wrapf(ErrInvalidAssetID, "%s: invalid length %d", s, len(data))
	}

	copy(id[:], data)
	return id, nil
}

func (id AssetID) String() string {
	return base58.Encode(id[:])
}

// PublicKey is a decoded account public key.
type PublicKey [PublicKeyLength]byte

// ParsePublicKey decodes a base58 public key.
func ParsePublicKey(s string) (PublicKey, error) {
	var pk PublicKey

	data, err := base58.Decode(s)
	if err != nil {
		return pk, errors.Wrapf(ErrInvalidPublicKey, "%s: %s", s, err)
	}
	if len(data) != PublicKeyLength {
		return pk, errors.Wrapf(ErrInvalidPublicKey, "%s: invalid length %d", s, len(data))
	}

	copy(pk[:], data)
	return pk, nil
}

// Address returns the address of the public key on the given chain.
func (pk PublicKey) Address(chainID byte) Address {
	// length is fixed, so this cannot fail
	addr, _ := NewAddressFromPublicKey(chainID, pk[:])
	return addr
}

func (pk PublicKey) String() string {
	return base58.Encode(pk[:])
}
