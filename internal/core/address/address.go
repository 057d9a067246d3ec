// Package address derives Bitcoin mainnet addresses from a compressed public key.
//
// Three forms are supported:
//   - Legacy P2PKH (1...)
//   - Nested SegWit P2SH-P2WPKH (3...)
//   - Native SegWit P2WPKH (bc1q...), encoded through a Bech32Encoder
package address

import (
	"context"
	"crypto/sha256"
	"fmt"
	"log/slog"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/chaincfg"
	"golang.org/x/crypto/ripemd160"

	"github.com/vietddude/btcprobe/internal/core/domain"
)

// CompressedPubKeyLen is the size of a SEC1 compressed public key.
const CompressedPubKeyLen = 33

// Bech32Encoder turns a 20-byte P2WPKH witness program into a bech32 address.
type Bech32Encoder interface {
	EncodeP2WPKH(ctx context.Context, program []byte) (string, error)
}

// Deriver computes all address forms for a public key.
type Deriver struct {
	bech32 Bech32Encoder
	log    *slog.Logger
}

// NewDeriver creates a Deriver. A nil encoder selects LocalBech32.
func NewDeriver(enc Bech32Encoder) *Deriver {
	if enc == nil {
		enc = LocalBech32{}
	}
	return &Deriver{
		bech32: enc,
		log:    slog.Default(),
	}
}

// DeriveAll returns the legacy, native SegWit and nested SegWit addresses, in that order.
func (d *Deriver) DeriveAll(ctx context.Context, pubKey []byte) []domain.Address {
	legacy := domain.Address{Type: domain.AddressTypeLegacy}
	legacy.Value, legacy.Err = Legacy(pubKey)

	native := d.NativeSegWit(ctx, pubKey)

	nested := domain.Address{Type: domain.AddressTypeNestedSegWit}
	nested.Value, nested.Err = NestedSegWit(pubKey)

	return []domain.Address{legacy, native, nested}
}

// NativeSegWit derives the P2WPKH address. Any encoder failure yields the
// sentinel address with Err describing the cause.
func (d *Deriver) NativeSegWit(ctx context.Context, pubKey []byte) domain.Address {
	addr := domain.Address{Type: domain.AddressTypeNativeSegWit}

	if len(pubKey) != CompressedPubKeyLen {
		addr.Value = domain.SentinelAddress
		addr.Err = fmt.Errorf("%w: expected %d bytes, got %d",
			domain.ErrInvalidPublicKey, CompressedPubKeyLen, len(pubKey))
		return addr
	}

	encoded, err := d.bech32.EncodeP2WPKH(ctx, Hash160(pubKey))
	if err != nil {
		d.log.Warn("bech32 derivation failed", "error", err)
		addr.Value = domain.SentinelAddress
		addr.Err = fmt.Errorf("%w: %v", domain.ErrBech32Unavailable, err)
		return addr
	}

	addr.Value = encoded
	return addr
}

// Legacy derives the P2PKH address of a serialized public key.
func Legacy(pubKey []byte) (string, error) {
	if len(pubKey) != CompressedPubKeyLen && len(pubKey) != 65 {
		return "", fmt.Errorf("%w: unexpected length %d", domain.ErrInvalidPublicKey, len(pubKey))
	}

	addr, err := btcutil.NewAddressPubKeyHash(Hash160(pubKey), &chaincfg.MainNetParams)
	if err != nil {
		return "", fmt.Errorf("p2pkh: %w", err)
	}
	return addr.EncodeAddress(), nil
}

// NestedSegWit derives the P2SH-P2WPKH address.
// Address = Base58Check(0x05 || HASH160(0x00 0x14 || HASH160(pubkey)))
func NestedSegWit(pubKey []byte) (string, error) {
	if len(pubKey) != CompressedPubKeyLen {
		return "", fmt.Errorf("%w: compressed key of %d bytes required, got %d",
			domain.ErrInvalidPublicKey, CompressedPubKeyLen, len(pubKey))
	}

	redeemScript := RedeemScript(pubKey)
	return base58.CheckEncode(Hash160(redeemScript), chaincfg.MainNetParams.ScriptHashAddrID), nil
}

// RedeemScript builds the P2WPKH witness script OP_0 <20-byte hash160(pubkey)>.
func RedeemScript(pubKey []byte) []byte {
	script := make([]byte, 0, 22)
	script = append(script, 0x00, 0x14)
	return append(script, Hash160(pubKey)...)
}

// Hash160 computes RIPEMD160(SHA256(data)).
func Hash160(data []byte) []byte {
	sha := sha256.Sum256(data)
	h := ripemd160.New()
	h.Write(sha[:])
	return h.Sum(nil)
}
