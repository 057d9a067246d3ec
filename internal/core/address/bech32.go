package address

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
)

// LocalBech32 encodes witness programs with the BIP-173 implementation in btcutil.
type LocalBech32 struct{}

// EncodeP2WPKH implements Bech32Encoder.
func (LocalBech32) EncodeP2WPKH(_ context.Context, program []byte) (string, error) {
	addr, err := btcutil.NewAddressWitnessPubKeyHash(program, &chaincfg.MainNetParams)
	if err != nil {
		return "", fmt.Errorf("p2wpkh: %w", err)
	}
	return addr.EncodeAddress(), nil
}
