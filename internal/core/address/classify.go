package address

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/vietddude/btcprobe/internal/core/domain"
)

// Classify parses a mainnet address and reports which of the supported forms it is.
// P2SH addresses are assumed to wrap P2WPKH.
func Classify(value string) (domain.Address, error) {
	decoded, err := btcutil.DecodeAddress(value, &chaincfg.MainNetParams)
	if err != nil {
		return domain.Address{}, fmt.Errorf("decode address %q: %w", value, err)
	}
	if !decoded.IsForNet(&chaincfg.MainNetParams) {
		return domain.Address{}, fmt.Errorf("address %q is not a mainnet address", value)
	}

	addr := domain.Address{Value: decoded.EncodeAddress()}
	switch decoded.(type) {
	case *btcutil.AddressPubKeyHash:
		addr.Type = domain.AddressTypeLegacy
	case *btcutil.AddressScriptHash:
		addr.Type = domain.AddressTypeNestedSegWit
	case *btcutil.AddressWitnessPubKeyHash:
		addr.Type = domain.AddressTypeNativeSegWit
	default:
		return domain.Address{}, fmt.Errorf("unsupported address type %T", decoded)
	}
	return addr, nil
}
