package domain

// AddressType is the script form an address commits to.
type AddressType string

const (
	AddressTypeLegacy       AddressType = "legacy"        // P2PKH (1...)
	AddressTypeNestedSegWit AddressType = "nested-segwit" // P2SH-P2WPKH (3...)
	AddressTypeNativeSegWit AddressType = "native-segwit" // P2WPKH (bc1q...)
)

// Label returns the human-readable name used in reports.
func (t AddressType) Label() string {
	switch t {
	case AddressTypeLegacy:
		return "Legacy (1...)"
	case AddressTypeNestedSegWit:
		return "SegWit Compat. (3...)"
	case AddressTypeNativeSegWit:
		return "Native SegWit (bc1q..)"
	default:
		return string(t)
	}
}

// SentinelAddress stands in for an address whose encoding could not be derived.
const SentinelAddress = "bech32-unavailable"

// Address is a derived address of a single key.
type Address struct {
	Type  AddressType
	Value string
	Err   error // set when Value is the sentinel
}

// Lookupable reports whether the address can be sent to an explorer.
func (a Address) Lookupable() bool {
	return a.Value != "" && a.Value != SentinelAddress
}
