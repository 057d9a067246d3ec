package chain

import (
	"context"
)

// AddressStats holds the confirmed on-chain totals of an address.
type AddressStats struct {
	Address     string
	FundedSats  int64
	SpentSats   int64
	TxCount     int64
	Unconfirmed int64 // net mempool delta, informational only
}

// Balance returns funded minus spent.
func (s AddressStats) Balance() int64 {
	return s.FundedSats - s.SpentSats
}

// BalanceSource looks up address totals.
type BalanceSource interface {
	// AddressStats returns the confirmed totals of an address.
	// Addresses the backend has never seen yield an error wrapping domain.ErrAddressNotFound.
	AddressStats(ctx context.Context, address string) (*AddressStats, error)
}

// Adapter defines the chain-level interface the probe talks to.
type Adapter interface {
	BalanceSource

	// EncodeP2WPKH asks the backend for the bech32 form of a witness program.
	EncodeP2WPKH(ctx context.Context, program []byte) (string, error)

	// GetChainID returns the chain identifier
	GetChainID() string
}
