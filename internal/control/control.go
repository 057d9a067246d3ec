package control

import (
	"context"

	"github.com/vietddude/btcprobe/internal/core/domain"
)

// KeySource produces fresh private keys as WIF strings.
type KeySource interface {
	Generate() (string, error)
}

// AddressDeriver computes the addresses of a compressed public key.
type AddressDeriver interface {
	DeriveAll(ctx context.Context, pubKey []byte) []domain.Address
}

// BalanceChecker resolves the balance of one address. It never fails;
// problems are reported through Balance.Status.
type BalanceChecker interface {
	Check(ctx context.Context, addr domain.Address) domain.Balance
}
