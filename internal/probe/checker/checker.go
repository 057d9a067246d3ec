// Package checker looks up address balances with a fixed courtesy delay.
package checker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/vietddude/btcprobe/internal/core/domain"
	"github.com/vietddude/btcprobe/internal/infra/chain"
	"github.com/vietddude/btcprobe/internal/probe/metrics"
)

// DefaultDelay is the pause before every explorer request.
const DefaultDelay = 500 * time.Millisecond

// Checker resolves balances for derived addresses.
// It never returns an error: failures become zero balances with status failed.
type Checker struct {
	source chain.BalanceSource
	delay  time.Duration
	log    *slog.Logger
}

// New creates a Checker. A negative delay is treated as zero.
func New(source chain.BalanceSource, delay time.Duration) *Checker {
	if delay < 0 {
		delay = 0
	}
	return &Checker{
		source: source,
		delay:  delay,
		log:    slog.Default(),
	}
}

// Check returns the confirmed balance of addr.
//
//   - sentinel or empty address: skipped, no request
//   - address unknown to the explorer: confirmed zero
//   - any other failure: failed, zero sats
func (c *Checker) Check(ctx context.Context, addr domain.Address) domain.Balance {
	bal := domain.Balance{Address: addr}

	if !addr.Lookupable() {
		bal.Status = domain.BalanceSkipped
		bal.Err = addr.Err
		c.record(bal)
		return bal
	}

	if err := sleep(ctx, c.delay); err != nil {
		bal.Status = domain.BalanceFailed
		bal.Err = err
		c.record(bal)
		return bal
	}

	stats, err := c.source.AddressStats(ctx, addr.Value)
	switch {
	case errors.Is(err, domain.ErrAddressNotFound):
		bal.Status = domain.BalanceConfirmed
	case err != nil:
		c.log.Debug("Balance lookup failed", "address", addr.Value, "error", err)
		bal.Status = domain.BalanceFailed
		bal.Err = err
	default:
		bal.Status = domain.BalanceConfirmed
		bal.Sats = stats.Balance()
		bal.Unconfirmed = stats.Unconfirmed
	}

	c.record(bal)
	return bal
}

func (c *Checker) record(bal domain.Balance) {
	metrics.BalanceLookups.WithLabelValues(string(bal.Address.Type), string(bal.Status)).Inc()
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
