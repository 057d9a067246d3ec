// Package report renders probe results for humans.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/vietddude/btcprobe/internal/core/domain"
	"github.com/vietddude/btcprobe/internal/core/keys"
)

// DefaultSatoshisPerBTC is the number of satoshis in one bitcoin.
const DefaultSatoshisPerBTC int64 = 100_000_000

const (
	rule       = "======================================================"
	previewLen = 10
)

// Reporter writes the per-key and summary output.
// Write errors are ignored; output never affects the run.
type Reporter struct {
	w              io.Writer
	satoshisPerBTC int64
}

// NewReporter creates a Reporter. A non-positive satoshisPerBTC falls back to the default.
func NewReporter(w io.Writer, satoshisPerBTC int64) *Reporter {
	if satoshisPerBTC <= 0 {
		satoshisPerBTC = DefaultSatoshisPerBTC
	}
	return &Reporter{w: w, satoshisPerBTC: satoshisPerBTC}
}

// Header prints the banner and how many keys will be checked.
func (r *Reporter) Header(keys int) {
	r.println(rule)
	r.println("  Bitcoin Key Generator and Balance Probe")
	r.println(rule)
	r.printf("Generating and checking %d private keys.\n", keys)
}

// KeyStart announces iteration i (1-based) of n.
func (r *Reporter) KeyStart(i, n int) {
	r.printf("\n--- Checking key #%d of %d ---\n", i, n)
}

// Key prints the result of one iteration.
func (r *Reporter) Key(rep *domain.KeyReport) {
	if rep.Err != nil {
		r.printf("Error: private key '%s' is not a valid WIF: %v\n", keys.Preview(rep.SourceWIF, previewLen), rep.Err)
		return
	}

	r.printf("Private key (compressed): %s\n", rep.CompressedWIF)
	for _, b := range rep.Balances {
		r.Balance(b)
	}

	btc := r.BTC(rep.TotalSats)
	if rep.Funded() {
		bang := strings.Repeat("!", 20)
		r.printf("\n%s\n", bang)
		r.println("SUCCESS: FOUND A WALLET WITH A BALANCE!")
		r.printf("TOTAL BALANCE: %.8f BTC (%d sats)\n", btc, rep.TotalSats)
		r.printf("%s\n\n", bang)
		return
	}

	line := fmt.Sprintf("TOTAL BALANCE: %.8f BTC. As expected, the balance is zero.", btc)
	if n := rep.FailedLookups(); n > 0 {
		line += fmt.Sprintf(" (%d lookups failed)", n)
	}
	r.println(line)
}

// Balance prints a single address line.
func (r *Reporter) Balance(b domain.Balance) {
	label := b.Address.Type.Label() + ":"
	line := fmt.Sprintf("  %-24s %-42s | Balance: %d sats", label, b.Address.Value, b.Sats)
	if b.Unconfirmed != 0 {
		line += fmt.Sprintf(" (unconfirmed: %+d sats)", b.Unconfirmed)
	}
	switch b.Status {
	case domain.BalanceFailed:
		line += " (lookup failed)"
	case domain.BalanceSkipped:
		line += " (not checked)"
	}
	r.println(line)
}

// Summary prints the end-of-run totals.
func (r *Reporter) Summary(s domain.Summary) {
	r.printf("\n%s\n", rule)
	r.println("Process finished.")
	r.printf("Keys checked: %d\n", s.KeysProcessed)
	r.printf("Keys with balance found: %d\n", s.KeysWithBalance)
	if s.InvalidKeys > 0 {
		r.printf("Invalid keys: %d\n", s.InvalidKeys)
	}
	if s.FailedLookups > 0 {
		r.printf("Failed lookups: %d\n", s.FailedLookups)
	}
	r.println(rule)
}

// BTC converts satoshis to bitcoin.
func (r *Reporter) BTC(sats int64) float64 {
	return float64(sats) / float64(r.satoshisPerBTC)
}

func (r *Reporter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.w, format, args...)
}

func (r *Reporter) println(s string) {
	_, _ = fmt.Fprintln(r.w, s)
}
