package domain

// BalanceStatus tells how a balance value was obtained.
type BalanceStatus string

const (
	// BalanceConfirmed means the explorer answered (a 404 counts as a confirmed zero).
	BalanceConfirmed BalanceStatus = "confirmed"
	// BalanceFailed means the lookup failed; Sats is zero.
	BalanceFailed BalanceStatus = "failed"
	// BalanceSkipped means no lookup was attempted; Sats is zero.
	BalanceSkipped BalanceStatus = "skipped"
)

// Balance is the result of a single address lookup.
type Balance struct {
	Address     Address
	Sats        int64
	Unconfirmed int64 // net mempool delta, never part of Sats
	Status      BalanceStatus
	Err         error
}

// KeyReport is everything learned about one generated key.
type KeyReport struct {
	Index         int
	SourceWIF     string
	CompressedWIF string
	PublicKeyHex  string
	Balances      []Balance
	TotalSats     int64
	Err           error // set when the key could not be normalized
}

// Funded reports whether any of the key's addresses hold coins.
func (r *KeyReport) Funded() bool {
	return r.TotalSats > 0
}

// FailedLookups counts balances that could not be fetched.
func (r *KeyReport) FailedLookups() int {
	n := 0
	for _, b := range r.Balances {
		if b.Status == BalanceFailed {
			n++
		}
	}
	return n
}

// Summary aggregates a whole probe run.
type Summary struct {
	RunID           string
	KeysRequested   int
	KeysProcessed   int
	KeysWithBalance int
	InvalidKeys     int
	FailedLookups   int
	TotalSats       int64
}
