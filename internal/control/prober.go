package control

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vietddude/btcprobe/internal/core/address"
	"github.com/vietddude/btcprobe/internal/core/config"
	"github.com/vietddude/btcprobe/internal/core/domain"
	"github.com/vietddude/btcprobe/internal/core/keys"
	"github.com/vietddude/btcprobe/internal/infra/rpc"
	"github.com/vietddude/btcprobe/internal/probe/checker"
	"github.com/vietddude/btcprobe/internal/probe/health"
	"github.com/vietddude/btcprobe/internal/probe/metrics"
	"github.com/vietddude/btcprobe/internal/probe/report"
)

// Prober is the main application struct that drives the key pipeline.
type Prober struct {
	cfg          Config
	runID        string
	keys         KeySource
	deriver      AddressDeriver
	checker      BalanceChecker
	reporter     *report.Reporter
	client       *rpc.Client
	healthServer *health.Server
	log          *slog.Logger

	mu      sync.RWMutex
	summary domain.Summary
}

// Config holds the application configuration.
type Config struct {
	Keys           int
	SatoshisPerBTC int64
	RequestDelay   time.Duration
	Bech32         string // config.Bech32Local or config.Bech32Remote
	Explorer       config.ExplorerConfig
	MetricsPort    int       // 0 = no health/metrics server
	Output         io.Writer // defaults to stdout
}

// NewProber creates a new Prober with all dependencies initialized.
func NewProber(cfg Config) (*Prober, error) {
	if cfg.Keys < 0 {
		return nil, fmt.Errorf("keys must not be negative, got %d", cfg.Keys)
	}
	if cfg.Explorer.URL == "" {
		return nil, errors.New("explorer url is required")
	}

	client, adapter := NewExplorer(cfg.Explorer)

	var enc address.Bech32Encoder = address.LocalBech32{}
	switch cfg.Bech32 {
	case "", config.Bech32Local:
	case config.Bech32Remote:
		enc = adapter
	default:
		return nil, fmt.Errorf("unknown bech32 mode %q", cfg.Bech32)
	}

	p := newProber(
		cfg,
		keys.NewGenerator(nil),
		address.NewDeriver(enc),
		checker.New(adapter, cfg.RequestDelay),
	)
	p.client = client
	p.log.Debug("Explorer configured",
		"chain", adapter.GetChainID(),
		"provider", client.ProviderName(),
		"url", cfg.Explorer.URL,
	)

	if cfg.MetricsPort > 0 {
		p.healthServer = health.NewServer(health.NewMonitor(client, p), cfg.MetricsPort)
	}

	return p, nil
}

func newProber(cfg Config, ks KeySource, d AddressDeriver, c BalanceChecker) *Prober {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	runID := uuid.NewString()

	return &Prober{
		cfg:      cfg,
		runID:    runID,
		keys:     ks,
		deriver:  d,
		checker:  c,
		reporter: report.NewReporter(out, cfg.SatoshisPerBTC),
		log:      slog.Default().With("run_id", runID),
		summary: domain.Summary{
			RunID:         runID,
			KeysRequested: cfg.Keys,
		},
	}
}

// Start starts background components (the health server, if enabled).
func (p *Prober) Start(ctx context.Context) error {
	if p.healthServer == nil {
		return nil
	}

	go func() {
		if err := p.healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			p.log.Error("Health server failed", "error", err)
		}
	}()
	p.log.Info("Health server started", "port", p.cfg.MetricsPort)
	return nil
}

// Stop stops background components and releases the explorer client.
func (p *Prober) Stop(ctx context.Context) error {
	var err error
	if p.healthServer != nil {
		err = p.healthServer.Stop(ctx)
	}
	if p.client != nil {
		if cerr := p.client.Close(); cerr != nil {
			p.log.Warn("Failed to close explorer client", "error", cerr)
		}
	}
	return err
}

// Run processes the configured number of keys and prints a summary.
// A cancelled context stops the loop between keys; the summary of the
// work done so far is still printed and ctx.Err() is returned.
func (p *Prober) Run(ctx context.Context) (domain.Summary, error) {
	n := p.cfg.Keys
	p.reporter.Header(n)
	p.log.Info("Probe started", "keys", n, "bech32", p.cfg.Bech32)

	var runErr error
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		p.reporter.KeyStart(i, n)
		rep, err := p.ProbeKey(ctx, i)
		if err != nil {
			runErr = err
			break
		}
		if err := ctx.Err(); err != nil {
			// Interrupted mid-key: the result is incomplete
			runErr = err
			break
		}

		p.reporter.Key(rep)
		p.record(rep)
	}

	summary := p.Progress()
	p.reporter.Summary(summary)

	if runErr != nil {
		p.log.Warn("Probe stopped early", "processed", summary.KeysProcessed, "error", runErr)
		return summary, runErr
	}

	p.log.Info("Probe finished",
		"processed", summary.KeysProcessed,
		"with_balance", summary.KeysWithBalance,
		"failed_lookups", summary.FailedLookups,
	)
	return summary, nil
}

// ProbeKey generates one key and resolves the balances of its addresses.
// The only error is a failing random source; invalid keys are reported in KeyReport.Err.
func (p *Prober) ProbeKey(ctx context.Context, index int) (*domain.KeyReport, error) {
	wif, err := p.keys.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate key #%d: %w", index, err)
	}

	rep := &domain.KeyReport{Index: index, SourceWIF: wif}

	km, err := keys.Normalize(wif)
	if err != nil {
		p.log.Warn("Invalid private key", "index", index, "wif", keys.Preview(wif, 10), "error", err)
		rep.Err = err
		return rep, nil
	}
	rep.CompressedWIF = km.CompressedWIF
	rep.PublicKeyHex = km.PublicKeyHex

	for _, addr := range p.deriver.DeriveAll(ctx, km.PublicKey) {
		bal := p.checker.Check(ctx, addr)
		rep.Balances = append(rep.Balances, bal)
		rep.TotalSats += bal.Sats
	}

	return rep, nil
}

// Progress returns a snapshot of the run counters.
func (p *Prober) Progress() domain.Summary {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.summary
}

// RunID returns the identifier of this run.
func (p *Prober) RunID() string {
	return p.runID
}

func (p *Prober) record(rep *domain.KeyReport) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.summary.KeysProcessed++
	if rep.Err != nil {
		p.summary.InvalidKeys++
		metrics.KeysProcessed.WithLabelValues("invalid").Inc()
		return
	}
	metrics.KeysProcessed.WithLabelValues("ok").Inc()

	p.summary.FailedLookups += rep.FailedLookups()
	if rep.Funded() {
		p.summary.KeysWithBalance++
		p.summary.TotalSats += rep.TotalSats
		metrics.KeysWithBalance.Inc()
		p.log.Info("Key with balance found", "index", rep.Index, "sats", rep.TotalSats)
	}
}
