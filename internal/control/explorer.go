package control

import (
	"github.com/vietddude/btcprobe/internal/core/config"
	"github.com/vietddude/btcprobe/internal/infra/chain"
	"github.com/vietddude/btcprobe/internal/infra/chain/bitcoin"
	"github.com/vietddude/btcprobe/internal/infra/rpc"
)

// NewExplorer builds the explorer client and the Esplora adapter on top of it.
func NewExplorer(cfg config.ExplorerConfig) (*rpc.Client, chain.Adapter) {
	retry := cfg.Retry
	if retry.MaxAttempts <= 0 {
		retry = rpc.DefaultRetryConfig
	}

	p := rpc.NewHTTPProvider(cfg.Name, cfg.URL, cfg.Timeout)
	client := rpc.NewClient(p, retry)
	return client, bitcoin.NewEsploraAdapter(client)
}
