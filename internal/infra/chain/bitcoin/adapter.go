package bitcoin

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"

	"github.com/vietddude/btcprobe/internal/core/domain"
	"github.com/vietddude/btcprobe/internal/infra/chain"
	"github.com/vietddude/btcprobe/internal/infra/rpc"
)

// ChainID identifies Bitcoin mainnet.
const ChainID = "bitcoin"

var _ chain.Adapter = (*EsploraAdapter)(nil)

// EsploraAdapter talks to an Esplora-compatible REST API (blockstream.info, mempool.space).
type EsploraAdapter struct {
	client rpc.RPCClient
	params *chaincfg.Params
	log    *slog.Logger
}

// NewEsploraAdapter creates a mainnet adapter on top of client.
func NewEsploraAdapter(client rpc.RPCClient) *EsploraAdapter {
	return &EsploraAdapter{
		client: client,
		params: &chaincfg.MainNetParams,
		log:    slog.Default(),
	}
}

type txoStats struct {
	FundedTxoSum int64 `json:"funded_txo_sum"`
	SpentTxoSum  int64 `json:"spent_txo_sum"`
	TxCount      int64 `json:"tx_count"`
}

type addressResponse struct {
	Address      string    `json:"address"`
	ChainStats   *txoStats `json:"chain_stats"`
	MempoolStats *txoStats `json:"mempool_stats"`
}

// AddressStats fetches GET /address/{address}.
func (a *EsploraAdapter) AddressStats(ctx context.Context, address string) (*chain.AddressStats, error) {
	op := rpc.NewGetOperation("address/" + url.PathEscape(address))
	resp, err := a.client.Execute(ctx, op)
	if err != nil {
		if rpc.IsStatus(err, http.StatusNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrAddressNotFound, address)
		}
		return nil, fmt.Errorf("failed to get address stats: %w", err)
	}

	var data addressResponse
	if err := json.Unmarshal(resp.Body, &data); err != nil {
		return nil, fmt.Errorf("invalid address stats response: %w", err)
	}

	stats := &chain.AddressStats{Address: address}
	// A missing chain_stats object counts as an untouched address
	if data.ChainStats != nil {
		stats.FundedSats = data.ChainStats.FundedTxoSum
		stats.SpentSats = data.ChainStats.SpentTxoSum
		stats.TxCount = data.ChainStats.TxCount
	}
	if data.MempoolStats != nil {
		stats.Unconfirmed = data.MempoolStats.FundedTxoSum - data.MempoolStats.SpentTxoSum
	}

	return stats, nil
}

// EncodeP2WPKH posts the hex witness program to /address-prefix/bc and
// checks the returned text is the matching mainnet P2WPKH address.
func (a *EsploraAdapter) EncodeP2WPKH(ctx context.Context, program []byte) (string, error) {
	op := rpc.NewPostOperation(
		"address-prefix/"+a.params.Bech32HRPSegwit,
		[]byte(hex.EncodeToString(program)),
		"text/plain",
	)
	resp, err := a.client.Execute(ctx, op)
	if err != nil {
		return "", fmt.Errorf("failed to encode witness program: %w", err)
	}

	encoded := strings.TrimSpace(string(resp.Body))
	if encoded == "" {
		return "", fmt.Errorf("empty bech32 response")
	}

	decoded, err := btcutil.DecodeAddress(encoded, a.params)
	if err != nil {
		return "", fmt.Errorf("invalid bech32 response %q: %w", encoded, err)
	}
	wpkh, ok := decoded.(*btcutil.AddressWitnessPubKeyHash)
	if !ok || !bytes.Equal(wpkh.WitnessProgram(), program) {
		return "", fmt.Errorf("bech32 response %q does not encode the requested program", encoded)
	}

	return encoded, nil
}

// GetChainID returns the chain identifier.
func (a *EsploraAdapter) GetChainID() string {
	return ChainID
}
