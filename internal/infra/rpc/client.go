package rpc

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vietddude/btcprobe/internal/infra/rpc/routing"
)

// RPCClient is what chain adapters depend on.
type RPCClient interface {
	Execute(ctx context.Context, op Operation) (*Response, error)
}

// Client executes operations against a single provider with retry.
type Client struct {
	provider Provider
	retry    RetryConfig
	log      *slog.Logger
}

// NewClient creates a new client.
func NewClient(p Provider, retry RetryConfig) *Client {
	return &Client{
		provider: p,
		retry:    retry,
		log:      slog.Default(),
	}
}

// Execute runs op, retrying transient failures per the retry config.
func (c *Client) Execute(ctx context.Context, op Operation) (*Response, error) {
	resp, err := routing.ExecuteWithRetry(ctx, c.provider, op, c.retry)
	if err != nil {
		action := routing.ClassifyError(err)
		if action == routing.ActionFailover {
			c.log.Warn("Explorer is throttling requests",
				"provider", c.provider.GetName(),
				"operation", op.Name,
				"error", err,
			)
		}
		return nil, fmt.Errorf("%s %s: %w", c.provider.GetName(), op.Name, err)
	}
	return resp, nil
}

// Health returns the underlying provider's health.
func (c *Client) Health() HealthStatus {
	return c.provider.GetHealth()
}

// ProviderName returns the underlying provider's name.
func (c *Client) ProviderName() string {
	return c.provider.GetName()
}

// Close releases provider resources.
func (c *Client) Close() error {
	return c.provider.Close()
}
