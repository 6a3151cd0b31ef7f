package blockchain

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/trebuchet-org/proxyguard/internal/domain/config"
	"github.com/trebuchet-org/proxyguard/internal/usecase"
	"golang.org/x/time/rate"
)

// Client implements usecase.ChainReader over ethclient. Every request is
// rate limited, bounded by the per-call timeout and retried on transport
// failures. JSON-RPC errors such as reverts are returned immediately.
type Client struct {
	eth         *ethclient.Client
	limiter     *rate.Limiter // nil disables limiting
	callTimeout time.Duration
	maxTries    uint
	newBackOff  func() backoff.BackOff
	log         *slog.Logger
}

// NewClient wraps an ethclient with the configured resilience settings
func NewClient(eth *ethclient.Client, cfg config.RPCConfig, log *slog.Logger) *Client {
	c := &Client{
		eth:         eth,
		callTimeout: cfg.CallTimeout,
		maxTries:    cfg.MaxRetries + 1,
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 200 * time.Millisecond
			b.MaxInterval = 2 * time.Second
			return b
		},
		log: log,
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c
}

// ChainID returns the chain served by the endpoint
func (c *Client) ChainID(ctx context.Context) (uint64, error) {
	id, err := do(ctx, c, "eth_chainId", func(ctx context.Context) (uint64, error) {
		id, err := c.eth.ChainID(ctx)
		if err != nil {
			return 0, err
		}
		return id.Uint64(), nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get chain ID: %w", err)
	}
	return id, nil
}

// CodeAt returns the bytecode at account in the latest block
func (c *Client) CodeAt(ctx context.Context, account common.Address) ([]byte, error) {
	code, err := do(ctx, c, "eth_getCode", func(ctx context.Context) ([]byte, error) {
		return c.eth.CodeAt(ctx, account, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get code at %s: %w", account.Hex(), err)
	}
	return code, nil
}

// StorageAt reads one storage word of account in the latest block
func (c *Client) StorageAt(ctx context.Context, account common.Address, slot common.Hash) (common.Hash, error) {
	word, err := do(ctx, c, "eth_getStorageAt", func(ctx context.Context) ([]byte, error) {
		return c.eth.StorageAt(ctx, account, slot, nil)
	})
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to read slot %s of %s: %w", slot.Hex(), account.Hex(), err)
	}
	return common.BytesToHash(word), nil
}

// CallContract executes an eth_call against the latest block
func (c *Client) CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error) {
	msg := ethereum.CallMsg{To: &to, Data: data}
	out, err := do(ctx, c, "eth_call", func(ctx context.Context) ([]byte, error) {
		return c.eth.CallContract(ctx, msg, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("call to %s failed: %w", to.Hex(), err)
	}
	return out, nil
}

// Close releases the underlying connection
func (c *Client) Close() {
	c.eth.Close()
}

// do runs one request under the client's rate limit, timeout and retry policy
func do[T any](ctx context.Context, c *Client, method string, fn func(context.Context) (T, error)) (T, error) {
	operation := func() (T, error) {
		var zero T
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return zero, backoff.Permanent(err)
			}
		}

		callCtx := ctx
		if c.callTimeout > 0 {
			var cancel context.CancelFunc
			callCtx, cancel = context.WithTimeout(ctx, c.callTimeout)
			defer cancel()
		}

		result, err := fn(callCtx)
		if err != nil {
			if !retryable(ctx, err) {
				return zero, backoff.Permanent(err)
			}
			return zero, err
		}
		return result, nil
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(c.newBackOff()),
		backoff.WithMaxTries(c.maxTries),
		backoff.WithNotify(func(err error, next time.Duration) {
			c.log.Warn("RPC request failed, retrying", "method", method, "error", err, "retry_in", next)
		}),
	)
}

// retryable reports whether err looks like a transport fault. Errors returned
// by the node itself are final.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var rpcErr rpc.Error
	if errors.As(err, &rpcErr) {
		return false
	}
	return !errors.Is(err, context.Canceled)
}

// Ensure the client implements the interface
var _ usecase.ChainReader = (*Client)(nil)
