package blockchain

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/trebuchet-org/proxyguard/internal/domain"
	"github.com/trebuchet-org/proxyguard/internal/domain/config"
	"github.com/trebuchet-org/proxyguard/internal/usecase"
)

// Dialer opens rate-limited, retrying clients for a network
type Dialer struct {
	rpc  config.RPCConfig
	dial func(ctx context.Context, rawurl string) (*rpc.Client, error)
	log  *slog.Logger
}

// NewDialer creates a dialer using the RPC settings of cfg
func NewDialer(cfg *config.RuntimeConfig, log *slog.Logger) *Dialer {
	return &Dialer{
		rpc:  cfg.RPC,
		dial: rpc.DialContext,
		log:  log,
	}
}

// Dial connects to network.RPCURL and, when network.ChainID is set, checks
// that the endpoint serves that chain
func (d *Dialer) Dial(ctx context.Context, network config.Network) (usecase.ChainReader, error) {
	if network.RPCURL == "" {
		return nil, domain.ErrNotConnected
	}

	rpcClient, err := d.dial(ctx, network.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC: %w", err)
	}
	client := NewClient(ethclient.NewClient(rpcClient), d.rpc, d.log)

	if network.ChainID == 0 {
		return client, nil
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		client.Close()
		return nil, err
	}
	if chainID != network.ChainID {
		client.Close()
		return nil, fmt.Errorf("%w: expected %d, got %d", domain.ErrChainIDMismatch, network.ChainID, chainID)
	}

	d.log.Debug("connected to chain", "network", network.Name, "chain_id", chainID)
	return client, nil
}

// Ensure the dialer implements the interface
var _ usecase.ChainDialer = (*Dialer)(nil)
