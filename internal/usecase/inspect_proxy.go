package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/proxyguard/internal/domain"
	"github.com/trebuchet-org/proxyguard/internal/domain/config"
	"github.com/trebuchet-org/proxyguard/internal/domain/models"
)

// InspectProxyParams contains parameters for inspecting an address
type InspectProxyParams struct {
	Address string
	// RPCURL replaces the configured network endpoint when set
	RPCURL string
}

// InspectProxyResult is the on-chain view of one address
type InspectProxyResult struct {
	Address        string                `json:"address"`
	ChainID        uint64                `json:"chainId"`
	Classification models.Classification `json:"-"`
	ProxyInfo      models.ProxyInfo      `json:"proxyInfo"`
}

// InspectProxy runs the proxy classifier against a single address
type InspectProxy struct {
	classifier *ProxyClassifier
	dialer     ChainDialer
	network    *config.Network
	sink       ProgressSink
	log        *slog.Logger
}

// NewInspectProxy creates a new InspectProxy use case
func NewInspectProxy(classifier *ProxyClassifier, dialer ChainDialer, cfg *config.RuntimeConfig, sink ProgressSink, log *slog.Logger) *InspectProxy {
	if sink == nil {
		sink = NopProgress{}
	}
	return &InspectProxy{
		classifier: classifier,
		dialer:     dialer,
		network:    cfg.Network,
		sink:       sink,
		log:        log,
	}
}

// Run classifies params.Address. Unlike validation, an unreachable chain is
// an error here since there is nothing else to report.
func (uc *InspectProxy) Run(ctx context.Context, params InspectProxyParams) (*InspectProxyResult, error) {
	if !domain.IsHexAddress(params.Address) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidAddress, params.Address)
	}

	var network config.Network
	switch {
	case params.RPCURL != "":
		network = config.Network{Name: "override", RPCURL: params.RPCURL}
	case uc.network != nil && uc.network.RPCURL != "":
		network = *uc.network
	default:
		return nil, fmt.Errorf("%w: no RPC endpoint configured", domain.ErrNotConnected)
	}
	if uc.dialer == nil {
		return nil, domain.ErrNotConnected
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "connecting",
		Message: fmt.Sprintf("Connecting to %s", network.Name),
		Spinner: true,
	})
	chain, err := uc.dialer.Dial(ctx, network)
	if err != nil {
		return nil, err
	}
	defer chain.Close()

	chainID := network.ChainID
	if chainID == 0 {
		if chainID, err = chain.ChainID(ctx); err != nil {
			return nil, err
		}
	}

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "inspecting",
		Message: fmt.Sprintf("Inspecting %s", params.Address),
		Spinner: true,
	})
	classification := uc.classifier.Classify(ctx, chain, common.HexToAddress(params.Address))

	uc.sink.OnProgress(ctx, ProgressEvent{Stage: "inspected"})
	uc.log.Debug("inspected address", "address", params.Address, "proxy_type", classification.Info().Type)

	return &InspectProxyResult{
		Address:        domain.ChecksumAddress(params.Address),
		ChainID:        chainID,
		Classification: classification,
		ProxyInfo:      classification.Info(),
	}, nil
}
