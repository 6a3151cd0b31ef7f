package adapters

import (
	"github.com/google/wire"
	"github.com/trebuchet-org/proxyguard/internal/adapters/blockchain"
	"github.com/trebuchet-org/proxyguard/internal/adapters/interactive"
	"github.com/trebuchet-org/proxyguard/internal/adapters/repository/contracts"
	"github.com/trebuchet-org/proxyguard/internal/domain/config"
	"github.com/trebuchet-org/proxyguard/internal/usecase"
)

// ProvideClassifierOptions derives classifier settings from RuntimeConfig
func ProvideClassifierOptions(cfg *config.RuntimeConfig) usecase.ClassifierOptions {
	return usecase.ClassifierOptions{UseAdminSlot: cfg.AdminSlot}
}

// RepositorySet provides the registry store
var RepositorySet = wire.NewSet(
	contracts.NewRepositoryFromConfig,
	wire.Bind(new(usecase.ContractRegistry), new(*contracts.Repository)),
)

// InteractiveSet provides interactive implementations
var InteractiveSet = wire.NewSet(
	interactive.NewSelectorAdapter,
	wire.Bind(new(usecase.ContractSelector), new(*interactive.SelectorAdapter)),
)

// BlockchainSet provides blockchain-based implementations
var BlockchainSet = wire.NewSet(
	blockchain.NewDialer,
	wire.Bind(new(usecase.ChainDialer), new(*blockchain.Dialer)),
)

// AllAdapters includes all adapter sets
var AllAdapters = wire.NewSet(
	// Provider functions
	ProvideClassifierOptions,

	// Adapter sets
	RepositorySet,
	InteractiveSet,
	BlockchainSet,
)
