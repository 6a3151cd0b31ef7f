package app

import (
	"log/slog"

	"github.com/trebuchet-org/proxyguard/internal/domain/config"
	"github.com/trebuchet-org/proxyguard/internal/usecase"
)

// App is the main application container that holds all use cases
type App struct {
	// Configuration
	Config *config.RuntimeConfig
	Log    *slog.Logger

	// Shared dependencies
	Registry usecase.ContractRegistry
	Selector usecase.ContractSelector

	// Use cases
	ValidateContracts *usecase.ValidateContracts
	InspectProxy      *usecase.InspectProxy
	ListContracts     *usecase.ListContracts
}

// NewApp creates a new application instance with all use cases
func NewApp(
	cfg *config.RuntimeConfig,
	log *slog.Logger,
	registry usecase.ContractRegistry,
	selector usecase.ContractSelector,
	validateContracts *usecase.ValidateContracts,
	inspectProxy *usecase.InspectProxy,
	listContracts *usecase.ListContracts,
) (*App, error) {
	return &App{
		Config:            cfg,
		Log:               log,
		Registry:          registry,
		Selector:          selector,
		ValidateContracts: validateContracts,
		InspectProxy:      inspectProxy,
		ListContracts:     listContracts,
	}, nil
}
