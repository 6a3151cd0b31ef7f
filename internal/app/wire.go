//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/proxyguard/internal/adapters"
	"github.com/trebuchet-org/proxyguard/internal/config"
	"github.com/trebuchet-org/proxyguard/internal/logging"
	"github.com/trebuchet-org/proxyguard/internal/usecase"
)

// InitApp creates a fully wired App instance
func InitApp(v *viper.Viper, sink usecase.ProgressSink) (*App, error) {
	wire.Build(
		// Configuration
		config.Provider,
		logging.LoggingSet,

		// Adapters
		adapters.AllAdapters,

		// Use cases
		usecase.NewProxyClassifier,
		usecase.NewValidateContracts,
		usecase.NewInspectProxy,
		usecase.NewListContracts,

		// App
		NewApp,
	)
	return nil, nil
}
