package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/proxyguard/internal/domain/config"
)

const (
	// EnvPrefix prefixes every environment override, e.g. PROXYGUARD_RPC_URL
	EnvPrefix = "PROXYGUARD"

	defaultConcurrency = 4
)

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			return nil, fmt.Errorf("failed to find project root: %w", err)
		}
	}
	if !filepath.IsAbs(projectRoot) {
		abs, err := filepath.Abs(projectRoot)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve project root: %w", err)
		}
		projectRoot = abs
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		LogLevel:       v.GetString("log_level"),
		Timeout:        v.GetDuration("timeout"),
		Concurrency:    v.GetInt("concurrency"),
		AdminSlot:      v.GetBool("admin_slot"),
		RPC: config.RPCConfig{
			CallTimeout: v.GetDuration("rpc_timeout"),
			MaxRetries:  v.GetUint("rpc_retries"),
			RateLimit:   v.GetFloat64("rpc_rate_limit"),
			Burst:       v.GetInt("rpc_burst"),
		},
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = defaultConcurrency
	}

	env, err := captureEnvironment(projectRoot)
	if err != nil {
		return nil, err
	}
	cfg.Env = env

	registryPath := v.GetString("registry")
	if registryPath == "" {
		registryPath = findRegistryFile(projectRoot)
	} else if !filepath.IsAbs(registryPath) {
		registryPath = filepath.Join(projectRoot, registryPath)
	}
	if registryPath != "" {
		registry, err := LoadRegistryFile(registryPath)
		if err != nil {
			return nil, err
		}
		cfg.RegistryFile = registryPath
		cfg.Registry = registry
	}

	cfg.Network = resolveNetwork(v, cfg)

	return cfg, nil
}

// resolveNetwork merges the registry [network] table with flag/env overrides.
// Returns nil when no RPC URL is known.
func resolveNetwork(v *viper.Viper, cfg *config.RuntimeConfig) *config.Network {
	network := &config.Network{}
	if cfg.Registry != nil && cfg.Registry.Network != nil {
		network.Name = cfg.Registry.Network.Name
		network.ChainID = cfg.Registry.Network.ChainID
		network.RPCURL = ExpandEnv(cfg.Registry.Network.RPCURL, cfg.Env)
	}

	if name := v.GetString("network"); name != "" {
		network.Name = name
	}
	if rpcURL := v.GetString("rpc_url"); rpcURL != "" {
		network.RPCURL = rpcURL
	}
	if chainID := v.GetUint64("chain_id"); chainID != 0 {
		network.ChainID = chainID
	}

	if network.RPCURL == "" {
		return nil
	}
	return network
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up config file
	v.SetConfigName("config.local")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(projectRoot, ".proxyguard"))

	// Set up environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	// Set defaults
	v.SetDefault("project_root", projectRoot)
	v.SetDefault("timeout", "2m")
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("log_level", "info")
	v.SetDefault("concurrency", defaultConcurrency)
	v.SetDefault("admin_slot", false)
	v.SetDefault("rpc_timeout", "5s")
	v.SetDefault("rpc_retries", 2)
	v.SetDefault("rpc_rate_limit", 0)
	v.SetDefault("rpc_burst", 1)

	// Try to read config file (ignore error if not found)
	_ = v.ReadInConfig()

	if cmd != nil {
		bindFlags(v, cmd.Flags())
	}

	return v
}

// bindFlags binds every flag under its snake_case key, e.g. --rpc-url -> rpc_url
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			panic(err)
		}
	})
}

// IsNonInteractiveEnv checks if the environment is non-interactive
func IsNonInteractiveEnv() bool {
	return os.Getenv(EnvPrefix+"_NON_INTERACTIVE") == "true" ||
		os.Getenv("CI") == "true" ||
		os.Getenv("NO_COLOR") != ""
}
