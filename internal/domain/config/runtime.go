package config

import (
	"time"
)

// RuntimeConfig represents the complete runtime configuration.
// It is built once at startup and injected into adapters and use cases;
// nothing downstream reads the process environment.
type RuntimeConfig struct {
	// Core settings
	ProjectRoot  string
	RegistryFile string // absolute path to proxyguard.toml / proxyguard.yaml

	// Network is the default chain endpoint, nil if none is configured
	Network *Network

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool
	LogLevel       string
	Timeout        time.Duration // whole-run deadline, 0 disables

	// Chain access settings
	RPC RPCConfig

	// Concurrency bounds parallel contract validations in a batch
	Concurrency int

	// AdminSlot lets the proxy classifier fall back to the EIP-1967 admin
	// slot when admin() cannot be called
	AdminSlot bool

	// Registry is the decoded registry file, nil when none was found
	Registry *RegistryFileConfig

	// Env is the environment captured at startup (process env merged with
	// .env files), used to expand ${VAR} references in the registry file.
	Env map[string]string
}

// Network represents network configuration
type Network struct {
	ChainID uint64 `json:"chainId"`
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl"`
}

// RPCConfig tunes the chain-access boundary
type RPCConfig struct {
	CallTimeout time.Duration // per request
	MaxRetries  uint          // 0 disables retries
	RateLimit   float64       // requests per second, 0 disables limiting
	Burst       int
}
