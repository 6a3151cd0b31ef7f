package models

import (
	"fmt"
	"strings"
)

// ProxyType is the upgrade pattern a contract is declared (or detected) to use
type ProxyType string

const (
	ProxyTypeUUPS        ProxyType = "UUPS"
	ProxyTypeTransparent ProxyType = "TRANSPARENT"
	ProxyTypeBeacon      ProxyType = "BEACON"
	// ProxyTypeMinimal is an EIP-1967 proxy whose admin/upgrade pattern
	// could not be told apart
	ProxyTypeMinimal ProxyType = "MINIMAL"
	ProxyTypeNone    ProxyType = "NONE"
)

// UnsetAddress is reported for registry entries without any address
const UnsetAddress = "unset"

// ParseProxyType parses a proxy type name case-insensitively.
// An empty string means ProxyTypeNone.
func ParseProxyType(s string) (ProxyType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "NONE":
		return ProxyTypeNone, nil
	case "UUPS":
		return ProxyTypeUUPS, nil
	case "TRANSPARENT":
		return ProxyTypeTransparent, nil
	case "BEACON":
		return ProxyTypeBeacon, nil
	case "MINIMAL":
		return ProxyTypeMinimal, nil
	default:
		return "", fmt.Errorf("unknown proxy type %q", s)
	}
}

// IsProxy reports whether calls are expected to go through a proxy
func (t ProxyType) IsProxy() bool {
	return t != ProxyTypeNone && t != ""
}

// ContractConfig is the declared, expected configuration of one deployed contract
type ContractConfig struct {
	Name                  string    `json:"name"`
	DirectAddress         string    `json:"directAddress,omitempty"`
	ProxyAddress          string    `json:"proxyAddress,omitempty"`
	ImplementationAddress string    `json:"implementationAddress,omitempty"`
	Version               string    `json:"version,omitempty"` // informational
	ProxyType             ProxyType `json:"proxyType"`
	ChainID               uint64    `json:"chainId"`
	Functions             []string  `json:"functions,omitempty"` // presence check only
}

// ResolvedAddress returns the address callers must use. A configured proxy
// always wins over the direct address, which is then treated as legacy.
func (c ContractConfig) ResolvedAddress() (string, bool) {
	if c.ProxyAddress != "" {
		return c.ProxyAddress, true
	}
	if c.DirectAddress != "" {
		return c.DirectAddress, true
	}
	return "", false
}

// ResolvedAddressOrUnset is ResolvedAddress with UnsetAddress for the empty case
func (c ContractConfig) ResolvedAddressOrUnset() string {
	if addr, ok := c.ResolvedAddress(); ok {
		return addr
	}
	return UnsetAddress
}

// Clone returns a copy that shares no slices with c
func (c ContractConfig) Clone() ContractConfig {
	if c.Functions != nil {
		c.Functions = append([]string(nil), c.Functions...)
	}
	return c
}
