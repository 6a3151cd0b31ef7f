package models

import (
	"github.com/ethereum/go-ethereum/common"
)

// ProxyInfo is the result of inspecting one address on-chain. It is computed
// fresh on every validation and never persisted.
type ProxyInfo struct {
	IsProxy        bool      `json:"isProxy"`
	Type           ProxyType `json:"proxyType"`
	Implementation string    `json:"implementationAddress,omitempty"`
	Admin          string    `json:"adminAddress,omitempty"` // Transparent only
}

// Classification is one of UUPSProxy, TransparentProxy, MinimalProxy,
// BeaconProxy or NotAProxy.
type Classification interface {
	// Info flattens the classification for reporting
	Info() ProxyInfo
	classification()
}

// UUPSProxy is an EIP-1967 proxy whose implementation answers proxiableUUID()
type UUPSProxy struct {
	Implementation common.Address
}

// TransparentProxy is an EIP-1967 proxy exposing an admin
type TransparentProxy struct {
	Implementation common.Address
	Admin          common.Address
}

// MinimalProxy is an EIP-1967 proxy whose pattern could not be narrowed down
type MinimalProxy struct {
	Implementation common.Address
}

// BeaconProxy points at a beacon contract rather than at an implementation
type BeaconProxy struct {
	Beacon common.Address
}

// NotAProxy is returned when no proxy storage was found or inspection failed
type NotAProxy struct{}

func (UUPSProxy) classification()        {}
func (TransparentProxy) classification() {}
func (MinimalProxy) classification()     {}
func (BeaconProxy) classification()      {}
func (NotAProxy) classification()        {}

func (p UUPSProxy) Info() ProxyInfo {
	return ProxyInfo{IsProxy: true, Type: ProxyTypeUUPS, Implementation: p.Implementation.Hex()}
}

func (p TransparentProxy) Info() ProxyInfo {
	return ProxyInfo{
		IsProxy:        true,
		Type:           ProxyTypeTransparent,
		Implementation: p.Implementation.Hex(),
		Admin:          p.Admin.Hex(),
	}
}

func (p MinimalProxy) Info() ProxyInfo {
	return ProxyInfo{IsProxy: true, Type: ProxyTypeMinimal, Implementation: p.Implementation.Hex()}
}

// Info stores the beacon address in the Implementation field. Consumers
// rely on that field holding the beacon, not the beacon's target.
func (p BeaconProxy) Info() ProxyInfo {
	return ProxyInfo{IsProxy: true, Type: ProxyTypeBeacon, Implementation: p.Beacon.Hex()}
}

func (NotAProxy) Info() ProxyInfo {
	return ProxyInfo{IsProxy: false, Type: ProxyTypeNone}
}
