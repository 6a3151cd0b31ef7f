package usecase

import (
	"strings"

	"github.com/samber/lo"
	"github.com/trebuchet-org/proxyguard/internal/domain/models"
)

// ListContractsParams filters the registry listing
type ListContractsParams struct {
	// ProxyType keeps only entries declared with this type, empty keeps all
	ProxyType models.ProxyType
	// Search keeps keys or names containing this text, case-insensitively
	Search string
	// UnsetOnly keeps only entries without any address
	UnsetOnly bool
}

// ContractEntry is one row of the registry listing
type ContractEntry struct {
	Key             string                `json:"key"`
	Config          models.ContractConfig `json:"config"`
	ResolvedAddress string                `json:"resolvedAddress"`
}

// ListContractsResult contains the filtered registry entries, sorted by key
type ListContractsResult struct {
	Contracts []ContractEntry `json:"contracts"`
	Total     int             `json:"total"` // size of the unfiltered registry
}

// ListContracts is the use case for listing and auditing the registry
type ListContracts struct {
	registry ContractRegistry
}

// NewListContracts creates a new ListContracts use case
func NewListContracts(registry ContractRegistry) *ListContracts {
	return &ListContracts{registry: registry}
}

// Run lists registry entries matching params
func (uc *ListContracts) Run(params ListContractsParams) *ListContractsResult {
	all := uc.registry.All()
	search := strings.ToLower(params.Search)

	entries := lo.FilterMap(uc.registry.Keys(), func(key string, _ int) (ContractEntry, bool) {
		cfg := all[key]
		entry := ContractEntry{
			Key:             key,
			Config:          cfg,
			ResolvedAddress: cfg.ResolvedAddressOrUnset(),
		}
		if params.ProxyType != "" && cfg.ProxyType != params.ProxyType {
			return entry, false
		}
		if params.UnsetOnly && entry.ResolvedAddress != models.UnsetAddress {
			return entry, false
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(key), search) &&
			!strings.Contains(strings.ToLower(cfg.Name), search) {
			return entry, false
		}
		return entry, true
	})

	return &ListContractsResult{
		Contracts: entries,
		Total:     len(all),
	}
}

// ResolvedAddresses maps every registry key to its resolved address or
// models.UnsetAddress
func (uc *ListContracts) ResolvedAddresses() map[string]string {
	return uc.registry.AllResolvedAddresses()
}
