package contracts

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/proxyguard/internal/domain"
	"github.com/trebuchet-org/proxyguard/internal/domain/models"
	"github.com/trebuchet-org/proxyguard/internal/usecase"
)

// maxSuggestions caps the "did you mean" list for unknown keys
const maxSuggestions = 3

// Repository is the in-memory registry of declared contracts. It is
// immutable after construction, so reads need no synchronization.
type Repository struct {
	contracts map[string]models.ContractConfig // key: registry key, e.g. "game_token"
	keys      []string                         // sorted
}

// NewRepository creates a registry holding a private copy of entries
func NewRepository(entries map[string]models.ContractConfig) *Repository {
	r := &Repository{
		contracts: make(map[string]models.ContractConfig, len(entries)),
		keys:      make([]string, 0, len(entries)),
	}
	for key, cfg := range entries {
		r.contracts[key] = cfg.Clone()
		r.keys = append(r.keys, key)
	}
	sort.Strings(r.keys)
	return r
}

// Get returns the config registered under key
func (r *Repository) Get(key string) (models.ContractConfig, error) {
	cfg, ok := r.contracts[key]
	if !ok {
		return models.ContractConfig{}, domain.UnknownContractErr{
			Key:         key,
			Suggestions: r.suggest(key),
		}
	}
	return cfg.Clone(), nil
}

// Keys returns every registry key in sorted order
func (r *Repository) Keys() []string {
	return append([]string(nil), r.keys...)
}

// Len returns the number of declared contracts
func (r *Repository) Len() int {
	return len(r.keys)
}

// All returns a copy of every entry
func (r *Repository) All() map[string]models.ContractConfig {
	out := make(map[string]models.ContractConfig, len(r.contracts))
	for key, cfg := range r.contracts {
		out[key] = cfg.Clone()
	}
	return out
}

// AllResolvedAddresses maps every key to the address callers must use,
// or models.UnsetAddress
func (r *Repository) AllResolvedAddresses() map[string]string {
	out := make(map[string]string, len(r.contracts))
	for key, cfg := range r.contracts {
		out[key] = cfg.ResolvedAddressOrUnset()
	}
	return out
}

// suggest returns registry keys close to key, best first
func (r *Repository) suggest(key string) []string {
	var suggestions []string

	// Exact match ignoring case ranks first
	for _, k := range r.keys {
		if strings.EqualFold(k, key) {
			suggestions = append(suggestions, k)
		}
	}

	lowered := lo.Map(r.keys, func(k string, _ int) string {
		return strings.ToLower(k)
	})
	for _, match := range fuzzy.Find(strings.ToLower(key), lowered) {
		candidate := r.keys[match.Index]
		if !lo.Contains(suggestions, candidate) {
			suggestions = append(suggestions, candidate)
		}
		if len(suggestions) >= maxSuggestions {
			break
		}
	}

	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}
	return suggestions
}

// Ensure the repository implements the interface
var _ usecase.ContractRegistry = (*Repository)(nil)
