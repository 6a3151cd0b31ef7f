package contracts

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Masterminds/semver/v3"
	internalconfig "github.com/trebuchet-org/proxyguard/internal/config"
	"github.com/trebuchet-org/proxyguard/internal/domain"
	"github.com/trebuchet-org/proxyguard/internal/domain/config"
	"github.com/trebuchet-org/proxyguard/internal/domain/models"
)

// NewRepositoryFromConfig builds the registry from the decoded registry
// file. ${VAR} references are expanded from cfg.Env; this is the only place
// registry values meet the environment.
func NewRepositoryFromConfig(cfg *config.RuntimeConfig, log *slog.Logger) (*Repository, error) {
	if cfg.Registry == nil {
		log.Debug("no registry file found, starting with an empty registry", "root", cfg.ProjectRoot)
		return NewRepository(nil), nil
	}

	var defaultChainID uint64
	if cfg.Registry.Network != nil {
		defaultChainID = cfg.Registry.Network.ChainID
	}

	entries := make(map[string]models.ContractConfig, len(cfg.Registry.Contracts))
	for key, raw := range cfg.Registry.Contracts {
		entry, err := buildContractConfig(key, raw, cfg.Env, defaultChainID, log)
		if err != nil {
			return nil, fmt.Errorf("%w: contract %q: %v", domain.ErrInvalidRegistry, key, err)
		}
		entries[key] = entry
	}

	log.Debug("loaded registry", "file", cfg.RegistryFile, "contracts", len(entries))
	return NewRepository(entries), nil
}

func buildContractConfig(key string, raw config.ContractFileConfig, env map[string]string, defaultChainID uint64, log *slog.Logger) (models.ContractConfig, error) {
	proxyType, err := models.ParseProxyType(raw.ProxyType)
	if err != nil {
		return models.ContractConfig{}, err
	}

	entry := models.ContractConfig{
		Name:                  raw.Name,
		DirectAddress:         expandAddress(key, "address", raw.Address, env, log),
		ProxyAddress:          expandAddress(key, "proxy_address", raw.ProxyAddress, env, log),
		ImplementationAddress: expandAddress(key, "implementation_address", raw.ImplementationAddress, env, log),
		Version:               normalizeVersion(key, raw.Version, log),
		ProxyType:             proxyType,
		ChainID:               raw.ChainID,
		Functions:             raw.Functions,
	}
	if entry.Name == "" {
		entry.Name = key
	}
	if entry.ChainID == 0 {
		entry.ChainID = defaultChainID
	}
	return entry, nil
}

// expandAddress resolves ${VAR} references. A reference to an unset variable
// yields an empty (unset) address rather than an error.
func expandAddress(key, field, raw string, env map[string]string, log *slog.Logger) string {
	raw = strings.TrimSpace(raw)
	if name, ok := internalconfig.DetectEnvVar(raw); ok {
		if _, set := env[name]; !set {
			log.Debug("registry address references an unset variable", "contract", key, "field", field, "var", name)
		}
	}
	return strings.TrimSpace(internalconfig.ExpandEnv(raw, env))
}

// normalizeVersion canonicalizes semantic versions. Versions are
// informational, so an unparsable one is kept verbatim.
func normalizeVersion(key, raw string, log *slog.Logger) string {
	if raw == "" {
		return ""
	}
	v, err := semver.NewVersion(raw)
	if err != nil {
		log.Warn("contract version is not a semantic version", "contract", key, "version", raw)
		return raw
	}
	return v.String()
}
