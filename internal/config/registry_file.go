package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/trebuchet-org/proxyguard/internal/domain"
	"github.com/trebuchet-org/proxyguard/internal/domain/config"
	"gopkg.in/yaml.v3"
)

// registryFileNames are looked up in order in the project root
var registryFileNames = []string{
	"proxyguard.toml",
	"proxyguard.yaml",
	"proxyguard.yml",
}

// findRegistryFile returns the first registry file present in dir, or "".
func findRegistryFile(dir string) string {
	for _, name := range registryFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// FindProjectRoot walks up from the current directory to find a registry file
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if findRegistryFile(dir) != "" {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found in this or any parent directory", registryFileNames[0])
		}
		dir = parent
	}
}

// LoadRegistryFile decodes a registry file, choosing the format by extension
func LoadRegistryFile(path string) (*config.RegistryFileConfig, error) {
	var cfg config.RegistryFileConfig

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", domain.ErrInvalidRegistry, filepath.Base(path), err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path) //nolint:gosec // user-supplied config path
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %v", domain.ErrInvalidRegistry, filepath.Base(path), err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported registry file extension %q", domain.ErrInvalidRegistry, filepath.Ext(path))
	}

	if cfg.Contracts == nil {
		cfg.Contracts = make(map[string]config.ContractFileConfig)
	}
	return &cfg, nil
}
