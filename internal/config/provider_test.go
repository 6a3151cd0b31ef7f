package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/proxyguard/internal/domain"
)

const sampleRegistryTOML = `
[network]
name = "base-sepolia"
chain_id = 84532
rpc_url = "${BASE_SEPOLIA_RPC_URL}"

[contracts.game_token]
name = "Game Token"
proxy_address = "${GAME_TOKEN_PROXY}"
implementation_address = "0x1111111111111111111111111111111111111111"
proxy_type = "uups"
version = "1.2.0"
chain_id = 84532
functions = ["mint(address,uint256)", "balanceOf(address)"]

[contracts.item_shop]
name = "Item Shop"
address = "0x2222222222222222222222222222222222222222"
`

const sampleRegistryYAML = `
network:
  name: base-sepolia
  chain_id: 84532
  rpc_url: https://sepolia.base.org
contracts:
  game_token:
    name: Game Token
    proxy_address: "0x3333333333333333333333333333333333333333"
    proxy_type: transparent
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func newTestViper(projectRoot string) *viper.Viper {
	return SetupViper(projectRoot, nil)
}

func TestLoadRegistryFile(t *testing.T) {
	t.Run("toml", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "proxyguard.toml", sampleRegistryTOML)

		cfg, err := LoadRegistryFile(path)
		require.NoError(t, err)
		require.NotNil(t, cfg.Network)
		assert.Equal(t, uint64(84532), cfg.Network.ChainID)
		assert.Len(t, cfg.Contracts, 2)

		token := cfg.Contracts["game_token"]
		assert.Equal(t, "Game Token", token.Name)
		assert.Equal(t, "${GAME_TOKEN_PROXY}", token.ProxyAddress)
		assert.Equal(t, "uups", token.ProxyType)
		assert.Equal(t, []string{"mint(address,uint256)", "balanceOf(address)"}, token.Functions)
		assert.Equal(t, "0x2222222222222222222222222222222222222222", cfg.Contracts["item_shop"].Address)
	})

	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "proxyguard.yaml", sampleRegistryYAML)

		cfg, err := LoadRegistryFile(path)
		require.NoError(t, err)
		assert.Equal(t, "https://sepolia.base.org", cfg.Network.RPCURL)
		assert.Equal(t, "transparent", cfg.Contracts["game_token"].ProxyType)
	})

	t.Run("empty file yields empty contract table", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "proxyguard.toml", "")

		cfg, err := LoadRegistryFile(path)
		require.NoError(t, err)
		assert.NotNil(t, cfg.Contracts)
		assert.Empty(t, cfg.Contracts)
	})

	t.Run("malformed toml", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "proxyguard.toml", "[contracts\nname =")

		_, err := LoadRegistryFile(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrInvalidRegistry)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "proxyguard.json", "{}")

		_, err := LoadRegistryFile(path)
		assert.ErrorIs(t, err, domain.ErrInvalidRegistry)
	})
}

func TestProvider(t *testing.T) {
	t.Run("builds runtime config from registry and environment", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "proxyguard.toml", sampleRegistryTOML)
		writeFile(t, root, ".env", "BASE_SEPOLIA_RPC_URL=https://sepolia.base.org\n")

		cfg, err := Provider(newTestViper(root))
		require.NoError(t, err)

		assert.Equal(t, root, cfg.ProjectRoot)
		assert.Equal(t, filepath.Join(root, "proxyguard.toml"), cfg.RegistryFile)
		require.NotNil(t, cfg.Registry)
		assert.Len(t, cfg.Registry.Contracts, 2)

		require.NotNil(t, cfg.Network)
		assert.Equal(t, "base-sepolia", cfg.Network.Name)
		assert.Equal(t, uint64(84532), cfg.Network.ChainID)
		assert.Equal(t, "https://sepolia.base.org", cfg.Network.RPCURL)

		assert.Equal(t, 5*time.Second, cfg.RPC.CallTimeout)
		assert.Equal(t, uint(2), cfg.RPC.MaxRetries)
		assert.Equal(t, defaultConcurrency, cfg.Concurrency)
		assert.Equal(t, "https://sepolia.base.org", cfg.Env["BASE_SEPOLIA_RPC_URL"])
	})

	t.Run("flag values override the registry network", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "proxyguard.toml", sampleRegistryTOML)

		v := newTestViper(root)
		v.Set("rpc_url", "http://localhost:8545")
		v.Set("chain_id", 31337)

		cfg, err := Provider(v)
		require.NoError(t, err)
		require.NotNil(t, cfg.Network)
		assert.Equal(t, "http://localhost:8545", cfg.Network.RPCURL)
		assert.Equal(t, uint64(31337), cfg.Network.ChainID)
	})

	t.Run("environment overrides use the PROXYGUARD prefix", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "proxyguard.toml", sampleRegistryTOML)
		t.Setenv("PROXYGUARD_RPC_URL", "http://127.0.0.1:8545")
		t.Setenv("PROXYGUARD_CONCURRENCY", "9")

		cfg, err := Provider(newTestViper(root))
		require.NoError(t, err)
		assert.Equal(t, "http://127.0.0.1:8545", cfg.Network.RPCURL)
		assert.Equal(t, 9, cfg.Concurrency)
	})

	t.Run("no rpc url means no network", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "proxyguard.yaml", "contracts: {}\n")

		cfg, err := Provider(newTestViper(root))
		require.NoError(t, err)
		assert.Nil(t, cfg.Network)
		assert.Equal(t, filepath.Join(root, "proxyguard.yaml"), cfg.RegistryFile)
	})

	t.Run("explicit relative registry path", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0755))
		writeFile(t, filepath.Join(root, "config"), "contracts.yaml", sampleRegistryYAML)

		v := newTestViper(root)
		v.Set("registry", "config/contracts.yaml")

		cfg, err := Provider(v)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "config", "contracts.yaml"), cfg.RegistryFile)
		assert.Len(t, cfg.Registry.Contracts, 1)
	})

	t.Run("missing registry file is not an error", func(t *testing.T) {
		cfg, err := Provider(newTestViper(t.TempDir()))
		require.NoError(t, err)
		assert.Nil(t, cfg.Registry)
		assert.Empty(t, cfg.RegistryFile)
	})

	t.Run("invalid registry file fails", func(t *testing.T) {
		root := t.TempDir()
		writeFile(t, root, "proxyguard.toml", "not = [valid")

		_, err := Provider(newTestViper(root))
		assert.ErrorIs(t, err, domain.ErrInvalidRegistry)
	})
}
