package config

// RegistryFileConfig is the on-disk shape of proxyguard.toml / proxyguard.yaml.
//
//	[network]
//	name = "base"
//	chain_id = 8453
//	rpc_url = "${BASE_RPC_URL}"
//
//	[contracts.game_token]
//	name = "Game Token"
//	proxy_address = "${GAME_TOKEN_PROXY}"
//	implementation_address = "0x..."
//	proxy_type = "uups"
//	version = "1.2.0"
//	functions = ["mint(address,uint256)", "balanceOf(address)"]
type RegistryFileConfig struct {
	Network   *NetworkFileConfig            `toml:"network" yaml:"network"`
	Contracts map[string]ContractFileConfig `toml:"contracts" yaml:"contracts"`
}

// NetworkFileConfig declares the default endpoint for validation
type NetworkFileConfig struct {
	Name    string `toml:"name" yaml:"name"`
	ChainID uint64 `toml:"chain_id" yaml:"chain_id"`
	RPCURL  string `toml:"rpc_url" yaml:"rpc_url"`
}

// ContractFileConfig declares one contract. Address fields may hold ${VAR} references.
type ContractFileConfig struct {
	Name                  string   `toml:"name" yaml:"name"`
	Address               string   `toml:"address" yaml:"address"`
	ProxyAddress          string   `toml:"proxy_address" yaml:"proxy_address"`
	ImplementationAddress string   `toml:"implementation_address" yaml:"implementation_address"`
	Version               string   `toml:"version" yaml:"version"`
	ProxyType             string   `toml:"proxy_type" yaml:"proxy_type"`
	ChainID               uint64   `toml:"chain_id" yaml:"chain_id"`
	Functions             []string `toml:"functions" yaml:"functions"`
}
