package bindings

import (
	"github.com/ethereum/go-ethereum/common"
)

// EIP-1967 storage slots, each keccak256(label) - 1
var (
	// ImplementationSlot is bytes32(uint256(keccak256("eip1967.proxy.implementation")) - 1)
	ImplementationSlot = common.HexToHash("0x360894a13ba1a3210667c828492db98dca3e2076cc3735a920a3ca505d382bbc")

	// BeaconSlot is bytes32(uint256(keccak256("eip1967.proxy.beacon")) - 1)
	BeaconSlot = common.HexToHash("0xa3f0ad74e5423aebfd80d3ef4346578335a9a72aeaee59ff6cb3582b35133d50")

	// AdminSlot is bytes32(uint256(keccak256("eip1967.proxy.admin")) - 1)
	AdminSlot = common.HexToHash("0xb53127684a568b3173ae13b9f8a6016e243e63b6e8ee1178d6a717850b5d6103")
)

// MethodID returns the 4-byte selector of an ERC1967Proxy method
func (eRC1967Proxy *ERC1967Proxy) MethodID(name string) ([]byte, bool) {
	method, exists := eRC1967Proxy.abi.Methods[name]
	if !exists {
		return nil, false
	}
	return method.ID, true
}
