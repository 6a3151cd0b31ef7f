package domain

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// ZeroAddress is the all-zero address
	ZeroAddress = "0x0000000000000000000000000000000000000000"

	// DeadAddress is the conventional burn address
	DeadAddress = "0x000000000000000000000000000000000000dEaD"

	// NotSetToken is written into config templates before a contract is deployed
	NotSetToken = "NOT_SET"
)

// placeholderAddresses lists values that are never a real deployment.
// Comparison is case-insensitive.
var placeholderAddresses = []string{
	ZeroAddress,
	NotSetToken,
	DeadAddress,
}

// PlaceholderAddresses returns a copy of the placeholder deny-list
func PlaceholderAddresses() []string {
	out := make([]string, len(placeholderAddresses))
	copy(out, placeholderAddresses)
	return out
}

// IsHexAddress reports whether s is a 0x-prefixed, 40 hex digit address.
// Unlike common.IsHexAddress the prefix is mandatory.
func IsHexAddress(s string) bool {
	if !strings.HasPrefix(s, "0x") {
		return false
	}
	return common.IsHexAddress(s)
}

// ChecksumAddress returns the EIP-55 mixed-case encoding of s.
// s must already satisfy IsHexAddress.
func ChecksumAddress(s string) string {
	return common.HexToAddress(s).Hex()
}

// IsChecksummed reports whether s is already in its EIP-55 form
func IsChecksummed(s string) bool {
	return s == ChecksumAddress(s)
}

// IsPlaceholderAddress reports whether s matches the deny-list
func IsPlaceholderAddress(s string) bool {
	for _, p := range placeholderAddresses {
		if strings.EqualFold(s, p) {
			return true
		}
	}
	return false
}

// SameAddress compares two hex addresses ignoring case
func SameAddress(a, b string) bool {
	return strings.EqualFold(a, b)
}

// AddressFromWord extracts an address stored right-aligned in a 32-byte
// storage word. The second return is false for an all-zero word.
func AddressFromWord(word common.Hash) (common.Address, bool) {
	if word == (common.Hash{}) {
		return common.Address{}, false
	}
	return common.BytesToAddress(word.Bytes()[common.HashLength-common.AddressLength:]), true
}
