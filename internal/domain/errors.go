package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrContractNotFound is returned when a registry key has no entry
	ErrContractNotFound = fmt.Errorf("contract %w", ErrNotFound)

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrInvalidRegistry is returned when a registry file can't be decoded
	ErrInvalidRegistry = errors.New("invalid registry")

	// ErrNotConnected is returned when no chain endpoint is configured
	ErrNotConnected = errors.New("not connected to blockchain")

	// ErrChainIDMismatch is returned when an RPC endpoint serves a different chain
	ErrChainIDMismatch = errors.New("chain ID mismatch")
)

// UnknownContractErr reports a registry lookup for a key that isn't declared.
// Suggestions holds close matches, best first.
type UnknownContractErr struct {
	Key         string
	Suggestions []string
}

func (e UnknownContractErr) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("contract %q is not declared in the registry", e.Key)
	}
	return fmt.Sprintf("contract %q is not declared in the registry, did you mean: %s?",
		e.Key, strings.Join(e.Suggestions, ", "))
}

func (e UnknownContractErr) Unwrap() error {
	return ErrContractNotFound
}
