package usecase

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/proxyguard/internal/domain/config"
	"github.com/trebuchet-org/proxyguard/internal/domain/models"
)

// ContractRegistry is the read-only table of declared contracts.
// Implementations must be safe for concurrent use without locking.
type ContractRegistry interface {
	// Get returns the config for key, or an error wrapping
	// domain.ErrContractNotFound
	Get(key string) (models.ContractConfig, error)
	// Keys returns every registry key in sorted order
	Keys() []string
	// All returns a copy of every entry
	All() map[string]models.ContractConfig
	// AllResolvedAddresses maps every key to its resolved address or
	// models.UnsetAddress
	AllResolvedAddresses() map[string]string
}

// ChainReader is read-only access to one chain. Every method may fail with
// a transport error.
type ChainReader interface {
	ChainID(ctx context.Context) (uint64, error)
	CodeAt(ctx context.Context, account common.Address) ([]byte, error)
	StorageAt(ctx context.Context, account common.Address, slot common.Hash) (common.Hash, error)
	// CallContract executes a read-only call and returns the raw return data
	CallContract(ctx context.Context, to common.Address, data []byte) ([]byte, error)
	Close()
}

// ChainDialer opens ChainReaders for a network
type ChainDialer interface {
	// Dial connects to network.RPCURL. When network.ChainID is non-zero the
	// endpoint must serve that chain.
	Dial(ctx context.Context, network config.Network) (ChainReader, error)
}

// ContractSelector handles interactive selection of registry entries
type ContractSelector interface {
	SelectContract(ctx context.Context, keys []string, prompt string) (string, error)
}

// Progress tracking interfaces

// ProgressEvent represents a progress update
type ProgressEvent struct {
	Stage   string
	Current int
	Total   int
	Message string
	Spinner bool
}

// ProgressSink receives progress events
type ProgressSink interface {
	OnProgress(ctx context.Context, event ProgressEvent)
	Info(message string)
	Error(message string)
}

// NopProgress is a no-op implementation of ProgressSink
type NopProgress struct{}

func (NopProgress) OnProgress(context.Context, ProgressEvent) {}
func (NopProgress) Info(string)                               {}
func (NopProgress) Error(string)                              {}
