package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/proxyguard/internal/domain/bindings"
	"github.com/trebuchet-org/proxyguard/internal/domain/config"
)

var errStubTransport = errors.New("stub: connection refused")

// stubChain is an in-memory ChainReader. Unknown accounts have no code, all
// storage reads zero and calls revert.
type stubChain struct {
	mu      sync.Mutex
	chainID uint64
	code    map[common.Address][]byte
	storage map[common.Address]map[common.Hash]common.Hash
	calls   map[common.Address]map[[4]byte][]byte
	fail    error // returned by every read when set
	closed  int
	reads   int
}

func newStubChain() *stubChain {
	return &stubChain{
		chainID: 31337,
		code:    map[common.Address][]byte{},
		storage: map[common.Address]map[common.Hash]common.Hash{},
		calls:   map[common.Address]map[[4]byte][]byte{},
	}
}

func (s *stubChain) withCode(addr common.Address) *stubChain {
	s.code[addr] = []byte{0x60, 0x80, 0x60, 0x40, 0x52}
	return s
}

func (s *stubChain) withSlot(addr common.Address, slot common.Hash, value common.Address) *stubChain {
	if s.storage[addr] == nil {
		s.storage[addr] = map[common.Hash]common.Hash{}
	}
	s.storage[addr][slot] = common.BytesToHash(value.Bytes())
	return s
}

func (s *stubChain) withCall(addr common.Address, data []byte, ret []byte) *stubChain {
	if s.calls[addr] == nil {
		s.calls[addr] = map[[4]byte][]byte{}
	}
	var selector [4]byte
	copy(selector[:], data)
	s.calls[addr][selector] = ret
	return s
}

// withUUPS makes proxy an EIP-1967 proxy whose implementation answers
// proxiableUUID()
func (s *stubChain) withUUPS(proxy, impl common.Address) *stubChain {
	b := bindings.NewERC1967Proxy()
	return s.withCode(proxy).withCode(impl).
		withSlot(proxy, bindings.ImplementationSlot, impl).
		withCall(impl, b.PackProxiableUUID(), bindings.ImplementationSlot.Bytes())
}

func (s *stubChain) ChainID(context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail != nil {
		return 0, s.fail
	}
	return s.chainID, nil
}

func (s *stubChain) CodeAt(_ context.Context, account common.Address) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.fail != nil {
		return nil, s.fail
	}
	return s.code[account], nil
}

func (s *stubChain) StorageAt(_ context.Context, account common.Address, slot common.Hash) (common.Hash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.fail != nil {
		return common.Hash{}, s.fail
	}
	return s.storage[account][slot], nil
}

func (s *stubChain) CallContract(_ context.Context, to common.Address, data []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reads++
	if s.fail != nil {
		return nil, s.fail
	}
	var selector [4]byte
	copy(selector[:], data)
	ret, ok := s.calls[to][selector]
	if !ok {
		return nil, errors.New("execution reverted")
	}
	return ret, nil
}

func (s *stubChain) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
}

// stubDialer hands out one stubChain
type stubDialer struct {
	chain   *stubChain
	err     error
	dialed  []config.Network
	dialsMu sync.Mutex
}

func (d *stubDialer) Dial(_ context.Context, network config.Network) (ChainReader, error) {
	d.dialsMu.Lock()
	defer d.dialsMu.Unlock()
	d.dialed = append(d.dialed, network)
	if d.err != nil {
		return nil, d.err
	}
	return d.chain, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
