package blockchain

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/big"
	"sync"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/proxyguard/internal/domain"
	"github.com/trebuchet-org/proxyguard/internal/domain/bindings"
	"github.com/trebuchet-org/proxyguard/internal/domain/config"
)

var (
	proxyAddr = common.HexToAddress("0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
	implAddr  = common.HexToAddress("0x1111111111111111111111111111111111111111")
)

// fakeEth serves the eth_ namespace subset the client uses
type fakeEth struct {
	mu      sync.Mutex
	chainID int64
	code    map[common.Address]hexutil.Bytes
	storage map[common.Address]map[common.Hash]common.Hash
	calls   map[common.Address]hexutil.Bytes
	hits    map[string]int
}

type callArgs struct {
	To    *common.Address `json:"to"`
	Input hexutil.Bytes   `json:"input"`
	Data  hexutil.Bytes   `json:"data"`
}

func (f *fakeEth) hit(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hits[method]++
}

func (f *fakeEth) count(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[method]
}

func (f *fakeEth) ChainId() (*hexutil.Big, error) {
	f.hit("eth_chainId")
	return (*hexutil.Big)(big.NewInt(f.chainID)), nil
}

func (f *fakeEth) GetCode(account common.Address, block string) (hexutil.Bytes, error) {
	f.hit("eth_getCode")
	return f.code[account], nil
}

func (f *fakeEth) GetStorageAt(account common.Address, slot common.Hash, block string) (hexutil.Bytes, error) {
	f.hit("eth_getStorageAt")
	word := f.storage[account][slot]
	return word.Bytes(), nil
}

func (f *fakeEth) Call(args callArgs, block string) (hexutil.Bytes, error) {
	f.hit("eth_call")
	if args.To == nil {
		return nil, errors.New("missing to")
	}
	out, ok := f.calls[*args.To]
	if !ok {
		return nil, errors.New("execution reverted")
	}
	return out, nil
}

func newFakeEth() *fakeEth {
	return &fakeEth{
		chainID: 84532,
		code: map[common.Address]hexutil.Bytes{
			proxyAddr: {0x60, 0x80, 0x60, 0x40},
		},
		storage: map[common.Address]map[common.Hash]common.Hash{
			proxyAddr: {bindings.ImplementationSlot: common.BytesToHash(implAddr.Bytes())},
		},
		calls: map[common.Address]hexutil.Bytes{
			implAddr: bindings.ImplementationSlot.Bytes(),
		},
		hits: map[string]int{},
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newInProcDialer serves fake over an in-process RPC server
func newInProcDialer(t *testing.T, fake *fakeEth, rpcCfg config.RPCConfig) *Dialer {
	t.Helper()
	server := rpc.NewServer()
	require.NoError(t, server.RegisterName("eth", fake))
	t.Cleanup(server.Stop)

	d := NewDialer(&config.RuntimeConfig{RPC: rpcCfg}, discardLogger())
	d.dial = func(context.Context, string) (*rpc.Client, error) {
		return rpc.DialInProc(server), nil
	}
	return d
}

func TestClient_Reads(t *testing.T) {
	ctx := context.Background()
	fake := newFakeEth()
	dialer := newInProcDialer(t, fake, config.RPCConfig{CallTimeout: 5 * time.Second, MaxRetries: 2})

	reader, err := dialer.Dial(ctx, config.Network{Name: "base-sepolia", RPCURL: "inproc"})
	require.NoError(t, err)
	defer reader.Close()

	t.Run("chain id", func(t *testing.T) {
		id, err := reader.ChainID(ctx)
		require.NoError(t, err)
		assert.Equal(t, uint64(84532), id)
	})

	t.Run("code", func(t *testing.T) {
		code, err := reader.CodeAt(ctx, proxyAddr)
		require.NoError(t, err)
		assert.Equal(t, []byte{0x60, 0x80, 0x60, 0x40}, code)

		code, err = reader.CodeAt(ctx, implAddr)
		require.NoError(t, err)
		assert.Empty(t, code)
	})

	t.Run("storage", func(t *testing.T) {
		word, err := reader.StorageAt(ctx, proxyAddr, bindings.ImplementationSlot)
		require.NoError(t, err)
		addr, ok := domain.AddressFromWord(word)
		require.True(t, ok)
		assert.Equal(t, implAddr, addr)

		word, err = reader.StorageAt(ctx, proxyAddr, bindings.BeaconSlot)
		require.NoError(t, err)
		assert.Equal(t, common.Hash{}, word)
	})

	t.Run("call", func(t *testing.T) {
		erc1967 := bindings.NewERC1967Proxy()
		out, err := reader.CallContract(ctx, implAddr, erc1967.PackProxiableUUID())
		require.NoError(t, err)
		uuid, err := erc1967.UnpackProxiableUUID(out)
		require.NoError(t, err)
		assert.Equal(t, bindings.ImplementationSlot, common.Hash(uuid))
	})

	t.Run("revert is not retried", func(t *testing.T) {
		before := fake.count("eth_call")
		_, err := reader.CallContract(ctx, proxyAddr, []byte{0xf8, 0x51, 0xa4, 0x40})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "execution reverted")
		assert.Equal(t, before+1, fake.count("eth_call"))
	})
}

func TestDialer_Dial(t *testing.T) {
	ctx := context.Background()

	t.Run("matching chain id", func(t *testing.T) {
		dialer := newInProcDialer(t, newFakeEth(), config.RPCConfig{})
		reader, err := dialer.Dial(ctx, config.Network{Name: "base-sepolia", ChainID: 84532, RPCURL: "inproc"})
		require.NoError(t, err)
		reader.Close()
	})

	t.Run("chain id mismatch", func(t *testing.T) {
		dialer := newInProcDialer(t, newFakeEth(), config.RPCConfig{})
		_, err := dialer.Dial(ctx, config.Network{Name: "mainnet", ChainID: 1, RPCURL: "inproc"})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrChainIDMismatch)
		assert.Contains(t, err.Error(), "expected 1, got 84532")
	})

	t.Run("no rpc url", func(t *testing.T) {
		dialer := NewDialer(&config.RuntimeConfig{}, discardLogger())
		_, err := dialer.Dial(ctx, config.Network{Name: "mainnet"})
		assert.ErrorIs(t, err, domain.ErrNotConnected)
	})

	t.Run("dial failure", func(t *testing.T) {
		dialer := NewDialer(&config.RuntimeConfig{}, discardLogger())
		dialer.dial = func(context.Context, string) (*rpc.Client, error) {
			return nil, errors.New("dial tcp: connection refused")
		}
		_, err := dialer.Dial(ctx, config.Network{Name: "mainnet", RPCURL: "http://localhost:1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to connect to RPC")
	})
}

type testRPCError struct{}

func (testRPCError) Error() string  { return "execution reverted" }
func (testRPCError) ErrorCode() int { return 3 }

func newTestClient(cfg config.RPCConfig) *Client {
	c := NewClient(nil, cfg, discardLogger())
	c.newBackOff = func() backoff.BackOff { return &backoff.ZeroBackOff{} }
	return c
}

func TestDo_Retries(t *testing.T) {
	ctx := context.Background()

	t.Run("transport errors are retried", func(t *testing.T) {
		c := newTestClient(config.RPCConfig{MaxRetries: 2})
		attempts := 0
		got, err := do(ctx, c, "eth_getCode", func(context.Context) (int, error) {
			attempts++
			if attempts < 3 {
				return 0, errors.New("connection reset by peer")
			}
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, got)
		assert.Equal(t, 3, attempts)
	})

	t.Run("retries are bounded", func(t *testing.T) {
		c := newTestClient(config.RPCConfig{MaxRetries: 1})
		attempts := 0
		_, err := do(ctx, c, "eth_getCode", func(context.Context) (int, error) {
			attempts++
			return 0, errors.New("connection reset by peer")
		})
		require.Error(t, err)
		assert.Equal(t, 2, attempts)
	})

	t.Run("no retries configured", func(t *testing.T) {
		c := newTestClient(config.RPCConfig{})
		attempts := 0
		_, err := do(ctx, c, "eth_getCode", func(context.Context) (int, error) {
			attempts++
			return 0, errors.New("connection reset by peer")
		})
		require.Error(t, err)
		assert.Equal(t, 1, attempts)
	})

	t.Run("node errors are final", func(t *testing.T) {
		c := newTestClient(config.RPCConfig{MaxRetries: 3})
		attempts := 0
		_, err := do(ctx, c, "eth_call", func(context.Context) (int, error) {
			attempts++
			return 0, testRPCError{}
		})
		require.Error(t, err)
		var rpcErr rpc.Error
		assert.True(t, errors.As(err, &rpcErr))
		assert.Equal(t, 1, attempts)
	})

	t.Run("per-call timeout applies", func(t *testing.T) {
		c := newTestClient(config.RPCConfig{CallTimeout: 10 * time.Millisecond})
		_, err := do(ctx, c, "eth_call", func(ctx context.Context) (int, error) {
			<-ctx.Done()
			return 0, ctx.Err()
		})
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestNewClient_RateLimit(t *testing.T) {
	c := NewClient(nil, config.RPCConfig{RateLimit: 5}, discardLogger())
	require.NotNil(t, c.limiter)
	assert.Equal(t, 1, c.limiter.Burst())
	assert.InDelta(t, 5.0, float64(c.limiter.Limit()), 0.001)

	c = NewClient(nil, config.RPCConfig{}, discardLogger())
	assert.Nil(t, c.limiter)
}
