package usecase

import (
	"context"
	"log/slog"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/proxyguard/internal/domain"
	"github.com/trebuchet-org/proxyguard/internal/domain/bindings"
	"github.com/trebuchet-org/proxyguard/internal/domain/models"
)

// ClassifierOptions tunes proxy classification
type ClassifierOptions struct {
	// UseAdminSlot classifies a proxy as Transparent from a populated EIP-1967
	// admin slot when the admin() call itself fails
	UseAdminSlot bool
}

// classificationStrategy narrows an EIP-1967 proxy whose implementation slot
// is populated down to one pattern. match returns false when it does not apply.
type classificationStrategy struct {
	name  string
	match func(ctx context.Context, c *ProxyClassifier, chain ChainReader, proxy, impl common.Address) (models.Classification, bool)
}

// implementationStrategies are tried in order, first match wins. The last
// entry always matches.
var implementationStrategies = []classificationStrategy{
	{name: "uups", match: matchUUPS},
	{name: "transparent", match: matchTransparent},
	{name: "minimal", match: matchMinimal},
}

// adminSlotStrategy is inserted before the fallback when UseAdminSlot is set
var adminSlotStrategy = classificationStrategy{name: "transparent-admin-slot", match: matchAdminSlot}

// ProxyClassifier detects proxy patterns from bytecode, EIP-1967 storage and
// marker calls. It holds no per-call state.
type ProxyClassifier struct {
	proxy      *bindings.ERC1967Proxy
	strategies []classificationStrategy
	log        *slog.Logger
}

// NewProxyClassifier creates a classifier
func NewProxyClassifier(opts ClassifierOptions, log *slog.Logger) *ProxyClassifier {
	strategies := append([]classificationStrategy(nil), implementationStrategies...)
	if opts.UseAdminSlot {
		last := len(strategies) - 1
		strategies = append(strategies[:last:last], adminSlotStrategy, strategies[last])
	}
	return &ProxyClassifier{
		proxy:      bindings.NewERC1967Proxy(),
		strategies: strategies,
		log:        log,
	}
}

// Strategies returns the names of the implementation-slot strategies in the
// order they are tried
func (c *ProxyClassifier) Strategies() []string {
	names := make([]string, len(c.strategies))
	for i, s := range c.strategies {
		names[i] = s.name
	}
	return names
}

// Classify inspects address on chain. Read failures and a nil chain yield
// models.NotAProxy; classification never returns an error.
func (c *ProxyClassifier) Classify(ctx context.Context, chain ChainReader, address common.Address) models.Classification {
	if chain == nil {
		return models.NotAProxy{}
	}
	log := c.log.With("address", address.Hex())

	code, err := chain.CodeAt(ctx, address)
	if err != nil {
		log.Debug("bytecode read failed", "error", err)
		return models.NotAProxy{}
	}
	if len(code) == 0 {
		log.Debug("no bytecode at address")
		return models.NotAProxy{}
	}

	word, err := chain.StorageAt(ctx, address, bindings.ImplementationSlot)
	if err != nil {
		log.Debug("implementation slot read failed", "error", err)
		return models.NotAProxy{}
	}
	if impl, ok := domain.AddressFromWord(word); ok {
		for _, s := range c.strategies {
			if result, ok := s.match(ctx, c, chain, address, impl); ok {
				log.Debug("classified proxy", "strategy", s.name, "implementation", impl.Hex())
				return result
			}
		}
	}

	word, err = chain.StorageAt(ctx, address, bindings.BeaconSlot)
	if err != nil {
		log.Debug("beacon slot read failed", "error", err)
		return models.NotAProxy{}
	}
	if beacon, ok := domain.AddressFromWord(word); ok {
		log.Debug("classified proxy", "strategy", "beacon", "beacon", beacon.Hex())
		return models.BeaconProxy{Beacon: beacon}
	}

	return models.NotAProxy{}
}

// matchUUPS calls proxiableUUID() on the implementation. OpenZeppelin's UUPS
// implementations revert that call when it arrives through the proxy.
func matchUUPS(ctx context.Context, c *ProxyClassifier, chain ChainReader, _, impl common.Address) (models.Classification, bool) {
	out, err := chain.CallContract(ctx, impl, c.proxy.PackProxiableUUID())
	if err != nil {
		return nil, false
	}
	uuid, err := c.proxy.UnpackProxiableUUID(out)
	if err != nil || common.Hash(uuid) != bindings.ImplementationSlot {
		return nil, false
	}
	return models.UUPSProxy{Implementation: impl}, true
}

func matchTransparent(ctx context.Context, c *ProxyClassifier, chain ChainReader, proxy, impl common.Address) (models.Classification, bool) {
	out, err := chain.CallContract(ctx, proxy, c.proxy.PackAdmin())
	if err != nil {
		return nil, false
	}
	admin, err := c.proxy.UnpackAdmin(out)
	if err != nil {
		return nil, false
	}
	return models.TransparentProxy{Implementation: impl, Admin: admin}, true
}

func matchAdminSlot(ctx context.Context, _ *ProxyClassifier, chain ChainReader, proxy, impl common.Address) (models.Classification, bool) {
	word, err := chain.StorageAt(ctx, proxy, bindings.AdminSlot)
	if err != nil {
		return nil, false
	}
	admin, ok := domain.AddressFromWord(word)
	if !ok {
		return nil, false
	}
	return models.TransparentProxy{Implementation: impl, Admin: admin}, true
}

func matchMinimal(_ context.Context, _ *ProxyClassifier, _ ChainReader, _, impl common.Address) (models.Classification, bool) {
	return models.MinimalProxy{Implementation: impl}, true
}
