package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/proxyguard/internal/domain"
	"github.com/trebuchet-org/proxyguard/internal/domain/config"
	"github.com/trebuchet-org/proxyguard/internal/domain/models"
	"golang.org/x/sync/errgroup"
)

// ValidateOptions selects which checks run. The offline checks (address
// configured, format, checksum, placeholder) always run.
type ValidateOptions struct {
	ValidateOnChain bool
	ValidateProxy   bool
	ValidateABI     bool
	// RPCEndpoint replaces the configured network endpoint when set
	RPCEndpoint string
}

// DefaultValidateOptions enables every check against the configured network
func DefaultValidateOptions() ValidateOptions {
	return ValidateOptions{
		ValidateOnChain: true,
		ValidateProxy:   true,
		ValidateABI:     true,
	}
}

func (o ValidateOptions) needsChain() bool {
	return o.ValidateOnChain || o.ValidateProxy || o.ValidateABI
}

// ValidateContracts checks registry entries against their declared
// configuration and the chain
type ValidateContracts struct {
	registry    ContractRegistry
	classifier  *ProxyClassifier
	dialer      ChainDialer // nil disables chain access
	network     *config.Network
	concurrency int
	sink        ProgressSink
	log         *slog.Logger
}

// NewValidateContracts creates a new ValidateContracts use case
func NewValidateContracts(
	registry ContractRegistry,
	classifier *ProxyClassifier,
	dialer ChainDialer,
	cfg *config.RuntimeConfig,
	sink ProgressSink,
	log *slog.Logger,
) *ValidateContracts {
	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	if sink == nil {
		sink = NopProgress{}
	}
	return &ValidateContracts{
		registry:    registry,
		classifier:  classifier,
		dialer:      dialer,
		network:     cfg.Network,
		concurrency: concurrency,
		sink:        sink,
		log:         log,
	}
}

// chainSession is the chain capability shared by the validations of one call.
// reader is nil when chain access is unavailable, in which case unavailable
// explains why.
type chainSession struct {
	reader      ChainReader
	chainID     uint64 // 0 when unknown
	unavailable *models.Issue
}

func (s *chainSession) close() {
	if s.reader != nil {
		s.reader.Close()
	}
}

// ValidateKey validates the registry entry stored under key. The only error
// is a missing key.
func (uc *ValidateContracts) ValidateKey(ctx context.Context, key string, opts ValidateOptions) (*models.ValidationResult, error) {
	cfg, err := uc.registry.Get(key)
	if err != nil {
		return nil, err
	}
	return uc.Validate(ctx, key, cfg, opts), nil
}

// Validate runs every check for one contract. Problems are reported in the
// result, never as errors.
func (uc *ValidateContracts) Validate(ctx context.Context, key string, cfg models.ContractConfig, opts ValidateOptions) *models.ValidationResult {
	session := uc.connect(ctx, opts)
	defer session.close()
	return uc.validate(ctx, session, key, cfg, opts)
}

// ValidateAll validates every registry entry concurrently and returns the
// results sorted by key. An empty registry yields an empty slice.
func (uc *ValidateContracts) ValidateAll(ctx context.Context, opts ValidateOptions) []*models.ValidationResult {
	keys := uc.registry.Keys()
	entries := uc.registry.All()
	results := make([]*models.ValidationResult, len(keys))
	if len(keys) == 0 {
		return results
	}

	session := uc.connect(ctx, opts)
	defer session.close()

	var done atomic.Int64
	var g errgroup.Group
	g.SetLimit(uc.concurrency)
	for i, key := range keys {
		g.Go(func() error {
			results[i] = uc.validate(ctx, session, key, entries[key], opts)
			uc.sink.OnProgress(ctx, ProgressEvent{
				Stage:   "validating",
				Current: int(done.Add(1)),
				Total:   len(keys),
				Message: key,
				Spinner: true,
			})
			return nil
		})
	}
	_ = g.Wait()

	uc.sink.OnProgress(ctx, ProgressEvent{
		Stage:   "completed",
		Current: len(keys),
		Total:   len(keys),
		Message: fmt.Sprintf("Validated %d contracts", len(keys)),
	})
	return results
}

// connect opens the chain session for one call. Failures are recorded on the
// session and later surface as warnings.
func (uc *ValidateContracts) connect(ctx context.Context, opts ValidateOptions) *chainSession {
	if !opts.needsChain() {
		return &chainSession{}
	}

	var network config.Network
	switch {
	case opts.RPCEndpoint != "":
		network = config.Network{Name: "override", RPCURL: opts.RPCEndpoint}
	case uc.network != nil && uc.network.RPCURL != "":
		network = *uc.network
	default:
		issue := models.NewIssue(models.IssueChainUnavailable, "no RPC endpoint configured, on-chain checks skipped")
		return &chainSession{unavailable: &issue}
	}

	if uc.dialer == nil {
		issue := models.NewIssue(models.IssueChainUnavailable, "chain access not provided, on-chain checks skipped")
		return &chainSession{unavailable: &issue}
	}

	reader, err := uc.dialer.Dial(ctx, network)
	if err != nil {
		uc.log.Warn("could not connect to chain", "network", network.Name, "error", err)
		issue := models.NewIssue(models.IssueChainUnavailable, "could not connect to %s: %v, on-chain checks skipped", network.Name, err)
		return &chainSession{unavailable: &issue}
	}

	session := &chainSession{reader: reader, chainID: network.ChainID}
	if session.chainID == 0 {
		if id, err := reader.ChainID(ctx); err == nil {
			session.chainID = id
		} else {
			uc.log.Debug("chain ID lookup failed", "error", err)
		}
	}
	return session
}

func (uc *ValidateContracts) validate(ctx context.Context, session *chainSession, key string, cfg models.ContractConfig, opts ValidateOptions) *models.ValidationResult {
	result := &models.ValidationResult{
		ContractKey:  key,
		ContractName: cfg.Name,
		Errors:       []models.Issue{},
		Warnings:     []models.Issue{},
	}
	log := uc.log.With("contract", key)
	defer func() {
		result.IsValid = len(result.Errors) == 0
		log.Debug("validated contract", "valid", result.IsValid, "errors", len(result.Errors), "warnings", len(result.Warnings))
	}()

	address, ok := cfg.ResolvedAddress()
	if !ok {
		result.Errors = append(result.Errors, models.NewIssue(models.IssueAddressNotConfigured,
			"%s has no address configured", cfg.Name))
		return result
	}
	result.Address = address

	if !domain.IsHexAddress(address) {
		result.Errors = append(result.Errors, models.NewIssue(models.IssueInvalidAddressFormat,
			"%q is not a 0x-prefixed 20-byte hex address", address))
		return result
	}

	if !domain.IsChecksummed(address) {
		result.Warnings = append(result.Warnings, models.NewIssue(models.IssueAddressNotChecksummed,
			"address %s is not checksummed, expected %s", address, domain.ChecksumAddress(address)))
	}

	if domain.IsPlaceholderAddress(address) {
		result.Errors = append(result.Errors, models.NewIssue(models.IssuePlaceholderAddress,
			"address %s is a placeholder", address))
		return result
	}

	// The declared proxy setup can be found incomplete without the chain
	proxyDeclared := opts.ValidateProxy && cfg.ProxyType.IsProxy()
	if proxyDeclared && cfg.ProxyAddress == "" {
		result.Warnings = append(result.Warnings, models.NewIssue(models.IssueProxyNotConfigured,
			"declared as a %s proxy but no proxy address is configured", cfg.ProxyType))
	}

	if !opts.needsChain() {
		return result
	}
	if session.reader == nil {
		result.Warnings = append(result.Warnings, *session.unavailable)
		return result
	}

	if cfg.ChainID != 0 && session.chainID != 0 && cfg.ChainID != session.chainID {
		result.Warnings = append(result.Warnings, models.NewIssue(models.IssueChainIDMismatch,
			"declared for chain %d but the endpoint serves chain %d", cfg.ChainID, session.chainID))
	}

	if proxyDeclared && cfg.ProxyAddress != "" {
		uc.checkProxy(ctx, session.reader, cfg, result)
	}

	var code []byte
	codeRead := false
	if opts.ValidateOnChain {
		log.Debug("checking bytecode", "address", address)
		var err error
		code, err = session.reader.CodeAt(ctx, common.HexToAddress(address))
		switch {
		case err != nil:
			result.Warnings = append(result.Warnings, models.NewIssue(models.IssueChainReadFailed,
				"could not read bytecode at %s: %v", address, err))
		case len(code) == 0:
			codeRead = true
			result.Errors = append(result.Errors, models.NewIssue(models.IssueNoBytecode,
				"no bytecode at %s", address))
		default:
			codeRead = true
			result.OnChainValidated = true
		}
	}

	if opts.ValidateABI && len(cfg.Functions) > 0 {
		if !codeRead {
			var err error
			code, err = session.reader.CodeAt(ctx, common.HexToAddress(address))
			if err != nil {
				result.Warnings = append(result.Warnings, models.NewIssue(models.IssueABIUnverified,
					"could not verify %d functions: %v", len(cfg.Functions), err))
				return result
			}
		}
		if len(code) == 0 {
			result.Warnings = append(result.Warnings, models.NewIssue(models.IssueABIUnverified,
				"could not verify %d functions: no bytecode at %s", len(cfg.Functions), address))
		}
	}

	return result
}

// checkProxy compares the declared proxy with what the chain reports.
// cfg.ProxyAddress must be set.
func (uc *ValidateContracts) checkProxy(ctx context.Context, chain ChainReader, cfg models.ContractConfig, result *models.ValidationResult) {
	info := uc.classifier.Classify(ctx, chain, common.HexToAddress(cfg.ProxyAddress)).Info()
	result.ProxyInfo = &info

	if !info.IsProxy {
		result.Warnings = append(result.Warnings, models.NewIssue(models.IssueProxyNotDetected,
			"declared as a %s proxy but no proxy was detected at %s", cfg.ProxyType, cfg.ProxyAddress))
		return
	}

	if info.Type != cfg.ProxyType && info.Type != models.ProxyTypeMinimal {
		result.Warnings = append(result.Warnings, models.NewIssue(models.IssueProxyTypeMismatch,
			"declared as a %s proxy but detected %s", cfg.ProxyType, info.Type))
	}

	if cfg.ImplementationAddress != "" && info.Implementation != "" &&
		!domain.SameAddress(cfg.ImplementationAddress, info.Implementation) {
		result.Errors = append(result.Errors, models.NewIssue(models.IssueImplementationMismatch,
			"implementation mismatch: declared %s, proxy points to %s", cfg.ImplementationAddress, info.Implementation))
	}
}
