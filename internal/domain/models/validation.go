package models

import "fmt"

// IssueCode identifies a validation finding independently of its message
type IssueCode string

const (
	// Configuration errors
	IssueAddressNotConfigured   IssueCode = "address_not_configured"
	IssueInvalidAddressFormat   IssueCode = "invalid_address_format"
	IssuePlaceholderAddress     IssueCode = "placeholder_address"
	IssueImplementationMismatch IssueCode = "implementation_mismatch"

	// Configuration warnings
	IssueAddressNotChecksummed IssueCode = "address_not_checksummed"
	IssueProxyNotConfigured    IssueCode = "proxy_not_configured"
	IssueProxyNotDetected      IssueCode = "proxy_not_detected"
	IssueProxyTypeMismatch     IssueCode = "proxy_type_mismatch"
	IssueABIUnverified         IssueCode = "abi_unverified"
	IssueChainIDMismatch       IssueCode = "chain_id_mismatch"

	// Liveness errors
	IssueNoBytecode IssueCode = "no_bytecode"

	// Transport faults, always downgraded to warnings
	IssueChainUnavailable IssueCode = "chain_unavailable"
	IssueChainReadFailed  IssueCode = "chain_read_failed"
)

// Issue is a single finding of a validation run
type Issue struct {
	Code    IssueCode `json:"code"`
	Message string    `json:"message"`
}

func (i Issue) String() string {
	return i.Message
}

// NewIssue formats a finding
func NewIssue(code IssueCode, format string, args ...any) Issue {
	return Issue{Code: code, Message: fmt.Sprintf(format, args...)}
}

// ValidationResult is the outcome of validating one ContractConfig.
// Errors and Warnings keep the order in which checks ran.
type ValidationResult struct {
	ContractKey      string     `json:"contractKey"`
	ContractName     string     `json:"contractName"`
	Address          string     `json:"address,omitempty"`
	IsValid          bool       `json:"isValid"`
	Errors           []Issue    `json:"errors"`
	Warnings         []Issue    `json:"warnings"`
	ProxyInfo        *ProxyInfo `json:"proxyInfo,omitempty"`
	OnChainValidated bool       `json:"onChainValidated"`
}

// HasError reports whether an error with the given code was recorded
func (r *ValidationResult) HasError(code IssueCode) bool {
	return hasCode(r.Errors, code)
}

// HasWarning reports whether a warning with the given code was recorded
func (r *ValidationResult) HasWarning(code IssueCode) bool {
	return hasCode(r.Warnings, code)
}

func hasCode(issues []Issue, code IssueCode) bool {
	for _, issue := range issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}

// ValidationSummary provides summary statistics over a batch
type ValidationSummary struct {
	Total            int `json:"total"`
	Valid            int `json:"valid"`
	Invalid          int `json:"invalid"`
	WithWarnings     int `json:"withWarnings"`
	OnChainValidated int `json:"onChainValidated"`
}

// ValidationReport is the collected result of a batch validation
type ValidationReport struct {
	Results []*ValidationResult `json:"results"`
	Summary ValidationSummary   `json:"summary"`
}

// NewValidationReport summarizes results without reordering them
func NewValidationReport(results []*ValidationResult) *ValidationReport {
	report := &ValidationReport{Results: results}
	if report.Results == nil {
		report.Results = []*ValidationResult{}
	}
	for _, r := range report.Results {
		report.Summary.Total++
		if r.IsValid {
			report.Summary.Valid++
		} else {
			report.Summary.Invalid++
		}
		if len(r.Warnings) > 0 {
			report.Summary.WithWarnings++
		}
		if r.OnChainValidated {
			report.Summary.OnChainValidated++
		}
	}
	return report
}

// HasErrors reports whether any result in the batch is invalid
func (r *ValidationReport) HasErrors() bool {
	return r.Summary.Invalid > 0
}
