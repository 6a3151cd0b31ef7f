package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/proxyguard/internal/domain/models"
)

// ValidateRenderer renders validation reports
type ValidateRenderer struct {
	out io.Writer
}

// NewValidateRenderer creates a new validate renderer
func NewValidateRenderer(out io.Writer) *ValidateRenderer {
	return &ValidateRenderer{out: out}
}

// Render prints one block per contract followed by the summary line
func (r *ValidateRenderer) Render(report *models.ValidationReport) error {
	if len(report.Results) == 0 {
		warningStyle.Fprintln(r.out, "No contracts declared in the registry.")
		return nil
	}

	headerStyle.Fprintf(r.out, "🔍 Validating %d contract(s)\n\n", len(report.Results))
	for _, result := range report.Results {
		r.renderResult(result)
	}

	fmt.Fprintln(r.out)
	r.renderSummary(report.Summary)
	return nil
}

func (r *ValidateRenderer) renderResult(result *models.ValidationResult) {
	icon := "✅"
	if !result.IsValid {
		icon = "❌"
	} else if len(result.Warnings) > 0 {
		icon = "⚠️ "
	}

	line := fmt.Sprintf("%s %s", icon, keyStyle.Sprint(result.ContractKey))
	if result.ContractName != "" && result.ContractName != result.ContractKey {
		line += " " + nameStyle.Sprint(result.ContractName)
	}
	if result.Address != "" {
		line += " " + displayAddress(result.Address)
	}
	if result.OnChainValidated {
		line += " " + faintStyle.Sprint("(on-chain)")
	}
	fmt.Fprintln(r.out, line)

	if info := result.ProxyInfo; info != nil && info.IsProxy {
		fmt.Fprintf(r.out, "   ↳ %s %s\n", proxyStyle.Sprintf("%s proxy", displayProxyType(info.Type)), proxyTarget(*info))
	}
	for _, issue := range result.Errors {
		errorStyle.Fprintf(r.out, "   ✗ %s\n", issue.Message)
	}
	for _, issue := range result.Warnings {
		warningStyle.Fprintf(r.out, "   ⚠ %s\n", issue.Message)
	}
}

func (r *ValidateRenderer) renderSummary(s models.ValidationSummary) {
	summary := fmt.Sprintf("%d valid, %d invalid, %d with warnings, %d checked on-chain",
		s.Valid, s.Invalid, s.WithWarnings, s.OnChainValidated)
	if s.Invalid > 0 {
		fmt.Fprintln(r.out, FormatError(summary))
		return
	}
	fmt.Fprintln(r.out, FormatSuccess(summary))
}

// proxyTarget describes where a detected proxy points
func proxyTarget(info models.ProxyInfo) string {
	if info.Implementation == "" {
		return ""
	}
	label := "implementation"
	if info.Type == models.ProxyTypeBeacon {
		label = "beacon"
	}
	target := fmt.Sprintf("→ %s %s", label, addressStyle.Sprint(info.Implementation))
	if info.Admin != "" {
		target += fmt.Sprintf(", admin %s", addressStyle.Sprint(info.Admin))
	}
	return target
}

var _ Renderer[*models.ValidationReport] = (*ValidateRenderer)(nil)
