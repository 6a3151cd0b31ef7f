package render

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/trebuchet-org/proxyguard/internal/domain/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	keyStyle       = color.New(color.FgWhite, color.Bold)
	nameStyle      = color.New(color.FgCyan)
	addressStyle   = color.New(color.FgWhite)
	unsetStyle     = color.New(color.FgRed)
	proxyStyle     = color.New(color.FgMagenta)
	faintStyle     = color.New(color.Faint)
	errorStyle     = color.New(color.FgRed)
	warningStyle   = color.New(color.FgYellow)
	successStyle   = color.New(color.FgGreen)
	headerStyle    = color.New(color.Bold, color.FgHiWhite)
	titleCaser     = cases.Title(language.English)
	ansiEscapeExpr = regexp.MustCompile(`\x1b\[[0-9;]*[mGKHF]`)
)

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return warningStyle.Sprintf("⚠️  %s", message)
}

// FormatError formats an error message with the error icon
func FormatError(message string) string {
	// Extract just the error message part (after the last colon if it's an error chain)
	parts := strings.Split(message, ": ")
	msg := parts[len(parts)-1]

	// Capitalize first letter
	if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}

	return errorStyle.Sprintf("❌ %s", msg)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return successStyle.Sprintf("✅ %s", message)
}

// RenderJSON writes v as indented JSON
func RenderJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// displayProxyType renders a proxy type for humans, e.g. "Transparent".
// UUPS is an acronym and stays upper case.
func displayProxyType(t models.ProxyType) string {
	switch t {
	case models.ProxyTypeUUPS:
		return "UUPS"
	case models.ProxyTypeNone, "":
		return "-"
	default:
		return titleCaser.String(strings.ToLower(string(t)))
	}
}

// displayAddress renders an address, or the unset marker in red
func displayAddress(addr string) string {
	if addr == "" || addr == models.UnsetAddress {
		return unsetStyle.Sprint(models.UnsetAddress)
	}
	return addressStyle.Sprint(addr)
}

// newTable creates a borderless table in the style used across commands
func newTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateHeader = false
	t.Style().Options.SeparateRows = false
	t.Style().Box = table.BoxStyle{
		PaddingRight: "   ",
	}
	t.Style().Format.Header = text.FormatDefault
	return t
}

// stripAnsiCodes removes ANSI escape sequences from a string
func stripAnsiCodes(s string) string {
	return ansiEscapeExpr.ReplaceAllString(s, "")
}
