package render

import (
	"fmt"
	"io"

	"github.com/trebuchet-org/proxyguard/internal/domain/models"
	"github.com/trebuchet-org/proxyguard/internal/usecase"
)

// InspectRenderer renders the classification of a single address
type InspectRenderer struct {
	out io.Writer
}

// NewInspectRenderer creates a new inspect renderer
func NewInspectRenderer(out io.Writer) *InspectRenderer {
	return &InspectRenderer{out: out}
}

// Render implements Renderer
func (r *InspectRenderer) Render(result *usecase.InspectProxyResult) error {
	t := newTable(r.out)
	t.AppendRow([]any{faintStyle.Sprint("Address"), addressStyle.Sprint(result.Address)})
	t.AppendRow([]any{faintStyle.Sprint("Chain ID"), result.ChainID})

	switch c := result.Classification.(type) {
	case models.UUPSProxy:
		t.AppendRow([]any{faintStyle.Sprint("Proxy"), proxyStyle.Sprint("UUPS")})
		t.AppendRow([]any{faintStyle.Sprint("Implementation"), addressStyle.Sprint(c.Implementation.Hex())})
	case models.TransparentProxy:
		t.AppendRow([]any{faintStyle.Sprint("Proxy"), proxyStyle.Sprint("Transparent")})
		t.AppendRow([]any{faintStyle.Sprint("Implementation"), addressStyle.Sprint(c.Implementation.Hex())})
		t.AppendRow([]any{faintStyle.Sprint("Admin"), addressStyle.Sprint(c.Admin.Hex())})
	case models.MinimalProxy:
		t.AppendRow([]any{faintStyle.Sprint("Proxy"), proxyStyle.Sprint("EIP-1967 (pattern unknown)")})
		t.AppendRow([]any{faintStyle.Sprint("Implementation"), addressStyle.Sprint(c.Implementation.Hex())})
	case models.BeaconProxy:
		t.AppendRow([]any{faintStyle.Sprint("Proxy"), proxyStyle.Sprint("Beacon")})
		t.AppendRow([]any{faintStyle.Sprint("Beacon"), addressStyle.Sprint(c.Beacon.Hex())})
	default:
		t.AppendRow([]any{faintStyle.Sprint("Proxy"), faintStyle.Sprint("not a proxy")})
	}

	t.Render()
	return nil
}

var _ Renderer[*usecase.InspectProxyResult] = (*InspectRenderer)(nil)

// AddressesRenderer renders the resolved address of every registry entry
type AddressesRenderer struct {
	out io.Writer
}

// NewAddressesRenderer creates a new addresses renderer
func NewAddressesRenderer(out io.Writer) *AddressesRenderer {
	return &AddressesRenderer{out: out}
}

// Render prints one row per key in key order
func (r *AddressesRenderer) Render(result *usecase.ListContractsResult) error {
	if len(result.Contracts) == 0 {
		warningStyle.Fprintln(r.out, "No contracts declared in the registry.")
		return nil
	}

	unset := 0
	t := newTable(r.out)
	for _, entry := range result.Contracts {
		if entry.ResolvedAddress == models.UnsetAddress {
			unset++
		}
		t.AppendRow([]any{keyStyle.Sprint(entry.Key), displayAddress(entry.ResolvedAddress)})
	}
	t.Render()

	if unset > 0 {
		fmt.Fprintln(r.out)
		fmt.Fprintln(r.out, FormatWarning(fmt.Sprintf("%d of %d contracts have no address", unset, len(result.Contracts))))
	}
	return nil
}

var _ Renderer[*usecase.ListContractsResult] = (*AddressesRenderer)(nil)
