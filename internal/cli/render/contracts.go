package render

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/trebuchet-org/proxyguard/internal/usecase"
)

// ContractsRenderer renders the registry listing
type ContractsRenderer struct {
	out io.Writer
}

// NewContractsRenderer creates a new contracts renderer
func NewContractsRenderer(out io.Writer) *ContractsRenderer {
	return &ContractsRenderer{out: out}
}

// Render implements Renderer
func (r *ContractsRenderer) Render(result *usecase.ListContractsResult) error {
	if len(result.Contracts) == 0 {
		if result.Total == 0 {
			warningStyle.Fprintln(r.out, "No contracts declared in the registry.")
		} else {
			warningStyle.Fprintf(r.out, "No contracts match (%d declared).\n", result.Total)
		}
		return nil
	}

	t := newTable(r.out)
	t.AppendHeader(table.Row{
		headerStyle.Sprint("KEY"),
		headerStyle.Sprint("NAME"),
		headerStyle.Sprint("TYPE"),
		headerStyle.Sprint("ADDRESS"),
		headerStyle.Sprint("VERSION"),
		headerStyle.Sprint("CHAIN"),
	})
	for _, entry := range result.Contracts {
		cfg := entry.Config
		version := cfg.Version
		if version == "" {
			version = "-"
		}
		chain := "-"
		if cfg.ChainID != 0 {
			chain = fmt.Sprint(cfg.ChainID)
		}
		t.AppendRow(table.Row{
			keyStyle.Sprint(entry.Key),
			nameStyle.Sprint(cfg.Name),
			proxyStyle.Sprint(displayProxyType(cfg.ProxyType)),
			displayAddress(entry.ResolvedAddress),
			faintStyle.Sprint(version),
			faintStyle.Sprint(chain),
		})
	}
	t.Render()

	if len(result.Contracts) != result.Total {
		fmt.Fprintln(r.out)
		faintStyle.Fprintf(r.out, "Showing %d of %d contracts\n", len(result.Contracts), result.Total)
	}
	return nil
}

var _ Renderer[*usecase.ListContractsResult] = (*ContractsRenderer)(nil)
