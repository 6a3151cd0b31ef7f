package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/proxyguard/internal/cli/render"
	"github.com/trebuchet-org/proxyguard/internal/domain/models"
	"github.com/trebuchet-org/proxyguard/internal/usecase"
)

// NewContractsCmd creates the contracts command
func NewContractsCmd() *cobra.Command {
	var (
		proxyType string
		search    string
		unsetOnly bool
	)

	cmd := &cobra.Command{
		Use:     "contracts",
		Aliases: []string{"ls"},
		Short:   "List contracts declared in the registry",
		Example: `  # List every contract
  proxyguard contracts

  # UUPS proxies only
  proxyguard contracts --type uups

  # Entries still missing an address
  proxyguard contracts --unset`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListContractsParams{
				Search:    search,
				UnsetOnly: unsetOnly,
			}
			if proxyType != "" {
				params.ProxyType, err = models.ParseProxyType(proxyType)
				if err != nil {
					return err
				}
			}

			result := app.ListContracts.Run(params)
			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewContractsRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().StringVar(&proxyType, "type", "", "Filter by proxy type (none, uups, transparent, beacon)")
	cmd.Flags().StringVar(&search, "search", "", "Filter by key or name")
	cmd.Flags().BoolVar(&unsetOnly, "unset", false, "Only show contracts without an address")

	return cmd
}
