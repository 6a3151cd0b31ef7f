package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/proxyguard/internal/cli/render"
	"github.com/trebuchet-org/proxyguard/internal/usecase"
)

// NewAddressesCmd creates the addresses command
func NewAddressesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "addresses",
		Short: "Show the resolved address of every contract",
		Long: `Show the address each registry entry resolves to: the proxy address when
one is declared, otherwise the contract address, otherwise "unset".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), app.ListContracts.ResolvedAddresses())
			}
			return render.NewAddressesRenderer(cmd.OutOrStdout()).Render(app.ListContracts.Run(usecase.ListContractsParams{}))
		},
	}
}
