package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/proxyguard/internal/cli/render"
	"github.com/trebuchet-org/proxyguard/internal/usecase"
)

// NewInspectCmd creates the inspect command
func NewInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <address>",
		Short: "Classify the proxy pattern behind an address",
		Long: `Read the EIP-1967 slots of an address and report which proxy pattern it
follows, without consulting the registry.`,
		Example: `  proxyguard inspect 0xAbC... --rpc-url http://localhost:8545`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.InspectProxy.Run(cmd.Context(), usecase.InspectProxyParams{
				Address: args[0],
			})
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result)
			}
			return render.NewInspectRenderer(cmd.OutOrStdout()).Render(result)
		},
	}

	cmd.Flags().Bool("admin-slot", false, "Read the EIP-1967 admin slot when admin() reverts")

	return cmd
}
