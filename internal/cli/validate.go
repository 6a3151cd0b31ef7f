package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/proxyguard/internal/cli/render"
	"github.com/trebuchet-org/proxyguard/internal/domain/models"
	"github.com/trebuchet-org/proxyguard/internal/usecase"
)

// NewValidateCmd creates the validate command
func NewValidateCmd() *cobra.Command {
	var (
		allFlag    bool
		noChain    bool
		noProxy    bool
		noABI      bool
		strictFlag bool
	)

	cmd := &cobra.Command{
		Use:   "validate [key...]",
		Short: "Validate registry entries against the chain",
		Long: `Validate contracts declared in the registry.

Offline checks (address configured, format, checksum, placeholder) always run.
On-chain checks need an RPC endpoint from the registry [network] table,
--rpc-url or PROXYGUARD_RPC_URL; without one they are skipped with a warning.

Problems are reported, not returned: the command exits 0 unless --strict is
set and at least one contract is invalid.`,
		Example: `  # Validate every contract
  proxyguard validate --all

  # Validate one contract without touching the chain
  proxyguard validate game_token --no-chain

  # Fail CI on any invalid contract
  proxyguard validate --all --strict --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			opts := usecase.DefaultValidateOptions()
			opts.ValidateOnChain = !noChain
			opts.ValidateProxy = !noChain && !noProxy
			opts.ValidateABI = !noChain && !noABI

			ctx := cmd.Context()

			var results []*models.ValidationResult
			switch {
			case allFlag:
				results = app.ValidateContracts.ValidateAll(ctx, opts)
			default:
				keys := args
				if len(keys) == 0 {
					if !isInteractive(app.Config.NonInteractive) {
						return fmt.Errorf("please provide a contract key or use --all")
					}
					key, err := app.Selector.SelectContract(ctx, app.Registry.Keys(), "Select contract to validate")
					if err != nil {
						return err
					}
					keys = []string{key}
				}

				for _, key := range keys {
					result, err := app.ValidateContracts.ValidateKey(ctx, key, opts)
					if err != nil {
						return err
					}
					results = append(results, result)
				}
			}

			report := models.NewValidationReport(results)
			if app.Config.JSON {
				if err := render.RenderJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else if err := render.NewValidateRenderer(cmd.OutOrStdout()).Render(report); err != nil {
				return err
			}

			if strictFlag && report.HasErrors() {
				return fmt.Errorf("%d of %d contracts failed validation", report.Summary.Invalid, report.Summary.Total)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&allFlag, "all", false, "Validate every contract in the registry")
	cmd.Flags().BoolVar(&noChain, "no-chain", false, "Skip all on-chain checks")
	cmd.Flags().BoolVar(&noProxy, "no-proxy", false, "Skip the proxy consistency check")
	cmd.Flags().BoolVar(&noABI, "no-abi", false, "Skip the ABI presence check")
	cmd.Flags().BoolVar(&strictFlag, "strict", false, "Exit non-zero when any contract is invalid")
	cmd.Flags().Bool("admin-slot", false, "Read the EIP-1967 admin slot when admin() reverts")

	return cmd
}
