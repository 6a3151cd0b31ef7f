package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/proxyguard/internal/adapters/progress"
	"github.com/trebuchet-org/proxyguard/internal/app"
	"github.com/trebuchet-org/proxyguard/internal/config"
	"github.com/trebuchet-org/proxyguard/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "proxyguard",
		Short: "Contract registry and proxy validator",
		Long: `proxyguard checks a registry of deployed contracts against their declared
configuration and the chain: address format, checksums, placeholders,
EIP-1967 proxy layout, bytecode presence and ABI availability.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}

			// Find project root
			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				// inspect needs no registry, and --registry names one explicitly
				if cmd.Name() != "inspect" && !cmd.Flags().Changed("registry") {
					return err
				}
				projectRoot = "."
			}

			// Set up viper, binding every parsed flag
			v := config.SetupViper(projectRoot, cmd)

			sink := newProgressSink(v.GetBool("json"), v.GetBool("non_interactive"))

			// Initialize app with DI
			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured
			if appInstance.Config.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
				// Store cancel func to be called on command completion
				cmd.PostRun = func(cmd *cobra.Command, args []string) {
					cancel()
				}
			}

			cmd.SetContext(ctx)

			return nil
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.Bool("debug", false, "Enable debug output")
	flags.Bool("non-interactive", false, "Disable interactive prompts")
	flags.Bool("json", false, "Output results as JSON")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("registry", "", "Registry file (defaults to proxyguard.toml or proxyguard.yaml)")
	flags.StringP("network", "n", "", "Network name shown in output")
	flags.String("rpc-url", "", "RPC endpoint, overrides the registry network")
	flags.Uint64("chain-id", 0, "Expected chain ID of the RPC endpoint")
	flags.Duration("timeout", 0, "Deadline for the whole command (e.g. 30s, 2m)")
	flags.Int("concurrency", 0, "Parallel validations in a batch")
	flags.Duration("rpc-timeout", 0, "Deadline for a single RPC request")
	flags.Uint("rpc-retries", 0, "Retries for failed RPC requests")
	flags.Float64("rpc-rate-limit", 0, "RPC requests per second, 0 disables limiting")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "registry",
		Title: "Registry Commands",
	})

	// Main commands
	validateCmd := NewValidateCmd()
	validateCmd.GroupID = "main"
	rootCmd.AddCommand(validateCmd)

	inspectCmd := NewInspectCmd()
	inspectCmd.GroupID = "main"
	rootCmd.AddCommand(inspectCmd)

	// Registry commands
	contractsCmd := NewContractsCmd()
	contractsCmd.GroupID = "registry"
	rootCmd.AddCommand(contractsCmd)

	addressesCmd := NewAddressesCmd()
	addressesCmd.GroupID = "registry"
	rootCmd.AddCommand(addressesCmd)

	// Version command
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// newProgressSink picks the progress reporter for the session. JSON output
// stays clean on stdout, so progress is only drawn on stderr.
func newProgressSink(jsonOutput, nonInteractive bool) usecase.ProgressSink {
	if jsonOutput {
		return progress.NewNopSink()
	}
	return progress.NewValidateProgress(os.Stderr, isInteractive(nonInteractive))
}

func isInteractive(nonInteractive bool) bool {
	return !nonInteractive && !config.IsNonInteractiveEnv()
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
