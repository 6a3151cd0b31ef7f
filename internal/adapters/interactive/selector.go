package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/proxyguard/internal/domain/config"
	"github.com/trebuchet-org/proxyguard/internal/domain/models"
	"github.com/trebuchet-org/proxyguard/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config   *config.RuntimeConfig
	registry usecase.ContractRegistry
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig, registry usecase.ContractRegistry) *SelectorAdapter {
	return &SelectorAdapter{config: cfg, registry: registry}
}

// SelectContract asks the user to pick one of keys
func (s *SelectorAdapter) SelectContract(ctx context.Context, keys []string, prompt string) (string, error) {
	// In non-interactive mode, we can't select
	if s.config.NonInteractive {
		return "", fmt.Errorf("interactive selection not available in non-interactive mode")
	}

	if len(keys) == 0 {
		return "", fmt.Errorf("no contracts provided for selection")
	}

	// If only one candidate, return it directly
	if len(keys) == 1 {
		return keys[0], nil
	}

	options := formatContractOptions(keys, s.registry)

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:             prompt,
		Items:             options,
		Templates:         templates,
		Size:              10,
		StartInSearchMode: true,
		Searcher:          createFuzzySearchFunc(keys),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return "", fmt.Errorf("selection cancelled: %w", err)
	}

	return keys[index], nil
}

// formatContractOptions creates display strings for contract selection, as
// "key  Name [UUPS]"
func formatContractOptions(keys []string, registry usecase.ContractRegistry) []string {
	options := make([]string, len(keys))
	for i, key := range keys {
		keyStr := color.New(color.FgWhite, color.Bold).Sprint(key)

		cfg, err := registry.Get(key)
		if err != nil {
			options[i] = keyStr
			continue
		}

		option := keyStr
		if cfg.Name != "" && cfg.Name != key {
			option += " " + color.New(color.FgBlue).Sprint(cfg.Name)
		}
		if cfg.ProxyType.IsProxy() {
			option += " " + color.New(color.FgYellow).Sprintf("[%s]", cfg.ProxyType)
		}
		if cfg.ResolvedAddressOrUnset() == models.UnsetAddress {
			option += " " + color.New(color.FgRed).Sprint("(unset)")
		}
		options[i] = option
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui.
// It matches against the plain keys so color codes never interfere.
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		// Convert to lowercase for case-insensitive search
		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		// First try simple substring match
		if strings.Contains(item, input) {
			return true
		}

		// Then try fuzzy match
		pattern := fuzzy.Find(input, []string{item})
		return len(pattern) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.ContractSelector = (*SelectorAdapter)(nil)
