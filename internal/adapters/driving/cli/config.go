package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ansera-cli/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long: `View and change the configuration stored in ~/.ansera/config.toml.

Keys use dotted paths:
  ansera config set document.path ./report.pdf
  ansera config get retrieval.top_k
  ansera config list`,
	RunE: runConfigList,
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all configuration values",
	RunE:  runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print one configuration value",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	if err := ensureSettingsService(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	for _, key := range settingsService.Keys() {
		value, err := settingValue(settings, key)
		if err != nil {
			return err
		}
		cmd.Printf("%-26s = %s\n", key, value)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if err := ensureSettingsService(); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	value, err := settingValue(settings, args[0])
	if err != nil {
		return err
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if err := ensureSettingsService(); err != nil {
		return err
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", args[0], args[1])
	return nil
}

// settingValue renders one settings field by its configuration key.
func settingValue(settings *domain.Settings, key string) (string, error) {
	switch key {
	case "document.path":
		return settings.Document.Path, nil
	case "chunking.size":
		return strconv.Itoa(settings.Chunking.Size), nil
	case "chunking.overlap":
		return strconv.Itoa(settings.Chunking.Overlap), nil
	case "retrieval.top_k":
		return strconv.Itoa(settings.Retrieval.TopK), nil
	case "embedding.model":
		return settings.Embedding.Model, nil
	case "embedding.base_url":
		return settings.Embedding.BaseURL, nil
	case "generation.model":
		return settings.Generation.Model, nil
	case "generation.base_url":
		return settings.Generation.BaseURL, nil
	case "generation.timeout_seconds":
		return strconv.Itoa(settings.Generation.TimeoutSeconds), nil
	case "cache.enabled":
		return strconv.FormatBool(settings.Cache.Enabled), nil
	default:
		return "", fmt.Errorf("%w: unknown configuration key %q", domain.ErrInvalidArgument, key)
	}
}
