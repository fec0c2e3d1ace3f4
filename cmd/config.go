package cmd

import (
	"fmt"

	"github.com/BurntSushi/toml"
	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/greetcard/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and change configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the configuration in effect",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := toml.NewEncoder(cmd.OutOrStdout()).Encode(app.config); err != nil {
			return fmt.Errorf("error encoding config: %w", err)
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one configuration key",
	Long: `Set changes one key and saves the file if the result is valid. Keys:
  default_type, default_theme, pack, log_level, decoration_count,
  google.base_url, google.model, zhipu.base_url, zhipu.model, photos.base_url`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Set(args[0], args[1])
		if err != nil {
			return err
		}
		app.config = cfg
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s\n", colorize.GreenString("✓"), args[0], args[1])
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.GetConfigFilePath())
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configSetCmd, configPathCmd)
}
