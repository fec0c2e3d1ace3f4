package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/greetcard/internal/config"
	"github.com/arcanaland/greetcard/internal/pack"
	"github.com/arcanaland/greetcard/internal/validator"
)

// packCmd represents the pack command group
var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Manage content packs",
	Long: `A content pack is a TOML file holding message templates, color schemes,
music tracks and decoration patterns. Entries a pack leaves out are taken from
the built-in pack. Named packs live in the pack library
($XDG_DATA_HOME/greetcard/packs).`,
}

// packValidateCmd represents the pack validate command
var packValidateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a content pack file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		packPath := args[0]
		if _, err := os.Stat(packPath); errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("pack file not found: %s", packPath)
		}

		v := validator.NewValidator(packPath)
		results, err := v.Validate()
		if err != nil {
			return fmt.Errorf("validation error: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if results.Valid() {
			fmt.Fprintf(out, "%s Pack '%s' is valid.\n", colorize.GreenString("✓"), packPath)
		} else {
			fmt.Fprintf(out, "%s Pack '%s' has %d validation errors:\n", colorize.RedString("✗"), packPath, len(results.Errors))
			for i, err := range results.Errors {
				fmt.Fprintf(out, "%d. %s\n", i+1, err)
			}
		}

		if len(results.Warnings) > 0 {
			fmt.Fprintln(out, "\nWarnings:")
			for i, warn := range results.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, colorize.YellowString("%s", warn))
			}
		}

		if !results.Valid() {
			return errors.New("validation failed")
		}
		return nil
	},
}

// packExportCmd writes the active pack, by default the built-in one
var packExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the active content pack as TOML",
	Long: `Export writes the active pack to a file, or to stdout when no file is given.
The exported built-in pack is a complete starting point for a custom pack.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := loadPack()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			return p.Encode(cmd.OutOrStdout())
		}

		file, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("error creating pack file: %w", err)
		}
		if err := p.Encode(file); err != nil {
			file.Close()
			return err
		}
		if err := file.Close(); err != nil {
			return fmt.Errorf("error writing pack file: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Pack written to %s\n", args[0])
		return nil
	},
}

// packListCmd lists the packs in the pack library
var packListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List the packs in your pack library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetPackLibraryPath()

		entries, err := os.ReadDir(libraryPath)
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(out, "Pack library at %s does not exist.\n", libraryPath)
			fmt.Fprintln(out, "Run 'greetcard pack init' to create it.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading pack library: %w", err)
		}

		found := 0
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".toml" {
				continue
			}
			name := strings.TrimSuffix(entry.Name(), ".toml")

			p, err := pack.Load(filepath.Join(libraryPath, entry.Name()))
			if err != nil {
				app.log.WithFields(map[string]any{"pack": name, "error": err.Error()}).Warn("skipping invalid pack")
				continue
			}
			found++

			if name == app.config.Pack || entry.Name() == app.config.Pack {
				fmt.Fprintf(out, "* %s (%s) [DEFAULT]\n", name, p.Name)
			} else {
				fmt.Fprintf(out, "  %s (%s)\n", name, p.Name)
			}
		}

		if found == 0 {
			fmt.Fprintln(out, "No packs found in your pack library.")
			fmt.Fprintln(out, "You can add packs by copying them to:", libraryPath)
		}
		return nil
	},
}

// packUseCmd sets the default pack
var packUseCmd = &cobra.Command{
	Use:   "use [pack_name]",
	Short: "Set the default content pack",
	Long:  `Use sets the pack loaded when --pack is not given. Pass "builtin" to go back to the built-in pack.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if name == "builtin" {
			name = ""
		} else {
			packPath, err := config.GetPackPath(name)
			if err != nil {
				return err
			}
			if _, err := pack.Load(packPath); err != nil {
				return fmt.Errorf("not a valid pack: %w", err)
			}
		}

		if _, err := config.Set("pack", name); err != nil {
			return fmt.Errorf("error setting default pack: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Default pack set to: %s\n", args[0])
		return nil
	},
}

// packInitCmd creates the pack library
var packInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the pack library",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		libraryPath := config.GetPackLibraryPath()
		if err := os.MkdirAll(libraryPath, 0o755); err != nil {
			return fmt.Errorf("error creating pack library: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Pack library initialized at:", libraryPath)
		fmt.Fprintln(out, "You can now add packs by copying them to this directory,")
		fmt.Fprintln(out, "or start from the built-in one: greetcard pack export", filepath.Join(libraryPath, "mine.toml"))
		fmt.Fprintln(out, "Config file at:", config.GetConfigFilePath())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(packCmd)
	packCmd.AddCommand(packValidateCmd, packExportCmd, packListCmd, packUseCmd, packInitCmd)
}
