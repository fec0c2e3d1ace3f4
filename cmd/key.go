package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/greetcard/internal/credentials"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Manage AI provider API keys",
	Long: `Keys are stored in credentials.toml next to the config file, readable only
by you. GOOGLE_API_KEY and ZHIPU_API_KEY, from the environment or a .env file,
take precedence over stored keys.`,
}

var keySetCmd = &cobra.Command{
	Use:       "set [provider] [key]",
	Short:     "Store the API key of a provider",
	Long:      `Set stores a key. When the key is left out it is read from the terminal without echo.`,
	Args:      cobra.RangeArgs(1, 2),
	ValidArgs: credentials.Providers(),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := args[0]

		var key string
		if len(args) == 2 {
			key = args[1]
		} else {
			read, err := readKey(cmd, provider)
			if err != nil {
				return err
			}
			key = read
		}

		if err := app.creds.Set(provider, key); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Stored %s key %s\n", colorize.GreenString("✓"), provider, credentials.Mask(key))

		if v := credentials.EnvVar(provider); os.Getenv(v) != "" {
			fmt.Fprintln(cmd.OutOrStdout(), colorize.YellowString("⚠ %s is set and takes precedence over the stored key", v))
		}
		return nil
	},
}

var keyClearCmd = &cobra.Command{
	Use:       "clear [provider]",
	Short:     "Remove the stored API key of a provider",
	Args:      cobra.ExactArgs(1),
	ValidArgs: credentials.Providers(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := app.creds.Clear(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s Cleared %s key\n", colorize.GreenString("✓"), args[0])
		return nil
	},
}

var keyListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List providers and where their keys come from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, provider := range credentials.Providers() {
			key, source, err := app.creds.Get(provider)
			if err != nil {
				return err
			}
			switch source {
			case credentials.SourceNone:
				fmt.Fprintf(out, "  %-7s %s\n", provider, colorize.HiBlackString("not set"))
			case credentials.SourceEnv:
				fmt.Fprintf(out, "* %-7s %s (%s)\n", provider, credentials.Mask(key), credentials.EnvVar(provider))
			default:
				fmt.Fprintf(out, "* %-7s %s (%s)\n", provider, credentials.Mask(key), app.creds.Path())
			}
		}
		return nil
	},
}

// readKey prompts on a terminal and reads one line otherwise
func readKey(cmd *cobra.Command, provider string) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s API key: ", provider)
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("error reading key: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("no key given on stdin")
	}
	return strings.TrimSpace(line), nil
}

func init() {
	RootCmd.AddCommand(keyCmd)
	keyCmd.AddCommand(keySetCmd, keyClearCmd, keyListCmd)
}
