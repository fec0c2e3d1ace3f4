package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arcanaland/greetcard/internal/config"
	"github.com/arcanaland/greetcard/internal/credentials"
	"github.com/arcanaland/greetcard/internal/logger"
)

type rootFlags struct {
	pack     string
	logLevel string
	verbose  bool
	envFile  string
}

var flags rootFlags

// app holds the services loaded before every command runs
var app struct {
	config *config.Config
	log    *logger.Logger
	creds  *credentials.Store
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "greetcard",
	Short: "Generate greeting cards in the terminal",
	Long: `Greetcard composes greeting cards for birthdays, weddings, holidays and
other occasions: a styled message, a color scheme, scattered decorations and a
music track. Cards can be printed, browsed interactively, or given an AI
written message through Google Gemini or Zhipu GLM.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	RootCmd.PersistentFlags().StringVar(&flags.pack, "pack", "", "content pack name or path (overrides config)")
	RootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level: debug, info, warn or error")
	RootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")
	RootCmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "dotenv file read for API keys")
}

func setup(cmd *cobra.Command, args []string) error {
	if err := credentials.LoadDotEnv(flags.envFile); err != nil {
		return err
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	app.config = cfg

	level := cfg.LogLevel
	if flags.logLevel != "" {
		level = flags.logLevel
	}
	errOut := cmd.ErrOrStderr()
	log, err := logger.New(logger.Options{
		Level:         level,
		Verbose:       flags.verbose,
		HumanReadable: logger.IsTerminal(errOut),
		Writer:        errOut,
	})
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	app.log = log.With("command", cmd.Name())

	creds, err := credentials.Open(credentials.DefaultPath())
	if err != nil {
		return err
	}
	app.creds = creds

	app.log.WithFields(map[string]any{
		"config":      config.GetConfigFilePath(),
		"credentials": creds.Path(),
	}).Debug("loaded configuration")
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
