package cmd

import (
	"encoding/json"
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/arcanaland/greetcard/internal/card"
	"github.com/arcanaland/greetcard/internal/render"
)

type generateOptions struct {
	cardType    string
	theme       string
	recipient   string
	sender      string
	decorations int
	seed        uint64
	output      string
	width       int
}

var generateOpts generateOptions

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a greeting card and print it",
	Long: `Generate composes one card from the active content pack and prints it.

Text output draws the cover and the inside of the card in its color scheme.
JSON and YAML output print the card record itself.

Examples:
  greetcard generate --type birthday --to Alice --from Bob
  greetcard generate --type wedding --theme vintage --output json
  greetcard generate --seed 42 --decorations 0`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := cardRequest{
			Type:        generateOpts.cardType,
			Theme:       generateOpts.theme,
			To:          generateOpts.recipient,
			From:        generateOpts.sender,
			Decorations: generateOpts.decorations,
		}
		if err := req.validate(); err != nil {
			return err
		}

		t, theme, err := resolveTypeAndTheme(generateOpts.cardType, generateOpts.theme)
		if err != nil {
			return err
		}

		gen, err := newGenerator(generateOpts.seed, generateOpts.decorations)
		if err != nil {
			return err
		}

		c, err := gen.GenerateCard(t, theme, generateOpts.recipient, generateOpts.sender)
		if err != nil {
			return err
		}
		app.log.WithFields(map[string]any{"id": c.ID, "type": c.Type, "theme": c.Theme}).Debug("generated card")

		return writeCard(cmd, c, generateOpts.output, render.Options{Width: generateOpts.width})
	},
}

func writeCard(cmd *cobra.Command, c card.Card, output string, opts render.Options) error {
	out := cmd.OutOrStdout()

	switch output {
	case "", "text":
		fmt.Fprintln(out, render.Card(c, opts))
		fmt.Fprintln(out, colorize.New(colorize.Faint).Sprintf("id %s", c.ID))
		return nil
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(c)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		if err := encoder.Encode(c); err != nil {
			return fmt.Errorf("error encoding card: %w", err)
		}
		return encoder.Close()
	default:
		return fmt.Errorf("unknown output format %q, expected text, json or yaml", output)
	}
}

func init() {
	RootCmd.AddCommand(generateCmd)

	f := generateCmd.Flags()
	f.StringVarP(&generateOpts.cardType, "type", "t", "", "card type (default from config)")
	f.StringVar(&generateOpts.theme, "theme", "", "color theme (default from config)")
	f.StringVar(&generateOpts.recipient, "to", "", "recipient name")
	f.StringVar(&generateOpts.sender, "from", "", "sender name")
	f.IntVar(&generateOpts.decorations, "decorations", -1, "number of decorations (default from config)")
	f.Uint64Var(&generateOpts.seed, "seed", 0, "seed for a reproducible card")
	f.StringVarP(&generateOpts.output, "output", "o", "text", "output format: text, json or yaml")
	f.IntVar(&generateOpts.width, "width", 0, "card width in columns (default terminal width)")
}
