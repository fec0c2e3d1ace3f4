package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/arcanaland/greetcard/internal/ai"
	"github.com/arcanaland/greetcard/internal/tui"
)

var sessionOpts struct {
	cardType  string
	theme     string
	recipient string
	sender    string
	provider  string
	seed      uint64
}

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Browse and edit cards interactively",
	Long: `Session opens an interactive card editor. Cards made during a session are
kept in its history (the 20 most recent) until the session ends.

Press a to replace the message with one written by the AI provider set with
--provider. The provider needs a key, see 'greetcard key set'.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		req := cardRequest{
			Type:        sessionOpts.cardType,
			Theme:       sessionOpts.theme,
			To:          sessionOpts.recipient,
			From:        sessionOpts.sender,
			Decorations: -1,
		}
		if err := req.validate(); err != nil {
			return err
		}

		t, theme, err := resolveTypeAndTheme(sessionOpts.cardType, sessionOpts.theme)
		if err != nil {
			return err
		}

		gen, err := newGenerator(sessionOpts.seed, -1)
		if err != nil {
			return err
		}

		provider, err := newProvider(sessionOpts.provider)
		if err != nil {
			return err
		}
		if !provider.Configured() {
			app.log.With("provider", provider.Name()).Info("no API key, AI messages disabled")
		}

		m, err := tui.NewModel(tui.Options{
			Generator: gen,
			Provider:  provider,
			Type:      t,
			Theme:     theme,
			Recipient: sessionOpts.recipient,
			Sender:    sessionOpts.sender,
			Context:   cmd.Context(),
			Logger:    app.log,
		})
		if err != nil {
			return err
		}

		program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("session failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(sessionCmd)

	f := sessionCmd.Flags()
	f.StringVarP(&sessionOpts.cardType, "type", "t", "", "card type of the first card")
	f.StringVar(&sessionOpts.theme, "theme", "", "theme of the first card")
	f.StringVar(&sessionOpts.recipient, "to", "", "recipient name")
	f.StringVar(&sessionOpts.sender, "from", "", "sender name")
	f.StringVarP(&sessionOpts.provider, "provider", "p", ai.ZhipuName, "AI provider: google or zhipu")
	f.Uint64Var(&sessionOpts.seed, "seed", 0, "seed for reproducible cards")
}
