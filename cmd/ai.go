package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/greetcard/internal/ai"
	"github.com/arcanaland/greetcard/internal/credentials"
	"github.com/arcanaland/greetcard/internal/render"
)

const (
	previewWidth  = 40
	previewHeight = 20
)

var aiOpts struct {
	provider string
	cardType string
	theme    string
	prompt   string
	count    int
	preview  bool
	timeout  time.Duration
}

var aiCmd = &cobra.Command{
	Use:   "ai",
	Short: "Ask an AI provider for card messages and images",
	Long: `Commands that call Google Gemini or Zhipu GLM directly. Keys are read from
the credentials file or from GOOGLE_API_KEY / ZHIPU_API_KEY.`,
}

var aiMessageCmd = &cobra.Command{
	Use:   "message",
	Short: "Generate one card message",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel, p, err := aiSetup(cmd)
		defer cancel()
		if err != nil {
			return err
		}

		t, _, err := resolveTypeAndTheme(aiOpts.cardType, "")
		if err != nil {
			return err
		}

		m, err := p.GenerateCardMessage(ctx, t, aiOpts.prompt)
		if err != nil {
			return err
		}
		printMessage(cmd.OutOrStdout(), m)
		return nil
	},
}

var aiBatchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate several message options one after another",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel, p, err := aiSetup(cmd)
		defer cancel()
		if err != nil {
			return err
		}

		t, _, err := resolveTypeAndTheme(aiOpts.cardType, "")
		if err != nil {
			return err
		}

		messages, err := ai.GenerateMultipleMessages(ctx, p, t, aiOpts.count)
		out := cmd.OutOrStdout()
		for i, m := range messages {
			fmt.Fprintln(out, colorize.CyanString("Option %d", i+1))
			printMessage(out, m)
			fmt.Fprintln(out)
		}
		if err != nil {
			if len(messages) == 0 {
				return err
			}
			failed := aiOpts.count - len(messages)
			app.log.WithFields(map[string]any{"failed": failed, "requested": aiOpts.count}).Warn("batch partially failed")
			fmt.Fprintln(cmd.ErrOrStderr(), colorize.YellowString("⚠ %d of %d requests failed:", failed, aiOpts.count))
			fmt.Fprintln(cmd.ErrOrStderr(), err)
		}
		return nil
	},
}

var aiDescribeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Generate an image description for a card type",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel, p, err := aiSetup(cmd)
		defer cancel()
		if err != nil {
			return err
		}

		t, _, err := resolveTypeAndTheme(aiOpts.cardType, "")
		if err != nil {
			return err
		}

		description, err := p.GenerateImageDescription(ctx, t, aiOpts.theme)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), description)
		return nil
	},
}

var aiImageCmd = &cobra.Command{
	Use:   "image",
	Short: "Pick an image for a card type",
	Long: `Image asks the provider to describe a scene, looks up a matching photo and
falls back to a default image for the card category. It never fails on
provider errors; the source line tells which step produced the image.

With --preview the image is downloaded and drawn as ANSI art.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel, p, err := aiSetup(cmd)
		defer cancel()
		if err != nil && !errors.Is(err, ai.ErrUnconfigured) {
			return err
		}

		t, _, err := resolveTypeAndTheme(aiOpts.cardType, "")
		if err != nil {
			return err
		}

		pipeline := ai.NewImagePipeline(p, newPhotoService(), app.log)
		result := pipeline.GenerateImageForCard(ctx, t, aiOpts.theme)

		info := []string{
			colorize.CyanString("Type:   ") + colorize.HiWhiteString("%s", t.Label()),
			colorize.CyanString("Source: ") + colorize.HiWhiteString("%s", result.Source),
			colorize.CyanString("URL:    ") + colorize.HiWhiteString("%s", result.URL),
		}
		if result.Description != "" {
			info = append(info, "", colorize.CyanString("Description:"))
			info = append(info, render.WrapText(result.Description, 36)...)
		}

		out := cmd.OutOrStdout()
		if !aiOpts.preview {
			fmt.Fprintln(out, strings.Join(info, "\n"))
			return nil
		}

		img, err := render.FetchImage(ctx, nil, result.URL)
		if err != nil {
			fmt.Fprintln(out, strings.Join(info, "\n"))
			return fmt.Errorf("error loading preview: %w", err)
		}
		width := min(previewWidth, render.TerminalWidth()/2)
		art := render.ImageToAnsi(img, width, previewHeight, true)
		displaySideBySide(out, strings.Split(strings.TrimRight(art, "\n"), "\n"), info, width)
		return nil
	},
}

// aiSetup builds the selected provider and a context bounded by --timeout.
// The provider is returned with ErrUnconfigured when it has no key.
func aiSetup(cmd *cobra.Command) (context.Context, context.CancelFunc, ai.Provider, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), aiOpts.timeout)

	p, err := newProvider(aiOpts.provider)
	if err != nil {
		return ctx, cancel, nil, err
	}
	if !p.Configured() {
		return ctx, cancel, nil, fmt.Errorf("%w: run 'greetcard key set %s' or set %s", ai.ErrUnconfigured, p.Name(), credentials.EnvVar(p.Name()))
	}
	return ctx, cancel, p, nil
}

func printMessage(w io.Writer, m ai.Message) {
	fmt.Fprintln(w, colorize.HiMagentaString("%s", m.Title))
	for _, line := range m.Lines {
		fmt.Fprintln(w, "  "+line)
	}
	fmt.Fprintln(w, colorize.HiBlackString("—— %s", m.Signature))
}

// displaySideBySide prints ANSI art with the info lines to its right
func displaySideBySide(w io.Writer, art, info []string, artWidth int) {
	infoStartCol := artWidth + 4
	rows := max(len(art), len(info))

	fmt.Fprintln(w)
	for i := 0; i < rows; i++ {
		fmt.Fprint(w, "  ")
		if i < len(art) {
			fmt.Fprint(w, art[i])
			visibleWidth := len([]rune(render.StripAnsi(art[i])))
			fmt.Fprint(w, strings.Repeat(" ", max(infoStartCol-visibleWidth, 1)))
		} else {
			fmt.Fprint(w, strings.Repeat(" ", infoStartCol))
		}
		if i < len(info) {
			fmt.Fprint(w, info[i])
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)
}

func init() {
	RootCmd.AddCommand(aiCmd)
	aiCmd.AddCommand(aiMessageCmd, aiBatchCmd, aiDescribeCmd, aiImageCmd)

	pf := aiCmd.PersistentFlags()
	pf.StringVarP(&aiOpts.provider, "provider", "p", ai.ZhipuName, "AI provider: google or zhipu")
	pf.StringVarP(&aiOpts.cardType, "type", "t", "", "card type (default from config)")
	pf.DurationVar(&aiOpts.timeout, "timeout", 60*time.Second, "request timeout")

	aiMessageCmd.Flags().StringVar(&aiOpts.prompt, "prompt", "", "custom prompt replacing the built-in one")
	aiBatchCmd.Flags().IntVarP(&aiOpts.count, "count", "n", ai.DefaultBatchSize, "number of messages")
	aiDescribeCmd.Flags().StringVar(&aiOpts.theme, "theme", "", "visual theme to describe")
	aiImageCmd.Flags().StringVar(&aiOpts.theme, "theme", "", "visual theme to describe")
	aiImageCmd.Flags().BoolVar(&aiOpts.preview, "preview", false, "draw the image as ANSI art")
}
