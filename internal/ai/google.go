package ai

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/arcanaland/greetcard/internal/card"
)

const (
	// GoogleName identifies the Gemini provider
	GoogleName           = "google"
	DefaultGoogleBaseURL = "https://generativelanguage.googleapis.com"
	DefaultGoogleModel   = "gemini-pro"
)

// Google generates card text with the Gemini generateContent REST endpoint.
type Google struct {
	credential
	transport
	baseURL string
	model   string
}

var _ Provider = (*Google)(nil)

// NewGoogle creates a Gemini provider. It is unconfigured until a key is set.
func NewGoogle(opts Options) *Google {
	g := &Google{
		transport: transport{
			provider: GoogleName,
			client:   opts.httpClient(),
			log:      opts.logger().With("provider", GoogleName),
		},
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		model:   opts.Model,
	}
	if g.baseURL == "" {
		g.baseURL = DefaultGoogleBaseURL
	}
	if g.model == "" {
		g.model = DefaultGoogleModel
	}
	g.SetAPIKey(opts.APIKey)
	return g
}

// Name returns "google"
func (g *Google) Name() string {
	return GoogleName
}

// GenerateCardMessage asks Gemini for a title, two or three lines and a signature.
// customPrompt, when set, replaces the card type description inside the prompt.
func (g *Google) GenerateCardMessage(ctx context.Context, t card.Type, customPrompt string) (Message, error) {
	subject := customPrompt
	if subject == "" {
		subject = toneFor(t)
	}

	text, err := g.generate(ctx, messagePrompt(subject))
	if err != nil {
		return Message{}, err
	}
	return ExtractMessage(text), nil
}

// GenerateImageDescription asks Gemini for a short English image prompt
func (g *Google) GenerateImageDescription(ctx context.Context, t card.Type, theme string) (string, error) {
	return g.generate(ctx, descriptionPrompt(toneFor(t), theme))
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

func (g *Google) generate(ctx context.Context, prompt string) (string, error) {
	key, ok := g.apiKey()
	if !ok {
		return "", unconfigured(GoogleName)
	}

	endpoint := g.baseURL + "/v1beta/models/" + url.PathEscape(g.model) + ":generateContent"
	header := http.Header{}
	header.Set("x-goog-api-key", key)

	req := geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	}

	g.log.With("model", g.model).Debug("sending generateContent request")

	var resp geminiResponse
	if err := g.postJSON(ctx, endpoint, header, req, &resp); err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 {
		return "", &ProviderError{Provider: GoogleName, Message: "response has no candidates"}
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		b.WriteString(part.Text)
	}
	text := strings.TrimSpace(b.String())
	if text == "" {
		return "", emptyResponse(GoogleName)
	}
	return text, nil
}
