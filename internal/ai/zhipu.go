package ai

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/arcanaland/greetcard/internal/card"
)

const (
	// ZhipuName identifies the GLM provider
	ZhipuName           = "zhipu"
	DefaultZhipuBaseURL = "https://open.bigmodel.cn/api/paas/v4"
	DefaultZhipuModel   = "glm-4-flash"

	zhipuTemperature     = 0.7
	messageMaxTokens     = 500
	descriptionMaxTokens = 200
)

// Zhipu generates card text with the GLM chat completions endpoint.
type Zhipu struct {
	credential
	transport
	baseURL string
	model   string
}

var _ Provider = (*Zhipu)(nil)

// NewZhipu creates a GLM provider. It is unconfigured until a key is set.
func NewZhipu(opts Options) *Zhipu {
	z := &Zhipu{
		transport: transport{
			provider: ZhipuName,
			client:   opts.httpClient(),
			log:      opts.logger().With("provider", ZhipuName),
		},
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		model:   opts.Model,
	}
	if z.baseURL == "" {
		z.baseURL = DefaultZhipuBaseURL
	}
	if z.model == "" {
		z.model = DefaultZhipuModel
	}
	z.SetAPIKey(opts.APIKey)
	return z
}

// Name returns "zhipu"
func (z *Zhipu) Name() string {
	return ZhipuName
}

// GenerateCardMessage asks GLM for a title, two or three lines and a signature.
// customPrompt, when set, is sent as the whole prompt.
func (z *Zhipu) GenerateCardMessage(ctx context.Context, t card.Type, customPrompt string) (Message, error) {
	prompt := customPrompt
	if prompt == "" {
		prompt = glmMessagePrompt(t)
	}

	text, err := z.complete(ctx, prompt, messageMaxTokens)
	if err != nil {
		return Message{}, err
	}
	return ExtractMessage(text), nil
}

// GenerateImageDescription asks GLM for a short English image prompt
func (z *Zhipu) GenerateImageDescription(ctx context.Context, t card.Type, theme string) (string, error) {
	return z.complete(ctx, descriptionPrompt(cardNameFor(t), theme), descriptionMaxTokens)
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	RequestID   string        `json:"request_id,omitempty"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (z *Zhipu) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	key, ok := z.apiKey()
	if !ok {
		return "", unconfigured(ZhipuName)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+key)

	req := chatRequest{
		Model:       z.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: zhipuTemperature,
		MaxTokens:   maxTokens,
		RequestID:   uuid.NewString(),
	}

	log := z.log.WithFields(map[string]any{"model": z.model, "request_id": req.RequestID})
	log.Debug("sending chat completion request")

	var resp chatResponse
	if err := z.postJSON(ctx, z.baseURL+"/chat/completions", header, req, &resp); err != nil {
		log.Debug("chat completion failed")
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", &ProviderError{Provider: ZhipuName, Message: "response has no choices"}
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", emptyResponse(ZhipuName)
	}
	return text, nil
}
