package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/arcanaland/greetcard/internal/card"
	"github.com/arcanaland/greetcard/internal/logger"
)

const (
	defaultTimeout   = 60 * time.Second
	maxResponseBytes = 1 << 20
	maxErrorSnippet  = 200
)

// Provider is a text-generation backend for card messages and image prompts.
type Provider interface {
	Name() string
	SetAPIKey(key string)
	ClearAPIKey()
	Configured() bool
	GenerateCardMessage(ctx context.Context, t card.Type, customPrompt string) (Message, error)
	GenerateImageDescription(ctx context.Context, t card.Type, theme string) (string, error)
}

// Options configures a provider. Empty fields select the provider defaults.
type Options struct {
	BaseURL    string
	Model      string
	APIKey     string
	HTTPClient *http.Client
	Logger     *logger.Logger
}

func (o Options) httpClient() *http.Client {
	if o.HTTPClient != nil {
		return o.HTTPClient
	}
	return &http.Client{Timeout: defaultTimeout}
}

func (o Options) logger() *logger.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return logger.Nop()
}

// credential holds the API key of one provider
type credential struct {
	mu  sync.RWMutex
	key string
}

// SetAPIKey stores key; a blank key leaves the provider unconfigured
func (c *credential) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = strings.TrimSpace(key)
}

// ClearAPIKey forgets the stored key
func (c *credential) ClearAPIKey() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.key = ""
}

// Configured reports whether a key is stored
func (c *credential) Configured() bool {
	_, ok := c.apiKey()
	return ok
}

func (c *credential) apiKey() (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.key, c.key != ""
}

// transport posts JSON requests and decodes JSON responses for one provider
type transport struct {
	provider string
	client   *http.Client
	log      *logger.Logger
}

func (t *transport) postJSON(ctx context.Context, endpoint string, header http.Header, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return &ProviderError{Provider: t.provider, Message: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return &ProviderError{Provider: t.provider, Message: "build request", Err: err}
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return &ProviderError{Provider: t.provider, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &ProviderError{Provider: t.provider, StatusCode: resp.StatusCode, Message: "read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ProviderError{Provider: t.provider, StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &ProviderError{Provider: t.provider, StatusCode: resp.StatusCode, Message: "decode response", Err: err}
	}
	return nil
}

// errorMessage pulls error.message out of an error body, or returns a snippet of it.
// Gemini and GLM both use that shape.
func errorMessage(data []byte) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error.Message != "" {
		return body.Error.Message
	}

	snippet := []rune(strings.TrimSpace(string(data)))
	if len(snippet) == 0 {
		return "empty error response"
	}
	if len(snippet) > maxErrorSnippet {
		snippet = append(snippet[:maxErrorSnippet], '…')
	}
	return string(snippet)
}

func emptyResponse(provider string) error {
	return &ProviderError{Provider: provider, Message: "empty response text"}
}
