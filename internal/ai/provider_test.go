package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/greetcard/internal/card"
	"github.com/arcanaland/greetcard/internal/logger"
)

const structuredReply = "```json\n{\"title\":\"生日快乐\",\"message\":[\"愿你快乐\",\"愿你健康\"],\"signature\":\"小明\"}\n```"

func geminiReply(text string) map[string]any {
	return map[string]any{
		"candidates": []any{
			map[string]any{"content": map[string]any{"role": "model", "parts": []any{map[string]any{"text": text}}}},
		},
	}
}

func chatReply(text string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": text}}},
	}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestProvidersUnconfiguredMakeNoRequests(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer server.Close()

	providers := []Provider{
		NewGoogle(Options{BaseURL: server.URL}),
		NewZhipu(Options{BaseURL: server.URL}),
	}

	for _, p := range providers {
		t.Run(p.Name(), func(t *testing.T) {
			require.False(t, p.Configured())

			_, err := p.GenerateCardMessage(context.Background(), card.Birthday, "")
			require.ErrorIs(t, err, ErrUnconfigured)

			_, err = p.GenerateImageDescription(context.Background(), card.Birthday, "")
			require.ErrorIs(t, err, ErrUnconfigured)

			p.SetAPIKey("   ")
			require.False(t, p.Configured())

			p.SetAPIKey("secret")
			require.True(t, p.Configured())
			p.ClearAPIKey()
			require.False(t, p.Configured())

			_, err = p.GenerateCardMessage(context.Background(), card.Birthday, "")
			require.ErrorIs(t, err, ErrUnconfigured)
		})
	}

	assert.Equal(t, int32(0), hits.Load())
}

func TestGoogleGenerateCardMessage(t *testing.T) {
	var got geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1beta/models/gemini-pro:generateContent", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("x-goog-api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(t, w, http.StatusOK, geminiReply(structuredReply))
	}))
	defer server.Close()

	g := NewGoogle(Options{BaseURL: server.URL, APIKey: "secret"})
	m, err := g.GenerateCardMessage(context.Background(), card.Birthday, "")
	require.NoError(t, err)

	assert.Equal(t, Message{Title: "生日快乐", Lines: []string{"愿你快乐", "愿你健康"}, Signature: "小明", Source: SourceStructured}, m)

	require.Len(t, got.Contents, 1)
	assert.Equal(t, "user", got.Contents[0].Role)
	require.Len(t, got.Contents[0].Parts, 1)
	assert.Contains(t, got.Contents[0].Parts[0].Text, "欢快、温馨的生日祝福")
	assert.Contains(t, got.Contents[0].Parts[0].Text, "只返回JSON")
}

func TestGoogleCustomPromptAndModel(t *testing.T) {
	var prompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-1.5-flash:generateContent", r.URL.Path)
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompt = req.Contents[0].Parts[0].Text
		writeJSON(t, w, http.StatusOK, geminiReply("标题：毕业快乐\n前程似锦\n署名：同学"))
	}))
	defer server.Close()

	g := NewGoogle(Options{BaseURL: server.URL + "/", Model: "gemini-1.5-flash", APIKey: "secret"})
	m, err := g.GenerateCardMessage(context.Background(), card.Custom, "毕业典礼的祝福")
	require.NoError(t, err)

	assert.Contains(t, prompt, "请为一张毕业典礼的祝福卡片生成内容")
	assert.Equal(t, SourceHeuristic, m.Source)
	assert.Equal(t, "毕业快乐", m.Title)
	assert.Equal(t, []string{"前程似锦"}, m.Lines)
	assert.Equal(t, "同学", m.Signature)
}

func TestGoogleGenerateImageDescription(t *testing.T) {
	var prompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req geminiRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		prompt = req.Contents[0].Parts[0].Text
		writeJSON(t, w, http.StatusOK, geminiReply("  A snowy cabin under warm lights  \n"))
	}))
	defer server.Close()

	g := NewGoogle(Options{BaseURL: server.URL, APIKey: "secret"})
	desc, err := g.GenerateImageDescription(context.Background(), card.Christmas, "雪夜")
	require.NoError(t, err)

	assert.Equal(t, "A snowy cabin under warm lights", desc)
	assert.Contains(t, prompt, "温馨、欢乐的圣诞祝福")
	assert.Contains(t, prompt, "主题：雪夜")
}

func TestGoogleErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    any
		code    int
		message string
	}{
		{
			name:    "status with error body",
			status:  http.StatusForbidden,
			body:    map[string]any{"error": map[string]any{"code": 403, "message": "API key not valid"}},
			code:    http.StatusForbidden,
			message: "API key not valid",
		},
		{
			name:    "no candidates",
			status:  http.StatusOK,
			body:    map[string]any{"candidates": []any{}},
			message: "response has no candidates",
		},
		{
			name:    "empty text",
			status:  http.StatusOK,
			body:    geminiReply("   "),
			message: "empty response text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				writeJSON(t, w, tt.status, tt.body)
			}))
			defer server.Close()

			g := NewGoogle(Options{BaseURL: server.URL, APIKey: "secret"})
			_, err := g.GenerateCardMessage(context.Background(), card.Birthday, "")

			var perr *ProviderError
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, GoogleName, perr.Provider)
			assert.Equal(t, tt.code, perr.StatusCode)
			assert.Equal(t, tt.message, perr.Message)
			assert.False(t, errors.Is(err, ErrUnconfigured))
		})
	}
}

func TestProviderErrorPlainBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream unavailable"))
	}))
	defer server.Close()

	z := NewZhipu(Options{BaseURL: server.URL, APIKey: "secret"})
	_, err := z.GenerateCardMessage(context.Background(), card.Birthday, "")

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, http.StatusBadGateway, perr.StatusCode)
	assert.Equal(t, "upstream unavailable", perr.Message)
	assert.Equal(t, "zhipu: status 502: upstream unavailable", err.Error())
}

func TestProviderHonorsCancelledContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, geminiReply(structuredReply))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	g := NewGoogle(Options{BaseURL: server.URL, APIKey: "secret"})
	_, err := g.GenerateCardMessage(ctx, card.Birthday, "")
	require.ErrorIs(t, err, context.Canceled)

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
}

func TestZhipuGenerateCardMessage(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(t, w, http.StatusOK, chatReply("以下是内容：\n"+structuredReply))
	}))
	defer server.Close()

	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Verbose: true, Writer: buf})
	require.NoError(t, err)

	z := NewZhipu(Options{BaseURL: server.URL, APIKey: "secret", Logger: log})
	m, err := z.GenerateCardMessage(context.Background(), card.Birthday, "")
	require.NoError(t, err)

	assert.Equal(t, "生日快乐", m.Title)
	assert.Equal(t, SourceStructured, m.Source)

	assert.Equal(t, DefaultZhipuModel, got.Model)
	assert.InDelta(t, 0.7, got.Temperature, 1e-9)
	assert.Equal(t, 500, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "请为一张生日贺卡生成内容")

	_, err = uuid.Parse(got.RequestID)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), got.RequestID)
}

func TestZhipuCustomPromptIsSentVerbatim(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(t, w, http.StatusOK, chatReply(structuredReply))
	}))
	defer server.Close()

	z := NewZhipu(Options{BaseURL: server.URL, APIKey: "secret"})
	_, err := z.GenerateCardMessage(context.Background(), card.Wedding, "写一段婚礼致辞")
	require.NoError(t, err)

	require.Len(t, got.Messages, 1)
	assert.Equal(t, "写一段婚礼致辞", got.Messages[0].Content)
}

func TestZhipuGenerateImageDescription(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(t, w, http.StatusOK, chatReply("Golden fireworks over a city skyline\n"))
	}))
	defer server.Close()

	z := NewZhipu(Options{BaseURL: server.URL, APIKey: "secret"})
	desc, err := z.GenerateImageDescription(context.Background(), card.NewYear, "")
	require.NoError(t, err)

	assert.Equal(t, "Golden fireworks over a city skyline", desc)
	assert.Equal(t, 200, got.MaxTokens)
	assert.Contains(t, got.Messages[0].Content, "新年贺卡")
	assert.NotContains(t, got.Messages[0].Content, "主题：")
}

func TestZhipuNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusOK, map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	z := NewZhipu(Options{BaseURL: server.URL, APIKey: "secret"})
	_, err := z.GenerateImageDescription(context.Background(), card.NewYear, "")

	var perr *ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "response has no choices", perr.Message)
}
