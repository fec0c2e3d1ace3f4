package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/greetcard/internal/card"
)

func TestGenerateMultipleMessagesSkipsFailures(t *testing.T) {
	boom := errors.New("boom")
	p := &stubProvider{failOn: map[int]error{2: boom}}

	messages, err := GenerateMultipleMessages(context.Background(), p, card.Birthday, 3)

	require.Len(t, messages, 2)
	assert.Equal(t, []string{"第1条"}, messages[0].Lines)
	assert.Equal(t, []string{"第3条"}, messages[1].Lines)
	assert.Equal(t, 3, p.messageCalls)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "message 2")
}

func TestGenerateMultipleMessagesAllSucceed(t *testing.T) {
	p := &stubProvider{}

	messages, err := GenerateMultipleMessages(context.Background(), p, card.Wedding, DefaultBatchSize)
	require.NoError(t, err)
	assert.Len(t, messages, DefaultBatchSize)
}

func TestGenerateMultipleMessagesStopsWhenUnconfigured(t *testing.T) {
	p := &stubProvider{failOn: map[int]error{1: unconfigured("stub")}}

	messages, err := GenerateMultipleMessages(context.Background(), p, card.Birthday, 5)
	assert.Empty(t, messages)
	require.ErrorIs(t, err, ErrUnconfigured)
	assert.Equal(t, 1, p.messageCalls)
}

func TestGenerateMultipleMessagesStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &stubProvider{}

	messages, err := GenerateMultipleMessages(ctx, p, card.Birthday, 3)
	assert.Empty(t, messages)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, p.messageCalls)
}

func TestGenerateMultipleMessagesZeroCount(t *testing.T) {
	p := &stubProvider{}

	messages, err := GenerateMultipleMessages(context.Background(), p, card.Birthday, 0)
	require.NoError(t, err)
	assert.Empty(t, messages)
	assert.Equal(t, 0, p.messageCalls)
}
