package ai

import (
	"context"

	"github.com/arcanaland/greetcard/internal/card"
)

// stubProvider answers from canned values and counts calls
type stubProvider struct {
	credential
	messageCalls     int
	descriptionCalls int
	failOn           map[int]error
	description      string
	descriptionErr   error
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) GenerateCardMessage(_ context.Context, t card.Type, _ string) (Message, error) {
	s.messageCalls++
	if err, ok := s.failOn[s.messageCalls]; ok {
		return Message{}, err
	}
	return Message{Title: string(t), Lines: []string{"第" + string(rune('0'+s.messageCalls)) + "条"}, Signature: "stub"}, nil
}

func (s *stubProvider) GenerateImageDescription(_ context.Context, _ card.Type, _ string) (string, error) {
	s.descriptionCalls++
	return s.description, s.descriptionErr
}
