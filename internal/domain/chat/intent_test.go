package chat_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/B3N14M1N/ChatAI/internal/domain/chat"
)

func TestParseContextNeed(t *testing.T) {
	tests := []struct {
		raw      string
		expected chat.ContextNeed
	}{
		{"none", chat.ContextNone},
		{"last_message", chat.ContextLastMessage},
		{"full", chat.ContextFull},
		{"  Full  ", chat.ContextFull},
		{"NONE", chat.ContextNone},
		{"everything", chat.ContextLastMessage},
		{"", chat.ContextLastMessage},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, chat.ParseContextNeed(tt.raw))
		})
	}
}

func TestClassifyDelegatesToGateway(t *testing.T) {
	recent := []chat.PromptMessage{
		{Role: chat.RoleAssistant, Content: "Would you like more recommendations?"},
	}
	gateway := &gatewayMock{
		intentFn: func(text string, got []chat.PromptMessage) (chat.ContextNeed, error) {
			assert.Equal(t, "yes", text)
			assert.Equal(t, recent, got)
			return chat.ContextLastMessage, nil
		},
	}
	classifier := chat.NewIntentClassifier(gateway)

	need := classifier.Classify(context.Background(), "yes", recent)
	assert.Equal(t, chat.ContextLastMessage, need)
}

func TestClassifyEmptyMessage(t *testing.T) {
	gateway := &gatewayMock{
		intentFn: func(string, []chat.PromptMessage) (chat.ContextNeed, error) {
			t.Fatal("gateway must not be called for empty input")
			return chat.ContextNone, nil
		},
	}
	classifier := chat.NewIntentClassifier(gateway)

	assert.Equal(t, chat.ContextNone, classifier.Classify(context.Background(), "   ", nil))
}

func TestClassifyGatewayFailureFallsBack(t *testing.T) {
	gateway := &gatewayMock{
		intentFn: func(string, []chat.PromptMessage) (chat.ContextNeed, error) {
			return "", errors.New("model unavailable")
		},
	}
	classifier := chat.NewIntentClassifier(gateway)

	need := classifier.Classify(context.Background(), "what about the second one?", nil)
	assert.Equal(t, chat.ContextLastMessage, need, "classification failure must degrade, not fail the turn")
}
