package chat_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/B3N14M1N/ChatAI/internal/domain/chat"
)

func summarizerConfig() chat.SummarizerConfig {
	return chat.SummarizerConfig{
		UserThreshold:      400,
		AssistantThreshold: 600,
		CascadeThreshold:   2000,
		MaxWords:           80,
	}
}

func TestCompactMessageThresholds(t *testing.T) {
	tests := []struct {
		name          string
		role          string
		contentLength int
		wantSummary   bool
	}{
		{
			name:          "short user message stays as-is",
			role:          chat.RoleUser,
			contentLength: 400,
			wantSummary:   false,
		},
		{
			name:          "long user message gets summarized",
			role:          chat.RoleUser,
			contentLength: 550,
			wantSummary:   true,
		},
		{
			name:          "assistant message under its higher threshold stays as-is",
			role:          chat.RoleAssistant,
			contentLength: 550,
			wantSummary:   false,
		},
		{
			name:          "long assistant message gets summarized",
			role:          chat.RoleAssistant,
			contentLength: 601,
			wantSummary:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := &gatewayMock{
				summarizeFn: func(text string, maxWords int) (string, error) {
					assert.Equal(t, 80, maxWords)
					return "condensed", nil
				},
			}
			summarizer := chat.NewSummarizer(gateway, summarizerConfig())

			content := strings.Repeat("x", tt.contentLength)
			summary := summarizer.CompactMessage(context.Background(), tt.role, content)

			if tt.wantSummary {
				assert.Equal(t, "condensed", summary)
				assert.Equal(t, 1, gateway.summarizeCalls)
			} else {
				assert.Empty(t, summary)
				assert.Equal(t, 0, gateway.summarizeCalls)
			}
		})
	}
}

func TestCompactMessageGatewayFailure(t *testing.T) {
	gateway := &gatewayMock{
		summarizeFn: func(string, int) (string, error) {
			return "", errors.New("model unavailable")
		},
	}
	summarizer := chat.NewSummarizer(gateway, summarizerConfig())

	summary := summarizer.CompactMessage(context.Background(), chat.RoleUser, strings.Repeat("x", 500))
	assert.Empty(t, summary, "summarization failure must not produce a summary")
}

func TestCascadeBelowThresholdIsNoop(t *testing.T) {
	gateway := &gatewayMock{}
	summarizer := chat.NewSummarizer(gateway, summarizerConfig())

	messages := []chat.PromptMessage{
		{Role: chat.RoleUser, Content: strings.Repeat("a", 500)},
		{Role: chat.RoleAssistant, Content: strings.Repeat("b", 500)},
		{Role: chat.RoleUser, Content: strings.Repeat("c", 500)},
	}

	got, digest, applied := summarizer.Cascade(context.Background(), messages)
	assert.False(t, applied)
	assert.Empty(t, digest)
	assert.Equal(t, messages, got)
	assert.Equal(t, 0, gateway.summarizeCalls)
}

func TestCascadeDigestsOlderHistory(t *testing.T) {
	gateway := &gatewayMock{
		summarizeFn: func(text string, maxWords int) (string, error) {
			// The digest prompt covers only the older portion.
			assert.NotContains(t, text, "newest question")
			assert.NotContains(t, text, "newest answer")
			return "the reader explored fantasy and sci-fi titles", nil
		},
	}
	summarizer := chat.NewSummarizer(gateway, summarizerConfig())

	messages := []chat.PromptMessage{
		{Role: chat.RoleUser, Content: strings.Repeat("old talk ", 100)},
		{Role: chat.RoleAssistant, Content: strings.Repeat("old reply ", 100)},
		{Role: chat.RoleUser, Content: strings.Repeat("more talk ", 100)},
		{Role: chat.RoleUser, Content: "newest question"},
		{Role: chat.RoleAssistant, Content: "newest answer"},
	}

	got, digest, applied := summarizer.Cascade(context.Background(), messages)
	require.True(t, applied)
	assert.Equal(t, "the reader explored fantasy and sci-fi titles", digest)

	require.Len(t, got, 3)
	assert.Equal(t, chat.RoleSystem, got[0].Role)
	assert.Contains(t, got[0].Content, digest)
	assert.Equal(t, "newest question", got[1].Content)
	assert.Equal(t, "newest answer", got[2].Content)

	// The compacted context is strictly smaller than what it replaced.
	sizeOf := func(msgs []chat.PromptMessage) int {
		total := 0
		for _, m := range msgs {
			total += len(m.Content)
		}
		return total
	}
	assert.Less(t, sizeOf(got), sizeOf(messages))
}

func TestCascadeRejectsOversizedDigest(t *testing.T) {
	gateway := &gatewayMock{
		summarizeFn: func(text string, maxWords int) (string, error) {
			return strings.Repeat("not really a summary ", 200), nil
		},
	}
	summarizer := chat.NewSummarizer(gateway, summarizerConfig())

	messages := []chat.PromptMessage{
		{Role: chat.RoleUser, Content: strings.Repeat("a", 1500)},
		{Role: chat.RoleAssistant, Content: strings.Repeat("b", 1500)},
		{Role: chat.RoleUser, Content: "follow-up"},
		{Role: chat.RoleAssistant, Content: "answer"},
	}

	got, digest, applied := summarizer.Cascade(context.Background(), messages)
	assert.False(t, applied, "a digest longer than its source must be discarded")
	assert.Empty(t, digest)
	assert.Equal(t, messages, got)
}

func TestCascadeGatewayFailureKeepsContext(t *testing.T) {
	gateway := &gatewayMock{
		summarizeFn: func(string, int) (string, error) {
			return "", errors.New("model unavailable")
		},
	}
	summarizer := chat.NewSummarizer(gateway, summarizerConfig())

	messages := []chat.PromptMessage{
		{Role: chat.RoleUser, Content: strings.Repeat("a", 2500)},
		{Role: chat.RoleUser, Content: "q"},
		{Role: chat.RoleAssistant, Content: "a"},
	}

	got, _, applied := summarizer.Cascade(context.Background(), messages)
	assert.False(t, applied)
	assert.Equal(t, messages, got)
}
