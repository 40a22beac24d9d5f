package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/B3N14M1N/ChatAI/internal/infrastructure/logger"
)

// SummarizerConfig carries the thresholds that drive message compaction and
// the context cascade. All sizes are in characters.
type SummarizerConfig struct {
	UserThreshold      int
	AssistantThreshold int
	CascadeThreshold   int
	MaxWords           int
}

// Summarizer compacts long messages at write time and digests whole
// conversation contexts when they outgrow the cascade threshold.
type Summarizer struct {
	gateway ModelGateway
	cfg     SummarizerConfig
	logger  zerolog.Logger
}

// NewSummarizer creates a summarizer with the given thresholds.
func NewSummarizer(gateway ModelGateway, cfg SummarizerConfig) *Summarizer {
	return &Summarizer{
		gateway: gateway,
		cfg:     cfg,
		logger:  logger.GetLogger(),
	}
}

// CompactMessage returns a summary for content when it exceeds the threshold
// of its role, or "" when the content is short enough as-is. Summarization
// failures degrade to no summary; the full content is always persisted
// anyway.
func (s *Summarizer) CompactMessage(ctx context.Context, role, content string) string {
	threshold := s.cfg.UserThreshold
	if role == RoleAssistant {
		threshold = s.cfg.AssistantThreshold
	}
	if len(content) <= threshold {
		return ""
	}

	summary, _, err := s.gateway.Summarize(ctx, content, s.cfg.MaxWords)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("role", role).
			Int("content_length", len(content)).
			Msg("message summarization failed, storing full content only")
		return ""
	}
	return strings.TrimSpace(summary)
}

// Cascade digests an oversized context down to a single digest turn plus the
// last exchange. It returns the compacted slice, the digest text, and whether
// the cascade applied. A digest that fails to come out shorter than what it
// replaces is discarded, so a cascade can never grow the context.
func (s *Summarizer) Cascade(ctx context.Context, messages []PromptMessage) ([]PromptMessage, string, bool) {
	if contextSize(messages) <= s.cfg.CascadeThreshold || len(messages) <= lastExchangeSize {
		return messages, "", false
	}

	older := messages[:len(messages)-lastExchangeSize]
	lastExchange := messages[len(messages)-lastExchangeSize:]

	transcript := renderTranscript(older)
	digest, _, err := s.gateway.Summarize(ctx, transcript, s.cfg.MaxWords)
	if err != nil {
		s.logger.Warn().Err(err).Msg("context cascade summarization failed, keeping context as-is")
		return messages, "", false
	}

	digest = strings.TrimSpace(digest)
	if digest == "" || len(digest) >= len(transcript) {
		s.logger.Warn().
			Int("digest_length", len(digest)).
			Int("transcript_length", len(transcript)).
			Msg("context digest not shorter than source, keeping context as-is")
		return messages, "", false
	}

	compacted := make([]PromptMessage, 0, lastExchangeSize+1)
	compacted = append(compacted, PromptMessage{
		Role:    RoleSystem,
		Content: "Summary of the conversation so far: " + digest,
	})
	compacted = append(compacted, lastExchange...)
	return compacted, digest, true
}

// contextSize is the total character count of a context slice.
func contextSize(messages []PromptMessage) int {
	total := 0
	for i := range messages {
		total += len(messages[i].Content)
	}
	return total
}

// renderTranscript flattens messages into a role-prefixed transcript for the
// digest prompt.
func renderTranscript(messages []PromptMessage) string {
	var b strings.Builder
	for i := range messages {
		b.WriteString(messages[i].Role)
		b.WriteString(": ")
		b.WriteString(messages[i].Content)
		b.WriteString("\n")
	}
	return b.String()
}
