package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/B3N14M1N/ChatAI/internal/infrastructure/logger"
)

// ContextNeed is the amount of conversation history a message requires to be
// answered well.
type ContextNeed string

const (
	// ContextNone means the message stands on its own.
	ContextNone ContextNeed = "none"
	// ContextLastMessage means the last exchange is enough, typical for
	// short follow-ups like a bare "yes".
	ContextLastMessage ContextNeed = "last_message"
	// ContextFull means the whole (capped) history is needed.
	ContextFull ContextNeed = "full"
)

// ParseContextNeed maps a raw classifier label onto a ContextNeed. Unknown
// labels fall back to ContextLastMessage, the safe middle ground.
func ParseContextNeed(raw string) ContextNeed {
	switch ContextNeed(strings.ToLower(strings.TrimSpace(raw))) {
	case ContextNone:
		return ContextNone
	case ContextLastMessage:
		return ContextLastMessage
	case ContextFull:
		return ContextFull
	default:
		return ContextLastMessage
	}
}

// IntentClassifier decides how much history each incoming message needs. The
// decision is delegated to the model so it works across languages; keyword
// lists would only ever cover one.
type IntentClassifier struct {
	gateway ModelGateway
	logger  zerolog.Logger
}

// NewIntentClassifier creates a classifier backed by the given gateway.
func NewIntentClassifier(gateway ModelGateway) *IntentClassifier {
	return &IntentClassifier{
		gateway: gateway,
		logger:  logger.GetLogger(),
	}
}

// Classify returns the context need of text. Classification never fails the
// turn: any gateway error degrades to ContextLastMessage, which keeps short
// follow-ups answerable without dragging in the whole history.
func (c *IntentClassifier) Classify(ctx context.Context, text string, recent []PromptMessage) ContextNeed {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ContextNone
	}

	need, _, err := c.gateway.DetectIntent(ctx, trimmed, recent)
	if err != nil {
		c.logger.Warn().
			Err(err).
			Str("fallback", string(ContextLastMessage)).
			Msg("intent classification failed, falling back")
		return ContextLastMessage
	}
	return need
}

func (n ContextNeed) String() string { return string(n) }
