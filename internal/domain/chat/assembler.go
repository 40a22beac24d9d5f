package chat

import (
	"context"

	"github.com/B3N14M1N/ChatAI/internal/utils/platformerrors"
)

// lastExchangeSize is how many trailing messages make up "the last exchange":
// one user message and its answer.
const lastExchangeSize = 2

// ContextAssembler builds the model-facing context for a conversation,
// reading through the cache and loading from the repository on miss. Cached
// contexts are shared slices, so slicing per need never mutates them.
type ContextAssembler struct {
	repo       Repository
	cache      *ContextCache
	messageCap int
}

// NewContextAssembler creates an assembler with the given history cap.
func NewContextAssembler(repo Repository, cache *ContextCache, messageCap int) *ContextAssembler {
	return &ContextAssembler{
		repo:       repo,
		cache:      cache,
		messageCap: messageCap,
	}
}

// Assemble returns the context slice for the given need. ContextNone returns
// nothing and leaves the cache untouched; the other strategies fill the cache
// with the full capped history and slice from it.
func (a *ContextAssembler) Assemble(ctx context.Context, conversation *Conversation, need ContextNeed) ([]PromptMessage, error) {
	if need == ContextNone {
		return nil, nil
	}

	messages, ok := a.cache.Get(conversation.PublicID)
	if !ok {
		loaded, err := a.load(ctx, conversation.ID)
		if err != nil {
			return nil, err
		}
		a.cache.Set(conversation.PublicID, loaded)
		messages = loaded
	}

	switch need {
	case ContextLastMessage:
		if len(messages) > lastExchangeSize {
			return messages[len(messages)-lastExchangeSize:], nil
		}
		return messages, nil
	default:
		return messages, nil
	}
}

// load fetches the newest capped window of messages, oldest first, preferring
// stored summaries over full content.
func (a *ContextAssembler) load(ctx context.Context, conversationID uint) ([]PromptMessage, error) {
	stored, err := a.repo.ListRecentMessages(ctx, conversationID, a.messageCap)
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeDatabaseError,
			"failed to load conversation context", err, "0d1f6f6a-6f0c-4a6a-9a77-2f3f1f3c9b10")
	}

	messages := make([]PromptMessage, 0, len(stored))
	for i := range stored {
		messages = append(messages, PromptMessage{
			Role:    stored[i].Role(),
			Content: stored[i].CompactContent(),
		})
	}
	return messages, nil
}
