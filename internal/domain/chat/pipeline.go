package chat

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/B3N14M1N/ChatAI/internal/domain/usage"
	"github.com/B3N14M1N/ChatAI/internal/infrastructure/logger"
	"github.com/B3N14M1N/ChatAI/internal/infrastructure/metrics"
	"github.com/B3N14M1N/ChatAI/internal/infrastructure/observability"
	"github.com/B3N14M1N/ChatAI/internal/utils/platformerrors"
	"github.com/B3N14M1N/ChatAI/internal/utils/stringutils"
)

// maxTitleLength bounds generated conversation titles.
const maxTitleLength = 80

// ChatRequest is one incoming user turn. An empty ConversationID starts a new
// conversation.
type ChatRequest struct {
	ConversationID string
	Message        string
}

// ChatResult is everything the caller needs about a completed turn.
type ChatResult struct {
	ConversationID     string
	Title              string
	UserMessageID      string
	AssistantMessageID string
	Answer             string
	Usage              usage.Record
	Price              decimal.Decimal
}

// Pipeline orchestrates a full chat turn: conversation bootstrap, message
// persistence, context assembly, tool-backed generation, and usage
// accounting. The user message is persisted before any generation step, so a
// failed turn never loses what the user wrote.
type Pipeline struct {
	repo       Repository
	gateway    ModelGateway
	classifier *IntentClassifier
	assembler  *ContextAssembler
	summarizer *Summarizer
	dispatcher *ToolDispatcher
	cache      *ContextCache
	logger     zerolog.Logger
}

// NewPipeline wires the pipeline from its collaborators.
func NewPipeline(
	repo Repository,
	gateway ModelGateway,
	classifier *IntentClassifier,
	assembler *ContextAssembler,
	summarizer *Summarizer,
	dispatcher *ToolDispatcher,
	cache *ContextCache,
) *Pipeline {
	return &Pipeline{
		repo:       repo,
		gateway:    gateway,
		classifier: classifier,
		assembler:  assembler,
		summarizer: summarizer,
		dispatcher: dispatcher,
		cache:      cache,
		logger:     logger.GetLogger(),
	}
}

// Run executes one chat turn.
func (p *Pipeline) Run(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	ctx, span := observability.StartSpan(ctx, "chat", "chat.turn")
	defer span.End()

	start := time.Now()
	result, err := p.run(ctx, req)

	status := "ok"
	if err != nil {
		status = "error"
		observability.RecordError(ctx, err)
	}
	if result != nil {
		observability.AddSpanAttributes(ctx,
			attribute.String("conversation.id", result.ConversationID),
			attribute.String("usage.model", result.Usage.Model),
		)
	}
	metrics.ObservePipelineRun(status, time.Since(start))
	return result, err
}

func (p *Pipeline) run(ctx context.Context, req ChatRequest) (*ChatResult, error) {
	if req.Message == "" {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"message must not be empty", nil, "3c1d9a4e-58f2-4b7a-bb0d-6e1f2a8c5d40")
	}

	conversation, err := p.ensureConversation(ctx, req)
	if err != nil {
		return nil, err
	}

	// The most recent exchange, snapshotted before invalidation, informs
	// intent classification of short follow-ups.
	recent := p.lastExchange(ctx, conversation)

	userMessage := NewUserMessage(conversation.ID, req.Message)
	userMessage.Summary = p.summarizer.CompactMessage(ctx, RoleUser, req.Message)
	if err := p.repo.CreateMessage(ctx, userMessage); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to persist user message")
	}

	// The cached context predates the new message; drop it so assembly
	// reloads a window that includes this turn.
	p.cache.Delete(conversation.PublicID)

	need := p.classifier.Classify(ctx, req.Message, recent)

	history, err := p.assembler.Assemble(ctx, conversation, need)
	if err != nil {
		return nil, err
	}

	history, digest, cascaded := p.summarizer.Cascade(ctx, history)
	if cascaded {
		p.cache.Set(conversation.PublicID, history)
		if err := p.repo.UpdateConversationSummary(ctx, conversation.ID, digest); err != nil {
			p.logger.Warn().
				Err(err).
				Str("conversation_id", conversation.PublicID).
				Msg("failed to store conversation digest")
		}
	}

	if need == ContextNone {
		// Standalone turns still need the message itself in the prompt.
		history = []PromptMessage{{Role: RoleUser, Content: req.Message}}
	} else {
		// Assembled history carries the compacted form of the current
		// message; the model answers the full text.
		history = withCurrentMessage(history, req.Message)
	}

	answer, err := p.dispatcher.Dispatch(ctx, history)
	if err != nil {
		return nil, err
	}

	assistantMessage := NewAssistantMessage(conversation.ID, userMessage.ID, answer.Text)
	assistantMessage.Summary = p.summarizer.CompactMessage(ctx, RoleAssistant, answer.Text)
	if err := p.repo.CreateMessage(ctx, assistantMessage); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to persist assistant message")
	}
	p.refreshCache(conversation.PublicID, assistantMessage)

	price := usage.PriceRecord(answer.Usage)
	if err := p.repo.SetMessageUsage(ctx, assistantMessage.ID, answer.Usage, price); err != nil {
		// The answer is already durable; losing the usage row is logged,
		// not fatal.
		p.logger.Error().
			Err(err).
			Str("message_id", assistantMessage.PublicID).
			Msg("failed to record message usage")
	}
	metrics.AddTokenUsage(answer.Usage.Model, answer.Usage.InputTokens, answer.Usage.OutputTokens, answer.Usage.CachedTokens)

	return &ChatResult{
		ConversationID:     conversation.PublicID,
		Title:              conversation.Title,
		UserMessageID:      userMessage.PublicID,
		AssistantMessageID: assistantMessage.PublicID,
		Answer:             answer.Text,
		Usage:              answer.Usage,
		Price:              price,
	}, nil
}

// ensureConversation loads the addressed conversation or starts a new one
// with a generated title. Title generation failures fall back to a default so
// a flaky model never blocks the first message.
func (p *Pipeline) ensureConversation(ctx context.Context, req ChatRequest) (*Conversation, error) {
	if req.ConversationID != "" {
		conversation, err := p.repo.GetConversationByPublicID(ctx, req.ConversationID)
		if err != nil {
			return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load conversation")
		}
		return conversation, nil
	}

	raw, _, err := p.gateway.GenerateTitle(ctx, req.Message)
	if err != nil {
		p.logger.Warn().Err(err).Msg("title generation failed, using default title")
		raw = ""
	}
	title := stringutils.ConversationTitle(raw, maxTitleLength, DefaultTitle)

	conversation := NewConversation(title)
	if err := p.repo.CreateConversation(ctx, conversation); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to create conversation")
	}
	metrics.IncConversationsCreated()
	return conversation, nil
}

// lastExchange returns the trailing exchange of the conversation, read from
// the cache when warm and from storage otherwise. A storage failure here only
// costs classification context, so it is logged and swallowed.
func (p *Pipeline) lastExchange(ctx context.Context, conversation *Conversation) []PromptMessage {
	cached, ok := p.cache.Get(conversation.PublicID)
	if ok {
		if len(cached) == 0 {
			return nil
		}
		if len(cached) > lastExchangeSize {
			return cached[len(cached)-lastExchangeSize:]
		}
		return cached
	}

	stored, err := p.repo.ListRecentMessages(ctx, conversation.ID, lastExchangeSize)
	if err != nil {
		p.logger.Warn().
			Err(err).
			Str("conversation_id", conversation.PublicID).
			Msg("failed to load recent messages for intent classification")
		return nil
	}
	recent := make([]PromptMessage, 0, len(stored))
	for _, m := range stored {
		recent = append(recent, PromptMessage{Role: m.Role(), Content: m.CompactContent()})
	}
	return recent
}

// withCurrentMessage replaces the trailing user entry of history with the
// full text of the current message. The cached slice is shared, so the
// replacement works on a copy.
func withCurrentMessage(history []PromptMessage, message string) []PromptMessage {
	trimmed := history
	if n := len(history); n > 0 && history[n-1].Role == RoleUser {
		trimmed = history[:n-1]
	}
	updated := make([]PromptMessage, 0, len(trimmed)+1)
	updated = append(updated, trimmed...)
	return append(updated, PromptMessage{Role: RoleUser, Content: message})
}

// refreshCache appends the assistant reply to the cached context window when
// one is present, so follow-up turns see the full exchange. On a cold cache
// the entry is dropped and the next assembly reloads from storage.
func (p *Pipeline) refreshCache(conversationID string, assistantMessage *Message) {
	cached, ok := p.cache.Get(conversationID)
	if !ok {
		p.cache.Delete(conversationID)
		return
	}
	updated := make([]PromptMessage, 0, len(cached)+1)
	updated = append(updated, cached...)
	updated = append(updated, PromptMessage{Role: RoleAssistant, Content: assistantMessage.CompactContent()})
	p.cache.Set(conversationID, updated)
}
