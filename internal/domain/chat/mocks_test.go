package chat_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/B3N14M1N/ChatAI/internal/domain/books"
	"github.com/B3N14M1N/ChatAI/internal/domain/chat"
	"github.com/B3N14M1N/ChatAI/internal/domain/usage"
)

// repoMock is an in-memory chat.Repository.
type repoMock struct {
	conversations map[string]*chat.Conversation
	messages      []chat.Message
	nextID        uint

	summaryUpdates map[uint]string
	usageRecords   map[uint]usage.Record
	prices         map[uint]decimal.Decimal

	listCalls int

	failCreateMessage error
	failList          error
}

func newRepoMock() *repoMock {
	return &repoMock{
		conversations:  make(map[string]*chat.Conversation),
		summaryUpdates: make(map[uint]string),
		usageRecords:   make(map[uint]usage.Record),
		prices:         make(map[uint]decimal.Decimal),
	}
}

func (r *repoMock) CreateConversation(_ context.Context, conversation *chat.Conversation) error {
	r.nextID++
	conversation.ID = r.nextID
	r.conversations[conversation.PublicID] = conversation
	return nil
}

func (r *repoMock) GetConversationByPublicID(_ context.Context, publicID string) (*chat.Conversation, error) {
	conversation, ok := r.conversations[publicID]
	if !ok {
		return nil, errors.New("conversation not found")
	}
	return conversation, nil
}

func (r *repoMock) UpdateConversationSummary(_ context.Context, conversationID uint, summary string) error {
	r.summaryUpdates[conversationID] = summary
	return nil
}

func (r *repoMock) CreateMessage(_ context.Context, message *chat.Message) error {
	if r.failCreateMessage != nil {
		return r.failCreateMessage
	}
	r.nextID++
	message.ID = r.nextID
	r.messages = append(r.messages, *message)
	return nil
}

func (r *repoMock) ListMessages(_ context.Context, conversationID uint, offset, limit int) ([]chat.Message, int64, error) {
	all := r.messagesOf(conversationID)
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *repoMock) ListRecentMessages(_ context.Context, conversationID uint, limit int) ([]chat.Message, error) {
	r.listCalls++
	if r.failList != nil {
		return nil, r.failList
	}
	all := r.messagesOf(conversationID)
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	return all, nil
}

func (r *repoMock) SetMessageUsage(_ context.Context, messageID uint, record usage.Record, price decimal.Decimal) error {
	r.usageRecords[messageID] = record
	r.prices[messageID] = price
	return nil
}

func (r *repoMock) messagesOf(conversationID uint) []chat.Message {
	var out []chat.Message
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out
}

// seedConversation inserts a conversation directly.
func (r *repoMock) seedConversation(publicID, title string) *chat.Conversation {
	r.nextID++
	conversation := &chat.Conversation{ID: r.nextID, PublicID: publicID, Title: title}
	r.conversations[publicID] = conversation
	return conversation
}

// seedMessage inserts a message directly; requestID == 0 means a user message.
func (r *repoMock) seedMessage(conversationID uint, requestID uint, content, summary string) chat.Message {
	r.nextID++
	message := chat.Message{
		ID:             r.nextID,
		PublicID:       fmt.Sprintf("msg_seed%d", r.nextID),
		ConversationID: conversationID,
		Content:        content,
		Summary:        summary,
	}
	if requestID != 0 {
		rid := requestID
		message.RequestID = &rid
	}
	r.messages = append(r.messages, message)
	return message
}

// gatewayMock is a chat.ModelGateway with per-method overrides. Unset
// methods return benign defaults. Ancillary calls report ancillaryUsage so
// tests can tell their tokens apart from the answering calls.
type gatewayMock struct {
	titleFn     func(firstMessage string) (string, error)
	intentFn    func(text string, recent []chat.PromptMessage) (chat.ContextNeed, error)
	summarizeFn func(text string, maxWords int) (string, error)
	withToolsFn func(history []chat.PromptMessage) (chat.GenerateResult, error)
	finalFn     func(history []chat.PromptMessage, calls []chat.ToolCall, results []chat.ToolResult) (chat.GenerateResult, error)

	ancillaryUsage usage.Record

	summarizeCalls int
}

func (g *gatewayMock) GenerateTitle(_ context.Context, firstMessage string) (string, usage.Record, error) {
	if g.titleFn != nil {
		text, err := g.titleFn(firstMessage)
		return text, g.ancillaryUsage, err
	}
	return "Generated title", g.ancillaryUsage, nil
}

func (g *gatewayMock) DetectIntent(_ context.Context, text string, recent []chat.PromptMessage) (chat.ContextNeed, usage.Record, error) {
	if g.intentFn != nil {
		need, err := g.intentFn(text, recent)
		return need, g.ancillaryUsage, err
	}
	return chat.ContextFull, g.ancillaryUsage, nil
}

func (g *gatewayMock) Summarize(_ context.Context, text string, maxWords int) (string, usage.Record, error) {
	g.summarizeCalls++
	if g.summarizeFn != nil {
		summary, err := g.summarizeFn(text, maxWords)
		return summary, g.ancillaryUsage, err
	}
	return "summary", g.ancillaryUsage, nil
}

func (g *gatewayMock) GenerateWithTools(_ context.Context, history []chat.PromptMessage) (chat.GenerateResult, error) {
	if g.withToolsFn != nil {
		return g.withToolsFn(history)
	}
	return chat.GenerateResult{
		Text:  "direct answer",
		Usage: usage.Record{InputTokens: 10, OutputTokens: 5, Model: "gpt-4o-mini"},
	}, nil
}

func (g *gatewayMock) GenerateFinalResponse(_ context.Context, history []chat.PromptMessage, calls []chat.ToolCall, results []chat.ToolResult) (chat.GenerateResult, error) {
	if g.finalFn != nil {
		return g.finalFn(history, calls, results)
	}
	return chat.GenerateResult{
		Text:  "final answer",
		Usage: usage.Record{InputTokens: 20, OutputTokens: 10, Model: "gpt-4o-mini"},
	}, nil
}

// storeMock is a books.Store with canned responses.
type storeMock struct {
	recommendFn func(query books.RecommendQuery) ([]books.Book, error)
	summariesFn func(titles []string) ([]books.Summary, error)

	recommendCalls []books.RecommendQuery
}

func (s *storeMock) Recommend(_ context.Context, query books.RecommendQuery) ([]books.Book, error) {
	s.recommendCalls = append(s.recommendCalls, query)
	if s.recommendFn != nil {
		return s.recommendFn(query)
	}
	return nil, nil
}

func (s *storeMock) Summaries(_ context.Context, titles []string) ([]books.Summary, error) {
	if s.summariesFn != nil {
		return s.summariesFn(titles)
	}
	return nil, nil
}
