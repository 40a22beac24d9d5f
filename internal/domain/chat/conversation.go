package chat

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/B3N14M1N/ChatAI/internal/domain/usage"
	"github.com/B3N14M1N/ChatAI/internal/utils/idgen"
)

const (
	// ConversationIDPrefix prefixes public conversation identifiers.
	ConversationIDPrefix = "conv"
	// MessageIDPrefix prefixes public message identifiers.
	MessageIDPrefix = "msg"

	publicIDLength = 16

	// DefaultTitle is used when title generation fails or produces nothing
	// usable.
	DefaultTitle = "New chat"
)

// RoleUser and RoleAssistant are the two message roles the service knows.
// A message's role is derived from its request linkage and never stored.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Conversation is one chat thread between a user and the assistant.
type Conversation struct {
	ID        uint
	PublicID  string
	Title     string
	Summary   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message is a single turn inside a conversation. RequestID links an
// assistant message to the user message it answers; user messages carry no
// request linkage.
type Message struct {
	ID             uint
	PublicID       string
	ConversationID uint
	RequestID      *uint
	Content        string
	Summary        string
	InputTokens    int
	OutputTokens   int
	CachedTokens   int
	Model          string
	Price          decimal.Decimal
	CreatedAt      time.Time
}

// Role derives the message role from its request linkage: messages without a
// request reference were authored by the user, all others by the assistant.
func (m *Message) Role() string {
	if m.RequestID == nil {
		return RoleUser
	}
	return RoleAssistant
}

// CompactContent returns the summary when one exists, otherwise the full
// content. Context assembly prefers the compact form.
func (m *Message) CompactContent() string {
	if m.Summary != "" {
		return m.Summary
	}
	return m.Content
}

// NewConversation creates an unpersisted conversation with a fresh public ID.
func NewConversation(title string) *Conversation {
	return &Conversation{
		PublicID: idgen.GenerateSecureID(ConversationIDPrefix, publicIDLength),
		Title:    title,
	}
}

// NewUserMessage creates an unpersisted user message.
func NewUserMessage(conversationID uint, content string) *Message {
	return &Message{
		PublicID:       idgen.GenerateSecureID(MessageIDPrefix, publicIDLength),
		ConversationID: conversationID,
		Content:        content,
	}
}

// NewAssistantMessage creates an unpersisted assistant message answering the
// user message identified by requestID.
func NewAssistantMessage(conversationID, requestID uint, content string) *Message {
	rid := requestID
	return &Message{
		PublicID:       idgen.GenerateSecureID(MessageIDPrefix, publicIDLength),
		ConversationID: conversationID,
		RequestID:      &rid,
		Content:        content,
	}
}

// Repository is the persistence boundary for conversations and messages.
type Repository interface {
	CreateConversation(ctx context.Context, conversation *Conversation) error
	GetConversationByPublicID(ctx context.Context, publicID string) (*Conversation, error)
	UpdateConversationSummary(ctx context.Context, conversationID uint, summary string) error

	CreateMessage(ctx context.Context, message *Message) error
	// ListMessages returns messages of a conversation ordered oldest first,
	// along with the total count before pagination.
	ListMessages(ctx context.Context, conversationID uint, offset, limit int) ([]Message, int64, error)
	// ListRecentMessages returns the newest limit messages reordered oldest
	// first, so callers can feed them straight into a prompt.
	ListRecentMessages(ctx context.Context, conversationID uint, limit int) ([]Message, error)
	SetMessageUsage(ctx context.Context, messageID uint, record usage.Record, price decimal.Decimal) error
}
