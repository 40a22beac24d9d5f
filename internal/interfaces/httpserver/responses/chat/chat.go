package chat

import (
	"time"

	"github.com/B3N14M1N/ChatAI/internal/domain/chat"
)

// UsageResponse is the token and cost accounting of one answered turn.
type UsageResponse struct {
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
	CachedTokens int    `json:"cached_tokens"`
	Model        string `json:"model"`
	Price        string `json:"price"`
}

// SendMessageResponse is the body returned by POST /v1/chat.
type SendMessageResponse struct {
	ConversationID     string        `json:"conversation_id"`
	Title              string        `json:"title"`
	UserMessageID      string        `json:"user_message_id"`
	AssistantMessageID string        `json:"assistant_message_id"`
	Answer             string        `json:"answer"`
	Usage              UsageResponse `json:"usage"`
}

// NewSendMessageResponse maps a pipeline result onto the wire format.
func NewSendMessageResponse(result *chat.ChatResult) SendMessageResponse {
	return SendMessageResponse{
		ConversationID:     result.ConversationID,
		Title:              result.Title,
		UserMessageID:      result.UserMessageID,
		AssistantMessageID: result.AssistantMessageID,
		Answer:             result.Answer,
		Usage: UsageResponse{
			InputTokens:  result.Usage.InputTokens,
			OutputTokens: result.Usage.OutputTokens,
			CachedTokens: result.Usage.CachedTokens,
			Model:        result.Usage.Model,
			Price:        result.Price.String(),
		},
	}
}

// MessageResponse is one stored message. The role is derived from the
// message's request linkage.
type MessageResponse struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Summary   string    `json:"summary,omitempty"`
	Model     string    `json:"model,omitempty"`
	Price     string    `json:"price,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ListMessagesResponse is the body returned by
// GET /v1/conversations/:conversation_id/messages.
type ListMessagesResponse struct {
	ConversationID string            `json:"conversation_id"`
	Title          string            `json:"title"`
	Messages       []MessageResponse `json:"messages"`
	Total          int64             `json:"total"`
	Offset         int               `json:"offset"`
	Limit          int               `json:"limit"`
}

// NewMessageResponse maps a stored message onto the wire format.
func NewMessageResponse(message *chat.Message) MessageResponse {
	resp := MessageResponse{
		ID:        message.PublicID,
		Role:      message.Role(),
		Content:   message.Content,
		Summary:   message.Summary,
		Model:     message.Model,
		CreatedAt: message.CreatedAt,
	}
	if message.Role() == chat.RoleAssistant {
		resp.Price = message.Price.String()
	}
	return resp
}
