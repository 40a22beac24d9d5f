package dbschema

import (
	"github.com/shopspring/decimal"

	"github.com/B3N14M1N/ChatAI/internal/domain/chat"
	"github.com/B3N14M1N/ChatAI/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(&Message{})
}

// Message represents the database schema for messages. RequestID links an
// assistant message to the user message it answers; the role is always
// derived from that column, never stored.
type Message struct {
	BaseModel
	ConversationID uint         `gorm:"index:idx_message_conversation;not null"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID"`
	PublicID       string       `gorm:"type:varchar(50);uniqueIndex;not null"`
	RequestID      *uint        `gorm:"index"`
	Content        string       `gorm:"type:text;not null"`
	Summary        string       `gorm:"type:text"`

	InputTokens  int             `gorm:"not null;default:0"`
	OutputTokens int             `gorm:"not null;default:0"`
	CachedTokens int             `gorm:"not null;default:0"`
	Model        string          `gorm:"type:varchar(64)"`
	Price        decimal.Decimal `gorm:"type:numeric(16,7);not null;default:0"`
}

// NewSchemaMessage creates a database schema from domain message
func NewSchemaMessage(m *chat.Message) *Message {
	return &Message{
		BaseModel: BaseModel{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
		},
		ConversationID: m.ConversationID,
		PublicID:       m.PublicID,
		RequestID:      m.RequestID,
		Content:        m.Content,
		Summary:        m.Summary,
		InputTokens:    m.InputTokens,
		OutputTokens:   m.OutputTokens,
		CachedTokens:   m.CachedTokens,
		Model:          m.Model,
		Price:          m.Price,
	}
}

// EtoD converts database schema to domain message (Entity to Domain)
func (m *Message) EtoD() *chat.Message {
	return &chat.Message{
		ID:             m.ID,
		PublicID:       m.PublicID,
		ConversationID: m.ConversationID,
		RequestID:      m.RequestID,
		Content:        m.Content,
		Summary:        m.Summary,
		InputTokens:    m.InputTokens,
		OutputTokens:   m.OutputTokens,
		CachedTokens:   m.CachedTokens,
		Model:          m.Model,
		Price:          m.Price,
		CreatedAt:      m.CreatedAt,
	}
}
