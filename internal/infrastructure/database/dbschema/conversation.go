package dbschema

import (
	"github.com/B3N14M1N/ChatAI/internal/domain/chat"
	"github.com/B3N14M1N/ChatAI/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(&Conversation{})
}

// Conversation represents the database schema for conversations
type Conversation struct {
	BaseModel
	PublicID string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Title    string `gorm:"type:varchar(256);not null"`
	Summary  string `gorm:"type:text"`

	Messages []Message `gorm:"foreignKey:ConversationID"`
}

// NewSchemaConversation creates a database schema from domain conversation
func NewSchemaConversation(c *chat.Conversation) *Conversation {
	return &Conversation{
		BaseModel: BaseModel{
			ID:        c.ID,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		PublicID: c.PublicID,
		Title:    c.Title,
		Summary:  c.Summary,
	}
}

// EtoD converts database schema to domain conversation (Entity to Domain)
func (c *Conversation) EtoD() *chat.Conversation {
	return &chat.Conversation{
		ID:        c.ID,
		PublicID:  c.PublicID,
		Title:     c.Title,
		Summary:   c.Summary,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
