package chatrepo

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/B3N14M1N/ChatAI/internal/domain/chat"
	"github.com/B3N14M1N/ChatAI/internal/domain/usage"
	"github.com/B3N14M1N/ChatAI/internal/infrastructure/database/dbschema"
	"github.com/B3N14M1N/ChatAI/internal/utils/platformerrors"
)

type ChatGormRepository struct {
	db *gorm.DB
}

var _ chat.Repository = (*ChatGormRepository)(nil)

func NewChatGormRepository(db *gorm.DB) chat.Repository {
	return &ChatGormRepository{db: db}
}

func (repo *ChatGormRepository) CreateConversation(ctx context.Context, conversation *chat.Conversation) error {
	entity := dbschema.NewSchemaConversation(conversation)
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create conversation",
			err,
			"7e3b9c25-4d81-4c6a-a2f0-58e1b9d4c672",
		)
	}
	conversation.ID = entity.ID
	conversation.CreatedAt = entity.CreatedAt
	conversation.UpdatedAt = entity.UpdatedAt
	return nil
}

func (repo *ChatGormRepository) GetConversationByPublicID(ctx context.Context, publicID string) (*chat.Conversation, error) {
	var entity dbschema.Conversation
	err := repo.db.WithContext(ctx).
		Where("public_id = ?", publicID).
		First(&entity).
		Error
	if err == gorm.ErrRecordNotFound {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeNotFound,
			"conversation not found",
			err,
			"1f8a6d93-2b47-4e5c-8d01-a93c7f2e5b84",
		)
	}
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to find conversation by public ID",
			err,
			"d2c5e8f1-9a36-47b0-b4d8-3e6f1a9c2d57",
		)
	}
	return entity.EtoD(), nil
}

func (repo *ChatGormRepository) UpdateConversationSummary(ctx context.Context, conversationID uint, summary string) error {
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Conversation{}).
		Where("id = ?", conversationID).
		Update("summary", summary).
		Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to update conversation summary",
			err,
			"b7f2e4a9-c53d-4816-92e7-0d4a8b6c3f15",
		)
	}
	return nil
}

func (repo *ChatGormRepository) CreateMessage(ctx context.Context, message *chat.Message) error {
	entity := dbschema.NewSchemaMessage(message)
	if err := repo.db.WithContext(ctx).Create(entity).Error; err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to create message",
			err,
			"4a9c7e21-d685-4b3f-8c50-e2f7b1d9a364",
		)
	}
	message.ID = entity.ID
	message.CreatedAt = entity.CreatedAt
	return nil
}

func (repo *ChatGormRepository) ListMessages(ctx context.Context, conversationID uint, offset, limit int) ([]chat.Message, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&dbschema.Message{}).
		Where("conversation_id = ?", conversationID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to count messages",
			err,
			"9d4b2f76-1e8a-4c53-b0d9-7a2c5e8f1b46",
		)
	}

	var entities []dbschema.Message
	err := query.
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&entities).
		Error
	if err != nil {
		return nil, 0, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list messages",
			err,
			"f1c8d5a2-6b94-4e07-a3d1-8e5b2c9f7a60",
		)
	}

	messages := make([]chat.Message, 0, len(entities))
	for i := range entities {
		messages = append(messages, *entities[i].EtoD())
	}
	return messages, total, nil
}

func (repo *ChatGormRepository) ListRecentMessages(ctx context.Context, conversationID uint, limit int) ([]chat.Message, error) {
	var entities []dbschema.Message
	err := repo.db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("id DESC").
		Limit(limit).
		Find(&entities).
		Error
	if err != nil {
		return nil, platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to list recent messages",
			err,
			"3e7a1c94-8f52-4d6b-9e08-b4d2f7a5c913",
		)
	}

	// Fetched newest-first; reverse to oldest-first for prompt order.
	messages := make([]chat.Message, 0, len(entities))
	for i := len(entities) - 1; i >= 0; i-- {
		messages = append(messages, *entities[i].EtoD())
	}
	return messages, nil
}

func (repo *ChatGormRepository) SetMessageUsage(ctx context.Context, messageID uint, record usage.Record, price decimal.Decimal) error {
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Message{}).
		Where("id = ?", messageID).
		Updates(map[string]any{
			"input_tokens":  record.InputTokens,
			"output_tokens": record.OutputTokens,
			"cached_tokens": record.CachedTokens,
			"model":         record.Model,
			"price":         price,
		}).
		Error
	if err != nil {
		return platformerrors.NewError(
			ctx,
			platformerrors.LayerRepository,
			platformerrors.ErrorTypeDatabaseError,
			"failed to set message usage",
			err,
			"c6f3a8d1-2e97-4b50-8a4c-d9e1b5f2c738",
		)
	}
	return nil
}
