package conversationhandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/B3N14M1N/ChatAI/internal/domain/chat"
	"github.com/B3N14M1N/ChatAI/internal/interfaces/httpserver/handlers"
	chatrequests "github.com/B3N14M1N/ChatAI/internal/interfaces/httpserver/requests/chat"
	chatresponses "github.com/B3N14M1N/ChatAI/internal/interfaces/httpserver/responses/chat"
	"github.com/B3N14M1N/ChatAI/internal/utils/functional"
	"github.com/B3N14M1N/ChatAI/internal/utils/idgen"
	"github.com/B3N14M1N/ChatAI/internal/utils/platformerrors"
)

// ConversationHandler handles conversation read requests
type ConversationHandler struct {
	repo chat.Repository
}

// NewConversationHandler creates a new ConversationHandler
func NewConversationHandler(repo chat.Repository) *ConversationHandler {
	return &ConversationHandler{repo: repo}
}

// ListMessages godoc
// @Summary List conversation messages
// @Description Returns the messages of a conversation, oldest first, with pagination.
// @Tags Conversations
// @Produce json
// @Param conversation_id path string true "Conversation public ID"
// @Param offset query int false "Pagination offset" default(0)
// @Param limit query int false "Page size" default(50)
// @Success 200 {object} chatresponses.ListMessagesResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /v1/conversations/{conversation_id}/messages [get]
func (h *ConversationHandler) ListMessages(c *gin.Context) {
	var query chatrequests.ListMessagesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		handlers.RespondError(c, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation,
			"invalid pagination parameters",
			err,
			"e7c3a9f1-5d28-4b64-80c9-2f6e1b4d8a35",
		))
		return
	}

	conversationID := c.Param("conversation_id")
	if !idgen.ValidateIDFormat(conversationID, chat.ConversationIDPrefix) {
		handlers.RespondError(c, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation,
			"invalid conversation id",
			nil,
			"2a9d6e47-8c15-4f3b-b0e2-7d4a1c8f5e63",
		))
		return
	}

	conversation, err := h.repo.GetConversationByPublicID(c.Request.Context(), conversationID)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	messages, total, err := h.repo.ListMessages(c.Request.Context(), conversation.ID, query.Offset, query.Limit)
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	items := functional.Map(messages, func(m chat.Message) chatresponses.MessageResponse {
		return chatresponses.NewMessageResponse(&m)
	})

	c.JSON(http.StatusOK, chatresponses.ListMessagesResponse{
		ConversationID: conversation.PublicID,
		Title:          conversation.Title,
		Messages:       items,
		Total:          total,
		Offset:         query.Offset,
		Limit:          query.Limit,
	})
}
