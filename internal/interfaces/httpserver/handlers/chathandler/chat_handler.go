package chathandler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/B3N14M1N/ChatAI/internal/domain/chat"
	"github.com/B3N14M1N/ChatAI/internal/interfaces/httpserver/handlers"
	chatrequests "github.com/B3N14M1N/ChatAI/internal/interfaces/httpserver/requests/chat"
	chatresponses "github.com/B3N14M1N/ChatAI/internal/interfaces/httpserver/responses/chat"
	"github.com/B3N14M1N/ChatAI/internal/utils/platformerrors"
)

// ChatHandler handles chat turn requests
type ChatHandler struct {
	pipeline *chat.Pipeline
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(pipeline *chat.Pipeline) *ChatHandler {
	return &ChatHandler{pipeline: pipeline}
}

// SendMessage godoc
// @Summary Send a chat message
// @Description Runs one chat turn: persists the message, generates a grounded answer and returns it with its usage accounting. Omitting conversation_id starts a new conversation.
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body chatrequests.SendMessageRequest true "Chat message"
// @Success 200 {object} chatresponses.SendMessageResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /v1/chat [post]
func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req chatrequests.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handlers.RespondError(c, platformerrors.NewError(
			c.Request.Context(),
			platformerrors.LayerHandler,
			platformerrors.ErrorTypeValidation,
			"invalid chat request body",
			err,
			"6b2e8d41-f5a9-4c37-90e6-1d8c4a7f2b50",
		))
		return
	}

	result, err := h.pipeline.Run(c.Request.Context(), chat.ChatRequest{
		ConversationID: req.ConversationID,
		Message:        req.Message,
	})
	if err != nil {
		handlers.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, chatresponses.NewSendMessageResponse(result))
}
