package conversation

import (
	"github.com/gin-gonic/gin"

	"github.com/B3N14M1N/ChatAI/internal/interfaces/httpserver/handlers/conversationhandler"
)

type ConversationRoute struct {
	conversationHandler *conversationhandler.ConversationHandler
}

func NewConversationRoute(conversationHandler *conversationhandler.ConversationHandler) *ConversationRoute {
	return &ConversationRoute{conversationHandler: conversationHandler}
}

func (route *ConversationRoute) RegisterRouter(router gin.IRouter) {
	conversations := router.Group("/conversations")
	conversations.GET("/:conversation_id/messages", route.conversationHandler.ListMessages)
}
