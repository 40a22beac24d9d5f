package chat

import (
	"github.com/gin-gonic/gin"

	"github.com/B3N14M1N/ChatAI/internal/interfaces/httpserver/handlers/chathandler"
)

type ChatRoute struct {
	chatHandler *chathandler.ChatHandler
}

func NewChatRoute(chatHandler *chathandler.ChatHandler) *ChatRoute {
	return &ChatRoute{chatHandler: chatHandler}
}

func (route *ChatRoute) RegisterRouter(router gin.IRouter) {
	router.POST("/chat", route.chatHandler.SendMessage)
}
