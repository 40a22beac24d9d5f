package routes

import (
	"github.com/google/wire"

	"github.com/B3N14M1N/ChatAI/internal/interfaces/httpserver/handlers/chathandler"
	"github.com/B3N14M1N/ChatAI/internal/interfaces/httpserver/handlers/conversationhandler"
	"github.com/B3N14M1N/ChatAI/internal/interfaces/httpserver/handlers/usagehandler"
	v1 "github.com/B3N14M1N/ChatAI/internal/interfaces/httpserver/routes/v1"
	"github.com/B3N14M1N/ChatAI/internal/interfaces/httpserver/routes/v1/chat"
	"github.com/B3N14M1N/ChatAI/internal/interfaces/httpserver/routes/v1/conversation"
	"github.com/B3N14M1N/ChatAI/internal/interfaces/httpserver/routes/v1/usage"
)

var RouteProvider = wire.NewSet(
	// Handlers
	chathandler.NewChatHandler,
	conversationhandler.NewConversationHandler,
	usagehandler.NewUsageHandler,

	// Routes
	v1.NewV1Route,
	chat.NewChatRoute,
	conversation.NewConversationRoute,
	usage.NewUsageRoute,
)
