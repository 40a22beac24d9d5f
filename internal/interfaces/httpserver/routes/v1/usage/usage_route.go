package usage

import (
	"github.com/gin-gonic/gin"

	"github.com/B3N14M1N/ChatAI/internal/interfaces/httpserver/handlers/usagehandler"
)

type UsageRoute struct {
	usageHandler *usagehandler.UsageHandler
}

func NewUsageRoute(usageHandler *usagehandler.UsageHandler) *UsageRoute {
	return &UsageRoute{usageHandler: usageHandler}
}

func (route *UsageRoute) RegisterRouter(router gin.IRouter) {
	usage := router.Group("/usage")
	usage.GET("/models", route.usageHandler.GetModels)
}
