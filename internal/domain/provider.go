package domain

import (
	"github.com/google/wire"

	"github.com/B3N14M1N/ChatAI/internal/domain/chat"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	chat.NewIntentClassifier,
	chat.NewToolDispatcher,
	chat.NewPipeline,
)
