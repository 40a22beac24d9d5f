package interfaces

import (
	"github.com/google/wire"

	"github.com/B3N14M1N/ChatAI/internal/interfaces/httpserver"
)

var InterfacesProvider = wire.NewSet(
	httpserver.NewHttpServer,
)
