//go:build wireinject

package main

import (
	"github.com/B3N14M1N/ChatAI/internal/domain"
	"github.com/B3N14M1N/ChatAI/internal/infrastructure"
	"github.com/B3N14M1N/ChatAI/internal/interfaces"
	"github.com/B3N14M1N/ChatAI/internal/interfaces/httpserver/routes"

	"github.com/google/wire"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
