//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"sayitloud/infrastructure/config"
	"sayitloud/infrastructure/transport"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideStorage,
	ProvideSessionStore,
	ProvideTransport,
	ProvideAPIClient,
	ProvideEntityStore,
	ProvideRunner,
	ProvideAnalysisTrigger,
	ProvideViewDeps,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(cfg *config.Config, navigator transport.Navigator) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
