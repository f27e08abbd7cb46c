package bootstrap

import (
	"cinebook/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	StoreModule,
	JWTModule,
	TMDBModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
