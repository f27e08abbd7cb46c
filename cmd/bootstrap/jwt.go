package bootstrap

import (
	"cinebook/internal/pkg/config"
	"cinebook/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	tokenDuration, err := cfg.JWT.ParseDuration()
	if err != nil {
		panic(err.Error())
	}
	return jwt.NewService(cfg.JWT.Secret, tokenDuration)
}
