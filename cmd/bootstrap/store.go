package bootstrap

import (
	"cinebook/internal/infra/store"
	"cinebook/internal/pkg/config"

	"go.uber.org/fx"
)

var StoreModule = fx.Module("store",
	fx.Provide(
		NewStore,
	),
)

func NewStore(cfg config.Config) (*store.Store, error) {
	return store.New(cfg.Store)
}
