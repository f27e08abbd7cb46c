package bootstrap

import (
	"cinebook/internal/infra/tmdb"
	"cinebook/internal/pkg/config"
	"cinebook/internal/usecase/queries"

	"go.uber.org/fx"
)

var TMDBModule = fx.Module("tmdb",
	fx.Provide(
		fx.Annotate(
			NewTMDBClient,
			fx.As(new(queries.CatalogClient)),
		),
	),
)

func NewTMDBClient(cfg config.Config) *tmdb.Client {
	return tmdb.NewClient(cfg.TMDB)
}
