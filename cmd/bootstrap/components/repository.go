package components

import (
	"cinebook/internal/infra/repository"
	"cinebook/internal/usecase/commands"
	"cinebook/internal/usecase/queries"
	"cinebook/internal/usecase/shared"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		// Reservation
		fx.Annotate(
			repository.NewReservationRepository,
			fx.As(new(shared.ReservationUnitOfWork)),
			fx.As(new(queries.ReservationReadStore)),
		),
		// User
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.UserRepository)),
			fx.As(new(queries.UserReadStore)),
		),
	),
)
