package commands

import (
	"context"
	"log/slog"

	"cinebook/internal/domain/user"
	"cinebook/internal/pkg/clock"
	"cinebook/internal/pkg/errs"
	"cinebook/internal/pkg/jwt"
	"cinebook/internal/pkg/password"
	"cinebook/internal/usecase/queries"
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	Create(ctx context.Context, build func(id int64) (*user.User, error)) (*user.User, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id int64) error
}

type LoginResult struct {
	User        *queries.UserView
	AccessToken string
}

type AuthCommands interface {
	Register(ctx context.Context, email, plainPassword string) (*queries.UserView, error)
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	users      UserRepository
	jwtService *jwt.Service
	clock      clock.Clock
}

func NewAuthCommands(users UserRepository, jwtService *jwt.Service, clk clock.Clock) AuthCommands {
	return &authCommandsImpl{
		users:      users,
		jwtService: jwtService,
		clock:      clk,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, email, plainPassword string) (*queries.UserView, error) {
	if _, err := a.users.FindByEmail(ctx, email); err == nil {
		return nil, errs.ErrEmailTaken
	}

	hash, err := password.HashPassword(plainPassword)
	if err != nil {
		return nil, err
	}

	// The very first account gets the admin role; everyone after is a
	// regular user.
	count, err := a.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	role := user.RoleUser
	if count == 0 {
		role = user.RoleAdmin
	}

	created, err := a.users.Create(ctx, func(id int64) (*user.User, error) {
		return user.NewUser(id, email, hash, role, a.clock.Now())
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", created.ID(), "role", created.Role().String())
	return queries.NewUserView(created), nil
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	u, err := a.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	if err := password.ComparePassword(u.PasswordHash(), plainPassword); err != nil {
		return nil, errs.Mark(err, errs.ErrInvalidCredentials)
	}

	token, err := a.jwtService.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return nil, errs.Wrap(err, "generate access token")
	}

	return &LoginResult{
		User:        queries.NewUserView(u),
		AccessToken: token,
	}, nil
}
