package commands

import (
	"context"
	"log/slog"
)

// UserCommands covers the admin user-management path. DeleteUser is the only
// hard delete in the system; reservations are never removed.
type UserCommands interface {
	DeleteUser(ctx context.Context, id int64) error
}

type userCommandsImpl struct {
	users UserRepository
}

func NewUserCommands(users UserRepository) UserCommands {
	return &userCommandsImpl{users: users}
}

func (c *userCommandsImpl) DeleteUser(ctx context.Context, id int64) error {
	if err := c.users.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("user deleted", "user_id", id)
	return nil
}
