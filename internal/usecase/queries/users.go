package queries

import (
	"context"
	"sort"

	"cinebook/internal/domain/user"
)

type UserReadStore interface {
	FindByID(ctx context.Context, id int64) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	All(ctx context.Context) ([]*user.User, error)
}

type UserQueries interface {
	GetUser(ctx context.Context, id int64) (*UserView, error)
	ListUsers(ctx context.Context) ([]*UserView, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueriesImpl{readStore: readStore}
}

func (q *userQueriesImpl) GetUser(ctx context.Context, id int64) (*UserView, error) {
	u, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewUserView(u), nil
}

func (q *userQueriesImpl) ListUsers(ctx context.Context) ([]*UserView, error) {
	users, err := q.readStore.All(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*UserView, 0, len(users))
	for _, u := range users {
		views = append(views, NewUserView(u))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].ID < views[j].ID })
	return views, nil
}

func NewUserView(u *user.User) *UserView {
	return &UserView{
		ID:        u.ID(),
		Email:     u.Email(),
		Role:      u.Role().String(),
		CreatedAt: u.CreatedAt(),
	}
}
