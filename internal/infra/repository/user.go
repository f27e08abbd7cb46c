package repository

import (
	"context"
	"sync"

	"cinebook/internal/domain/user"
	"cinebook/internal/infra/converter"
	"cinebook/internal/infra/store"
	"cinebook/internal/pkg/errs"
)

const usersKey = "users"

type UserRepository struct {
	mu    sync.Mutex
	store *store.Store
}

func NewUserRepository(s *store.Store) *UserRepository {
	return &UserRepository{store: s}
}

func (r *UserRepository) All(_ context.Context) ([]*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	users, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID() == id {
			return u, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	users, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, errs.ErrUserNotFound
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	users, err := r.All(ctx)
	if err != nil {
		return 0, err
	}
	return len(users), nil
}

func (r *UserRepository) Create(_ context.Context, build func(id int64) (*user.User, error)) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}
	var maxID int64
	for _, u := range users {
		if u.ID() > maxID {
			maxID = u.ID()
		}
	}
	created, err := build(maxID + 1)
	if err != nil {
		return nil, err
	}
	return created, r.persist(append(users, created))
}

func (r *UserRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return err
	}
	kept := users[:0]
	found := false
	for _, u := range users {
		if u.ID() == id {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		return errs.ErrUserNotFound
	}
	return r.persist(kept)
}

func (r *UserRepository) load() ([]*user.User, error) {
	records, err := store.Load[[]converter.UserRecord](r.store, usersKey)
	if err != nil {
		return nil, err
	}
	users := make([]*user.User, 0, len(records))
	for _, rec := range records {
		users = append(users, converter.ToUserEntity(rec))
	}
	return users, nil
}

func (r *UserRepository) persist(users []*user.User) error {
	records := make([]converter.UserRecord, 0, len(users))
	for _, u := range users {
		rec, err := converter.ToUserRecord(u)
		if err != nil {
			return err
		}
		records = append(records, rec)
	}
	return store.Save(r.store, usersKey, records)
}
