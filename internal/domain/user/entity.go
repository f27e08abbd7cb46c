package user

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidEmail = errors.New("invalid email address")

type User struct {
	id           int64
	email        string
	passwordHash string
	role         Role
	createdAt    time.Time
}

func NewUser(id int64, email, passwordHash string, role Role, now time.Time) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if !role.IsValid() {
		return nil, ErrInvalidRole
	}

	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    now,
	}, nil
}

func ReconstructUser(id int64, email, passwordHash string, role Role, createdAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
	}
}

func (u *User) ID() int64            { return u.id }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() Role           { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }

func (u *User) IsAdmin() bool {
	return u.role == RoleAdmin
}
