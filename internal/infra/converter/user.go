package converter

import (
	"time"

	"cinebook/internal/domain/user"
	"cinebook/internal/pkg/errs"

	"github.com/jinzhu/copier"
)

type UserRecord struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Role         user.Role `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

func ToUserRecord(u *user.User) (UserRecord, error) {
	var rec UserRecord
	if err := copier.Copy(&rec, u); err != nil {
		return UserRecord{}, errs.Wrap(err, "serialize user")
	}
	return rec, nil
}

func ToUserEntity(rec UserRecord) *user.User {
	return user.ReconstructUser(rec.ID, rec.Email, rec.PasswordHash, rec.Role, rec.CreatedAt)
}
