package response

import (
	"time"

	"cinebook/internal/usecase/queries"
)

type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromUserView(rm *queries.UserView) *UserResponse {
	return &UserResponse{
		ID:        rm.ID,
		Email:     rm.Email,
		Role:      rm.Role,
		CreatedAt: rm.CreatedAt,
	}
}
