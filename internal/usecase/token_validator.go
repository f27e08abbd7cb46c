package usecase

import (
	"cinebook/internal/domain/user"
	"cinebook/internal/pkg/jwt"
)

// TokenValidator resolves an access token to the caller's identity.
type TokenValidator interface {
	ValidateToken(token string) (int64, user.Role, error)
}

type tokenValidatorImpl struct {
	jwtService *jwt.Service
}

func NewTokenValidator(jwtService *jwt.Service) TokenValidator {
	return &tokenValidatorImpl{jwtService: jwtService}
}

func (v *tokenValidatorImpl) ValidateToken(token string) (int64, user.Role, error) {
	claims, err := v.jwtService.ValidateToken(token)
	if err != nil {
		return 0, "", err
	}

	role, err := user.NewRole(claims.Role)
	if err != nil {
		return 0, "", err
	}

	return claims.UserID, role, nil
}
