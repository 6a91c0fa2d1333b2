package usecase

import (
	"errors"

	"callbox-backend/pkg/config"

	"github.com/golang-jwt/jwt/v5"
)

// AuthUsecase validates bearer tokens for protected routes. Token issuance
// and session lifecycle live in the account service, not here.
type AuthUsecase interface {
	// ValidateToken returns the user ID carried by a valid access token
	ValidateToken(token string) (string, error)
}

// authUsecase implements AuthUsecase
type authUsecase struct {
	jwtSecret []byte
}

// NewAuthUsecase creates a new instance of authUsecase
func NewAuthUsecase(cfg *config.Config) AuthUsecase {
	return &authUsecase{jwtSecret: []byte(cfg.JWTSecret)}
}

func (u *authUsecase) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return u.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	userID, err := claims.GetSubject()
	if err != nil || userID == "" {
		return "", errors.New("token missing subject")
	}
	return userID, nil
}
