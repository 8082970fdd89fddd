package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/csuniv/election-system/internal/core/domain"
)

// AuthService implements the admin login gate. There is a single
// administrator identity; the password is checked against a bcrypt hash
// supplied through configuration.
type AuthService struct {
	passwordHash string
	jwtSecret    string
	tokenTTL     time.Duration
}

func NewAuthService(passwordHash, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &AuthService{passwordHash: passwordHash, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) Login(ctx context.Context, password string) (string, error) {
	if password == "" || s.passwordHash == "" {
		return "", domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) != nil {
		return "", domain.ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"role": domain.RoleAdmin,
		"exp":  time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
