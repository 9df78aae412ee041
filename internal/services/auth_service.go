package services

import (
	"errors"
	"time"

	"rentora/config"
	rentora_errors "rentora/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		jwtSecret: []byte(cfg.JWTSecret),
		accessTTL: time.Duration(cfg.JWTExpiryMin) * time.Minute,
	}
}

type AccessClaims struct {
	UserID int    `json:"uid"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

func (s *AuthService) IssueAccessToken(userID int, name string) (string, int64, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: userID,
		Name:   name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", 0, err
	}
	return signed, int64(s.accessTTL.Seconds()), nil
}

func (s *AuthService) ParseAccessToken(tokenString string) (*AccessClaims, error) {
	if tokenString == "" {
		return nil, rentora_errors.ErrUnauthorized
	}
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, rentora_errors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, rentora_errors.ErrUnauthorized
	}
	claims, ok := token.Claims.(*AccessClaims)
	if !ok || claims.UserID == 0 {
		return nil, rentora_errors.ErrUnauthorized
	}
	return claims, nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// HTTPStatus maps service errors to response status codes.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, rentora_errors.ErrInvalidInput), errors.Is(err, rentora_errors.ErrSelfMessage):
		return 400
	case errors.Is(err, rentora_errors.ErrUnauthorized), errors.Is(err, rentora_errors.ErrInactiveUser):
		return 401
	case errors.Is(err, rentora_errors.ErrForbidden):
		return 403
	case errors.Is(err, rentora_errors.ErrNotFound):
		return 404
	case errors.Is(err, rentora_errors.ErrAlreadyExists), errors.Is(err, rentora_errors.ErrConflict):
		return 409
	default:
		return 500
	}
}
