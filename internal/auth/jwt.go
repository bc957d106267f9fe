package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// GenerateToken signs an HS256 token carrying the user id and email.
func (s *Service) GenerateToken(userID, email string) (string, error) {
	if userID == "" {
		return "", errors.New("empty userID passed to GenerateToken")
	}
	if s.cfg.JWTSecret == "" {
		return "", errors.New("jwt secret is not configured")
	}

	claims := jwt.MapClaims{
		"userID": userID,
		"email":  email,
		"exp":    time.Now().Add(s.cfg.TokenTTL()).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// ValidateToken parses a token and returns the user id and email.
func (s *Service) ValidateToken(tokenString string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", ErrInvalidToken
	}

	userID, _ := claims["userID"].(string)
	email, _ := claims["email"].(string)
	if userID == "" {
		return "", "", ErrInvalidToken
	}
	return userID, email, nil
}
