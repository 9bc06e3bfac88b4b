package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/marketlens/marketlens/pkg/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

//go:generate mockery --name=Manager --dir=. --output=../../../../mocks --filename=jwt_manager_mock.go --case=underscore --with-expecter
type (
	// Manager issues and verifies the signed bearer tokens carried on every
	// authenticated request. Verification is stateless: validity is a function
	// of signature and expiry only.
	Manager interface {
		CreateToken(subject string) (string, error)
		ValidateToken(tokenString string) (string, error)
	}
	manager struct {
		secretKey []byte
		lifetime  time.Duration
	}
)

func NewJwtManager(cfg *config.AuthConfig) Manager {
	return &manager{
		secretKey: []byte(cfg.SecretKey),
		lifetime:  cfg.TokenLifetime(),
	}
}

type Claims struct {
	jwt.RegisteredClaims
}

func (m *manager) CreateToken(subject string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.lifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken returns the token's subject. The accepted signing method is
// pinned to HS256; a token claiming any other algorithm is rejected before
// signature checks run.
func (m *manager) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpiredToken
		}
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
