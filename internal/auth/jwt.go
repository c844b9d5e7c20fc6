package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers expired, malformed and wrongly signed tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the authenticated user id.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates access and refresh tokens. Access
// tokens expire after AccessAge; refresh tokens only expire by being
// revoked from the authentications table.
type TokenManager struct {
	accessKey  []byte
	refreshKey []byte
	accessAge  time.Duration
}

// NewTokenManager builds a TokenManager from the configured signing keys.
func NewTokenManager(accessKey, refreshKey string, accessAge time.Duration) *TokenManager {
	return &TokenManager{
		accessKey:  []byte(accessKey),
		refreshKey: []byte(refreshKey),
		accessAge:  accessAge,
	}
}

// NewAccessToken signs a short-lived access token for the user.
func (m *TokenManager) NewAccessToken(userID string) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.accessAge)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.accessKey)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return token, nil
}

// NewRefreshToken signs a refresh token for the user.
func (m *TokenManager) NewRefreshToken(userID string) (string, error) {
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.refreshKey)
	if err != nil {
		return "", fmt.Errorf("sign refresh token: %w", err)
	}
	return token, nil
}

// ParseAccessToken validates an access token and returns the user id.
func (m *TokenManager) ParseAccessToken(tokenString string) (string, error) {
	return parse(tokenString, m.accessKey)
}

// ParseRefreshToken validates a refresh token and returns the user id.
func (m *TokenManager) ParseRefreshToken(tokenString string) (string, error) {
	return parse(tokenString, m.refreshKey)
}

func parse(tokenString string, key []byte) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
