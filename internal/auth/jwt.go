package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RegisterTokenTTL is the expiry attached to tokens issued at registration.
// Login and update tokens are issued without an expiry; the asymmetry is
// inherited from the original wire contract and kept on purpose.
const RegisterTokenTTL = time.Hour

type TokenUser struct {
	ID string `json:"id"`
}

// Claims carries the {user:{id}} payload the clients decode.
type Claims struct {
	User TokenUser `json:"user"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
}

func NewManager(secret string) *Manager {
	return &Manager{
		secret: []byte(secret),
	}
}

// GenerateAuthToken signs a token identifying userID. A ttl of zero means
// the token carries no exp claim at all.
func (m *Manager) GenerateAuthToken(userID string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()

	claims := Claims{
		User: TokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}

	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *Manager) ParseAndValidate(tokenStr string) (claims *Claims, err error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256

		_, ok := t.Method.(*jwt.SigningMethodHMAC)

		if !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	})

	if err != nil {
		return
	}
	claims, ok := token.Claims.(*Claims)

	if !ok || !token.Valid {
		err = errors.New("invalid token")
		return
	}

	if claims.User.ID == "" {
		err = errors.New("missing user id")
		return
	}
	return
}
