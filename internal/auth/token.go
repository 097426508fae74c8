package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSigningSecret means the server was started without a token signing
// secret. Login must fail loudly with this rather than mint anything.
var ErrNoSigningSecret = errors.New("no signing secret configured")

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, expiry. Callers treat it as "no identity".
var ErrInvalidToken = errors.New("invalid session token")

// Identity is the authenticated principal exposed to the rest of the app.
type Identity struct {
	Email string `json:"email"`
}

// TokenManager issues and verifies signed session tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenManager creates a manager with the provided secret and token
// lifetime. An empty secret is tolerated here; Generate and Verify report it.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

// Generate issues a signed HS256 token for the given subject email.
func (t *TokenManager) Generate(email string) (string, error) {
	if len(t.secret) == 0 {
		return "", ErrNoSigningSecret
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify recovers the identity a token was issued for. It fails closed:
// every parse, signature, or expiry problem comes back as ErrInvalidToken.
func (t *TokenManager) Verify(tokenString string) (Identity, error) {
	if len(t.secret) == 0 {
		return Identity{}, ErrNoSigningSecret
	}
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid || claims.Subject == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{Email: claims.Subject}, nil
}
