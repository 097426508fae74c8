package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/loanbook-be/internal/models"
	"github.com/hongminglow/loanbook-be/internal/storage"
)

// ErrInvalidCredentials means the email exists but the password is wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Authenticator verifies credentials against the user store and turns a
// successful login into a signed session token.
type Authenticator struct {
	store  storage.UserStore
	tokens *TokenManager
}

// NewAuthenticator constructs the authenticator.
func NewAuthenticator(store storage.UserStore, tokens *TokenManager) *Authenticator {
	return &Authenticator{store: store, tokens: tokens}
}

// Register hashes the password with a fresh salt and persists the identity.
// A taken email surfaces as storage.ErrAlreadyExists.
func (a *Authenticator) Register(ctx context.Context, email, password string) (Identity, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Identity{}, fmt.Errorf("hash password: %w", err)
	}
	created, err := a.store.CreateUser(ctx, models.User{Email: email, PasswordHash: string(hash)})
	if err != nil {
		return Identity{}, err
	}
	return Identity{Email: created.Email}, nil
}

// Login checks the password and issues a session token. Unknown emails
// surface as storage.ErrNotFound, wrong passwords as ErrInvalidCredentials,
// and a missing signing secret as ErrNoSigningSecret before any token is
// minted.
func (a *Authenticator) Login(ctx context.Context, email, password string) (string, error) {
	user, err := a.store.FindUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return a.tokens.Generate(user.Email)
}

// Verify recovers the identity behind a session token, failing closed.
func (a *Authenticator) Verify(token string) (Identity, error) {
	return a.tokens.Verify(token)
}
