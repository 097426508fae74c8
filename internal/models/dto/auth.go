package dto

import "github.com/hongminglow/loanbook-be/internal/auth"

// CredentialsRequest is the shared body of /auth/register and /auth/login.
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the success body of register and login.
type AuthResponse struct {
	Success bool          `json:"success"`
	User    auth.Identity `json:"user"`
}

// MeResponse reports the session state of the current request.
type MeResponse struct {
	Authenticated bool           `json:"authenticated"`
	User          *auth.Identity `json:"user,omitempty"`
}
