package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/loanbook-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// UserStore persists admin credentials.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByEmail(ctx context.Context, email string) (models.User, error)
}

// LoanStore persists loan records. List order is ascending by sequence
// number. Updates merge per LoanPatch semantics and deletes report whether
// a record was actually removed.
type LoanStore interface {
	ListLoans(ctx context.Context) ([]models.Loan, error)
	CreateLoan(ctx context.Context, loan models.Loan) (models.Loan, error)
	UpdateLoan(ctx context.Context, id models.LoanID, patch models.LoanPatch) (models.Loan, error)
	DeleteLoan(ctx context.Context, id models.LoanID) (bool, error)
}
