// Package memory provides mutex-guarded in-memory stores with the same
// semantics as the Postgres implementation. Tests use it in place of a
// database; it also serves as an executable reference for the store
// contracts.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hongminglow/loanbook-be/internal/models"
	"github.com/hongminglow/loanbook-be/internal/storage"
)

var (
	_ storage.UserStore = (*Store)(nil)
	_ storage.LoanStore = (*Store)(nil)
)

// Store keeps users and loans in maps guarded by a single mutex.
type Store struct {
	mu    sync.RWMutex
	users map[string]models.User
	loans map[models.LoanID]models.Loan
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		users: make(map[string]models.User),
		loans: make(map[models.LoanID]models.Loan),
	}
}

// CreateUser stores a credential record, enforcing email uniqueness.
func (s *Store) CreateUser(_ context.Context, user models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Email]; ok {
		return models.User{}, storage.ErrAlreadyExists
	}
	user.CreatedAt = time.Now()
	s.users[user.Email] = user
	return user, nil
}

// FindUserByEmail fetches a credential record.
func (s *Store) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[email]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return user, nil
}

// ListLoans returns every loan ordered ascending by sequence number, with
// the id as a stable tie-break.
func (s *Store) ListLoans(_ context.Context) ([]models.Loan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loans := make([]models.Loan, 0, len(s.loans))
	for _, loan := range s.loans {
		loans = append(loans, loan)
	}
	sort.Slice(loans, func(i, j int) bool {
		if loans[i].Sno != loans[j].Sno {
			return loans[i].Sno < loans[j].Sno
		}
		return loans[i].ID.String() < loans[j].ID.String()
	})
	return loans, nil
}

// CreateLoan assigns a fresh identifier and stores the record verbatim.
func (s *Store) CreateLoan(_ context.Context, loan models.Loan) (models.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loan.ID = models.NewLoanID()
	if loan.Paid == nil {
		loan.Paid = []models.Payment{}
	}
	s.loans[loan.ID] = loan
	return loan, nil
}

// UpdateLoan merges the patch into the stored record.
func (s *Store) UpdateLoan(_ context.Context, id models.LoanID, patch models.LoanPatch) (models.Loan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	loan, ok := s.loans[id]
	if !ok {
		return models.Loan{}, storage.ErrNotFound
	}
	loan = patch.Apply(loan)
	if loan.Paid == nil {
		loan.Paid = []models.Payment{}
	}
	s.loans[id] = loan
	return loan, nil
}

// DeleteLoan removes a record, reporting whether one existed.
func (s *Store) DeleteLoan(_ context.Context, id models.LoanID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.loans[id]; !ok {
		return false, nil
	}
	delete(s.loans, id)
	return true, nil
}
