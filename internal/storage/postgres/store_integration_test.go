package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hongminglow/loanbook-be/internal/models"
	"github.com/hongminglow/loanbook-be/internal/storage"
)

// TestStoreIntegration exercises the Postgres store against a live database.
func TestStoreIntegration(t *testing.T) {
	if os.Getenv("RUN_POSTGRES_INTEGRATION") != "true" {
		t.Skip("set RUN_POSTGRES_INTEGRATION=true to run this integration test")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	store, err := NewStore(ctx, dbURL)
	require.NoError(t, err)
	defer store.Close()

	email := "it-" + models.NewLoanID().String() + "@example.com"

	t.Run("users", func(t *testing.T) {
		created, err := store.CreateUser(ctx, models.User{Email: email, PasswordHash: "hash"})
		require.NoError(t, err)
		require.Equal(t, email, created.Email)
		require.False(t, created.CreatedAt.IsZero())

		_, err = store.CreateUser(ctx, models.User{Email: email, PasswordHash: "other"})
		require.ErrorIs(t, err, storage.ErrAlreadyExists)

		found, err := store.FindUserByEmail(ctx, email)
		require.NoError(t, err)
		require.Equal(t, "hash", found.PasswordHash)

		_, err = store.FindUserByEmail(ctx, "missing-"+email)
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("loans", func(t *testing.T) {
		created, err := store.CreateLoan(ctx, models.Loan{
			Sno:         1,
			Name:        "Bob",
			GivenDate:   "2024-01-01",
			TotalAmount: 1000,
			Interest:    50,
		})
		require.NoError(t, err)
		require.NotEqual(t, models.LoanID{}, created.ID)
		require.NotNil(t, created.Paid)
		t.Cleanup(func() { _, _ = store.DeleteLoan(ctx, created.ID) })

		loans, err := store.ListLoans(ctx)
		require.NoError(t, err)
		var seen bool
		for i, l := range loans {
			if l.ID == created.ID {
				seen = true
			}
			if i > 0 {
				require.LessOrEqual(t, loans[i-1].Sno, l.Sno)
			}
		}
		require.True(t, seen)

		paid := []models.Payment{{Amount: 300, Date: "2024-02-01"}, {Amount: 200, Date: "2024-03-01"}}
		updated, err := store.UpdateLoan(ctx, created.ID, models.LoanPatch{Paid: &paid})
		require.NoError(t, err)
		require.Equal(t, paid, updated.Paid)
		require.Equal(t, "Bob", updated.Name)
		require.Equal(t, models.Amount(1000), updated.TotalAmount)

		_, err = store.UpdateLoan(ctx, models.NewLoanID(), models.LoanPatch{})
		require.ErrorIs(t, err, storage.ErrNotFound)

		removed, err := store.DeleteLoan(ctx, created.ID)
		require.NoError(t, err)
		require.True(t, removed)

		removed, err = store.DeleteLoan(ctx, created.ID)
		require.NoError(t, err)
		require.False(t, removed)
	})
}
