package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/hongminglow/loanbook-be/internal/models"
	"github.com/hongminglow/loanbook-be/internal/storage"
	"github.com/hongminglow/loanbook-be/internal/storage/postgres/migrations"
)

// Ensure Store satisfies the storage interfaces at compile time.
var (
	_ storage.UserStore = (*Store)(nil)
	_ storage.LoanStore = (*Store)(nil)
)

// Store provides Postgres-backed persistence for users and loans.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects a pool and applies the embedded migrations.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if err := migrate(ctx, databaseURL); err != nil {
		pool.Close()
		return nil, err
	}

	return &Store{pool: pool}, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// migrate runs goose over a short-lived database/sql connection; the pgx
// stdlib driver shares the DSN with the pool.
func migrate(ctx context.Context, databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Files)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set migration dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// CreateUser inserts a credential row, mapping the unique-email violation
// to storage.ErrAlreadyExists.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING email, password_hash, created_at;
	`
	row := s.pool.QueryRow(ctx, query, user.Email, user.PasswordHash)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return models.User{}, storage.ErrAlreadyExists
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return created, nil
}

// FindUserByEmail fetches a credential row by email.
func (s *Store) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	const query = `SELECT email, password_hash, created_at FROM users WHERE email = $1;`
	user, err := scanUser(s.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, fmt.Errorf("select user: %w", err)
	}
	return user, nil
}

const loanColumns = `id, sno, name, given_date, total_amount, interest, paid`

// ListLoans returns every loan ordered ascending by sequence number.
func (s *Store) ListLoans(ctx context.Context) ([]models.Loan, error) {
	const query = `SELECT ` + loanColumns + ` FROM loans ORDER BY sno ASC, id ASC;`
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select loans: %w", err)
	}
	defer rows.Close()

	loans := []models.Loan{}
	for rows.Next() {
		loan, err := scanLoan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan loan: %w", err)
		}
		loans = append(loans, loan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate loans: %w", err)
	}
	return loans, nil
}

// CreateLoan assigns a fresh identifier and inserts the record verbatim.
func (s *Store) CreateLoan(ctx context.Context, loan models.Loan) (models.Loan, error) {
	loan.ID = models.NewLoanID()
	if loan.Paid == nil {
		loan.Paid = []models.Payment{}
	}
	paid, err := json.Marshal(loan.Paid)
	if err != nil {
		return models.Loan{}, fmt.Errorf("encode payments: %w", err)
	}

	const query = `
		INSERT INTO loans (id, sno, name, given_date, total_amount, interest, paid)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err = s.pool.Exec(ctx, query,
		loan.ID.String(), int64(loan.Sno), loan.Name, loan.GivenDate,
		float64(loan.TotalAmount), float64(loan.Interest), string(paid))
	if err != nil {
		return models.Loan{}, fmt.Errorf("insert loan: %w", err)
	}
	return loan, nil
}

// UpdateLoan merges the patch into the stored record. Omitted fields keep
// their stored values; a supplied payment list replaces the stored one.
func (s *Store) UpdateLoan(ctx context.Context, id models.LoanID, patch models.LoanPatch) (models.Loan, error) {
	var paid *string
	if patch.Paid != nil {
		encoded, err := json.Marshal(*patch.Paid)
		if err != nil {
			return models.Loan{}, fmt.Errorf("encode payments: %w", err)
		}
		s := string(encoded)
		paid = &s
	}

	var sno *int64
	if patch.Sno != nil {
		v := int64(*patch.Sno)
		sno = &v
	}
	var totalAmount, interest *float64
	if patch.TotalAmount != nil {
		v := float64(*patch.TotalAmount)
		totalAmount = &v
	}
	if patch.Interest != nil {
		v := float64(*patch.Interest)
		interest = &v
	}

	const query = `
		UPDATE loans SET
			sno = COALESCE($2, sno),
			name = COALESCE($3, name),
			given_date = COALESCE($4, given_date),
			total_amount = COALESCE($5, total_amount),
			interest = COALESCE($6, interest),
			paid = COALESCE($7::jsonb, paid)
		WHERE id = $1
		RETURNING ` + loanColumns + `;
	`
	row := s.pool.QueryRow(ctx, query, id.String(), sno, patch.Name, patch.GivenDate, totalAmount, interest, paid)
	updated, err := scanLoan(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Loan{}, storage.ErrNotFound
		}
		return models.Loan{}, fmt.Errorf("update loan: %w", err)
	}
	return updated, nil
}

// DeleteLoan removes a record, reporting whether one existed.
func (s *Store) DeleteLoan(ctx context.Context, id models.LoanID) (bool, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM loans WHERE id = $1;`, id.String())
	if err != nil {
		return false, fmt.Errorf("delete loan: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	if err := row.Scan(&user.Email, &user.PasswordHash, &user.CreatedAt); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func scanLoan(row pgx.Row) (models.Loan, error) {
	var (
		loan models.Loan
		id   string
		paid []byte
	)
	err := row.Scan(&id, &loan.Sno, &loan.Name, &loan.GivenDate, &loan.TotalAmount, &loan.Interest, &paid)
	if err != nil {
		return models.Loan{}, err
	}
	parsed, err := models.ParseLoanID(id)
	if err != nil {
		return models.Loan{}, fmt.Errorf("stored id %q: %w", id, err)
	}
	loan.ID = parsed
	if err := json.Unmarshal(paid, &loan.Paid); err != nil {
		return models.Loan{}, fmt.Errorf("decode payments: %w", err)
	}
	if loan.Paid == nil {
		loan.Paid = []models.Payment{}
	}
	return loan, nil
}
