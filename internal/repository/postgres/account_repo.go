package postgres

import (
	"context"
	"errors"

	"github.com/and161185/realm-accounts/internal/errs"
	"github.com/and161185/realm-accounts/internal/model"
	"github.com/jackc/pgx/v5"
)

// AccountRepo implements AccountRepository using PostgreSQL.
type AccountRepo struct{ db *DB }

// NewAccountRepo constructs an account repository.
func NewAccountRepo(db *DB) *AccountRepo { return &AccountRepo{db: db} }

// Create inserts a new account row and returns the generated ID.
func (r *AccountRepo) Create(ctx context.Context, a *model.Account) (int64, error) {
	const q = `
INSERT INTO account (username, salt, verifier, email, expansion)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	var id int64
	err := r.db.Pool.QueryRow(ctx, q, a.Username, a.Salt, a.Verifier, a.Email, a.Expansion).Scan(&id)
	if isUniqueViolation(err) {
		return 0, errs.ErrAlreadyExists
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

// GetByID selects an account by ID.
func (r *AccountRepo) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	const q = `
SELECT id, username, email, salt, verifier, expansion, joindate, last_login
FROM account WHERE id=$1`
	return scanAccount(r.db.Pool.QueryRow(ctx, q, id))
}

// GetByUsername selects an account by its upper-cased username.
func (r *AccountRepo) GetByUsername(ctx context.Context, username string) (*model.Account, error) {
	const q = `
SELECT id, username, email, salt, verifier, expansion, joindate, last_login
FROM account WHERE username=$1`
	return scanAccount(r.db.Pool.QueryRow(ctx, q, username))
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	var a model.Account
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.Salt, &a.Verifier, &a.Expansion, &a.JoinDate, &a.LastLogin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// EmailTaken reports whether email is used by an account other than exceptID.
func (r *AccountRepo) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	const q = `SELECT EXISTS (SELECT 1 FROM account WHERE lower(email)=lower($1) AND id<>$2)`
	var taken bool
	if err := r.db.Pool.QueryRow(ctx, q, email, exceptID).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

// UpdateCredentials replaces salt and verifier of an account.
func (r *AccountRepo) UpdateCredentials(ctx context.Context, id int64, salt, verifier []byte) error {
	const q = `UPDATE account SET salt=$2, verifier=$3 WHERE id=$1`
	return r.execOne(ctx, q, id, salt, verifier)
}

// UpdateEmail replaces the email of an account.
func (r *AccountRepo) UpdateEmail(ctx context.Context, id int64, email string) error {
	const q = `UPDATE account SET email=$2 WHERE id=$1`
	err := r.execOne(ctx, q, id, email)
	if isUniqueViolation(err) {
		return errs.ErrEmailTaken
	}
	return err
}

// TouchLastLogin sets last_login to the database clock.
func (r *AccountRepo) TouchLastLogin(ctx context.Context, id int64) error {
	const q = `UPDATE account SET last_login=now() WHERE id=$1`
	return r.execOne(ctx, q, id)
}

func (r *AccountRepo) execOne(ctx context.Context, q string, args ...any) error {
	tag, err := r.db.Pool.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}
