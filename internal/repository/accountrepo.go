// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/and161185/realm-accounts/internal/model"
)

// AccountRepository provides access to the realm account table.
type AccountRepository interface {
	// Create inserts a new account and returns its ID.
	Create(ctx context.Context, a *model.Account) (int64, error)
	// GetByID loads an account by ID.
	GetByID(ctx context.Context, id int64) (*model.Account, error)
	// GetByUsername loads an account by its upper-cased username.
	GetByUsername(ctx context.Context, username string) (*model.Account, error)
	// EmailTaken reports whether email belongs to an account other than exceptID.
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
	// UpdateCredentials overwrites the stored salt and verifier.
	UpdateCredentials(ctx context.Context, id int64, salt, verifier []byte) error
	// UpdateEmail sets a new email address.
	UpdateEmail(ctx context.Context, id int64, email string) error
	// TouchLastLogin records a successful login.
	TouchLastLogin(ctx context.Context, id int64) error
}
