package repository

import (
	"context"

	"github.com/and161185/realm-accounts/internal/model"
)

// CharacterRepository provides read access to characters of an account.
type CharacterRepository interface {
	// ListByAccount returns live characters, highest level first.
	ListByAccount(ctx context.Context, accountID int64) ([]model.Character, error)
	// StatsByAccount aggregates live characters of an account.
	StatsByAccount(ctx context.Context, accountID int64) (model.AccountStats, error)
}
