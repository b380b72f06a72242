package postgres

import (
	"context"

	"github.com/and161185/realm-accounts/internal/model"
)

// CharacterRepo implements CharacterRepository using PostgreSQL.
type CharacterRepo struct{ db *DB }

// NewCharacterRepo constructs a character repository.
func NewCharacterRepo(db *DB) *CharacterRepo { return &CharacterRepo{db: db} }

// ListByAccount returns characters not marked deleted, by level then playtime.
func (r *CharacterRepo) ListByAccount(ctx context.Context, accountID int64) ([]model.Character, error) {
	const q = `
SELECT guid, account, name, race, class, gender, level, zone, map, totaltime, online
FROM characters
WHERE account=$1 AND deletedate IS NULL
ORDER BY level DESC, totaltime DESC`
	rows, err := r.db.Pool.Query(ctx, q, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Character
	for rows.Next() {
		var c model.Character
		if err = rows.Scan(&c.GUID, &c.AccountID, &c.Name, &c.Race, &c.Class, &c.Gender,
			&c.Level, &c.Zone, &c.Map, &c.TotalTime, &c.Online); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// StatsByAccount aggregates character count, max level and playtime.
func (r *CharacterRepo) StatsByAccount(ctx context.Context, accountID int64) (model.AccountStats, error) {
	const q = `
SELECT COUNT(*), COALESCE(MAX(level),0), COALESCE(SUM(totaltime),0)
FROM characters
WHERE account=$1 AND deletedate IS NULL`
	var s model.AccountStats
	if err := r.db.Pool.QueryRow(ctx, q, accountID).Scan(&s.CharacterCount, &s.MaxLevel, &s.TotalPlaytime); err != nil {
		return model.AccountStats{}, err
	}
	return s, nil
}
