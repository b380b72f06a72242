package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/and161185/realm-accounts/internal/model"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func TestCharacterRepo_ListByAccount(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCharacterRepo(db)
	ctx := context.Background()

	rows := pgxmock.NewRows([]string{"guid", "account", "name", "race", "class", "gender", "level", "zone", "map", "totaltime", "online"}).
		AddRow(int64(11), int64(1), "Varian", 1, 1, 0, 80, 1519, 0, int64(360000), true).
		AddRow(int64(12), int64(1), "Anduin", 1, 5, 0, 12, 12, 0, int64(3600), false)

	mock.ExpectQuery(`SELECT guid, account, name, race, class, gender, level, zone, map, totaltime, online FROM characters WHERE account=\$1 AND deletedate IS NULL ORDER BY level DESC, totaltime DESC`).
		WithArgs(int64(1)).
		WillReturnRows(rows)

	out, err := r.ListByAccount(ctx, 1)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "Varian", out[0].Name)
	require.True(t, out[0].Online)
	require.Equal(t, 80, out[0].Level)
	require.Equal(t, int64(3600), out[1].TotalTime)

	mock.ExpectQuery(`FROM characters WHERE account=\$1`).
		WithArgs(int64(2)).
		WillReturnError(errors.New("boom"))
	_, err = r.ListByAccount(ctx, 2)
	require.Error(t, err)
}

func TestCharacterRepo_StatsByAccount(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewCharacterRepo(db)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT COUNT\(\*\), COALESCE\(MAX\(level\),0\), COALESCE\(SUM\(totaltime\),0\) FROM characters WHERE account=\$1 AND deletedate IS NULL`).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows([]string{"count", "max", "sum"}).AddRow(3, 80, int64(500000)))

	s, err := r.StatsByAccount(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, model.AccountStats{CharacterCount: 3, MaxLevel: 80, TotalPlaytime: 500000}, s)

	mock.ExpectQuery(`FROM characters WHERE account=\$1`).
		WithArgs(int64(2)).
		WillReturnError(errors.New("boom"))
	_, err = r.StatsByAccount(ctx, 2)
	require.Error(t, err)
}
