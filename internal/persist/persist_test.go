package persist

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/l1jgo/databeast/internal/config"
	"github.com/l1jgo/databeast/internal/creature"
	"github.com/l1jgo/databeast/internal/records"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("DATABEAST_TEST_DSN")
	if dsn == "" {
		t.Skip("DATABEAST_TEST_DSN not set")
	}
	ctx := context.Background()
	cfg := config.Default().Database
	cfg.DSN = dsn
	db, err := NewDB(ctx, cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(ctx))
	_, err = db.Pool.Exec(ctx, `TRUNCATE leaderboard, creature_records`)
	require.NoError(t, err)
	return db
}

func TestLeaderboardRepo(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	repo := NewLeaderboardRepo(db)

	var _ records.Leaderboard = repo

	rank, err := repo.Add(ctx, records.Entry{PlayerName: "a", CharacterID: "go-gopher", Score: 100, Stage: 2, PlayTime: 90 * time.Second})
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	rank, err = repo.Add(ctx, records.Entry{PlayerName: "b", CharacterID: "rust-crab", Score: 300, Stage: 3, BossesDefeated: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	top, err := repo.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].PlayerName)
	assert.Equal(t, 2, top[0].BossesDefeated)
	assert.Equal(t, 90*time.Second, top[1].PlayTime)
}

type countingSource struct{ calls int }

func (s *countingSource) Fetch(_ context.Context, id int) (creature.Record, error) {
	s.calls++
	return creature.Record{ID: id, Name: "eevee", Types: []string{"normal"}}, nil
}

func TestCreatureRepoStoresUpstream(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	up := &countingSource{}
	repo := NewCreatureRepo(db, up, time.Hour, zap.NewNop())

	rec, err := repo.Fetch(ctx, 133)
	require.NoError(t, err)
	assert.Equal(t, "eevee", rec.Name)

	rec, err = repo.Fetch(ctx, 133)
	require.NoError(t, err)
	assert.Equal(t, "eevee", rec.Name)
	assert.Equal(t, 1, up.calls, "second fetch served from the table")
}
