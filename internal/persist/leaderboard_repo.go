package persist

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/l1jgo/databeast/internal/records"
)

// LeaderboardRepo is the Postgres-backed records.Leaderboard.
type LeaderboardRepo struct {
	db *DB
}

func NewLeaderboardRepo(db *DB) *LeaderboardRepo {
	return &LeaderboardRepo{db: db}
}

// Add inserts e, prunes the board back to records.LeaderboardSize and
// returns e's rank (0 if it was pruned).
func (r *LeaderboardRepo) Add(ctx context.Context, e records.Entry) (int, error) {
	id, err := uuid.Parse(e.ID)
	if err != nil {
		id = uuid.New()
	}
	if e.Date.IsZero() {
		e.Date = time.Now()
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx,
		`INSERT INTO leaderboard (id, player_name, character_id, score, stage, bosses_defeated, play_time_ms, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		id, e.PlayerName, e.CharacterID, e.Score, e.Stage, e.BossesDefeated, e.PlayTime.Milliseconds(), e.Date,
	)
	if err != nil {
		return 0, err
	}

	_, err = tx.Exec(ctx,
		`DELETE FROM leaderboard WHERE id NOT IN (
		     SELECT id FROM leaderboard ORDER BY score DESC, created_at ASC LIMIT $1)`,
		records.LeaderboardSize,
	)
	if err != nil {
		return 0, err
	}

	var rank int
	err = tx.QueryRow(ctx,
		`SELECT rank FROM (
		     SELECT id, ROW_NUMBER() OVER (ORDER BY score DESC, created_at ASC) AS rank
		     FROM leaderboard) ranked
		 WHERE id = $1`, id,
	).Scan(&rank)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return rank, nil
}

func (r *LeaderboardRepo) Top(ctx context.Context, n int) ([]records.Entry, error) {
	if n < 0 {
		n = records.LeaderboardSize
	}
	rows, err := r.db.Pool.Query(ctx,
		`SELECT id, player_name, character_id, score, stage, bosses_defeated, play_time_ms, created_at
		 FROM leaderboard ORDER BY score DESC, created_at ASC LIMIT $1`, n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []records.Entry
	for rows.Next() {
		var (
			e      records.Entry
			id     uuid.UUID
			playMs int64
			stage  int16
			bosses int16
		)
		if err := rows.Scan(&id, &e.PlayerName, &e.CharacterID, &e.Score, &stage, &bosses, &playMs, &e.Date); err != nil {
			return nil, err
		}
		e.ID = id.String()
		e.Stage = int(stage)
		e.BossesDefeated = int(bosses)
		e.PlayTime = time.Duration(playMs) * time.Millisecond
		result = append(result, e)
	}
	return result, rows.Err()
}
