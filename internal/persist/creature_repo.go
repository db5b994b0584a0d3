package persist

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/l1jgo/databeast/internal/creature"
	"go.uber.org/zap"
)

// CreatureRepo is a creature.Source that keeps fetched records in Postgres
// and only asks upstream when the stored copy is missing or stale.
type CreatureRepo struct {
	db       *DB
	upstream creature.Source
	ttl      time.Duration
	log      *zap.Logger
}

func NewCreatureRepo(db *DB, upstream creature.Source, ttl time.Duration, log *zap.Logger) *CreatureRepo {
	return &CreatureRepo{db: db, upstream: upstream, ttl: ttl, log: log}
}

func (r *CreatureRepo) Fetch(ctx context.Context, id int) (creature.Record, error) {
	if rec, ok := r.load(ctx, id); ok {
		return rec, nil
	}
	rec, err := r.upstream.Fetch(ctx, id)
	if err != nil {
		return creature.Record{}, err
	}
	if err := r.save(ctx, rec); err != nil {
		r.log.Warn("store creature record", zap.Int("id", id), zap.Error(err))
	}
	return rec, nil
}

func (r *CreatureRepo) load(ctx context.Context, id int) (creature.Record, bool) {
	var payload []byte
	err := r.db.Pool.QueryRow(ctx,
		`SELECT payload FROM creature_records WHERE id = $1 AND fetched_at > $2`,
		id, time.Now().Add(-r.ttl),
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return creature.Record{}, false
	}
	if err != nil {
		r.log.Debug("load creature record", zap.Int("id", id), zap.Error(err))
		return creature.Record{}, false
	}
	var rec creature.Record
	if err := json.Unmarshal(payload, &rec); err != nil {
		return creature.Record{}, false
	}
	return rec, true
}

func (r *CreatureRepo) save(ctx context.Context, rec creature.Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	_, err = r.db.Pool.Exec(ctx,
		`INSERT INTO creature_records (id, payload, fetched_at) VALUES ($1, $2, now())
		 ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, fetched_at = EXCLUDED.fetched_at`,
		rec.ID, payload,
	)
	return err
}
