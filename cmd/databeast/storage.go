package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/l1jgo/databeast/internal/config"
	"github.com/l1jgo/databeast/internal/creature"
	"github.com/l1jgo/databeast/internal/persist"
	"github.com/l1jgo/databeast/internal/records"
	"go.uber.org/zap"
)

var errUnknownBackend = errors.New("unknown storage backend")

// storage bundles what the configured backend provides.
type storage struct {
	store  records.Store
	board  records.Leaderboard
	source creature.Source
	db     *persist.DB
}

func (s *storage) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

func openStorage(ctx context.Context, cfg *config.Config, log *zap.Logger) (*storage, error) {
	var upstream creature.Source = creature.Offline{}
	if !cfg.Creature.Offline {
		upstream = creature.NewPokeAPI(cfg.Creature.BaseURL, cfg.Creature.Timeout)
	}

	switch cfg.Storage.Backend {
	case "memory":
		mem := records.NewMemStore()
		return &storage{store: mem, board: records.NewKVLeaderboard(mem), source: upstream}, nil

	case "gdata":
		disk, err := records.OpenDisk(cfg.Storage.AppName)
		if err != nil {
			return nil, fmt.Errorf("open save data: %w", err)
		}
		return &storage{store: disk, board: records.NewKVLeaderboard(disk), source: upstream}, nil

	case "postgres":
		dbCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		db, err := persist.NewDB(dbCtx, cfg.Database, log)
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		printOK("PostgreSQL connected")
		if err := db.Migrate(dbCtx); err != nil {
			db.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		printOK("migrations applied")

		// settings stay local; runs and creature records go to the database
		disk, err := records.OpenDisk(cfg.Storage.AppName)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("open save data: %w", err)
		}
		return &storage{
			store:  disk,
			board:  persist.NewLeaderboardRepo(db),
			source: persist.NewCreatureRepo(db, upstream, cfg.Creature.CacheTTL, log),
			db:     db,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", errUnknownBackend, cfg.Storage.Backend)
}
