package records

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	leaderboardKey = "leaderboard"

	// LeaderboardSize is the number of entries kept.
	LeaderboardSize = 100
)

// Entry is one finished run.
type Entry struct {
	ID             string        `json:"id"`
	PlayerName     string        `json:"playerName"`
	CharacterID    string        `json:"characterId"`
	Score          int           `json:"score"`
	Stage          int           `json:"stage"`
	BossesDefeated int           `json:"bossesDefeated"`
	PlayTime       time.Duration `json:"playTime"`
	Date           time.Time     `json:"date"`
}

// Leaderboard ranks finished runs by score.
type Leaderboard interface {
	// Add records e and returns its 1-based rank, or 0 if it did not make
	// the board.
	Add(ctx context.Context, e Entry) (int, error)
	Top(ctx context.Context, n int) ([]Entry, error)
}

// KVLeaderboard keeps the board as one JSON record in a Store.
type KVLeaderboard struct {
	mu    sync.Mutex
	store Store
	now   func() time.Time
}

func NewKVLeaderboard(s Store) *KVLeaderboard {
	return &KVLeaderboard{store: s, now: time.Now}
}

func (l *KVLeaderboard) load() ([]Entry, error) {
	var board []Entry
	if _, err := loadJSON(l.store, leaderboardKey, &board); err != nil {
		return nil, err
	}
	return board, nil
}

func (l *KVLeaderboard) Add(_ context.Context, e Entry) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	board, err := l.load()
	if err != nil {
		return 0, err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Date.IsZero() {
		e.Date = l.now()
	}
	board = append(board, e)
	// stable: an earlier run keeps its place over a later equal score
	sort.SliceStable(board, func(i, j int) bool { return board[i].Score > board[j].Score })
	if len(board) > LeaderboardSize {
		board = board[:LeaderboardSize]
	}
	if err := saveJSON(l.store, leaderboardKey, board); err != nil {
		return 0, err
	}
	for i := range board {
		if board[i].ID == e.ID {
			return i + 1, nil
		}
	}
	return 0, nil
}

func (l *KVLeaderboard) Top(_ context.Context, n int) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	board, err := l.load()
	if err != nil {
		return nil, err
	}
	if n >= 0 && n < len(board) {
		board = board[:n]
	}
	return board, nil
}
