package system

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/l1jgo/databeast/internal/beast"
	"go.uber.org/zap"
)

// SpawnRequest is one enemy to resolve off the simulation goroutine.
type SpawnRequest struct {
	CreatureID int
	Stage      int
	Boss       bool
	Seed       int64
}

// SpawnResult is a resolved request waiting to be drained at tick start.
type SpawnResult struct {
	SpawnRequest
	Profile *beast.Profile
	Err     error

	epoch uint64
}

// Spawner resolves profiles on their own goroutines. Results land in an
// inbox the simulation drains each tick; results from an older epoch are
// dropped there, so a fetch that outlives its encounter is a no-op.
type Spawner struct {
	gen *beast.Generator
	log *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	epoch  atomic.Uint64
	wg     sync.WaitGroup

	mu    sync.Mutex
	inbox []SpawnResult
}

func NewSpawner(ctx context.Context, gen *beast.Generator, log *zap.Logger) *Spawner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spawner{gen: gen, log: log, ctx: ctx, cancel: cancel}
}

func (s *Spawner) Generator() *beast.Generator { return s.gen }

// Request starts resolving req. It never blocks.
func (s *Spawner) Request(req SpawnRequest) {
	epoch := s.epoch.Load()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		p, err := s.gen.Generate(s.ctx, beast.Request{
			CreatureID: req.CreatureID,
			Stage:      req.Stage,
			Boss:       req.Boss,
			Seed:       req.Seed,
		})
		if s.epoch.Load() != epoch {
			return
		}
		s.mu.Lock()
		s.inbox = append(s.inbox, SpawnResult{SpawnRequest: req, Profile: p, Err: err, epoch: epoch})
		s.mu.Unlock()
	}()
}

// Drain returns the results of the current epoch in arrival order.
func (s *Spawner) Drain() []SpawnResult {
	s.mu.Lock()
	batch := s.inbox
	s.inbox = nil
	s.mu.Unlock()

	cur := s.epoch.Load()
	out := batch[:0]
	for _, r := range batch {
		if r.epoch == cur {
			out = append(out, r)
		}
	}
	return out
}

// Stop invalidates every request in flight and cancels their fetches.
func (s *Spawner) Stop() {
	s.epoch.Add(1)
	s.cancel()
	s.mu.Lock()
	s.inbox = nil
	s.mu.Unlock()
}

// Wait blocks until every spawn goroutine has returned.
func (s *Spawner) Wait() { s.wg.Wait() }
