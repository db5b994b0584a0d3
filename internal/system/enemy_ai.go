package system

import (
	"time"

	coresys "github.com/l1jgo/databeast/internal/core/system"
	"github.com/l1jgo/databeast/internal/world"
)

// EnemyAISystem runs every brain. Untelegraphed attacks resolve at once;
// telegraphed ones are queued for the combat system. Phase 3 (AI).
type EnemyAISystem struct {
	world *world.State
	deps  *Deps
}

func NewEnemyAISystem(ws *world.State, deps *Deps) *EnemyAISystem {
	return &EnemyAISystem{world: ws, deps: deps}
}

func (s *EnemyAISystem) Phase() coresys.Phase { return coresys.PhaseAI }

func (s *EnemyAISystem) Update(dt time.Duration) {
	ws := s.world
	pb := ws.Player.Body
	if pb.Dead() {
		return
	}
	ws.EachEnemy(func(e *world.Enemy) {
		if e.Body.Dead() {
			return
		}
		in, ok := e.Brain.Tick(dt, e.Body, pb.Pos)
		if !ok {
			return
		}
		if in.Delay > 0 {
			t := world.Telegraph{Source: e.Body.ID, Attack: in.Attack, Remaining: in.Delay}
			ws.Telegraphs = append(ws.Telegraphs, t)
			emitTelegraph(s.deps.Bus, t)
			return
		}
		s.deps.Resolver.Resolve(in.Attack, e.Body, pb)
	})
}
