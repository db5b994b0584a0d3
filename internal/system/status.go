package system

import (
	"time"

	"github.com/l1jgo/databeast/internal/combat"
	coresys "github.com/l1jgo/databeast/internal/core/system"
	"github.com/l1jgo/databeast/internal/world"
)

// StatusSystem decays every ledger and routes poison through the resolver.
// Phase 1 (Status).
type StatusSystem struct {
	world *world.State
	deps  *Deps
}

func NewStatusSystem(ws *world.State, deps *Deps) *StatusSystem {
	return &StatusSystem{world: ws, deps: deps}
}

func (s *StatusSystem) Phase() coresys.Phase { return coresys.PhaseStatus }

func (s *StatusSystem) Update(dt time.Duration) {
	s.tick(s.world.Player.Body, dt)
	s.world.EachEnemy(func(e *world.Enemy) {
		s.tick(e.Body, dt)
	})
}

func (s *StatusSystem) tick(c *combat.Combatant, dt time.Duration) {
	if c.Dead() {
		return
	}
	if dot := c.Effects.Tick(dt); dot > 0 {
		s.deps.Resolver.DamageOverTime(c, dot)
	}
}
