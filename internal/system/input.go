package system

import (
	"time"

	"github.com/l1jgo/databeast/internal/core/event"
	coresys "github.com/l1jgo/databeast/internal/core/system"
	"github.com/l1jgo/databeast/internal/player"
	"github.com/l1jgo/databeast/internal/world"
)

// PlayerInputSystem applies queued intents to the player and advances the
// player's own timers. Phase 0 (Input).
type PlayerInputSystem struct {
	world *world.State
	deps  *Deps
	queue []player.Intent
}

func NewPlayerInputSystem(ws *world.State, deps *Deps) *PlayerInputSystem {
	return &PlayerInputSystem{world: ws, deps: deps}
}

func (s *PlayerInputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

// Push queues an intent for the next tick. Callers hold the encounter lock.
func (s *PlayerInputSystem) Push(in player.Intent) {
	s.queue = append(s.queue, in)
}

// Pending returns the number of queued intents.
func (s *PlayerInputSystem) Pending() int { return len(s.queue) }

func (s *PlayerInputSystem) Update(dt time.Duration) {
	p := s.world.Player
	for _, in := range s.queue {
		p.Move(in.Move)
		for _, slot := range in.Abilities {
			if err := p.Activate(slot); err != nil {
				event.Emit(s.deps.Bus, event.AbilityRejected{Slot: string(slot), Reason: err.Error()})
				continue
			}
			sk, _ := p.Skill(slot)
			event.Emit(s.deps.Bus, event.AbilityUsed{Slot: string(slot), Name: sk.Name})
		}
	}
	clear(s.queue)
	s.queue = s.queue[:0]
	p.Tick(dt)
}
