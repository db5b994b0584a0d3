package system

import (
	"time"

	"github.com/l1jgo/databeast/internal/combat"
	coresys "github.com/l1jgo/databeast/internal/core/system"
	"github.com/l1jgo/databeast/internal/world"
	"github.com/solarlune/resolv"
)

// MovementSystem integrates velocities, clamps to the world and syncs the
// broadphase. Phase 4 (PostUpdate), registered before DirectorSystem.
type MovementSystem struct {
	world *world.State
}

func NewMovementSystem(ws *world.State) *MovementSystem {
	return &MovementSystem{world: ws}
}

func (s *MovementSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *MovementSystem) Update(dt time.Duration) {
	ws := s.world
	s.move(ws.Player.Body, ws.PlayerObj, dt)
	ws.EachEnemy(func(e *world.Enemy) {
		s.move(e.Body, e.Obj, dt)
	})
}

func (s *MovementSystem) move(c *combat.Combatant, obj *resolv.Object, dt time.Duration) {
	if c.Dead() || obj == nil {
		return
	}
	// a stun landed earlier this tick still stops this tick's step
	if c.Effects.Immobilized() {
		c.Vel = combat.Vec2{}
		return
	}
	if c.Vel.IsZero() {
		return
	}
	c.Pos = s.world.Space.Clamp(c.Pos.Add(c.Vel.Scale(dt.Seconds())))
	s.world.Space.Sync(obj, c)
}
