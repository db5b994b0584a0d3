package system

import (
	"math/rand"
	"time"

	"github.com/l1jgo/databeast/internal/ai"
	"github.com/l1jgo/databeast/internal/beast"
	"github.com/l1jgo/databeast/internal/boss"
	"github.com/l1jgo/databeast/internal/combat"
	"github.com/l1jgo/databeast/internal/core/event"
	coresys "github.com/l1jgo/databeast/internal/core/system"
	"github.com/l1jgo/databeast/internal/scripting"
	"github.com/l1jgo/databeast/internal/world"
	"go.uber.org/zap"
)

// SpawnSystem drains resolved spawns into the world at tick start.
// Phase 0 (Input), registered before PlayerInputSystem.
type SpawnSystem struct {
	world *world.State
	deps  *Deps
}

func NewSpawnSystem(ws *world.State, deps *Deps) *SpawnSystem {
	return &SpawnSystem{world: ws, deps: deps}
}

func (s *SpawnSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *SpawnSystem) Update(_ time.Duration) {
	d := &s.world.Director
	for _, r := range s.deps.Spawner.Drain() {
		d.Pending = max(0, d.Pending-1)
		if s.world.Over {
			continue
		}
		if r.Err != nil {
			s.deps.Log.Warn("spawn failed",
				zap.Int("creature", r.CreatureID),
				zap.Bool("boss", r.Boss),
				zap.Error(r.Err))
			if r.Boss {
				// let the director trigger it again
				d.BossTriggered = false
			}
			continue
		}
		s.materialize(r)
	}
}

func (s *SpawnSystem) materialize(r SpawnResult) {
	ws, p := s.world, r.Profile
	pos := ws.Space.SpawnPoint(ws.Player.Body.Pos, s.deps.Config.SafeSpawnRadius, ws.Rng)

	id := ws.ECS.CreateEntity()
	body := combat.NewCombatant(id, p.Name, p.Stats, pos)
	brain := ai.NewBrain(s.deps.AI, p.Behavior, p.Boss, p.Attacks, pos, rand.New(rand.NewSource(r.Seed^0x5eed)))
	e := &world.Enemy{Profile: p, Body: body, Brain: brain}
	if p.Boss {
		e.Boss = boss.New(p.Phases, brain)
		e.Boss.OnPhase(s.phaseHook(e))
		ws.Director.BossID = id
	}
	ws.AddEnemy(e)

	event.Emit(s.deps.Bus, event.EnemySpawned{
		EntityID:   id,
		Name:       p.Name,
		CreatureID: p.CreatureID,
		Level:      p.Level,
		Corruption: p.Corruption,
		Boss:       p.Boss,
		Tint:       p.Tint,
		Sprite:     p.Sprite,
		X:          pos.X,
		Y:          pos.Y,
	})
	s.deps.Log.Debug("enemy spawned",
		zap.Stringer("id", id),
		zap.String("name", p.Name),
		zap.Bool("boss", p.Boss))
}

func (s *SpawnSystem) phaseHook(e *world.Enemy) boss.Hook {
	return func(i int, ph beast.Phase) {
		line := s.deps.Scripts.PhaseDialogue(scripting.PhaseContext{
			Name:       e.Profile.Name,
			Phase:      i + 1,
			Threshold:  ph.Threshold,
			Corruption: e.Profile.Corruption,
			Default:    ph.Dialogue,
		})
		event.Emit(s.deps.Bus, event.BossPhaseAdvanced{
			EntityID:    e.Body.ID,
			Phase:       i + 1,
			Threshold:   ph.Threshold,
			Dialogue:    line,
			Visual:      ph.Visual,
			Environment: ph.Environment,
			Behavior:    string(ph.Behavior),
		})
	}
}

// BossObserver feeds every non-lethal hit on a boss to its phase
// controller. A killing blow skips the remaining phases.
func BossObserver(ws *world.State) combat.Observer {
	return func(tgt *combat.Combatant, out combat.Outcome) {
		if tgt.Player || out.Killed {
			return
		}
		if e := ws.Enemy(tgt.ID); e != nil && e.Boss != nil {
			e.Boss.Observe(tgt.Stats.HP, tgt.Stats.MaxHP)
		}
	}
}
