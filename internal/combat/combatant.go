package combat

import "github.com/l1jgo/databeast/internal/core/ecs"

// Combatant is the pure simulation record shared by the player and enemies.
// Presentation never reads it directly; it observes bus events instead.
type Combatant struct {
	ID      ecs.EntityID
	Name    string
	Stats   Stats
	Effects Ledger
	Pos     Vec2
	Vel     Vec2
	Player  bool

	dead bool
}

// NewCombatant builds a combatant at full health.
func NewCombatant(id ecs.EntityID, name string, stats Stats, pos Vec2) *Combatant {
	stats.HP = stats.MaxHP
	return &Combatant{ID: id, Name: name, Stats: stats, Pos: pos}
}

// Dead is terminal; once set no hit, heal or status lands.
func (c *Combatant) Dead() bool { return c.dead }

func (c *Combatant) HPRatio() float64 { return c.Stats.HPRatio() }

func (c *Combatant) Dist(o *Combatant) float64 { return c.Pos.Dist(o.Pos) }
