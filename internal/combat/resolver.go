package combat

import (
	"math"
	"math/rand"

	"github.com/l1jgo/databeast/internal/core/ecs"
	"github.com/l1jgo/databeast/internal/core/event"
	"go.uber.org/zap"
)

// Hit is one damage application. Resolve builds it from an Attack; player
// hitboxes, contact damage and damage over time build it directly.
type Hit struct {
	Source *Combatant // nil for damage over time
	Target *Combatant
	Amount float64
	Type   DamageType
	Status *StatusEffect
	Label  string
	NoCrit bool // self-inflicted damage never crits
}

// Outcome reports what a hit did.
type Outcome struct {
	Landed bool
	Amount float64
	Crit   bool
	Killed bool
}

// Observer is called synchronously after every landed hit.
type Observer func(target *Combatant, out Outcome)

// Resolver is the single damage pipeline: it is the only writer of hp.
type Resolver struct {
	bus       *event.Bus
	rng       *rand.Rand
	log       *zap.Logger
	observers []Observer
}

func NewResolver(bus *event.Bus, rng *rand.Rand, log *zap.Logger) *Resolver {
	return &Resolver{bus: bus, rng: rng, log: log}
}

// Observe registers fn to run after every landed hit.
func (r *Resolver) Observe(fn Observer) {
	r.observers = append(r.observers, fn)
}

// InRange reports whether atk can reach tgt from src right now.
func InRange(atk Attack, src, tgt *Combatant) bool {
	return src.Dist(tgt) <= atk.Range.Limit()
}

// Resolve lands atk from src on tgt. Range is checked here, at impact, so
// a target that walked out of a telegraph takes nothing.
func (r *Resolver) Resolve(atk Attack, src, tgt *Combatant) Outcome {
	if src == nil || src.Dead() || !InRange(atk, src, tgt) {
		return Outcome{}
	}
	return r.Strike(Hit{
		Source: src,
		Target: tgt,
		Amount: atk.Damage,
		Type:   atk.Type,
		Status: atk.Status,
		Label:  atk.Name,
	})
}

// Strike runs mitigation, the player crit roll, hp application, the status
// payload and event emission.
func (r *Resolver) Strike(h Hit) Outcome {
	tgt := h.Target
	if tgt == nil || tgt.dead {
		return Outcome{}
	}

	dmg := Mitigate(h.Amount, h.Type, tgt.Stats.Defense)
	crit := false
	if h.Source != nil && h.Source.Player && !h.NoCrit {
		if r.rng.Float64() < h.Source.Stats.CritRate {
			dmg = math.Floor(dmg * h.Source.Stats.CritDamage)
			crit = true
		}
	}

	tgt.Stats.HP = math.Max(0, tgt.Stats.HP-dmg)
	out := Outcome{Landed: true, Amount: dmg, Crit: crit}

	var src ecs.EntityID
	if h.Source != nil {
		src = h.Source.ID
	}
	event.Emit(r.bus, event.DamageDealt{
		Source: src,
		Target: tgt.ID,
		Amount: dmg,
		Type:   h.Type.String(),
		Crit:   crit,
		Label:  h.Label,
		HP:     tgt.Stats.HP,
	})

	if tgt.Stats.HP <= 0 {
		tgt.dead = true
		tgt.Vel = Vec2{}
		out.Killed = true
		event.Emit(r.bus, event.EntityDied{EntityID: tgt.ID, Player: tgt.Player})
		r.log.Debug("combatant died",
			zap.String("name", tgt.Name),
			zap.Stringer("id", tgt.ID),
			zap.String("by", h.Label))
	} else if h.Status != nil {
		tgt.Effects.Apply(*h.Status)
		event.Emit(r.bus, event.StatusApplied{
			Target:    tgt.ID,
			Kind:      string(h.Status.Kind),
			Magnitude: h.Status.Magnitude,
			Duration:  h.Status.Duration,
		})
	}

	for _, fn := range r.observers {
		fn(tgt, out)
	}
	return out
}

// DamageOverTime routes a ledger's poison damage as magical damage.
func (r *Resolver) DamageOverTime(tgt *Combatant, amount float64) Outcome {
	if amount <= 0 {
		return Outcome{}
	}
	return r.Strike(Hit{Target: tgt, Amount: amount, Type: Magical, Label: string(Poison), NoCrit: true})
}

// Heal restores hp up to maxHp and returns the amount actually restored.
func (r *Resolver) Heal(tgt *Combatant, amount float64) float64 {
	if tgt == nil || tgt.dead || amount <= 0 {
		return 0
	}
	before := tgt.Stats.HP
	tgt.Stats.HP = math.Min(tgt.Stats.MaxHP, tgt.Stats.HP+amount)
	return tgt.Stats.HP - before
}

// Mitigate applies defense. Physical damage loses 30% of defense and never
// drops below 1; magical and true damage pass through unchanged.
func Mitigate(amount float64, t DamageType, defense int) float64 {
	if amount < 0 {
		amount = 0
	}
	if t == Physical {
		return math.Max(1, amount-float64(defense)*0.3)
	}
	return amount
}
