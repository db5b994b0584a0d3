package player

import (
	"math"
	"math/rand"
	"time"

	"github.com/l1jgo/databeast/internal/combat"
	"github.com/l1jgo/databeast/internal/core/ecs"
	"github.com/l1jgo/databeast/internal/data"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	moveBase = 150.0

	comboHits = 3
	comboGap  = 150 * time.Millisecond
	comboLife = 300 * time.Millisecond
	comboH    = 40

	dashDistance = 180.0
	dashTime     = 300 * time.Millisecond
	dashDamage   = 0.8
	dashH        = 30

	burstLife = 400 * time.Millisecond

	ultGap  = 250 * time.Millisecond
	ultLife = 400 * time.Millisecond

	manaRegen      = 5
	manaRegenEvery = time.Second

	overclockCost = 0.05
	regenLowHP    = 0.3
	regenRateLow  = 0.04
	regenRate     = 0.02
)

var ultRadii = [...]float64{60, 120, 180, 240, 300}

// Pipeline is the damage path the engine sends self-inflicted hits and
// heals through. *combat.Resolver satisfies it.
type Pipeline interface {
	Strike(h combat.Hit) combat.Outcome
	Heal(tgt *combat.Combatant, amount float64) float64
}

// Engine turns ability activations into hitboxes and owns the player's
// mana, cooldowns, dash and progression.
type Engine struct {
	Body      *combat.Combatant
	Character *data.CharacterInfo
	Progress  Progression

	skills   map[Slot]*ability
	pipeline Pipeline
	rng      *rand.Rand

	facing   float64
	queue    []pending
	active   []*Hitbox
	nextID   uint64
	manaTick time.Duration

	dash     *gween.Tween
	dashLeft time.Duration
}

// New builds the engine for ch with a fresh body at pos.
func New(ch *data.CharacterInfo, id ecs.EntityID, pos combat.Vec2, pipeline Pipeline, rng *rand.Rand) (*Engine, error) {
	if ch == nil {
		return nil, ErrUnknownCharacter
	}
	st := ch.Stats
	body := combat.NewCombatant(id, ch.Name, combat.Stats{
		MaxHP:      float64(st.HP),
		Attack:     st.Attack,
		Defense:    st.Defense,
		Speed:      st.Speed,
		Mana:       float64(st.Mana),
		MaxMana:    float64(st.Mana),
		CritRate:   st.CritRate,
		CritDamage: st.CritDamage,
	}, pos)
	body.Player = true

	e := &Engine{
		Body:      body,
		Character: ch,
		Progress:  newProgression(),
		skills:    make(map[Slot]*ability, len(Slots)),
		pipeline:  pipeline,
		rng:       rng,
		facing:    1,
	}
	for _, s := range Slots {
		if info, ok := ch.Skills[string(s)]; ok {
			e.skills[s] = &ability{Skill: skillFromData(info)}
		}
	}
	return e, nil
}

func (e *Engine) Skill(slot Slot) (Skill, bool) {
	ab, ok := e.skills[slot]
	if !ok {
		return Skill{}, false
	}
	return ab.Skill, true
}

// Cooldown returns the time left before slot is ready.
func (e *Engine) Cooldown(slot Slot) time.Duration {
	if ab, ok := e.skills[slot]; ok {
		return ab.cooldown
	}
	return 0
}

func (e *Engine) Facing() float64 { return e.facing }

// Dashing reports whether the dash burst still owns the velocity.
func (e *Engine) Dashing() bool { return e.dashLeft > 0 }

// Hitboxes returns the live hitboxes. The slice is owned by the engine.
func (e *Engine) Hitboxes() []*Hitbox { return e.active }

// Activate fires slot. A rejected activation consumes neither mana nor
// cooldown.
func (e *Engine) Activate(slot Slot) error {
	ab, ok := e.skills[slot]
	switch {
	case !ok:
		return ErrUnknownSlot
	case e.Body.Dead():
		return ErrDead
	case e.Body.Effects.Immobilized():
		return ErrStunned
	case e.Body.Effects.Silenced():
		return ErrSilenced
	case ab.cooldown > 0:
		return ErrOnCooldown
	case e.Body.Stats.Mana < ab.ManaCost:
		return ErrInsufficientMana
	}

	e.Body.Stats.Mana -= ab.ManaCost
	ab.cooldown = ab.Cooldown

	switch slot {
	case SlotQ:
		e.combo(slot, ab.Skill)
	case SlotW:
		e.startDash(slot, ab.Skill)
	case SlotE:
		e.burst(slot, ab.Skill)
	case SlotR:
		e.ultimate(slot, ab.Skill)
	}

	if e.Character.Passive == "overclock" {
		e.pipeline.Strike(combat.Hit{
			Source: e.Body,
			Target: e.Body,
			Amount: e.Body.Stats.HP * overclockCost,
			Type:   combat.True,
			Label:  "overclock",
			NoCrit: true,
		})
	}
	return nil
}

func (e *Engine) newHitbox(slot Slot, s Skill, center combat.Vec2, w, h, dmg float64, life time.Duration) *Hitbox {
	e.nextID++
	return &Hitbox{
		ID:     e.nextID,
		Slot:   slot,
		Label:  s.Name,
		Center: center,
		W:      w,
		H:      h,
		Damage: dmg,
		Type:   s.Type,
		Status: s.Status,
		Life:   life,
	}
}

// combo schedules three staggered hits in front of the player, each
// positioned where the player stands when it fires.
func (e *Engine) combo(slot Slot, s Skill) {
	for i := 0; i < comboHits; i++ {
		e.queue = append(e.queue, pending{
			delay: time.Duration(i) * comboGap,
			shape: func(pos combat.Vec2, facing float64) *Hitbox {
				c := pos.Add(combat.Vec2{X: facing * s.Range / 2})
				return e.newHitbox(slot, s, c, s.Range, comboH, s.Damage, comboLife)
			},
		})
	}
}

func (e *Engine) startDash(slot Slot, s Skill) {
	c := e.Body.Pos.Add(combat.Vec2{X: e.facing * dashDistance / 2})
	e.active = append(e.active, e.newHitbox(slot, s, c, dashDistance, dashH, math.Floor(s.Damage*dashDamage), dashTime))

	// ease-out from peak to zero covers a third of peak·dashTime
	peak := 3 * dashDistance / dashTime.Seconds()
	e.dash = gween.New(float32(peak), 0, float32(dashTime.Seconds()), ease.OutQuad)
	e.dashLeft = dashTime
	e.Body.Vel = combat.Vec2{X: e.facing * peak}
}

func (e *Engine) burst(slot Slot, s Skill) {
	side := s.Range * 2
	e.active = append(e.active, e.newHitbox(slot, s, e.Body.Pos, side, side, s.Damage, burstLife))
}

// ultimate expands in five rings around the point it was cast from; the
// rings stay there even if the player moves on.
func (e *Engine) ultimate(slot Slot, s Skill) {
	dmg := math.Floor(s.Damage / float64(len(ultRadii)))
	center := e.Body.Pos
	for i, r := range ultRadii {
		side := r * 2
		e.queue = append(e.queue, pending{
			delay: time.Duration(i) * ultGap,
			shape: func(combat.Vec2, float64) *Hitbox {
				return e.newHitbox(slot, s, center, side, side, dmg, ultLife)
			},
		})
	}
}

// Move sets the desired direction. It is ignored during a dash and
// suppressed while stunned or frozen.
func (e *Engine) Move(dir combat.Vec2) {
	if e.Dashing() || e.Body.Dead() {
		return
	}
	if dir.X > 0 {
		e.facing = 1
	} else if dir.X < 0 {
		e.facing = -1
	}
	if e.Body.Effects.Immobilized() || dir.IsZero() {
		e.Body.Vel = combat.Vec2{}
		return
	}
	e.Body.Vel = dir.Norm().Scale(e.MoveSpeed())
}

// MoveSpeed is the current top speed after slow and haste.
func (e *Engine) MoveSpeed() float64 {
	if e.Body.Effects.Immobilized() {
		return 0
	}
	return (moveBase + float64(e.Body.Stats.Speed)) * e.Body.Effects.SpeedFactor()
}

// Tick advances cooldowns, mana, the dash and hitbox lifetimes, then fires
// any staggered hitboxes that came due.
func (e *Engine) Tick(dt time.Duration) {
	if e.Body.Dead() {
		e.active = e.active[:0]
		e.queue = e.queue[:0]
		return
	}

	for _, ab := range e.skills {
		ab.cooldown = max(0, ab.cooldown-dt)
	}

	e.manaTick += dt
	for e.manaTick >= manaRegenEvery {
		e.manaTick -= manaRegenEvery
		e.Body.Stats.Mana = math.Min(e.Body.Stats.MaxMana, e.Body.Stats.Mana+manaRegen)
	}

	if e.dashLeft > 0 {
		v, done := e.dash.Update(float32(dt.Seconds()))
		e.dashLeft -= dt
		if done || e.dashLeft <= 0 {
			e.dashLeft = 0
			e.Body.Vel = combat.Vec2{}
		} else {
			e.Body.Vel = combat.Vec2{X: e.facing * float64(v)}
		}
	}

	live := e.active[:0]
	for _, hb := range e.active {
		hb.Life -= dt
		if hb.Life > 0 {
			live = append(live, hb)
		}
	}
	for i := len(live); i < len(e.active); i++ {
		e.active[i] = nil
	}
	e.active = live

	waiting := e.queue[:0]
	for _, p := range e.queue {
		p.delay -= dt
		if p.delay <= 0 {
			e.active = append(e.active, p.shape(e.Body.Pos, e.facing))
			continue
		}
		waiting = append(waiting, p)
	}
	e.queue = waiting

	if e.Character.Passive == "regen" {
		rate := regenRate
		if e.Body.HPRatio() < regenLowHP {
			rate = regenRateLow
		}
		if e.rng.Float64() < rate*dt.Seconds() {
			e.pipeline.Heal(e.Body, 1)
		}
	}
}
