package ai

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/l1jgo/databeast/internal/combat"
	"github.com/looplab/fsm"
)

type State string

const (
	StatePatrol  State = "patrol"
	StateChase   State = "chase"
	StateAttack  State = "attack"
	StateRetreat State = "retreat"
)

var allStates = []string{string(StatePatrol), string(StateChase), string(StateAttack), string(StateRetreat)}

// Config holds the AI tuning shared by every enemy.
type Config struct {
	AggroRange      float64
	AttackRange     float64
	AnimationLock   time.Duration
	ContactCooldown time.Duration
	PatrolRadius    float64
	WaypointPause   time.Duration
}

func DefaultConfig() Config {
	return Config{
		AggroRange:      250,
		AttackRange:     80,
		AnimationLock:   500 * time.Millisecond,
		ContactCooldown: time.Second,
		PatrolRadius:    100,
		WaypointPause:   time.Second,
	}
}

const (
	retreatBelow  = 0.3
	retreatUntil  = 0.5
	chaseFactor   = 0.8
	patrolFactor  = 0.3
	waypointReach = 15.0

	// ranged band
	fleeWithin     = 120.0
	approachBeyond = 180.0
)

// Intent is an attack the brain has committed to. Delay is the telegraph;
// the resolver checks range when it lands, not now.
type Intent struct {
	Attack combat.Attack
	Delay  time.Duration
}

type slot struct {
	atk      combat.Attack
	cooldown time.Duration
}

// Brain is one enemy's state machine and timers. It never touches hp; it
// moves its body and hands attack intents back to the caller.
type Brain struct {
	sm       *fsm.FSM
	cfg      Config
	rng      *rand.Rand
	behavior combat.Behavior
	boss     bool
	enraged  bool

	slots     []slot
	animLock  time.Duration
	contactCD time.Duration
	pause     time.Duration
	home      combat.Vec2
	waypoint  int
}

func NewBrain(cfg Config, behavior combat.Behavior, boss bool, attacks []combat.Attack, home combat.Vec2, rng *rand.Rand) *Brain {
	b := &Brain{
		cfg:      cfg,
		rng:      rng,
		behavior: behavior,
		boss:     boss,
		enraged:  behavior == combat.Berserker,
		home:     home,
	}
	b.AddAttacks(attacks)

	events := make(fsm.Events, 0, len(allStates))
	for _, dst := range allStates {
		events = append(events, fsm.EventDesc{Name: dst, Src: allStates, Dst: dst})
	}
	b.sm = fsm.NewFSM(string(StatePatrol), events, fsm.Callbacks{
		"enter_" + string(StatePatrol): func(context.Context, *fsm.Event) {
			b.pause = 0
		},
	})
	return b
}

func (b *Brain) State() State              { return State(b.sm.Current()) }
func (b *Brain) Behavior() combat.Behavior { return b.behavior }
func (b *Brain) Enraged() bool             { return b.enraged }

// Attacks returns the live attack set.
func (b *Brain) Attacks() []combat.Attack {
	out := make([]combat.Attack, len(b.slots))
	for i, s := range b.slots {
		out[i] = s.atk
	}
	return out
}

// Cooldown returns the remaining cooldown of the named attack.
func (b *Brain) Cooldown(name string) time.Duration {
	for _, s := range b.slots {
		if s.atk.Name == name {
			return s.cooldown
		}
	}
	return 0
}

// AddAttacks appends attacks with fresh (zero) cooldowns.
func (b *Brain) AddAttacks(atks []combat.Attack) {
	for _, a := range atks {
		b.slots = append(b.slots, slot{atk: a})
	}
}

// OverrideBehavior switches behavior class. Berserker is permanent rage:
// the brain attacks at any distance inside aggro, always picks the
// strongest ready attack and never retreats.
func (b *Brain) OverrideBehavior(bh combat.Behavior) {
	b.behavior = bh
	if bh == combat.Berserker {
		b.enraged = true
	}
}

// ContactReady reports whether body contact may deal damage now.
func (b *Brain) ContactReady() bool { return b.contactCD <= 0 }

func (b *Brain) ResetContact() { b.contactCD = b.cfg.ContactCooldown }

// Tick advances timers, re-evaluates the state and executes it. It returns
// an intent when an attack was selected this tick.
func (b *Brain) Tick(dt time.Duration, self *combat.Combatant, target combat.Vec2) (Intent, bool) {
	b.cool(dt)
	if self.Dead() || self.Effects.Immobilized() {
		self.Vel = combat.Vec2{}
		return Intent{}, false
	}

	dist := self.Pos.Dist(target)
	b.transition(b.next(dist, self.HPRatio()))

	spd := float64(self.Stats.Speed) * chaseFactor * self.Effects.SpeedFactor()
	toward := target.Sub(self.Pos).Norm()

	switch b.State() {
	case StatePatrol:
		b.patrol(self, spd*patrolFactor)
	case StateChase:
		self.Vel = b.chase(toward, dist, spd)
	case StateRetreat:
		self.Vel = toward.Scale(-spd)
	case StateAttack:
		self.Vel = combat.Vec2{}
		return b.selectAttack()
	}
	return Intent{}, false
}

func (b *Brain) cool(dt time.Duration) {
	dec := func(d *time.Duration) {
		*d = max(*d-dt, 0)
	}
	for i := range b.slots {
		dec(&b.slots[i].cooldown)
	}
	dec(&b.animLock)
	dec(&b.contactCD)
	dec(&b.pause)
}

func (b *Brain) next(dist, hp float64) State {
	if dist > b.cfg.AggroRange {
		return StatePatrol
	}
	if b.behavior == combat.Defensive && !b.enraged {
		if hp < retreatBelow || (b.State() == StateRetreat && hp <= retreatUntil) {
			return StateRetreat
		}
	}
	if dist <= b.cfg.AttackRange || b.enraged {
		return StateAttack
	}
	return StateChase
}

func (b *Brain) transition(to State) {
	if b.State() == to {
		return
	}
	// every state is reachable from every other, so this cannot fail
	_ = b.sm.Event(context.Background(), string(to))
}

func (b *Brain) patrol(self *combat.Combatant, spd float64) {
	if b.pause > 0 {
		self.Vel = combat.Vec2{}
		return
	}
	angle := float64(b.waypoint) * math.Pi / 2
	wp := b.home.Add(combat.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}.Scale(b.cfg.PatrolRadius))
	d := wp.Sub(self.Pos)
	if d.Len() < waypointReach {
		b.waypoint = (b.waypoint + 1) % 4
		b.pause = b.cfg.WaypointPause
		self.Vel = combat.Vec2{}
		return
	}
	self.Vel = d.Norm().Scale(spd)
}

func (b *Brain) chase(toward combat.Vec2, dist, spd float64) combat.Vec2 {
	if b.behavior != combat.Ranged {
		return toward.Scale(spd)
	}
	switch {
	case dist < fleeWithin:
		return toward.Scale(-spd * 0.7)
	case dist > approachBeyond:
		return toward.Scale(spd * 0.5)
	}
	return toward.Perp().Scale(spd * 0.6)
}

func (b *Brain) selectAttack() (Intent, bool) {
	if b.animLock > 0 {
		return Intent{}, false
	}
	ready := make([]int, 0, len(b.slots))
	for i, s := range b.slots {
		if s.cooldown <= 0 {
			ready = append(ready, i)
		}
	}
	if len(ready) == 0 {
		return Intent{}, false
	}

	pick := ready[0]
	if b.boss || b.enraged {
		for _, i := range ready[1:] {
			if b.slots[i].atk.Damage > b.slots[pick].atk.Damage {
				pick = i
			}
		}
	} else {
		pick = ready[b.rng.Intn(len(ready))]
	}

	s := &b.slots[pick]
	s.cooldown = s.atk.Cooldown
	b.animLock = b.cfg.AnimationLock
	return Intent{Attack: s.atk, Delay: s.atk.Telegraph}, true
}
