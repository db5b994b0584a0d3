package player

import (
	"errors"
	"time"

	"github.com/l1jgo/databeast/internal/combat"
	"github.com/l1jgo/databeast/internal/data"
)

// Slot is an ability key.
type Slot string

const (
	SlotQ Slot = "Q" // multi-hit combo
	SlotW Slot = "W" // dash
	SlotE Slot = "E" // area burst
	SlotR Slot = "R" // ultimate
)

var Slots = [...]Slot{SlotQ, SlotW, SlotE, SlotR}

var (
	ErrUnknownCharacter = errors.New("unknown character")
	ErrUnknownSlot      = errors.New("unknown ability slot")
	ErrOnCooldown       = errors.New("ability on cooldown")
	ErrInsufficientMana = errors.New("insufficient mana")
	ErrSilenced         = errors.New("silenced")
	ErrStunned          = errors.New("stunned")
	ErrDead             = errors.New("player is dead")
)

const (
	defaultDamage = 30
	defaultRange  = 150
)

// Skill is a resolved ability definition.
type Skill struct {
	Name     string
	Damage   float64
	Range    float64
	Cooldown time.Duration
	ManaCost float64
	Type     combat.DamageType
	Status   *combat.StatusEffect
}

type ability struct {
	Skill
	cooldown time.Duration
}

func skillFromData(s data.SkillInfo) Skill {
	sk := Skill{
		Name:     s.Name,
		Damage:   s.Damage,
		Range:    s.Range,
		Cooldown: time.Duration(s.CooldownMs) * time.Millisecond,
		ManaCost: s.ManaCost,
		Type:     combat.ParseDamageType(s.Type),
	}
	if sk.Damage <= 0 {
		sk.Damage = defaultDamage
	}
	if sk.Range <= 0 {
		sk.Range = defaultRange
	}
	if s.Status != nil {
		sk.Status = &combat.StatusEffect{
			Kind:      combat.StatusKind(s.Status.Kind),
			Magnitude: s.Status.Magnitude,
			Duration:  s.Status.Duration,
			Stackable: s.Status.Stackable,
		}
	}
	return sk
}

// Intent is one tick of normalized input. Move is a direction, not a
// velocity; Abilities fire in order.
type Intent struct {
	Move      combat.Vec2
	Abilities []Slot
}
