package combat

import (
	"math"
	"time"
)

// Element is an attack or creature element. Creature typings are folded
// onto this set when a profile is generated.
type Element string

const (
	ElementNormal    Element = "normal"
	ElementFire      Element = "fire"
	ElementWater     Element = "water"
	ElementElectric  Element = "electric"
	ElementGrass     Element = "grass"
	ElementIce       Element = "ice"
	ElementFighting  Element = "fighting"
	ElementPoison    Element = "poison"
	ElementEarth     Element = "earth"
	ElementWind      Element = "wind"
	ElementPsychic   Element = "psychic"
	ElementBug       Element = "bug"
	ElementGhost     Element = "ghost"
	ElementDragon    Element = "dragon"
	ElementDark      Element = "dark"
	ElementMetal     Element = "metal"
	ElementFairy     Element = "fairy"
	ElementCorrupted Element = "corrupted"
	ElementVoid      Element = "void"
)

type DamageType int

const (
	Physical DamageType = iota
	Magical
	True
)

func (t DamageType) String() string {
	switch t {
	case Physical:
		return "physical"
	case Magical:
		return "magical"
	case True:
		return "true"
	}
	return "unknown"
}

// ParseDamageType maps a data-file name to a DamageType; unknown names are
// physical.
func ParseDamageType(s string) DamageType {
	switch s {
	case "magical":
		return Magical
	case "true":
		return True
	}
	return Physical
}

// RangeClass bounds the distance at which an attack can land.
type RangeClass string

const (
	Melee  RangeClass = "melee"
	Mid    RangeClass = "mid"
	Long   RangeClass = "long"
	Screen RangeClass = "screen"
)

// Limit is the maximum source-target distance checked at impact.
func (r RangeClass) Limit() float64 {
	switch r {
	case Melee:
		return 100
	case Mid:
		return 200
	case Long:
		return 400
	case Screen:
		return math.Inf(1)
	}
	return 100
}

type StatusKind string

const (
	Stun    StatusKind = "stun"
	Slow    StatusKind = "slow"
	Poison  StatusKind = "poison"
	Burn    StatusKind = "burn"
	Freeze  StatusKind = "freeze"
	Silence StatusKind = "silence"
	Blind   StatusKind = "blind"
	Haste   StatusKind = "haste"
)

// StatusEffect is a timed modifier payload. Duration is in seconds.
type StatusEffect struct {
	Kind      StatusKind
	Magnitude float64
	Duration  float64
	Stackable bool
}

// Attack is immutable once generated; boss phases append new attacks
// instead of editing existing ones.
type Attack struct {
	Name      string
	Damage    float64
	Element   Element
	Type      DamageType
	Range     RangeClass
	Cooldown  time.Duration
	Status    *StatusEffect
	Telegraph time.Duration
	Animation string
}

// Behavior buckets an enemy's combat style for the AI.
type Behavior string

const (
	Aggressive Behavior = "aggressive"
	Defensive  Behavior = "defensive"
	Stalker    Behavior = "stalker"
	Ranged     Behavior = "ranged"
	Swarm      Behavior = "swarm"
	Berserker  Behavior = "berserker"
)
