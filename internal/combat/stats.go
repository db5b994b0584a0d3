package combat

import "math"

// BaseStats is the raw stat tuple of a creature record.
type BaseStats struct {
	HP            int
	Attack        int
	Defense       int
	SpecialAttack int
	Speed         int
}

// Stats is the live combat block of a combatant. HP is fractional so damage
// over time can accumulate across ticks. HP is written only by the Resolver.
type Stats struct {
	HP            float64
	MaxHP         float64
	Attack        int
	Defense       int
	Speed         int
	SpecialAttack int

	// player only
	Mana       float64
	MaxMana    float64
	CritRate   float64
	CritDamage float64
}

// HPRatio returns hp/maxHp in [0,1].
func (s Stats) HPRatio() float64 {
	if s.MaxHP <= 0 {
		return 0
	}
	return s.HP / s.MaxHP
}

// Transform scales base stats by level and corruption:
//
//	lm = 1 + 0.1·level, cm = 1 + corruption/100
//	hp = ⌊hp·lm·cm·2⌋, atk = ⌊atk·lm·cm⌋, def = ⌊def·lm·cm·0.8⌋,
//	spd = ⌊spd·lm·min(cm, 1.3)⌋, spA = ⌊spA·lm·cm⌋
//
// Inputs are clamped first: level ≥ 1, corruption in [0,100], negative
// bases count as 0.
func Transform(base BaseStats, level, corruption int) Stats {
	level = max(level, 1)
	corruption = min(max(corruption, 0), 100)
	lm := 1 + 0.1*float64(level)
	cm := 1 + float64(corruption)/100

	hp := math.Floor(nonNeg(base.HP) * lm * cm * 2)
	return Stats{
		HP:            hp,
		MaxHP:         hp,
		Attack:        int(math.Floor(nonNeg(base.Attack) * lm * cm)),
		Defense:       int(math.Floor(nonNeg(base.Defense) * lm * cm * 0.8)),
		Speed:         int(math.Floor(nonNeg(base.Speed) * lm * math.Min(cm, 1.3))),
		SpecialAttack: int(math.Floor(nonNeg(base.SpecialAttack) * lm * cm)),
	}
}

func nonNeg(v int) float64 {
	if v < 0 {
		return 0
	}
	return float64(v)
}
