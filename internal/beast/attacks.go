package beast

import (
	"time"

	"github.com/l1jgo/databeast/internal/combat"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casers carry state; build one per call since generation runs on spawn
// goroutines.
func title(s string) string { return cases.Title(language.English).String(s) }

// elementStatus is the status carried by an element's Glitch attack.
var elementStatus = map[combat.Element]combat.StatusEffect{
	combat.ElementFire:     {Kind: combat.Burn, Magnitude: 5, Duration: 3},
	combat.ElementIce:      {Kind: combat.Freeze, Duration: 1.5},
	combat.ElementElectric: {Kind: combat.Stun, Duration: 0.5},
	combat.ElementPoison:   {Kind: combat.Poison, Magnitude: 8, Duration: 4, Stackable: true},
	combat.ElementPsychic:  {Kind: combat.Slow, Magnitude: 0.3, Duration: 2},
	combat.ElementDark:     {Kind: combat.Blind, Duration: 2},
}

// ElementStatus returns the status payload for e, or nil.
func ElementStatus(e combat.Element) *combat.StatusEffect {
	s, ok := elementStatus[e]
	if !ok {
		return nil
	}
	return &s
}

// typeElement folds upstream typings onto elements.
var typeElement = map[string]combat.Element{
	"normal":   combat.ElementNormal,
	"fire":     combat.ElementFire,
	"water":    combat.ElementWater,
	"electric": combat.ElementElectric,
	"grass":    combat.ElementGrass,
	"ice":      combat.ElementIce,
	"fighting": combat.ElementFighting,
	"poison":   combat.ElementPoison,
	"ground":   combat.ElementEarth,
	"flying":   combat.ElementWind,
	"psychic":  combat.ElementPsychic,
	"bug":      combat.ElementBug,
	"rock":     combat.ElementEarth,
	"ghost":    combat.ElementGhost,
	"dragon":   combat.ElementDragon,
	"dark":     combat.ElementDark,
	"steel":    combat.ElementMetal,
	"fairy":    combat.ElementFairy,
}

// ElementOf maps an upstream type name; unknown names are normal.
func ElementOf(typ string) combat.Element {
	if e, ok := typeElement[typ]; ok {
		return e
	}
	return combat.ElementNormal
}

func genAttacks(c int, element combat.Element) []combat.Attack {
	glitchRange := combat.Melee
	if c > 50 {
		glitchRange = combat.Mid
	}
	attacks := []combat.Attack{
		{
			Name:      "Corrupted Strike",
			Damage:    float64(10 + c/5),
			Element:   combat.ElementCorrupted,
			Type:      combat.Physical,
			Range:     combat.Melee,
			Cooldown:  1500 * time.Millisecond,
			Animation: "attack_basic",
		},
		{
			Name:      title(string(element)) + " Glitch",
			Damage:    float64(15 + c/3),
			Element:   element,
			Type:      combat.Physical,
			Range:     glitchRange,
			Cooldown:  3 * time.Second,
			Status:    ElementStatus(element),
			Animation: "attack_" + string(element),
		},
	}
	if c > 70 {
		attacks = append(attacks, combat.Attack{
			Name:      "Buffer Overflow",
			Damage:    float64(30 + c/2),
			Element:   combat.ElementVoid,
			Type:      combat.Physical,
			Range:     combat.Long,
			Cooldown:  8 * time.Second,
			Status:    &combat.StatusEffect{Kind: combat.Stun, Duration: 1.5},
			Animation: "attack_overflow",
		})
	}
	if c > 90 {
		attacks = append(attacks, combat.Attack{
			Name:      "System Crash",
			Damage:    float64(100 + c),
			Element:   combat.ElementVoid,
			Type:      combat.Physical,
			Range:     combat.Screen,
			Cooldown:  20 * time.Second,
			Status:    &combat.StatusEffect{Kind: combat.Slow, Magnitude: 0.8, Duration: 5},
			Telegraph: 3 * time.Second,
			Animation: "attack_ultimate",
		})
	}
	return attacks
}

func genPhases(c int, name string) []Phase {
	return []Phase{
		{
			Threshold: 75,
			Attacks: []combat.Attack{{
				Name:      "Memory Corruption",
				Damage:    float64(25 + c/4),
				Element:   combat.ElementCorrupted,
				Type:      combat.Physical,
				Range:     combat.Mid,
				Cooldown:  5 * time.Second,
				Animation: "phase1_special",
			}},
			Dialogue:    name + ": INITIALIZING DEFENSIVE PROTOCOLS...",
			Environment: "spawn_adds",
		},
		{
			Threshold: 50,
			Attacks: []combat.Attack{{
				Name:      "Stack Overflow",
				Damage:    float64(40 + c/2),
				Element:   combat.ElementVoid,
				Type:      combat.Physical,
				Range:     combat.Long,
				Cooldown:  7 * time.Second,
				Status:    &combat.StatusEffect{Kind: combat.Stun, Duration: 2},
				Animation: "phase2_special",
			}},
			Behavior:    combat.Aggressive,
			Dialogue:    "ERROR: STABILITY_COMPROMISED.",
			Visual:      "increase_tint",
			Environment: "screen_shake",
		},
		{
			Threshold: 25,
			Attacks: []combat.Attack{{
				Name:      "SYSTEM FAILURE",
				Damage:    float64(60 + c),
				Element:   combat.ElementVoid,
				Type:      combat.Physical,
				Range:     combat.Screen,
				Cooldown:  10 * time.Second,
				Status:    &combat.StatusEffect{Kind: combat.Slow, Magnitude: 0.8, Duration: 3},
				Telegraph: 2 * time.Second,
				Animation: "phase3_ultimate",
			}},
			Behavior:    combat.Berserker,
			Dialogue:    "CRITICAL ERROR: FINAL PROTOCOL INITIATED.",
			Visual:      "rage_mode",
			Environment: "danger_zone",
		},
	}
}
