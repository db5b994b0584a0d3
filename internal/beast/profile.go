package beast

import "github.com/l1jgo/databeast/internal/combat"

// Profile is an enemy's full combat profile, built once at spawn. Only the
// boss phase controller may extend its live attack set or behavior, and it
// does so on the enemy's brain, never on the profile.
type Profile struct {
	CreatureID int
	BaseName   string
	Name       string
	Stage      int
	Level      int
	Corruption int
	Stats      combat.Stats
	Attacks    []combat.Attack
	Behavior   combat.Behavior
	Element    combat.Element
	SubElement combat.Element // empty when single-typed
	Boss       bool
	Phases     []Phase // bosses only, descending threshold
	Loot       []LootEntry
	XPReward   int
	Tint       uint32
	Sprite     string
	Fallback   bool // built from the fallback record
}

// Phase is a one-shot boss escalation fired when hp drops to Threshold
// percent or below.
type Phase struct {
	Threshold   float64
	Attacks     []combat.Attack
	Behavior    combat.Behavior // empty = unchanged
	Dialogue    string
	Visual      string
	Environment string
}

// LootEntry is one roll of a loot table. Chance is a percentage.
type LootEntry struct {
	ItemID string
	Name   string
	Chance float64
	Min    int
	Max    int
}
