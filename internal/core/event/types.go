package event

import "github.com/l1jgo/databeast/internal/core/ecs"

// Events published to the presentation sink. Field types stay primitive so
// listeners never need to import the simulation packages.

type EnemySpawned struct {
	EntityID   ecs.EntityID
	Name       string
	CreatureID int
	Level      int
	Corruption int
	Boss       bool
	Tint       uint32
	Sprite     string
	X, Y       float64
}

type DamageDealt struct {
	Source ecs.EntityID // zero for damage over time
	Target ecs.EntityID
	Amount float64
	Type   string // physical, magical, true
	Crit   bool
	Label  string
	HP     float64 // target hp after the hit
}

type StatusApplied struct {
	Target    ecs.EntityID
	Kind      string
	Magnitude float64
	Duration  float64
}

type EntityDied struct {
	EntityID ecs.EntityID
	Player   bool
}

type TelegraphStarted struct {
	Source  ecs.EntityID
	Attack  string
	Range   string
	DelayMs int64
}

type BossPhaseAdvanced struct {
	EntityID    ecs.EntityID
	Phase       int // 1-based
	Threshold   float64
	Dialogue    string
	Visual      string
	Environment string
	Behavior    string
}

type BossIncoming struct {
	Stage   int
	DelayMs int64
	Message string
}

type StageComplete struct {
	Stage     int
	NextStage int
	Boss      string
}

type RewardGranted struct {
	From  ecs.EntityID
	XP    int
	Gold  int
	Items map[string]int
}

type LevelUp struct {
	Level int
}

type AbilityUsed struct {
	Slot string
	Name string
}

type AbilityRejected struct {
	Slot   string
	Reason string
}

type Notification struct {
	Message string
}

type Paused struct {
	Paused bool
}

type EncounterOver struct {
	Victory bool
	Stage   int
	Score   int
}
