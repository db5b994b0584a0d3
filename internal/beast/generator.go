package beast

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand"

	"github.com/l1jgo/databeast/internal/combat"
	"github.com/l1jgo/databeast/internal/creature"
	"github.com/l1jgo/databeast/internal/data"
	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

const (
	MinStage = 1
	MaxStage = 6
)

// Records resolves creature base records. *creature.Provider implements it.
type Records interface {
	Resolve(ctx context.Context, id int) (creature.Record, error)
}

// Request asks for one enemy profile.
type Request struct {
	CreatureID int
	Stage      int
	Boss       bool
	Seed       int64
}

// Generator builds enemy profiles from creature records.
type Generator struct {
	records  Records
	chapters *data.ChapterTable
	log      *zap.Logger
}

func NewGenerator(records Records, chapters *data.ChapterTable, log *zap.Logger) *Generator {
	return &Generator{records: records, chapters: chapters, log: log}
}

// Generate resolves the creature record and builds its profile. The only
// errors are creature.ErrUnknownCreature and context cancellation; upstream
// failures fall back to the deterministic record.
func (g *Generator) Generate(ctx context.Context, req Request) (*Profile, error) {
	rec, err := g.records.Resolve(ctx, req.CreatureID)
	if err != nil {
		return nil, fmt.Errorf("generate profile: %w", err)
	}
	p := Build(rec, req.Stage, req.Boss, rand.New(rand.NewSource(req.Seed)))
	g.log.Debug("profile generated",
		zap.String("name", p.Name),
		zap.Int("creature", p.CreatureID),
		zap.Int("stage", p.Stage),
		zap.Int("corruption", p.Corruption),
		zap.String("behavior", string(p.Behavior)),
		zap.Bool("boss", p.Boss),
		zap.Bool("fallback", p.Fallback))
	return p, nil
}

// SelectCreature picks a creature id uniformly from the stage's range.
func (g *Generator) SelectCreature(stage int, rng *rand.Rand) int {
	ch := g.chapters.Get(ClampStage(stage))
	if ch == nil {
		return 1 + rng.Intn(151)
	}
	return ch.MinCreature + rng.Intn(ch.MaxCreature-ch.MinCreature+1)
}

// ClampStage clamps a stage id to [1,6].
func ClampStage(stage int) int {
	return min(max(stage, MinStage), MaxStage)
}

// BaseCorruption is the stage's corruption before the spawn roll.
func BaseCorruption(stage int) int {
	return (ClampStage(stage)-1)*15 + 15
}

// Build derives a profile from a record. Every random draw comes from rng
// in a fixed order: corruption roll (non-boss), level roll, name mutation.
func Build(rec creature.Record, stage int, boss bool, rng *rand.Rand) *Profile {
	stage = ClampStage(stage)

	c := BaseCorruption(stage)
	if boss {
		c += 20
	} else {
		c += rng.Intn(21) - 10
	}
	c = min(max(c, 10), 100)
	level := stage*5 + rng.Intn(5)

	stats := combat.Transform(rec.Stats, level, c)

	element := combat.ElementNormal
	var sub combat.Element
	if len(rec.Types) > 0 {
		element = ElementOf(rec.Types[0])
	}
	if len(rec.Types) > 1 {
		sub = ElementOf(rec.Types[1])
	}

	name := CorruptName(rec.Name, c, rng)
	p := &Profile{
		CreatureID: rec.ID,
		BaseName:   rec.Name,
		Name:       name,
		Stage:      stage,
		Level:      level,
		Corruption: c,
		Stats:      stats,
		Attacks:    genAttacks(c, element),
		Behavior:   Classify(stats),
		Element:    element,
		SubElement: sub,
		Boss:       boss,
		Loot:       genLoot(c, boss),
		XPReward:   XPReward(rec.BaseExperience, c, boss),
		Tint:       Tint(c),
		Sprite:     rec.Sprite,
		Fallback:   rec.Fallback,
	}
	if boss {
		p.Phases = genPhases(c, name)
	}
	return p
}

// Classify buckets final stats into a behavior. It is total: every stat
// block maps to exactly one behavior.
func Classify(s combat.Stats) combat.Behavior {
	atk, def, hp := float64(s.Attack), float64(s.Defense), s.MaxHP
	offense := ratio(atk, atk+def)
	survival := ratio(def+hp, atk+def+hp)

	switch {
	case s.Speed > 90:
		return combat.Stalker
	case offense > 0.7 && s.Defense < 60:
		return combat.Aggressive
	case survival > 0.6:
		return combat.Defensive
	case s.Attack < 60 && s.Speed < 60:
		return combat.Swarm
	case s.SpecialAttack > s.Attack:
		return combat.Ranged
	}
	return combat.Aggressive
}

func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// XPReward is ⌊baseExp·(1+c/100)·(boss ? 5 : 1)⌋.
func XPReward(baseExp, c int, boss bool) int {
	if baseExp <= 0 {
		baseExp = 50
	}
	mult := 1.0
	if boss {
		mult = 5
	}
	return int(math.Floor(float64(baseExp) * (1 + float64(c)/100) * mult))
}

// SpawnSeed derives an independent seed for one spawn so concurrent
// generations never share an RNG.
func SpawnSeed(runSeed int64, spawn uint64, creatureID int) int64 {
	var buf [24]byte
	binary.LittleEndian.PutUint64(buf[0:], uint64(runSeed))
	binary.LittleEndian.PutUint64(buf[8:], spawn)
	binary.LittleEndian.PutUint64(buf[16:], uint64(creatureID))
	sum := blake2b.Sum256(buf[:])
	return int64(binary.LittleEndian.Uint64(sum[:8]) &^ (1 << 63))
}
