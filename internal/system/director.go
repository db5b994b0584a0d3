package system

import (
	"fmt"
	"time"

	"github.com/l1jgo/databeast/internal/beast"
	"github.com/l1jgo/databeast/internal/core/event"
	coresys "github.com/l1jgo/databeast/internal/core/system"
	"github.com/l1jgo/databeast/internal/scripting"
	"github.com/l1jgo/databeast/internal/world"
	"go.uber.org/zap"
)

// DirectorSystem pays out kills, runs the spawn timer and the per-stage
// boss trigger, and ends the encounter. Phase 4 (PostUpdate), after
// MovementSystem.
type DirectorSystem struct {
	world *world.State
	deps  *Deps
}

func NewDirectorSystem(ws *world.State, deps *Deps) *DirectorSystem {
	return &DirectorSystem{world: ws, deps: deps}
}

func (s *DirectorSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *DirectorSystem) Update(dt time.Duration) {
	ws := s.world
	if ws.Over {
		return
	}
	ws.Elapsed += dt

	ws.EachEnemy(func(e *world.Enemy) {
		if e.Body.Dead() && !e.MarkRewarded() {
			s.reward(e)
		}
	})
	if ws.Over {
		return
	}
	if ws.Player.Body.Dead() {
		s.Finish(false)
		return
	}

	d := &ws.Director
	cfg := s.deps.Config

	if d.BossCountdown > 0 {
		d.BossCountdown -= dt
		if d.BossCountdown <= 0 {
			d.BossCountdown = 0
			s.RequestSpawn(0, true)
		}
	}

	if !d.BossTriggered && d.StageKills >= cfg.BossThreshold {
		d.BossTriggered = true
		event.Emit(s.deps.Bus, event.BossIncoming{
			Stage:   ws.Stage,
			DelayMs: cfg.BossDelay.Milliseconds(),
			Message: s.deps.Scripts.BossWarning(ws.Stage),
		})
		if cfg.BossDelay > 0 {
			d.BossCountdown = cfg.BossDelay
		} else {
			s.RequestSpawn(0, true)
		}
	}

	d.SpawnTimer += dt
	if d.SpawnTimer >= cfg.SpawnInterval {
		d.SpawnTimer = 0
		s.Wave()
	}
}

// Active counts enemies that are neither dead nor queued for removal.
func (s *DirectorSystem) Active() int {
	n := 0
	s.world.EachEnemy(func(e *world.Enemy) {
		if !e.Body.Dead() && !s.world.ECS.Pending(e.Body.ID) {
			n++
		}
	})
	return n
}

// Wave requests up to SpawnBatch regular enemies without letting live plus
// pending spawns exceed MaxEnemies.
func (s *DirectorSystem) Wave() int {
	cfg := s.deps.Config
	room := cfg.MaxEnemies - s.Active() - s.world.Director.Pending
	n := min(cfg.SpawnBatch, room)
	for i := 0; i < n; i++ {
		s.RequestSpawn(0, false)
	}
	return max(n, 0)
}

// RequestSpawn starts an async spawn. creatureID 0 picks one from the
// current stage's range.
func (s *DirectorSystem) RequestSpawn(creatureID int, boss bool) {
	ws := s.world
	d := &ws.Director
	if creatureID == 0 {
		creatureID = s.deps.Spawner.Generator().SelectCreature(ws.Stage, ws.Rng)
	}
	seed := beast.SpawnSeed(s.deps.RunSeed, d.Spawned, creatureID)
	d.Spawned++
	d.Pending++
	s.deps.Spawner.Request(SpawnRequest{CreatureID: creatureID, Stage: ws.Stage, Boss: boss, Seed: seed})
}

func (s *DirectorSystem) reward(e *world.Enemy) {
	ws, p := s.world, e.Profile
	pl := ws.Player

	gold := p.Corruption / 10
	if p.Boss {
		gold += 50
	} else {
		gold += 5
	}
	levels := pl.GainXP(p.XPReward)
	pl.AddGold(gold)
	items := beast.RollLoot(p.Loot, ws.Rng)
	pl.AddItems(items)

	bossName := ""
	if p.Boss {
		bossName = p.Name
	}
	pl.RecordKill(bossName)

	event.Emit(s.deps.Bus, event.RewardGranted{From: e.Body.ID, XP: p.XPReward, Gold: gold, Items: items})
	for i := levels - 1; i >= 0; i-- {
		event.Emit(s.deps.Bus, event.LevelUp{Level: pl.Progress.Level - i})
	}
	event.Emit(s.deps.Bus, event.Notification{
		Message: fmt.Sprintf("%s defeated! +%d XP | +%dG", p.Name, p.XPReward, gold),
	})

	ws.Director.StageKills++
	ws.Despawn(e.Body.ID)

	if p.Boss {
		s.completeStage(p.Name)
	}
}

func (s *DirectorSystem) completeStage(bossName string) {
	ws := s.world
	d := &ws.Director
	maxStage := min(s.deps.Config.MaxStage, beast.MaxStage)

	next := ws.Stage + 1
	if ws.Stage >= maxStage {
		next = ws.Stage
	}
	event.Emit(s.deps.Bus, event.StageComplete{Stage: ws.Stage, NextStage: next, Boss: bossName})
	s.deps.Log.Info("stage complete", zap.Int("stage", ws.Stage), zap.String("boss", bossName))

	if ws.Stage >= maxStage {
		s.Finish(true)
		return
	}
	ws.Stage = next
	d.StageKills = 0
	d.BossTriggered = false
	d.BossID = 0
}

// Finish ends the encounter and scores the run.
func (s *DirectorSystem) Finish(victory bool) {
	ws := s.world
	if ws.Over {
		return
	}
	ws.Over = true
	ws.Victory = victory

	prog := ws.Player.Progress
	ws.Score = s.deps.Scripts.Score(scripting.ScoreContext{
		Level:   prog.Level,
		Bosses:  len(prog.BossesDefeated),
		Gold:    prog.Gold,
		Stage:   ws.Stage,
		Kills:   prog.Kills,
		Victory: victory,
	})
	event.Emit(s.deps.Bus, event.EncounterOver{Victory: victory, Stage: ws.Stage, Score: ws.Score})
	s.deps.Log.Info("encounter over",
		zap.Bool("victory", victory),
		zap.Int("stage", ws.Stage),
		zap.Int("score", ws.Score),
		zap.Duration("elapsed", ws.Elapsed))
}
