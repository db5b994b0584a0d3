package encounter

import (
	"time"

	"github.com/l1jgo/databeast/internal/ai"
	"github.com/l1jgo/databeast/internal/combat"
	"github.com/l1jgo/databeast/internal/core/ecs"
	"github.com/l1jgo/databeast/internal/player"
	"github.com/l1jgo/databeast/internal/world"
)

// EnemyView is a read-only copy of one enemy.
type EnemyView struct {
	ID         ecs.EntityID
	Name       string
	Boss       bool
	Corruption int
	HP, MaxHP  float64
	Pos        combat.Vec2
	State      ai.State
	Behavior   combat.Behavior
	Statuses   []combat.ActiveEffect
}

// Snapshot is a consistent copy of the encounter taken under the lock.
type Snapshot struct {
	Stage      int
	Elapsed    time.Duration
	Paused     bool
	Over       bool
	Victory    bool
	Score      int
	StageKills int
	Pending    int
	Telegraphs int

	Player   combat.Stats
	PlayerID ecs.EntityID
	Pos      combat.Vec2
	Progress player.Progression
	Statuses []combat.ActiveEffect
	Enemies  []EnemyView
}

func (e *Encounter) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	ws := e.world
	pl := ws.Player
	prog := pl.Progress
	prog.Inventory = make(map[string]int, len(pl.Progress.Inventory))
	for k, v := range pl.Progress.Inventory {
		prog.Inventory[k] = v
	}
	prog.BossesDefeated = append([]string(nil), pl.Progress.BossesDefeated...)

	s := Snapshot{
		Stage:      ws.Stage,
		Elapsed:    ws.Elapsed,
		Paused:     e.paused,
		Over:       ws.Over,
		Victory:    ws.Victory,
		Score:      ws.Score,
		StageKills: ws.Director.StageKills,
		Pending:    ws.Director.Pending,
		Telegraphs: len(ws.Telegraphs),
		Player:     pl.Body.Stats,
		PlayerID:   pl.Body.ID,
		Pos:        pl.Body.Pos,
		Progress:   prog,
		Statuses:   pl.Body.Effects.Active(),
	}
	ws.EachEnemy(func(en *world.Enemy) {
		s.Enemies = append(s.Enemies, EnemyView{
			ID:         en.Body.ID,
			Name:       en.Profile.Name,
			Boss:       en.Profile.Boss,
			Corruption: en.Profile.Corruption,
			HP:         en.Body.Stats.HP,
			MaxHP:      en.Body.Stats.MaxHP,
			Pos:        en.Body.Pos,
			State:      en.Brain.State(),
			Behavior:   en.Brain.Behavior(),
			Statuses:   en.Body.Effects.Active(),
		})
	})
	return s
}
