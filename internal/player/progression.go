package player

import "math"

const (
	startGold     = 50
	startXPToNext = 100
)

// Progression is the run-scoped player record: level, xp, gold, the
// inventory and the bosses defeated so far.
type Progression struct {
	Level          int
	XP             int
	XPToNext       int
	Gold           int
	Kills          int
	Inventory      map[string]int
	BossesDefeated []string
}

func newProgression() Progression {
	return Progression{
		Level:     1,
		XPToNext:  startXPToNext,
		Gold:      startGold,
		Inventory: make(map[string]int),
	}
}

// GainXP adds xp and applies every level-up it pays for. It returns the
// number of levels gained.
func (e *Engine) GainXP(xp int) int {
	if xp <= 0 || e.Body.Dead() {
		return 0
	}
	p := &e.Progress
	p.XP += xp
	gained := 0
	for p.XP >= p.XPToNext {
		p.XP -= p.XPToNext
		p.XPToNext = int(math.Floor(float64(p.XPToNext) * 1.5))
		p.Level++
		gained++
		e.levelUp()
	}
	return gained
}

func (e *Engine) levelUp() {
	s := &e.Body.Stats
	s.MaxHP = math.Floor(s.MaxHP * 1.1)
	s.MaxMana = math.Floor(s.MaxMana * 1.08)
	s.Mana = s.MaxMana
	s.Attack = int(math.Floor(float64(s.Attack) * 1.08))
	s.Defense = int(math.Floor(float64(s.Defense) * 1.08))
	e.pipeline.Heal(e.Body, s.MaxHP)
}

func (e *Engine) AddGold(n int) {
	if n > 0 {
		e.Progress.Gold += n
	}
}

// AddItems stacks drops into the inventory.
func (e *Engine) AddItems(items map[string]int) {
	for id, n := range items {
		if n > 0 {
			e.Progress.Inventory[id] += n
		}
	}
}

func (e *Engine) RecordKill(boss string) {
	e.Progress.Kills++
	if boss != "" {
		e.Progress.BossesDefeated = append(e.Progress.BossesDefeated, boss)
	}
}
