package main

import (
	"math"
	"time"

	"github.com/l1jgo/databeast/internal/data"
	"github.com/l1jgo/databeast/internal/encounter"
	"github.com/l1jgo/databeast/internal/player"
)

// autopilot stands in for a human at the keyboard: it walks to the nearest
// enemy and fires whatever is off cooldown.
type autopilot struct {
	skills map[player.Slot]data.SkillInfo
	ready  map[player.Slot]time.Duration // elapsed time the slot frees up
}

func newAutopilot(ch *data.CharacterInfo) *autopilot {
	a := &autopilot{
		skills: make(map[player.Slot]data.SkillInfo, len(player.Slots)),
		ready:  make(map[player.Slot]time.Duration, len(player.Slots)),
	}
	for _, s := range player.Slots {
		if info, ok := ch.Skills[string(s)]; ok {
			a.skills[s] = info
		}
	}
	return a
}

func (a *autopilot) Next(snap encounter.Snapshot) player.Intent {
	var in player.Intent
	if snap.Paused || snap.Over || len(snap.Enemies) == 0 {
		return in
	}

	nearest, dist := snap.Enemies[0], math.Inf(1)
	crowd, boss := 0, false
	for _, e := range snap.Enemies {
		d := e.Pos.Dist(snap.Pos)
		if d < dist {
			nearest, dist = e, d
		}
		if d <= a.skills[player.SlotE].Range {
			crowd++
		}
		boss = boss || e.Boss
	}
	toward := nearest.Pos.Sub(snap.Pos).Norm()

	if snap.Player.HP < snap.Player.MaxHP*0.3 && dist < 150 {
		in.Move = toward.Scale(-1)
		a.fire(&in, snap.Elapsed, player.SlotW)
		return in
	}

	// facing is kept from the approach, so stopping in range still lands
	// the combo on the target
	if dist > a.skills[player.SlotQ].Range*0.8 {
		in.Move = toward
	}
	if dist <= a.skills[player.SlotQ].Range {
		a.fire(&in, snap.Elapsed, player.SlotQ)
	}
	if crowd >= 2 || (boss && crowd >= 1) {
		a.fire(&in, snap.Elapsed, player.SlotE)
	}
	if boss && dist <= 300 {
		a.fire(&in, snap.Elapsed, player.SlotR)
	}
	return in
}

func (a *autopilot) fire(in *player.Intent, now time.Duration, slot player.Slot) {
	s, ok := a.skills[slot]
	if !ok || now < a.ready[slot] {
		return
	}
	a.ready[slot] = now + time.Duration(s.CooldownMs)*time.Millisecond
	in.Abilities = append(in.Abilities, slot)
}
