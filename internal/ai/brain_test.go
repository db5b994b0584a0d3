package ai

import (
	"math/rand"
	"testing"
	"time"

	"github.com/l1jgo/databeast/internal/combat"
	"github.com/l1jgo/databeast/internal/core/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tick = 16 * time.Millisecond

var (
	jab   = combat.Attack{Name: "jab", Damage: 10, Range: combat.Melee, Cooldown: 1500 * time.Millisecond}
	blast = combat.Attack{Name: "blast", Damage: 40, Range: combat.Long, Cooldown: 8 * time.Second}
)

func body(x float64, speed int) *combat.Combatant {
	return combat.NewCombatant(ecs.NewEntityID(1, 0), "enemy", combat.Stats{MaxHP: 100, Speed: speed}, combat.Vec2{X: x})
}

func newBrain(behavior combat.Behavior, boss bool, attacks ...combat.Attack) *Brain {
	return NewBrain(DefaultConfig(), behavior, boss, attacks, combat.Vec2{}, rand.New(rand.NewSource(1)))
}

// hurt sets hp directly; these tests exercise the brain, not the resolver.
func hurt(c *combat.Combatant, ratio float64) { c.Stats.HP = c.Stats.MaxHP * ratio }

func TestTransitionsByDistance(t *testing.T) {
	b := newBrain(combat.Aggressive, false, jab)
	self := body(0, 50)

	b.Tick(tick, self, combat.Vec2{X: 300})
	assert.Equal(t, StatePatrol, b.State())

	b.Tick(tick, self, combat.Vec2{X: 200})
	assert.Equal(t, StateChase, b.State())
	assert.Greater(t, self.Vel.X, 0.0, "chases toward the player")
	assert.InDelta(t, 50*0.8, self.Vel.Len(), 1e-9)

	_, ok := b.Tick(tick, self, combat.Vec2{X: 80})
	assert.Equal(t, StateAttack, b.State())
	assert.True(t, ok)
	assert.True(t, self.Vel.IsZero())

	b.Tick(tick, self, combat.Vec2{X: 251})
	assert.Equal(t, StatePatrol, b.State())
}

func TestDefensiveRetreatHysteresis(t *testing.T) {
	b := newBrain(combat.Defensive, false, jab)
	self := body(0, 50)
	player := combat.Vec2{X: 50}

	hurt(self, 0.29)
	b.Tick(tick, self, player)
	assert.Equal(t, StateRetreat, b.State())
	assert.Less(t, self.Vel.X, 0.0, "moves away from the player")

	hurt(self, 0.45)
	b.Tick(tick, self, player)
	assert.Equal(t, StateRetreat, b.State(), "holds retreat until above 0.5")

	hurt(self, 0.51)
	b.Tick(tick, self, player)
	assert.Equal(t, StateAttack, b.State())

	hurt(self, 0.45)
	b.Tick(tick, self, player)
	assert.Equal(t, StateAttack, b.State(), "0.3..0.5 does not start a retreat")
}

func TestNonDefensiveNeverRetreats(t *testing.T) {
	b := newBrain(combat.Aggressive, false, jab)
	self := body(0, 50)
	hurt(self, 0.05)
	b.Tick(tick, self, combat.Vec2{X: 150})
	assert.Equal(t, StateChase, b.State())
}

func TestBerserkerAttacksFromAnywhereInAggro(t *testing.T) {
	b := newBrain(combat.Defensive, true, jab)
	b.OverrideBehavior(combat.Berserker)
	self := body(0, 50)
	hurt(self, 0.1)

	_, ok := b.Tick(tick, self, combat.Vec2{X: 240})
	assert.Equal(t, StateAttack, b.State(), "no retreat while enraged")
	assert.True(t, ok)
	assert.True(t, b.Enraged())
}

func TestBossPicksHighestDamage(t *testing.T) {
	b := newBrain(combat.Aggressive, true, jab, blast)
	self := body(0, 50)

	in, ok := b.Tick(tick, self, combat.Vec2{X: 10})
	require.True(t, ok)
	assert.Equal(t, "blast", in.Attack.Name)

	// blast on cooldown: after the animation lock the jab is next
	_, ok = b.Tick(400*time.Millisecond, self, combat.Vec2{X: 10})
	assert.False(t, ok, "animation lock holds")
	in, ok = b.Tick(100*time.Millisecond, self, combat.Vec2{X: 10})
	require.True(t, ok)
	assert.Equal(t, "jab", in.Attack.Name)
}

func TestBossTieKeepsFirst(t *testing.T) {
	twin := jab
	twin.Name = "jab-2"
	b := newBrain(combat.Aggressive, true, jab, twin)
	in, ok := b.Tick(tick, body(0, 50), combat.Vec2{X: 10})
	require.True(t, ok)
	assert.Equal(t, "jab", in.Attack.Name)
}

func TestNonBossPicksAmongReadyAttacks(t *testing.T) {
	seen := map[string]bool{}
	for seed := int64(0); seed < 40; seed++ {
		b := NewBrain(DefaultConfig(), combat.Swarm, false, []combat.Attack{jab, blast}, combat.Vec2{}, rand.New(rand.NewSource(seed)))
		in, ok := b.Tick(tick, body(0, 50), combat.Vec2{X: 10})
		require.True(t, ok)
		seen[in.Attack.Name] = true
	}
	assert.True(t, seen["jab"] && seen["blast"], "uniform pick reaches both attacks")
}

func TestCooldownsClampAtZero(t *testing.T) {
	b := newBrain(combat.Aggressive, false, jab)
	self := body(0, 50)
	_, ok := b.Tick(tick, self, combat.Vec2{X: 10})
	require.True(t, ok)
	assert.Equal(t, jab.Cooldown, b.Cooldown("jab"))

	b.Tick(time.Hour, self, combat.Vec2{X: 1000})
	assert.Zero(t, b.Cooldown("jab"))
}

func TestStunSuppressesMovementAndAttacks(t *testing.T) {
	b := newBrain(combat.Aggressive, false, jab)
	self := body(0, 50)
	self.Vel = combat.Vec2{X: 10}
	self.Effects.Apply(combat.StatusEffect{Kind: combat.Stun, Duration: 1})

	_, ok := b.Tick(tick, self, combat.Vec2{X: 10})
	assert.False(t, ok)
	assert.True(t, self.Vel.IsZero())
}

func TestTelegraphBecomesDelay(t *testing.T) {
	crash := combat.Attack{Name: "crash", Damage: 200, Range: combat.Screen, Cooldown: 20 * time.Second, Telegraph: 3 * time.Second}
	b := newBrain(combat.Aggressive, true, crash)
	in, ok := b.Tick(tick, body(0, 50), combat.Vec2{X: 10})
	require.True(t, ok)
	assert.Equal(t, 3*time.Second, in.Delay)
}

func TestRangedKeepsBand(t *testing.T) {
	b := newBrain(combat.Ranged, false, jab)
	b.cfg.AttackRange = 0 // keep it chasing so the band logic runs
	self := body(0, 100)
	spd := 100 * 0.8

	b.Tick(tick, self, combat.Vec2{X: 100})
	assert.InDelta(t, -spd*0.7, self.Vel.X, 1e-9, "flees inside 120")

	b.Tick(tick, self, combat.Vec2{X: 200})
	assert.InDelta(t, spd*0.5, self.Vel.X, 1e-9, "approaches beyond 180")

	b.Tick(tick, self, combat.Vec2{X: 150})
	assert.InDelta(t, 0, self.Vel.X, 1e-9, "strafes between")
	assert.InDelta(t, spd*0.6, self.Vel.Len(), 1e-9)
}

func TestPatrolPausesAtWaypoint(t *testing.T) {
	b := newBrain(combat.Aggressive, false, jab)
	self := body(100, 50) // on waypoint 0 (home + radius·(1,0))
	far := combat.Vec2{X: 5000}

	b.Tick(tick, self, far)
	assert.True(t, self.Vel.IsZero())
	assert.Equal(t, 1, b.waypoint)

	b.Tick(500*time.Millisecond, self, far)
	assert.True(t, self.Vel.IsZero(), "still pausing")

	b.Tick(600*time.Millisecond, self, far)
	assert.False(t, self.Vel.IsZero(), "heads for the next waypoint")
	assert.InDelta(t, 50*0.8*0.3, self.Vel.Len(), 1e-9)
}

func TestContactCooldown(t *testing.T) {
	b := newBrain(combat.Aggressive, false, jab)
	assert.True(t, b.ContactReady())
	b.ResetContact()
	assert.False(t, b.ContactReady())
	b.Tick(999*time.Millisecond, body(0, 0), combat.Vec2{X: 5000})
	assert.False(t, b.ContactReady())
	b.Tick(time.Millisecond, body(0, 0), combat.Vec2{X: 5000})
	assert.True(t, b.ContactReady())
}

func TestAddAttacksStartReady(t *testing.T) {
	b := newBrain(combat.Aggressive, true, jab)
	self := body(0, 50)
	_, ok := b.Tick(tick, self, combat.Vec2{X: 10})
	require.True(t, ok)

	b.AddAttacks([]combat.Attack{blast})
	in, ok := b.Tick(time.Second, self, combat.Vec2{X: 10})
	require.True(t, ok)
	assert.Equal(t, "blast", in.Attack.Name)
	assert.Len(t, b.Attacks(), 2)
}
