package combat

import (
	"math/rand"
	"testing"
	"time"

	"github.com/l1jgo/databeast/internal/core/ecs"
	"github.com/l1jgo/databeast/internal/core/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestResolver(t *testing.T) (*Resolver, *event.Bus) {
	t.Helper()
	bus := event.NewBus()
	return NewResolver(bus, rand.New(rand.NewSource(1)), zap.NewNop()), bus
}

func enemyAt(id uint32, x float64, stats Stats) *Combatant {
	return NewCombatant(ecs.NewEntityID(id, 0), "enemy", stats, Vec2{X: x})
}

func TestPhysicalDamageFloorsAtOne(t *testing.T) {
	r, _ := newTestResolver(t)
	src := enemyAt(1, 0, Stats{MaxHP: 10})
	tgt := enemyAt(2, 10, Stats{MaxHP: 100, Defense: 500})

	out := r.Resolve(Attack{Name: "poke", Damage: 10, Range: Melee}, src, tgt)
	require.True(t, out.Landed)
	assert.Equal(t, 1.0, out.Amount)
	assert.Equal(t, 99.0, tgt.Stats.HP)
}

func TestMitigation(t *testing.T) {
	cases := []struct {
		name string
		typ  DamageType
		def  int
		want float64
	}{
		{"physical", Physical, 100, 70},
		{"magical ignores defense", Magical, 100, 100},
		{"true ignores defense", True, 100, 100},
		{"physical floor", Physical, 1000, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Mitigate(100, tc.typ, tc.def))
		})
	}
}

func TestPlayerCritAlwaysAtRateOne(t *testing.T) {
	r, _ := newTestResolver(t)
	player := NewCombatant(ecs.NewEntityID(1, 0), "fox", Stats{MaxHP: 100, CritRate: 1, CritDamage: 1.5}, Vec2{})
	player.Player = true

	for i := 0; i < 50; i++ {
		tgt := enemyAt(2, 0, Stats{MaxHP: 1000})
		out := r.Strike(Hit{Source: player, Target: tgt, Amount: 33, Type: True})
		assert.True(t, out.Crit)
		assert.Equal(t, 49.0, out.Amount, "⌊33·1.5⌋")
	}
}

func TestEnemiesNeverCrit(t *testing.T) {
	r, _ := newTestResolver(t)
	src := enemyAt(1, 0, Stats{MaxHP: 10, CritRate: 1, CritDamage: 3})
	tgt := enemyAt(2, 0, Stats{MaxHP: 100})
	out := r.Strike(Hit{Source: src, Target: tgt, Amount: 10, Type: True})
	assert.False(t, out.Crit)
	assert.Equal(t, 10.0, out.Amount)
}

func TestDeathIsTerminal(t *testing.T) {
	r, bus := newTestResolver(t)
	var died []ecs.EntityID
	event.Subscribe(bus, func(e event.EntityDied) { died = append(died, e.EntityID) })

	tgt := enemyAt(2, 0, Stats{MaxHP: 5})
	out := r.Strike(Hit{Target: tgt, Amount: 50, Type: True})
	assert.True(t, out.Killed)
	assert.Zero(t, tgt.Stats.HP, "hp floors at zero")
	assert.True(t, tgt.Dead())

	again := r.Strike(Hit{Target: tgt, Amount: 50, Type: True})
	assert.False(t, again.Landed)
	assert.Zero(t, r.Heal(tgt, 10))

	bus.Flush()
	assert.Equal(t, []ecs.EntityID{tgt.ID}, died)
}

func TestStatusAppliedOnHit(t *testing.T) {
	r, bus := newTestResolver(t)
	var applied []string
	event.Subscribe(bus, func(e event.StatusApplied) { applied = append(applied, e.Kind) })

	src := enemyAt(1, 0, Stats{MaxHP: 10})
	tgt := enemyAt(2, 150, Stats{MaxHP: 100})
	atk := Attack{Name: "Fire Glitch", Damage: 5, Type: Magical, Range: Mid, Status: &StatusEffect{Kind: Burn, Magnitude: 5, Duration: 3}}

	r.Resolve(atk, src, tgt)
	assert.True(t, tgt.Effects.Has(Burn))
	bus.Flush()
	assert.Equal(t, []string{"burn"}, applied)
}

func TestRangeCheckedAtImpact(t *testing.T) {
	r, _ := newTestResolver(t)
	src := enemyAt(1, 0, Stats{MaxHP: 10})
	tgt := enemyAt(2, 90, Stats{MaxHP: 100})
	atk := Attack{Name: "slam", Damage: 20, Type: True, Range: Melee, Telegraph: 2 * time.Second}

	require.True(t, InRange(atk, src, tgt), "in range when the intent is issued")
	tgt.Pos = Vec2{X: 101}
	out := r.Resolve(atk, src, tgt)
	assert.False(t, out.Landed)
	assert.Equal(t, 100.0, tgt.Stats.HP)

	tgt.Pos = Vec2{X: 1e6}
	out = r.Resolve(Attack{Damage: 1, Type: True, Range: Screen}, src, tgt)
	assert.True(t, out.Landed, "screen range is unbounded")
}

func TestDeadSourceDealsNothing(t *testing.T) {
	r, _ := newTestResolver(t)
	src := enemyAt(1, 0, Stats{MaxHP: 1})
	r.Strike(Hit{Target: src, Amount: 5, Type: True})
	tgt := enemyAt(2, 0, Stats{MaxHP: 100})
	assert.False(t, r.Resolve(Attack{Damage: 10, Range: Melee}, src, tgt).Landed)
}

func TestObserversSeeEveryLandedHit(t *testing.T) {
	r, _ := newTestResolver(t)
	var ratios []float64
	r.Observe(func(tgt *Combatant, _ Outcome) { ratios = append(ratios, tgt.HPRatio()) })

	tgt := enemyAt(2, 0, Stats{MaxHP: 100})
	r.Strike(Hit{Target: tgt, Amount: 30, Type: True})
	r.DamageOverTime(tgt, 20)
	r.DamageOverTime(tgt, 0)
	assert.Equal(t, []float64{0.7, 0.5}, ratios)
}

func TestHealClampsToMax(t *testing.T) {
	r, _ := newTestResolver(t)
	tgt := enemyAt(2, 0, Stats{MaxHP: 100})
	r.Strike(Hit{Target: tgt, Amount: 10, Type: True})
	assert.Equal(t, 10.0, r.Heal(tgt, 50))
	assert.Equal(t, 100.0, tgt.Stats.HP)
}
