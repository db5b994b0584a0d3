package beast

import (
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/l1jgo/databeast/internal/combat"
	"github.com/l1jgo/databeast/internal/creature"
	"github.com/l1jgo/databeast/internal/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pikachu() creature.Record {
	return creature.Record{
		ID:             25,
		Name:           "pikachu",
		BaseExperience: 100,
		Stats:          combat.BaseStats{HP: 35, Attack: 55, Defense: 40, SpecialAttack: 50, Speed: 90},
		Types:          []string{"electric"},
		Sprite:         "25.png",
	}
}

func newGenerator(t *testing.T) *Generator {
	t.Helper()
	chapters, err := data.LoadChapterTable("")
	require.NoError(t, err)
	provider := creature.NewProvider(creature.Offline{}, time.Hour, zap.NewNop())
	return NewGenerator(provider, chapters, zap.NewNop())
}

func TestBuildBossCorruptionAndPhases(t *testing.T) {
	p := Build(pikachu(), 1, true, rand.New(rand.NewSource(3)))

	assert.Equal(t, 35, p.Corruption, "stage 1 base 15 + boss 20")
	assert.True(t, p.Boss)
	require.Len(t, p.Phases, 3)
	assert.Equal(t, []float64{75, 50, 25}, []float64{p.Phases[0].Threshold, p.Phases[1].Threshold, p.Phases[2].Threshold})
	assert.Empty(t, p.Phases[0].Behavior)
	assert.Equal(t, combat.Aggressive, p.Phases[1].Behavior)
	assert.Equal(t, combat.Berserker, p.Phases[2].Behavior)
	assert.True(t, strings.HasPrefix(p.Phases[0].Dialogue, p.Name+": "))
	assert.Equal(t, 2*time.Second, p.Phases[2].Attacks[0].Telegraph)

	for i := 1; i < len(p.Phases); i++ {
		assert.Greater(t, p.Phases[i].Attacks[0].Damage, p.Phases[i-1].Attacks[0].Damage, "phase damage escalates")
	}
	assert.Equal(t, 675, p.XPReward)
}

func TestBuildClampsStageAndCorruption(t *testing.T) {
	hi := Build(pikachu(), 9, true, rand.New(rand.NewSource(1)))
	assert.Equal(t, 6, hi.Stage)
	assert.Equal(t, 100, hi.Corruption)

	lo := Build(pikachu(), -2, false, rand.New(rand.NewSource(1)))
	assert.Equal(t, 1, lo.Stage)
	for seed := int64(0); seed < 200; seed++ {
		p := Build(pikachu(), 1, false, rand.New(rand.NewSource(seed)))
		assert.GreaterOrEqual(t, p.Corruption, 10)
		assert.LessOrEqual(t, p.Corruption, 25)
		assert.GreaterOrEqual(t, p.Level, 5)
		assert.LessOrEqual(t, p.Level, 9)
		assert.Nil(t, p.Phases)
	}
}

func TestBuildIsDeterministicPerSeed(t *testing.T) {
	a := Build(pikachu(), 4, false, rand.New(rand.NewSource(99)))
	b := Build(pikachu(), 4, false, rand.New(rand.NewSource(99)))
	assert.Equal(t, a, b)
}

func TestAttackSetByCorruption(t *testing.T) {
	low := genAttacks(35, combat.ElementElectric)
	require.Len(t, low, 2)
	assert.Equal(t, "Corrupted Strike", low[0].Name)
	assert.Equal(t, 17.0, low[0].Damage)
	assert.Equal(t, "Electric Glitch", low[1].Name)
	assert.Equal(t, combat.Melee, low[1].Range)
	require.NotNil(t, low[1].Status)
	assert.Equal(t, combat.Stun, low[1].Status.Kind)

	mid := genAttacks(51, combat.ElementNormal)
	assert.Equal(t, combat.Mid, mid[1].Range)
	assert.Nil(t, mid[1].Status, "normal carries no status")

	top := genAttacks(95, combat.ElementFire)
	require.Len(t, top, 4)
	assert.Equal(t, "Buffer Overflow", top[2].Name)
	assert.Equal(t, combat.Long, top[2].Range)
	assert.Equal(t, combat.Stun, top[2].Status.Kind)
	assert.Equal(t, "System Crash", top[3].Name)
	assert.Equal(t, combat.Screen, top[3].Range)
	assert.Equal(t, 3*time.Second, top[3].Telegraph)
}

func TestEnemyAttacksArePhysical(t *testing.T) {
	for _, c := range []int{0, 35, 71, 100} {
		for _, el := range []combat.Element{combat.ElementNormal, combat.ElementGrass, combat.ElementFire} {
			for _, a := range genAttacks(c, el) {
				assert.Equal(t, combat.Physical, a.Type, "%s at corruption %d", a.Name, c)
			}
		}
	}
	for _, ph := range genPhases(100, "boss") {
		for _, a := range ph.Attacks {
			assert.Equal(t, combat.Physical, a.Type, a.Name)
		}
	}

	p := Build(creature.Fallback(4), 1, true, rand.New(rand.NewSource(1)))
	for _, a := range p.Attacks {
		assert.Equal(t, 1.0, combat.Mitigate(a.Damage, a.Type, 1000), "defense applies to %s", a.Name)
	}
}

func TestElementStatusTable(t *testing.T) {
	cases := map[combat.Element]combat.StatusKind{
		combat.ElementFire:     combat.Burn,
		combat.ElementIce:      combat.Freeze,
		combat.ElementElectric: combat.Stun,
		combat.ElementPoison:   combat.Poison,
		combat.ElementPsychic:  combat.Slow,
		combat.ElementDark:     combat.Blind,
	}
	for el, kind := range cases {
		s := ElementStatus(el)
		require.NotNil(t, s, el)
		assert.Equal(t, kind, s.Kind)
	}
	assert.True(t, ElementStatus(combat.ElementPoison).Stackable)
	assert.Nil(t, ElementStatus(combat.ElementWater))
	assert.Equal(t, combat.ElementEarth, ElementOf("ground"))
	assert.Equal(t, combat.ElementMetal, ElementOf("steel"))
	assert.Equal(t, combat.ElementNormal, ElementOf("shadow"))
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name  string
		stats combat.Stats
		want  combat.Behavior
	}{
		{"fast", combat.Stats{Speed: 91, Attack: 10, Defense: 10, MaxHP: 10}, combat.Stalker},
		{"glass cannon", combat.Stats{Attack: 80, Defense: 20, MaxHP: 30}, combat.Aggressive},
		{"tank", combat.Stats{Attack: 40, Defense: 80, MaxHP: 200}, combat.Defensive},
		{"weakling", combat.Stats{Attack: 50, Defense: 50, MaxHP: 20, Speed: 40}, combat.Swarm},
		{"caster", combat.Stats{Attack: 70, Defense: 60, MaxHP: 20, SpecialAttack: 90, Speed: 70}, combat.Ranged},
		{"default", combat.Stats{Attack: 70, Defense: 60, MaxHP: 20, SpecialAttack: 10, Speed: 70}, combat.Aggressive},
		{"zeros", combat.Stats{}, combat.Swarm},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.stats))
		})
	}
}

func TestCorruptName(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	assert.Equal(t, "PIKACHU", CorruptName("pikachu", 20, rng))

	a := CorruptName("mewtwo", 100, rand.New(rand.NewSource(5)))
	b := CorruptName("mewtwo", 100, rand.New(rand.NewSource(5)))
	assert.Equal(t, a, b, "same seed, same name")

	hasAffix := func(s string, set []string, prefix bool) bool {
		for _, x := range set {
			if prefix && strings.HasPrefix(s, x) || !prefix && strings.HasSuffix(s, x) {
				return true
			}
		}
		return false
	}
	assert.True(t, hasAffix(a, prefixes[:], true))
	assert.True(t, hasAffix(a, suffixes[:], false))
	assert.True(t, strings.ContainsAny(a, "█▓░▒"))

	mid := CorruptName("bulbasaur", 45, rand.New(rand.NewSource(2)))
	assert.True(t, hasAffix(mid, prefixes[:3], true), "41-70 draws from the narrow pool")
	assert.False(t, hasAffix(mid, suffixes[:], false))
}

func TestTint(t *testing.T) {
	assert.Equal(t, uint32(0xffffff), Tint(20))
	assert.Equal(t, uint32(0x00ffff), Tint(21))
	assert.Equal(t, uint32(0x00ff88), Tint(50))
	assert.Equal(t, uint32(0xff6600), Tint(70))
	assert.Equal(t, uint32(0xff2222), Tint(81))
}

func TestLoot(t *testing.T) {
	boss := genLoot(80, true)
	drops := RollLoot(boss, rand.New(rand.NewSource(1)))
	assert.Equal(t, 1, drops["legendary_shard"])
	assert.Equal(t, 1, drops["system_key"])
	assert.GreaterOrEqual(t, drops["code_fragment"], 1)
	assert.LessOrEqual(t, drops["code_fragment"], 2+80/25)

	normal := genLoot(20, false)
	for _, e := range normal {
		assert.NotEqual(t, "legendary_shard", e.ItemID)
		if e.ItemID == "data_crystal" {
			assert.Equal(t, 40.0, e.Chance)
		}
	}
	assert.Len(t, normal, 3)
	assert.Len(t, genLoot(71, false), 4, "corrupted core above 70")
}

func TestXPReward(t *testing.T) {
	assert.Equal(t, 150, XPReward(100, 50, false))
	assert.Equal(t, 750, XPReward(100, 50, true))
	assert.Equal(t, 55, XPReward(0, 10, false), "missing base experience counts as 50")
}

func TestGenerateFallsBackOffline(t *testing.T) {
	g := newGenerator(t)
	p, err := g.Generate(context.Background(), Request{CreatureID: 133, Stage: 2, Seed: 7})
	require.NoError(t, err)
	assert.True(t, p.Fallback)
	assert.Equal(t, "Voidmon", p.BaseName)
	assert.Equal(t, combat.ElementPsychic, p.Element)
}

func TestGenerateUnknownCreature(t *testing.T) {
	g := newGenerator(t)
	_, err := g.Generate(context.Background(), Request{CreatureID: 0, Stage: 1})
	assert.ErrorIs(t, err, creature.ErrUnknownCreature)
}

func TestSelectCreatureStaysInChapter(t *testing.T) {
	g := newGenerator(t)
	rng := rand.New(rand.NewSource(4))
	for i := 0; i < 500; i++ {
		id := g.SelectCreature(2, rng)
		assert.GreaterOrEqual(t, id, 152)
		assert.LessOrEqual(t, id, 251)
	}
}

func TestSpawnSeed(t *testing.T) {
	a := SpawnSeed(42, 1, 25)
	assert.Equal(t, a, SpawnSeed(42, 1, 25))
	assert.NotEqual(t, a, SpawnSeed(42, 2, 25))
	assert.GreaterOrEqual(t, a, int64(0))
}
