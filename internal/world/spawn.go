package world

import (
	"math/rand"

	"github.com/l1jgo/databeast/internal/combat"
	"github.com/l1jgo/databeast/internal/config"
)

const (
	spawnMargin   = config.SpawnMargin
	spawnAttempts = 32
)

// SpawnPoint draws a point inside the world margin at least safe away
// from avoid. After spawnAttempts misses it falls back to the margin
// corner farthest from avoid, which config.Load guarantees is safe for an
// avoid point at the world center.
func (s *Space) SpawnPoint(avoid combat.Vec2, safe float64, rng *rand.Rand) combat.Vec2 {
	spanX := max(s.W-2*spawnMargin, 0)
	spanY := max(s.H-2*spawnMargin, 0)
	for i := 0; i < spawnAttempts; i++ {
		p := combat.Vec2{X: spawnMargin + rng.Float64()*spanX, Y: spawnMargin + rng.Float64()*spanY}
		if p.Dist(avoid) >= safe {
			return p
		}
	}

	corners := [4]combat.Vec2{
		{X: spawnMargin, Y: spawnMargin},
		{X: spawnMargin + spanX, Y: spawnMargin},
		{X: spawnMargin, Y: spawnMargin + spanY},
		{X: spawnMargin + spanX, Y: spawnMargin + spanY},
	}
	best := corners[0]
	for _, c := range corners[1:] {
		if c.Dist(avoid) > best.Dist(avoid) {
			best = c
		}
	}
	return best
}
