package player

import (
	"time"

	"github.com/l1jgo/databeast/internal/combat"
	"github.com/l1jgo/databeast/internal/core/ecs"
)

// Hitbox is an axis-aligned damage window. Each hitbox damages a given
// enemy at most once, however long they overlap.
type Hitbox struct {
	ID     uint64
	Slot   Slot
	Label  string
	Center combat.Vec2
	W, H   float64
	Damage float64
	Type   combat.DamageType
	Status *combat.StatusEffect
	Life   time.Duration

	hit map[ecs.EntityID]struct{}
}

// TryHit records id as hit and reports whether this is its first hit.
func (h *Hitbox) TryHit(id ecs.EntityID) bool {
	if h.hit == nil {
		h.hit = make(map[ecs.EntityID]struct{}, 4)
	}
	if _, done := h.hit[id]; done {
		return false
	}
	h.hit[id] = struct{}{}
	return true
}

// Min returns the top-left corner.
func (h *Hitbox) Min() combat.Vec2 {
	return combat.Vec2{X: h.Center.X - h.W/2, Y: h.Center.Y - h.H/2}
}

// Overlaps tests against another axis-aligned box given by its center and
// size.
func (h *Hitbox) Overlaps(center combat.Vec2, w, hgt float64) bool {
	return abs(h.Center.X-center.X)*2 < h.W+w && abs(h.Center.Y-center.Y)*2 < h.H+hgt
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// pending is a hitbox waiting for its stagger delay. shape builds it from
// the player's position at fire time.
type pending struct {
	delay time.Duration
	shape func(pos combat.Vec2, facing float64) *Hitbox
}
