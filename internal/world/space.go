package world

import (
	"math"

	"github.com/l1jgo/databeast/internal/combat"
	"github.com/l1jgo/databeast/internal/core/ecs"
	"github.com/solarlune/resolv"
)

const (
	TagPlayer = "player"
	TagEnemy  = "enemy"
	TagHitbox = "hitbox"

	// BodySize is the square collision box of every combatant.
	BodySize = 32

	cellSize = 32
)

// Space is the broadphase for contact damage and hitbox overlap. Object
// positions are top-left corners; combatant positions are centers.
type Space struct {
	space *resolv.Space
	W, H  float64
}

func NewSpace(width, height float64) *Space {
	return &Space{
		space: resolv.NewSpace(int(width), int(height), cellSize, cellSize),
		W:     width,
		H:     height,
	}
}

// AddBody creates a BodySize object centered on body.
func (s *Space) AddBody(body *combat.Combatant, tags ...string) *resolv.Object {
	obj := resolv.NewObject(body.Pos.X-BodySize/2, body.Pos.Y-BodySize/2, BodySize, BodySize, tags...)
	obj.SetShape(resolv.NewRectangle(0, 0, BodySize, BodySize))
	obj.Data = body.ID
	s.space.Add(obj)
	return obj
}

// AddBox adds a free-standing box, used for player hitboxes.
func (s *Space) AddBox(min combat.Vec2, w, h float64, tags ...string) *resolv.Object {
	obj := resolv.NewObject(min.X, min.Y, w, h, tags...)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	s.space.Add(obj)
	return obj
}

// Sync moves obj to body's position.
func (s *Space) Sync(obj *resolv.Object, body *combat.Combatant) {
	obj.X = body.Pos.X - BodySize/2
	obj.Y = body.Pos.Y - BodySize/2
	obj.Update()
}

func (s *Space) Remove(obj *resolv.Object) {
	s.space.Remove(obj)
}

// Touching returns the ids of objects tagged tag that share a cell with
// obj. It is a broadphase; callers confirm the overlap.
func (s *Space) Touching(obj *resolv.Object, tag string) []ecs.EntityID {
	check := obj.Check(0, 0, tag)
	if check == nil {
		return nil
	}
	var ids []ecs.EntityID
	for _, o := range check.ObjectsByTags(tag) {
		if id, ok := o.Data.(ecs.EntityID); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// Clamp keeps a center position inside the world.
func (s *Space) Clamp(p combat.Vec2) combat.Vec2 {
	half := float64(BodySize) / 2
	return combat.Vec2{
		X: math.Min(math.Max(p.X, half), s.W-half),
		Y: math.Min(math.Max(p.Y, half), s.H-half),
	}
}

// BodiesOverlap is the exact test behind Touching.
func BodiesOverlap(a, b combat.Vec2) bool {
	return math.Abs(a.X-b.X) < BodySize && math.Abs(a.Y-b.Y) < BodySize
}
