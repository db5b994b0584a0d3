package system

import (
	"math"
	"time"

	"github.com/l1jgo/databeast/internal/combat"
	"github.com/l1jgo/databeast/internal/core/event"
	coresys "github.com/l1jgo/databeast/internal/core/system"
	"github.com/l1jgo/databeast/internal/world"
	"github.com/solarlune/resolv"
	"go.uber.org/zap"
)

const contactFactor = 0.3

// CombatSystem lands telegraphed strikes, player hitboxes and contact
// damage, in that order. Phase 2 (Combat).
type CombatSystem struct {
	world    *world.State
	deps     *Deps
	hitboxes map[uint64]*resolv.Object
}

func NewCombatSystem(ws *world.State, deps *Deps) *CombatSystem {
	return &CombatSystem{world: ws, deps: deps, hitboxes: make(map[uint64]*resolv.Object)}
}

func (s *CombatSystem) Phase() coresys.Phase { return coresys.PhaseCombat }

func (s *CombatSystem) Update(dt time.Duration) {
	s.telegraphs(dt)
	s.playerHitboxes()
	s.contact()
}

// telegraphs counts down wind-ups. Range is checked at impact; a strike
// whose source died or despawned is cancelled.
func (s *CombatSystem) telegraphs(dt time.Duration) {
	ws := s.world
	waiting := ws.Telegraphs[:0]
	for _, t := range ws.Telegraphs {
		t.Remaining -= dt
		if t.Remaining > 0 {
			waiting = append(waiting, t)
			continue
		}
		src := ws.Enemy(t.Source)
		if src == nil || src.Body.Dead() {
			s.deps.Log.Debug("telegraph cancelled", zap.Stringer("source", t.Source), zap.String("attack", t.Attack.Name))
			continue
		}
		s.deps.Resolver.Resolve(t.Attack, src.Body, ws.Player.Body)
	}
	ws.Telegraphs = waiting
}

func (s *CombatSystem) playerHitboxes() {
	ws := s.world
	live := make(map[uint64]struct{}, len(ws.Player.Hitboxes()))
	for _, hb := range ws.Player.Hitboxes() {
		live[hb.ID] = struct{}{}
		obj, ok := s.hitboxes[hb.ID]
		if !ok {
			obj = ws.Space.AddBox(hb.Min(), hb.W, hb.H, world.TagHitbox)
			s.hitboxes[hb.ID] = obj
		}
		for _, id := range ws.Space.Touching(obj, world.TagEnemy) {
			e := ws.Enemy(id)
			if e == nil || e.Body.Dead() || !hb.Overlaps(e.Body.Pos, world.BodySize, world.BodySize) {
				continue
			}
			if !hb.TryHit(id) {
				continue
			}
			s.deps.Resolver.Strike(combat.Hit{
				Source: ws.Player.Body,
				Target: e.Body,
				Amount: hb.Damage,
				Type:   hb.Type,
				Status: hb.Status,
				Label:  hb.Label,
			})
		}
	}
	for id, obj := range s.hitboxes {
		if _, ok := live[id]; !ok {
			ws.Space.Remove(obj)
			delete(s.hitboxes, id)
		}
	}
}

func (s *CombatSystem) contact() {
	ws := s.world
	pb := ws.Player.Body
	if pb.Dead() {
		return
	}
	for _, id := range ws.Space.Touching(ws.PlayerObj, world.TagEnemy) {
		e := ws.Enemy(id)
		if e == nil || e.Body.Dead() || !e.Brain.ContactReady() {
			continue
		}
		if !world.BodiesOverlap(pb.Pos, e.Body.Pos) {
			continue
		}
		s.deps.Resolver.Strike(combat.Hit{
			Source: e.Body,
			Target: pb,
			Amount: math.Floor(float64(e.Body.Stats.Attack) * contactFactor),
			Type:   combat.Physical,
			Label:  "contact",
		})
		e.Brain.ResetContact()
	}
}

// emitTelegraph announces a wind-up so presentation can draw the warning.
func emitTelegraph(bus *event.Bus, t world.Telegraph) {
	event.Emit(bus, event.TelegraphStarted{
		Source:  t.Source,
		Attack:  t.Attack.Name,
		Range:   string(t.Attack.Range),
		DelayMs: t.Remaining.Milliseconds(),
	})
}
