package world

import (
	"math/rand"
	"time"

	"github.com/l1jgo/databeast/internal/ai"
	"github.com/l1jgo/databeast/internal/beast"
	"github.com/l1jgo/databeast/internal/boss"
	"github.com/l1jgo/databeast/internal/combat"
	"github.com/l1jgo/databeast/internal/core/ecs"
	"github.com/l1jgo/databeast/internal/player"
	"github.com/solarlune/resolv"
)

// Enemy is a spawned creature: its generated profile, the combat record
// the resolver mutates, its brain and its broadphase object.
type Enemy struct {
	Profile *beast.Profile
	Body    *combat.Combatant
	Brain   *ai.Brain
	Boss    *boss.Controller // nil unless Profile.Boss
	Obj     *resolv.Object

	rewarded bool
}

// MarkRewarded flags the death as paid out and reports whether it already
// was.
func (e *Enemy) MarkRewarded() (already bool) {
	already = e.rewarded
	e.rewarded = true
	return already
}

// Telegraph is an enemy strike waiting out its wind-up.
type Telegraph struct {
	Source    ecs.EntityID
	Attack    combat.Attack
	Remaining time.Duration
}

// Director is the spawn and stage bookkeeping.
type Director struct {
	SpawnTimer    time.Duration
	Pending       int // spawns requested but not yet materialized
	Spawned       uint64
	StageKills    int
	BossTriggered bool
	BossCountdown time.Duration // >0 while the boss warning runs
	BossID        ecs.EntityID
}

// State is the encounter's mutable simulation state. Every field is read
// and written only while the encounter lock is held.
type State struct {
	ECS     *ecs.World
	Enemies *ecs.Store[Enemy]
	Space   *Space
	Rng     *rand.Rand

	Player    *player.Engine
	PlayerObj *resolv.Object

	Telegraphs []Telegraph
	Director   Director

	Stage   int
	Elapsed time.Duration
	Over    bool
	Victory bool
	Score   int
}

func NewState(width, height float64, rng *rand.Rand) *State {
	w := ecs.NewWorld()
	enemies := ecs.NewStore[Enemy]()
	w.Track(enemies)
	return &State{
		ECS:     w,
		Enemies: enemies,
		Space:   NewSpace(width, height),
		Rng:     rng,
		Stage:   1,
	}
}

// AttachPlayer binds the player engine and registers its body in the space.
func (s *State) AttachPlayer(p *player.Engine) {
	s.Player = p
	s.PlayerObj = s.Space.AddBody(p.Body, TagPlayer)
}

func (s *State) AddEnemy(e *Enemy) {
	e.Obj = s.Space.AddBody(e.Body, TagEnemy)
	s.Enemies.Set(e.Body.ID, e)
}

// Enemy returns the live enemy with id, or nil.
func (s *State) Enemy(id ecs.EntityID) *Enemy {
	e, ok := s.Enemies.Get(id)
	if !ok {
		return nil
	}
	return e
}

// Live counts enemies still in the store, dead-but-unflushed included.
func (s *State) Live() int { return s.Enemies.Len() }

// EachEnemy visits enemies in ascending id order.
func (s *State) EachEnemy(fn func(*Enemy)) {
	s.Enemies.Each(func(_ ecs.EntityID, e *Enemy) { fn(e) })
}

// Despawn queues id for removal at cleanup and pulls its object out of
// the space right away so nothing collides with it this tick.
func (s *State) Despawn(id ecs.EntityID) {
	if e := s.Enemy(id); e != nil && e.Obj != nil {
		s.Space.Remove(e.Obj)
		e.Obj = nil
	}
	s.ECS.MarkForDestruction(id)
}
