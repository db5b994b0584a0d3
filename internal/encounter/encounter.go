package encounter

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/l1jgo/databeast/internal/ai"
	"github.com/l1jgo/databeast/internal/beast"
	"github.com/l1jgo/databeast/internal/combat"
	"github.com/l1jgo/databeast/internal/config"
	"github.com/l1jgo/databeast/internal/core/event"
	coresys "github.com/l1jgo/databeast/internal/core/system"
	"github.com/l1jgo/databeast/internal/creature"
	"github.com/l1jgo/databeast/internal/data"
	"github.com/l1jgo/databeast/internal/player"
	"github.com/l1jgo/databeast/internal/scripting"
	"github.com/l1jgo/databeast/internal/system"
	"github.com/l1jgo/databeast/internal/world"
	"go.uber.org/zap"
)

var ErrStopped = errors.New("encounter stopped")

// Options wires an encounter to its collaborators.
type Options struct {
	Config    config.Config
	Character *data.CharacterInfo
	Generator *beast.Generator
	Scripts   *scripting.Engine
	Log       *zap.Logger
}

// Encounter is the simulation root. One mutex serializes every tick and
// every call that touches combat state.
type Encounter struct {
	mu sync.Mutex

	id       uuid.UUID
	bus      *event.Bus
	world    *world.State
	runner   *coresys.Runner
	input    *system.PlayerInputSystem
	director *system.DirectorSystem
	spawner  *system.Spawner
	log      *zap.Logger

	started bool
	paused  bool
	stopped bool
}

// New builds an encounter at its start stage. A nil character is an
// unknown selection and yields player.ErrUnknownCharacter.
func New(ctx context.Context, opts Options) (*Encounter, error) {
	if opts.Character == nil {
		return nil, player.ErrUnknownCharacter
	}
	cfg := opts.Config
	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	id := uuid.New()
	log := opts.Log.With(zap.String("encounter", id.String()))

	bus := event.NewBus()
	ws := world.NewState(cfg.Encounter.WorldWidth, cfg.Encounter.WorldHeight, rng)
	ws.Stage = beast.ClampStage(cfg.Encounter.StartStage)

	resolver := combat.NewResolver(bus, rand.New(rand.NewSource(seed^0x7f4a7c15)), log)
	center := combat.Vec2{X: cfg.Encounter.WorldWidth / 2, Y: cfg.Encounter.WorldHeight / 2}
	pl, err := player.New(opts.Character, ws.ECS.CreateEntity(), center, resolver, rand.New(rand.NewSource(seed^0x2545f491)))
	if err != nil {
		return nil, fmt.Errorf("new player: %w", err)
	}
	ws.AttachPlayer(pl)
	resolver.Observe(system.BossObserver(ws))

	spawner := system.NewSpawner(ctx, opts.Generator, log)
	deps := &system.Deps{
		Bus:      bus,
		Resolver: resolver,
		Scripts:  opts.Scripts,
		Spawner:  spawner,
		Config:   cfg.Encounter,
		AI:       aiConfig(cfg.AI),
		RunSeed:  seed,
		Log:      log,
	}

	e := &Encounter{
		id:      id,
		bus:     bus,
		world:   ws,
		runner:  coresys.NewRunner(),
		input:   system.NewPlayerInputSystem(ws, deps),
		spawner: spawner,
		log:     log,
	}
	e.director = system.NewDirectorSystem(ws, deps)
	e.runner.Register(
		system.NewSpawnSystem(ws, deps),
		e.input,
		system.NewStatusSystem(ws, deps),
		system.NewCombatSystem(ws, deps),
		system.NewEnemyAISystem(ws, deps),
		system.NewMovementSystem(ws),
		e.director,
		system.NewOutputSystem(bus),
		system.NewCleanupSystem(ws.ECS),
	)

	log.Info("encounter created",
		zap.String("character", opts.Character.ID),
		zap.Int("stage", ws.Stage),
		zap.Int64("seed", seed),
		zap.Int("systems", e.runner.Len()))
	return e, nil
}

func aiConfig(c config.AIConfig) ai.Config {
	return ai.Config{
		AggroRange:      c.AggroRange,
		AttackRange:     c.AttackRange,
		AnimationLock:   c.AnimationLock,
		ContactCooldown: c.ContactCooldown,
		PatrolRadius:    c.PatrolRadius,
		WaypointPause:   c.WaypointPause,
	}
}

func (e *Encounter) ID() string { return e.id.String() }

// Bus is the presentation sink. Handlers run with the encounter locked and
// must not call back into it.
func (e *Encounter) Bus() *event.Bus { return e.bus }

// Start requests the opening wave. Calling it twice is a no-op.
func (e *Encounter) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	if e.started {
		return nil
	}
	e.started = true
	e.director.Wave()
	return nil
}

// Tick advances the simulation by dt. It reports false once the encounter
// is over or stopped; a paused encounter reports true without advancing.
func (e *Encounter) Tick(dt time.Duration) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped || e.world.Over {
		return false
	}
	if e.paused || dt <= 0 {
		return true
	}
	e.runner.Tick(dt)
	return !e.world.Over
}

// Submit queues an intent for the next tick.
func (e *Encounter) Submit(in player.Intent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped || e.world.Over {
		return
	}
	e.input.Push(in)
}

// SetPaused freezes or resumes every timer. Partially elapsed cooldowns
// are untouched; time simply stops.
func (e *Encounter) SetPaused(paused bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.paused == paused || e.stopped {
		return
	}
	e.paused = paused
	event.Emit(e.bus, event.Paused{Paused: paused})
	e.bus.Flush()
}

func (e *Encounter) TogglePause() {
	e.mu.Lock()
	paused := !e.paused
	e.mu.Unlock()
	e.SetPaused(paused)
}

func (e *Encounter) Paused() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.paused
}

// RequestSpawn spawns a specific creature. An id the upstream cannot serve
// is rejected with a notification and leaves state unchanged.
func (e *Encounter) RequestSpawn(creatureID int, boss bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped || e.world.Over {
		return ErrStopped
	}
	if err := creature.Validate(creatureID); err != nil {
		event.Emit(e.bus, event.Notification{Message: fmt.Sprintf("Unknown creature #%d", creatureID)})
		e.bus.Flush()
		return err
	}
	e.director.RequestSpawn(creatureID, boss)
	return nil
}

// Stop tears the encounter down. In-flight spawns are invalidated and will
// never materialize. Stop does not wait for them; see WaitSpawns.
func (e *Encounter) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return
	}
	e.stopped = true
	e.spawner.Stop()
	e.world.EachEnemy(func(en *world.Enemy) { e.world.Despawn(en.Body.ID) })
	e.world.ECS.FlushDestroyQueue()
	e.world.Telegraphs = nil
	e.bus.Discard()
	e.log.Info("encounter stopped")
}

// WaitSpawns blocks until every spawn goroutine has returned.
func (e *Encounter) WaitSpawns() { e.spawner.Wait() }
