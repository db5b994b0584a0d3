package system

import (
	"github.com/l1jgo/databeast/internal/ai"
	"github.com/l1jgo/databeast/internal/combat"
	"github.com/l1jgo/databeast/internal/config"
	"github.com/l1jgo/databeast/internal/core/event"
	"github.com/l1jgo/databeast/internal/scripting"
	"go.uber.org/zap"
)

// Deps bundles the collaborators every system shares.
type Deps struct {
	Bus      *event.Bus
	Resolver *combat.Resolver
	Scripts  *scripting.Engine
	Spawner  *Spawner
	Config   config.EncounterConfig
	AI       ai.Config
	RunSeed  int64
	Log      *zap.Logger
}
