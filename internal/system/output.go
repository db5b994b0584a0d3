package system

import (
	"time"

	"github.com/l1jgo/databeast/internal/core/event"
	coresys "github.com/l1jgo/databeast/internal/core/system"
)

// OutputSystem delivers the tick's events to subscribers. Phase 5 (Output).
type OutputSystem struct {
	bus *event.Bus
}

func NewOutputSystem(bus *event.Bus) *OutputSystem {
	return &OutputSystem{bus: bus}
}

func (s *OutputSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *OutputSystem) Update(_ time.Duration) {
	s.bus.Flush()
}
