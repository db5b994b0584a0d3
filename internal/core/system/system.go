package system

import "time"

// Phase orders systems within one simulation tick.
type Phase int

const (
	PhaseInput      Phase = iota // 0: drain intents and resolved spawns
	PhaseStatus                  // 1: status decay, damage over time
	PhaseCombat                  // 2: telegraph impacts, hitboxes, contact damage
	PhaseAI                      // 3: enemy state machines, attack selection
	PhasePostUpdate              // 4: movement, director bookkeeping
	PhaseOutput                  // 5: deliver events to the presentation sink
	PhaseCleanup                 // 6: destroy queued entities
)

var phaseNames = [...]string{"input", "status", "combat", "ai", "post_update", "output", "cleanup"}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "unknown"
	}
	return phaseNames[p]
}

// System is implemented by every per-tick simulation step.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
