package boss

import (
	"sort"

	"github.com/l1jgo/databeast/internal/beast"
	"github.com/l1jgo/databeast/internal/combat"
)

// Target receives phase escalations. *ai.Brain implements it.
type Target interface {
	AddAttacks([]combat.Attack)
	OverrideBehavior(combat.Behavior)
}

// Hook runs once per consumed phase, after the target was updated. index
// is 0-based.
type Hook func(index int, p beast.Phase)

// Controller walks a boss's phase list as its hp falls. The phase index
// only moves forward: healing back above a threshold never re-fires or
// undoes a consumed phase.
type Controller struct {
	phases []beast.Phase
	next   int
	target Target
	hooks  []Hook
}

// New sorts phases by descending threshold and binds them to target.
func New(phases []beast.Phase, target Target) *Controller {
	sorted := append([]beast.Phase(nil), phases...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Threshold > sorted[j].Threshold })
	return &Controller{phases: sorted, target: target}
}

// OnPhase registers a hook for dialogue and environment triggers.
func (c *Controller) OnPhase(h Hook) {
	c.hooks = append(c.hooks, h)
}

// Next returns the index of the next unconsumed phase.
func (c *Controller) Next() int { return c.next }

// Done reports whether every phase has fired.
func (c *Controller) Done() bool { return c.next >= len(c.phases) }

// Observe consumes every phase whose threshold is at or above the current
// hp percentage, in order, and returns the consumed phases.
func (c *Controller) Observe(hp, maxHP float64) []beast.Phase {
	if maxHP <= 0 {
		return nil
	}
	pct := hp / maxHP * 100

	var fired []beast.Phase
	for c.next < len(c.phases) && c.phases[c.next].Threshold >= pct {
		p := c.phases[c.next]
		idx := c.next
		c.next++

		if len(p.Attacks) > 0 {
			c.target.AddAttacks(p.Attacks)
		}
		if p.Behavior != "" {
			c.target.OverrideBehavior(p.Behavior)
		}
		for _, h := range c.hooks {
			h(idx, p)
		}
		fired = append(fired, p)
	}
	return fired
}
