package combat

import "time"

// ActiveEffect is a StatusEffect instance with its remaining time (seconds).
type ActiveEffect struct {
	StatusEffect
	Remaining float64
}

// Ledger tracks the timed modifiers on one combatant. The zero value is
// ready to use.
type Ledger struct {
	effects []ActiveEffect
}

// Apply adds an effect. A non-stackable effect replaces any instance of the
// same kind (new magnitude, full duration); stackable ones coexist.
func (l *Ledger) Apply(e StatusEffect) {
	if !e.Stackable {
		for i := range l.effects {
			if l.effects[i].Kind == e.Kind {
				l.effects[i] = ActiveEffect{StatusEffect: e, Remaining: e.Duration}
				return
			}
		}
	}
	l.effects = append(l.effects, ActiveEffect{StatusEffect: e, Remaining: e.Duration})
}

// Tick advances every effect by dt and drops the expired ones. It returns
// the poison damage owed for this tick: the first live poison instance's
// magnitude times dt in seconds. Other poison stacks do not add to it.
// The caller routes the damage through the Resolver.
func (l *Ledger) Tick(dt time.Duration) float64 {
	ds := dt.Seconds()
	kept := l.effects[:0]
	for _, e := range l.effects {
		e.Remaining -= ds
		if e.Remaining > 0 {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(l.effects); i++ {
		l.effects[i] = ActiveEffect{}
	}
	l.effects = kept

	for _, e := range l.effects {
		if e.Kind == Poison {
			return e.Magnitude * ds
		}
	}
	return 0
}

func (l *Ledger) Has(kind StatusKind) bool {
	_, ok := l.Get(kind)
	return ok
}

// Get returns the first active instance of kind.
func (l *Ledger) Get(kind StatusKind) (ActiveEffect, bool) {
	for _, e := range l.effects {
		if e.Kind == kind {
			return e, true
		}
	}
	return ActiveEffect{}, false
}

// Count returns how many instances of kind are active.
func (l *Ledger) Count(kind StatusKind) int {
	n := 0
	for _, e := range l.effects {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Cure removes every instance of kind.
func (l *Ledger) Cure(kind StatusKind) {
	kept := l.effects[:0]
	for _, e := range l.effects {
		if e.Kind != kind {
			kept = append(kept, e)
		}
	}
	l.effects = kept
}

// Active returns a copy of the active effects.
func (l *Ledger) Active() []ActiveEffect {
	return append([]ActiveEffect(nil), l.effects...)
}

func (l *Ledger) Clear() { l.effects = l.effects[:0] }

// Immobilized reports whether movement and attack selection are suppressed.
func (l *Ledger) Immobilized() bool {
	return l.Has(Stun) || l.Has(Freeze)
}

func (l *Ledger) Silenced() bool { return l.Has(Silence) }

// SpeedFactor is the movement multiplier from slow and haste.
func (l *Ledger) SpeedFactor() float64 {
	f := 1.0
	if e, ok := l.Get(Slow); ok {
		f *= 1 - min(e.Magnitude, 1)
	}
	if e, ok := l.Get(Haste); ok {
		f *= 1 + e.Magnitude
	}
	return max(f, 0)
}
