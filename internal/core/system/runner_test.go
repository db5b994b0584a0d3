package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recorder struct {
	phase Phase
	name  string
	log   *[]string
}

func (r recorder) Phase() Phase { return r.phase }

func (r recorder) Update(time.Duration) { *r.log = append(*r.log, r.name) }

func TestRunnerOrdersByPhaseThenRegistration(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(
		recorder{PhaseAI, "ai", &log},
		recorder{PhaseStatus, "status", &log},
		recorder{PhaseCombat, "strike", &log},
		recorder{PhaseCombat, "contact", &log},
		recorder{PhaseInput, "input", &log},
	)
	r.Tick(time.Millisecond)
	assert.Equal(t, []string{"input", "status", "strike", "contact", "ai"}, log)
	assert.Equal(t, 5, r.Len())
}

func TestTickPhase(t *testing.T) {
	var log []string
	r := NewRunner()
	r.Register(recorder{PhaseAI, "ai", &log}, recorder{PhaseOutput, "out", &log})
	r.TickPhase(PhaseOutput, 0)
	assert.Equal(t, []string{"out"}, log)
	assert.Equal(t, "output", PhaseOutput.String())
}
