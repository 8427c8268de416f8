package event

import (
	"time"

	"github.com/lixenwraith/slowmo/core"
)

// ZonePayload describes a body crossing a zone boundary
type ZonePayload struct {
	Zone string
	Body core.BodyID
}

// PhasePayload describes a dilation phase transition
type PhasePayload struct {
	Sequence string        // xid of the dilation sequence
	Stage    string        // Sequencer stage after the transition
	Rate     float64       // Register value at the transition
	Wall     time.Duration // Controller wall-clock time at the transition
}
