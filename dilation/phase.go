package dilation

// Stage is the phase sequencer position
type Stage int

const (
	StageIdle Stage = iota
	StageRampDown
	StageHold
	StageCooldown
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageRampDown:
		return "ramp-down"
	case StageHold:
		return "hold"
	case StageCooldown:
		return "cooldown"
	default:
		return "unknown"
	}
}

// Phase is the logical controller phase derived from the two flags
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseCooldownOnly
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseCooldownOnly:
		return "cooldown-only"
	default:
		return "unknown"
	}
}

// State holds the gate flags
// InDilation implies OnCooldown: both are raised together and cooldown outlives dilation
type State struct {
	InDilation bool
	OnCooldown bool
}

// Phase derives the logical phase
func (s State) Phase() Phase {
	switch {
	case s.InDilation:
		return PhaseActive
	case s.OnCooldown:
		return PhaseCooldownOnly
	default:
		return PhaseIdle
	}
}
