package event

// EventType represents the type of event
type EventType int

const (
	// === Zone Event ===

	// EventZoneEnter signals a body crossed into a trigger zone
	// Trigger: zone.Trigger after a physics step | Consumer: dilation.Controller
	// Payload: *ZonePayload
	EventZoneEnter EventType = iota + 1

	// EventZoneExit signals a body left a trigger zone
	// Trigger: zone.Trigger after a physics step | Consumer: diagnostics
	// Payload: *ZonePayload
	EventZoneExit

	// === Dilation Diagnostics ===
	// Advisory only, emitted at most once per transition

	// EventDilationStarted signals an accepted trigger and the start of ramp-down
	// Consumer: audio.SoundManager, trace.Recorder | Payload: *PhasePayload
	EventDilationStarted EventType = iota + 100

	// EventDilationHeld signals the rate reached the target factor
	// Consumer: trace.Recorder | Payload: *PhasePayload
	EventDilationHeld

	// EventDilationRecovering signals hold expiry and hand-off to the recovery driver
	// Consumer: trace.Recorder | Payload: *PhasePayload
	EventDilationRecovering

	// EventDilationRecovered signals the rate returned to neutral
	// Consumer: audio.SoundManager, trace.Recorder | Payload: *PhasePayload
	EventDilationRecovered

	// EventCooldownCleared signals the controller is eligible again
	// Consumer: trace.Recorder | Payload: *PhasePayload
	EventCooldownCleared

	// EventDilationAborted signals teardown interrupted an in-flight sequence
	// Consumer: trace.Recorder | Payload: *PhasePayload
	EventDilationAborted
)

var eventTypeNames = map[EventType]string{
	EventZoneEnter:          "zone_enter",
	EventZoneExit:           "zone_exit",
	EventDilationStarted:    "dilation_started",
	EventDilationHeld:       "dilation_held",
	EventDilationRecovering: "dilation_recovering",
	EventDilationRecovered:  "dilation_recovered",
	EventCooldownCleared:    "cooldown_cleared",
	EventDilationAborted:    "dilation_aborted",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// DiagnosticTypes lists the phase transition notifications
func DiagnosticTypes() []EventType {
	return []EventType{
		EventDilationStarted,
		EventDilationHeld,
		EventDilationRecovering,
		EventDilationRecovered,
		EventCooldownCleared,
		EventDilationAborted,
	}
}

// GameEvent is an event with its payload and the frame it was pushed on
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
