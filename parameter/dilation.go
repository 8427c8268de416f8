package parameter

import "time"

// NeutralRate is the simulation rate at which simulated time matches wall-clock time
const NeutralRate = 1.0

// Time Dilation Defaults
const (
	// DilationTargetFactor is the rate held during slow motion (15% speed)
	DilationTargetFactor = 0.15

	// DilationHold is how long the target factor is held, in wall-clock time
	DilationHold = 2500 * time.Millisecond

	// DilationRecoverySpeed is rate units restored per wall-clock second after hold
	DilationRecoverySpeed = 5.0

	// DilationCooldown is the wall-clock interval after hold before a new sequence may start
	DilationCooldown = 4 * time.Second

	// DilationRampIn is the fast initial descent toward the target factor
	DilationRampIn = 100 * time.Millisecond

	// BaseFixedStep is the physics step at neutral rate (50 Hz)
	BaseFixedStep = 20 * time.Millisecond
)
