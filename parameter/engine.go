package parameter

import "time"

// Host Loop Timing
const (
	// FrameUpdateInterval is the host frame interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxPhysicsStepsPerFrame caps fixed steps run in one frame; excess accumulated time is dropped
	MaxPhysicsStepsPerFrame = 8

	// MaxFrameDelta clamps a single wall-clock delta fed to the loop (debugger stalls, suspend)
	MaxFrameDelta = 250 * time.Millisecond
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)
