package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// AudioResampleQuality is the beep resampler interpolation quality (1-64)
	AudioResampleQuality = 4

	// AudioMinRatio keeps the resampler ratio strictly positive
	AudioMinRatio = 0.01
)

// Sound Design
const (
	// HumFrequency is the ambient drone base frequency, pitched by the simulation rate
	HumFrequency = 110.0

	// WhooshDuration is the descending sweep played when a sequence starts
	WhooshDuration = 450 * time.Millisecond

	// ChimeDuration is the bell played when the rate is back to neutral
	ChimeDuration = 300 * time.Millisecond

	// ChimeFrequency is the chime base frequency
	ChimeFrequency = 880.0
)
