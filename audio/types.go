package audio

import (
	"errors"
)

// SoundType represents different sound effects
type SoundType int

const (
	SoundWhoosh SoundType = iota // Slow motion starting
	SoundChime                   // Rate back to neutral
	soundTypeCount
)

func (s SoundType) String() string {
	switch s {
	case SoundWhoosh:
		return "whoosh"
	case SoundChime:
		return "chime"
	default:
		return "unknown"
	}
}

// Sentinel errors
var (
	ErrAudioDisabled = errors.New("audio disabled by configuration")
	ErrInvalidConfig = errors.New("invalid audio configuration")
)
