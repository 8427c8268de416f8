package audio

import (
	"math"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/slowmo/clock"
	"github.com/lixenwraith/slowmo/event"
	"github.com/lixenwraith/slowmo/parameter"
)

// SoundManager plays the slow-motion soundscape
// All operations are safe without an audio device; they become no-ops
type SoundManager struct {
	mu          sync.Mutex
	cfg         *AudioConfig
	sr          beep.SampleRate
	mixer       *beep.Mixer
	master      *effects.Volume
	hum         *beep.Resampler
	humCtrl     *beep.Ctrl
	ratio       float64
	requested   [soundTypeCount]int
	initialized bool
}

// NewSoundManager creates a new sound manager, cfg nil uses defaults
func NewSoundManager(cfg *AudioConfig) *SoundManager {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &SoundManager{
		cfg:   cfg,
		sr:    beep.SampleRate(cfg.SampleRate),
		mixer: &beep.Mixer{},
		ratio: parameter.NeutralRate,
	}
}

// Initialize opens the speaker and starts the paused hum
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if !sm.cfg.Enabled {
		return ErrAudioDisabled
	}

	err := speaker.Init(sm.sr, sm.sr.N(parameter.AudioBufferDuration))
	if err != nil {
		return err
	}

	sm.hum = beep.ResampleRatio(parameter.AudioResampleQuality, sm.ratio, NewHumGenerator(sm.sr, parameter.HumFrequency))
	sm.humCtrl = &beep.Ctrl{Streamer: sm.hum, Paused: sm.ratio >= parameter.NeutralRate}
	sm.mixer.Add(sm.humCtrl)

	sm.master = volumeFor(sm.mixer, sm.cfg.MasterVolume)
	speaker.Play(sm.master)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.humCtrl.Paused = true
	sm.mixer.Clear()
	speaker.Unlock()

	// beep has no speaker teardown that allows re-Init; clearing the mixer silences output
	sm.initialized = false
}

// Sync bends the hum pitch to the current simulation rate; call once per frame
func (sm *SoundManager) Sync(rate clock.RateSource) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ratio := min(max(rate.Rate(), parameter.AudioMinRatio), parameter.NeutralRate)
	if ratio == sm.ratio {
		return
	}
	sm.ratio = ratio

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.hum.SetRatio(ratio)
	sm.humCtrl.Paused = ratio >= parameter.NeutralRate
	speaker.Unlock()
}

// Ratio returns the last resample ratio applied by Sync
func (sm *SoundManager) Ratio() float64 {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.ratio
}

// Play queues a one-shot effect
func (sm *SoundManager) Play(st SoundType) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if st < 0 || st >= soundTypeCount {
		return
	}
	sm.requested[st]++

	if !sm.initialized {
		return
	}

	var s beep.Streamer
	switch st {
	case SoundWhoosh:
		s = NewWhooshGenerator(sm.sr, parameter.WhooshDuration)
	case SoundChime:
		s = NewChimeGenerator(sm.sr, parameter.ChimeFrequency, parameter.ChimeDuration)
	}

	vol, ok := sm.cfg.EffectVolumes[st]
	if !ok {
		vol = 1.0
	}

	speaker.Lock()
	sm.mixer.Add(volumeFor(s, vol))
	speaker.Unlock()
}

// Requested returns how many times st was asked to play, device or not
func (sm *SoundManager) Requested(st SoundType) int {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if st < 0 || st >= soundTypeCount {
		return 0
	}
	return sm.requested[st]
}

// EventTypes implements event.Handler
func (sm *SoundManager) EventTypes() []event.EventType {
	return []event.EventType{event.EventDilationStarted, event.EventDilationRecovered}
}

// HandleEvent implements event.Handler
func (sm *SoundManager) HandleEvent(ev event.GameEvent) {
	switch ev.Type {
	case event.EventDilationStarted:
		sm.Play(SoundWhoosh)
	case event.EventDilationRecovered:
		sm.Play(SoundChime)
	}
}

// volumeFor maps linear gain 0.0-1.0 onto beep's exponential volume
func volumeFor(s beep.Streamer, gain float64) *effects.Volume {
	v := &effects.Volume{Streamer: s, Base: 2}
	if gain <= 0 {
		v.Silent = true
		return v
	}
	v.Volume = math.Log2(gain)
	return v
}
