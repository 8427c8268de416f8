package audio

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/lixenwraith/slowmo/parameter"
)

// AudioConfig holds audio settings
type AudioConfig struct {
	Enabled       bool
	MasterVolume  float64 // 0.0-1.0
	SampleRate    int
	EffectVolumes map[SoundType]float64
}

// DefaultAudioConfig returns the default audio settings
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:      true,
		MasterVolume: 0.5,
		SampleRate:   parameter.AudioSampleRate,
		EffectVolumes: map[SoundType]float64{
			SoundWhoosh: 0.6,
			SoundChime:  1.0,
		},
	}
}

// LoadAudioConfig reads SLOWMO_* audio variables through getenv over the defaults
// Malformed values are returned as errors wrapping ErrInvalidConfig
func LoadAudioConfig(getenv func(string) string) (*AudioConfig, error) {
	cfg := DefaultAudioConfig()

	if enabled := getenv("SLOWMO_AUDIO_ENABLED"); enabled != "" {
		val, err := strconv.ParseBool(enabled)
		if err != nil {
			return nil, fmt.Errorf("%w: SLOWMO_AUDIO_ENABLED=%q", ErrInvalidConfig, enabled)
		}
		cfg.Enabled = val
	}

	// Master volume is 0-100 converted to 0.0-1.0
	if volume := getenv("SLOWMO_MASTER_VOLUME"); volume != "" {
		val, err := strconv.Atoi(volume)
		if err != nil {
			return nil, fmt.Errorf("%w: SLOWMO_MASTER_VOLUME=%q", ErrInvalidConfig, volume)
		}
		cfg.MasterVolume = min(max(float64(val)/100.0, 0), 1)
	}

	if effectVols := getenv("SLOWMO_SFX_VOLUMES"); effectVols != "" {
		var volumes map[string]float64
		if err := json.Unmarshal([]byte(effectVols), &volumes); err != nil {
			return nil, fmt.Errorf("%w: SLOWMO_SFX_VOLUMES: %v", ErrInvalidConfig, err)
		}
		for st := SoundType(0); st < soundTypeCount; st++ {
			if v, ok := volumes[st.String()]; ok {
				cfg.EffectVolumes[st] = v
			}
		}
	}

	if sampleRate := getenv("SLOWMO_SAMPLE_RATE"); sampleRate != "" {
		val, err := strconv.Atoi(sampleRate)
		if err != nil || val <= 0 {
			return nil, fmt.Errorf("%w: SLOWMO_SAMPLE_RATE=%q", ErrInvalidConfig, sampleRate)
		}
		cfg.SampleRate = val
	}

	return cfg, nil
}
