package audio

import (
	"errors"
	"testing"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

// TestDefaultAudioConfig verifies default configuration
func TestDefaultAudioConfig(t *testing.T) {
	cfg := DefaultAudioConfig()

	if !cfg.Enabled {
		t.Error("Expected default config to have Enabled=true")
	}
	if cfg.MasterVolume != 0.5 {
		t.Errorf("Expected default master volume 0.5, got %f", cfg.MasterVolume)
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("Expected default sample rate 44100, got %d", cfg.SampleRate)
	}
	for st := SoundType(0); st < soundTypeCount; st++ {
		if _, ok := cfg.EffectVolumes[st]; !ok {
			t.Errorf("Expected volume for %s to be set", st)
		}
	}
}

// TestLoadAudioConfigDefaults verifies loading with no env vars
func TestLoadAudioConfigDefaults(t *testing.T) {
	cfg, err := LoadAudioConfig(envMap(nil))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !cfg.Enabled || cfg.MasterVolume != 0.5 {
		t.Errorf("Expected defaults, got %+v", cfg)
	}
}

func TestLoadAudioConfigOverrides(t *testing.T) {
	cfg, err := LoadAudioConfig(envMap(map[string]string{
		"SLOWMO_AUDIO_ENABLED": "false",
		"SLOWMO_MASTER_VOLUME": "80",
		"SLOWMO_SFX_VOLUMES":   `{"chime": 0.25}`,
		"SLOWMO_SAMPLE_RATE":   "48000",
	}))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Enabled {
		t.Error("Expected audio disabled")
	}
	if cfg.MasterVolume != 0.8 {
		t.Errorf("Expected master volume 0.8, got %f", cfg.MasterVolume)
	}
	if cfg.EffectVolumes[SoundChime] != 0.25 {
		t.Errorf("Expected chime volume 0.25, got %f", cfg.EffectVolumes[SoundChime])
	}
	if cfg.EffectVolumes[SoundWhoosh] != 0.6 {
		t.Errorf("Expected whoosh volume untouched, got %f", cfg.EffectVolumes[SoundWhoosh])
	}
	if cfg.SampleRate != 48000 {
		t.Errorf("Expected sample rate 48000, got %d", cfg.SampleRate)
	}
}

func TestLoadAudioConfigVolumeClamped(t *testing.T) {
	for in, want := range map[string]float64{"150": 1, "-20": 0, "0": 0} {
		cfg, err := LoadAudioConfig(envMap(map[string]string{"SLOWMO_MASTER_VOLUME": in}))
		if err != nil {
			t.Fatalf("Unexpected error for %q: %v", in, err)
		}
		if cfg.MasterVolume != want {
			t.Errorf("Volume %q: expected %f, got %f", in, want, cfg.MasterVolume)
		}
	}
}

func TestLoadAudioConfigRejectsMalformed(t *testing.T) {
	for key, val := range map[string]string{
		"SLOWMO_AUDIO_ENABLED": "maybe",
		"SLOWMO_MASTER_VOLUME": "loud",
		"SLOWMO_SFX_VOLUMES":   "{",
		"SLOWMO_SAMPLE_RATE":   "0",
	} {
		_, err := LoadAudioConfig(envMap(map[string]string{key: val}))
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s=%q: expected ErrInvalidConfig, got %v", key, val, err)
		}
	}
}
