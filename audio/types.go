package audio

import (
	"errors"
	"time"

	"github.com/lixenwraith/sisyphus/parameter"
)

// Config holds audio output settings
type Config struct {
	Enabled        bool
	SampleRate     int
	BufferDuration time.Duration
	CueVolume      float64
	ToneVolume     float64
}

// DefaultConfig returns an enabled configuration at the shipped volumes
func DefaultConfig() *Config {
	return &Config{
		Enabled:        true,
		SampleRate:     parameter.AudioSampleRate,
		BufferDuration: parameter.AudioBufferDuration,
		CueVolume:      parameter.CueVolume,
		ToneVolume:     parameter.ToneVolume,
	}
}

// Sentinel errors
var (
	ErrAudioDisabled  = errors.New("audio disabled")
	ErrNotInitialized = errors.New("audio player not initialized")
)
