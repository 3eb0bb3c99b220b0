package parameter

import "time"

// Audio Output
const (
	// AudioSampleRate is the speaker sample rate in Hz
	AudioSampleRate = 44100

	// AudioBufferDuration is the speaker buffer length
	AudioBufferDuration = 100 * time.Millisecond

	// CueVolume scales one-shot cue amplitude
	CueVolume = 0.7

	// ToneVolume scales the continuous height tone
	ToneVolume = 0.08
)

// Height Tone
const (
	ToneBaseFrequency = 200.0
	ToneHeightScale   = 0.5
	ToneMaxFrequency  = 2000.0
)

// Cue shapes
const (
	ChimeDuration = 300 * time.Millisecond
	ChimeStagger  = 50 * time.Millisecond
	BuzzDuration  = 200 * time.Millisecond
	BuzzStartFreq = 400.0
	BuzzEndFreq   = 150.0
)

// ChimeFrequencies is the C-E-G triad of the positive cue
var ChimeFrequencies = [...]float64{523.25, 659.25, 783.99}
