package audio

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/sisyphus/event"
	"github.com/lixenwraith/sisyphus/parameter"
)

// sweep is a sawtooth oscillator gliding linearly from one frequency to another
type sweep struct {
	from, to float64
	phase    float64
	duration int
	position int
	rate     beep.SampleRate
}

// NewSweep creates a sawtooth that glides from→to over duration
func NewSweep(from, to float64, duration time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sweep{
		from:     from,
		to:       to,
		duration: rate.N(duration),
		rate:     rate,
	}
}

func (o *sweep) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		val := 2.0 * (o.phase - 0.5)
		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.from + (o.to-o.from)*progress
		o.phase += freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *sweep) Err() error { return nil }

// envelope applies a linear attack and a quadratic release to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope shapes s over duration: attack ramps up, release ramps down to the end
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	if e.position >= e.totalSamples {
		return 0, false
	}
	if remaining := e.totalSamples - e.position; len(samples) > remaining {
		samples = samples[:remaining]
	}
	n, ok = e.streamer.Stream(samples)

	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		vol := 1.0
		if e.attackSamples > 0 && e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.releaseSamples > 0 && e.position >= releaseStart {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			vol *= vol
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales a stream linearly
// math.Log2(0) is -Inf, so zero volume is handled as silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateChime builds the positive cue: a C-E-G triad, each note entering one stagger after the previous
func CreateChime(cfg *Config) (beep.Streamer, error) {
	rate := beep.SampleRate(cfg.SampleRate)
	notes := make([]beep.Streamer, 0, len(parameter.ChimeFrequencies))

	for i, freq := range parameter.ChimeFrequencies {
		sine, err := generators.SineTone(rate, freq)
		if err != nil {
			return nil, fmt.Errorf("chime note %.2f Hz: %w", freq, err)
		}
		note := NewEnvelope(sine, parameter.ChimeDuration, 10*time.Millisecond, parameter.ChimeDuration-10*time.Millisecond, rate)
		delay := beep.Silence(rate.N(time.Duration(i) * parameter.ChimeStagger))
		notes = append(notes, beep.Seq(delay, newVolume(note, 1.0/float64(len(parameter.ChimeFrequencies)))))
	}

	return newVolume(beep.Mix(notes...), cfg.CueVolume), nil
}

// CreateBuzz builds the negative cue: a falling sawtooth
func CreateBuzz(cfg *Config) beep.Streamer {
	rate := beep.SampleRate(cfg.SampleRate)
	saw := NewSweep(parameter.BuzzStartFreq, parameter.BuzzEndFreq, parameter.BuzzDuration, rate)
	shaped := NewEnvelope(saw, parameter.BuzzDuration, 5*time.Millisecond, parameter.BuzzDuration/2, rate)
	// Sawtooth is loud at equal amplitude, keep it under the chime
	return newVolume(shaped, cfg.CueVolume*0.5)
}

// CueStreamer returns the streamer for a cue, nil for CueNone
func CueStreamer(cue event.Cue, cfg *Config) (beep.Streamer, error) {
	switch cue {
	case event.CuePositive:
		return CreateChime(cfg)
	case event.CueNegative:
		return CreateBuzz(cfg), nil
	default:
		return nil, nil
	}
}
