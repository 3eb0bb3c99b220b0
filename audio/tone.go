package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/sisyphus/parameter"
)

// ToneFrequency maps height to the pitch of the climbing tone
func ToneFrequency(height float64) float64 {
	return math.Min(parameter.ToneMaxFrequency, parameter.ToneBaseFrequency+height*parameter.ToneHeightScale)
}

// toneStreamer is an endless sine whose frequency can be changed from any goroutine
// Phase is continuous across changes so retuning does not click
type toneStreamer struct {
	freqBits atomic.Uint64
	phase    float64
	rate     beep.SampleRate
}

func newToneStreamer(rate beep.SampleRate) *toneStreamer {
	t := &toneStreamer{rate: rate}
	t.SetFrequency(parameter.ToneBaseFrequency)
	return t
}

// SetFrequency retunes the tone
func (t *toneStreamer) SetFrequency(freq float64) {
	t.freqBits.Store(math.Float64bits(freq))
}

// Frequency returns the current pitch
func (t *toneStreamer) Frequency() float64 {
	return math.Float64frombits(t.freqBits.Load())
}

func (t *toneStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	step := t.Frequency() / float64(t.rate)
	for i := range samples {
		val := math.Sin(2 * math.Pi * t.phase)
		samples[i][0] = val
		samples[i][1] = val
		t.phase += step
		t.phase -= math.Floor(t.phase)
	}
	return len(samples), true
}

func (t *toneStreamer) Err() error { return nil }
