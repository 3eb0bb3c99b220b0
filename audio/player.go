package audio

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/sisyphus/event"
)

// Player owns the speaker: one mixer carrying the height tone and any one-shot cues
// All methods are safe to call before Initialize or after Cleanup, they do nothing
type Player struct {
	mu          sync.Mutex
	cfg         *Config
	mixer       *beep.Mixer
	tone        *toneStreamer
	toneCtrl    *beep.Ctrl
	initialized bool
	muted       atomic.Bool
	played      atomic.Int64
}

// NewPlayer creates a player for cfg; the speaker is not touched until Initialize
func NewPlayer(cfg *Config) *Player {
	rate := beep.SampleRate(cfg.SampleRate)
	tone := newToneStreamer(rate)
	return &Player{
		cfg:      cfg,
		mixer:    &beep.Mixer{},
		tone:     tone,
		toneCtrl: &beep.Ctrl{Streamer: newVolume(tone, cfg.ToneVolume), Paused: true},
	}
}

// Initialize opens the speaker and starts the mixer
func (p *Player) Initialize() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	rate := beep.SampleRate(p.cfg.SampleRate)
	if err := speaker.Init(rate, rate.N(p.cfg.BufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}

	p.mixer.Add(p.toneCtrl)
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Cleanup silences everything and detaches the mixer
func (p *Player) Cleanup() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	speaker.Lock()
	p.toneCtrl.Paused = true
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()

	p.initialized = false
}

// Play mixes in a one-shot cue, returns false when nothing was played
func (p *Player) Play(cue event.Cue) bool {
	if p.muted.Load() {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return false
	}

	streamer, err := CueStreamer(cue, p.cfg)
	if err != nil || streamer == nil {
		return false
	}

	speaker.Lock()
	p.mixer.Add(streamer)
	speaker.Unlock()
	p.played.Add(1)
	return true
}

// UpdateTone tracks height while the run climbs and silences the tone otherwise
func (p *Player) UpdateTone(height float64, climbing bool) {
	p.tone.SetFrequency(ToneFrequency(height))

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}

	paused := !climbing || height <= 0 || p.muted.Load()
	speaker.Lock()
	p.toneCtrl.Paused = paused
	speaker.Unlock()
}

// ToggleMute flips the mute state and returns the new state
func (p *Player) ToggleMute() bool {
	for {
		old := p.muted.Load()
		if p.muted.CompareAndSwap(old, !old) {
			if !old {
				p.pauseTone()
			}
			return !old
		}
	}
}

// SetMuted forces the mute state
func (p *Player) SetMuted(muted bool) {
	p.muted.Store(muted)
	if muted {
		p.pauseTone()
	}
}

func (p *Player) pauseTone() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.initialized {
		return
	}
	speaker.Lock()
	p.toneCtrl.Paused = true
	speaker.Unlock()
}

// IsMuted reports the mute state
func (p *Player) IsMuted() bool {
	return p.muted.Load()
}

// IsRunning reports whether the speaker is open
func (p *Player) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Played returns the number of cues mixed in so far
func (p *Player) Played() int64 {
	return p.played.Load()
}
