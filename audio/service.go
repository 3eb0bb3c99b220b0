package audio

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/sisyphus/event"
	"github.com/lixenwraith/sisyphus/status"
)

// AudioService wraps Player as a Service and an event handler
// Handles graceful degradation when no audio device is available
type AudioService struct {
	player   *Player
	disabled atomic.Bool

	statEnabled *atomic.Bool
	statCues    *atomic.Int64
}

// NewService creates a new audio service reporting into reg
func NewService(reg *status.Registry) *AudioService {
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &AudioService{
		statEnabled: reg.Bools.Get("audio.enabled"),
		statCues:    reg.Ints.Get("audio.cues"),
	}
}

// Name implements Service
func (s *AudioService) Name() string {
	return "audio"
}

// Dependencies implements Service
func (s *AudioService) Dependencies() []string {
	return nil
}

// Init implements Service
// args[0]: bool - initial mute state (true = muted)
// A muted start still opens the device so the player can be unmuted later
func (s *AudioService) Init(args ...any) error {
	cfg := DefaultConfig()
	muted := false
	if len(args) > 0 {
		if m, ok := args[0].(bool); ok {
			muted = m
		}
	}
	s.player = NewPlayer(cfg)
	s.player.SetMuted(muted)
	return nil
}

// Start implements Service
// Opens the speaker; sets disabled on failure (no error returned)
func (s *AudioService) Start() error {
	if s.disabled.Load() || s.player == nil {
		return nil
	}
	if err := s.player.Initialize(); err != nil {
		log.Printf("audio: %v (continuing without audio)", err)
		s.disabled.Store(true)
		return nil
	}
	s.statEnabled.Store(true)
	return nil
}

// Stop implements Service
func (s *AudioService) Stop() error {
	if s.player != nil {
		s.player.Cleanup()
	}
	s.statEnabled.Store(false)
	return nil
}

// IsDisabled returns true if audio is unavailable
func (s *AudioService) IsDisabled() bool {
	return s.disabled.Load()
}

// Player returns the underlying player, nil if disabled
func (s *AudioService) Player() (*Player, error) {
	if s.disabled.Load() || s.player == nil {
		return nil, ErrAudioDisabled
	}
	return s.player, nil
}

// HandleEvent implements event.Handler
func (s *AudioService) HandleEvent(ev event.GameEvent) {
	p, err := s.Player()
	if err != nil {
		return
	}
	if p.Play(ev.Cue) {
		s.statCues.Add(1)
	}
}

// EventTypes implements event.Handler
func (s *AudioService) EventTypes() []event.EventType {
	return []event.EventType{event.EventSoundCue}
}

// Track follows the climb with the height tone
func (s *AudioService) Track(height float64, climbing bool) {
	if p, err := s.Player(); err == nil {
		p.UpdateTone(height, climbing)
	}
}

// ToggleMute flips mute, returns the new state; always muted when disabled
func (s *AudioService) ToggleMute() bool {
	p, err := s.Player()
	if err != nil {
		return true
	}
	return p.ToggleMute()
}
