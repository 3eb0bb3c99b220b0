package main

import (
	"errors"
	"sync"
	"testing"

	"github.com/lixenwraith/sisyphus/event"
	"github.com/lixenwraith/sisyphus/sim"
	"github.com/lixenwraith/sisyphus/status"
)

type memStore struct {
	mu    sync.Mutex
	saves []sim.ProgressionSnapshot
	err   error
}

func (m *memStore) Save(ps sim.ProgressionSnapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saves = append(m.saves, ps)
	return nil
}

func (m *memStore) Load() (*sim.ProgressionSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.saves) == 0 {
		return nil, nil
	}
	ps := m.saves[len(m.saves)-1]
	return &ps, nil
}

func level(n int) sim.ProgressionSnapshot {
	return sim.ProgressionSnapshot{Level: &n}
}

// TestSaverFinalWins verifies the final snapshot is the last one written
func TestSaverFinalWins(t *testing.T) {
	store := &memStore{}
	reg := status.NewRegistry()
	s := newSaver(store, reg)

	s.queue(level(2))
	s.queue(level(3))
	final := level(9)
	s.close(&final)

	got, _ := store.Load()
	if got == nil || *got.Level != 9 {
		t.Fatalf("Expected final level 9 saved last, got %+v", got)
	}
	if n := reg.Ints.Get("store.saves").Load(); n < 2 {
		t.Errorf("Expected at least 2 saves, got %d", n)
	}
}

func TestSaverCountsFailures(t *testing.T) {
	store := &memStore{err: errors.New("disk full")}
	reg := status.NewRegistry()
	s := newSaver(store, reg)
	s.close(&sim.ProgressionSnapshot{})

	if n := reg.Ints.Get("store.failed").Load(); n != 1 {
		t.Errorf("Expected 1 failure, got %d", n)
	}
}

// TestSaverHandlerTypes verifies progress events are subscribed and sound cues are not
func TestSaverHandlerTypes(t *testing.T) {
	s := newSaver(&memStore{}, status.NewRegistry())
	defer s.close(nil)

	h := s.handler(sim.New(sim.DefaultConfig(), sim.NewRand(1)))
	types := map[event.EventType]bool{}
	for _, tt := range h.EventTypes() {
		types[tt] = true
	}
	for _, want := range []event.EventType{event.EventLevelUp, event.EventPersonalBest, event.EventResetAll} {
		if !types[want] {
			t.Errorf("Expected %s subscribed", want)
		}
	}
	if types[event.EventSoundCue] {
		t.Error("Expected sound cues not subscribed")
	}
}
