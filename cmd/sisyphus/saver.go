package main

import (
	"log"
	"sync/atomic"

	"github.com/lixenwraith/sisyphus/core"
	"github.com/lixenwraith/sisyphus/event"
	"github.com/lixenwraith/sisyphus/sim"
	"github.com/lixenwraith/sisyphus/status"
)

// progressTypes are the events after which progression is worth writing
var progressTypes = []event.EventType{
	event.EventRunStarted,
	event.EventPersonalBest,
	event.EventLevelUp,
	event.EventUpgradeMitigation,
	event.EventUpgradeSpeed,
	event.EventUnlock,
	event.EventResetAll,
}

// saver writes progression off the loop goroutine; only the newest pending snapshot is kept
type saver struct {
	store   sim.Store
	pending chan sim.ProgressionSnapshot
	done    chan struct{}

	statSaves  *atomic.Int64
	statFailed *atomic.Int64
}

func newSaver(store sim.Store, reg *status.Registry) *saver {
	s := &saver{
		store:      store,
		pending:    make(chan sim.ProgressionSnapshot, 1),
		done:       make(chan struct{}),
		statSaves:  reg.Ints.Get("store.saves"),
		statFailed: reg.Ints.Get("store.failed"),
	}
	core.Go(s.run)
	return s
}

// queue replaces any unsaved snapshot with ps; single producer
func (s *saver) queue(ps sim.ProgressionSnapshot) {
	select {
	case s.pending <- ps:
		return
	default:
	}
	select {
	case <-s.pending:
	default:
	}
	select {
	case s.pending <- ps:
	default:
	}
}

// handler saves the simulation's progression after progress events
// It runs on the loop goroutine, so reading the simulation is safe
func (s *saver) handler(sm *sim.Simulation) event.Handler {
	return event.HandlerFunc{
		Types: progressTypes,
		Fn: func(event.GameEvent) {
			s.queue(sm.Progression())
		},
	}
}

// close drains pending writes, then saves final when given
func (s *saver) close(final *sim.ProgressionSnapshot) {
	close(s.pending)
	<-s.done
	if final != nil {
		s.save(*final)
	}
}

func (s *saver) run() {
	defer close(s.done)
	for ps := range s.pending {
		s.save(ps)
	}
}

func (s *saver) save(ps sim.ProgressionSnapshot) {
	if err := s.store.Save(ps); err != nil {
		s.statFailed.Add(1)
		log.Printf("store: save progression: %v", err)
		return
	}
	s.statSaves.Add(1)
}
