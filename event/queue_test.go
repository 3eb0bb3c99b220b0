package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/sisyphus/parameter"
)

// TestEventQueueBasic tests basic push and consume operations
func TestEventQueueBasic(t *testing.T) {
	eq := NewEventQueue()

	eq.Push(GameEvent{Type: EventRunStarted, Index: 1, Tick: 1})
	eq.Push(GameEvent{Type: EventLevelUp, Value: 2, Tick: 2})
	eq.Push(GameEvent{Type: EventSoundCue, Cue: CuePositive, Tick: 3})

	if eq.Len() != 3 {
		t.Errorf("Expected length 3, got %d", eq.Len())
	}

	events := eq.Consume()
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(events))
	}
	if events[0].Type != EventRunStarted || events[1].Type != EventLevelUp || events[2].Cue != CuePositive {
		t.Errorf("Expected FIFO order, got %+v", events)
	}

	if events2 := eq.Consume(); len(events2) != 0 {
		t.Errorf("Expected 0 events on second consume, got %d", len(events2))
	}
}

// TestEventQueueConcurrent tests concurrent push operations from multiple goroutines
func TestEventQueueConcurrent(t *testing.T) {
	eq := NewEventQueue()
	numGoroutines := 10
	eventsPerGoroutine := 10

	var wg sync.WaitGroup
	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < eventsPerGoroutine; j++ {
				eq.Push(GameEvent{Type: EventMilestone, Index: id*100 + j})
			}
		}(i)
	}
	wg.Wait()

	events := eq.Consume()
	if len(events) != numGoroutines*eventsPerGoroutine {
		t.Fatalf("Expected %d events, got %d", numGoroutines*eventsPerGoroutine, len(events))
	}
	seen := make(map[int]bool)
	for _, ev := range events {
		if seen[ev.Index] {
			t.Errorf("Duplicate index found: %d", ev.Index)
		}
		seen[ev.Index] = true
	}
}

// TestEventQueueOverflow tests that the oldest events are evicted when full
func TestEventQueueOverflow(t *testing.T) {
	eq := NewEventQueue()
	total := parameter.EventQueueSize + 10
	for i := 0; i < total; i++ {
		eq.Push(GameEvent{Type: EventMilestone, Index: i})
	}

	events := eq.Consume()
	if len(events) != parameter.EventQueueSize {
		t.Fatalf("Expected %d events, got %d", parameter.EventQueueSize, len(events))
	}
	if events[0].Index != 10 {
		t.Errorf("Expected oldest surviving index 10, got %d", events[0].Index)
	}
	if events[len(events)-1].Index != total-1 {
		t.Errorf("Expected newest index %d, got %d", total-1, events[len(events)-1].Index)
	}
	if eq.Dropped() != 10 {
		t.Errorf("Expected 10 dropped, got %d", eq.Dropped())
	}
}

func TestEventQueueWrapAfterConsume(t *testing.T) {
	eq := NewEventQueue()
	for round := 0; round < 3; round++ {
		for i := 0; i < parameter.EventQueueSize-1; i++ {
			eq.Push(GameEvent{Index: round*1000 + i})
		}
		events := eq.Consume()
		if len(events) != parameter.EventQueueSize-1 {
			t.Fatalf("Round %d: expected %d events, got %d", round, parameter.EventQueueSize-1, len(events))
		}
		if events[0].Index != round*1000 {
			t.Errorf("Round %d: expected first index %d, got %d", round, round*1000, events[0].Index)
		}
	}
	if eq.Dropped() != 0 {
		t.Errorf("Expected nothing dropped, got %d", eq.Dropped())
	}
}
