package event

import (
	"sync"

	"github.com/lixenwraith/sisyphus/parameter"
)

// EventQueue buffers events between a simulation step and the loop's dispatch
// Bounded at parameter.EventQueueSize; on overflow the oldest pending event is lost
// and counted, so a runaway producer cannot grow memory between drains
type EventQueue struct {
	mu      sync.Mutex
	ring    [parameter.EventQueueSize]GameEvent
	start   int
	count   int
	dropped uint64
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends ev, evicting the oldest pending event when full
func (eq *EventQueue) Push(ev GameEvent) {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	end := (eq.start + eq.count) & parameter.EventBufferMask
	eq.ring[end] = ev
	if eq.count < parameter.EventQueueSize {
		eq.count++
		return
	}
	eq.start = (eq.start + 1) & parameter.EventBufferMask
	eq.dropped++
}

// Consume returns pending events oldest first and empties the queue, nil when empty
func (eq *EventQueue) Consume() []GameEvent {
	eq.mu.Lock()
	defer eq.mu.Unlock()

	if eq.count == 0 {
		return nil
	}
	out := make([]GameEvent, eq.count)
	for i := range out {
		out[i] = eq.ring[(eq.start+i)&parameter.EventBufferMask]
	}
	eq.start, eq.count = 0, 0
	return out
}

// Len returns the pending event count
func (eq *EventQueue) Len() int {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	return eq.count
}

// Dropped returns how many events were evicted unread since creation
func (eq *EventQueue) Dropped() uint64 {
	eq.mu.Lock()
	defer eq.mu.Unlock()
	return eq.dropped
}
