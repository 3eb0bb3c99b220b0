package engine

import "time"

// TimerID identifies a scheduled callback, zero is never issued
type TimerID uint64

// TimerGroup tags timers so related handles can be cancelled together
type TimerGroup uint8

type timer struct {
	id     TimerID
	seq    uint64
	due    time.Duration
	period time.Duration // 0 = one-shot
	group  TimerGroup
	fn     func()
}

// Timers is a virtual-time scheduler owning every deferred and repeating callback
// of a single-writer state. Time only moves inside Advance, so callbacks run on the
// caller's goroutine, in due order, never concurrently with each other
type Timers struct {
	now     time.Duration
	nextID  TimerID
	seq     uint64
	pending map[TimerID]*timer
}

// NewTimers creates an empty scheduler at virtual time zero
func NewTimers() *Timers {
	return &Timers{pending: make(map[TimerID]*timer)}
}

// Every schedules fn repeatedly with period d, first firing d from now
// Panics on non-positive period, which would never let Advance finish
func (t *Timers) Every(d time.Duration, group TimerGroup, fn func()) TimerID {
	if d <= 0 {
		panic("engine: Timers.Every requires a positive period")
	}
	return t.schedule(d, d, group, fn)
}

func (t *Timers) schedule(d, period time.Duration, group TimerGroup, fn func()) TimerID {
	if d < 0 {
		d = 0
	}
	t.nextID++
	t.seq++
	t.pending[t.nextID] = &timer{
		id:     t.nextID,
		seq:    t.seq,
		due:    t.now + d,
		period: period,
		group:  group,
		fn:     fn,
	}
	return t.nextID
}

// Cancel removes a pending timer, returns false if it already fired or was cancelled
func (t *Timers) Cancel(id TimerID) bool {
	if _, ok := t.pending[id]; !ok {
		return false
	}
	delete(t.pending, id)
	return true
}

// CancelGroup removes every pending timer in group and returns how many were removed
func (t *Timers) CancelGroup(group TimerGroup) int {
	n := 0
	for id, tm := range t.pending {
		if tm.group == group {
			delete(t.pending, id)
			n++
		}
	}
	return n
}

// Active reports whether id is still scheduled
func (t *Timers) Active(id TimerID) bool {
	_, ok := t.pending[id]
	return ok
}

// Advance moves virtual time forward by dt, firing due callbacks in (due, schedule order)
// Callbacks may schedule or cancel timers, including themselves; a timer scheduled
// during Advance fires in the same call if it becomes due before the target time
func (t *Timers) Advance(dt time.Duration) {
	if dt < 0 {
		return
	}
	target := t.now + dt
	for {
		next := t.earliest(target)
		if next == nil {
			break
		}
		t.now = next.due
		if next.period > 0 {
			next.due += next.period
			t.seq++
			next.seq = t.seq
		} else {
			delete(t.pending, next.id)
		}
		next.fn()
	}
	t.now = target
}

func (t *Timers) earliest(limit time.Duration) *timer {
	var best *timer
	for _, tm := range t.pending {
		if tm.due > limit {
			continue
		}
		if best == nil || tm.due < best.due || (tm.due == best.due && tm.seq < best.seq) {
			best = tm
		}
	}
	return best
}
