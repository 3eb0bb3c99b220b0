package sim

import (
	"math"

	"github.com/lixenwraith/sisyphus/event"
)

// scriptRand replays vals in order, then returns fallback forever
type scriptRand struct {
	vals     []float64
	fallback float64
}

func (r *scriptRand) Float64() float64 {
	if len(r.vals) > 0 {
		v := r.vals[0]
		r.vals = r.vals[1:]
		return v
	}
	return r.fallback
}

func (r *scriptRand) queue(vals ...float64) {
	r.vals = append(r.vals, vals...)
}

// calm never mitigates, never smites and never rolls an overlay event
func calm() *scriptRand {
	return &scriptRand{fallback: 0.99}
}

func newCalm() (*Simulation, *scriptRand) {
	r := calm()
	return New(DefaultConfig(), r), r
}

func countType(evs []event.GameEvent, t event.EventType) int {
	n := 0
	for _, ev := range evs {
		if ev.Type == t {
			n++
		}
	}
	return n
}

func findType(evs []event.GameEvent, t event.EventType) (event.GameEvent, bool) {
	for _, ev := range evs {
		if ev.Type == t {
			return ev, true
		}
	}
	return event.GameEvent{}, false
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// memStore round-trips snapshots through their JSON encoding
type memStore struct {
	data []byte
}

func (m *memStore) Save(ps ProgressionSnapshot) error {
	b, err := ps.Encode()
	if err != nil {
		return err
	}
	m.data = b
	return nil
}

func (m *memStore) Load() (*ProgressionSnapshot, error) {
	if m.data == nil {
		return nil, nil
	}
	ps := DecodeProgression(m.data)
	return &ps, nil
}

type submission struct {
	username string
	height   float64
	level    int
}

type recordingBoard struct {
	got []submission
}

func (b *recordingBoard) SubmitIfRecord(username string, height float64, level int) {
	b.got = append(b.got, submission{username, height, level})
}
