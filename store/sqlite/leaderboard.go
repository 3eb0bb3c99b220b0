package sqlite

import (
	"context"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/sisyphus/core"
	"github.com/lixenwraith/sisyphus/sim"
	"github.com/lixenwraith/sisyphus/status"
)

const (
	submitBuffer = 16
	writeTimeout = 2 * time.Second
	busyRetries  = 3
	busyBackoff  = 50 * time.Millisecond
)

type submission struct {
	username string
	height   float64
	level    int
}

// Leaderboard adapts Store to sim.Leaderboard
// SubmitIfRecord is called from the simulation goroutine and must not block,
// so writes are queued to a worker; a full queue drops the submission
type Leaderboard struct {
	store *Store
	jobs  chan submission
	done  chan struct{}
	once  sync.Once

	statRecorded *atomic.Int64
	statDropped  *atomic.Int64
	statFailed   *atomic.Int64
}

// NewLeaderboard starts the write worker
func NewLeaderboard(store *Store, reg *status.Registry) *Leaderboard {
	b := &Leaderboard{
		store:        store,
		jobs:         make(chan submission, submitBuffer),
		done:         make(chan struct{}),
		statRecorded: reg.Ints.Get("leaderboard.recorded"),
		statDropped:  reg.Ints.Get("leaderboard.dropped"),
		statFailed:   reg.Ints.Get("leaderboard.failed"),
	}
	core.Go(b.run)
	return b
}

// SubmitIfRecord queues a record write
func (b *Leaderboard) SubmitIfRecord(username string, height float64, level int) {
	select {
	case b.jobs <- submission{username: username, height: height, level: level}:
	default:
		b.statDropped.Add(1)
		log.Printf("leaderboard: queue full, dropped %.0f for %s", height, username)
	}
}

// Top reads the highest entries directly from the store
func (b *Leaderboard) Top(ctx context.Context, n int) ([]Entry, error) {
	return b.store.Top(ctx, n)
}

// Close flushes queued submissions and stops the worker
// Must not race with SubmitIfRecord; call after the simulation loop has stopped
func (b *Leaderboard) Close() {
	b.once.Do(func() {
		close(b.jobs)
		<-b.done
	})
}

func (b *Leaderboard) run() {
	defer close(b.done)
	for job := range b.jobs {
		b.write(job)
	}
}

func (b *Leaderboard) write(job submission) {
	var changed bool
	err := retryBusy(func() error {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		var err error
		changed, err = b.store.Record(ctx, job.username, job.height, job.level)
		return err
	})
	if err != nil {
		b.statFailed.Add(1)
		log.Printf("leaderboard: %v", err)
		return
	}
	if changed {
		b.statRecorded.Add(1)
	}
}

var _ sim.Leaderboard = (*Leaderboard)(nil)
