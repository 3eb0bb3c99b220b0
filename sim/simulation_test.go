package sim

import (
	"math/rand"
	"reflect"
	"testing"
	"time"

	"github.com/lixenwraith/sisyphus/event"
)

const gravityTick = 100 * time.Millisecond

// TestSinglePush verifies one push at level 1 with no mitigation
func TestSinglePush(t *testing.T) {
	s, _ := newCalm()

	res := s.Push()
	if !res.Accepted {
		t.Fatal("Expected push to be accepted")
	}

	snap := s.Snapshot()
	if snap.Height != 1 {
		t.Errorf("Expected height 1, got %f", snap.Height)
	}
	if snap.Endurance != 94 {
		t.Errorf("Expected endurance 94, got %f", snap.Endurance)
	}
	if snap.MaxEndurance != 100 {
		t.Errorf("Expected max endurance 100, got %f", snap.MaxEndurance)
	}
	if snap.Experience != 0.5 {
		t.Errorf("Expected experience 0.5, got %f", snap.Experience)
	}
}

// TestCollapseAfterSeventeenPushes verifies exhaustion ends the run
func TestCollapseAfterSeventeenPushes(t *testing.T) {
	s, _ := newCalm()

	for i := 0; i < 16; i++ {
		s.Push()
	}
	if !s.Snapshot().Alive {
		t.Fatalf("Expected alive after 16 pushes, endurance %f", s.Snapshot().Endurance)
	}

	s.Push()
	snap := s.Snapshot()
	if snap.Alive {
		t.Error("Expected alive=false after 17 pushes")
	}
	if snap.Endurance > 0 {
		t.Errorf("Expected endurance <= 0, got %f", snap.Endurance)
	}
	if snap.Phase != PhaseCollapsed {
		t.Errorf("Expected collapsed, got %v", snap.Phase)
	}
	if snap.PersonalBest != 17 {
		t.Errorf("Expected personal best 17, got %f", snap.PersonalBest)
	}

	evs := s.Events()
	if countType(evs, event.EventStrengthFails) != 1 {
		t.Errorf("Expected one strength-fails event, got %d", countType(evs, event.EventStrengthFails))
	}
	if countType(evs, event.EventPersonalBest) != 1 {
		t.Errorf("Expected one personal-best event, got %d", countType(evs, event.EventPersonalBest))
	}
}

func collapse(s *Simulation) {
	for i := 0; i < 17; i++ {
		s.Push()
	}
}

// TestPushRejectedWhenNotAscending verifies no-op pushes change nothing
func TestPushRejectedWhenNotAscending(t *testing.T) {
	tests := []struct {
		name  string
		setup func(s *Simulation)
		phase Phase
	}{
		{"collapsed", collapse, PhaseCollapsed},
		{"forced", func(s *Simulation) {
			s.cfg.NearGoalHeight = 3
			for i := 0; i < 3; i++ {
				s.Push()
			}
		}, PhaseForced},
		{"recovering", func(s *Simulation) {
			collapse(s)
			for i := 0; i < 500 && s.Phase() != PhaseRecovering; i++ {
				s.Tick(gravityTick)
			}
		}, PhaseRecovering},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newCalm()
			tt.setup(s)
			if s.Phase() != tt.phase {
				t.Fatalf("Expected phase %v, got %v", tt.phase, s.Phase())
			}
			s.mods = Modifiers{NoDrain: 1, TripleDrain: 2, Surge: 3, PushMultiplier: 2}
			s.Events()

			before := s.Snapshot()
			res := s.Push()
			after := s.Snapshot()

			if res.Accepted {
				t.Error("Expected push to be rejected")
			}
			if !reflect.DeepEqual(before, after) {
				t.Errorf("Expected no mutation\nbefore: %+v\nafter:  %+v", before, after)
			}
			if evs := s.Events(); len(evs) != 0 {
				t.Errorf("Expected no events, got %v", evs)
			}
		})
	}
}

// TestNearGoalLatch verifies the forced fall happens once and is never retriggered
func TestNearGoalLatch(t *testing.T) {
	cfg := DefaultConfig()
	cfg.NearGoalHeight = 5
	s := New(cfg, calm())

	for i := 0; i < 5; i++ {
		s.Push()
	}
	snap := s.Snapshot()
	if !snap.ForcedFall {
		t.Fatal("Expected forced fall at the near-goal height")
	}
	if snap.Endurance != 0 {
		t.Errorf("Expected endurance 0, got %f", snap.Endurance)
	}
	if res := s.Push(); res.Accepted {
		t.Error("Expected push to be rejected during the forced fall")
	}
	if n := countType(s.Events(), event.EventNearGoal); n != 1 {
		t.Errorf("Expected one near-goal event, got %d", n)
	}

	for i := 0; i < 1000 && s.Phase() != PhaseAscending; i++ {
		s.Tick(gravityTick)
	}
	if s.Phase() != PhaseAscending {
		t.Fatalf("Expected a new run, got %v", s.Phase())
	}
	s.Events()

	for i := 0; i < 6; i++ {
		s.Push()
	}
	snap = s.Snapshot()
	if snap.Height < cfg.NearGoalHeight {
		t.Fatalf("Expected height past the threshold, got %f", snap.Height)
	}
	if snap.ForcedFall || !snap.Alive {
		t.Errorf("Expected the latch to prevent a second forced fall, phase %v", snap.Phase)
	}
	if n := countType(s.Events(), event.EventNearGoal); n != 0 {
		t.Errorf("Expected no near-goal event after re-crossing, got %d", n)
	}
}

// TestDecayMonotonic verifies gravity lowers height every step down to exactly zero, then recovers once
func TestDecayMonotonic(t *testing.T) {
	s, _ := newCalm()
	for i := 0; i < 10; i++ {
		s.Push()
	}

	prev := s.Snapshot().Height
	recoveries := 0
	for i := 0; i < 300; i++ {
		s.Tick(gravityTick)
		h := s.Snapshot().Height
		if prev > 0 && h >= prev {
			t.Fatalf("Step %d: expected height below %f, got %f", i, prev, h)
		}
		if prev == 0 && h != 0 {
			t.Fatalf("Step %d: expected height to stay at 0, got %f", i, h)
		}
		if h < 0 {
			t.Fatalf("Step %d: negative height %f", i, h)
		}
		prev = h
		recoveries += countType(s.Events(), event.EventRecoveryStarted)
	}
	if prev != 0 {
		t.Errorf("Expected height 0, got %f", prev)
	}
	if recoveries != 1 {
		t.Errorf("Expected recovery to start exactly once, got %d", recoveries)
	}
}

// TestRecoveryRegen verifies bottom regen restores a drained run in nine steps
func TestRecoveryRegen(t *testing.T) {
	s, _ := newCalm()
	collapse(s)
	for i := 0; i < 500 && s.Phase() != PhaseRecovering; i++ {
		s.Tick(gravityTick)
	}
	if s.Phase() != PhaseRecovering {
		t.Fatalf("Expected recovering, got %v", s.Phase())
	}
	if s.Snapshot().Endurance != 0 {
		t.Fatalf("Expected recovery to start empty, got %f", s.Snapshot().Endurance)
	}
	runs := s.Snapshot().RunCount

	for i := 1; i <= 8; i++ {
		s.Tick(500 * time.Millisecond)
		if !s.Snapshot().Recovering {
			t.Fatalf("Expected still recovering after %d regen steps", i)
		}
	}
	if e := s.Snapshot().Endurance; !approx(e, 96) {
		t.Errorf("Expected endurance 96 after 8 steps, got %f", e)
	}

	s.Tick(500 * time.Millisecond)
	snap := s.Snapshot()
	if !snap.Alive || snap.Recovering {
		t.Errorf("Expected alive and not recovering after 9 steps, phase %v", snap.Phase)
	}
	if snap.RunCount != runs+1 {
		t.Errorf("Expected run count %d, got %d", runs+1, snap.RunCount)
	}
	if snap.Endurance != snap.MaxEndurance {
		t.Errorf("Expected full endurance, got %f/%f", snap.Endurance, snap.MaxEndurance)
	}
	if n := countType(s.Events(), event.EventRunStarted); n != 1 {
		t.Errorf("Expected one run-started event, got %d", n)
	}
	if s.timers.Active(s.regenID) {
		t.Error("Expected regen timer cancelled")
	}
}

// TestDivinePunishment verifies the smite grounds the run and skips the rest of the push
func TestDivinePunishment(t *testing.T) {
	s, r := newCalm()
	s.Push()
	s.Events()

	// drain roll, smite roll
	r.queue(0.99, 0.0)
	res := s.Push()
	if !res.Smitten {
		t.Fatal("Expected the push to be smitten")
	}

	snap := s.Snapshot()
	if snap.Height != 0 {
		t.Errorf("Expected height 0, got %f", snap.Height)
	}
	if snap.Phase != PhaseCollapsed {
		t.Errorf("Expected collapsed, got %v", snap.Phase)
	}
	if snap.Experience != 0.5 {
		t.Errorf("Expected experience from the first push only, got %f", snap.Experience)
	}

	evs := s.Events()
	ev, ok := findType(evs, event.EventDivinePunishment)
	if !ok || ev.Value != 2 {
		t.Errorf("Expected divine punishment losing 2, got %+v", ev)
	}

	s.Tick(gravityTick)
	if s.Phase() != PhaseRecovering {
		t.Errorf("Expected recovery on the next gravity step, got %v", s.Phase())
	}
}

// TestMilestones verifies crossing a milestone is announced once
func TestMilestones(t *testing.T) {
	s, _ := newCalm()
	s.run.ApplyPush(99.5)

	s.Push()
	ev, ok := findType(s.Events(), event.EventMilestone)
	if !ok || ev.Index != 0 || ev.Value != 100 {
		t.Fatalf("Expected milestone 100, got %+v (found %v)", ev, ok)
	}

	s.Push()
	if n := countType(s.Events(), event.EventMilestone); n != 0 {
		t.Errorf("Expected no repeat announcement, got %d", n)
	}
}

// TestPersonalBestLeaderboard verifies only record runs reach the leaderboard
func TestPersonalBestLeaderboard(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Username = "sisyphus"
	board := &recordingBoard{}
	s := New(cfg, calm(), WithLeaderboard(board))

	collapse(s)
	if len(board.got) != 1 {
		t.Fatalf("Expected one submission, got %d", len(board.got))
	}
	want := submission{"sisyphus", 17, 1}
	if board.got[0] != want {
		t.Errorf("Expected %+v, got %+v", want, board.got[0])
	}

	s.ResetRun()
	for i := 0; i < 3; i++ {
		s.Push()
	}
	s.run.Exhaust()
	s.Push()
	if s.Phase() != PhaseCollapsed {
		t.Fatalf("Expected collapsed, got %v", s.Phase())
	}
	if len(board.got) != 1 {
		t.Errorf("Expected no submission for a lower run, got %d", len(board.got))
	}
}

// TestNilLeaderboard verifies an absent leaderboard is a no-op
func TestNilLeaderboard(t *testing.T) {
	s := New(DefaultConfig(), calm(), WithLeaderboard(nil))
	collapse(s)
	if s.Snapshot().PersonalBest != 17 {
		t.Errorf("Expected personal best recorded without a leaderboard")
	}
}

// TestHold verifies hold-to-push repeats on the timer set until released
func TestHold(t *testing.T) {
	s, _ := newCalm()

	s.Hold(true)
	if e := s.Snapshot().Endurance; e != 94 {
		t.Fatalf("Expected an immediate push, endurance %f", e)
	}
	if !s.Snapshot().Holding {
		t.Error("Expected holding")
	}

	s.Tick(100 * time.Millisecond)
	if e := s.Snapshot().Endurance; e != 88 {
		t.Errorf("Expected a repeated push, endurance %f", e)
	}

	s.Hold(false)
	s.Tick(300 * time.Millisecond)
	if e := s.Snapshot().Endurance; e != 88 {
		t.Errorf("Expected no pushes after release, endurance %f", e)
	}
}

// TestHoldEndsWithRun verifies the repeat is cancelled when the run ends
func TestHoldEndsWithRun(t *testing.T) {
	s, _ := newCalm()
	s.Hold(true)
	s.Tick(2 * time.Second)

	if s.Phase() != PhaseCollapsed {
		t.Fatalf("Expected collapse while holding, got %v", s.Phase())
	}
	if s.Snapshot().Holding || s.timers.Active(s.holdID) {
		t.Error("Expected hold cancelled at run end")
	}
}

// TestResetRun verifies run-scoped timers and modifiers are cleared in one step
func TestResetRun(t *testing.T) {
	s, _ := newCalm()
	s.Hold(true)
	s.curseMomentum()
	s.mods.NoDrain = 3
	s.run.ApplyPush(50)
	hold, momentum := s.holdID, s.momentumID

	s.ResetRun()

	if s.timers.Active(hold) || s.timers.Active(momentum) {
		t.Error("Expected hold and momentum timers cancelled")
	}
	if !s.timers.Active(s.gravityID) {
		t.Error("Expected the gravity timer to survive a run reset")
	}
	snap := s.Snapshot()
	if snap.Height != 0 || snap.Endurance != snap.MaxEndurance {
		t.Errorf("Expected fresh run, got height %f endurance %f", snap.Height, snap.Endurance)
	}
	if snap.Modifiers != defaultModifiers() {
		t.Errorf("Expected default modifiers, got %+v", snap.Modifiers)
	}
	if snap.Holding {
		t.Error("Expected hold released")
	}
	if snap.RunCount != 1 {
		t.Errorf("Expected run count unchanged, got %d", snap.RunCount)
	}
}

// TestResetAllRoundTrip verifies a wiped progression saves and loads as defaults
func TestResetAllRoundTrip(t *testing.T) {
	s, _ := newCalm()
	s.GrantExperience(200)
	s.SpendLevel(UpgradeMitigation)
	s.SpendLevel(UpgradeSpeed)
	collapse(s)

	s.ResetAll()
	if n := countType(s.Events(), event.EventResetAll); n != 1 {
		t.Errorf("Expected one reset-all event, got %d", n)
	}

	store := &memStore{}
	if err := store.Save(s.Progression()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := store.Load()
	if err != nil || loaded == nil {
		t.Fatalf("Load failed: %v", err)
	}

	got := loaded.Apply()
	if !reflect.DeepEqual(got, defaultProgression()) {
		t.Errorf("Expected defaults, got %+v", got)
	}

	fresh := New(DefaultConfig(), calm(), WithProgression(loaded))
	if fresh.prog.Level != 1 || fresh.prog.RunCount != 1 {
		t.Errorf("Expected restored defaults, got %+v", fresh.prog)
	}
}

// TestInvariantsUnderRandomSequences drives random operations and checks bounds after each
func TestInvariantsUnderRandomSequences(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RandomEventChance = 0.2
	cfg.DivinePunishmentChance = 0.01

	for seed := int64(1); seed <= 5; seed++ {
		s := New(cfg, rand.New(rand.NewSource(seed)))
		ops := rand.New(rand.NewSource(seed * 7919))

		for i := 0; i < 4000; i++ {
			switch n := ops.Intn(100); {
			case n < 60:
				s.Push()
			case n < 85:
				s.Tick(time.Duration(ops.Intn(600)) * time.Millisecond)
			case n < 88:
				s.Hold(ops.Intn(2) == 0)
			case n < 92:
				s.GrantExperience(ops.Float64() * 40)
			case n < 96:
				s.SpendLevel(Upgrade(ops.Intn(2)))
			case n < 99:
				s.ResetRun()
			default:
				s.ResetAll()
			}
			s.Events()

			snap := s.Snapshot()
			if snap.Height < 0 || snap.Height >= cfg.MaxHeight {
				t.Fatalf("seed %d op %d: height out of bounds: %f", seed, i, snap.Height)
			}
			if snap.Endurance < 0 || snap.Endurance > snap.MaxEndurance {
				t.Fatalf("seed %d op %d: endurance out of bounds: %f/%f", seed, i, snap.Endurance, snap.MaxEndurance)
			}
			if snap.Level < 0 || snap.Experience < 0 {
				t.Fatalf("seed %d op %d: negative progression %+v", seed, i, snap)
			}
			flags := 0
			for _, f := range []bool{snap.Alive, snap.Recovering, snap.ForcedFall} {
				if f {
					flags++
				}
			}
			if flags > 1 {
				t.Fatalf("seed %d op %d: contradictory flags %+v", seed, i, snap)
			}
			if snap.MitigationChance < 0 || snap.MitigationChance > 100 || snap.SpeedMultiplier < 1 {
				t.Fatalf("seed %d op %d: upgrade stats out of range %+v", seed, i, snap)
			}
		}
	}
}
