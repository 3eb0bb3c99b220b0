package feed

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/sisyphus/event"
	"github.com/lixenwraith/sisyphus/sim"
	"github.com/lixenwraith/sisyphus/status"
)

// calmRand never triggers a random event and never mitigates
type calmRand struct{}

func (calmRand) Float64() float64 { return 0.99 }

// syncController applies commands immediately under a lock and signals each one
type syncController struct {
	mu      sync.Mutex
	sim     *sim.Simulation
	applied chan struct{}
}

func newSyncController() *syncController {
	return &syncController{
		sim:     sim.New(sim.DefaultConfig(), calmRand{}),
		applied: make(chan struct{}, 16),
	}
}

func (c *syncController) Submit(cmd func(*sim.Simulation)) bool {
	c.mu.Lock()
	cmd(c.sim)
	c.mu.Unlock()
	c.applied <- struct{}{}
	return true
}

func (c *syncController) snapshot() sim.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sim.Snapshot()
}

func startFeed(t *testing.T, ctrl Controller) (*Service, *status.Registry) {
	t.Helper()
	reg := status.NewRegistry()
	svc := NewService(ctrl, reg)
	if err := svc.Init("127.0.0.1:0"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := svc.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if svc.Addr() == nil {
		t.Fatal("Expected feed to be listening")
	}
	t.Cleanup(func() { _ = svc.Stop() })
	return svc, reg
}

func dial(t *testing.T, svc *Service) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial("ws://"+svc.Addr().String()+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitClients(t *testing.T, reg *status.Registry, n int64) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for reg.Ints.Get("feed.clients").Load() != n {
		if time.Now().After(deadline) {
			t.Fatalf("Expected %d clients, got %d", n, reg.Ints.Get("feed.clients").Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func readMessage(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		t.Fatalf("decode %q: %v", data, err)
	}
	return msg
}

func waitApplied(t *testing.T, ctrl *syncController) {
	t.Helper()
	select {
	case <-ctrl.applied:
	case <-time.After(2 * time.Second):
		t.Fatal("Expected command to reach the simulation")
	}
}

func TestCommandReachesSimulation(t *testing.T) {
	ctrl := newSyncController()
	svc, reg := startFeed(t, ctrl)
	conn := dial(t, svc)

	if err := conn.WriteJSON(Command{Action: ActionPush}); err != nil {
		t.Fatalf("write: %v", err)
	}
	waitApplied(t, ctrl)

	if h := ctrl.snapshot().Height; h <= 0 {
		t.Errorf("Expected height above 0 after push, got %v", h)
	}
	if got := reg.Ints.Get("feed.commands").Load(); got != 1 {
		t.Errorf("Expected 1 command counted, got %d", got)
	}
}

func TestBadCommandsReplyWithError(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		text  string
	}{
		{"malformed", "not json", "malformed command"},
		{"unknown action", `{"action":"fly"}`, "unknown action"},
		{"unknown upgrade", `{"action":"upgrade","upgrade":"wings"}`, "unknown upgrade"},
		{"reset refused", `{"action":"reset"}`, "unknown action"},
		{"reset all refused", `{"action":"reset_all"}`, "unknown action"},
	}
	ctrl := newSyncController()
	svc, _ := startFeed(t, ctrl)
	conn := dial(t, svc)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(tt.frame)); err != nil {
				t.Fatalf("write: %v", err)
			}
			msg := readMessage(t, conn)
			if msg.Kind != KindError {
				t.Fatalf("Expected error frame, got %q", msg.Kind)
			}
			if !strings.Contains(msg.Error, tt.text) {
				t.Errorf("Expected error containing %q, got %q", tt.text, msg.Error)
			}
		})
	}
}

func TestEventBroadcast(t *testing.T) {
	svc, reg := startFeed(t, newSyncController())
	a := dial(t, svc)
	b := dial(t, svc)
	waitClients(t, reg, 2)

	svc.HandleEvent(event.GameEvent{Type: event.EventStrengthFails})

	for _, conn := range []*websocket.Conn{a, b} {
		msg := readMessage(t, conn)
		if msg.Kind != KindEvent || msg.Event == nil {
			t.Fatalf("Expected event frame, got %+v", msg)
		}
		if msg.Event.Type != "strength_fails" {
			t.Errorf("Expected type strength_fails, got %q", msg.Event.Type)
		}
		if msg.Event.Text == "" {
			t.Error("Expected narrative text on event")
		}
	}
}

// TestSnapshotReplayedToNewClient verifies a late joiner receives the latest snapshot first
func TestSnapshotReplayedToNewClient(t *testing.T) {
	ctrl := newSyncController()
	svc, _ := startFeed(t, ctrl)

	svc.Observe(ctrl.sim)
	conn := dial(t, svc)

	msg := readMessage(t, conn)
	if msg.Kind != KindSnapshot || msg.Snapshot == nil {
		t.Fatalf("Expected snapshot frame, got %+v", msg)
	}
	if msg.Snapshot.RunCount != 1 || msg.Snapshot.PhaseName != sim.PhaseAscending.String() {
		t.Errorf("Expected run 1 ascending, got run %d %q", msg.Snapshot.RunCount, msg.Snapshot.PhaseName)
	}
}

func TestDisabledWithoutAddr(t *testing.T) {
	svc := NewService(newSyncController(), nil)
	if err := svc.Init(""); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := svc.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if svc.Addr() != nil {
		t.Error("Expected no listener when disabled")
	}
	svc.HandleEvent(event.GameEvent{Type: event.EventLevelUp})
	svc.Observe(sim.New(sim.DefaultConfig(), sim.NewRand(1)))

	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ws", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503, got %d", rec.Code)
	}
	if err := svc.Stop(); err != nil {
		t.Errorf("stop: %v", err)
	}
}

func TestStatusEndpoint(t *testing.T) {
	reg := status.NewRegistry()
	reg.Ints.Get("loop.ticks").Store(42)
	svc := NewService(newSyncController(), reg)

	rec := httptest.NewRecorder()
	svc.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var dump map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &dump); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if dump["loop.ticks"] != float64(42) {
		t.Errorf("Expected loop.ticks 42, got %v", dump["loop.ticks"])
	}
	if _, ok := dump["feed.commands"]; !ok {
		t.Error("Expected feed.commands metric")
	}
}

func TestCommandMapping(t *testing.T) {
	tests := []struct {
		cmd Command
		err error
	}{
		{Command{Action: ActionPush}, nil},
		{Command{Action: ActionHold}, nil},
		{Command{Action: ActionRelease}, nil},
		{Command{Action: ActionUpgrade, Upgrade: "speed"}, nil},
		{Command{Action: ActionUpgrade, Upgrade: "mitigation"}, nil},
		{Command{Action: ActionUpgrade}, errUnknownUpgrade},
		{Command{Action: "reset"}, errUnknownAction},
		{Command{Action: "reset_all"}, errUnknownAction},
		{Command{Action: ""}, errUnknownAction},
	}
	for _, tt := range tests {
		fn, err := tt.cmd.toCommand()
		if !errors.Is(err, tt.err) {
			t.Errorf("%+v: Expected err %v, got %v", tt.cmd, tt.err, err)
		}
		if tt.err == nil && fn == nil {
			t.Errorf("%+v: Expected a command", tt.cmd)
		}
	}
}

func TestEventTypesExcludesCue(t *testing.T) {
	svc := NewService(newSyncController(), nil)
	types := svc.EventTypes()
	if len(types) != len(event.AllTypes())-1 {
		t.Errorf("Expected every type but one, got %d", len(types))
	}
	for _, tt := range types {
		if tt == event.EventSoundCue {
			t.Error("Expected sound cues to be excluded")
		}
	}
}
