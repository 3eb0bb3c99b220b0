// Package feed serves a websocket stream of simulation snapshots and events
// to spectators and accepts player commands from them
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/sisyphus/core"
	"github.com/lixenwraith/sisyphus/event"
	"github.com/lixenwraith/sisyphus/sim"
	"github.com/lixenwraith/sisyphus/status"
)

var (
	ErrFeedDisabled   = errors.New("feed disabled")
	errUnknownAction  = errors.New("unknown action")
	errUnknownUpgrade = errors.New("unknown upgrade")
	errBusy           = errors.New("simulation busy")
)

// Controller accepts simulation mutations; engine.Loop satisfies it
type Controller interface {
	Submit(cmd func(*sim.Simulation)) bool
}

// Service runs the feed HTTP server and websocket hub
type Service struct {
	config *Config
	ctrl   Controller
	reg    *status.Registry

	hub      *hub
	server   *http.Server
	listener net.Listener
	stop     chan struct{}
	stopOnce sync.Once
	disabled atomic.Bool

	// loop goroutine only
	lastSnapshot time.Time

	upgrader websocket.Upgrader

	statCommands *atomic.Int64
	statRejected *atomic.Int64
}

// NewService creates a feed that forwards commands to ctrl (disabled until Init gets an address)
func NewService(ctrl Controller, reg *status.Registry) *Service {
	if reg == nil {
		reg = status.NewRegistry()
	}
	s := &Service{
		config:       DefaultConfig(),
		ctrl:         ctrl,
		reg:          reg,
		stop:         make(chan struct{}),
		statCommands: reg.Ints.Get("feed.commands"),
		statRejected: reg.Ints.Get("feed.rejected"),
	}
	s.disabled.Store(true)
	return s
}

// Name implements service.Service
func (s *Service) Name() string {
	return "feed"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: string listen address, or *Config; an empty address leaves the feed disabled
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		switch v := args[0].(type) {
		case string:
			s.config.Addr = v
		case *Config:
			if v != nil {
				s.config = v
			}
		}
	}
	if s.config.Addr == "" {
		return nil
	}
	if s.config.SendQueueSize <= 0 || s.config.MaxMessageSize <= 0 {
		return fmt.Errorf("feed: invalid queue or message size")
	}

	s.hub = newHub(s.config.SendQueueSize,
		s.reg.Ints.Get("feed.clients"),
		s.reg.Ints.Get("feed.sent"),
		s.reg.Ints.Get("feed.dropped"),
	)
	s.upgrader = websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024}
	s.disabled.Store(false)
	return nil
}

// Start implements service.Service
// A listen failure disables the feed instead of failing the game
func (s *Service) Start() error {
	if s.disabled.Load() {
		return nil
	}
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		log.Printf("feed: listen %s: %v (continuing without feed)", s.config.Addr, err)
		s.disabled.Store(true)
		return nil
	}
	s.listener = ln
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	core.Go(func() { s.hub.run(s.stop) })
	core.Go(func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("feed: serve: %v", err)
		}
	})
	log.Printf("feed: listening on %s", ln.Addr())
	return nil
}

// Stop implements service.Service
func (s *Service) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		if s.server != nil {
			ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
			err = s.server.Shutdown(ctx)
			cancel()
		}
		close(s.stop)
		if s.server != nil {
			<-s.hub.done
		}
		s.disabled.Store(true)
	})
	return err
}

// Addr returns the bound address, nil before Start
func (s *Service) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Handler serves the websocket endpoint and a JSON metrics dump at /status
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(s.config.Path, s.serveWS)
	mux.HandleFunc("/status", s.serveStatus)
	return mux
}

func (s *Service) serveWS(w http.ResponseWriter, r *http.Request) {
	if s.disabled.Load() {
		http.Error(w, ErrFeedDisabled.Error(), http.StatusServiceUnavailable)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("feed: upgrade: %v", err)
		return
	}
	c := newClient(s, conn)
	if !s.hub.join(c) {
		conn.Close()
		return
	}
	log.Printf("feed: client %s connected", c.remote)
	core.Go(c.writePump)
	core.Go(c.readPump)
}

func (s *Service) serveStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.reg.Dump()); err != nil {
		log.Printf("feed: status: %v", err)
	}
}

// apply forwards a decoded command to the simulation loop
func (s *Service) apply(cmd Command) error {
	fn, err := cmd.toCommand()
	if err != nil {
		s.statRejected.Add(1)
		return fmt.Errorf("%w: %q", err, cmd.Action+cmd.Upgrade)
	}
	if !s.ctrl.Submit(fn) {
		s.statRejected.Add(1)
		return errBusy
	}
	s.statCommands.Add(1)
	return nil
}

// HandleEvent implements event.Handler
func (s *Service) HandleEvent(ev event.GameEvent) {
	if s.disabled.Load() {
		return
	}
	frame, err := encodeEvent(ev)
	if err != nil {
		log.Printf("feed: encode event: %v", err)
		return
	}
	s.hub.publish(frame)
}

// EventTypes implements event.Handler; sound cues stay local
func (s *Service) EventTypes() []event.EventType {
	all := event.AllTypes()
	types := all[:0]
	for _, t := range all {
		if t != event.EventSoundCue {
			types = append(types, t)
		}
	}
	return types
}

// Observe publishes a throttled snapshot; called on the loop goroutine
func (s *Service) Observe(sm *sim.Simulation) {
	if s.disabled.Load() {
		return
	}
	now := time.Now()
	if now.Sub(s.lastSnapshot) < s.config.SnapshotInterval {
		return
	}
	s.lastSnapshot = now

	frame, err := encodeSnapshot(sm.Snapshot())
	if err != nil {
		log.Printf("feed: encode snapshot: %v", err)
		return
	}
	s.hub.latest.Store(&frame)
	s.hub.publish(frame)
}
