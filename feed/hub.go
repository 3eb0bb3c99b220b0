package feed

import (
	"log"
	"sync/atomic"
)

// hub tracks connected spectators and fans frames out to them
// All client-set mutations happen on the run goroutine
type hub struct {
	clients    map[*client]struct{}
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}

	// latest snapshot frame, replayed to new clients
	latest atomic.Pointer[[]byte]

	statClients *atomic.Int64
	statSent    *atomic.Int64
	statDropped *atomic.Int64
}

func newHub(queue int, statClients, statSent, statDropped *atomic.Int64) *hub {
	return &hub{
		clients:     make(map[*client]struct{}),
		broadcast:   make(chan []byte, queue),
		register:    make(chan *client),
		unregister:  make(chan *client),
		done:        make(chan struct{}),
		statClients: statClients,
		statSent:    statSent,
		statDropped: statDropped,
	}
}

func (h *hub) run(stop <-chan struct{}) {
	defer func() {
		for c := range h.clients {
			h.drop(c)
		}
		close(h.done)
	}()

	for {
		select {
		case <-stop:
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.statClients.Store(int64(len(h.clients)))
			if frame := h.latest.Load(); frame != nil {
				h.deliver(c, *frame)
			}
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				log.Printf("feed: client %s disconnected", c.remote)
			}
		case frame := <-h.broadcast:
			for c := range h.clients {
				h.deliver(c, frame)
			}
		}
	}
}

// deliver queues frame for c; a client too slow to keep up is disconnected
func (h *hub) deliver(c *client, frame []byte) {
	select {
	case c.send <- frame:
		h.statSent.Add(1)
	default:
		log.Printf("feed: client %s too slow, disconnecting", c.remote)
		h.drop(c)
	}
}

func (h *hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.statClients.Store(int64(len(h.clients)))
}

// publish queues frame for every client without blocking the caller
func (h *hub) publish(frame []byte) {
	select {
	case h.broadcast <- frame:
	case <-h.done:
	default:
		h.statDropped.Add(1)
	}
}

// join blocks until the hub accepts c; false once the hub stopped
func (h *hub) join(c *client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

func (h *hub) leave(c *client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}
