package feed

import (
	"encoding/json"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

// client is one websocket connection
// send is owned and closed by the hub; replies carries direct answers from the read side
type client struct {
	svc     *Service
	conn    *websocket.Conn
	remote  string
	send    chan []byte
	replies chan []byte
}

func newClient(svc *Service, conn *websocket.Conn) *client {
	return &client{
		svc:     svc,
		conn:    conn,
		remote:  conn.RemoteAddr().String(),
		send:    make(chan []byte, svc.config.SendQueueSize),
		replies: make(chan []byte, 4),
	}
}

// readPump decodes commands until the connection fails
func (c *client) readPump() {
	defer func() {
		c.svc.hub.leave(c)
		c.conn.Close()
	}()

	cfg := c.svc.config
	c.conn.SetReadLimit(cfg.MaxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(cfg.PongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				log.Printf("feed: read %s: %v", c.remote, err)
			}
			return
		}

		var cmd Command
		if err := json.Unmarshal(data, &cmd); err != nil {
			c.reply(encodeError("malformed command"))
			continue
		}
		if err := c.svc.apply(cmd); err != nil {
			c.reply(encodeError(err.Error()))
		}
	}
}

func (c *client) reply(frame []byte) {
	select {
	case c.replies <- frame:
	default:
	}
}

// writePump writes queued frames and keeps the connection alive with pings
func (c *client) writePump() {
	cfg := c.svc.config
	ticker := time.NewTicker(cfg.pingPeriod())
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case frame := <-c.replies:
			_ = c.conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(cfg.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
