package feed

import "time"

// Config holds feed server settings
type Config struct {
	// Addr to listen on; empty disables the feed
	Addr string

	// Path of the websocket endpoint
	Path string

	// SnapshotInterval throttles snapshot broadcasts; events are never throttled
	SnapshotInterval time.Duration

	// Per-connection limits
	SendQueueSize  int
	MaxMessageSize int64

	// Timing
	WriteWait       time.Duration
	PongWait        time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns defaults for a local spectator feed
func DefaultConfig() *Config {
	return &Config{
		Path:             "/ws",
		SnapshotInterval: 100 * time.Millisecond,
		SendQueueSize:    64,
		MaxMessageSize:   512,
		WriteWait:        10 * time.Second,
		PongWait:         60 * time.Second,
		ShutdownTimeout:  2 * time.Second,
	}
}

// pingPeriod must stay below PongWait
func (c *Config) pingPeriod() time.Duration {
	return c.PongWait * 9 / 10
}
