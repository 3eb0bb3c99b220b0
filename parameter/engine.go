package parameter

// Loop limits; the tick cadence itself is configuration (config.Config.TickInterval)
const (
	// CommandQueueSize is the buffered capacity of the loop command channel
	CommandQueueSize = 64
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)
