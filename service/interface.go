package service

// Service is the lifecycle contract for long-lived subsystems around the simulation
// (audio device, spectator feed)
//
// Lifecycle:
//  1. Construction (via NewService in the owning package)
//  2. Init(args...) - configuration taken from the parsed process config
//  3. Start() - open devices and listeners, launch goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must start before this one
	Dependencies() []string

	// Init configures the service; args are service-specific
	Init(args ...any) error

	// Start begins operation, called after every service initialized
	// A service that cannot reach its resource should degrade and return nil
	Start() error

	// Stop halts the service, must be idempotent
	Stop() error
}
