package domain

import "time"

// Compiled defaults. Each can be overridden via configuration.
const (
	// DefaultHTTPPort is the port the responder binds when none is configured.
	// Matches the container port declared in the task definition.
	DefaultHTTPPort = 3000

	// MaxPort is the highest valid TCP port. Port 0 is allowed (OS-assigned,
	// used by tests).
	MaxPort = 65535

	// DefaultGreeting is the fixed body served on GET /.
	DefaultGreeting = "Greeter running on ECS Fargate 🚀"
)

// Server hardening timeouts. The responder is stateless, so these exist only
// to bound resource usage from slow or stalled clients.
const (
	ReadTimeout  = 10 * time.Second
	WriteTimeout = 10 * time.Second
	IdleTimeout  = 60 * time.Second
)

// Shutdown budgets. Shutdown order is the reverse of startup: HTTP drains
// first, then metrics, then tracer.
const (
	ShutdownHTTPTimeout     = 10 * time.Second // Max time to drain in-flight requests
	ShutdownOTELTimeout     = 5 * time.Second  // Max time to flush telemetry
	GracefulShutdownTimeout = 30 * time.Second // Overall budget from signal to exit
)

// SSMFetchTimeout bounds the startup-time Parameter Store fetch.
const SSMFetchTimeout = 5 * time.Second
