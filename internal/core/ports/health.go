package ports

import "context"

// HealthChecker is implemented by every backing dependency reported on /health.
type HealthChecker interface {
	// Ping returns nil when the dependency answers.
	Ping(ctx context.Context) error
	// Name identifies the dependency, e.g. "postgresql" or "redis".
	Name() string
}
