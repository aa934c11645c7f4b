package health

import "context"

// HealthPinger is implemented by components that expose a direct liveness
// probe. A nil return means the component is reachable and serving.
type HealthPinger interface {
	HealthPing(ctx context.Context) error
}
