package port

import "github.com/strogmv/pushd/internal/domain"

// RoutingConfig resolves broker addressing per event kind. Implementations
// must be safe for concurrent reads and may swap values at runtime, so
// publishers read it fresh on every call.
type RoutingConfig interface {
	Exchange() string
	RoutingKey(kind domain.EventKind) string
}
