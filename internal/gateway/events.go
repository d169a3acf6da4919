package gateway

// Lifecycle event names.
const (
	// EventReady fires when a backend finished initialization.
	EventReady = "backend_ready"
	// EventDegraded fires when the remote backend is left not-ready.
	EventDegraded = "backend_degraded"
	// EventLoadFailed fires when the local model fails to load.
	EventLoadFailed = "backend_load_failed"
)

// Event is one gateway lifecycle event: name + backend and optional
// fields via key/values.
type Event struct {
	Name    string
	Backend string
	Fields  map[string]any
}

// EventPublisher receives lifecycle events. Implementations should be
// lightweight and non-blocking; Publish must not panic.
type EventPublisher interface {
	Publish(Event)
}

// noopPublisher is the default; it drops events.
type noopPublisher struct{}

func (noopPublisher) Publish(Event) {}
