package totalmap

import "github.com/tailored-agentic-units/totalmap/observability"

// Event types emitted by an observed Map.
const (
	EventInsert       observability.EventType = "totalmap.insert"
	EventRemove       observability.EventType = "totalmap.remove"
	EventCanonicalize observability.EventType = "totalmap.canonicalize"
	EventClear        observability.EventType = "totalmap.clear"
	EventSweep        observability.EventType = "totalmap.sweep"
	EventDecode       observability.EventType = "totalmap.decode"
	EventError        observability.EventType = "totalmap.error"
)
