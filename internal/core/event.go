package core

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventUserJoined notifies other clients that a user joined.
	EventUserJoined EventKind = iota
	// EventUserLeft notifies other clients that a user disconnected.
	EventUserLeft
	// EventHistory delivers the full message log to a new joiner.
	EventHistory
	// EventMessageReceived carries a freshly created message to everyone.
	EventMessageReceived
	// EventMessageStatus announces a delivery-status transition.
	EventMessageStatus
)

// String returns the event kind's wire-facing name for logs.
func (k EventKind) String() string {
	switch k {
	case EventUserJoined:
		return "user_joined"
	case EventUserLeft:
		return "user_left"
	case EventHistory:
		return "history"
	case EventMessageReceived:
		return "message_received"
	case EventMessageStatus:
		return "message_status"
	default:
		return "unknown"
	}
}

// Event is pushed to clients to describe what happened. Message payloads
// are value snapshots taken on the hub goroutine, so later in-place status
// updates to the log never race with serialization.
type Event struct {
	Kind     EventKind
	User     User      // EventUserJoined, EventUserLeft
	Message  Message   // EventMessageReceived
	Messages []Message // EventHistory

	// EventMessageStatus
	MessageID string
	Status    DeliveryStatus
}
