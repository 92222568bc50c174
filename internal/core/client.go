package core

// Client is a live connection as seen by the core layer. It is an opaque
// handle for the registry, not a domain entity; identity arrives later via
// a join command.
type Client struct {
	ID     string
	Events chan *Event
}

// NewClient constructs a client with a buffered events channel. The buffer
// absorbs bursts during fan-out; a full channel means the consumer is too
// slow and events for it are dropped.
func NewClient(id string) *Client {
	return &Client{
		ID:     id,
		Events: make(chan *Event, 32),
	}
}
