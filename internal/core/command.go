package core

// CommandKind describes what an inbound client event asks for. The set is
// closed; the transport decoder rejects anything it cannot map to one of
// these.
type CommandKind int

const (
	// CommandJoin registers the connection's user identity.
	CommandJoin CommandKind = iota
	// CommandSendMessage appends a new message to the log and fans it out.
	CommandSendMessage
	// CommandMarkRead advances a message's delivery status to read.
	CommandMarkRead
)

// Command is an action requested by a client, routed through the hub's
// single execution loop.
type Command struct {
	Kind   CommandKind
	Client *Client

	User      User         // CommandJoin
	Draft     MessageDraft // CommandSendMessage
	MessageID string       // CommandMarkRead
}
