// Package proto defines the JSON wire envelope and payloads exchanged with
// clients. Field names follow the collaborator UI's contract exactly.
package proto

import "encoding/json"

// Inbound event names (client -> server).
const (
	EventUserJoin    = "user:join"
	EventMessageSend = "message:send"
	EventMessageRead = "message:read"
)

// Outbound event names (server -> client).
const (
	EventUserJoined      = "user:joined"
	EventUserLeft        = "user:left"
	EventMessagesHistory = "messages:history"
	EventMessageReceived = "message:received"
	EventMessageStatus   = "message:status"
)

// Inbound is the envelope for frames coming from the client.
type Inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Outbound is the envelope for frames sent to the client. It mirrors the
// inbound shape, so both directions carry {event, data}.
type Outbound struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// User is the wire form of a participant identity.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Attachment is the wire form of an attachment reference.
type Attachment struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	URL  string `json:"url"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Link is a hyperlink span inside formatted content.
type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// FormattedContent carries rich-text annotations verbatim.
type FormattedContent struct {
	Bold      bool     `json:"bold,omitempty"`
	Italic    bool     `json:"italic,omitempty"`
	Underline bool     `json:"underline,omitempty"`
	Links     []Link   `json:"links,omitempty"`
	Markers   []string `json:"markers,omitempty"`
}

// Message is the wire form of a stored message. The timestamp marshals as
// RFC 3339, which the UI parses as a Date.
type Message struct {
	ID               string            `json:"id"`
	Content          string            `json:"content"`
	Sender           User              `json:"sender"`
	Timestamp        string            `json:"timestamp"`
	DeliveryStatus   string            `json:"deliveryStatus"`
	Attachments      []Attachment      `json:"attachments,omitempty"`
	QuotedMessage    *Message          `json:"quotedMessage,omitempty"`
	FormattedContent *FormattedContent `json:"formattedContent,omitempty"`
}

// SendData is the message:send payload. The client may include an
// optimistic "sending" deliveryStatus; the server discards it.
type SendData struct {
	Content          string            `json:"content"`
	Attachments      []Attachment      `json:"attachments,omitempty"`
	QuotedMessage    *Message          `json:"quotedMessage,omitempty"`
	FormattedContent *FormattedContent `json:"formattedContent,omitempty"`
	DeliveryStatus   string            `json:"deliveryStatus,omitempty"`
}

// StatusData is the message:status payload.
type StatusData struct {
	MessageID string `json:"messageId"`
	Status    string `json:"status"`
}
