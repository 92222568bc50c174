package core

import "time"

// DeliveryStatus is the per-message delivery lifecycle state.
// "sending" exists only as a client-side optimistic state and is never
// stored by the server; "error" is reserved for transport-failure
// reporting and is never produced by current logic.
type DeliveryStatus string

const (
	StatusSending   DeliveryStatus = "sending"
	StatusSent      DeliveryStatus = "sent"
	StatusDelivered DeliveryStatus = "delivered"
	StatusRead      DeliveryStatus = "read"
	StatusError     DeliveryStatus = "error"
)

// AttachmentType classifies an attachment.
type AttachmentType string

const (
	AttachmentImage    AttachmentType = "image"
	AttachmentDocument AttachmentType = "document"
)

// Attachment references externally hosted content. The URL is opaque to the
// relay; nothing is fetched or validated server-side.
type Attachment struct {
	ID   string
	Type AttachmentType
	URL  string
	Name string
	Size int64
}

// Link is a hyperlink span inside formatted content.
type Link struct {
	Text string
	URL  string
}

// FormattedContent carries client-produced rich-text annotations. The relay
// passes it through untouched.
type FormattedContent struct {
	Bold      bool
	Italic    bool
	Underline bool
	Links     []Link
	Markers   []string
}

// Message is a chat message as held in the authoritative log. The sender is
// a value snapshot taken at send time, so later registry changes never
// alter historical messages. A quoted message is an embedded one-level
// snapshot, not a reference.
type Message struct {
	ID               string
	Content          string
	Sender           User
	Timestamp        time.Time
	DeliveryStatus   DeliveryStatus
	Attachments      []Attachment
	QuotedMessage    *Message
	FormattedContent *FormattedContent
}

// MessageDraft is the client-supplied part of a message:send. Any delivery
// status the client included has already been discarded by the time a draft
// reaches the store.
type MessageDraft struct {
	Content          string
	Attachments      []Attachment
	QuotedMessage    *Message
	FormattedContent *FormattedContent
}
