package core

import (
	"time"

	"github.com/google/uuid"
)

// MessageStore owns the append-only message log for the session lifetime.
// Like the registry it is mutated only on the hub goroutine. Messages are
// never deleted; the log lives as long as the process.
type MessageStore struct {
	log   []*Message
	index map[string]*Message
}

// NewMessageStore constructs an empty store.
func NewMessageStore() *MessageStore {
	return &MessageStore{
		index: make(map[string]*Message),
	}
}

// Create builds a message from a draft, stamps a fresh id and the current
// instant, sets the status to sent and appends it to the log. The content
// is stored as received, empty string included; attachment-count validation
// is the collaborator UI's job, not the relay's.
func (s *MessageStore) Create(sender User, draft MessageDraft) *Message {
	msg := &Message{
		ID:               uuid.NewString(),
		Content:          draft.Content,
		Sender:           sender,
		Timestamp:        time.Now(),
		DeliveryStatus:   StatusSent,
		Attachments:      draft.Attachments,
		QuotedMessage:    draft.QuotedMessage,
		FormattedContent: draft.FormattedContent,
	}
	s.log = append(s.log, msg)
	s.index[msg.ID] = msg
	return msg
}

// AdvanceStatus overwrites the delivery status of the message with the
// given id and returns the updated record. There is no transition table:
// read may be set straight from sent. An unknown id is a silent no-op.
func (s *MessageStore) AdvanceStatus(id string, status DeliveryStatus) (*Message, bool) {
	msg, ok := s.index[id]
	if !ok {
		return nil, false
	}
	msg.DeliveryStatus = status
	return msg, true
}

// Get returns the stored message with the given id.
func (s *MessageStore) Get(id string) (*Message, bool) {
	msg, ok := s.index[id]
	return msg, ok
}

// History returns a value-copied snapshot of the log in arrival order,
// safe to hand to a writer goroutine.
func (s *MessageStore) History() []Message {
	out := make([]Message, len(s.log))
	for i, msg := range s.log {
		out[i] = *msg
	}
	return out
}

// Len reports the number of stored messages.
func (s *MessageStore) Len() int {
	return len(s.log)
}
