package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/chatrelay-server/internal/core"
	"github.com/vovakirdan/chatrelay-server/internal/proto"
)

// ErrUnknownEvent marks an inbound envelope whose event name is not one of
// the supported kinds. Unknown events are rejected here, at decode time.
var ErrUnknownEvent = errors.New("unknown event")

func inboundToCommand(client *core.Client, inbound proto.Inbound) (core.Command, error) {
	switch inbound.Event {
	case proto.EventUserJoin:
		var user proto.User
		if err := json.Unmarshal(inbound.Data, &user); err != nil {
			return core.Command{}, fmt.Errorf("decode user:join: %w", err)
		}
		return core.Command{
			Kind:   core.CommandJoin,
			Client: client,
			User:   userToCore(user),
		}, nil

	case proto.EventMessageSend:
		var send proto.SendData
		if err := json.Unmarshal(inbound.Data, &send); err != nil {
			return core.Command{}, fmt.Errorf("decode message:send: %w", err)
		}
		// send.DeliveryStatus is the client's optimistic "sending" state
		// and is deliberately not carried into the draft.
		return core.Command{
			Kind:   core.CommandSendMessage,
			Client: client,
			Draft: core.MessageDraft{
				Content:          send.Content,
				Attachments:      attachmentsToCore(send.Attachments),
				QuotedMessage:    messageToCore(send.QuotedMessage),
				FormattedContent: formattedToCore(send.FormattedContent),
			},
		}, nil

	case proto.EventMessageRead:
		// The payload is the bare message id as a JSON string.
		var messageID string
		if err := json.Unmarshal(inbound.Data, &messageID); err != nil {
			return core.Command{}, fmt.Errorf("decode message:read: %w", err)
		}
		return core.Command{
			Kind:      core.CommandMarkRead,
			Client:    client,
			MessageID: messageID,
		}, nil

	default:
		return core.Command{}, fmt.Errorf("%w: %q", ErrUnknownEvent, inbound.Event)
	}
}

func outboundFromEvent(event *core.Event) proto.Outbound {
	switch event.Kind {
	case core.EventUserJoined:
		return proto.Outbound{Event: proto.EventUserJoined, Data: userFromCore(event.User)}
	case core.EventUserLeft:
		return proto.Outbound{Event: proto.EventUserLeft, Data: userFromCore(event.User)}
	case core.EventHistory:
		history := make([]proto.Message, 0, len(event.Messages))
		for i := range event.Messages {
			history = append(history, *messageFromCore(&event.Messages[i]))
		}
		return proto.Outbound{Event: proto.EventMessagesHistory, Data: history}
	case core.EventMessageReceived:
		return proto.Outbound{Event: proto.EventMessageReceived, Data: messageFromCore(&event.Message)}
	case core.EventMessageStatus:
		return proto.Outbound{Event: proto.EventMessageStatus, Data: proto.StatusData{
			MessageID: event.MessageID,
			Status:    string(event.Status),
		}}
	default:
		return proto.Outbound{}
	}
}

func userToCore(u proto.User) core.User {
	return core.User{
		ID:     u.ID,
		Name:   u.Name,
		Role:   core.Role(u.Role),
		Avatar: u.Avatar,
	}
}

func userFromCore(u core.User) proto.User {
	return proto.User{
		ID:     u.ID,
		Name:   u.Name,
		Role:   string(u.Role),
		Avatar: u.Avatar,
	}
}

func attachmentsToCore(in []proto.Attachment) []core.Attachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]core.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, core.Attachment{
			ID:   a.ID,
			Type: core.AttachmentType(a.Type),
			URL:  a.URL,
			Name: a.Name,
			Size: a.Size,
		})
	}
	return out
}

func attachmentsFromCore(in []core.Attachment) []proto.Attachment {
	if len(in) == 0 {
		return nil
	}
	out := make([]proto.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, proto.Attachment{
			ID:   a.ID,
			Type: string(a.Type),
			URL:  a.URL,
			Name: a.Name,
			Size: a.Size,
		})
	}
	return out
}

func formattedToCore(f *proto.FormattedContent) *core.FormattedContent {
	if f == nil {
		return nil
	}
	links := make([]core.Link, 0, len(f.Links))
	for _, l := range f.Links {
		links = append(links, core.Link{Text: l.Text, URL: l.URL})
	}
	return &core.FormattedContent{
		Bold:      f.Bold,
		Italic:    f.Italic,
		Underline: f.Underline,
		Links:     links,
		Markers:   f.Markers,
	}
}

func formattedFromCore(f *core.FormattedContent) *proto.FormattedContent {
	if f == nil {
		return nil
	}
	links := make([]proto.Link, 0, len(f.Links))
	for _, l := range f.Links {
		links = append(links, proto.Link{Text: l.Text, URL: l.URL})
	}
	return &proto.FormattedContent{
		Bold:      f.Bold,
		Italic:    f.Italic,
		Underline: f.Underline,
		Links:     links,
		Markers:   f.Markers,
	}
}

// messageToCore converts a client-supplied quoted-message snapshot. The
// nesting recurses, so a quote of a quote keeps its own immediate quote.
func messageToCore(m *proto.Message) *core.Message {
	if m == nil {
		return nil
	}
	// Best effort; a snapshot with an unparseable timestamp keeps the
	// zero instant rather than failing the whole message.
	ts, _ := time.Parse(time.RFC3339Nano, m.Timestamp)
	return &core.Message{
		ID:               m.ID,
		Content:          m.Content,
		Sender:           userToCore(m.Sender),
		Timestamp:        ts,
		DeliveryStatus:   core.DeliveryStatus(m.DeliveryStatus),
		Attachments:      attachmentsToCore(m.Attachments),
		QuotedMessage:    messageToCore(m.QuotedMessage),
		FormattedContent: formattedToCore(m.FormattedContent),
	}
}

func messageFromCore(m *core.Message) *proto.Message {
	if m == nil {
		return nil
	}
	return &proto.Message{
		ID:               m.ID,
		Content:          m.Content,
		Sender:           userFromCore(m.Sender),
		Timestamp:        m.Timestamp.UTC().Format(time.RFC3339Nano),
		DeliveryStatus:   string(m.DeliveryStatus),
		Attachments:      attachmentsFromCore(m.Attachments),
		QuotedMessage:    messageFromCore(m.QuotedMessage),
		FormattedContent: formattedFromCore(m.FormattedContent),
	}
}
