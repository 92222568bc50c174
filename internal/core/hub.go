package core

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/vovakirdan/chatrelay-server/internal/metrics"
)

// Hub owns the registry, the message store and the confirmation scheduler,
// and runs all state mutation on a single goroutine. Transport goroutines
// only ever talk to it through channels, which gives the relay its
// one-event-at-a-time processing model without any locking in the registry
// or store.
type Hub struct {
	registry *Registry
	store    *MessageStore
	sched    *ConfirmScheduler

	confirmDelay time.Duration

	register   chan *Client
	unregister chan *Client
	commands   chan Command

	log *zerolog.Logger
}

// NewHub wires the hub with its owned state. The confirmation delay models
// network-delivery latency between message:received and the delivered
// status update.
func NewHub(registry *Registry, store *MessageStore, sched *ConfirmScheduler, confirmDelay time.Duration, logger *zerolog.Logger) *Hub {
	return &Hub{
		registry:     registry,
		store:        store,
		sched:        sched,
		confirmDelay: confirmDelay,
		register:     make(chan *Client, 8),
		unregister:   make(chan *Client, 8),
		commands:     make(chan Command, 64),
		log:          logger,
	}
}

// RegisterClient announces a newly opened connection to the hub loop.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient announces a closed connection to the hub loop.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Dispatch queues a decoded client command for processing.
func (h *Hub) Dispatch(cmd Command) {
	h.commands <- cmd
}

// Run processes events until the context is cancelled. It is the only
// goroutine that touches the registry and the store.
func (h *Hub) Run(ctx context.Context) {
	defer h.sched.Shutdown()

	for {
		select {
		case c := <-h.register:
			h.handleRegister(c)
		case c := <-h.unregister:
			h.handleUnregister(c)
		case cmd := <-h.commands:
			h.handleCommand(cmd)
		case messageID := <-h.sched.Fired():
			h.handleConfirmation(messageID)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) handleRegister(c *Client) {
	h.registry.Track(c)
	metrics.ConnectedClients.Set(float64(h.registry.Len()))
	h.log.Debug().Str("client_id", c.ID).Msg("connection opened")
}

func (h *Hub) handleUnregister(c *Client) {
	user, joined := h.registry.Leave(c)
	close(c.Events)
	metrics.ConnectedClients.Set(float64(h.registry.Len()))

	if joined {
		h.log.Info().Str("client_id", c.ID).Str("user_id", user.ID).Msg("user disconnected")
		h.broadcastOthers(c, &Event{Kind: EventUserLeft, User: user})
	} else {
		h.log.Debug().Str("client_id", c.ID).Msg("connection closed before join")
	}
}

func (h *Hub) handleCommand(cmd Command) {
	switch cmd.Kind {
	case CommandJoin:
		h.handleJoin(cmd.Client, cmd.User)
	case CommandSendMessage:
		h.handleSend(cmd.Client, cmd.Draft)
	case CommandMarkRead:
		h.handleMarkRead(cmd.MessageID)
	}
}

func (h *Hub) handleJoin(c *Client, user User) {
	h.registry.Join(c, user)
	h.log.Info().Str("client_id", c.ID).Str("user_id", user.ID).Str("name", user.Name).Msg("user joined")

	h.broadcastOthers(c, &Event{Kind: EventUserJoined, User: user})
	h.unicast(c, &Event{Kind: EventHistory, Messages: h.store.History()})
}

func (h *Hub) handleSend(c *Client, draft MessageDraft) {
	sender, ok := h.registry.Lookup(c)
	if !ok {
		// Messages from connections that never joined are dropped without
		// a reply.
		h.log.Warn().Str("client_id", c.ID).Msg("message from unjoined connection dropped")
		return
	}

	msg := h.store.Create(sender, draft)
	metrics.MessagesTotal.Inc()
	h.log.Info().Str("message_id", msg.ID).Str("sender_id", sender.ID).Msg("message created")

	h.broadcastAll(&Event{Kind: EventMessageReceived, Message: *msg})

	h.sched.Schedule(msg.ID, h.confirmDelay)
	metrics.PendingConfirmations.Set(float64(h.sched.Len()))
}

func (h *Hub) handleMarkRead(messageID string) {
	msg, ok := h.store.AdvanceStatus(messageID, StatusRead)
	if !ok {
		h.log.Warn().Str("message_id", messageID).Msg("read receipt for unknown message")
		return
	}

	// A pending delivered confirmation must not clobber read later.
	h.sched.Cancel(messageID)
	metrics.PendingConfirmations.Set(float64(h.sched.Len()))

	h.log.Debug().Str("message_id", msg.ID).Msg("message read")
	h.broadcastAll(&Event{Kind: EventMessageStatus, MessageID: msg.ID, Status: StatusRead})
}

func (h *Hub) handleConfirmation(messageID string) {
	metrics.PendingConfirmations.Set(float64(h.sched.Len()))

	// The timer may fire and queue its id before a read receipt gets a
	// chance to cancel it; a queued confirmation must not demote read
	// back to delivered.
	if current, ok := h.store.Get(messageID); !ok || current.DeliveryStatus == StatusRead {
		return
	}

	msg, ok := h.store.AdvanceStatus(messageID, StatusDelivered)
	if !ok {
		return
	}

	h.log.Debug().Str("message_id", msg.ID).Msg("message delivered")
	h.broadcastAll(&Event{Kind: EventMessageStatus, MessageID: msg.ID, Status: StatusDelivered})
}

func (h *Hub) unicast(c *Client, event *Event) {
	h.push(c, event)
}

func (h *Hub) broadcastAll(event *Event) {
	for _, c := range h.registry.Connections() {
		h.push(c, event)
	}
}

func (h *Hub) broadcastOthers(origin *Client, event *Event) {
	for _, c := range h.registry.Connections() {
		if c == origin {
			continue
		}
		h.push(c, event)
	}
}

func (h *Hub) push(c *Client, event *Event) {
	select {
	case c.Events <- event:
	default:
		// Slow or closing consumer simply misses the event; there is no
		// queueing or retry.
		h.log.Warn().Str("client_id", c.ID).Str("kind", event.Kind.String()).Msg("events channel full, dropping")
	}
}
