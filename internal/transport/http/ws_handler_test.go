package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/chatrelay-server/internal/config"
	"github.com/vovakirdan/chatrelay-server/internal/core"
	"github.com/vovakirdan/chatrelay-server/internal/proto"
)

func startTestServer(t *testing.T, confirmDelay time.Duration) *httptest.Server {
	t.Helper()

	logger := zerolog.Nop()
	hub := core.NewHub(core.NewRegistry(), core.NewMessageStore(), core.NewConfirmScheduler(), confirmDelay, &logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	server := NewServer(hub, config.Config{
		Addr:                 ":0",
		ReadHeaderTimeout:    time.Second,
		ShutdownTimeout:      time.Second,
		DeliveryConfirmDelay: confirmDelay,
	}, &logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts
}

func dial(t *testing.T, ctx context.Context, ts *httptest.Server) *websocket.Conn {
	t.Helper()

	wsURL := strings.Replace(ts.URL, "http", "ws", 1) + "/ws"
	conn, _, err := websocket.Dial(ctx, wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close(websocket.StatusNormalClosure, "done") })
	return conn
}

func send(t *testing.T, ctx context.Context, conn *websocket.Conn, event string, data any) {
	t.Helper()

	payload, err := json.Marshal(data)
	if err != nil {
		t.Fatalf("marshal %s payload: %v", event, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Event: event, Data: payload}); err != nil {
		t.Fatalf("write %s: %v", event, err)
	}
}

// waitEvent reads frames until one with the wanted event name arrives.
func waitEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, event string) json.RawMessage {
	t.Helper()

	for {
		var env struct {
			Event string          `json:"event"`
			Data  json.RawMessage `json:"data"`
		}
		if err := wsjson.Read(ctx, conn, &env); err != nil {
			t.Fatalf("waiting for %s: %v", event, err)
		}
		if env.Event == event {
			return env.Data
		}
	}
}

func TestHealthEndpoint(t *testing.T) {
	ts := startTestServer(t, time.Second)

	resp, err := ts.Client().Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("health request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := startTestServer(t, time.Second)

	resp, err := ts.Client().Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatalf("metrics request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestTwoClientRelayFlow(t *testing.T) {
	ts := startTestServer(t, 100*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	connA := dial(t, ctx, ts)
	connB := dial(t, ctx, ts)

	send(t, ctx, connA, proto.EventUserJoin, proto.User{ID: "u1", Name: "Alice", Role: "client"})

	var history []proto.Message
	if err := json.Unmarshal(waitEvent(t, ctx, connA, proto.EventMessagesHistory), &history); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if len(history) != 0 {
		t.Fatalf("expected empty history, got %d messages", len(history))
	}

	send(t, ctx, connB, proto.EventUserJoin, proto.User{ID: "u2", Name: "Bob", Role: "client"})

	var joined proto.User
	if err := json.Unmarshal(waitEvent(t, ctx, connA, proto.EventUserJoined), &joined); err != nil {
		t.Fatalf("unmarshal user:joined: %v", err)
	}
	if joined.ID != "u2" || joined.Name != "Bob" {
		t.Fatalf("unexpected joined user: %+v", joined)
	}
	waitEvent(t, ctx, connB, proto.EventMessagesHistory)

	// Alice sends; both sides, sender included, see message:received.
	send(t, ctx, connA, proto.EventMessageSend, proto.SendData{Content: "hi", DeliveryStatus: "sending"})

	var gotA, gotB proto.Message
	if err := json.Unmarshal(waitEvent(t, ctx, connA, proto.EventMessageReceived), &gotA); err != nil {
		t.Fatalf("unmarshal message on A: %v", err)
	}
	if err := json.Unmarshal(waitEvent(t, ctx, connB, proto.EventMessageReceived), &gotB); err != nil {
		t.Fatalf("unmarshal message on B: %v", err)
	}
	for _, got := range []proto.Message{gotA, gotB} {
		if got.Content != "hi" || got.Sender.ID != "u1" || got.DeliveryStatus != "sent" {
			t.Fatalf("unexpected message payload: %+v", got)
		}
	}
	if gotA.ID != gotB.ID {
		t.Fatalf("message ids diverge: %s vs %s", gotA.ID, gotB.ID)
	}

	// After the confirmation delay both get the delivered status.
	for _, conn := range []*websocket.Conn{connA, connB} {
		var status proto.StatusData
		if err := json.Unmarshal(waitEvent(t, ctx, conn, proto.EventMessageStatus), &status); err != nil {
			t.Fatalf("unmarshal status: %v", err)
		}
		if status.MessageID != gotA.ID || status.Status != "delivered" {
			t.Fatalf("unexpected status: %+v", status)
		}
	}

	// Bob reads; both get the read status. The payload is the bare id.
	send(t, ctx, connB, proto.EventMessageRead, gotA.ID)

	for _, conn := range []*websocket.Conn{connA, connB} {
		var status proto.StatusData
		if err := json.Unmarshal(waitEvent(t, ctx, conn, proto.EventMessageStatus), &status); err != nil {
			t.Fatalf("unmarshal status: %v", err)
		}
		if status.MessageID != gotA.ID || status.Status != "read" {
			t.Fatalf("unexpected status: %+v", status)
		}
	}

	// Alice disconnects; Bob gets user:left with her record.
	connA.Close(websocket.StatusNormalClosure, "bye")

	var left proto.User
	if err := json.Unmarshal(waitEvent(t, ctx, connB, proto.EventUserLeft), &left); err != nil {
		t.Fatalf("unmarshal user:left: %v", err)
	}
	if left.ID != "u1" || left.Name != "Alice" {
		t.Fatalf("unexpected departed user: %+v", left)
	}
}

func TestUnknownEventKeepsConnectionOpen(t *testing.T) {
	ts := startTestServer(t, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dial(t, ctx, ts)

	send(t, ctx, conn, "totally:bogus", map[string]string{"x": "y"})

	// The connection must survive; a join afterwards still works.
	send(t, ctx, conn, proto.EventUserJoin, proto.User{ID: "u1", Name: "Alice", Role: "client"})
	waitEvent(t, ctx, conn, proto.EventMessagesHistory)
}

func TestMalformedFrameKeepsConnectionOpen(t *testing.T) {
	ts := startTestServer(t, time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dial(t, ctx, ts)

	if err := conn.Write(ctx, websocket.MessageText, []byte("{this is not json")); err != nil {
		t.Fatalf("write malformed frame: %v", err)
	}

	send(t, ctx, conn, proto.EventUserJoin, proto.User{ID: "u1", Name: "Alice", Role: "client"})
	waitEvent(t, ctx, conn, proto.EventMessagesHistory)
}

func TestMessageWithQuoteAndAttachmentsRoundTrips(t *testing.T) {
	ts := startTestServer(t, time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn := dial(t, ctx, ts)
	send(t, ctx, conn, proto.EventUserJoin, proto.User{ID: "u1", Name: "Alice", Role: "employee"})
	waitEvent(t, ctx, conn, proto.EventMessagesHistory)

	send(t, ctx, conn, proto.EventMessageSend, proto.SendData{Content: "first"})

	var first proto.Message
	if err := json.Unmarshal(waitEvent(t, ctx, conn, proto.EventMessageReceived), &first); err != nil {
		t.Fatalf("unmarshal first message: %v", err)
	}

	send(t, ctx, conn, proto.EventMessageSend, proto.SendData{
		Content:       "reply",
		QuotedMessage: &first,
		Attachments: []proto.Attachment{
			{ID: "a1", Type: "document", URL: "https://cdn/spec.pdf", Name: "spec.pdf", Size: 2048},
		},
		FormattedContent: &proto.FormattedContent{Bold: true},
	})

	var reply proto.Message
	if err := json.Unmarshal(waitEvent(t, ctx, conn, proto.EventMessageReceived), &reply); err != nil {
		t.Fatalf("unmarshal reply: %v", err)
	}

	if reply.QuotedMessage == nil || reply.QuotedMessage.ID != first.ID || reply.QuotedMessage.Content != "first" {
		t.Fatalf("quoted snapshot lost: %+v", reply.QuotedMessage)
	}
	if len(reply.Attachments) != 1 || reply.Attachments[0].Name != "spec.pdf" {
		t.Fatalf("attachments lost: %+v", reply.Attachments)
	}
	if reply.FormattedContent == nil || !reply.FormattedContent.Bold {
		t.Fatalf("formatted content lost: %+v", reply.FormattedContent)
	}
}
