package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"golang.org/x/net/websocket"

	"github.com/louisbranch/bazaar.chat/internal/bot/event"
)

type recordingDispatcher struct {
	mu     sync.Mutex
	events []event.Event
}

func (d *recordingDispatcher) Dispatch(ctx context.Context, ev event.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, ev)
	return nil
}

func (d *recordingDispatcher) all() []event.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]event.Event, len(d.events))
	copy(out, d.events)
	return out
}

func newTestGateway(t *testing.T) (*Gateway, *recordingDispatcher, *TokenVerifier) {
	t.Helper()
	verifier, err := NewTokenVerifier([]byte("test-secret"), nil)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	dispatcher := &recordingDispatcher{}
	gateway := NewGateway(verifier)
	gateway.Bind(dispatcher)
	return gateway, dispatcher, verifier
}

func dialGateway(t *testing.T, gateway *Gateway, token string) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(gateway.Handler())
	t.Cleanup(srv.Close)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws?token=" + token
	conn, err := websocket.Dial(wsURL, "", srv.URL)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestVerifyRoundTrip(t *testing.T) {
	t.Parallel()
	verifier, err := NewTokenVerifier([]byte("s3cret"), nil)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	token, err := verifier.IssueToken(42, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	userID, err := verifier.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user 42, got %d", userID)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()
	issuer, _ := NewTokenVerifier([]byte("one"), nil)
	verifier, _ := NewTokenVerifier([]byte("two"), nil)

	token, err := issuer.IssueToken(42, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	if _, err := verifier.Verify(token); err == nil {
		t.Fatal("expected verification failure")
	}
}

func TestHandlerRejectsMissingToken(t *testing.T) {
	t.Parallel()
	gateway, _, _ := newTestGateway(t)
	srv := httptest.NewServer(gateway.Handler())
	t.Cleanup(srv.Close)

	resp, err := http.Get(srv.URL + "/ws")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestFramesBecomeEvents(t *testing.T) {
	t.Parallel()
	gateway, dispatcher, verifier := newTestGateway(t)
	token, err := verifier.IssueToken(7, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	conn := dialGateway(t, gateway, token)

	frames := []wsFrame{
		{Type: "bot.command", Payload: mustJSON(commandPayload{Name: "/start"})},
		{Type: "bot.button", Payload: mustJSON(buttonPayload{ActionID: "add:1"})},
		{Type: "bot.text", Payload: mustJSON(textPayload{Text: "555-0100"})},
	}
	for _, frame := range frames {
		if err := websocket.JSON.Send(conn, frame); err != nil {
			t.Fatalf("send frame: %v", err)
		}
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if len(dispatcher.all()) == 3 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	events := dispatcher.all()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	cmd, ok := events[0].(event.Command)
	if !ok || cmd.Name != "start" || cmd.User != 7 {
		t.Fatalf("unexpected command event: %+v", events[0])
	}
	press, ok := events[1].(event.ButtonPress)
	if !ok || press.ActionID != "add:1" {
		t.Fatalf("unexpected button event: %+v", events[1])
	}
	text, ok := events[2].(event.TextReply)
	if !ok || text.Text != "555-0100" {
		t.Fatalf("unexpected text event: %+v", events[2])
	}
}

func TestUnsupportedFrameGetsError(t *testing.T) {
	t.Parallel()
	gateway, _, verifier := newTestGateway(t)
	token, err := verifier.IssueToken(7, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	conn := dialGateway(t, gateway, token)

	if err := websocket.JSON.Send(conn, wsFrame{Type: "bot.unknown", RequestID: "r1"}); err != nil {
		t.Fatalf("send frame: %v", err)
	}

	var reply wsFrame
	if err := websocket.JSON.Receive(conn, &reply); err != nil {
		t.Fatalf("receive: %v", err)
	}
	if reply.Type != "bot.error" || reply.RequestID != "r1" {
		t.Fatalf("unexpected reply: %+v", reply)
	}
	var envelope wsErrorEnvelope
	if err := json.Unmarshal(reply.Payload, &envelope); err != nil {
		t.Fatalf("decode error payload: %v", err)
	}
	if envelope.Error.Code != "INVALID_ARGUMENT" {
		t.Fatalf("unexpected error code %q", envelope.Error.Code)
	}
}

func TestRenderReachesConnectedPeer(t *testing.T) {
	t.Parallel()
	gateway, _, verifier := newTestGateway(t)
	token, err := verifier.IssueToken(7, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	conn := dialGateway(t, gateway, token)

	// The peer registers during the websocket handshake goroutine.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if gateway.peer(7) != nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	msg := event.RenderMessage{UserID: 7, Text: "hello", Buttons: []event.Button{{Label: "Cart", ActionID: "cart"}}}
	if err := gateway.Render(context.Background(), msg); err != nil {
		t.Fatalf("render: %v", err)
	}

	var frame wsFrame
	if err := websocket.JSON.Receive(conn, &frame); err != nil {
		t.Fatalf("receive: %v", err)
	}
	if frame.Type != "bot.message" {
		t.Fatalf("expected bot.message, got %q", frame.Type)
	}
	var delivered event.RenderMessage
	if err := json.Unmarshal(frame.Payload, &delivered); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if delivered.Text != "hello" || len(delivered.Buttons) != 1 {
		t.Fatalf("unexpected delivery: %+v", delivered)
	}
}

func TestRenderToOfflineUser(t *testing.T) {
	t.Parallel()
	gateway, _, _ := newTestGateway(t)
	err := gateway.Render(context.Background(), event.RenderMessage{UserID: 99, Text: "hi"})
	if err != ErrUserOffline {
		t.Fatalf("expected ErrUserOffline, got %v", err)
	}
}
