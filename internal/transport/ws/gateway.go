// Package ws hosts the development websocket gateway. It translates JSON
// frames into bot events and delivers render envelopes back over the same
// connection. The conversation engine never sees the transport.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/net/websocket"

	"github.com/louisbranch/bazaar.chat/internal/bot/event"
)

const (
	maxFramePayloadBytes   = 16 * 1024
	maxFramesPerSecond     = 40
	maxDecodeErrorsPerConn = 3
	maxTextRunes           = 2000
)

// Dispatcher is the inbound boundary of the conversation engine.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev event.Event) error
}

type wsFrame struct {
	Type      string          `json:"type"`
	RequestID string          `json:"request_id,omitempty"`
	Payload   json.RawMessage `json:"payload"`
}

type commandPayload struct {
	Name    string `json:"name"`
	RawArgs string `json:"raw_args,omitempty"`
}

type buttonPayload struct {
	ActionID   string `json:"action_id"`
	MessageRef string `json:"message_ref,omitempty"`
}

type textPayload struct {
	Text string `json:"text"`
}

type wsErrorEnvelope struct {
	Error wsError `json:"error"`
}

type wsError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

// Gateway accepts authenticated websocket connections and bridges frames to
// the dispatcher. It implements event.Renderer for the connected users.
type Gateway struct {
	verifier *TokenVerifier

	mu         sync.RWMutex
	dispatcher Dispatcher
	peers      map[int64]*wsPeer
}

// NewGateway builds an unbound gateway. The engine is built with the
// gateway as its renderer, then attached with Bind.
func NewGateway(verifier *TokenVerifier) *Gateway {
	return &Gateway{
		verifier: verifier,
		peers:    map[int64]*wsPeer{},
	}
}

// Bind attaches the conversation engine. Frames arriving before Bind are
// answered with UNAVAILABLE.
func (g *Gateway) Bind(dispatcher Dispatcher) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dispatcher = dispatcher
}

func (g *Gateway) engine() Dispatcher {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.dispatcher
}

// Handler returns the HTTP surface: /ws upgraded after bearer auth.
func (g *Gateway) Handler() http.Handler {
	wsHandler := websocket.Handler(g.handleConn)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.Header().Set("Allow", http.MethodGet)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		token := bearerToken(r)
		if token == "" {
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}
		userID, err := g.verifier.Verify(token)
		if err != nil {
			log.Printf("ws: unauthorized: %v", err)
			http.Error(w, "authentication required", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), wsUserIDContextKey{}, userID)
		wsHandler.ServeHTTP(w, r.WithContext(ctx))
	})
	return mux
}

type wsUserIDContextKey struct{}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	// Browsers cannot set headers on websocket upgrades.
	return strings.TrimSpace(r.URL.Query().Get("token"))
}

func (g *Gateway) handleConn(conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	request := conn.Request()
	userID, ok := request.Context().Value(wsUserIDContextKey{}).(int64)
	if !ok || userID == 0 {
		return
	}

	conn.MaxPayloadBytes = maxFramePayloadBytes
	peer := newWSPeer(json.NewEncoder(conn))
	g.attach(userID, peer)
	defer g.detach(userID, peer)

	decoder := json.NewDecoder(conn)
	windowStart := time.Now()
	framesInWindow := 0
	decodeErrors := 0

	for {
		var frame wsFrame
		if err := decoder.Decode(&frame); err != nil {
			if errors.Is(err, io.EOF) {
				return
			}
			decodeErrors++
			_ = writeWSError(peer, "", "INVALID_ARGUMENT", "invalid frame payload")
			if decodeErrors >= maxDecodeErrorsPerConn {
				return
			}
			continue
		}
		decodeErrors = 0

		if len(frame.Payload) > maxFramePayloadBytes {
			_ = writeWSError(peer, frame.RequestID, "INVALID_ARGUMENT", "payload too large")
			continue
		}

		now := time.Now()
		if now.Sub(windowStart) >= time.Second {
			windowStart = now
			framesInWindow = 0
		}
		framesInWindow++
		if framesInWindow > maxFramesPerSecond {
			_ = writeWSError(peer, frame.RequestID, "RESOURCE_EXHAUSTED", "rate limit exceeded")
			return
		}

		ev, err := decodeEvent(frame, userID)
		if err != nil {
			_ = writeWSError(peer, frame.RequestID, "INVALID_ARGUMENT", err.Error())
			continue
		}

		dispatcher := g.engine()
		if dispatcher == nil {
			_ = writeWSError(peer, frame.RequestID, "UNAVAILABLE", "service is starting")
			continue
		}
		if err := dispatcher.Dispatch(request.Context(), ev); err != nil {
			log.Printf("ws: dispatch %s for user %d: %v", ev.Kind(), userID, err)
			_ = writeWSError(peer, frame.RequestID, "UNAVAILABLE", "temporary failure, try again")
		}
	}
}

func decodeEvent(frame wsFrame, userID int64) (event.Event, error) {
	switch frame.Type {
	case "bot.command":
		var payload commandPayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			return nil, errors.New("invalid command payload")
		}
		name := strings.TrimSpace(strings.TrimPrefix(payload.Name, "/"))
		if name == "" {
			return nil, errors.New("command name is required")
		}
		return event.Command{Name: name, RawArgs: payload.RawArgs, User: userID}, nil

	case "bot.button":
		var payload buttonPayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			return nil, errors.New("invalid button payload")
		}
		if strings.TrimSpace(payload.ActionID) == "" {
			return nil, errors.New("action_id is required")
		}
		return event.ButtonPress{ActionID: payload.ActionID, MessageRef: payload.MessageRef, User: userID}, nil

	case "bot.text":
		var payload textPayload
		if err := json.Unmarshal(frame.Payload, &payload); err != nil {
			return nil, errors.New("invalid text payload")
		}
		if utf8.RuneCountInString(payload.Text) > maxTextRunes {
			return nil, errors.New("text must be at most 2000 characters")
		}
		return event.TextReply{Text: payload.Text, User: userID}, nil
	}
	return nil, errors.New("unsupported frame type")
}

func (g *Gateway) attach(userID int64, peer *wsPeer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.peers[userID] = peer
}

func (g *Gateway) detach(userID int64, peer *wsPeer) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.peers[userID] == peer {
		delete(g.peers, userID)
	}
}

func (g *Gateway) peer(userID int64) *wsPeer {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.peers[userID]
}

// ErrUserOffline indicates the target user has no open connection.
var ErrUserOffline = errors.New("user has no open connection")

// Render implements event.Renderer by writing a message envelope to the
// user's connection.
func (g *Gateway) Render(ctx context.Context, msg event.RenderMessage) error {
	peer := g.peer(msg.UserID)
	if peer == nil {
		return ErrUserOffline
	}
	return peer.writeFrame(wsFrame{Type: "bot.message", Payload: mustJSON(msg)})
}

// Replace implements event.Renderer by writing an edit envelope.
func (g *Gateway) Replace(ctx context.Context, msg event.ReplaceMessage) error {
	peer := g.peer(msg.UserID)
	if peer == nil {
		return ErrUserOffline
	}
	return peer.writeFrame(wsFrame{Type: "bot.replace", Payload: mustJSON(msg)})
}

type wsPeer struct {
	mu      sync.Mutex
	encoder *json.Encoder
}

func newWSPeer(encoder *json.Encoder) *wsPeer {
	return &wsPeer{encoder: encoder}
}

func (p *wsPeer) writeFrame(frame wsFrame) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.encoder.Encode(frame)
}

func writeWSError(peer *wsPeer, requestID string, code string, message string) error {
	return peer.writeFrame(wsFrame{
		Type:      "bot.error",
		RequestID: requestID,
		Payload: mustJSON(wsErrorEnvelope{
			Error: wsError{Code: code, Message: message, Retryable: code == "UNAVAILABLE"},
		}),
	})
}

func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("failed to marshal websocket frame payload: %v", err)
		return nil
	}
	return b
}
