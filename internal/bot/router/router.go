// Package router dispatches inbound events to commands, button actions, and
// workflow steps with a deterministic precedence, serializing all work per
// user.
package router

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/louisbranch/bazaar.chat/internal/bot/event"
	"github.com/louisbranch/bazaar.chat/internal/bot/render"
	conversationdomain "github.com/louisbranch/bazaar.chat/internal/conversation/domain"
	platformerrors "github.com/louisbranch/bazaar.chat/internal/platform/errors"
	"github.com/louisbranch/bazaar.chat/internal/platform/errors/i18n"
)

const userLockStripes = 64

// Config wires the router's collaborators.
type Config struct {
	Sessions conversationdomain.Store
	Renderer event.Renderer
	// Locale selects user-facing copy for expiry notices and recoverable
	// error messages.
	Locale string
	// IdleTimeout expires stalled workflows lazily at dispatch. Zero
	// disables expiry.
	IdleTimeout time.Duration
	Clock       func() time.Time
}

// Router routes one event at a time per user. Matching precedence is fixed:
// an active workflow step consumes every event, then explicit commands,
// then parsed button actions, then the fallback.
type Router struct {
	sessions conversationdomain.Store
	deliver  *Deliverer
	loc      render.Localizer
	locale   string
	idle     time.Duration
	clock    func() time.Time

	commands  map[string]CommandHandler
	actions   map[string]ActionHandler
	workflows map[conversationdomain.WorkflowKind]StepHandler
	fallback  FallbackHandler

	locks [userLockStripes]sync.Mutex
}

// New constructs an empty router.
func New(cfg Config) (*Router, error) {
	if cfg.Sessions == nil {
		return nil, fmt.Errorf("router: session store is required")
	}
	if cfg.Renderer == nil {
		return nil, fmt.Errorf("router: renderer is required")
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Router{
		sessions:  cfg.Sessions,
		deliver:   NewDeliverer(cfg.Renderer),
		loc:       render.NewLocalizer(cfg.Locale),
		locale:    cfg.Locale,
		idle:      cfg.IdleTimeout,
		clock:     clock,
		commands:  map[string]CommandHandler{},
		actions:   map[string]ActionHandler{},
		workflows: map[conversationdomain.WorkflowKind]StepHandler{},
	}, nil
}

// RegisterCommand binds a slash-command name. Registering the same name
// twice is a wiring bug and fails immediately.
func (r *Router) RegisterCommand(name string, handler CommandHandler) error {
	if handler == nil {
		return fmt.Errorf("router: nil handler for command %q", name)
	}
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("router: command %q already registered", name)
	}
	r.commands[name] = handler
	return nil
}

// RegisterAction binds a parsed action kind.
func (r *Router) RegisterAction(kind string, handler ActionHandler) error {
	if handler == nil {
		return fmt.Errorf("router: nil handler for action %q", kind)
	}
	if _, exists := r.actions[kind]; exists {
		return fmt.Errorf("router: action %q already registered", kind)
	}
	r.actions[kind] = handler
	return nil
}

// RegisterWorkflow binds the step handler that consumes every event while
// its workflow is active.
func (r *Router) RegisterWorkflow(kind conversationdomain.WorkflowKind, handler StepHandler) error {
	if handler == nil {
		return fmt.Errorf("router: nil handler for workflow %q", kind)
	}
	if _, exists := r.workflows[kind]; exists {
		return fmt.Errorf("router: workflow %q already registered", kind)
	}
	r.workflows[kind] = handler
	return nil
}

// RegisterFallback binds the handler for events nothing else matches.
func (r *Router) RegisterFallback(handler FallbackHandler) error {
	if handler == nil {
		return fmt.Errorf("router: nil fallback handler")
	}
	if r.fallback != nil {
		return fmt.Errorf("router: fallback already registered")
	}
	r.fallback = handler
	return nil
}

// Dispatch routes one event. The user's session transition commits before
// any outbound delivery, and recoverable domain errors become localized
// user messages instead of escaping.
func (r *Router) Dispatch(ctx context.Context, ev event.Event) error {
	ctx, span := otel.Tracer("bot/router").Start(ctx, "dispatch", trace.WithAttributes(
		attribute.String("event.kind", ev.Kind()),
		attribute.Int64("user.id", ev.UserID()),
	))
	defer span.End()

	lock := r.lockFor(ev.UserID())
	lock.Lock()
	defer lock.Unlock()

	session, err := r.loadSession(ctx, ev.UserID())
	if err != nil {
		span.RecordError(err)
		return err
	}

	var notices []event.RenderMessage
	now := r.clock()
	if session.ExpiredAt(now, r.idle) {
		session.Reset(now)
		if err := r.sessions.PutSession(ctx, session); err != nil {
			span.RecordError(err)
			return err
		}
		notices = append(notices, event.RenderMessage{
			UserID:  session.UserID,
			Text:    render.SessionExpired(r.loc),
			Buttons: render.MainMenu(r.loc),
		})
	}

	result, err := r.route(ctx, ev, session)
	if err != nil {
		userMessage, recoverable := r.userMessage(err)
		if !recoverable {
			span.RecordError(err)
			return err
		}
		result = Result{Messages: []event.RenderMessage{{UserID: ev.UserID(), Text: userMessage}}}
	}

	if result.Session != nil {
		if err := r.sessions.PutSession(ctx, *result.Session); err != nil {
			span.RecordError(err)
			return err
		}
	}

	r.deliver.deliver(ctx, append(notices, result.Messages...), result.Replaces)
	return nil
}

func (r *Router) route(ctx context.Context, ev event.Event, session conversationdomain.Session) (Result, error) {
	if !session.IsIdle() {
		handler, ok := r.workflows[session.Kind]
		if !ok {
			return Result{}, fmt.Errorf("router: no handler for workflow %q", session.Kind)
		}
		return handler.HandleEvent(ctx, ev, session)
	}

	switch e := ev.(type) {
	case event.Command:
		if handler, ok := r.commands[e.Name]; ok {
			return handler(ctx, e, session)
		}
	case event.ButtonPress:
		action, err := event.ParseAction(e.ActionID)
		if err != nil {
			return Result{}, err
		}
		if handler, ok := r.actions[action.ActionKind()]; ok {
			return handler(ctx, e, action, session)
		}
	}

	if r.fallback == nil {
		return Result{}, nil
	}
	return r.fallback(ctx, ev, session)
}

func (r *Router) loadSession(ctx context.Context, userID int64) (conversationdomain.Session, error) {
	session, err := r.sessions.GetSession(ctx, userID)
	if err != nil {
		if stderrors.Is(err, conversationdomain.ErrNotFound) {
			return conversationdomain.NewSession(userID), nil
		}
		return conversationdomain.Session{}, err
	}
	return session, nil
}

func (r *Router) lockFor(userID int64) *sync.Mutex {
	return &r.locks[uint64(userID)%userLockStripes]
}

// userMessage maps a recoverable domain error to its localized copy. Errors
// outside the recoverable set escape to the caller.
func (r *Router) userMessage(err error) (string, bool) {
	code := platformerrors.CodeOf(err)
	switch code {
	case platformerrors.CodeProductNotFound,
		platformerrors.CodeCartEmpty,
		platformerrors.CodePriceInvalid,
		platformerrors.CodeProductNameEmpty,
		platformerrors.CodeUnauthorized,
		platformerrors.CodeActionMalformed:
	default:
		return "", false
	}

	var metadata map[string]string
	var domainErr *platformerrors.Error
	if stderrors.As(err, &domainErr) {
		metadata = domainErr.Metadata
	}
	return i18n.GetCatalog(r.locale).Format(string(code), metadata), true
}
