// Package router dispatches inbound events to exactly one handler based on
// the sending user's conversation state, and commits the handler's session
// transition before any outbound delivery.
package router

import (
	"context"

	"github.com/louisbranch/bazaar.chat/internal/bot/event"
	conversationdomain "github.com/louisbranch/bazaar.chat/internal/conversation/domain"
)

// Result is what a handler asks the router to do after it ran: deliver
// outbound messages and, optionally, commit a session transition.
type Result struct {
	Messages []event.RenderMessage
	Replaces []event.ReplaceMessage
	// Session, when non-nil, is committed atomically for the user before
	// any message is delivered.
	Session *conversationdomain.Session
}

// CommandHandler handles one registered slash-command.
type CommandHandler func(ctx context.Context, cmd event.Command, session conversationdomain.Session) (Result, error)

// ActionHandler handles one parsed button action kind.
type ActionHandler func(ctx context.Context, press event.ButtonPress, action event.Action, session conversationdomain.Session) (Result, error)

// FallbackHandler handles anything no other handler claims.
type FallbackHandler func(ctx context.Context, ev event.Event, session conversationdomain.Session) (Result, error)

// StepHandler runs the active workflow's current step. While a workflow is
// active every event for the user lands here, whatever it looks like.
type StepHandler interface {
	HandleEvent(ctx context.Context, ev event.Event, session conversationdomain.Session) (Result, error)
}
