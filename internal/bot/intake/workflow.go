// Package intake drives the admin product-creation conversation: collect a
// name, a description, then a price, and append the product to the catalog.
package intake

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/louisbranch/bazaar.chat/internal/bot/event"
	"github.com/louisbranch/bazaar.chat/internal/bot/render"
	"github.com/louisbranch/bazaar.chat/internal/bot/router"
	catalogdomain "github.com/louisbranch/bazaar.chat/internal/catalog/domain"
	conversationdomain "github.com/louisbranch/bazaar.chat/internal/conversation/domain"
	platformerrors "github.com/louisbranch/bazaar.chat/internal/platform/errors"
)

// Workflow implements the product intake finite state machine. Only users
// passing the allow check may enter it.
type Workflow struct {
	catalog *catalogdomain.Service
	allow   func(userID int64) bool
	loc     render.Localizer
	clock   func() time.Time
}

// New constructs the intake workflow. allow gates entry; a nil allow
// rejects everyone.
func New(catalog *catalogdomain.Service, allow func(int64) bool, loc render.Localizer, clock func() time.Time) *Workflow {
	if clock == nil {
		clock = time.Now
	}
	return &Workflow{catalog: catalog, allow: allow, loc: loc, clock: clock}
}

// Start enters intake at the name step. Unauthorized users are refused and
// their session stays untouched.
func (w *Workflow) Start(ctx context.Context, session conversationdomain.Session) (router.Result, error) {
	if w.allow == nil || !w.allow(session.UserID) {
		return router.Result{}, platformerrors.New(platformerrors.CodeUnauthorized, "user is not an admin")
	}

	session.StartIntake(w.clock())
	text, buttons := render.NamePrompt(w.loc)
	return router.Result{
		Session:  &session,
		Messages: []event.RenderMessage{{UserID: session.UserID, Text: text, Buttons: buttons}},
	}, nil
}

// HandleEvent runs the current intake step.
func (w *Workflow) HandleEvent(ctx context.Context, ev event.Event, session conversationdomain.Session) (router.Result, error) {
	if session.Kind != conversationdomain.WorkflowIntake || session.Intake == nil {
		return router.Result{}, conversationdomain.ErrWorkflowNotActive
	}

	switch e := ev.(type) {
	case event.Command:
		switch e.Name {
		case "cancel":
			return w.cancel(session), nil
		case "admin":
			return w.Start(ctx, session)
		}
	case event.ButtonPress:
		action, err := event.ParseAction(e.ActionID)
		if err != nil {
			return router.Result{}, err
		}
		switch action.(type) {
		case event.CancelIntake, event.CancelCheckout:
			return w.cancel(session), nil
		case event.StartIntake:
			return w.Start(ctx, session)
		}
	case event.TextReply:
		return w.handleText(ctx, e.Text, session)
	}

	return w.reprompt(session), nil
}

func (w *Workflow) handleText(ctx context.Context, text string, session conversationdomain.Session) (router.Result, error) {
	now := w.clock()
	switch session.Intake.Step {
	case conversationdomain.IntakeAwaitingName:
		name := strings.TrimSpace(text)
		if name == "" {
			// Re-prompt in place; the step does not advance.
			text, buttons := render.NamePrompt(w.loc)
			return w.message(session.UserID, text, buttons), nil
		}
		session.Intake.Name = name
		if err := session.AdvanceIntake(conversationdomain.IntakeAwaitingDescription, now); err != nil {
			return router.Result{}, err
		}
		text, buttons := render.DescriptionPrompt(w.loc)
		result := w.message(session.UserID, text, buttons)
		result.Session = &session
		return result, nil

	case conversationdomain.IntakeAwaitingDescription:
		session.Intake.Description = strings.TrimSpace(text)
		if err := session.AdvanceIntake(conversationdomain.IntakeAwaitingPrice, now); err != nil {
			return router.Result{}, err
		}
		text, buttons := render.PricePrompt(w.loc)
		result := w.message(session.UserID, text, buttons)
		result.Session = &session
		return result, nil

	case conversationdomain.IntakeAwaitingPrice:
		price, err := parsePrice(text)
		if err != nil {
			// Invalid price keeps the workflow on the price step.
			return router.Result{
				Messages: []event.RenderMessage{{UserID: session.UserID, Text: render.PriceInvalid(w.loc)}},
			}, nil
		}
		product, err := w.catalog.Create(ctx, catalogdomain.CreateProductInput{
			Name:        session.Intake.Name,
			Description: session.Intake.Description,
			Price:       price,
		})
		if err != nil {
			return router.Result{}, err
		}
		session.Reset(now)
		text, buttons := render.ProductCreated(w.loc, product)
		result := w.message(session.UserID, text, buttons)
		result.Session = &session
		return result, nil
	}
	return router.Result{}, conversationdomain.ErrWorkflowNotActive
}

// parsePrice accepts a whole number of minor units greater than zero.
func parsePrice(text string) (int64, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
	if err != nil {
		return 0, platformerrors.Wrap(platformerrors.CodePriceInvalid, "price is not a positive integer", err)
	}
	if value <= 0 {
		return 0, platformerrors.New(platformerrors.CodePriceInvalid, "price is not a positive integer")
	}
	return value, nil
}

func (w *Workflow) cancel(session conversationdomain.Session) router.Result {
	session.Reset(w.clock())
	text, buttons := render.IntakeCancelled(w.loc)
	result := w.message(session.UserID, text, buttons)
	result.Session = &session
	return result
}

func (w *Workflow) reprompt(session conversationdomain.Session) router.Result {
	var text string
	var buttons []event.Button
	switch session.Intake.Step {
	case conversationdomain.IntakeAwaitingName:
		text, buttons = render.NamePrompt(w.loc)
	case conversationdomain.IntakeAwaitingDescription:
		text, buttons = render.DescriptionPrompt(w.loc)
	default:
		text, buttons = render.PricePrompt(w.loc)
	}
	return w.message(session.UserID, text, buttons)
}

func (w *Workflow) message(userID int64, text string, buttons []event.Button) router.Result {
	return router.Result{
		Messages: []event.RenderMessage{{UserID: userID, Text: text, Buttons: buttons}},
	}
}
