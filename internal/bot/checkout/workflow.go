// Package checkout drives the cart-to-order conversation: collect a phone,
// collect an address, freeze the cart into a snapshot, then wait for an
// explicit confirm or cancel.
package checkout

import (
	"context"
	"time"

	"github.com/louisbranch/bazaar.chat/internal/bot/event"
	"github.com/louisbranch/bazaar.chat/internal/bot/render"
	"github.com/louisbranch/bazaar.chat/internal/bot/router"
	cartdomain "github.com/louisbranch/bazaar.chat/internal/cart/domain"
	conversationdomain "github.com/louisbranch/bazaar.chat/internal/conversation/domain"
	ordersdomain "github.com/louisbranch/bazaar.chat/internal/orders/domain"
	platformerrors "github.com/louisbranch/bazaar.chat/internal/platform/errors"
)

// Workflow implements the checkout finite state machine.
type Workflow struct {
	carts  *cartdomain.Service
	orders *ordersdomain.Service
	loc    render.Localizer
	clock  func() time.Time
}

// New constructs the checkout workflow.
func New(carts *cartdomain.Service, orders *ordersdomain.Service, loc render.Localizer, clock func() time.Time) *Workflow {
	if clock == nil {
		clock = time.Now
	}
	return &Workflow{carts: carts, orders: orders, loc: loc, clock: clock}
}

// Start enters checkout, failing with CART_EMPTY when there is nothing to
// order. Starting while already inside checkout restarts from the phone
// step, discarding prior collected fields.
func (w *Workflow) Start(ctx context.Context, session conversationdomain.Session) (router.Result, error) {
	lines, _, err := w.carts.Items(ctx, session.UserID)
	if err != nil {
		return router.Result{}, err
	}
	if len(lines) == 0 {
		return router.Result{}, platformerrors.New(platformerrors.CodeCartEmpty, "checkout started with empty cart")
	}

	session.StartCheckout(w.clock())
	text, buttons := render.PhonePrompt(w.loc)
	return router.Result{
		Session:  &session,
		Messages: []event.RenderMessage{{UserID: session.UserID, Text: text, Buttons: buttons}},
	}, nil
}

// HandleEvent runs the current checkout step. Cancel always wins; start
// restarts; otherwise the event is interpreted by the step it arrived in.
func (w *Workflow) HandleEvent(ctx context.Context, ev event.Event, session conversationdomain.Session) (router.Result, error) {
	if session.Kind != conversationdomain.WorkflowCheckout || session.Checkout == nil {
		return router.Result{}, conversationdomain.ErrWorkflowNotActive
	}

	switch e := ev.(type) {
	case event.Command:
		switch e.Name {
		case "cancel":
			return w.cancel(session), nil
		case "order", "checkout":
			return w.Start(ctx, session)
		}
	case event.ButtonPress:
		action, err := event.ParseAction(e.ActionID)
		if err != nil {
			return router.Result{}, err
		}
		switch action.(type) {
		case event.CancelCheckout, event.CancelIntake:
			return w.cancel(session), nil
		case event.StartCheckout:
			return w.Start(ctx, session)
		case event.ConfirmCheckout:
			if session.Checkout.Step == conversationdomain.CheckoutAwaitingConfirmation {
				return w.confirm(ctx, session)
			}
		}
	case event.TextReply:
		return w.handleText(ctx, e.Text, session)
	}

	// Anything else re-prompts the current step.
	return w.reprompt(session), nil
}

func (w *Workflow) handleText(ctx context.Context, text string, session conversationdomain.Session) (router.Result, error) {
	now := w.clock()
	switch session.Checkout.Step {
	case conversationdomain.CheckoutAwaitingPhone:
		// Stored verbatim; no format validation.
		session.Checkout.Phone = text
		if err := session.AdvanceCheckout(conversationdomain.CheckoutAwaitingAddress, now); err != nil {
			return router.Result{}, err
		}
		promptText, buttons := render.AddressPrompt(w.loc)
		return router.Result{
			Session:  &session,
			Messages: []event.RenderMessage{{UserID: session.UserID, Text: promptText, Buttons: buttons}},
		}, nil

	case conversationdomain.CheckoutAwaitingAddress:
		session.Checkout.Address = text
		snapshot, err := w.snapshotCart(ctx, session.UserID)
		if err != nil {
			return router.Result{}, err
		}
		session.Checkout.Snapshot = &snapshot
		if err := session.AdvanceCheckout(conversationdomain.CheckoutAwaitingConfirmation, now); err != nil {
			return router.Result{}, err
		}
		summary, buttons := render.ConfirmationSummary(w.loc, snapshot, session.Checkout.Phone, session.Checkout.Address)
		return router.Result{
			Session:  &session,
			Messages: []event.RenderMessage{{UserID: session.UserID, Text: summary, Buttons: buttons}},
		}, nil

	case conversationdomain.CheckoutAwaitingConfirmation:
		// Free text does not confirm; only the explicit confirm action does.
		return w.reprompt(session), nil
	}
	return router.Result{}, conversationdomain.ErrWorkflowNotActive
}

// snapshotCart freezes cart lines and total so later cart mutations cannot
// change the order being confirmed.
func (w *Workflow) snapshotCart(ctx context.Context, userID int64) (conversationdomain.OrderSnapshot, error) {
	lines, total, err := w.carts.Items(ctx, userID)
	if err != nil {
		return conversationdomain.OrderSnapshot{}, err
	}
	items := make([]conversationdomain.SnapshotItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, conversationdomain.SnapshotItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return conversationdomain.OrderSnapshot{Items: items, Total: total}, nil
}

func (w *Workflow) confirm(ctx context.Context, session conversationdomain.Session) (router.Result, error) {
	state := session.Checkout
	if state.Snapshot == nil {
		return router.Result{}, conversationdomain.ErrWorkflowNotActive
	}

	order, err := w.orders.Record(ctx, ordersdomain.RecordInput{
		UserID:   session.UserID,
		Phone:    state.Phone,
		Address:  state.Address,
		Snapshot: *state.Snapshot,
	})
	if err != nil {
		return router.Result{}, err
	}
	if err := w.carts.Clear(ctx, session.UserID); err != nil {
		return router.Result{}, err
	}

	session.Reset(w.clock())
	text, buttons := render.OrderConfirmed(w.loc, order)
	return router.Result{
		Session:  &session,
		Messages: []event.RenderMessage{{UserID: session.UserID, Text: text, Buttons: buttons}},
	}, nil
}

func (w *Workflow) cancel(session conversationdomain.Session) router.Result {
	session.Reset(w.clock())
	text, buttons := render.CheckoutCancelled(w.loc)
	return router.Result{
		Session:  &session,
		Messages: []event.RenderMessage{{UserID: session.UserID, Text: text, Buttons: buttons}},
	}
}

func (w *Workflow) reprompt(session conversationdomain.Session) router.Result {
	var text string
	var buttons []event.Button
	switch session.Checkout.Step {
	case conversationdomain.CheckoutAwaitingPhone:
		text, buttons = render.PhonePrompt(w.loc)
	case conversationdomain.CheckoutAwaitingAddress:
		text, buttons = render.AddressPrompt(w.loc)
	case conversationdomain.CheckoutAwaitingConfirmation:
		text, buttons = render.ConfirmationSummary(w.loc, *session.Checkout.Snapshot, session.Checkout.Phone, session.Checkout.Address)
	}
	return router.Result{
		Messages: []event.RenderMessage{{UserID: session.UserID, Text: text, Buttons: buttons}},
	}
}
