package app

import (
	"context"
	"errors"
	"strconv"

	"github.com/louisbranch/bazaar.chat/internal/bot/checkout"
	"github.com/louisbranch/bazaar.chat/internal/bot/event"
	"github.com/louisbranch/bazaar.chat/internal/bot/intake"
	"github.com/louisbranch/bazaar.chat/internal/bot/render"
	"github.com/louisbranch/bazaar.chat/internal/bot/router"
	cartdomain "github.com/louisbranch/bazaar.chat/internal/cart/domain"
	catalogdomain "github.com/louisbranch/bazaar.chat/internal/catalog/domain"
	conversationdomain "github.com/louisbranch/bazaar.chat/internal/conversation/domain"
	platformerrors "github.com/louisbranch/bazaar.chat/internal/platform/errors"
)

// handlers holds the idle-session command and action handlers. Workflow
// steps live in their own packages; these only cover the idle surface.
type handlers struct {
	catalog  *catalogdomain.Service
	carts    *cartdomain.Service
	checkout *checkout.Workflow
	intake   *intake.Workflow
	loc      render.Localizer
}

func (h *handlers) register(r *router.Router) error {
	commands := map[string]router.CommandHandler{
		"start":    h.start,
		"help":     h.help,
		"menu":     h.start,
		"products": h.products,
		"cart":     h.cart,
		"order":    h.order,
		"admin":    h.admin,
		"cancel":   h.cancelIdle,
		"contacts": h.contacts,
	}
	for name, handler := range commands {
		if err := r.RegisterCommand(name, handler); err != nil {
			return err
		}
	}

	actions := map[string]router.ActionHandler{
		event.ViewProduct{}.ActionKind():     h.viewProduct,
		event.AddProduct{}.ActionKind():      h.addProduct,
		event.ShowProducts{}.ActionKind():    h.showProducts,
		event.ShowCart{}.ActionKind():        h.showCart,
		event.ClearCart{}.ActionKind():       h.clearCart,
		event.ShowContacts{}.ActionKind():    h.showContacts,
		event.StartCheckout{}.ActionKind():   h.startCheckout,
		event.StartIntake{}.ActionKind():     h.startIntake,
		event.ConfirmCheckout{}.ActionKind(): h.staleAction,
		event.CancelCheckout{}.ActionKind():  h.staleAction,
		event.CancelIntake{}.ActionKind():    h.staleAction,
	}
	for kind, handler := range actions {
		if err := r.RegisterAction(kind, handler); err != nil {
			return err
		}
	}

	return r.RegisterFallback(h.fallback)
}

func (h *handlers) start(ctx context.Context, cmd event.Command, session conversationdomain.Session) (router.Result, error) {
	text, buttons := render.Welcome(h.loc)
	return message(cmd.User, text, buttons), nil
}

func (h *handlers) help(ctx context.Context, cmd event.Command, session conversationdomain.Session) (router.Result, error) {
	return message(cmd.User, render.Help(h.loc), nil), nil
}

func (h *handlers) products(ctx context.Context, cmd event.Command, session conversationdomain.Session) (router.Result, error) {
	return h.renderCatalog(ctx, cmd.User)
}

func (h *handlers) cart(ctx context.Context, cmd event.Command, session conversationdomain.Session) (router.Result, error) {
	return h.renderCart(ctx, cmd.User)
}

func (h *handlers) order(ctx context.Context, cmd event.Command, session conversationdomain.Session) (router.Result, error) {
	return h.checkout.Start(ctx, session)
}

func (h *handlers) admin(ctx context.Context, cmd event.Command, session conversationdomain.Session) (router.Result, error) {
	return h.intake.Start(ctx, session)
}

// cancelIdle answers /cancel with nothing active. Mid-workflow cancels are
// consumed by the workflow itself, which takes precedence.
func (h *handlers) cancelIdle(ctx context.Context, cmd event.Command, session conversationdomain.Session) (router.Result, error) {
	text, buttons := render.Welcome(h.loc)
	return message(cmd.User, text, buttons), nil
}

func (h *handlers) contacts(ctx context.Context, cmd event.Command, session conversationdomain.Session) (router.Result, error) {
	return message(cmd.User, render.Contacts(h.loc), nil), nil
}

func (h *handlers) viewProduct(ctx context.Context, press event.ButtonPress, action event.Action, session conversationdomain.Session) (router.Result, error) {
	view, ok := action.(event.ViewProduct)
	if !ok {
		return router.Result{}, errors.New("view handler bound to wrong action")
	}
	product, err := h.catalog.Get(ctx, view.ProductID)
	if err != nil {
		return router.Result{}, productErr(err, view.ProductID)
	}
	text, buttons := render.ProductDetail(h.loc, product)
	return replaceOrMessage(press, text, buttons), nil
}

func (h *handlers) addProduct(ctx context.Context, press event.ButtonPress, action event.Action, session conversationdomain.Session) (router.Result, error) {
	add, ok := action.(event.AddProduct)
	if !ok {
		return router.Result{}, errors.New("add handler bound to wrong action")
	}
	product, err := h.carts.AddItem(ctx, press.User, add.ProductID)
	if err != nil {
		return router.Result{}, productErr(err, add.ProductID)
	}
	return message(press.User, render.AddedToCart(h.loc, product.Name), render.MainMenu(h.loc)), nil
}

func (h *handlers) showProducts(ctx context.Context, press event.ButtonPress, action event.Action, session conversationdomain.Session) (router.Result, error) {
	result, err := h.renderCatalog(ctx, press.User)
	if err != nil {
		return router.Result{}, err
	}
	return asReplace(press, result), nil
}

func (h *handlers) showCart(ctx context.Context, press event.ButtonPress, action event.Action, session conversationdomain.Session) (router.Result, error) {
	return h.renderCart(ctx, press.User)
}

func (h *handlers) clearCart(ctx context.Context, press event.ButtonPress, action event.Action, session conversationdomain.Session) (router.Result, error) {
	if err := h.carts.Clear(ctx, press.User); err != nil {
		return router.Result{}, err
	}
	return message(press.User, render.CartCleared(h.loc), render.MainMenu(h.loc)), nil
}

func (h *handlers) showContacts(ctx context.Context, press event.ButtonPress, action event.Action, session conversationdomain.Session) (router.Result, error) {
	return message(press.User, render.Contacts(h.loc), nil), nil
}

func (h *handlers) startCheckout(ctx context.Context, press event.ButtonPress, action event.Action, session conversationdomain.Session) (router.Result, error) {
	return h.checkout.Start(ctx, session)
}

func (h *handlers) startIntake(ctx context.Context, press event.ButtonPress, action event.Action, session conversationdomain.Session) (router.Result, error) {
	return h.intake.Start(ctx, session)
}

// staleAction covers confirm/cancel buttons pressed after their workflow
// already ended, e.g. from an old message.
func (h *handlers) staleAction(ctx context.Context, press event.ButtonPress, action event.Action, session conversationdomain.Session) (router.Result, error) {
	return message(press.User, render.Unrecognized(h.loc), render.MainMenu(h.loc)), nil
}

func (h *handlers) fallback(ctx context.Context, ev event.Event, session conversationdomain.Session) (router.Result, error) {
	return message(ev.UserID(), render.Unrecognized(h.loc), render.MainMenu(h.loc)), nil
}

func (h *handlers) renderCatalog(ctx context.Context, userID int64) (router.Result, error) {
	products, err := h.catalog.List(ctx)
	if err != nil {
		return router.Result{}, err
	}
	text, buttons := render.CatalogList(h.loc, products)
	return message(userID, text, buttons), nil
}

func (h *handlers) renderCart(ctx context.Context, userID int64) (router.Result, error) {
	lines, total, err := h.carts.Items(ctx, userID)
	if err != nil {
		return router.Result{}, err
	}
	text, buttons := render.CartView(h.loc, lines, total)
	return message(userID, text, buttons), nil
}

// productErr lifts catalog and cart sentinels into the recoverable error
// the router can turn into user copy.
func productErr(err error, productID int64) error {
	if errors.Is(err, catalogdomain.ErrNotFound) || errors.Is(err, cartdomain.ErrProductNotFound) {
		return platformerrors.WithMetadata(
			platformerrors.CodeProductNotFound,
			"product does not exist",
			map[string]string{"product_id": strconv.FormatInt(productID, 10)},
		)
	}
	return err
}

func message(userID int64, text string, buttons []event.Button) router.Result {
	return router.Result{
		Messages: []event.RenderMessage{{UserID: userID, Text: text, Buttons: buttons}},
	}
}

// replaceOrMessage edits the originating message in place when the press
// carries a reference, matching the in-chat navigation feel.
func replaceOrMessage(press event.ButtonPress, text string, buttons []event.Button) router.Result {
	if press.MessageRef == "" {
		return message(press.User, text, buttons)
	}
	return router.Result{
		Replaces: []event.ReplaceMessage{{
			UserID:     press.User,
			MessageRef: press.MessageRef,
			Text:       text,
			Buttons:    buttons,
		}},
	}
}

func asReplace(press event.ButtonPress, result router.Result) router.Result {
	if press.MessageRef == "" || len(result.Messages) != 1 {
		return result
	}
	msg := result.Messages[0]
	return router.Result{
		Session: result.Session,
		Replaces: []event.ReplaceMessage{{
			UserID:     msg.UserID,
			MessageRef: press.MessageRef,
			Text:       msg.Text,
			Buttons:    msg.Buttons,
		}},
	}
}
