// Package app assembles the shop bot: services, workflows, and the router
// with its full command and action registry.
package app

import (
	"context"
	"time"

	"github.com/louisbranch/bazaar.chat/internal/bot/checkout"
	"github.com/louisbranch/bazaar.chat/internal/bot/event"
	"github.com/louisbranch/bazaar.chat/internal/bot/intake"
	"github.com/louisbranch/bazaar.chat/internal/bot/render"
	"github.com/louisbranch/bazaar.chat/internal/bot/router"
	cartdomain "github.com/louisbranch/bazaar.chat/internal/cart/domain"
	catalogdomain "github.com/louisbranch/bazaar.chat/internal/catalog/domain"
	conversationdomain "github.com/louisbranch/bazaar.chat/internal/conversation/domain"
	ordersdomain "github.com/louisbranch/bazaar.chat/internal/orders/domain"
)

// Config wires the bot's services and policy knobs.
type Config struct {
	Catalog  *catalogdomain.Service
	Carts    *cartdomain.Service
	Orders   *ordersdomain.Service
	Sessions conversationdomain.Store
	Renderer event.Renderer

	// AdminIDs is the allow-list for the product intake workflow.
	AdminIDs []int64
	// Locale selects user-facing copy.
	Locale string
	// IdleTimeout auto-cancels stalled workflows at dispatch. Zero disables.
	IdleTimeout time.Duration
	Clock       func() time.Time
}

// Bot is the assembled conversation engine. Dispatch is its only inbound
// surface; transports feed it events.
type Bot struct {
	router   *router.Router
	checkout *checkout.Workflow
	intake   *intake.Workflow
	loc      render.Localizer
}

// New builds the bot and registers every command, action, and workflow.
// Registration conflicts surface here, before any event flows.
func New(cfg Config) (*Bot, error) {
	loc := render.NewLocalizer(cfg.Locale)

	admins := make(map[int64]bool, len(cfg.AdminIDs))
	for _, id := range cfg.AdminIDs {
		admins[id] = true
	}
	allow := func(userID int64) bool { return admins[userID] }

	r, err := router.New(router.Config{
		Sessions:    cfg.Sessions,
		Renderer:    cfg.Renderer,
		Locale:      cfg.Locale,
		IdleTimeout: cfg.IdleTimeout,
		Clock:       cfg.Clock,
	})
	if err != nil {
		return nil, err
	}

	bot := &Bot{
		router:   r,
		checkout: checkout.New(cfg.Carts, cfg.Orders, loc, cfg.Clock),
		intake:   intake.New(cfg.Catalog, allow, loc, cfg.Clock),
		loc:      loc,
	}

	handlers := &handlers{
		catalog:  cfg.Catalog,
		carts:    cfg.Carts,
		checkout: bot.checkout,
		intake:   bot.intake,
		loc:      loc,
	}
	if err := handlers.register(r); err != nil {
		return nil, err
	}
	if err := r.RegisterWorkflow(conversationdomain.WorkflowCheckout, bot.checkout); err != nil {
		return nil, err
	}
	if err := r.RegisterWorkflow(conversationdomain.WorkflowIntake, bot.intake); err != nil {
		return nil, err
	}
	return bot, nil
}

// Dispatch routes one inbound event through the engine.
func (b *Bot) Dispatch(ctx context.Context, ev event.Event) error {
	return b.router.Dispatch(ctx, ev)
}
