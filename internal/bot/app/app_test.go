package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/louisbranch/bazaar.chat/internal/bot/event"
	cartdomain "github.com/louisbranch/bazaar.chat/internal/cart/domain"
	cartmemory "github.com/louisbranch/bazaar.chat/internal/cart/storage/memory"
	catalogdomain "github.com/louisbranch/bazaar.chat/internal/catalog/domain"
	"github.com/louisbranch/bazaar.chat/internal/catalog/seed"
	catalogmemory "github.com/louisbranch/bazaar.chat/internal/catalog/storage/memory"
	conversationdomain "github.com/louisbranch/bazaar.chat/internal/conversation/domain"
	conversationmemory "github.com/louisbranch/bazaar.chat/internal/conversation/storage/memory"
	ordersdomain "github.com/louisbranch/bazaar.chat/internal/orders/domain"
	ordersmemory "github.com/louisbranch/bazaar.chat/internal/orders/storage/memory"
)

type capturingRenderer struct {
	mu       sync.Mutex
	messages []event.RenderMessage
}

func (r *capturingRenderer) Render(ctx context.Context, msg event.RenderMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, msg)
	return nil
}

func (r *capturingRenderer) Replace(ctx context.Context, msg event.ReplaceMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, event.RenderMessage{UserID: msg.UserID, Text: msg.Text, Buttons: msg.Buttons})
	return nil
}

func (r *capturingRenderer) last(t *testing.T) event.RenderMessage {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.messages) == 0 {
		t.Fatal("no messages delivered")
	}
	return r.messages[len(r.messages)-1]
}

type world struct {
	bot      *Bot
	renderer *capturingRenderer
	catalog  *catalogdomain.Service
	carts    *cartdomain.Service
	orders   *ordersdomain.Service
	sessions *conversationmemory.Store
}

type catalogAdapter struct {
	svc *catalogdomain.Service
}

func (a catalogAdapter) Get(ctx context.Context, id int64) (catalogdomain.Product, error) {
	return a.svc.Get(ctx, id)
}

func newWorld(t *testing.T, admins ...int64) *world {
	t.Helper()
	catalog := catalogdomain.NewService(catalogmemory.New())
	carts := cartdomain.NewService(cartmemory.New(), catalogAdapter{catalog})
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	orders := ordersdomain.NewService(ordersmemory.New(), clock, nil)
	sessions := conversationmemory.New()
	renderer := &capturingRenderer{}

	bot, err := New(Config{
		Catalog:  catalog,
		Carts:    carts,
		Orders:   orders,
		Sessions: sessions,
		Renderer: renderer,
		AdminIDs: admins,
		Locale:   "en",
		Clock:    clock,
	})
	if err != nil {
		t.Fatalf("new bot: %v", err)
	}
	return &world{bot: bot, renderer: renderer, catalog: catalog, carts: carts, orders: orders, sessions: sessions}
}

func (w *world) dispatch(t *testing.T, ev event.Event) {
	t.Helper()
	if err := w.bot.Dispatch(context.Background(), ev); err != nil {
		t.Fatalf("dispatch %s: %v", ev.Kind(), err)
	}
}

func (w *world) session(t *testing.T, userID int64) conversationdomain.Session {
	t.Helper()
	session, err := w.sessions.GetSession(context.Background(), userID)
	if err != nil {
		return conversationdomain.NewSession(userID)
	}
	return session
}

func TestAddSameProductTwiceMergesLine(t *testing.T) {
	t.Parallel()
	w := newWorld(t)
	ctx := context.Background()
	if err := seed.Ensure(ctx, w.catalog); err != nil {
		t.Fatalf("seed: %v", err)
	}

	add := event.ButtonPress{ActionID: "add:1", User: 7}
	w.dispatch(t, add)
	w.dispatch(t, add)

	lines, total, err := w.carts.Items(ctx, 7)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", lines[0].Quantity)
	}
	if total != 159800 {
		t.Fatalf("expected total 159800, got %d", total)
	}
}

func TestCheckoutStartWithEmptyCart(t *testing.T) {
	t.Parallel()
	w := newWorld(t)

	w.dispatch(t, event.Command{Name: "order", User: 7})

	if !w.session(t, 7).IsIdle() {
		t.Fatal("session must stay idle after an empty-cart start")
	}
	if msg := w.renderer.last(t); msg.Text == "" {
		t.Fatal("expected an empty-cart message")
	}
}

func TestAdminIntakeCreatesProduct(t *testing.T) {
	t.Parallel()
	w := newWorld(t, 42)
	ctx := context.Background()

	w.dispatch(t, event.Command{Name: "admin", User: 42})
	w.dispatch(t, event.TextReply{Text: "X", User: 42})
	w.dispatch(t, event.TextReply{Text: "Y", User: 42})
	w.dispatch(t, event.TextReply{Text: "100", User: 42})

	products, err := w.catalog.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("expected one product, got %d", len(products))
	}
	if products[0].Name != "X" || products[0].Price != 100 {
		t.Fatalf("unexpected product: %+v", products[0])
	}
	if !w.session(t, 42).IsIdle() {
		t.Fatal("session must return to idle after intake commit")
	}
}

func TestNonAdminIntakeIsRefused(t *testing.T) {
	t.Parallel()
	w := newWorld(t, 42)
	ctx := context.Background()

	w.dispatch(t, event.Command{Name: "admin", User: 7})

	count, err := w.catalog.Count(ctx)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("catalog must be unchanged, got %d products", count)
	}
	if !w.session(t, 7).IsIdle() {
		t.Fatal("session must stay idle after a refused intake")
	}
	if msg := w.renderer.last(t); msg.Text == "" {
		t.Fatal("expected an unauthorized message")
	}
}

func TestOrderSnapshotSurvivesCartClear(t *testing.T) {
	t.Parallel()
	w := newWorld(t)
	ctx := context.Background()

	if _, err := w.catalog.Create(ctx, catalogdomain.CreateProductInput{Name: "Sticker", Description: "Vinyl", Price: 1000}); err != nil {
		t.Fatalf("create product: %v", err)
	}

	w.dispatch(t, event.ButtonPress{ActionID: "add:1", User: 7})
	w.dispatch(t, event.Command{Name: "order", User: 7})
	w.dispatch(t, event.TextReply{Text: "555-0100", User: 7})
	w.dispatch(t, event.TextReply{Text: "Main St 1", User: 7})

	// The cart empties underneath the pending confirmation.
	if err := w.carts.Clear(ctx, 7); err != nil {
		t.Fatalf("clear cart: %v", err)
	}

	w.dispatch(t, event.ButtonPress{ActionID: "checkout:confirm", User: 7})

	orders, err := w.orders.ListByUser(ctx, 7)
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("expected one order, got %d", len(orders))
	}
	if orders[0].Total != 1000 {
		t.Fatalf("expected snapshot total 1000, got %d", orders[0].Total)
	}
	if !w.session(t, 7).IsIdle() {
		t.Fatal("session must return to idle after confirmation")
	}
}

func TestUnknownProductAddIsSurfacedNotFatal(t *testing.T) {
	t.Parallel()
	w := newWorld(t)
	ctx := context.Background()

	w.dispatch(t, event.ButtonPress{ActionID: "add:999", User: 7})

	lines, _, err := w.carts.Items(ctx, 7)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("cart must be unchanged, got %d lines", len(lines))
	}
	if msg := w.renderer.last(t); msg.Text == "" {
		t.Fatal("expected a product-not-found message")
	}
}

func TestWorkflowShieldsCartFromCommands(t *testing.T) {
	t.Parallel()
	w := newWorld(t)
	ctx := context.Background()

	if err := seed.Ensure(ctx, w.catalog); err != nil {
		t.Fatalf("seed: %v", err)
	}
	w.dispatch(t, event.ButtonPress{ActionID: "add:1", User: 7})
	w.dispatch(t, event.Command{Name: "order", User: 7})

	// A clear-cart press mid-checkout must not clear the cart; the
	// workflow consumes the event.
	w.dispatch(t, event.ButtonPress{ActionID: "clear_cart", User: 7})

	lines, _, err := w.carts.Items(ctx, 7)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("workflow must shield the cart, got %d lines", len(lines))
	}
	session := w.session(t, 7)
	if session.Kind != conversationdomain.WorkflowCheckout {
		t.Fatalf("checkout must stay active, got %+v", session)
	}
}

func TestCheckoutCancelKeepsCartAcrossDispatch(t *testing.T) {
	t.Parallel()
	w := newWorld(t)
	ctx := context.Background()

	if err := seed.Ensure(ctx, w.catalog); err != nil {
		t.Fatalf("seed: %v", err)
	}
	w.dispatch(t, event.ButtonPress{ActionID: "add:2", User: 7})
	w.dispatch(t, event.Command{Name: "order", User: 7})
	w.dispatch(t, event.Command{Name: "cancel", User: 7})

	if !w.session(t, 7).IsIdle() {
		t.Fatal("expected idle session after cancel")
	}
	lines, _, err := w.carts.Items(ctx, 7)
	if err != nil {
		t.Fatalf("items: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("cancel must keep the cart, got %d lines", len(lines))
	}
}

func TestCartViewListsLinesAndTotal(t *testing.T) {
	t.Parallel()
	w := newWorld(t)
	ctx := context.Background()

	if err := seed.Ensure(ctx, w.catalog); err != nil {
		t.Fatalf("seed: %v", err)
	}
	w.dispatch(t, event.ButtonPress{ActionID: "add:1", User: 7})
	w.dispatch(t, event.ButtonPress{ActionID: "add:2", User: 7})
	w.dispatch(t, event.Command{Name: "cart", User: 7})

	msg := w.renderer.last(t)
	if !strings.Contains(msg.Text, "199800") {
		t.Fatalf("expected combined total in cart view, got %q", msg.Text)
	}
}
