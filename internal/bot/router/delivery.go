package router

import (
	"context"
	"log"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/louisbranch/bazaar.chat/internal/bot/event"
	"github.com/louisbranch/bazaar.chat/internal/platform/timeouts"
)

// Deliverer pushes outbound renders through the messaging collaborator.
// Deliveries happen only after the session commit, so a failed delivery
// never loses state: the message is retried once and then dropped with a
// logged failure. A circuit breaker stops hammering a collaborator that is
// down.
type Deliverer struct {
	renderer event.Renderer
	breaker  *gobreaker.CircuitBreaker[struct{}]
	timeout  time.Duration
}

// NewDeliverer wraps the renderer with the drop-on-failure policy.
func NewDeliverer(renderer event.Renderer) *Deliverer {
	breaker := gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        "renderer",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Deliverer{
		renderer: renderer,
		breaker:  breaker,
		timeout:  timeouts.RenderCall,
	}
}

// Send delivers one message, retrying once. The returned error is for the
// caller's log line only; the message is already dropped.
func (d *Deliverer) Send(ctx context.Context, msg event.RenderMessage) error {
	return d.attempt(ctx, func(ctx context.Context) error {
		return d.renderer.Render(ctx, msg)
	})
}

// Replace delivers one in-place edit, retrying once.
func (d *Deliverer) Replace(ctx context.Context, msg event.ReplaceMessage) error {
	return d.attempt(ctx, func(ctx context.Context) error {
		return d.renderer.Replace(ctx, msg)
	})
}

func (d *Deliverer) attempt(ctx context.Context, call func(context.Context) error) error {
	var err error
	for try := 0; try < 2; try++ {
		_, err = d.breaker.Execute(func() (struct{}, error) {
			callCtx, cancel := context.WithTimeout(ctx, d.timeout)
			defer cancel()
			return struct{}{}, call(callCtx)
		})
		if err == nil {
			return nil
		}
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			break
		}
	}
	return err
}

// deliver sends every message in the result, logging and dropping failures.
func (d *Deliverer) deliver(ctx context.Context, messages []event.RenderMessage, replaces []event.ReplaceMessage) {
	for _, msg := range messages {
		if err := d.Send(ctx, msg); err != nil {
			log.Printf("drop render for user %d: %v", msg.UserID, err)
		}
	}
	for _, msg := range replaces {
		if err := d.Replace(ctx, msg); err != nil {
			log.Printf("drop replace for user %d: %v", msg.UserID, err)
		}
	}
}
