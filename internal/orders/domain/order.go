// Package domain holds the confirmed-order record and its use-cases.
package domain

import (
	"context"
	"errors"
	"time"

	conversationdomain "github.com/louisbranch/bazaar.chat/internal/conversation/domain"
	"github.com/louisbranch/bazaar.chat/internal/platform/id"
)

var (
	// ErrStoreNotConfigured indicates the service is missing persistence wiring.
	ErrStoreNotConfigured = errors.New("order store is not configured")
	// ErrSnapshotEmpty indicates an order cannot be recorded without lines.
	ErrSnapshotEmpty = errors.New("order snapshot has no lines")
)

// StatusNew is the only order status this service assigns; fulfilment is a
// separate concern.
const StatusNew = "new"

// Line is one ordered product at its frozen unit price.
type Line struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int64  `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

// Order is the durable record of one confirmed checkout. Items and total
// come from the confirmation-time snapshot, not the live cart.
type Order struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"user_id"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Items     []Line    `json:"items"`
	Total     int64     `json:"total"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the domain persistence boundary for orders.
type Store interface {
	AppendOrder(ctx context.Context, order Order) error
	ListOrdersByUser(ctx context.Context, userID int64) ([]Order, error)
}

// RecordInput describes one confirmed checkout to persist.
type RecordInput struct {
	UserID   int64
	Phone    string
	Address  string
	Snapshot conversationdomain.OrderSnapshot
}

// Service records confirmed orders.
type Service struct {
	store Store
	clock func() time.Time
	newID func() (string, error)
}

// NewService constructs order use-cases.
func NewService(store Store, clock func() time.Time, newID func() (string, error)) *Service {
	if clock == nil {
		clock = time.Now
	}
	if newID == nil {
		newID = id.NewID
	}
	return &Service{store: store, clock: clock, newID: newID}
}

// Record persists one confirmed checkout from its snapshot.
func (s *Service) Record(ctx context.Context, input RecordInput) (Order, error) {
	if s == nil || s.store == nil {
		return Order{}, ErrStoreNotConfigured
	}
	if len(input.Snapshot.Items) == 0 {
		return Order{}, ErrSnapshotEmpty
	}

	orderID, err := s.newID()
	if err != nil {
		return Order{}, err
	}

	items := make([]Line, 0, len(input.Snapshot.Items))
	for _, item := range input.Snapshot.Items {
		items = append(items, Line{
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	order := Order{
		ID:        orderID,
		UserID:    input.UserID,
		Phone:     input.Phone,
		Address:   input.Address,
		Items:     items,
		Total:     input.Snapshot.Total,
		Status:    StatusNew,
		CreatedAt: s.clock().UTC(),
	}
	if err := s.store.AppendOrder(ctx, order); err != nil {
		return Order{}, err
	}
	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID int64) ([]Order, error) {
	if s == nil || s.store == nil {
		return nil, ErrStoreNotConfigured
	}
	return s.store.ListOrdersByUser(ctx, userID)
}
