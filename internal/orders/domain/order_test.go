package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	conversationdomain "github.com/louisbranch/bazaar.chat/internal/conversation/domain"
)

type fakeOrderStore struct {
	orders []Order
}

func (f *fakeOrderStore) AppendOrder(_ context.Context, order Order) error {
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeOrderStore) ListOrdersByUser(_ context.Context, userID int64) ([]Order, error) {
	var out []Order
	for i := len(f.orders) - 1; i >= 0; i-- {
		if f.orders[i].UserID == userID {
			out = append(out, f.orders[i])
		}
	}
	return out, nil
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func sequentialIDGenerator(ids ...string) func() (string, error) {
	index := 0
	return func() (string, error) {
		if index >= len(ids) {
			return "", errors.New("id generator exhausted")
		}
		id := ids[index]
		index++
		return id, nil
	}
}

func TestRecordFreezesSnapshotTotal(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	store := &fakeOrderStore{}
	svc := NewService(store, fixedClock(now), sequentialIDGenerator("order-1"))

	order, err := svc.Record(context.Background(), RecordInput{
		UserID:  10,
		Phone:   "+7 999 083-51-98",
		Address: "г. Хабаровск, ул. Панькова, 15",
		Snapshot: conversationdomain.OrderSnapshot{
			Items: []conversationdomain.SnapshotItem{
				{ProductID: 1, Name: "📱 iPhone 15", Quantity: 2, UnitPrice: 79900},
			},
			Total: 159800,
		},
	})
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if order.ID != "order-1" {
		t.Fatalf("id = %q, want order-1", order.ID)
	}
	if order.Total != 159800 {
		t.Fatalf("total = %d, want 159800", order.Total)
	}
	if order.Status != StatusNew {
		t.Fatalf("status = %q, want %q", order.Status, StatusNew)
	}
	if order.CreatedAt != now {
		t.Fatalf("created at = %v, want %v", order.CreatedAt, now)
	}
	if len(store.orders) != 1 {
		t.Fatalf("stored orders = %d, want 1", len(store.orders))
	}
}

func TestRecordRejectsEmptySnapshot(t *testing.T) {
	t.Parallel()

	store := &fakeOrderStore{}
	svc := NewService(store, nil, nil)

	_, err := svc.Record(context.Background(), RecordInput{UserID: 10})
	if !errors.Is(err, ErrSnapshotEmpty) {
		t.Fatalf("err = %v, want ErrSnapshotEmpty", err)
	}
	if len(store.orders) != 0 {
		t.Fatal("expected no stored orders")
	}
}

func TestListByUserNewestFirst(t *testing.T) {
	t.Parallel()

	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	store := &fakeOrderStore{}
	svc := NewService(store, fixedClock(base), sequentialIDGenerator("order-1", "order-2"))

	snapshot := conversationdomain.OrderSnapshot{
		Items: []conversationdomain.SnapshotItem{{ProductID: 1, Name: "X", Quantity: 1, UnitPrice: 100}},
		Total: 100,
	}
	for i := 0; i < 2; i++ {
		if _, err := svc.Record(context.Background(), RecordInput{UserID: 10, Snapshot: snapshot}); err != nil {
			t.Fatalf("record #%d: %v", i+1, err)
		}
	}

	orders, err := svc.ListByUser(context.Background(), 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("orders = %d, want 2", len(orders))
	}
	if orders[0].ID != "order-2" {
		t.Fatalf("first order = %q, want order-2", orders[0].ID)
	}
}
