package refund

import (
	"context"
	"errors"
	"testing"

	"marketplace-client-sample/api"
	"marketplace-client-sample/model"
)

type mockBuyerAPI struct {
	orders  []model.Order
	refunds []model.Refund

	createErr   error
	createCalls int
	lastRq      model.RefundCreateRq
}

func (m *mockBuyerAPI) GetOrdersByBuyer(ctx context.Context, buyerID string, opts api.ListOptions) (model.Page[model.Order], error) {
	return model.Page[model.Order]{Content: m.orders, Last: true}, nil
}

func (m *mockBuyerAPI) GetRefundsByBuyer(ctx context.Context, buyerID string, opts api.ListOptions) (model.Page[model.Refund], error) {
	return model.Page[model.Refund]{Content: m.refunds, Last: true}, nil
}

func (m *mockBuyerAPI) CreateRefund(ctx context.Context, rq model.RefundCreateRq) (model.Refund, error) {
	m.createCalls++
	m.lastRq = rq
	if m.createErr != nil {
		return model.Refund{}, m.createErr
	}
	return model.Refund{ID: "r-new", OrderID: rq.OrderID, RequestBy: rq.RequestBy, Reason: rq.Reason, Status: model.RefundPending}, nil
}

func loadedManager(t *testing.T, client *mockBuyerAPI) *Manager {
	t.Helper()
	m := NewManager(client, "u-1")
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	return m
}

func TestEligibleOrders(t *testing.T) {
	client := &mockBuyerAPI{
		orders: []model.Order{
			{ID: "o1", Status: model.OrderCompleted},
			{ID: "o2", Status: model.OrderPaid},
			{ID: "o3", Status: model.OrderDelivered},
			{ID: "o4", Status: model.OrderCancelled},
		},
		refunds: []model.Refund{{ID: "r1", OrderID: "o1", Status: model.RefundPending}},
	}
	m := loadedManager(t, client)

	eligible := m.EligibleOrders()
	if len(eligible) != 1 || eligible[0].ID != "o3" {
		// o1 already refunded, o2 wrong status, o4 cancelled
		t.Fatalf("unexpected eligible orders: %+v", eligible)
	}
}

func TestCreateValidation(t *testing.T) {
	client := &mockBuyerAPI{orders: []model.Order{{ID: "o1", Status: model.OrderCompleted}}}
	m := loadedManager(t, client)

	tests := []struct {
		name     string
		orderID  string
		reason   string
		expected error
	}{
		{"missing order", "", "item invalid", ErrOrderRequired},
		{"missing reason", "o1", "", ErrReasonRequired},
		{"order not eligible", "o9", "item invalid", ErrOrderNotEligible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Create(context.Background(), tt.orderID, tt.reason)
			if err != tt.expected {
				t.Fatalf("Create() error = %v, expected %v", err, tt.expected)
			}
		})
	}
	if client.createCalls != 0 {
		t.Fatalf("validation failures must never reach the API")
	}
}

func TestCreateAppendsLocally(t *testing.T) {
	client := &mockBuyerAPI{orders: []model.Order{{ID: "o1", Status: model.OrderDelivered}}}
	m := loadedManager(t, client)

	r, err := m.Create(context.Background(), "o1", "account was banned")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if r.Status != model.RefundPending {
		t.Fatalf("expected PENDING refund, got %s", r.Status)
	}
	if client.lastRq.RequestBy != "u-1" {
		t.Fatalf("requestBy must be the buyer, got %s", client.lastRq.RequestBy)
	}

	// the order drops out of the eligible list without a refetch
	if len(m.EligibleOrders()) != 0 {
		t.Fatalf("refunded order must no longer be eligible")
	}
	// a second request against the same order is now a local rejection
	if _, err := m.Create(context.Background(), "o1", "again"); err != ErrOrderNotEligible {
		t.Fatalf("expected ErrOrderNotEligible, got %v", err)
	}
}

func TestCreateServerFailure(t *testing.T) {
	client := &mockBuyerAPI{
		orders:    []model.Order{{ID: "o1", Status: model.OrderCompleted}},
		createErr: errors.New("refund window closed"),
	}
	m := loadedManager(t, client)

	_, err := m.Create(context.Background(), "o1", "not delivered")
	if err == nil || err.Error() != "refund window closed" {
		t.Fatalf("expected server error verbatim, got %v", err)
	}
	if len(m.Refunds()) != 0 {
		t.Fatalf("failed create must not be appended locally")
	}
}
