package orders

import (
	"context"
	"errors"
	"testing"

	"marketplace-client-sample/api"
	"marketplace-client-sample/model"
)

type mockBuyerAPI struct {
	pages       []model.Page[model.Order]
	fetchCalls  int
	cancelErr   error
	cancelCalls int
	byID        map[string]model.Order
}

func (m *mockBuyerAPI) GetOrdersByBuyer(ctx context.Context, buyerID string, opts api.ListOptions) (model.Page[model.Order], error) {
	m.fetchCalls++
	idx := opts.Page - 1
	if idx < 0 || idx >= len(m.pages) {
		return model.Page[model.Order]{Last: true}, nil
	}
	return m.pages[idx], nil
}

func (m *mockBuyerAPI) GetOrderByID(ctx context.Context, orderID, userID string) (model.Order, error) {
	o, ok := m.byID[orderID]
	if !ok {
		return model.Order{}, &api.Error{Status: 404, Message: "order not found"}
	}
	return o, nil
}

func (m *mockBuyerAPI) CancelOrder(ctx context.Context, orderID, buyerID string) (model.Order, error) {
	m.cancelCalls++
	if m.cancelErr != nil {
		return model.Order{}, m.cancelErr
	}
	return model.Order{
		ID:            orderID,
		BuyerID:       buyerID,
		Status:        model.OrderCancelled,
		PaymentStatus: model.PaymentCancelled,
	}, nil
}

func order(id, status, paymentStatus string) model.Order {
	return model.Order{ID: id, BuyerID: "u-1", Status: status, PaymentStatus: paymentStatus}
}

func singlePage(orders ...model.Order) []model.Page[model.Order] {
	return []model.Page[model.Order]{{Content: orders, Last: true}}
}

func loadedHistory(t *testing.T, client *mockBuyerAPI) *History {
	t.Helper()
	h := NewHistory(client, "u-1")
	if err := h.Load(context.Background()); err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	return h
}

func TestLoadWalksAllPages(t *testing.T) {
	client := &mockBuyerAPI{pages: []model.Page[model.Order]{
		{Content: []model.Order{order("o1", model.OrderCreated, model.PaymentPending)}, Last: false},
		{Content: []model.Order{order("o2", model.OrderPaid, model.PaymentSuccess)}, Last: true},
	}}

	h := loadedHistory(t, client)
	if client.fetchCalls != 2 {
		t.Fatalf("expected 2 fetches, got %d", client.fetchCalls)
	}
	if got := h.Counts()[AllStatuses]; got != 2 {
		t.Fatalf("expected 2 orders loaded, got %d", got)
	}
}

func TestCancelledOrdersAreInvisible(t *testing.T) {
	client := &mockBuyerAPI{pages: singlePage(
		order("o1", model.OrderCreated, model.PaymentPending),
		order("o2", model.OrderCancelled, model.PaymentCancelled),
		order("o3", model.OrderCompleted, model.PaymentSuccess),
	)}

	h := loadedHistory(t, client)

	counts := h.Counts()
	if counts[AllStatuses] != 2 {
		t.Fatalf("ALL count must exclude cancelled, got %d", counts[AllStatuses])
	}
	if _, ok := counts[model.OrderCancelled]; ok {
		t.Fatalf("counts must never carry a CANCELLED key: %v", counts)
	}

	page, _ := h.Page(AllStatuses, 1)
	for _, o := range page {
		if o.Status == model.OrderCancelled {
			t.Fatalf("cancelled order %s rendered in ALL view", o.ID)
		}
	}
	if page, _ := h.Page(model.OrderCancelled, 1); len(page) != 0 {
		t.Fatalf("filtering by CANCELLED must show nothing, got %d", len(page))
	}
}

func TestLocalPagination(t *testing.T) {
	var all []model.Order
	for _, id := range []string{"o1", "o2", "o3", "o4", "o5", "o6", "o7"} {
		all = append(all, order(id, model.OrderCompleted, model.PaymentSuccess))
	}
	client := &mockBuyerAPI{pages: singlePage(all...)}
	h := loadedHistory(t, client)
	fetchesAfterLoad := client.fetchCalls

	page1, totalPages := h.Page(AllStatuses, 1)
	if totalPages != 2 {
		t.Fatalf("expected 2 local pages, got %d", totalPages)
	}
	if len(page1) != 5 {
		t.Fatalf("expected page size 5, got %d", len(page1))
	}
	page2, _ := h.Page(AllStatuses, 2)
	if len(page2) != 2 || page2[0].ID != "o6" {
		t.Fatalf("unexpected second page: %+v", page2)
	}

	// paging and filtering are purely local
	if client.fetchCalls != fetchesAfterLoad {
		t.Fatalf("page switch must not refetch, calls went %d -> %d", fetchesAfterLoad, client.fetchCalls)
	}
}

func TestCanCancel(t *testing.T) {
	tests := []struct {
		name     string
		order    model.Order
		expected bool
	}{
		{"created pending", order("o", model.OrderCreated, model.PaymentPending), true},
		{"ready_pay pending", order("o", model.OrderReadyPay, model.PaymentPending), true},
		{"created but paying", order("o", model.OrderCreated, model.PaymentProcessing), false},
		{"paid", order("o", model.OrderPaid, model.PaymentSuccess), false},
		{"cancelled", order("o", model.OrderCancelled, model.PaymentCancelled), false},
		{"delivered", order("o", model.OrderDelivered, model.PaymentSuccess), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanCancel(tt.order); got != tt.expected {
				t.Errorf("CanCancel(%s/%s) = %v, expected %v", tt.order.Status, tt.order.PaymentStatus, got, tt.expected)
			}
		})
	}
}

func TestCancelPatchesInPlace(t *testing.T) {
	client := &mockBuyerAPI{pages: singlePage(order("o1", model.OrderCreated, model.PaymentPending))}
	h := loadedHistory(t, client)

	if err := h.Cancel(context.Background(), "o1"); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}

	if counts := h.Counts(); counts[AllStatuses] != 0 {
		t.Fatalf("cancelled order must disappear from the view, counts=%v", counts)
	}
	if got := h.CancelState("o1"); got != StateIdle {
		t.Fatalf("expected idle state after success, got %v", got)
	}
}

func TestCancelIneligible(t *testing.T) {
	client := &mockBuyerAPI{pages: singlePage(order("o1", model.OrderPaid, model.PaymentSuccess))}
	h := loadedHistory(t, client)

	if err := h.Cancel(context.Background(), "o1"); err != ErrCancelNotAllowed {
		t.Fatalf("expected ErrCancelNotAllowed, got %v", err)
	}
	if client.cancelCalls != 0 {
		t.Fatalf("ineligible cancel must never reach the API")
	}
}

func TestCancelFailureKeepsOrder(t *testing.T) {
	client := &mockBuyerAPI{
		pages:     singlePage(order("o1", model.OrderCreated, model.PaymentPending)),
		cancelErr: errors.New("order already progressed"),
	}
	h := loadedHistory(t, client)

	err := h.Cancel(context.Background(), "o1")
	if err == nil || err.Error() != "order already progressed" {
		t.Fatalf("expected server error verbatim, got %v", err)
	}

	// status untouched, state shows the failure
	if counts := h.Counts(); counts[model.OrderCreated] != 1 {
		t.Fatalf("order status must be unchanged after failure, counts=%v", counts)
	}
	if got := h.CancelState("o1"); got != StateError {
		t.Fatalf("expected error state, got %v", got)
	}

	// a retry is allowed after a failure
	client.cancelErr = nil
	if err := h.Cancel(context.Background(), "o1"); err != nil {
		t.Fatalf("retry after failure returned error: %v", err)
	}
}

func TestCancelUnknownOrder(t *testing.T) {
	client := &mockBuyerAPI{pages: singlePage()}
	h := loadedHistory(t, client)

	if err := h.Cancel(context.Background(), "ghost"); err != ErrUnknownOrder {
		t.Fatalf("expected ErrUnknownOrder, got %v", err)
	}
}

func TestRetryPaymentURL(t *testing.T) {
	o := order("o1", model.OrderPaying, model.PaymentProcessing)
	url, ok := RetryPaymentURL(o)
	if !ok {
		t.Fatalf("expected retry to be offered")
	}
	if url != "/payment/redirect?orderId=o1&retry=true" {
		t.Fatalf("unexpected retry url: %s", url)
	}

	if _, ok := RetryPaymentURL(order("o2", model.OrderCreated, model.PaymentPending)); ok {
		t.Fatalf("retry must only be offered while payment is processing")
	}
}

func TestRefreshPatchesCache(t *testing.T) {
	client := &mockBuyerAPI{
		pages: singlePage(order("o1", model.OrderPaying, model.PaymentProcessing)),
		byID:  map[string]model.Order{"o1": order("o1", model.OrderPaid, model.PaymentSuccess)},
	}
	h := loadedHistory(t, client)

	o, err := h.Refresh(context.Background(), "o1")
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if o.Status != model.OrderPaid {
		t.Fatalf("expected refreshed status PAID, got %s", o.Status)
	}
	if counts := h.Counts(); counts[model.OrderPaid] != 1 {
		t.Fatalf("cache not patched, counts=%v", counts)
	}
}
