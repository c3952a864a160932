package orders

import (
	"context"
	"errors"
	"fmt"

	"marketplace-client-sample/api"
	"marketplace-client-sample/model"
)

const (
	// client-side page size of the history view
	historyPageSize = 5

	// one fetch round asks for this many orders
	fetchLimit = 100

	// hard ceiling on the fetch-all loop so a huge backend collection
	// cannot grow the cache without bound
	maxFetchPages = 50

	// AllStatuses selects every visible order in Page and Counts.
	AllStatuses = "ALL"
)

var (
	ErrCancelNotAllowed = errors.New("order can no longer be cancelled")
	ErrAlreadyInFlight  = errors.New("a request for this order is still running")
	ErrUnknownOrder     = errors.New("order not loaded")
)

// BuyerAPI is the slice of the transaction client the history view needs.
type BuyerAPI interface {
	GetOrdersByBuyer(ctx context.Context, buyerID string, opts api.ListOptions) (model.Page[model.Order], error)
	GetOrderByID(ctx context.Context, orderID, userID string) (model.Order, error)
	CancelOrder(ctx context.Context, orderID, buyerID string) (model.Order, error)
}

// History is the buyer's order list: the full result set is fetched once and
// cached, filtering and paging happen locally. Cancelled orders are invisible
// in this view, in every filter and every count.
type History struct {
	client   BuyerAPI
	buyerID  string
	all      []model.Order
	cancels  *tracker
	pageSize int
}

func NewHistory(client BuyerAPI, buyerID string) *History {
	return &History{
		client:   client,
		buyerID:  buyerID,
		cancels:  newTracker(),
		pageSize: historyPageSize,
	}
}

// Load fetches the buyer's whole order list, page by page, into the local
// cache. Subsequent filter or page switches never hit the network.
func (h *History) Load(ctx context.Context) error {
	var all []model.Order

	for page := 1; page <= maxFetchPages; page++ {
		p, err := h.client.GetOrdersByBuyer(ctx, h.buyerID, api.ListOptions{Page: page, Limit: fetchLimit})
		if err != nil {
			return err
		}
		all = append(all, p.Content...)
		if p.Last || len(p.Content) == 0 {
			break
		}
	}

	h.all = all
	return nil
}

// visible hides cancelled orders.
func (h *History) visible() []model.Order {
	out := make([]model.Order, 0, len(h.all))
	for _, o := range h.all {
		if o.Status == model.OrderCancelled {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Counts returns the per-status totals plus the ALL total. Cancelled orders
// are excluded everywhere; the map never has a CANCELLED key.
func (h *History) Counts() map[string]int {
	counts := map[string]int{AllStatuses: 0}
	for _, o := range h.visible() {
		counts[AllStatuses]++
		counts[o.Status]++
	}
	return counts
}

// Page returns one local page of the given status filter and the total page
// count for that filter. Pages are 1-based.
func (h *History) Page(status string, page int) ([]model.Order, int) {
	filtered := h.visible()
	if status != "" && status != AllStatuses {
		kept := filtered[:0]
		for _, o := range filtered {
			if o.Status == status {
				kept = append(kept, o)
			}
		}
		filtered = kept
	}

	totalPages := (len(filtered) + h.pageSize - 1) / h.pageSize
	if page < 1 {
		page = 1
	}
	start := (page - 1) * h.pageSize
	if start >= len(filtered) {
		return nil, totalPages
	}
	end := start + h.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], totalPages
}

// CanCancel reports whether the buyer may still cancel the order: not yet
// handed to the payment flow and payment untouched.
func CanCancel(o model.Order) bool {
	eligible := o.Status == model.OrderCreated || o.Status == model.OrderReadyPay
	return eligible && o.PaymentStatus == model.PaymentPending
}

// CancelState exposes the per-order request state for rendering.
func (h *History) CancelState(orderID string) RequestState {
	return h.cancels.state(orderID)
}

// Cancel asks the server to cancel the order. Callers confirm with the user
// first; this only guards eligibility and duplicate submission. On success
// the cached order is patched in place; on failure it is left untouched and
// the id is marked errored.
func (h *History) Cancel(ctx context.Context, orderID string) error {
	idx := indexOf(h.all, orderID)
	if idx < 0 {
		return ErrUnknownOrder
	}
	if !CanCancel(h.all[idx]) {
		return ErrCancelNotAllowed
	}
	if !h.cancels.begin(orderID) {
		return ErrAlreadyInFlight
	}

	updated, err := h.client.CancelOrder(ctx, orderID, h.buyerID)
	if err != nil {
		h.cancels.fail(orderID)
		return err
	}

	h.all[idx] = updated
	h.cancels.done(orderID)
	return nil
}

// RetryPaymentURL returns the payment-redirect route for an order whose
// payment is stuck in PROCESSING. The payment subsystem owns everything past
// this route.
func RetryPaymentURL(o model.Order) (string, bool) {
	if o.PaymentStatus != model.PaymentProcessing {
		return "", false
	}
	return fmt.Sprintf("/payment/redirect?orderId=%s&retry=true", o.ID), true
}

// Refresh re-fetches a single order and patches it into the cache.
func (h *History) Refresh(ctx context.Context, orderID string) (model.Order, error) {
	o, err := h.client.GetOrderByID(ctx, orderID, h.buyerID)
	if err != nil {
		return model.Order{}, err
	}
	if idx := indexOf(h.all, orderID); idx >= 0 {
		h.all[idx] = o
	}
	return o, nil
}
