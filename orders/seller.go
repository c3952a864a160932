package orders

import (
	"context"
	"errors"
	"io"

	"golang.org/x/sync/errgroup"

	"marketplace-client-sample/api"
	"marketplace-client-sample/model"
)

const recentOrdersLimit = 5

var ErrProofNotAllowed = errors.New("delivery proof can only be uploaded for paid orders")

// SellerAPI is the slice of the transaction client the seller queue needs.
type SellerAPI interface {
	GetOrdersBySeller(ctx context.Context, sellerID string, opts api.ListOptions) (model.Page[model.Order], error)
	UploadDeliveryProof(ctx context.Context, orderID, sellerID string, proof model.ProofData, filename string, file io.Reader) (model.Order, error)
}

// Queue is the seller dashboard's orders tab. It keeps the same three caches
// the dashboard renders from — the working list, the full fetch cache and the
// recent slice — and patches a mutated order into all of them so no view goes
// stale.
type Queue struct {
	client   SellerAPI
	sellerID string

	all       []model.Order
	cachedAll []model.Order
	recent    []model.Order

	proofs   *tracker
	pageSize int
}

func NewQueue(client SellerAPI, sellerID string) *Queue {
	return &Queue{
		client:   client,
		sellerID: sellerID,
		proofs:   newTracker(),
		pageSize: historyPageSize,
	}
}

// Load fetches the full order list and the recent slice concurrently.
func (q *Queue) Load(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	var full []model.Order
	g.Go(func() error {
		for page := 1; page <= maxFetchPages; page++ {
			p, err := q.client.GetOrdersBySeller(ctx, q.sellerID, api.ListOptions{Page: page, Limit: fetchLimit})
			if err != nil {
				return err
			}
			full = append(full, p.Content...)
			if p.Last || len(p.Content) == 0 {
				return nil
			}
		}
		return nil
	})

	var recent []model.Order
	g.Go(func() error {
		p, err := q.client.GetOrdersBySeller(ctx, q.sellerID, api.ListOptions{
			Page:  1,
			Limit: recentOrdersLimit,
			Sort:  "createdAt,desc",
		})
		if err != nil {
			return err
		}
		recent = p.Content
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	q.cachedAll = full
	q.all = append([]model.Order(nil), full...)
	q.recent = recent
	return nil
}

// Orders returns the working list.
func (q *Queue) Orders() []model.Order {
	out := make([]model.Order, len(q.all))
	copy(out, q.all)
	return out
}

// Recent returns the recent-orders slice.
func (q *Queue) Recent() []model.Order {
	out := make([]model.Order, len(q.recent))
	copy(out, q.recent)
	return out
}

// Counts returns per-status totals over the working list plus ALL. The seller
// sees cancelled orders; only the buyer history hides them.
func (q *Queue) Counts() map[string]int {
	counts := map[string]int{AllStatuses: len(q.all)}
	for _, o := range q.all {
		counts[o.Status]++
	}
	return counts
}

// Page filters and pages the working list locally, 1-based.
func (q *Queue) Page(status string, page int) ([]model.Order, int) {
	filtered := q.all
	if status != "" && status != AllStatuses {
		filtered = nil
		for _, o := range q.all {
			if o.Status == status {
				filtered = append(filtered, o)
			}
		}
	}

	totalPages := (len(filtered) + q.pageSize - 1) / q.pageSize
	if page < 1 {
		page = 1
	}
	start := (page - 1) * q.pageSize
	if start >= len(filtered) {
		return nil, totalPages
	}
	end := start + q.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	out := make([]model.Order, end-start)
	copy(out, filtered[start:end])
	return out, totalPages
}

// CanUploadProof reports whether the order is waiting for delivery.
func CanUploadProof(o model.Order) bool {
	return o.Status == model.OrderPaid
}

// ProofState exposes the per-order upload state for rendering.
func (q *Queue) ProofState(orderID string) RequestState {
	return q.proofs.state(orderID)
}

// UploadProof submits the delivery proof for a paid order and patches the
// returned order into every cache it appears in.
func (q *Queue) UploadProof(ctx context.Context, orderID string, proof model.ProofData, filename string, file io.Reader) (model.Order, error) {
	idx := indexOf(q.all, orderID)
	if idx < 0 {
		return model.Order{}, ErrUnknownOrder
	}
	if !CanUploadProof(q.all[idx]) {
		return model.Order{}, ErrProofNotAllowed
	}
	if !q.proofs.begin(orderID) {
		return model.Order{}, ErrAlreadyInFlight
	}

	updated, err := q.client.UploadDeliveryProof(ctx, orderID, q.sellerID, proof, filename, file)
	if err != nil {
		q.proofs.fail(orderID)
		return model.Order{}, err
	}

	q.patchEverywhere(updated)
	q.proofs.done(orderID)
	return updated, nil
}

// patchEverywhere replaces the order in all three caches.
func (q *Queue) patchEverywhere(o model.Order) {
	for _, list := range [][]model.Order{q.all, q.cachedAll, q.recent} {
		if idx := indexOf(list, o.ID); idx >= 0 {
			list[idx] = o
		}
	}
}

func indexOf(list []model.Order, orderID string) int {
	for i, o := range list {
		if o.ID == orderID {
			return i
		}
	}
	return -1
}
