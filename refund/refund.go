package refund

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"marketplace-client-sample/api"
	"marketplace-client-sample/model"
)

const fetchLimit = 100

var (
	ErrOrderRequired    = errors.New("an order must be selected")
	ErrReasonRequired   = errors.New("a reason is required")
	ErrOrderNotEligible = errors.New("order is not eligible for a refund")
)

// BuyerAPI is the slice of the transaction client the buyer-side refund
// screen needs.
type BuyerAPI interface {
	GetOrdersByBuyer(ctx context.Context, buyerID string, opts api.ListOptions) (model.Page[model.Order], error)
	GetRefundsByBuyer(ctx context.Context, buyerID string, opts api.ListOptions) (model.Page[model.Refund], error)
	CreateRefund(ctx context.Context, rq model.RefundCreateRq) (model.Refund, error)
}

// Manager is the buyer's refund screen: it holds its own copies of the
// order and refund lists and decides eligibility from them, not from the
// server.
type Manager struct {
	client  BuyerAPI
	buyerID string
	orders  []model.Order
	refunds []model.Refund
}

func NewManager(client BuyerAPI, buyerID string) *Manager {
	return &Manager{client: client, buyerID: buyerID}
}

// Load fetches orders and refunds concurrently.
func (m *Manager) Load(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	var orders []model.Order
	g.Go(func() error {
		p, err := m.client.GetOrdersByBuyer(ctx, m.buyerID, api.ListOptions{Page: 1, Limit: fetchLimit})
		if err != nil {
			return err
		}
		orders = p.Content
		return nil
	})

	var refunds []model.Refund
	g.Go(func() error {
		p, err := m.client.GetRefundsByBuyer(ctx, m.buyerID, api.ListOptions{Page: 1, Limit: fetchLimit})
		if err != nil {
			return err
		}
		refunds = p.Content
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	m.orders = orders
	m.refunds = refunds
	return nil
}

func (m *Manager) Refunds() []model.Refund {
	out := make([]model.Refund, len(m.refunds))
	copy(out, m.refunds)
	return out
}

// EligibleOrders lists the orders a refund may be opened against: delivered
// or completed, and not already covered by a refund in the loaded list.
func (m *Manager) EligibleOrders() []model.Order {
	refunded := make(map[string]bool, len(m.refunds))
	for _, r := range m.refunds {
		refunded[r.OrderID] = true
	}

	var out []model.Order
	for _, o := range m.orders {
		if o.Status != model.OrderCompleted && o.Status != model.OrderDelivered {
			continue
		}
		if refunded[o.ID] {
			continue
		}
		out = append(out, o)
	}
	return out
}

// Create opens a refund for an eligible order. The new refund is appended to
// the local list so the order immediately drops out of EligibleOrders.
func (m *Manager) Create(ctx context.Context, orderID, reason string) (model.Refund, error) {
	if orderID == "" {
		return model.Refund{}, ErrOrderRequired
	}
	if reason == "" {
		return model.Refund{}, ErrReasonRequired
	}

	eligible := false
	for _, o := range m.EligibleOrders() {
		if o.ID == orderID {
			eligible = true
			break
		}
	}
	if !eligible {
		return model.Refund{}, ErrOrderNotEligible
	}

	r, err := m.client.CreateRefund(ctx, model.RefundCreateRq{
		OrderID:   orderID,
		RequestBy: m.buyerID,
		Reason:    reason,
	})
	if err != nil {
		return model.Refund{}, err
	}

	m.refunds = append(m.refunds, r)
	return r, nil
}
