package refund

import (
	"context"
	"errors"

	"marketplace-client-sample/api"
	"marketplace-client-sample/model"
)

// Review actions a seller or admin can take on a refund.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionProcess = "process"
)

var ErrActionNotAllowed = errors.New("action not available for this refund status")

// ReviewAPI is the slice of the transaction client the seller/admin refund
// screen needs.
type ReviewAPI interface {
	GetRefundsBySeller(ctx context.Context, sellerID string, opts api.ListOptions) (model.Page[model.Refund], error)
	ApproveRefund(ctx context.Context, refundID string) (model.Refund, error)
	RejectRefund(ctx context.Context, refundID, reason string) (model.Refund, error)
	UpdateRefundStatus(ctx context.Context, refundID, status string) (model.Refund, error)
}

// Review is the seller/admin side of the refund workflow: list incoming
// requests and move them through PENDING → PROCESSING → APPROVED|REJECTED.
type Review struct {
	client   ReviewAPI
	sellerID string
	refunds  []model.Refund
}

func NewReview(client ReviewAPI, sellerID string) *Review {
	return &Review{client: client, sellerID: sellerID}
}

func (r *Review) Load(ctx context.Context) error {
	p, err := r.client.GetRefundsBySeller(ctx, r.sellerID, api.ListOptions{Page: 1, Limit: fetchLimit})
	if err != nil {
		return err
	}
	r.refunds = p.Content
	return nil
}

func (r *Review) Refunds() []model.Refund {
	out := make([]model.Refund, len(r.refunds))
	copy(out, r.refunds)
	return out
}

// Actions returns what the current status allows: a pending refund can be
// approved, rejected or moved to processing; a processing one can only be
// approved.
func Actions(status string) []string {
	switch status {
	case model.RefundPending:
		return []string{ActionApprove, ActionReject, ActionProcess}
	case model.RefundProcessing:
		return []string{ActionApprove}
	default:
		return nil
	}
}

func allowed(status, action string) bool {
	for _, a := range Actions(status) {
		if a == action {
			return true
		}
	}
	return false
}

func (r *Review) Approve(ctx context.Context, refundID string) (model.Refund, error) {
	return r.transition(ctx, refundID, ActionApprove, func(ctx context.Context) (model.Refund, error) {
		return r.client.ApproveRefund(ctx, refundID)
	})
}

// Reject needs an explicit reason from the reviewer.
func (r *Review) Reject(ctx context.Context, refundID, reason string) (model.Refund, error) {
	if reason == "" {
		return model.Refund{}, ErrReasonRequired
	}
	return r.transition(ctx, refundID, ActionReject, func(ctx context.Context) (model.Refund, error) {
		return r.client.RejectRefund(ctx, refundID, reason)
	})
}

func (r *Review) MarkProcessing(ctx context.Context, refundID string) (model.Refund, error) {
	return r.transition(ctx, refundID, ActionProcess, func(ctx context.Context) (model.Refund, error) {
		return r.client.UpdateRefundStatus(ctx, refundID, model.RefundProcessing)
	})
}

func (r *Review) transition(ctx context.Context, refundID, action string, call func(context.Context) (model.Refund, error)) (model.Refund, error) {
	idx := -1
	for i, ref := range r.refunds {
		if ref.ID == refundID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Refund{}, errors.New("refund not loaded")
	}
	if !allowed(r.refunds[idx].Status, action) {
		return model.Refund{}, ErrActionNotAllowed
	}

	updated, err := call(ctx)
	if err != nil {
		return model.Refund{}, err
	}

	r.refunds[idx] = updated
	return updated, nil
}
