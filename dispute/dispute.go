package dispute

import (
	"context"
	"errors"

	"marketplace-client-sample/api"
	"marketplace-client-sample/model"
)

const fetchLimit = 100

var (
	ErrOrderRequired       = errors.New("an order must be selected")
	ErrDescriptionRequired = errors.New("a description is required")
	ErrUnknownIssueType    = errors.New("unknown issue type")
	ErrInvalidTargetStatus = errors.New("disputes resolve to COMPLETED, CANCELLED or PROCESSING")
)

// IssueTypes are the selectable reasons for opening a dispute.
func IssueTypes() []string {
	return []string{
		model.IssueNotDelivered,
		model.IssueItemInvalid,
		model.IssueAccountBanned,
		model.IssueOther,
	}
}

// API is the slice of the transaction client the dispute screens need.
type API interface {
	CreateDispute(ctx context.Context, rq model.DisputeCreateRq) (model.Dispute, error)
	GetDisputesByUser(ctx context.Context, userID string, opts api.ListOptions) (model.Page[model.Dispute], error)
	GetAllDisputes(ctx context.Context, opts api.ListOptions) (model.Page[model.Dispute], error)
	ResolveDispute(ctx context.Context, disputeID string, rq model.DisputeResolveRq) (model.Dispute, error)
}

// Desk is the buyer's dispute screen.
type Desk struct {
	client   API
	userID   string
	disputes []model.Dispute
}

func NewDesk(client API, userID string) *Desk {
	return &Desk{client: client, userID: userID}
}

func (d *Desk) Load(ctx context.Context) error {
	p, err := d.client.GetDisputesByUser(ctx, d.userID, api.ListOptions{Page: 1, Limit: fetchLimit})
	if err != nil {
		return err
	}
	d.disputes = p.Content
	return nil
}

func (d *Desk) Disputes() []model.Dispute {
	out := make([]model.Dispute, len(d.disputes))
	copy(out, d.disputes)
	return out
}

// Create opens a dispute against an order. Any order may be disputed; only
// the inputs are validated here.
func (d *Desk) Create(ctx context.Context, orderID, issueType, description string) (model.Dispute, error) {
	if orderID == "" {
		return model.Dispute{}, ErrOrderRequired
	}
	if description == "" {
		return model.Dispute{}, ErrDescriptionRequired
	}
	if !knownIssueType(issueType) {
		return model.Dispute{}, ErrUnknownIssueType
	}

	created, err := d.client.CreateDispute(ctx, model.DisputeCreateRq{
		OrderID:     orderID,
		OpenedBy:    d.userID,
		IssueType:   issueType,
		Description: description,
	})
	if err != nil {
		return model.Dispute{}, err
	}

	d.disputes = append(d.disputes, created)
	return created, nil
}

func knownIssueType(issueType string) bool {
	for _, t := range IssueTypes() {
		if t == issueType {
			return true
		}
	}
	return false
}

// Admin is the back-office dispute queue.
type Admin struct {
	client   API
	disputes []model.Dispute
}

func NewAdmin(client API) *Admin {
	return &Admin{client: client}
}

func (a *Admin) Load(ctx context.Context) error {
	p, err := a.client.GetAllDisputes(ctx, api.ListOptions{Page: 1, Limit: fetchLimit})
	if err != nil {
		return err
	}
	a.disputes = p.Content
	return nil
}

func (a *Admin) Disputes() []model.Dispute {
	out := make([]model.Dispute, len(a.disputes))
	copy(out, a.disputes)
	return out
}

// Resolve closes or advances a dispute. autoRefund is forwarded as entered;
// whether it makes sense for the chosen status is the server's call.
func (a *Admin) Resolve(ctx context.Context, disputeID, status string, autoRefund bool) (model.Dispute, error) {
	switch status {
	case model.DisputeCompleted, model.DisputeCancelled, model.DisputeProcessing:
	default:
		return model.Dispute{}, ErrInvalidTargetStatus
	}

	updated, err := a.client.ResolveDispute(ctx, disputeID, model.DisputeResolveRq{
		Status:     status,
		AutoRefund: autoRefund,
	})
	if err != nil {
		return model.Dispute{}, err
	}

	for i, d := range a.disputes {
		if d.ID == disputeID {
			a.disputes[i] = updated
			break
		}
	}
	return updated, nil
}
