package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"marketplace-client-sample/model"
)

// TransactionClient talks to the transaction service: orders, refunds and
// disputes.
type TransactionClient struct {
	*Client
}

func NewTransactionClient(baseURL, token string) *TransactionClient {
	return &TransactionClient{Client: NewClient(baseURL, token)}
}

// === Orders ===

func (c *TransactionClient) CreateOrder(ctx context.Context, rq model.OrderCreateRq) (model.Order, error) {
	var o model.Order
	err := c.doJSON(ctx, http.MethodPost, "/orders", nil, rq, &o)
	return o, err
}

func (c *TransactionClient) GetOrderByID(ctx context.Context, orderID, userID string) (model.Order, error) {
	q := url.Values{}
	q.Set("userId", userID)

	var o model.Order
	err := c.doJSON(ctx, http.MethodGet, "/orders/"+orderID, q, nil, &o)
	return o, err
}

func (c *TransactionClient) GetOrdersByBuyer(ctx context.Context, buyerID string, opts ListOptions) (model.Page[model.Order], error) {
	var page model.Page[model.Order]
	err := c.doJSON(ctx, http.MethodGet, "/orders/buyer/"+buyerID, opts.values(), nil, &page)
	return page, err
}

func (c *TransactionClient) GetOrdersBySeller(ctx context.Context, sellerID string, opts ListOptions) (model.Page[model.Order], error) {
	var page model.Page[model.Order]
	err := c.doJSON(ctx, http.MethodGet, "/orders/seller/"+sellerID, opts.values(), nil, &page)
	return page, err
}

func (c *TransactionClient) CancelOrder(ctx context.Context, orderID, buyerID string) (model.Order, error) {
	q := url.Values{}
	q.Set("buyerId", buyerID)

	var o model.Order
	err := c.doJSON(ctx, http.MethodPut, "/orders/"+orderID+"/cancel", q, nil, &o)
	return o, err
}

// UploadDeliveryProof sends the proof as a multipart request: a JSON part
// named "proofData" and a binary part named "file".
func (c *TransactionClient) UploadDeliveryProof(ctx context.Context, orderID, sellerID string, proof model.ProofData, filename string, file io.Reader) (model.Order, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	proofJSON, err := json.Marshal(proof)
	if err != nil {
		return model.Order{}, fmt.Errorf("failed to encode proof data: %w", err)
	}
	if err := w.WriteField("proofData", string(proofJSON)); err != nil {
		return model.Order{}, err
	}

	if file != nil {
		part, err := w.CreateFormFile("file", filename)
		if err != nil {
			return model.Order{}, err
		}
		if _, err := io.Copy(part, file); err != nil {
			return model.Order{}, fmt.Errorf("failed to read proof file: %w", err)
		}
	}
	if err := w.Close(); err != nil {
		return model.Order{}, err
	}

	q := url.Values{}
	q.Set("sellerId", sellerID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/orders/"+orderID+"/proof", q), &body)
	if err != nil {
		return model.Order{}, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	var o model.Order
	err = c.do(req, &o)
	return o, err
}

// === Refunds ===

func (c *TransactionClient) CreateRefund(ctx context.Context, rq model.RefundCreateRq) (model.Refund, error) {
	var r model.Refund
	err := c.doJSON(ctx, http.MethodPost, "/refunds", nil, rq, &r)
	return r, err
}

func (c *TransactionClient) GetRefundsByBuyer(ctx context.Context, buyerID string, opts ListOptions) (model.Page[model.Refund], error) {
	var page model.Page[model.Refund]
	err := c.doJSON(ctx, http.MethodGet, "/refunds/buyer/"+buyerID, opts.values(), nil, &page)
	return page, err
}

func (c *TransactionClient) GetRefundsBySeller(ctx context.Context, sellerID string, opts ListOptions) (model.Page[model.Refund], error) {
	var page model.Page[model.Refund]
	err := c.doJSON(ctx, http.MethodGet, "/refunds/seller/"+sellerID, opts.values(), nil, &page)
	return page, err
}

func (c *TransactionClient) ApproveRefund(ctx context.Context, refundID string) (model.Refund, error) {
	var r model.Refund
	err := c.doJSON(ctx, http.MethodPut, "/refunds/"+refundID+"/approve", nil, nil, &r)
	return r, err
}

func (c *TransactionClient) RejectRefund(ctx context.Context, refundID, reason string) (model.Refund, error) {
	body := map[string]string{"reason": reason}

	var r model.Refund
	err := c.doJSON(ctx, http.MethodPut, "/refunds/"+refundID+"/reject", nil, body, &r)
	return r, err
}

func (c *TransactionClient) UpdateRefundStatus(ctx context.Context, refundID, status string) (model.Refund, error) {
	body := map[string]string{"status": status}

	var r model.Refund
	err := c.doJSON(ctx, http.MethodPut, "/refunds/"+refundID+"/status", nil, body, &r)
	return r, err
}

// === Disputes ===

func (c *TransactionClient) CreateDispute(ctx context.Context, rq model.DisputeCreateRq) (model.Dispute, error) {
	var d model.Dispute
	err := c.doJSON(ctx, http.MethodPost, "/disputes", nil, rq, &d)
	return d, err
}

func (c *TransactionClient) GetDisputesByUser(ctx context.Context, userID string, opts ListOptions) (model.Page[model.Dispute], error) {
	var page model.Page[model.Dispute]
	err := c.doJSON(ctx, http.MethodGet, "/disputes/user/"+userID, opts.values(), nil, &page)
	return page, err
}

func (c *TransactionClient) GetAllDisputes(ctx context.Context, opts ListOptions) (model.Page[model.Dispute], error) {
	var page model.Page[model.Dispute]
	err := c.doJSON(ctx, http.MethodGet, "/disputes", opts.values(), nil, &page)
	return page, err
}

func (c *TransactionClient) ResolveDispute(ctx context.Context, disputeID string, rq model.DisputeResolveRq) (model.Dispute, error) {
	var d model.Dispute
	err := c.doJSON(ctx, http.MethodPut, "/disputes/"+disputeID+"/resolve", nil, rq, &d)
	return d, err
}
