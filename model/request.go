package model

type OrderCreateItem struct {
	ProductID        string `json:"productId"`
	ProductVariantID string `json:"productVariantId,omitempty"`
	UnitPrice        int64  `json:"unitPrice"`
	Quantity         int    `json:"quantity"`
}

type OrderCreateRq struct {
	SellerID    string            `json:"sellerId"`
	TotalAmount int64             `json:"totalAmount"`
	Currency    string            `json:"currency"`
	Items       []OrderCreateItem `json:"items"`
}

type RefundCreateRq struct {
	OrderID   string `json:"orderId"`
	RequestBy string `json:"requestBy"`
	Reason    string `json:"reason"`
}

type DisputeCreateRq struct {
	OrderID     string `json:"orderId"`
	OpenedBy    string `json:"openedBy"`
	IssueType   string `json:"issueType"`
	Description string `json:"description"`
}

type DisputeResolveRq struct {
	Status     string `json:"status"` // "COMPLETED" | "CANCELLED" | "PROCESSING"
	AutoRefund bool   `json:"autoRefund"`
}

// ProofData is the JSON part of the multipart delivery-proof upload.
type ProofData struct {
	Type string `json:"type"`
	URL  string `json:"url,omitempty"`
	Note string `json:"note,omitempty"`
}
