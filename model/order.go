package model

// Order statuses as the transaction service reports them.
const (
	OrderCreated   = "CREATED"
	OrderReadyPay  = "READY_PAY"
	OrderPaying    = "PAYING"
	OrderPaid      = "PAID"
	OrderDelivered = "DELIVERED"
	OrderCompleted = "COMPLETED"
	OrderCancelled = "CANCELLED"
)

// Payment statuses.
const (
	PaymentPending    = "PENDING"
	PaymentProcessing = "PROCESSING"
	PaymentSuccess    = "SUCCESS"
	PaymentFailed     = "FAILED"
	PaymentCancelled  = "CANCELLED"
)

// Refund statuses.
const (
	RefundPending    = "PENDING"
	RefundProcessing = "PROCESSING"
	RefundApproved   = "APPROVED"
	RefundRejected   = "REJECTED"
	RefundCompleted  = "COMPLETED"
)

// Dispute statuses.
const (
	DisputePending    = "PENDING"
	DisputeProcessing = "PROCESSING"
	DisputeCompleted  = "COMPLETED"
	DisputeCancelled  = "CANCELLED"
	DisputeRejected   = "REJECTED"
)

// Dispute issue types.
const (
	IssueNotDelivered  = "NOT_DELIVERED"
	IssueItemInvalid   = "ITEM_INVALID"
	IssueAccountBanned = "ACCOUNT_BANNED"
	IssueOther         = "OTHER"
)

type Order struct {
	ID            string          `json:"id"`
	BuyerID       string          `json:"buyerId"`
	SellerID      string          `json:"sellerId"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"paymentStatus"`
	TotalAmount   int64           `json:"totalAmount"`
	Currency      string          `json:"currency"`
	AuditFlag     bool            `json:"auditFlag"`
	Items         []OrderItem     `json:"items"`
	Proofs        []DeliveryProof `json:"proofs,omitempty"`
	Refunds       []Refund        `json:"refunds,omitempty"`
	Disputes      []Dispute       `json:"disputes,omitempty"`
	Logs          []OrderLog      `json:"logs,omitempty"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

type OrderItem struct {
	ProductID        string `json:"productId"`
	ProductVariantID string `json:"productVariantId,omitempty"`
	ProductName      string `json:"productName"`
	UnitPrice        int64  `json:"unitPrice"`
	Quantity         int    `json:"quantity"`
	Subtotal         int64  `json:"subtotal"`
}

type DeliveryProof struct {
	ID        string `json:"id"`
	OrderID   string `json:"orderId"`
	Type      string `json:"type"`
	URL       string `json:"url"`
	Note      string `json:"note,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type OrderLog struct {
	ID        string `json:"id"`
	OrderID   string `json:"orderId"`
	Action    string `json:"action"`
	Detail    string `json:"detail,omitempty"`
	CreatedAt string `json:"createdAt"`
}

type Refund struct {
	ID          string `json:"id"`
	OrderID     string `json:"orderId"`
	RequestBy   string `json:"requestBy"`
	Amount      int64  `json:"amount"`
	Status      string `json:"status"`
	Reason      string `json:"reason"`
	CreatedAt   string `json:"createdAt"`
	CompletedAt string `json:"completedAt,omitempty"`
}

type Dispute struct {
	ID          string `json:"id"`
	OrderID     string `json:"orderId"`
	OpenedBy    string `json:"openedBy"`
	IssueType   string `json:"issueType"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"createdAt"`
	ResolvedAt  string `json:"resolvedAt,omitempty"`
}
