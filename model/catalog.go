package model

type Product struct {
	ID          string `json:"id"`
	UserID      string `json:"userId"` // seller who listed the product
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	CategoryID  string `json:"categoryId,omitempty"`
	BasePrice   int64  `json:"basePrice"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
}

type ProductVariant struct {
	ID           string `json:"id"`
	ProductID    string `json:"productId"`
	SKU          string `json:"sku"`
	Price        int64  `json:"price"`
	AvailableQty int    `json:"availableQty"`
	ReservedQty  int    `json:"reservedQty"`
	SoldQty      int    `json:"soldQty"`
}

type User struct {
	ID          string   `json:"id"`
	Email       string   `json:"email"`
	DisplayName string   `json:"displayName,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Roles       []string `json:"roles,omitempty"`
}

type BillingAddress struct {
	FullName string `json:"fullName,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
}

// Page is the pagination envelope every list endpoint returns.
type Page[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}
