package model

import "time"

// VariantSnapshot is the slice of variant data a cart line keeps from the
// moment the item was added. AvailableQty drives the stock checks later;
// SellerID is needed to build the order payload without re-fetching the
// product.
type VariantSnapshot struct {
	ProductVariantID string `json:"productVariantId"`
	SKU              string `json:"sku,omitempty"`
	SellerID         string `json:"sellerId"`
	AvailableQty     int    `json:"availableQty"`
}

type CartItem struct {
	LineID      string           `json:"lineId"`
	ProductID   string           `json:"productId"`
	Name        string           `json:"name"`
	Price       int64            `json:"price"` // unit price at time of adding
	Quantity    int              `json:"quantity"`
	Variant     string           `json:"variant,omitempty"`
	VariantData *VariantSnapshot `json:"variantData,omitempty"`
	AddedAt     time.Time        `json:"addedAt"`
}

// SellerID returns the seller recorded on the line, if any.
func (c CartItem) SellerID() string {
	if c.VariantData == nil {
		return ""
	}
	return c.VariantData.SellerID
}

// AvailableQty returns the snapshot stock level, 0 when the variant does not
// track stock.
func (c CartItem) AvailableQty() int {
	if c.VariantData == nil {
		return 0
	}
	return c.VariantData.AvailableQty
}
