package checkout

import (
	"context"
	"errors"
	"log"
	"time"

	"marketplace-client-sample/cart"
	"marketplace-client-sample/helper"
	"marketplace-client-sample/model"

	"github.com/google/uuid"
)

var (
	ErrNoProduct        = errors.New("no product to buy")
	ErrEmptyCart        = errors.New("no items to order")
	ErrEmailRequired    = errors.New("email is required")
	ErrNotAuthenticated = errors.New("sign in to place an order")
	ErrNoSeller         = errors.New("order has no resolvable seller")
)

// OrderCreator is the slice of the transaction client that checkout needs.
type OrderCreator interface {
	CreateOrder(ctx context.Context, rq model.OrderCreateRq) (model.Order, error)
}

// AddressLoader fetches the user's stored billing address.
type AddressLoader interface {
	GetBillingAddress(ctx context.Context, userID string) (model.BillingAddress, error)
}

// CustomerInfo is the shipping/contact form. Email always comes from the
// session and is not editable.
type CustomerInfo struct {
	FullName string
	Email    string
	Phone    string
	Address  string
	City     string
	Country  string
	Note     string
}

// Flow reconciles either the persisted cart or a single buy-now item into an
// order-creation request.
type Flow struct {
	session helper.Session
	orders  OrderCreator
	store   *cart.Store // nil in buy-now mode
	items   []model.CartItem
	buyNow  bool

	Info CustomerInfo
}

// FromCart starts a checkout over the persisted cart.
func FromCart(session helper.Session, orders OrderCreator, store *cart.Store) *Flow {
	return &Flow{
		session: session,
		orders:  orders,
		store:   store,
		items:   store.Items(),
		Info:    CustomerInfo{Email: session.Email},
	}
}

// BuyNow starts a checkout over a single item carried directly from a product
// page. It never falls back to the cart: a missing product is a dead end.
func BuyNow(session helper.Session, orders OrderCreator, product *model.Product, variant *model.ProductVariant, qty int) (*Flow, error) {
	if product == nil {
		return nil, ErrNoProduct
	}

	item := model.CartItem{
		LineID:    uuid.NewString(),
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.BasePrice,
		Quantity:  qty,
		AddedAt:   time.Now(),
		VariantData: &model.VariantSnapshot{
			SellerID: product.UserID,
		},
	}
	if variant != nil {
		item.Price = variant.Price
		item.Variant = variant.SKU
		item.VariantData.ProductVariantID = variant.ID
		item.VariantData.SKU = variant.SKU
		item.VariantData.AvailableQty = variant.AvailableQty
	}
	if err := cart.CheckQuantity(qty, item.AvailableQty()); err != nil {
		return nil, err
	}

	return &Flow{
		session: session,
		orders:  orders,
		items:   []model.CartItem{item},
		buyNow:  true,
		Info:    CustomerInfo{Email: session.Email},
	}, nil
}

// Items returns the current line items.
func (f *Flow) Items() []model.CartItem {
	out := make([]model.CartItem, len(f.items))
	copy(out, f.items)
	return out
}

// SetQuantity changes one line's quantity. Rejections leave everything
// untouched. In cart mode the change is persisted immediately.
func (f *Flow) SetQuantity(index, qty int) error {
	if index < 0 || index >= len(f.items) {
		return cart.ErrNoSuchItem
	}

	if f.buyNow {
		if err := cart.CheckQuantity(qty, f.items[index].AvailableQty()); err != nil {
			return err
		}
		f.items[index].Quantity = qty
		return nil
	}

	if err := f.store.SetQuantity(index, qty); err != nil {
		return err
	}
	f.items = f.store.Items()
	return nil
}

// TotalAmount is recomputed from the current lines on every call.
func (f *Flow) TotalAmount() int64 {
	var total int64
	for _, item := range f.items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// LoadSavedAddress merges the stored billing address into the form. A stored
// field wins when present, the current value stays otherwise; email is always
// the session's.
func (f *Flow) LoadSavedAddress(ctx context.Context, users AddressLoader) error {
	addr, err := users.GetBillingAddress(ctx, f.session.UserID)
	if err != nil {
		return err
	}

	f.Info = CustomerInfo{
		FullName: pick(addr.FullName, f.Info.FullName),
		Email:    f.session.Email,
		Phone:    pick(addr.Phone, f.Info.Phone),
		Address:  pick(addr.Address, f.Info.Address),
		City:     pick(addr.City, f.Info.City),
		Country:  pick(addr.Country, f.Info.Country),
		Note:     f.Info.Note,
	}
	return nil
}

func pick(stored, current string) string {
	if stored != "" {
		return stored
	}
	return current
}

// Submit validates the flow and creates the order. On success the persisted
// cart is cleared (cart mode only) and the in-memory lines are dropped; on
// failure nothing changes and the server's error comes back as-is.
func (f *Flow) Submit(ctx context.Context) (model.Order, error) {
	if len(f.items) == 0 {
		return model.Order{}, ErrEmptyCart
	}
	if f.Info.Email == "" {
		return model.Order{}, ErrEmailRequired
	}
	if !f.session.Authenticated() {
		return model.Order{}, ErrNotAuthenticated
	}

	// The order payload carries a single seller. Lines snapshot their seller
	// at add time and the first one wins; mixed-seller carts are not checked
	// here, the server has the last word.
	sellerID := f.items[0].SellerID()
	if sellerID == "" {
		return model.Order{}, ErrNoSeller
	}

	rq := model.OrderCreateRq{
		SellerID:    sellerID,
		TotalAmount: f.TotalAmount(),
		Currency:    "VND",
		Items:       make([]model.OrderCreateItem, 0, len(f.items)),
	}
	for _, item := range f.items {
		entry := model.OrderCreateItem{
			ProductID: item.ProductID,
			UnitPrice: item.Price,
			Quantity:  item.Quantity,
		}
		if item.VariantData != nil {
			entry.ProductVariantID = item.VariantData.ProductVariantID
		}
		rq.Items = append(rq.Items, entry)
	}

	order, err := f.orders.CreateOrder(ctx, rq)
	if err != nil {
		return model.Order{}, err
	}

	if !f.buyNow && f.store != nil {
		// the order exists either way; a stale cart file is recoverable
		if err := f.store.Clear(); err != nil {
			log.Println("failed to clear cart after order:", err)
		}
	}
	f.items = nil
	return order, nil
}
