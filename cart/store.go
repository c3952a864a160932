package cart

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"time"

	"marketplace-client-sample/model"

	"github.com/google/uuid"
)

const (
	MinQuantity = 1
	MaxQuantity = 99

	// bump when the persisted shape changes; old files load as empty
	schemaVersion = 1
)

var (
	ErrQuantityTooLow    = errors.New("quantity must be at least 1")
	ErrQuantityTooHigh   = errors.New("quantity cannot exceed 99 per item")
	ErrInsufficientStock = errors.New("quantity exceeds available stock")
	ErrNoSuchItem        = errors.New("no cart item at that position")
)

// CheckQuantity validates a requested quantity against the hard bounds and
// the variant's snapshot stock. An availableQty of 0 means the variant does
// not track stock and the stock cap is skipped.
func CheckQuantity(qty, availableQty int) error {
	if qty < MinQuantity {
		return ErrQuantityTooLow
	}
	if qty > MaxQuantity {
		return ErrQuantityTooHigh
	}
	if availableQty > 0 && qty > availableQty {
		return ErrInsufficientStock
	}
	return nil
}

type envelope struct {
	Version int              `json:"version"`
	Items   []model.CartItem `json:"items"`
}

// Store is the locally persisted cart. Every mutation rewrites the whole
// file; there is no partial update and no cross-process coordination.
type Store struct {
	path  string
	items []model.CartItem
}

// Open loads the cart file at path. A missing, unreadable or
// version-mismatched file yields an empty cart instead of an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Println("cart file unreadable, starting empty:", err)
		return s, nil
	}
	if env.Version != schemaVersion {
		log.Printf("cart file has schema version %d, expected %d, starting empty", env.Version, schemaVersion)
		return s, nil
	}

	s.items = env.Items
	return s, nil
}

// Items returns a copy of the current cart lines in insertion order.
func (s *Store) Items() []model.CartItem {
	out := make([]model.CartItem, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int {
	return len(s.items)
}

// Add puts an item in the cart. A line with the same product and variant is
// merged by summing quantities; the merged quantity must still pass the
// bounds check or the cart is left untouched.
func (s *Store) Add(item model.CartItem) error {
	if err := CheckQuantity(item.Quantity, item.AvailableQty()); err != nil {
		return err
	}

	for i, existing := range s.items {
		if existing.ProductID == item.ProductID && existing.Variant == item.Variant {
			merged := existing.Quantity + item.Quantity
			if err := CheckQuantity(merged, existing.AvailableQty()); err != nil {
				return err
			}
			s.items[i].Quantity = merged
			return s.save()
		}
	}

	if item.LineID == "" {
		item.LineID = uuid.NewString()
	}
	if item.AddedAt.IsZero() {
		item.AddedAt = time.Now()
	}
	s.items = append(s.items, item)
	return s.save()
}

// SetQuantity updates one line's quantity. On a rejected quantity nothing
// changes, not even the file's mtime.
func (s *Store) SetQuantity(index, qty int) error {
	if index < 0 || index >= len(s.items) {
		return ErrNoSuchItem
	}
	if err := CheckQuantity(qty, s.items[index].AvailableQty()); err != nil {
		return err
	}

	s.items[index].Quantity = qty
	return s.save()
}

func (s *Store) Remove(index int) error {
	if index < 0 || index >= len(s.items) {
		return ErrNoSuchItem
	}

	s.items = append(s.items[:index], s.items[index+1:]...)
	return s.save()
}

func (s *Store) Clear() error {
	s.items = nil
	return s.save()
}

// Total is the sum of price * quantity over the current lines.
func (s *Store) Total() int64 {
	var total int64
	for _, item := range s.items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

func (s *Store) save() error {
	raw, err := json.Marshal(envelope{Version: schemaVersion, Items: s.items})
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(s.path, raw, 0o644)
}
