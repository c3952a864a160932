package cart

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"marketplace-client-sample/model"
)

func testItem(productID string, price int64, qty, availableQty int) model.CartItem {
	return model.CartItem{
		ProductID: productID,
		Name:      "Item " + productID,
		Price:     price,
		Quantity:  qty,
		Variant:   "SKU-" + productID,
		VariantData: &model.VariantSnapshot{
			ProductVariantID: "v-" + productID,
			SellerID:         "seller1",
			AvailableQty:     availableQty,
		},
	}
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cart.json"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	return s
}

func TestCheckQuantity(t *testing.T) {
	tests := []struct {
		name         string
		qty          int
		availableQty int
		expected     error
	}{
		{"minimum accepted", 1, 10, nil},
		{"maximum accepted", 99, 0, nil},
		{"zero rejected", 0, 10, ErrQuantityTooLow},
		{"negative rejected", -3, 10, ErrQuantityTooLow},
		{"above hard cap rejected", 100, 0, ErrQuantityTooHigh},
		{"above stock rejected", 4, 3, ErrInsufficientStock},
		{"equal to stock accepted", 3, 3, nil},
		{"untracked stock skips cap", 50, 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := CheckQuantity(tt.qty, tt.availableQty); err != tt.expected {
				t.Errorf("CheckQuantity(%d, %d) = %v, expected %v", tt.qty, tt.availableQty, err, tt.expected)
			}
		})
	}
}

func TestAddAndPersistRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := s.Add(testItem("p1", 100000, 2, 5)); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if err := s.Add(testItem("p2", 45000, 1, 0)); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	// reopen: same items, same order
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	if !reflect.DeepEqual(s.Items(), reopened.Items()) {
		t.Fatalf("reopened cart differs:\n got %+v\nwant %+v", reopened.Items(), s.Items())
	}
	if reopened.Items()[0].LineID == "" {
		t.Fatalf("expected a line id to be assigned")
	}
}

func TestAddMergesSameVariant(t *testing.T) {
	s := openTestStore(t)

	if err := s.Add(testItem("p1", 100000, 2, 5)); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if err := s.Add(testItem("p1", 100000, 2, 5)); err != nil {
		t.Fatalf("second Add returned error: %v", err)
	}

	if s.Len() != 1 {
		t.Fatalf("expected 1 merged line, got %d", s.Len())
	}
	if got := s.Items()[0].Quantity; got != 4 {
		t.Fatalf("expected merged quantity 4, got %d", got)
	}

	// merging beyond stock must not change anything
	if err := s.Add(testItem("p1", 100000, 2, 5)); err != ErrInsufficientStock {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	if got := s.Items()[0].Quantity; got != 4 {
		t.Fatalf("quantity changed after rejected merge: %d", got)
	}
}

func TestSetQuantityRejectionLeavesStateUnchanged(t *testing.T) {
	s := openTestStore(t)
	if err := s.Add(testItem("p1", 100000, 3, 3)); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	before := s.Items()

	tests := []struct {
		name     string
		qty      int
		expected error
	}{
		{"increment beyond stock", 4, ErrInsufficientStock},
		{"below minimum", 0, ErrQuantityTooLow},
		{"above hard cap", 100, ErrQuantityTooHigh},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.SetQuantity(0, tt.qty); err != tt.expected {
				t.Fatalf("SetQuantity(0, %d) = %v, expected %v", tt.qty, err, tt.expected)
			}
			if !reflect.DeepEqual(s.Items(), before) {
				t.Fatalf("cart mutated after rejected quantity change")
			}
		})
	}

	if err := s.SetQuantity(0, 2); err != nil {
		t.Fatalf("valid SetQuantity returned error: %v", err)
	}
	if got := s.Items()[0].Quantity; got != 2 {
		t.Fatalf("expected quantity 2, got %d", got)
	}
}

func TestSetQuantityTouchesOnlyTargetLine(t *testing.T) {
	s := openTestStore(t)
	s.Add(testItem("p1", 100000, 1, 5))
	s.Add(testItem("p2", 45000, 1, 5))
	other := s.Items()[1]

	if err := s.SetQuantity(0, 3); err != nil {
		t.Fatalf("SetQuantity returned error: %v", err)
	}
	if !reflect.DeepEqual(s.Items()[1], other) {
		t.Fatalf("untouched line changed: %+v", s.Items()[1])
	}
}

func TestRemoveAndClear(t *testing.T) {
	s := openTestStore(t)
	s.Add(testItem("p1", 100000, 1, 5))
	s.Add(testItem("p2", 45000, 1, 5))

	if err := s.Remove(5); err != ErrNoSuchItem {
		t.Fatalf("expected ErrNoSuchItem, got %v", err)
	}
	if err := s.Remove(0); err != nil {
		t.Fatalf("Remove returned error: %v", err)
	}
	if s.Len() != 1 || s.Items()[0].ProductID != "p2" {
		t.Fatalf("unexpected cart after remove: %+v", s.Items())
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear returned error: %v", err)
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty cart after clear, got %d items", s.Len())
	}
}

func TestTotal(t *testing.T) {
	s := openTestStore(t)
	s.Add(testItem("p1", 100000, 2, 5))
	s.Add(testItem("p2", 45000, 3, 0))

	expected := int64(100000*2 + 45000*3)
	if got := s.Total(); got != expected {
		t.Fatalf("Total() = %d, expected %d", got, expected)
	}
	// no mutation in between → same value
	if got := s.Total(); got != expected {
		t.Fatalf("Total() not stable, got %d", got)
	}
}

func TestOpenIgnoresBadFiles(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"garbage", "not json at all"},
		{"wrong version", `{"version":99,"items":[{"productId":"p1","quantity":1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name+".json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("failed to write fixture: %v", err)
			}

			s, err := Open(path)
			if err != nil {
				t.Fatalf("Open returned error: %v", err)
			}
			if s.Len() != 0 {
				t.Fatalf("expected empty cart, got %d items", s.Len())
			}
		})
	}
}
