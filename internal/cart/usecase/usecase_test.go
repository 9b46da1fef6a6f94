package usecase

import (
	"errors"
	"math"
	"strconv"
	"testing"
	"time"

	"github.com/fekuna/omnipos-billing-terminal/internal/cart"
	"github.com/fekuna/omnipos-billing-terminal/internal/model"
	"github.com/fekuna/omnipos-billing-terminal/pkg/logger"
)

var testNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func newCart() cart.UseCase {
	return NewCartUseCaseAt(logger.NewNop(), func() time.Time { return testNow })
}

func paracetamol() model.Product {
	return model.Product{
		ID:       "1",
		Name:     "Paracetamol",
		Category: "Analgesic",
		Price:    2.50,
		Stock:    20,
		Unit:     "Tab",
		PerStrip: 10,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAddCreatesLine(t *testing.T) {
	uc := newCart()
	p := paracetamol()

	line, err := uc.Add(&p, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if line.Qty != 1 {
		t.Errorf("expected qty 1, got %g", line.Qty)
	}
	if line.SaleUnit != model.SaleUnitMain {
		t.Errorf("expected sale unit main, got %q", line.SaleUnit)
	}
	if line.LineID == "" {
		t.Error("expected a stable line id")
	}
	if !almostEqual(line.LineTotal(), 2.50) {
		t.Errorf("expected line total 2.50, got %g", line.LineTotal())
	}
	if !almostEqual(line.OriginalPrice, 2.50) {
		t.Errorf("expected original price preserved, got %g", line.OriginalPrice)
	}
}

func TestAddCapturesValueCopy(t *testing.T) {
	uc := newCart()
	p := paracetamol()

	uc.Add(&p, false)
	p.Price = 99
	p.Name = "changed"

	lines := uc.Lines()
	if lines[0].Price != 2.50 || lines[0].Name != "Paracetamol" {
		t.Error("cart line must not track later product mutations")
	}
}

func TestAddIncrementsUpToStockCeiling(t *testing.T) {
	uc := newCart()
	p := paracetamol()
	p.Stock = 5

	for i := 0; i < 5; i++ {
		if _, err := uc.Add(&p, false); err != nil {
			t.Fatalf("add %d: unexpected error: %v", i+1, err)
		}
	}

	_, err := uc.Add(&p, false)
	if !errors.Is(err, cart.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	line, _ := uc.LineAt(0)
	if line.Qty != 5 {
		t.Errorf("rejected add must not change qty, got %g", line.Qty)
	}
	if uc.Len() != 1 {
		t.Errorf("expected a single line, got %d", uc.Len())
	}
}

func TestAddOutOfStock(t *testing.T) {
	uc := newCart()
	p := paracetamol()
	p.Stock = 0

	_, err := uc.Add(&p, false)
	if !errors.Is(err, cart.ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
	if uc.Len() != 0 {
		t.Errorf("cart length must be unchanged, got %d", uc.Len())
	}
}

func TestAddExpiredNeedsConfirmation(t *testing.T) {
	uc := newCart()
	p := paracetamol()
	yesterday := testNow.AddDate(0, 0, -1)
	p.Expiry = &yesterday

	_, err := uc.Add(&p, false)
	if !errors.Is(err, cart.ErrExpiredNeedsConfirm) {
		t.Fatalf("expected ErrExpiredNeedsConfirm, got %v", err)
	}
	if uc.Len() != 0 {
		t.Error("declined add must leave the cart unchanged")
	}

	if _, err := uc.Add(&p, true); err != nil {
		t.Fatalf("confirmed add failed: %v", err)
	}
	if uc.Len() != 1 {
		t.Errorf("expected 1 line after confirmed add, got %d", uc.Len())
	}
}

func TestSubUnitQtyScenario(t *testing.T) {
	// Catalog scenario: Paracetamol 2.50/strip, stock 20, 10 per strip.
	uc := newCart()
	p := paracetamol()

	line, err := uc.Add(&p, false)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !almostEqual(uc.Subtotal(), 2.50) {
		t.Fatalf("expected subtotal 2.50, got %g", uc.Subtotal())
	}

	if err := uc.ToggleUnit(line.LineID, model.SaleUnitSub); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	// 35 tablets at 10 per strip is 3.5 strips, within stock 20.
	if err := uc.UpdateQty(line.LineID, "35"); err != nil {
		t.Fatalf("update qty: %v", err)
	}

	got, _ := uc.LineAt(0)
	if !almostEqual(got.Qty, 3.5) {
		t.Errorf("expected stored qty 3.5 main units, got %g", got.Qty)
	}
	if !almostEqual(got.LineTotal(), 8.75) {
		t.Errorf("expected line total 8.75, got %g", got.LineTotal())
	}
	if got.DisplayQty() != 35 {
		t.Errorf("expected display qty 35 sub-units, got %g", got.DisplayQty())
	}
}

func TestSubUnitDisplayRoundTrip(t *testing.T) {
	uc := newCart()
	p := paracetamol()

	line, _ := uc.Add(&p, false)
	uc.ToggleUnit(line.LineID, model.SaleUnitSub)

	for _, subCount := range []string{"1", "7", "35", "200"} {
		if err := uc.UpdateQty(line.LineID, subCount); err != nil {
			t.Fatalf("update qty %s: %v", subCount, err)
		}
		got, _ := uc.LineAt(0)
		want, _ := strconv.ParseFloat(subCount, 64)
		if got.DisplayQty() != want {
			t.Errorf("sub count %s: display qty %g does not round-trip", subCount, got.DisplayQty())
		}
	}
}

func TestToggleUnitKeepsStoredQty(t *testing.T) {
	uc := newCart()
	p := paracetamol()

	line, _ := uc.Add(&p, false)
	uc.UpdateQty(line.LineID, "3")

	uc.ToggleUnit(line.LineID, model.SaleUnitSub)
	got, _ := uc.LineAt(0)
	if got.Qty != 3 {
		t.Errorf("toggling must not alter stored qty, got %g", got.Qty)
	}
	if got.DisplayQty() != 30 {
		t.Errorf("expected 30 sub-units displayed, got %g", got.DisplayQty())
	}

	uc.ToggleUnit(line.LineID, model.SaleUnitMain)
	got, _ = uc.LineAt(0)
	if got.DisplayQty() != 3 {
		t.Errorf("expected 3 main units displayed, got %g", got.DisplayQty())
	}
}

func TestToggleUnitUnavailable(t *testing.T) {
	uc := newCart()
	p := paracetamol()
	p.ID = "2"
	p.PerStrip = 1

	line, _ := uc.Add(&p, false)
	if err := uc.ToggleUnit(line.LineID, model.SaleUnitSub); !errors.Is(err, cart.ErrUnitUnavailable) {
		t.Errorf("expected ErrUnitUnavailable for per_strip=1, got %v", err)
	}
	if err := uc.ToggleUnit(line.LineID, "carton"); !errors.Is(err, cart.ErrUnitUnavailable) {
		t.Errorf("expected ErrUnitUnavailable for unknown unit, got %v", err)
	}
}

func TestUpdateQtyOverStockLeavesLineUntouched(t *testing.T) {
	uc := newCart()
	p := paracetamol()

	line, _ := uc.Add(&p, false)
	err := uc.UpdateQty(line.LineID, "25")
	if !errors.Is(err, cart.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	got, _ := uc.LineAt(0)
	if got.Qty != 1 {
		t.Errorf("stored qty must stay at last valid value, got %g", got.Qty)
	}
}

func TestUpdateQtySubModeChecksMainUnitCeiling(t *testing.T) {
	uc := newCart()
	p := paracetamol()
	p.Stock = 2 // 20 tablets

	line, _ := uc.Add(&p, false)
	uc.ToggleUnit(line.LineID, model.SaleUnitSub)

	if err := uc.UpdateQty(line.LineID, "20"); err != nil {
		t.Fatalf("20 tablets equals the 2-strip ceiling, got %v", err)
	}
	if err := uc.UpdateQty(line.LineID, "21"); !errors.Is(err, cart.ErrInsufficientStock) {
		t.Errorf("21 tablets exceeds stock, expected ErrInsufficientStock, got %v", err)
	}
}

func TestUpdateQtyRemovesOnNonPositiveOrGarbage(t *testing.T) {
	uc := newCart()
	p := paracetamol()

	for _, raw := range []string{"0", "-2", "abc", ""} {
		line, err := uc.Add(&p, false)
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if err := uc.UpdateQty(line.LineID, raw); err != nil {
			t.Fatalf("raw %q: expected removal, got error %v", raw, err)
		}
		if uc.Len() != 0 {
			t.Fatalf("raw %q: expected line removed, cart has %d", raw, uc.Len())
		}
	}
}

func TestUpdatePrice(t *testing.T) {
	uc := newCart()
	p := paracetamol()
	line, _ := uc.Add(&p, false)

	for _, raw := range []string{"-1", "x"} {
		if err := uc.UpdatePrice(line.LineID, raw); !errors.Is(err, cart.ErrInvalidPrice) {
			t.Errorf("raw %q: expected ErrInvalidPrice, got %v", raw, err)
		}
	}
	got, _ := uc.LineAt(0)
	if !almostEqual(got.Price, 2.50) {
		t.Errorf("rejected edits must not change price, got %g", got.Price)
	}

	if err := uc.UpdatePrice(line.LineID, "3.25"); err != nil {
		t.Fatalf("valid price rejected: %v", err)
	}
	got, _ = uc.LineAt(0)
	if !almostEqual(got.Price, 3.25) {
		t.Errorf("expected price 3.25, got %g", got.Price)
	}
	if !almostEqual(got.OriginalPrice, 2.50) {
		t.Errorf("original price must survive overrides, got %g", got.OriginalPrice)
	}
}

func TestSubtotalTracksLineDeltas(t *testing.T) {
	uc := newCart()
	a := paracetamol()
	b := paracetamol()
	b.ID = "2"
	b.Name = "Cetirizine"
	b.Price = 4

	la, _ := uc.Add(&a, false)
	uc.Add(&b, false)
	if !almostEqual(uc.Subtotal(), 6.50) {
		t.Fatalf("expected subtotal 6.50, got %g", uc.Subtotal())
	}

	uc.UpdateQty(la.LineID, "3")
	if !almostEqual(uc.Subtotal(), 11.50) {
		t.Errorf("expected subtotal 11.50 after qty edit, got %g", uc.Subtotal())
	}

	uc.Remove(la.LineID)
	if !almostEqual(uc.Subtotal(), 4) {
		t.Errorf("expected subtotal 4 after removal, got %g", uc.Subtotal())
	}
}

func TestRemoveShiftsPositions(t *testing.T) {
	uc := newCart()
	a := paracetamol()
	b := paracetamol()
	b.ID = "2"
	b.Name = "Cetirizine"

	uc.Add(&a, false)
	uc.Add(&b, false)

	first, _ := uc.LineAt(0)
	if err := uc.Remove(first.LineID); err != nil {
		t.Fatalf("remove: %v", err)
	}

	got, ok := uc.LineAt(0)
	if !ok || got.Name != "Cetirizine" {
		t.Error("expected remaining line to shift to position 0")
	}
	if _, ok := uc.LineAt(1); ok {
		t.Error("expected position 1 to be out of range after removal")
	}
}

func TestClear(t *testing.T) {
	uc := newCart()
	p := paracetamol()
	uc.Add(&p, false)

	uc.Clear()
	if uc.Len() != 0 || uc.Subtotal() != 0 {
		t.Error("expected empty cart after clear")
	}
}
