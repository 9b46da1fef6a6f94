package model

import "math"

type SaleUnit string

const (
	// SaleUnitMain sells whole packs (e.g. a strip).
	SaleUnitMain SaleUnit = "main"
	// SaleUnitSub sells loose sub-units (e.g. single tablets).
	SaleUnitSub SaleUnit = "sub"
)

// CartLine is a value copy of a Product taken at first add, plus the
// mutable billing state. Qty is always stored in main units; SaleUnit only
// changes how the editable quantity is displayed. The JSON shape matches
// the invoice service contract, which receives lines as-is.
type CartLine struct {
	LineID        string   `json:"line_id"`
	ProductID     string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Price         float64  `json:"price"`
	OriginalPrice float64  `json:"original_price"`
	Qty           float64  `json:"qty"`
	SaleUnit      SaleUnit `json:"sale_unit"`
	PerStrip      float64  `json:"per_strip"`
	Stock         float64  `json:"stock"`
	Unit          string   `json:"unit"`
	Batch         string   `json:"batch"`
	Expiry        string   `json:"expiry"`
	GSTRate       float64  `json:"gst_rate"`
}

// LineTotal is always price times the main-unit quantity, regardless of
// the display mode.
func (l *CartLine) LineTotal() float64 {
	return l.Qty * l.Price
}

// DisplayQty is the number shown in the quantity input: the sub-unit count
// in loose mode, the main-unit quantity otherwise.
func (l *CartLine) DisplayQty() float64 {
	if l.SaleUnit == SaleUnitSub {
		return math.Round(l.Qty * l.PerStrip)
	}
	return l.Qty
}

// HasSubUnit reports whether the loose-unit mode is offered for this line.
func (l *CartLine) HasSubUnit() bool {
	return l.PerStrip > 1
}
