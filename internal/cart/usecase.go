package cart

import (
	"errors"

	"github.com/fekuna/omnipos-billing-terminal/internal/model"
)

// Validation failures the UI is expected to branch on with errors.Is.
var (
	ErrOutOfStock          = errors.New("out of stock")
	ErrInsufficientStock   = errors.New("not enough stock")
	ErrExpiredNeedsConfirm = errors.New("product expired, confirmation required")
	ErrInvalidPrice        = errors.New("invalid price")
	ErrUnitUnavailable     = errors.New("loose unit not available for this product")
	ErrLineNotFound        = errors.New("cart line not found")
)

type UseCase interface {
	// Add puts one main-unit pack of the product in the cart, or increments
	// an existing line by one pack. Expired products are refused until the
	// caller retries with allowExpired set.
	Add(product *model.Product, allowExpired bool) (*model.CartLine, error)

	// UpdateQty interprets raw in the line's current display unit. An
	// unparseable or non-positive value removes the line. An over-stock
	// value leaves the stored quantity untouched and returns
	// ErrInsufficientStock so the display can be re-derived.
	UpdateQty(lineID string, raw string) error

	// ToggleUnit switches the display representation only; the stored
	// quantity stays in main units.
	ToggleUnit(lineID string, unit model.SaleUnit) error

	UpdatePrice(lineID string, raw string) error
	Remove(lineID string) error

	// LineAt resolves a display position against the current order.
	// Positions are only valid until the next mutation.
	LineAt(index int) (*model.CartLine, bool)
	Lines() []model.CartLine
	Len() int
	Subtotal() float64
	Clear()
}
