package usecase

import (
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-billing-terminal/internal/cart"
	"github.com/fekuna/omnipos-billing-terminal/internal/model"
	"github.com/fekuna/omnipos-billing-terminal/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// cartUseCase keeps lines in insertion order, addressed by stable line ids
// so pending UI references survive removals. Positions are recomputed at
// render time via LineAt. Owned by the session loop, no locking.
type cartUseCase struct {
	logger logger.ZapLogger
	now    func() time.Time
	lines  []model.CartLine
}

func NewCartUseCase(log logger.ZapLogger) cart.UseCase {
	return &cartUseCase{
		logger: log,
		now:    time.Now,
	}
}

// NewCartUseCaseAt pins the clock, for expiry checks in tests.
func NewCartUseCaseAt(log logger.ZapLogger, now func() time.Time) cart.UseCase {
	return &cartUseCase{
		logger: log,
		now:    now,
	}
}

func (uc *cartUseCase) Add(product *model.Product, allowExpired bool) (*model.CartLine, error) {
	if product.Stock <= 0 {
		return nil, cart.ErrOutOfStock
	}

	if product.IsExpired(uc.now()) && !allowExpired {
		return nil, cart.ErrExpiredNeedsConfirm
	}

	if line := uc.findByProduct(product.ID); line != nil {
		if line.Qty+1 > line.Stock {
			return nil, cart.ErrInsufficientStock
		}
		line.Qty++
		return line, nil
	}

	// Value copy of the product at add time; later catalog reloads do not
	// touch existing lines. per_strip is already normalized at the API
	// boundary, absent or malformed values arrive as 0.
	line := model.CartLine{
		LineID:        uuid.New().String(),
		ProductID:     product.ID,
		Name:          product.Name,
		Category:      product.Category,
		Price:         product.Price,
		OriginalPrice: product.Price,
		Qty:           1,
		SaleUnit:      model.SaleUnitMain,
		PerStrip:      product.PerStrip,
		Stock:         product.Stock,
		Unit:          product.Unit,
		Batch:         product.Batch,
		GSTRate:       product.GSTRate,
	}
	if product.Expiry != nil {
		line.Expiry = product.Expiry.Format("2006-01-02")
	}

	uc.lines = append(uc.lines, line)
	uc.logger.Debug("cart line added", zap.String("product_id", product.ID), zap.String("line_id", line.LineID))
	return &uc.lines[len(uc.lines)-1], nil
}

func (uc *cartUseCase) UpdateQty(lineID string, raw string) error {
	line := uc.findByID(lineID)
	if line == nil {
		return cart.ErrLineNotFound
	}

	val, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || val <= 0 {
		// A cleared or zeroed quantity input is a removal request.
		return uc.Remove(lineID)
	}

	// In loose mode the input counts sub-units; convert back to packs
	// before comparing against the main-unit stock ceiling.
	qty := val
	if line.SaleUnit == model.SaleUnitSub && line.PerStrip > 0 {
		qty = val / line.PerStrip
	}

	if qty > line.Stock {
		return cart.ErrInsufficientStock
	}

	line.Qty = qty
	return nil
}

func (uc *cartUseCase) ToggleUnit(lineID string, unit model.SaleUnit) error {
	line := uc.findByID(lineID)
	if line == nil {
		return cart.ErrLineNotFound
	}
	if unit != model.SaleUnitMain && unit != model.SaleUnitSub {
		return cart.ErrUnitUnavailable
	}
	if unit == model.SaleUnitSub && !line.HasSubUnit() {
		return cart.ErrUnitUnavailable
	}

	line.SaleUnit = unit
	return nil
}

func (uc *cartUseCase) UpdatePrice(lineID string, raw string) error {
	line := uc.findByID(lineID)
	if line == nil {
		return cart.ErrLineNotFound
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || price < 0 {
		return cart.ErrInvalidPrice
	}

	line.Price = price
	return nil
}

func (uc *cartUseCase) Remove(lineID string) error {
	for i := range uc.lines {
		if uc.lines[i].LineID == lineID {
			uc.lines = append(uc.lines[:i], uc.lines[i+1:]...)
			return nil
		}
	}
	return cart.ErrLineNotFound
}

func (uc *cartUseCase) LineAt(index int) (*model.CartLine, bool) {
	if index < 0 || index >= len(uc.lines) {
		return nil, false
	}
	return &uc.lines[index], true
}

// Lines returns a snapshot copy so renders always derive from stored state.
func (uc *cartUseCase) Lines() []model.CartLine {
	out := make([]model.CartLine, len(uc.lines))
	copy(out, uc.lines)
	return out
}

func (uc *cartUseCase) Len() int {
	return len(uc.lines)
}

func (uc *cartUseCase) Subtotal() float64 {
	var total float64
	for i := range uc.lines {
		total += uc.lines[i].LineTotal()
	}
	return total
}

func (uc *cartUseCase) Clear() {
	uc.lines = nil
}

func (uc *cartUseCase) findByProduct(productID string) *model.CartLine {
	for i := range uc.lines {
		if uc.lines[i].ProductID == productID {
			return &uc.lines[i]
		}
	}
	return nil
}

func (uc *cartUseCase) findByID(lineID string) *model.CartLine {
	for i := range uc.lines {
		if uc.lines[i].LineID == lineID {
			return &uc.lines[i]
		}
	}
	return nil
}
