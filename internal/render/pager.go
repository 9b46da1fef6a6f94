package render

import (
	"time"

	"github.com/fekuna/omnipos-billing-terminal/internal/model"
)

type BadgeKind int

const (
	BadgeNone BadgeKind = iota
	BadgeExpired
	BadgeExpiring
)

// ExpiryBadge is derived at render time and never stored on the product.
type ExpiryBadge struct {
	Kind     BadgeKind
	DaysLeft int // meaningful for BadgeExpiring only
}

// Card is one rendered product entry. A placeholder card stands in for the
// whole list when a reset produced no results.
type Card struct {
	Placeholder bool
	Product     model.Product
	Badge       ExpiryBadge
	LowStock    bool
}

type Config struct {
	BatchSize       int
	ScrollThreshold float64
	ExpiryWarnDays  int
	LowStockLevel   float64
	Now             func() time.Time
}

// Pager paginates an ordered product list into fixed-size batches that are
// appended on demand. Already emitted batches are never re-rendered; the
// only state exposed is the current list and how much of it is out.
type Pager struct {
	batchSize int
	threshold float64
	warnDays  int
	lowStock  float64
	now       func() time.Time

	list     []model.Product
	rendered int
}

func NewPager(cfg *Config) *Pager {
	p := &Pager{
		batchSize: cfg.BatchSize,
		threshold: cfg.ScrollThreshold,
		warnDays:  cfg.ExpiryWarnDays,
		lowStock:  cfg.LowStockLevel,
		now:       cfg.Now,
	}
	if p.batchSize <= 0 {
		p.batchSize = 50
	}
	if p.threshold <= 0 {
		p.threshold = 100
	}
	if p.warnDays <= 0 {
		p.warnDays = 90
	}
	if p.lowStock <= 0 {
		p.lowStock = 10
	}
	if p.now == nil {
		p.now = time.Now
	}
	return p
}

// Reset installs a fresh ordered list and emits the first batch. An empty
// list yields a single placeholder card rather than an empty container.
func (p *Pager) Reset(list []model.Product) []Card {
	p.list = list
	p.rendered = 0

	if len(list) == 0 {
		return []Card{{Placeholder: true}}
	}
	return p.More()
}

// More emits the next batch. Past the end it does nothing, so repeated
// scroll triggers are harmless.
func (p *Pager) More() []Card {
	if p.rendered >= len(p.list) {
		return nil
	}

	end := p.rendered + p.batchSize
	if end > len(p.list) {
		end = len(p.list)
	}

	now := p.now()
	cards := make([]Card, 0, end-p.rendered)
	for _, product := range p.list[p.rendered:end] {
		cards = append(cards, p.card(product, now))
	}
	p.rendered = end
	return cards
}

// NeedMore reports whether the scroll position is within the proximity
// threshold of the end of content and unrendered items remain.
func (p *Pager) NeedMore(scrollPos, viewport, contentHeight float64) bool {
	if p.rendered >= len(p.list) {
		return false
	}
	return scrollPos+viewport >= contentHeight-p.threshold
}

func (p *Pager) Rendered() int { return p.rendered }
func (p *Pager) Total() int    { return len(p.list) }

func (p *Pager) card(product model.Product, now time.Time) Card {
	c := Card{
		Product:  product,
		LowStock: product.Stock < p.lowStock,
	}
	if days, ok := product.DaysUntilExpiry(now); ok {
		if days < 0 {
			c.Badge = ExpiryBadge{Kind: BadgeExpired}
		} else if days < p.warnDays {
			c.Badge = ExpiryBadge{Kind: BadgeExpiring, DaysLeft: days}
		}
	}
	return c
}
