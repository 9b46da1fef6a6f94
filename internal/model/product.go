package model

import (
	"math"
	"time"
)

// Product is an immutable catalog snapshot entry. Stock is advisory only,
// the server remains authoritative and re-validates on invoice creation.
type Product struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Price    float64    `json:"price"`
	Stock    float64    `json:"stock"`
	Unit     string     `json:"unit"`
	Type     string     `json:"type"`
	PerStrip float64    `json:"per_strip"`
	GSTRate  float64    `json:"gst_rate"`
	Batch    string     `json:"batch"`
	Expiry   *time.Time `json:"expiry"`
}

// DaysUntilExpiry returns the whole days remaining until expiry, rounded up.
// Negative means the product expired in the past. ok is false when the
// product carries no expiry date.
func (p *Product) DaysUntilExpiry(now time.Time) (days int, ok bool) {
	if p.Expiry == nil {
		return 0, false
	}
	diff := p.Expiry.Sub(now).Hours() / 24
	return int(math.Ceil(diff)), true
}

// IsExpired reports whether the expiry date lies strictly in the past.
func (p *Product) IsExpired(now time.Time) bool {
	days, ok := p.DaysUntilExpiry(now)
	return ok && days < 0
}
