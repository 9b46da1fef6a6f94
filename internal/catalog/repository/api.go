package repository

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/fekuna/omnipos-billing-terminal/internal/api"
	"github.com/fekuna/omnipos-billing-terminal/internal/model"
	"github.com/pkg/errors"
)

type APIRepository struct {
	client *api.Client
}

func NewAPIRepository(client *api.Client) *APIRepository {
	return &APIRepository{client: client}
}

// productDTO is the loose wire shape: the server serves CSV-backed records
// where numeric columns arrive as either JSON numbers or strings. Typing
// happens here, at the boundary, so the rest of the terminal only ever sees
// model.Product.
type productDTO struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Price    flexNumber `json:"price"`
	Stock    flexNumber `json:"stock"`
	Unit     string     `json:"unit"`
	Type     string     `json:"type"`
	Batch    string     `json:"batch"`
	Expiry   string     `json:"expiry"`
	GSTRate  flexNumber `json:"gst_rate"`
	PerStrip flexNumber `json:"per_strip"`
}

// flexNumber accepts JSON numbers and numeric strings; anything malformed
// degrades to zero, matching how the original client parsed these fields.
type flexNumber float64

func (f *flexNumber) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		*f = 0
		return nil
	}
	*f = flexNumber(v)
	return nil
}

const expiryLayout = "2006-01-02"

func (r *APIRepository) FetchAll(ctx context.Context) ([]model.Product, error) {
	var dtos []productDTO
	if err := r.client.GetJSON(ctx, "/api/products", &dtos); err != nil {
		return nil, errors.Wrap(err, "fetch catalog")
	}

	products := make([]model.Product, 0, len(dtos))
	for _, d := range dtos {
		products = append(products, mapProduct(&d))
	}
	return products, nil
}

func mapProduct(d *productDTO) model.Product {
	p := model.Product{
		ID:       d.ID,
		Name:     d.Name,
		Category: d.Category,
		Price:    float64(d.Price),
		Stock:    float64(d.Stock),
		Unit:     d.Unit,
		Type:     d.Type,
		PerStrip: float64(d.PerStrip),
		GSTRate:  float64(d.GSTRate),
		Batch:    d.Batch,
	}
	if d.Expiry != "" {
		if t, err := time.Parse(expiryLayout, d.Expiry); err == nil {
			p.Expiry = &t
		}
	}
	return p
}
