package repository

import (
	"context"

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

func (r *APIRepository) FetchAll(ctx context.Context) ([]model.Customer, error) {
	// The endpoint returns richer profile records; only name and mobile
	// matter for terminal lookup, the rest is ignored on decode.
	var customers []model.Customer
	if err := r.client.GetJSON(ctx, "/api/customers", &customers); err != nil {
		return nil, errors.Wrap(err, "fetch customers")
	}
	return customers, nil
}
