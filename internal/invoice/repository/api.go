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

func (r *APIRepository) Create(ctx context.Context, req *model.InvoiceRequest) (*model.InvoiceResponse, error) {
	var res model.InvoiceResponse
	if err := r.client.PostJSON(ctx, "/api/invoice", req, &res); err != nil {
		return nil, errors.Wrap(err, "create invoice")
	}
	return &res, nil
}

func (r *APIRepository) PrintPath(invoiceFile string) string {
	return r.client.PrintPath(invoiceFile)
}
