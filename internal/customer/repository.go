package customer

import (
	"context"

	"github.com/fekuna/omnipos-billing-terminal/internal/model"
)

type Repository interface {
	FetchAll(ctx context.Context) ([]model.Customer, error)
}
