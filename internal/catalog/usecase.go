package catalog

import (
	"context"

	"github.com/fekuna/omnipos-billing-terminal/internal/catalog/dto"
	"github.com/fekuna/omnipos-billing-terminal/internal/model"
)

type UseCase interface {
	// Load fetches the full catalog and replaces the in-memory snapshot.
	Load(ctx context.Context) error

	Products() []model.Product
	Categories() []string

	// Filter applies query/category/sort over the snapshot and returns a
	// fresh ordered list. The snapshot itself is never mutated.
	Filter(filters *dto.Filters) []model.Product
}
