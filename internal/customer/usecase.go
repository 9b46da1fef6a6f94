package customer

import (
	"context"

	"github.com/fekuna/omnipos-billing-terminal/internal/model"
)

type UseCase interface {
	Load(ctx context.Context) error
	Customers() []model.Customer

	// MatchByName does a case-insensitive exact match; MatchByMobile an
	// exact match. First match wins, nil means leave the fields alone.
	MatchByName(name string) *model.Customer
	MatchByMobile(mobile string) *model.Customer
}
