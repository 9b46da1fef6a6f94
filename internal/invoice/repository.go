package invoice

import (
	"context"

	"github.com/fekuna/omnipos-billing-terminal/internal/model"
)

type Repository interface {
	Create(ctx context.Context, req *model.InvoiceRequest) (*model.InvoiceResponse, error)

	// PrintPath constructs the printer-friendly view reference for a
	// returned invoice file identifier.
	PrintPath(invoiceFile string) string
}
