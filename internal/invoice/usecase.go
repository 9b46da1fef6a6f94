package invoice

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-billing-terminal/internal/model"
)

var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrSubmitInFlight = errors.New("submission already in progress")
)

// RejectedError carries the server's own failure message, as opposed to a
// transport error where no payload made it back.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return "invoice rejected"
	}
	return e.Message
}

// Result of a successful submission. PrintPath is a reference the terminal
// opens in a separate view; it is never fetched here.
type Result struct {
	InvoiceFile string
	Total       float64
	PrintPath   string
}

type UseCase interface {
	// Submit sends the cart. The trigger-disable guard lives here: a second
	// submit while one is in flight gets ErrSubmitInFlight, and the busy
	// flag is always cleared when the attempt settles.
	Submit(ctx context.Context, customerName, customerMobile string, items []model.CartLine) (*Result, error)
	Busy() bool
}
