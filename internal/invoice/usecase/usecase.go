package usecase

import (
	"context"
	"strings"

	"github.com/fekuna/omnipos-billing-terminal/internal/invoice"
	"github.com/fekuna/omnipos-billing-terminal/internal/model"
	"github.com/fekuna/omnipos-billing-terminal/pkg/logger"
	"go.uber.org/zap"
)

const walkInCustomer = "Walk-in Customer"

type invoiceUseCase struct {
	repo   invoice.Repository
	logger logger.ZapLogger
	busy   bool
}

func NewInvoiceUseCase(repo invoice.Repository, log logger.ZapLogger) invoice.UseCase {
	return &invoiceUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *invoiceUseCase) Busy() bool {
	return uc.busy
}

func (uc *invoiceUseCase) Submit(ctx context.Context, customerName, customerMobile string, items []model.CartLine) (*invoice.Result, error) {
	if len(items) == 0 {
		return nil, invoice.ErrEmptyCart
	}
	if uc.busy {
		return nil, invoice.ErrSubmitInFlight
	}

	uc.busy = true
	defer func() { uc.busy = false }()

	name := strings.TrimSpace(customerName)
	if name == "" {
		name = walkInCustomer
	}

	req := &model.InvoiceRequest{
		CustomerName:   name,
		CustomerMobile: strings.TrimSpace(customerMobile),
		Items:          items,
	}

	res, err := uc.repo.Create(ctx, req)
	if err != nil {
		uc.logger.Error("invoice submission failed", zap.Error(err))
		return nil, err
	}

	if !res.Success {
		uc.logger.Warn("invoice rejected by server", zap.String("message", res.Message))
		return nil, &invoice.RejectedError{Message: res.Message}
	}

	uc.logger.Info("invoice created",
		zap.String("invoice_file", res.InvoiceFile),
		zap.Float64("total", res.Total),
	)

	return &invoice.Result{
		InvoiceFile: res.InvoiceFile,
		Total:       res.Total,
		PrintPath:   uc.repo.PrintPath(res.InvoiceFile),
	}, nil
}
