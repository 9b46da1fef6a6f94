package usecase

import (
	"context"
	"strings"

	"github.com/fekuna/omnipos-billing-terminal/internal/customer"
	"github.com/fekuna/omnipos-billing-terminal/internal/model"
	"github.com/fekuna/omnipos-billing-terminal/pkg/logger"
	"go.uber.org/zap"
)

type customerUseCase struct {
	repo      customer.Repository
	logger    logger.ZapLogger
	customers []model.Customer
}

func NewCustomerUseCase(repo customer.Repository, log logger.ZapLogger) customer.UseCase {
	return &customerUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *customerUseCase) Load(ctx context.Context) error {
	customers, err := uc.repo.FetchAll(ctx)
	if err != nil {
		return err
	}
	uc.customers = customers
	uc.logger.Info("customers loaded", zap.Int("count", len(customers)))
	return nil
}

func (uc *customerUseCase) Customers() []model.Customer {
	return uc.customers
}

func (uc *customerUseCase) MatchByName(name string) *model.Customer {
	for i := range uc.customers {
		if strings.EqualFold(uc.customers[i].Name, name) {
			return &uc.customers[i]
		}
	}
	return nil
}

func (uc *customerUseCase) MatchByMobile(mobile string) *model.Customer {
	if mobile == "" {
		return nil
	}
	for i := range uc.customers {
		if uc.customers[i].Mobile == mobile {
			return &uc.customers[i]
		}
	}
	return nil
}
