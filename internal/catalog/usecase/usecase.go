package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/fekuna/omnipos-billing-terminal/internal/catalog"
	"github.com/fekuna/omnipos-billing-terminal/internal/catalog/dto"
	"github.com/fekuna/omnipos-billing-terminal/internal/model"
	"github.com/fekuna/omnipos-billing-terminal/pkg/logger"
	"go.uber.org/zap"
)

// catalogUseCase holds the product snapshot. It is owned by the session
// event loop and therefore not guarded by a mutex.
type catalogUseCase struct {
	repo     catalog.Repository
	logger   logger.ZapLogger
	products []model.Product
}

func NewCatalogUseCase(repo catalog.Repository, log logger.ZapLogger) catalog.UseCase {
	return &catalogUseCase{
		repo:   repo,
		logger: log,
	}
}

func (uc *catalogUseCase) Load(ctx context.Context) error {
	products, err := uc.repo.FetchAll(ctx)
	if err != nil {
		return err
	}
	uc.products = products
	uc.logger.Info("catalog loaded", zap.Int("products", len(products)))
	return nil
}

func (uc *catalogUseCase) Products() []model.Product {
	return uc.products
}

// Categories derives the sorted distinct non-empty category set from the
// current snapshot.
func (uc *catalogUseCase) Categories() []string {
	seen := map[string]struct{}{}
	var categories []string
	for _, p := range uc.products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Strings(categories)
	return categories
}

func (uc *catalogUseCase) Filter(f *dto.Filters) []model.Product {
	query := strings.ToLower(f.Query)

	results := make([]model.Product, 0, len(uc.products))
	for _, p := range uc.products {
		if query != "" && !strings.Contains(strings.ToLower(p.Name), query) {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		results = append(results, p)
	}

	sortProducts(results, f.SortBy)
	return results
}

// sortProducts orders in place. Unrecognized keys keep the incoming order,
// and the stable sort keeps equal keys in snapshot order.
func sortProducts(products []model.Product, sortBy string) {
	var less func(a, b *model.Product) bool

	switch sortBy {
	case "name", "name_asc":
		less = func(a, b *model.Product) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case "name_desc":
		less = func(a, b *model.Product) bool {
			return strings.ToLower(b.Name) < strings.ToLower(a.Name)
		}
	case "price_asc":
		less = func(a, b *model.Product) bool { return a.Price < b.Price }
	case "price_desc":
		less = func(a, b *model.Product) bool { return b.Price < a.Price }
	case "stock_asc":
		less = func(a, b *model.Product) bool { return a.Stock < b.Stock }
	case "stock_desc":
		less = func(a, b *model.Product) bool { return b.Stock < a.Stock }
	default:
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		return less(&products[i], &products[j])
	})
}
