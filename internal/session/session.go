package session

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-billing-terminal/config"
	"github.com/fekuna/omnipos-billing-terminal/internal/cart"
	"github.com/fekuna/omnipos-billing-terminal/internal/catalog"
	catalogdto "github.com/fekuna/omnipos-billing-terminal/internal/catalog/dto"
	"github.com/fekuna/omnipos-billing-terminal/internal/customer"
	"github.com/fekuna/omnipos-billing-terminal/internal/invoice"
	"github.com/fekuna/omnipos-billing-terminal/internal/model"
	"github.com/fekuna/omnipos-billing-terminal/internal/render"
	"github.com/fekuna/omnipos-billing-terminal/internal/store"
	"github.com/fekuna/omnipos-billing-terminal/pkg/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// UI is what the session drives. The terminal front end implements it; the
// session never talks to the screen directly.
type UI interface {
	SetCategories(categories []string)
	RenderProducts(cards []render.Card, appended bool)
	RenderCart(lines []model.CartLine, subtotal float64)
	FillCustomer(name, mobile string)
	SetSubmitBusy(busy bool)
	SetView(view string)
	Notify(message string)
	// ConfirmExpired asks the operator whether an expired product may be
	// sold anyway.
	ConfirmExpired(p *model.Product) bool
	InvoiceDone(res *invoice.Result)
}

// Session owns the shared mutable state: the catalog snapshot, the cart and
// the render cursor. Every mutation runs on the single event loop; async
// network completions are posted back onto it. Completions apply in arrival
// order with no staleness check: the last response to land wins.
type Session struct {
	cfg       *config.Config
	logger    logger.ZapLogger
	catalog   catalog.UseCase
	cart      cart.UseCase
	invoices  invoice.UseCase
	customers customer.UseCase
	store     *store.Store
	ui        UI

	tasks    chan func()
	pager    *render.Pager
	debounce *Debouncer

	filters        catalogdto.Filters
	customerName   string
	customerMobile string
	view           string
	submitting     bool
}

func New(
	cfg *config.Config,
	log logger.ZapLogger,
	catalogUC catalog.UseCase,
	cartUC cart.UseCase,
	invoiceUC invoice.UseCase,
	customerUC customer.UseCase,
	localStore *store.Store,
	ui UI,
) *Session {
	return &Session{
		cfg:       cfg,
		logger:    log,
		catalog:   catalogUC,
		cart:      cartUC,
		invoices:  invoiceUC,
		customers: customerUC,
		store:     localStore,
		ui:        ui,
		tasks:     make(chan func(), 64),
		pager: render.NewPager(&render.Config{
			BatchSize:       cfg.UI.BatchSize,
			ScrollThreshold: cfg.UI.ScrollThreshold,
			ExpiryWarnDays:  cfg.UI.ExpiryWarnDays,
			LowStockLevel:   cfg.UI.LowStockLevel,
		}),
		debounce: NewDebouncer(cfg.UI.SearchDebounce),
		filters:  catalogdto.Filters{SortBy: "name"},
		view:     store.ViewGrid,
	}
}

// Run processes loop tasks until the context is cancelled. Everything that
// touches session state executes here.
func (s *Session) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.debounce.Stop()
			return
		case task := <-s.tasks:
			task()
		}
	}
}

func (s *Session) post(task func()) {
	s.tasks <- task
}

// Start restores the view preference and kicks off the initial catalog and
// customer fetches.
func (s *Session) Start() {
	s.post(func() {
		if s.store != nil {
			if view, err := s.store.ViewPreference(); err == nil {
				s.view = view
			}
			s.ui.SetView(s.view)
		}
		s.reloadCatalog()
		s.loadCustomers()
		s.ui.RenderCart(s.cart.Lines(), s.cart.Subtotal())
	})
}

func (s *Session) reloadCatalog() {
	go func() {
		err := s.catalog.Load(context.Background())
		s.post(func() {
			if err != nil {
				s.logger.Error("failed to load products", zap.Error(err))
				s.ui.Notify("Failed to load products")
				return
			}
			s.ui.SetCategories(s.catalog.Categories())
			s.applyFilters()
		})
	}()
}

func (s *Session) loadCustomers() {
	go func() {
		err := s.customers.Load(context.Background())
		s.post(func() {
			if err != nil {
				// Lookup is a convenience; billing works without it.
				s.logger.Warn("failed to load customers", zap.Error(err))
			}
		})
	}()
}

func (s *Session) applyFilters() {
	results := s.catalog.Filter(&s.filters)
	cards := s.pager.Reset(results)
	s.ui.RenderProducts(cards, false)
}

// SetQuery debounces the recompute so filtering runs once per quiescent
// typing period.
func (s *Session) SetQuery(query string) {
	s.post(func() { s.filters.Query = query })
	s.debounce.Schedule(func() {
		s.post(s.applyFilters)
	})
}

func (s *Session) SetCategory(category string) {
	s.post(func() {
		s.filters.Category = category
		s.applyFilters()
	})
}

func (s *Session) SetSortBy(sortBy string) {
	s.post(func() {
		s.filters.SortBy = sortBy
		s.applyFilters()
	})
}

// Scroll feeds the viewport position; near the end of content the next
// batch is appended without re-rendering what is already out.
func (s *Session) Scroll(pos, viewport, contentHeight float64) {
	s.post(func() {
		if !s.pager.NeedMore(pos, viewport, contentHeight) {
			return
		}
		if cards := s.pager.More(); len(cards) > 0 {
			s.ui.RenderProducts(cards, true)
		}
	})
}

// LoadMore appends the next batch directly, for front ends without a
// scrolling viewport.
func (s *Session) LoadMore() {
	s.post(func() {
		if cards := s.pager.More(); len(cards) > 0 {
			s.ui.RenderProducts(cards, true)
		}
	})
}

func (s *Session) AddProduct(p model.Product) {
	s.post(func() {
		_, err := s.cart.Add(&p, false)
		if errors.Is(err, cart.ErrExpiredNeedsConfirm) {
			if !s.ui.ConfirmExpired(&p) {
				return
			}
			_, err = s.cart.Add(&p, true)
		}
		if err != nil {
			s.notifyCartError(err, nil)
			return
		}
		s.ui.RenderCart(s.cart.Lines(), s.cart.Subtotal())
	})
}

func (s *Session) UpdateQty(index int, raw string) {
	s.post(func() {
		line, ok := s.cart.LineAt(index)
		if !ok {
			return
		}
		err := s.cart.UpdateQty(line.LineID, raw)
		if err != nil {
			s.notifyCartError(err, line)
		}
		// Re-render either way: the displayed value is always derived from
		// stored state, so a rejected edit snaps back to the last valid one.
		s.ui.RenderCart(s.cart.Lines(), s.cart.Subtotal())
	})
}

func (s *Session) ToggleUnit(index int, unit model.SaleUnit) {
	s.post(func() {
		line, ok := s.cart.LineAt(index)
		if !ok {
			return
		}
		if err := s.cart.ToggleUnit(line.LineID, unit); err != nil {
			s.notifyCartError(err, line)
		}
		s.ui.RenderCart(s.cart.Lines(), s.cart.Subtotal())
	})
}

func (s *Session) UpdatePrice(index int, raw string) {
	s.post(func() {
		line, ok := s.cart.LineAt(index)
		if !ok {
			return
		}
		if err := s.cart.UpdatePrice(line.LineID, raw); err != nil {
			s.notifyCartError(err, line)
		}
		s.ui.RenderCart(s.cart.Lines(), s.cart.Subtotal())
	})
}

func (s *Session) RemoveLine(index int) {
	s.post(func() {
		line, ok := s.cart.LineAt(index)
		if !ok {
			return
		}
		if err := s.cart.Remove(line.LineID); err != nil {
			s.notifyCartError(err, line)
		}
		s.ui.RenderCart(s.cart.Lines(), s.cart.Subtotal())
	})
}

// SetCustomerName records the typed name and auto-fills the mobile on a
// case-insensitive exact match.
func (s *Session) SetCustomerName(name string) {
	s.post(func() {
		s.customerName = name
		if match := s.customers.MatchByName(name); match != nil && match.Mobile != "" {
			s.customerMobile = match.Mobile
			s.ui.FillCustomer(s.customerName, s.customerMobile)
		}
	})
}

func (s *Session) SetCustomerMobile(mobile string) {
	s.post(func() {
		s.customerMobile = mobile
		if match := s.customers.MatchByMobile(mobile); match != nil {
			s.customerName = match.Name
			s.ui.FillCustomer(s.customerName, s.customerMobile)
		}
	})
}

func (s *Session) ToggleView() {
	s.post(func() {
		if s.view == store.ViewGrid {
			s.view = store.ViewList
		} else {
			s.view = store.ViewGrid
		}
		if s.store != nil {
			if err := s.store.SetViewPreference(s.view); err != nil {
				s.logger.Warn("failed to persist view preference", zap.Error(err))
			}
		}
		s.ui.SetView(s.view)
	})
}

// SubmitInvoice runs the submission off-loop and settles back on it. The
// submitting flag is the only concurrency control: a second trigger while
// one is in flight is refused, and the trigger is re-enabled on every
// outcome.
func (s *Session) SubmitInvoice() {
	s.post(func() {
		if s.cart.Len() == 0 {
			s.ui.Notify("Cart is empty!")
			return
		}
		if s.submitting {
			s.ui.Notify("Submission already in progress")
			return
		}

		s.submitting = true
		s.ui.SetSubmitBusy(true)

		items := s.cart.Lines()
		name, mobile := s.customerName, s.customerMobile

		go func() {
			res, err := s.invoices.Submit(context.Background(), name, mobile, items)
			s.post(func() {
				s.submitting = false
				s.ui.SetSubmitBusy(false)

				if err != nil {
					s.settleFailed(err)
					return
				}
				s.settleSucceeded(res)
			})
		}()
	})
}

func (s *Session) settleFailed(err error) {
	var rejected *invoice.RejectedError
	if errors.As(err, &rejected) {
		s.ui.Notify("Error: " + rejected.Error())
		return
	}
	if errors.Is(err, invoice.ErrEmptyCart) {
		s.ui.Notify("Cart is empty!")
		return
	}
	// Transport failure: generic message, state untouched.
	s.logger.Error("invoice submission error", zap.Error(err))
	s.ui.Notify("System Error")
}

func (s *Session) settleSucceeded(res *invoice.Result) {
	if s.store != nil {
		name := s.customerName
		if name == "" {
			name = "Walk-in Customer"
		}
		if err := s.store.LogInvoice(name, res.Total, res.InvoiceFile); err != nil {
			s.logger.Warn("failed to log invoice locally", zap.Error(err))
		}
	}

	s.cart.Clear()
	s.customerName = ""
	s.customerMobile = ""
	s.ui.FillCustomer("", "")
	s.ui.RenderCart(s.cart.Lines(), s.cart.Subtotal())
	s.ui.InvoiceDone(res)

	// Reload so the list reflects server-side stock decrements.
	s.reloadCatalog()
}

func (s *Session) notifyCartError(err error, line *model.CartLine) {
	switch {
	case errors.Is(err, cart.ErrOutOfStock):
		s.ui.Notify("Out of Stock!")
	case errors.Is(err, cart.ErrInsufficientStock):
		if line != nil {
			s.ui.Notify(formatStockMessage(line.Stock, line.Unit))
		} else {
			s.ui.Notify("Not enough stock!")
		}
	case errors.Is(err, cart.ErrInvalidPrice):
		s.ui.Notify("Invalid price")
	case errors.Is(err, cart.ErrUnitUnavailable):
		s.ui.Notify("Loose unit not available")
	case err != nil:
		s.ui.Notify(err.Error())
	}
}

func formatStockMessage(stock float64, unit string) string {
	return fmt.Sprintf("Only %g %s in stock!", stock, unit)
}

// Drain is a test hook: it blocks until every task posted before the call
// has run.
func (s *Session) Drain() {
	done := make(chan struct{})
	s.post(func() { close(done) })
	<-done
}
