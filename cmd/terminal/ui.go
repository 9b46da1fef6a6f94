package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fekuna/omnipos-billing-terminal/internal/invoice"
	"github.com/fekuna/omnipos-billing-terminal/internal/model"
	"github.com/fekuna/omnipos-billing-terminal/internal/render"
	"github.com/fekuna/omnipos-billing-terminal/internal/session"
	"github.com/fekuna/omnipos-billing-terminal/internal/store"
)

// terminalUI is the text front end. The session drives it through the
// session.UI interface; the command loop below feeds operator input back.
type terminalUI struct {
	reader *bufio.Reader

	mu      sync.Mutex
	out     io.Writer
	visible []render.Card
	cart    []model.CartLine
}

func newTerminalUI(in io.Reader, out io.Writer) *terminalUI {
	return &terminalUI{
		reader: bufio.NewReader(in),
		out:    out,
	}
}

func (t *terminalUI) printf(format string, args ...interface{}) {
	fmt.Fprintf(t.out, format, args...)
}

func (t *terminalUI) SetCategories(categories []string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(categories) > 0 {
		t.printf("Categories: %s\n", strings.Join(categories, ", "))
	}
}

func (t *terminalUI) RenderProducts(cards []render.Card, appended bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !appended {
		t.visible = t.visible[:0]
	}

	for _, c := range cards {
		if c.Placeholder {
			t.printf("No medicines found.\n")
			continue
		}
		t.visible = append(t.visible, c)

		badge := ""
		switch c.Badge.Kind {
		case render.BadgeExpired:
			badge = " [EXPIRED]"
		case render.BadgeExpiring:
			badge = fmt.Sprintf(" [Exp:%dd]", c.Badge.DaysLeft)
		}
		low := ""
		if c.LowStock {
			low = " LOW"
		}

		p := c.Product
		t.printf("%3d. %-30s %-12s ₹%.2f  %.1f %s%s%s\n",
			len(t.visible), p.Name, p.Category, p.Price, p.Stock, p.Unit, low, badge)
	}
	t.printf("-- showing %d item(s) --\n", len(t.visible))
}

func (t *terminalUI) RenderCart(lines []model.CartLine, subtotal float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.cart = lines

	if len(lines) == 0 {
		t.printf("Cart is empty\n")
		return
	}

	t.printf("Cart:\n")
	for i := range lines {
		l := &lines[i]
		unitLabel := l.Unit
		if l.SaleUnit == model.SaleUnitSub {
			unitLabel = "Loose"
		}
		t.printf("  %d. %-25s ₹%.2f x %g %s = ₹%.2f\n",
			i+1, l.Name, l.Price, l.DisplayQty(), unitLabel, l.LineTotal())
		if l.Batch != "" {
			t.printf("     batch %s\n", l.Batch)
		}
	}
	t.printf("TOTAL: ₹%.2f\n", subtotal)
}

func (t *terminalUI) FillCustomer(name, mobile string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("Customer: %q  Mobile: %q\n", name, mobile)
}

func (t *terminalUI) SetSubmitBusy(busy bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if busy {
		t.printf("Processing...\n")
	} else {
		t.printf("Ready. [Generate Invoice]\n")
	}
}

func (t *terminalUI) SetView(view string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("View: %s\n", view)
}

func (t *terminalUI) Notify(message string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("!! %s\n", message)
}

func (t *terminalUI) ConfirmExpired(p *model.Product) bool {
	expiry := ""
	if p.Expiry != nil {
		expiry = p.Expiry.Format("2006-01-02")
	}
	t.printf("WARNING: %s EXPIRED on %s. Sell anyway? [y/N] ", p.Name, expiry)

	line, err := t.reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func (t *terminalUI) InvoiceDone(res *invoice.Result) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.printf("Invoice created: %s (₹%.2f)\n", res.InvoiceFile, res.Total)
	t.printf("Print: %s\n", res.PrintPath)
}

func (t *terminalUI) productAt(n int) (model.Product, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if n < 1 || n > len(t.visible) {
		return model.Product{}, false
	}
	return t.visible[n-1].Product, true
}

const helpText = `Commands:
  search <text>      filter products by name (debounced)
  cat <category>     filter by exact category, empty clears
  sort <key>         name|name_desc|price_asc|price_desc|stock_asc|stock_desc
  more               load the next batch of results
  add <n>            add product n from the list to the cart
  qty <i> <value>    set quantity for cart line i (in its display unit)
  unit <i> main|sub  switch pack / loose mode for cart line i
  price <i> <value>  override the price for cart line i
  rm <i>             remove cart line i
  name <text>        set customer name
  mobile <text>      set customer mobile
  bill               generate the invoice
  view               toggle grid / list view
  recent             list recently generated invoices
  help               this text
  quit               exit
`

// commandLoop reads operator commands. Each command is dispatched to the
// session and drained before the next prompt so stdin is never contended
// between the prompt and an expiry confirmation.
func (t *terminalUI) commandLoop(sess *session.Session, localStore *store.Store) {
	t.printf("omnipos billing terminal. Type 'help' for commands.\n")

	for {
		t.printf("> ")
		line, err := t.reader.ReadString('\n')
		if err != nil {
			return
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd := fields[0]
		rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), cmd))

		switch cmd {
		case "quit", "exit":
			return
		case "help":
			t.printf("%s", helpText)
			continue
		case "search":
			sess.SetQuery(rest)
		case "cat":
			sess.SetCategory(rest)
		case "sort":
			sess.SetSortBy(rest)
		case "more":
			sess.LoadMore()
		case "add":
			if n, ok := parseIndex(fields, 1); ok {
				if p, found := t.productAt(n); found {
					sess.AddProduct(p)
				} else {
					t.Notify("no such product on screen")
				}
			}
		case "qty":
			if i, ok := parseIndex(fields, 1); ok && len(fields) > 2 {
				sess.UpdateQty(i-1, fields[2])
			}
		case "unit":
			if i, ok := parseIndex(fields, 1); ok && len(fields) > 2 {
				sess.ToggleUnit(i-1, model.SaleUnit(fields[2]))
			}
		case "price":
			if i, ok := parseIndex(fields, 1); ok && len(fields) > 2 {
				sess.UpdatePrice(i-1, fields[2])
			}
		case "rm":
			if i, ok := parseIndex(fields, 1); ok {
				sess.RemoveLine(i - 1)
			}
		case "name":
			sess.SetCustomerName(rest)
		case "mobile":
			sess.SetCustomerMobile(rest)
		case "bill":
			sess.SubmitInvoice()
		case "view":
			sess.ToggleView()
		case "recent":
			t.showRecent(localStore)
			continue
		default:
			t.Notify("unknown command, try 'help'")
			continue
		}

		sess.Drain()
	}
}

func (t *terminalUI) showRecent(localStore *store.Store) {
	if localStore == nil {
		t.Notify("local store unavailable")
		return
	}
	records, err := localStore.RecentInvoices(5)
	if err != nil {
		t.Notify("failed to read invoice log")
		return
	}
	if len(records) == 0 {
		t.printf("No invoices yet.\n")
		return
	}
	for _, r := range records {
		t.printf("%s  %-20s ₹%.2f  %s\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.CustomerName, r.Total, r.InvoiceFile)
	}
}

func parseIndex(fields []string, pos int) (int, bool) {
	if len(fields) <= pos {
		return 0, false
	}
	var n int
	if _, err := fmt.Sscanf(fields[pos], "%d", &n); err != nil {
		return 0, false
	}
	return n, true
}
