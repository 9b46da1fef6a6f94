package render

import (
	"fmt"
	"testing"
	"time"

	"github.com/fekuna/omnipos-billing-terminal/internal/model"
)

var renderNow = time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

func testPager() *Pager {
	return NewPager(&Config{
		BatchSize: 3,
		Now:       func() time.Time { return renderNow },
	})
}

func productList(n int) []model.Product {
	out := make([]model.Product, n)
	for i := range out {
		out[i] = model.Product{ID: fmt.Sprint(i), Name: fmt.Sprintf("p%02d", i), Stock: 20}
	}
	return out
}

func TestResetEmitsFirstBatch(t *testing.T) {
	p := testPager()
	cards := p.Reset(productList(7))

	if len(cards) != 3 {
		t.Fatalf("expected first batch of 3, got %d", len(cards))
	}
	if cards[0].Product.Name != "p00" {
		t.Errorf("batch must start at the head, got %s", cards[0].Product.Name)
	}
	if p.Rendered() != 3 || p.Total() != 7 {
		t.Errorf("expected rendered=3 total=7, got %d/%d", p.Rendered(), p.Total())
	}
}

func TestMoreAppendsWithoutRerender(t *testing.T) {
	p := testPager()
	p.Reset(productList(7))

	second := p.More()
	if len(second) != 3 || second[0].Product.Name != "p03" {
		t.Fatalf("expected next batch starting at p03, got %+v", second)
	}

	third := p.More()
	if len(third) != 1 || third[0].Product.Name != "p06" {
		t.Fatalf("expected final partial batch, got %+v", third)
	}

	// Past the end, repeated triggers do nothing.
	for i := 0; i < 3; i++ {
		if extra := p.More(); extra != nil {
			t.Fatalf("expected no cards past the end, got %d", len(extra))
		}
	}
	if p.Rendered() != 7 {
		t.Errorf("rendered count drifted to %d", p.Rendered())
	}
}

func TestResetEmptyListYieldsPlaceholder(t *testing.T) {
	p := testPager()
	cards := p.Reset(nil)

	if len(cards) != 1 || !cards[0].Placeholder {
		t.Fatalf("expected a single placeholder card, got %+v", cards)
	}
	if p.Rendered() != 0 {
		t.Errorf("placeholder must not count as rendered, got %d", p.Rendered())
	}
}

func TestResetClearsCursor(t *testing.T) {
	p := testPager()
	p.Reset(productList(7))
	p.More()

	cards := p.Reset(productList(4))
	if len(cards) != 3 || cards[0].Product.Name != "p00" {
		t.Errorf("reset must restart from the head, got %+v", cards)
	}
}

func TestNeedMore(t *testing.T) {
	p := testPager()
	p.Reset(productList(7))

	// 1000 units of content, viewport 400: within 100 of the end only
	// when scrolled past 500.
	if p.NeedMore(400, 400, 1000) {
		t.Error("not near the end yet")
	}
	if !p.NeedMore(520, 400, 1000) {
		t.Error("within threshold of the end, should trigger")
	}

	p.More()
	p.More()
	if p.NeedMore(520, 400, 1000) {
		t.Error("must not trigger once everything is rendered")
	}
}

func TestExpiryBadges(t *testing.T) {
	p := testPager()

	day := func(offset int) *time.Time {
		d := renderNow.AddDate(0, 0, offset)
		return &d
	}

	cases := []struct {
		name   string
		expiry *time.Time
		kind   BadgeKind
	}{
		{"no expiry", nil, BadgeNone},
		{"expired yesterday", day(-1), BadgeExpired},
		{"expires soon", day(30), BadgeExpiring},
		{"far future", day(200), BadgeNone},
	}

	for _, c := range cases {
		cards := p.Reset([]model.Product{{Name: c.name, Expiry: c.expiry}})
		if got := cards[0].Badge.Kind; got != c.kind {
			t.Errorf("%s: expected badge %v, got %v", c.name, c.kind, got)
		}
	}
}

func TestExpiringBadgeCountsCeilingDays(t *testing.T) {
	p := testPager()
	// 29.5 days out rounds up to 30 whole days.
	d := renderNow.Add(29*24*time.Hour + 12*time.Hour)
	cards := p.Reset([]model.Product{{Name: "x", Expiry: &d}})

	if cards[0].Badge.Kind != BadgeExpiring || cards[0].Badge.DaysLeft != 30 {
		t.Errorf("expected 30 days left, got %+v", cards[0].Badge)
	}
}

func TestLowStockMarker(t *testing.T) {
	p := testPager()
	cards := p.Reset([]model.Product{
		{Name: "low", Stock: 9.5},
		{Name: "ok", Stock: 10},
	})

	if !cards[0].LowStock {
		t.Error("stock below 10 must be marked low")
	}
	if cards[1].LowStock {
		t.Error("stock at 10 must not be marked low")
	}
}
