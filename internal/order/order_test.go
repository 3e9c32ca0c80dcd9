package order

import (
	"net/url"
	"strings"
	"testing"

	"cadoz/internal/cart"
	"cadoz/internal/catalog"
	"cadoz/internal/gift"
)

func sampleOrder() ([]cart.Line, gift.State) {
	base := []cart.Line{{ID: "p-1", Name: "Perfume", Price: 100, Quantity: 2}}
	state := gift.EmptyState()
	state.Cart = []gift.Entry{
		{ID: "e1", Kind: catalog.KindGiftOption, Quantity: 1, Item: catalog.Item{ID: "g-1", Name: "Truffles", Price: 30}},
		{ID: "e2", Kind: catalog.KindGiftOption, Quantity: 3, Item: catalog.Item{ID: "g-2", Name: "Gummies", Price: 20}},
	}
	state.SelectedBox = &catalog.Item{ID: "b-1", Name: "Kraft Box", Price: 50}
	state.SelectedWrap = &catalog.Item{ID: "w-1", Name: "Tissue", Price: 15}
	return base, state
}

func TestTotal(t *testing.T) {
	base, state := sampleOrder()
	agg := NewAggregator(DefaultConfig())

	if got := agg.Total(base, state); got != 355 {
		t.Errorf("expected total 355, got %d", got)
	}
}

func TestTotalOfEmptyOrder(t *testing.T) {
	agg := NewAggregator(DefaultConfig())
	if got := agg.Total(nil, gift.EmptyState()); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestTranscriptLines(t *testing.T) {
	base, state := sampleOrder()
	text := NewAggregator(DefaultConfig()).Transcript(base, state)

	for _, want := range []string{
		"*New order from Cadoz!*",
		"[ID: p-1] Perfume x2 = 200 EGP",
		"Gift [ID: g-1] Truffles x1 = 30 EGP",
		"Gift [ID: g-2] Gummies x3 = 60 EGP",
		"Gift box: *Kraft Box* - 50 EGP",
		"Wrapping: *Tissue* - 15 EGP",
		"*Total:* 355 EGP",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("transcript missing %q:\n%s", want, text)
		}
	}
	if strings.Contains(text, NoBaseProducts) || strings.Contains(text, NoGiftItems) {
		t.Errorf("unexpected placeholder:\n%s", text)
	}
}

func TestTranscriptPlaceholders(t *testing.T) {
	text := NewAggregator(DefaultConfig()).Transcript(nil, gift.EmptyState())

	if !strings.Contains(text, NoBaseProducts) {
		t.Errorf("missing base placeholder:\n%s", text)
	}
	if !strings.Contains(text, NoGiftItems) {
		t.Errorf("missing gift placeholder:\n%s", text)
	}
	if strings.Contains(text, "Gift box:") || strings.Contains(text, "Wrapping:") {
		t.Errorf("box and wrap lines must be omitted:\n%s", text)
	}
	if !strings.Contains(text, "*Total:* 0 EGP") {
		t.Errorf("missing zero total:\n%s", text)
	}
}

func TestTranscriptGroupsThousands(t *testing.T) {
	base := []cart.Line{{ID: "p-9", Name: "Watch", Price: 3200, Quantity: 2}}
	text := NewAggregator(DefaultConfig()).Transcript(base, gift.EmptyState())

	if !strings.Contains(text, "= 6,400 EGP") || !strings.Contains(text, "*Total:* 6,400 EGP") {
		t.Errorf("expected grouped amounts:\n%s", text)
	}
}

func TestLinkEncodesTranscript(t *testing.T) {
	base, state := sampleOrder()
	agg := NewAggregator(DefaultConfig())
	transcript := agg.Transcript(base, state)
	link := agg.Link(transcript)

	if !strings.HasPrefix(link, "https://wa.me/201026972523?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	if strings.Contains(link, " ") || strings.Contains(link, "\n") || strings.Contains(link, "+") {
		t.Errorf("link is not fully percent-encoded: %s", link)
	}
	u, err := url.Parse(link)
	if err != nil {
		t.Fatal(err)
	}
	if got := u.Query().Get("text"); got != transcript {
		t.Errorf("decoded text differs:\n%s\nvs\n%s", got, transcript)
	}
}

func TestSummarize(t *testing.T) {
	base, state := sampleOrder()
	s := NewAggregator(Config{BusinessName: "Shop", Phone: "+1 (555) 010", Currency: "USD"}).Summarize(base, state)

	if s.BaseTotal != 200 || s.GiftTotal != 155 || s.Total != 355 {
		t.Errorf("unexpected totals: %+v", s)
	}
	if !strings.HasPrefix(s.Link, "https://wa.me/1555010?text=") {
		t.Errorf("unexpected link: %s", s.Link)
	}
	if !strings.Contains(s.Transcript, "*New order from Shop!*") || !strings.Contains(s.Transcript, "USD") {
		t.Errorf("config not applied:\n%s", s.Transcript)
	}
	if len(s.GiftLines) != 2 || s.Box == nil || s.Wrap == nil {
		t.Errorf("summary lost parts: %+v", s)
	}
}
