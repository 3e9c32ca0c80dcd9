// Package order turns the base cart and the gift into the order summary the
// shopper sends to the business over a messaging link.
package order

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"cadoz/internal/cart"
	"cadoz/internal/catalog"
	"cadoz/internal/gift"
)

// Config holds the business details printed in and addressed by the order.
type Config struct {
	BusinessName string `yaml:"business_name"`
	Phone        string `yaml:"phone"`
	Currency     string `yaml:"currency"`
}

// DefaultConfig is the Cadoz storefront.
func DefaultConfig() Config {
	return Config{BusinessName: "Cadoz", Phone: "+201026972523", Currency: "EGP"}
}

// Placeholder lines for empty sections.
const (
	NoBaseProducts = "No base products"
	NoGiftItems    = "No gifts added"
)

// Summary is the combined, read-only view of one checkout.
type Summary struct {
	BaseLines  []cart.Line   `json:"baseLines"`
	GiftLines  []gift.Entry  `json:"giftLines"`
	Box        *catalog.Item `json:"box,omitempty"`
	Wrap       *catalog.Item `json:"wrap,omitempty"`
	BaseTotal  int64         `json:"baseTotal"`
	GiftTotal  int64         `json:"giftTotal"`
	Total      int64         `json:"total"`
	Transcript string        `json:"transcript"`
	Link       string        `json:"link"`
}

// Aggregator combines the base cart and the gift. It only reads them.
type Aggregator interface {
	// Total is base lines plus gift lines plus box and wrap.
	Total(base []cart.Line, state gift.State) int64

	// Transcript renders the human-readable order message.
	Transcript(base []cart.Line, state gift.State) string

	// Link embeds a transcript in the outbound messaging URL.
	Link(transcript string) string

	// Summarize computes everything at once.
	Summarize(base []cart.Line, state gift.State) Summary
}

// DefaultAggregator formats orders for a WhatsApp handoff.
type DefaultAggregator struct {
	cfg     Config
	printer *message.Printer
}

// NewAggregator creates an aggregator for a business.
func NewAggregator(cfg Config) Aggregator {
	return &DefaultAggregator{cfg: cfg, printer: message.NewPrinter(language.English)}
}

func (a *DefaultAggregator) Total(base []cart.Line, state gift.State) int64 {
	return cart.Total(base) + state.Total()
}

func (a *DefaultAggregator) Transcript(base []cart.Line, state gift.State) string {
	var lines []string

	lines = append(lines, fmt.Sprintf("*New order from %s!*", a.cfg.BusinessName))
	lines = append(lines, "")

	lines = append(lines, "*Base products:*")
	if len(base) == 0 {
		lines = append(lines, NoBaseProducts)
	}
	for _, l := range base {
		lines = append(lines, fmt.Sprintf("[ID: %s] %s x%d = %s", l.ID, l.Name, l.Quantity, a.money(l.LineTotal())))
	}
	lines = append(lines, "")

	lines = append(lines, "*Gift contents:*")
	if len(state.Cart) == 0 {
		lines = append(lines, NoGiftItems)
	}
	for _, e := range state.Cart {
		lines = append(lines, fmt.Sprintf("Gift [ID: %s] %s x%d = %s", e.Item.ID, e.Item.Name, e.Quantity, a.money(e.LineTotal())))
	}
	lines = append(lines, "")

	if state.SelectedBox != nil {
		lines = append(lines, fmt.Sprintf("Gift box: *%s* - %s", state.SelectedBox.Name, a.money(state.SelectedBox.Price)))
	}
	if state.SelectedWrap != nil {
		lines = append(lines, fmt.Sprintf("Wrapping: *%s* - %s", state.SelectedWrap.Name, a.money(state.SelectedWrap.Price)))
	}
	if state.SelectedBox != nil || state.SelectedWrap != nil {
		lines = append(lines, "")
	}

	lines = append(lines, fmt.Sprintf("*Total:* %s", a.money(a.Total(base, state))))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Thank you for choosing *%s!*", a.cfg.BusinessName))

	return strings.Join(lines, "\n")
}

func (a *DefaultAggregator) Link(transcript string) string {
	return "https://wa.me/" + digits(a.cfg.Phone) + "?text=" + encodeComponent(transcript)
}

func (a *DefaultAggregator) Summarize(base []cart.Line, state gift.State) Summary {
	transcript := a.Transcript(base, state)
	return Summary{
		BaseLines:  append([]cart.Line{}, base...),
		GiftLines:  append([]gift.Entry{}, state.Cart...),
		Box:        state.SelectedBox,
		Wrap:       state.SelectedWrap,
		BaseTotal:  cart.Total(base),
		GiftTotal:  state.Total(),
		Total:      a.Total(base, state),
		Transcript: transcript,
		Link:       a.Link(transcript),
	}
}

func (a *DefaultAggregator) money(amount int64) string {
	return a.printer.Sprintf("%d %s", amount, a.cfg.Currency)
}

func digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// encodeComponent percent-encodes s for a query value with spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
