package gift

import "cadoz/internal/catalog"

// Entry is one line of the gift cart.
type Entry struct {
	ID       string       `json:"id"`
	Kind     catalog.Kind `json:"type"`
	Quantity int          `json:"quantity"`
	Item     catalog.Item `json:"data"`
}

// LineTotal is the entry price times its quantity.
func (e Entry) LineTotal() int64 {
	return e.Item.Price * int64(e.Quantity)
}

// State is the gift aggregate persisted per session.
type State struct {
	Cart         []Entry       `json:"cart"`
	SelectedBox  *catalog.Item `json:"selectedBox"`
	SelectedWrap *catalog.Item `json:"selectedWrap"`
	CurrentStep  Step          `json:"currentStep"`
}

// EmptyState is the default gift: nothing chosen, first step.
func EmptyState() State {
	return State{
		Cart:        []Entry{},
		CurrentStep: FirstStep(),
	}
}

// Clone deep-copies the state so transitions never share storage.
func (s State) Clone() State {
	out := State{CurrentStep: s.CurrentStep, Cart: make([]Entry, len(s.Cart))}
	for i, e := range s.Cart {
		e.Item = e.Item.Clone()
		out.Cart[i] = e
	}
	out.SelectedBox = cloneItem(s.SelectedBox)
	out.SelectedWrap = cloneItem(s.SelectedWrap)
	return out
}

// Total is the gift's share of the order total: cart lines plus box and wrap.
func (s State) Total() int64 {
	var total int64
	for _, e := range s.Cart {
		total += e.LineTotal()
	}
	if s.SelectedBox != nil {
		total += s.SelectedBox.Price
	}
	if s.SelectedWrap != nil {
		total += s.SelectedWrap.Price
	}
	return total
}

// UniqueItems is the number of distinct entries in the gift cart.
func (s State) UniqueItems() int { return len(s.Cart) }

// ItemCount is the sum of entry quantities.
func (s State) ItemCount() int {
	n := 0
	for _, e := range s.Cart {
		n += e.Quantity
	}
	return n
}

// Entry looks up a gift cart entry by entry id.
func (s State) Entry(entryID string) (Entry, bool) {
	for _, e := range s.Cart {
		if e.ID == entryID {
			return e, true
		}
	}
	return Entry{}, false
}

// normalize repairs values that can only come from hand-edited or older
// persisted state.
func (s State) normalize() State {
	if s.Cart == nil {
		s.Cart = []Entry{}
	}
	if !s.CurrentStep.Valid() {
		s.CurrentStep = FirstStep()
	}
	for i := range s.Cart {
		if s.Cart[i].Quantity < 1 {
			s.Cart[i].Quantity = 1
		}
		if s.Cart[i].Kind == "" {
			s.Cart[i].Kind = catalog.Classify(s.Cart[i].Item)
		}
	}
	return s
}

func cloneItem(it *catalog.Item) *catalog.Item {
	if it == nil {
		return nil
	}
	c := it.Clone()
	return &c
}
