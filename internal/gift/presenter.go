package gift

import (
	"context"
	"fmt"

	"cadoz/internal/catalog"
	"cadoz/internal/platform"
)

// Notification levels.
const (
	LevelSuccess = "success"
	LevelInfo    = "info"
	LevelError   = "error"
)

// Notification is a transient user-visible confirmation.
type Notification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Option is one offered catalogue item on a step.
type Option struct {
	Item     catalog.Item `json:"item"`
	Selected bool         `json:"selected"`
}

// View is what a step shows.
type View struct {
	Step         Step       `json:"step"`
	Title        string     `json:"title"`
	Index        int        `json:"index"`
	StepCount    int        `json:"stepCount"`
	SingleSelect bool       `json:"singleSelect"`
	Groups       [][]Option `json:"groups"`
	SelectedID   string     `json:"selectedId,omitempty"`
	CanPrev      bool       `json:"canPrev"`
	CanNext      bool       `json:"canNext"`
}

// Presenter serves step views and turns user choices into actions.
type Presenter struct {
	items     Catalog
	container *Container
}

// NewPresenter creates a presenter over a session's container.
func NewPresenter(items Catalog, container *Container) *Presenter {
	return &Presenter{items: items, container: container}
}

// View renders step against the current state.
func (p *Presenter) View(step Step) (View, error) {
	if !step.Valid() {
		return View{}, platform.NewInvalidArgumentf("%s: %q", ErrMsgUnknownStep, step)
	}
	state := p.container.State()
	v := View{
		Step:         step,
		Title:        step.Title(),
		Index:        step.Index(),
		StepCount:    len(sequence),
		SingleSelect: step.SingleSelect(),
		Groups:       [][]Option{},
		SelectedID:   selectedID(state, step),
		CanPrev:      step.Prev() != step,
		CanNext:      step.Next() != step,
	}

	category, ok := step.Category()
	if !ok {
		return v, nil
	}
	for _, group := range catalog.Group(p.items.ByCategory(category), catalog.DisplayGroupSize) {
		options := make([]Option, len(group))
		for i, it := range group {
			options[i] = Option{Item: it, Selected: v.SelectedID != "" && it.ID == v.SelectedID}
		}
		v.Groups = append(v.Groups, options)
	}
	return v, nil
}

// Current renders the step the gift is on.
func (p *Presenter) Current() (View, error) {
	return p.View(p.container.State().CurrentStep)
}

// Choose applies the single action a step offers for itemID: add to the
// gift cart on content steps, select or deselect on box and wrap.
func (p *Presenter) Choose(ctx context.Context, step Step, itemID string) (State, Notification, error) {
	if !step.Valid() {
		return State{}, Notification{}, platform.NewInvalidArgumentf("%s: %q", ErrMsgUnknownStep, step)
	}
	category, ok := step.Category()
	if !ok {
		return State{}, Notification{}, platform.NewFailedPrecondition(ErrMsgSummaryNoOptions)
	}
	if err := platform.FirstError(platform.RequireNotBlank(itemID, ErrMsgItemIDRequired)); err != nil {
		return State{}, Notification{}, err
	}
	item, found := p.items.Find(itemID)
	if !found {
		return State{}, Notification{}, platform.NewNotFoundf("%s: %s", ErrMsgItemNotFound, itemID)
	}
	if item.Category != category {
		return State{}, Notification{}, platform.NewInvalidArgumentf("%s: %s is not in %s", ErrMsgWrongCategory, item.ID, category)
	}

	if !step.SingleSelect() {
		state := p.container.Dispatch(ctx, AddToCart{Item: item})
		return state, Notification{Level: LevelSuccess, Message: fmt.Sprintf("%s added to your gift!", item.Name)}, nil
	}

	state := p.container.DispatchFunc(ctx, func(current State) Action {
		var chosen *catalog.Item
		if selectedID(current, step) != item.ID {
			chosen = &item
		}
		if step == StepWrap {
			return SelectWrap{Item: chosen}
		}
		return SelectBox{Item: chosen}
	})
	msg := fmt.Sprintf("%s removed from your gift", item.Name)
	if selectedID(state, step) == item.ID {
		msg = fmt.Sprintf("%s selected", item.Name)
	}
	return state, Notification{Level: LevelInfo, Message: msg}, nil
}

// Next advances one step from wherever the gift is when the move applies.
func (p *Presenter) Next(ctx context.Context) State {
	return p.container.DispatchFunc(ctx, func(current State) Action { return Navigate(current, true) })
}

// Prev goes back one step.
func (p *Presenter) Prev(ctx context.Context) State {
	return p.container.DispatchFunc(ctx, func(current State) Action { return Navigate(current, false) })
}

// SetEntryQuantity edits an entry from the gift panel. The panel never
// offers zero, so a non-positive quantity is rejected here.
func (p *Presenter) SetEntryQuantity(ctx context.Context, entryID string, quantity int) (State, error) {
	if err := platform.FirstError(
		platform.RequireNotBlank(entryID, ErrMsgEntryIDRequired),
		platform.RequirePositive(quantity, ErrMsgQuantityPositive),
	); err != nil {
		return State{}, err
	}
	if _, ok := p.container.State().Entry(entryID); !ok {
		return State{}, platform.NewNotFoundf("%s: %s", ErrMsgEntryNotFound, entryID)
	}
	return p.container.Dispatch(ctx, UpdateQuantity{EntryID: entryID, Quantity: quantity}), nil
}

// RemoveEntry drops an entry from the gift panel.
func (p *Presenter) RemoveEntry(ctx context.Context, entryID string) (State, Notification) {
	state := p.container.Dispatch(ctx, RemoveFromCart{EntryID: entryID})
	return state, Notification{Level: LevelError, Message: "Item removed from your gift"}
}

func selectedID(state State, step Step) string {
	var it *catalog.Item
	switch step {
	case StepBox:
		it = state.SelectedBox
	case StepWrap:
		it = state.SelectedWrap
	}
	if it == nil {
		return ""
	}
	return it.ID
}
