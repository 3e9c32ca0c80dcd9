package gift

import "cadoz/internal/catalog"

// SelectBox replaces the selected box. A nil item, or the item already
// selected, clears the selection.
type SelectBox struct {
	Item *catalog.Item
}

func (SelectBox) Type() ActionType { return ActionSelectBox }
func (SelectBox) isAction()        {}

// SelectWrap replaces the selected wrap with the same toggle rule as SelectBox.
type SelectWrap struct {
	Item *catalog.Item
}

func (SelectWrap) Type() ActionType { return ActionSelectWrap }
func (SelectWrap) isAction()        {}

func (r *DefaultReducer) reduceSelectBox(state State, a SelectBox) State {
	next := state.Clone()
	next.SelectedBox = toggle(next.SelectedBox, a.Item)
	return next
}

func (r *DefaultReducer) reduceSelectWrap(state State, a SelectWrap) State {
	next := state.Clone()
	next.SelectedWrap = toggle(next.SelectedWrap, a.Item)
	return next
}

func toggle(current, chosen *catalog.Item) *catalog.Item {
	if chosen == nil {
		return nil
	}
	if current != nil && current.ID == chosen.ID {
		return nil
	}
	return cloneItem(chosen)
}
