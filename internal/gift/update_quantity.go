package gift

// UpdateQuantity sets the quantity of a gift cart entry, floored at 1.
type UpdateQuantity struct {
	EntryID  string
	Quantity int
}

func (UpdateQuantity) Type() ActionType { return ActionUpdateQuantity }
func (UpdateQuantity) isAction()        {}

func (r *DefaultReducer) reduceUpdateQuantity(state State, a UpdateQuantity) State {
	next := state.Clone()
	for i := range next.Cart {
		if next.Cart[i].ID == a.EntryID {
			next.Cart[i].Quantity = max(1, a.Quantity)
		}
	}
	return next
}
