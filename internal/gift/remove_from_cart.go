package gift

// RemoveFromCart drops a gift cart entry.
type RemoveFromCart struct {
	EntryID string
}

func (RemoveFromCart) Type() ActionType { return ActionRemoveFromCart }
func (RemoveFromCart) isAction()        {}

func (r *DefaultReducer) reduceRemoveFromCart(state State, a RemoveFromCart) State {
	next := state.Clone()
	kept := next.Cart[:0]
	for _, e := range next.Cart {
		if e.ID != a.EntryID {
			kept = append(kept, e)
		}
	}
	next.Cart = kept
	return next
}
