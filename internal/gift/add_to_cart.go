package gift

import "cadoz/internal/catalog"

// AddToCart adds one unit of a catalogue item to the gift cart.
type AddToCart struct {
	Item catalog.Item
}

func (AddToCart) Type() ActionType { return ActionAddToCart }
func (AddToCart) isAction()        {}

func (r *DefaultReducer) reduceAddToCart(state State, a AddToCart) State {
	next := state.Clone()
	for i := range next.Cart {
		if next.Cart[i].Item.ID == a.Item.ID {
			next.Cart[i].Quantity++
			return next
		}
	}

	item := a.Item.Clone()
	kind := item.Kind
	if kind == "" {
		kind = catalog.Classify(item)
	}
	next.Cart = append(next.Cart, Entry{
		ID:       r.newEntryID(item.ID),
		Kind:     kind,
		Quantity: 1,
		Item:     item,
	})
	return next
}
