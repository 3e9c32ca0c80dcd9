package gift

import "cadoz/internal/platform"

// Reducer applies actions to gift state.
//
// Reduce is pure and total: it never fails, never mutates its input, and
// returns the input state's value unchanged for actions it does not know.
type Reducer interface {
	Reduce(state State, action Action) State
}

// DefaultReducer is the storefront's gift reducer.
type DefaultReducer struct {
	newEntryID func(itemID string) string
}

// NewReducer creates a reducer that mints random entry ids.
func NewReducer() Reducer {
	return NewReducerWithIDs(platform.NewEntryID)
}

// NewReducerWithIDs creates a reducer with a custom entry id source.
func NewReducerWithIDs(newEntryID func(itemID string) string) Reducer {
	return &DefaultReducer{newEntryID: newEntryID}
}

func (r *DefaultReducer) Reduce(state State, action Action) State {
	switch a := action.(type) {
	case AddToCart:
		return r.reduceAddToCart(state, a)
	case RemoveFromCart:
		return r.reduceRemoveFromCart(state, a)
	case UpdateQuantity:
		return r.reduceUpdateQuantity(state, a)
	case SelectBox:
		return r.reduceSelectBox(state, a)
	case SelectWrap:
		return r.reduceSelectWrap(state, a)
	case ChangeStep:
		return r.reduceChangeStep(state, a)
	case Clear:
		return r.reduceClear(state, a)
	default:
		return state.Clone()
	}
}

// Navigate returns the step change that moves forward or back from the
// current step. Moves never leave the sequence.
func Navigate(state State, forward bool) ChangeStep {
	if forward {
		return ChangeStep{Step: state.CurrentStep.Next()}
	}
	return ChangeStep{Step: state.CurrentStep.Prev()}
}
