package gift

// Clear resets the gift to its default state.
type Clear struct{}

func (Clear) Type() ActionType { return ActionClear }
func (Clear) isAction()        {}

func (r *DefaultReducer) reduceClear(State, Clear) State {
	return EmptyState()
}
