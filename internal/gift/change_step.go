package gift

// ChangeStep moves the gift to a step. The reducer does not validate it;
// decoders and navigation only produce steps from the sequence.
type ChangeStep struct {
	Step Step
}

func (ChangeStep) Type() ActionType { return ActionChangeStep }
func (ChangeStep) isAction()        {}

func (r *DefaultReducer) reduceChangeStep(state State, a ChangeStep) State {
	next := state.Clone()
	next.CurrentStep = a.Step
	return next
}
