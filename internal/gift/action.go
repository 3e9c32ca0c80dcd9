package gift

// ActionType names a message of the gift action protocol.
type ActionType string

const (
	ActionAddToCart      ActionType = "ADD_TO_CART"
	ActionRemoveFromCart ActionType = "REMOVE_FROM_CART"
	ActionUpdateQuantity ActionType = "UPDATE_QUANTITY"
	ActionSelectBox      ActionType = "SELECT_BOX"
	ActionSelectWrap     ActionType = "SELECT_WRAP"
	ActionChangeStep     ActionType = "CHANGE_STEP"
	ActionClear          ActionType = "CLEAR"
)

// Action is a state transition request. The set of actions is closed.
type Action interface {
	Type() ActionType
	isAction()
}
