package gift

// Error message constants for the gift domain.
const (
	ErrMsgUnknownStep      = "unknown step"
	ErrMsgItemIDRequired   = "item id is required"
	ErrMsgEntryIDRequired  = "entry id is required"
	ErrMsgItemNotFound     = "catalog item not found"
	ErrMsgEntryNotFound    = "gift entry not found"
	ErrMsgWrongCategory    = "item does not belong to this step"
	ErrMsgSummaryNoOptions = "the summary step has no options"
	ErrMsgQuantityPositive = "quantity must be positive"
	ErrMsgMalformedPayload = "malformed payload"
	ErrMsgMalformedMessage = "malformed action message"
)
