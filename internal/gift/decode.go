package gift

import (
	"bytes"
	"encoding/json"

	"cadoz/internal/catalog"
	"cadoz/internal/platform"
)

// Catalog is the read side of the catalogue the gift flow consumes.
type Catalog interface {
	Find(id string) (catalog.Item, bool)
	ByCategory(category catalog.Category) []catalog.Item
}

// Message is the wire form of an action.
type Message struct {
	Type    ActionType      `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type itemRef struct {
	ItemID string `json:"itemId"`
}

type entryRef struct {
	EntryID  string `json:"entryId"`
	Quantity int    `json:"quantity"`
}

type stepRef struct {
	Step string `json:"step"`
}

// Decoder turns wire messages into actions, snapshotting referenced
// catalogue items at decode time.
type Decoder struct {
	items  Catalog
	router *platform.Router[Action]
}

// NewDecoder registers a decoder for every action type.
func NewDecoder(items Catalog) *Decoder {
	d := &Decoder{items: items}
	d.router = platform.NewRouter[Action]("gift").
		On(string(ActionAddToCart), d.decodeAddToCart).
		On(string(ActionRemoveFromCart), d.decodeRemoveFromCart).
		On(string(ActionUpdateQuantity), d.decodeUpdateQuantity).
		On(string(ActionSelectBox), d.decodeSelectBox).
		On(string(ActionSelectWrap), d.decodeSelectWrap).
		On(string(ActionChangeStep), d.decodeChangeStep).
		On(string(ActionClear), d.decodeClear)
	return d
}

// Router exposes the underlying type router.
func (d *Decoder) Router() *platform.Router[Action] { return d.router }

// Decode parses a full {"type", "payload"} message.
func (d *Decoder) Decode(data []byte) (Action, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, platform.NewInvalidArgument(ErrMsgMalformedMessage)
	}
	return d.DecodeMessage(msg)
}

// DecodeMessage decodes an already-split message.
func (d *Decoder) DecodeMessage(msg Message) (Action, error) {
	return d.router.Dispatch(string(msg.Type), msg.Payload)
}

func (d *Decoder) decodeAddToCart(data []byte) (Action, error) {
	var ref itemRef
	if err := unmarshalPayload(data, &ref); err != nil {
		return nil, err
	}
	item, err := d.lookup(ref.ItemID)
	if err != nil {
		return nil, err
	}
	return AddToCart{Item: item}, nil
}

func (d *Decoder) decodeRemoveFromCart(data []byte) (Action, error) {
	var ref entryRef
	if err := unmarshalPayload(data, &ref); err != nil {
		return nil, err
	}
	if err := platform.FirstError(platform.RequireNotBlank(ref.EntryID, ErrMsgEntryIDRequired)); err != nil {
		return nil, err
	}
	return RemoveFromCart{EntryID: ref.EntryID}, nil
}

func (d *Decoder) decodeUpdateQuantity(data []byte) (Action, error) {
	var ref entryRef
	if err := unmarshalPayload(data, &ref); err != nil {
		return nil, err
	}
	if err := platform.FirstError(platform.RequireNotBlank(ref.EntryID, ErrMsgEntryIDRequired)); err != nil {
		return nil, err
	}
	return UpdateQuantity{EntryID: ref.EntryID, Quantity: ref.Quantity}, nil
}

func (d *Decoder) decodeSelectBox(data []byte) (Action, error) {
	item, err := d.optionalItem(data, catalog.CategoryBoxes)
	if err != nil {
		return nil, err
	}
	return SelectBox{Item: item}, nil
}

func (d *Decoder) decodeSelectWrap(data []byte) (Action, error) {
	item, err := d.optionalItem(data, catalog.CategoryWraps)
	if err != nil {
		return nil, err
	}
	return SelectWrap{Item: item}, nil
}

func (d *Decoder) decodeChangeStep(data []byte) (Action, error) {
	var ref stepRef
	if err := unmarshalPayload(data, &ref); err != nil {
		return nil, err
	}
	step, err := ParseStep(ref.Step)
	if err != nil {
		return nil, err
	}
	return ChangeStep{Step: step}, nil
}

func (d *Decoder) decodeClear([]byte) (Action, error) {
	return Clear{}, nil
}

// optionalItem resolves a single-select payload. A missing or null payload,
// or an empty item id, means none.
func (d *Decoder) optionalItem(data []byte, category catalog.Category) (*catalog.Item, error) {
	if isNull(data) {
		return nil, nil
	}
	var ref itemRef
	if err := unmarshalPayload(data, &ref); err != nil {
		return nil, err
	}
	if ref.ItemID == "" {
		return nil, nil
	}
	item, err := d.lookup(ref.ItemID)
	if err != nil {
		return nil, err
	}
	if item.Category != category {
		return nil, platform.NewInvalidArgumentf("%s: %s is not in %s", ErrMsgWrongCategory, item.ID, category)
	}
	return &item, nil
}

func (d *Decoder) lookup(itemID string) (catalog.Item, error) {
	if err := platform.FirstError(platform.RequireNotBlank(itemID, ErrMsgItemIDRequired)); err != nil {
		return catalog.Item{}, err
	}
	item, ok := d.items.Find(itemID)
	if !ok {
		return catalog.Item{}, platform.NewNotFoundf("%s: %s", ErrMsgItemNotFound, itemID)
	}
	return item, nil
}

func unmarshalPayload(data []byte, v any) error {
	if isNull(data) {
		return platform.NewInvalidArgument(ErrMsgMalformedPayload)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return platform.NewInvalidArgument(ErrMsgMalformedPayload)
	}
	return nil
}

func isNull(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
