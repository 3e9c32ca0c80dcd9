package gift

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadoz/internal/catalog"
	"cadoz/internal/platform"
)

func TestDecodeActions(t *testing.T) {
	d := NewDecoder(newTestCatalog(t))

	tests := []struct {
		name string
		body string
		want Action
	}{
		{"add", `{"type":"ADD_TO_CART","payload":{"itemId":"g-cd-02"}}`, AddToCart{Item: mustFind(t, d, "g-cd-02")}},
		{"remove", `{"type":"REMOVE_FROM_CART","payload":{"entryId":"e1"}}`, RemoveFromCart{EntryID: "e1"}},
		{"update", `{"type":"UPDATE_QUANTITY","payload":{"entryId":"e1","quantity":-2}}`, UpdateQuantity{EntryID: "e1", Quantity: -2}},
		{"change step", `{"type":"CHANGE_STEP","payload":{"step":"wrap"}}`, ChangeStep{Step: StepWrap}},
		{"select none", `{"type":"SELECT_BOX","payload":null}`, SelectBox{}},
		{"select wrap none", `{"type":"SELECT_WRAP"}`, SelectWrap{}},
		{"clear", `{"type":"CLEAR"}`, Clear{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := d.Decode([]byte(tt.body))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeSelectBoxSnapshotsItem(t *testing.T) {
	d := NewDecoder(newTestCatalog(t))
	got, err := d.Decode([]byte(`{"type":"SELECT_BOX","payload":{"itemId":"g-bx-02"}}`))
	require.NoError(t, err)

	sel, ok := got.(SelectBox)
	require.True(t, ok)
	require.NotNil(t, sel.Item)
	assert.Equal(t, int64(120), sel.Item.Price)
}

func TestDecodeRejections(t *testing.T) {
	d := NewDecoder(newTestCatalog(t))

	tests := []struct {
		name string
		body string
		code platform.StatusCode
	}{
		{"not json", `{`, platform.StatusInvalidArgument},
		{"unknown type", `{"type":"EXPLODE"}`, platform.StatusInvalidArgument},
		{"unknown item", `{"type":"ADD_TO_CART","payload":{"itemId":"ghost"}}`, platform.StatusNotFound},
		{"missing payload", `{"type":"ADD_TO_CART"}`, platform.StatusInvalidArgument},
		{"blank entry", `{"type":"REMOVE_FROM_CART","payload":{"entryId":""}}`, platform.StatusInvalidArgument},
		{"bad step", `{"type":"CHANGE_STEP","payload":{"step":"checkout"}}`, platform.StatusInvalidArgument},
		{"box from wraps", `{"type":"SELECT_BOX","payload":{"itemId":"g-pk-01"}}`, platform.StatusInvalidArgument},
		{"wrong payload shape", `{"type":"UPDATE_QUANTITY","payload":"e1"}`, platform.StatusInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.Decode([]byte(tt.body))
			cmdErr, ok := platform.AsCommandError(err)
			require.True(t, ok, "expected CommandError, got %v", err)
			assert.Equal(t, tt.code, cmdErr.Code)
		})
	}
}

func TestDecoderRegistersEveryAction(t *testing.T) {
	d := NewDecoder(newTestCatalog(t))
	assert.ElementsMatch(t, []string{
		"ADD_TO_CART", "REMOVE_FROM_CART", "UPDATE_QUANTITY",
		"SELECT_BOX", "SELECT_WRAP", "CHANGE_STEP", "CLEAR",
	}, d.Router().Types())
}

func mustFind(t *testing.T, d *Decoder, id string) catalog.Item {
	t.Helper()
	it, ok := d.items.Find(id)
	require.True(t, ok)
	return it
}
