package bot

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseTextCommands(t *testing.T) {
	cases := []struct {
		text string
		kind Kind
	}{
		{"/start", KindStart},
		{"start", KindStart},
		{"/menu", KindBrowseMenu},
		{"/cart", KindViewCart},
		{"/orders", KindMyOrders},
		{"Dana Levi", KindText},
		{"  /MENU  ", KindBrowseMenu},
	}

	for _, tc := range cases {
		intent := ParseText(7, tc.text)
		assert.Equal(t, tc.kind, intent.Kind, "text %q", tc.text)
		assert.Equal(t, int64(7), intent.ChatID)
	}
}

func TestParseTextKeepsFreeText(t *testing.T) {
	intent := ParseText(7, "  10 Herzl St  ")
	assert.Equal(t, KindText, intent.Kind)
	assert.Equal(t, "10 Herzl St", intent.Text)
}

func TestParseCallback(t *testing.T) {
	productID := uuid.New()
	itemID := uuid.New()

	intent := ParseCallback(7, "add:"+productID.String())
	assert.Equal(t, KindAddItem, intent.Kind)
	assert.Equal(t, productID, intent.ProductID)
	assert.Equal(t, 1, intent.Quantity)

	intent = ParseCallback(7, "qty:"+itemID.String()+":3")
	assert.Equal(t, KindUpdateQty, intent.Kind)
	assert.Equal(t, itemID, intent.ItemID)
	assert.Equal(t, 3, intent.Quantity)

	intent = ParseCallback(7, "lang:he")
	assert.Equal(t, KindSetLanguage, intent.Kind)
	assert.Equal(t, "he", intent.Language)

	intent = ParseCallback(7, "delivery")
	assert.Equal(t, KindSetDelivery, intent.Kind)
	assert.Equal(t, "delivery", intent.Method)
}

func TestParseCallbackGarbage(t *testing.T) {
	for _, data := range []string{"", "add", "add:not-a-uuid", "qty:xx:3", "nope:1"} {
		intent := ParseCallback(7, data)
		assert.Equal(t, KindUnknown, intent.Kind, "data %q", data)
	}
}
