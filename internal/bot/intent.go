package bot

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"orderbot-backend/internal/infrastructure/telegram"
)

// Kind identifies what the customer asked for.
type Kind string

const (
	KindStart        Kind = "start"
	KindText         Kind = "text"
	KindSetLanguage  Kind = "set_language"
	KindBrowseMenu   Kind = "browse_menu"
	KindShowCategory Kind = "show_category"
	KindAddItem      Kind = "add_item"
	KindViewCart     Kind = "view_cart"
	KindUpdateQty    Kind = "update_qty"
	KindRemoveItem   Kind = "remove_item"
	KindClearCart    Kind = "clear_cart"
	KindSetDelivery  Kind = "set_delivery"
	KindConfirmOrder Kind = "confirm_order"
	KindMyOrders     Kind = "my_orders"
	KindUnknown      Kind = "unknown"
)

// Intent is one parsed customer request, independent of how Telegram
// delivered it (command, free text or callback button).
type Intent struct {
	Kind       Kind
	ChatID     int64
	Text       string
	Language   string
	CategoryID uuid.UUID
	ProductID  uuid.UUID
	ItemID     uuid.UUID
	Quantity   int
	Method     string
}

// Reply is what the bot wants to say back, render-agnostic.
type Reply struct {
	Text     string
	Keyboard [][]telegram.Button
}

// ParseText maps a plain message to an intent. Unrecognized text stays
// KindText so the conversation flow can consume it (name, phone,
// address).
func ParseText(chatID int64, text string) Intent {
	trimmed := strings.TrimSpace(text)

	switch strings.ToLower(trimmed) {
	case "/start", "start":
		return Intent{Kind: KindStart, ChatID: chatID}
	case "/menu", "menu":
		return Intent{Kind: KindBrowseMenu, ChatID: chatID}
	case "/cart", "cart":
		return Intent{Kind: KindViewCart, ChatID: chatID}
	case "/orders", "orders":
		return Intent{Kind: KindMyOrders, ChatID: chatID}
	}

	return Intent{Kind: KindText, ChatID: chatID, Text: trimmed}
}

// ParseCallback maps an inline button action token to an intent. Tokens
// are "verb" or "verb:arg[:arg]".
func ParseCallback(chatID int64, data string) Intent {
	parts := strings.Split(data, ":")
	intent := Intent{Kind: KindUnknown, ChatID: chatID}

	switch parts[0] {
	case "menu":
		intent.Kind = KindBrowseMenu
	case "cart":
		intent.Kind = KindViewCart
	case "clear":
		intent.Kind = KindClearCart
	case "checkout":
		intent.Kind = KindConfirmOrder
	case "myorders":
		intent.Kind = KindMyOrders
	case "lang":
		if len(parts) == 2 {
			intent.Kind = KindSetLanguage
			intent.Language = parts[1]
		}
	case "cat":
		if id, ok := parseID(parts, 2); ok {
			intent.Kind = KindShowCategory
			intent.CategoryID = id
		}
	case "add":
		if id, ok := parseID(parts, 2); ok {
			intent.Kind = KindAddItem
			intent.ProductID = id
			intent.Quantity = 1
		}
	case "qty":
		if len(parts) == 3 {
			id, err := uuid.Parse(parts[1])
			qty, qerr := strconv.Atoi(parts[2])
			if err == nil && qerr == nil {
				intent.Kind = KindUpdateQty
				intent.ItemID = id
				intent.Quantity = qty
			}
		}
	case "del":
		if id, ok := parseID(parts, 2); ok {
			intent.Kind = KindRemoveItem
			intent.ItemID = id
		}
	case "pickup":
		intent.Kind = KindSetDelivery
		intent.Method = "pickup"
	case "delivery":
		intent.Kind = KindSetDelivery
		intent.Method = "delivery"
	}

	return intent
}

func parseID(parts []string, want int) (uuid.UUID, bool) {
	if len(parts) != want {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
