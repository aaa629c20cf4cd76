package i18n

// Message keys used by the bot and the notification dispatcher.
const (
	MsgWelcome            = "WELCOME"
	MsgAskName            = "ASK_NAME"
	MsgAskPhone           = "ASK_PHONE"
	MsgInvalidPhone       = "INVALID_PHONE"
	MsgRegistered         = "REGISTERED"
	MsgLanguageSet        = "LANGUAGE_SET"
	MsgMenuTitle          = "MENU_TITLE"
	MsgItemAdded          = "ITEM_ADDED"
	MsgItemRemoved        = "ITEM_REMOVED"
	MsgCartEmpty          = "CART_EMPTY"
	MsgCartSummary        = "CART_SUMMARY"
	MsgCartCleared        = "CART_CLEARED"
	MsgAskAddress         = "ASK_ADDRESS"
	MsgDeliverySet        = "DELIVERY_SET"
	MsgPickupSet          = "PICKUP_SET"
	MsgProductUnavailable = "PRODUCT_UNAVAILABLE"
	MsgOrderPlaced        = "ORDER_PLACED"
	MsgOrderStatusChanged = "ORDER_STATUS_CHANGED"
	MsgOrderReadyPickup   = "ORDER_READY_PICKUP"
	MsgOrderCancelled     = "ORDER_CANCELLED"
	MsgNewOrderAdmin      = "NEW_ORDER_ADMIN"
	MsgDailySummaryAdmin  = "DAILY_SUMMARY_ADMIN"
	MsgMyOrders           = "MY_ORDERS"
	MsgNoOrders           = "NO_ORDERS"
	MsgUnknownCommand     = "UNKNOWN_COMMAND"
	MsgRateLimited        = "RATE_LIMITED"
	MsgSomethingWrong     = "SOMETHING_WRONG"
)

// Button labels.
const (
	BtnMenu     = "BTN_MENU"
	BtnCart     = "BTN_CART"
	BtnCheckout = "BTN_CHECKOUT"
	BtnPickup   = "BTN_PICKUP"
	BtnDelivery = "BTN_DELIVERY"
	BtnClear    = "BTN_CLEAR"
	BtnMyOrders = "BTN_MY_ORDERS"
	BtnLanguage = "BTN_LANGUAGE"
)

var messages = map[string]map[string]string{
	LangEnglish: {
		MsgWelcome:            "Welcome to {business}! What would you like to do?",
		MsgAskName:            "What is your full name?",
		MsgAskPhone:           "Please share your phone number (e.g. 050-1234567).",
		MsgInvalidPhone:       "That phone number doesn't look right. Please try again.",
		MsgRegistered:         "You're all set, {name}!",
		MsgLanguageSet:        "Language updated.",
		MsgMenuTitle:          "Our menu:",
		MsgItemAdded:          "Added {product} x{quantity} to your cart.",
		MsgItemRemoved:        "Removed {product} from your cart.",
		MsgCartEmpty:          "Your cart is empty.",
		MsgCartSummary:        "Your cart:\n{lines}\nTotal: {total} {currency}",
		MsgCartCleared:        "Cart cleared.",
		MsgAskAddress:         "Please send your delivery address.",
		MsgDeliverySet:        "Delivery to {address} (fee: {fee} {currency}).",
		MsgPickupSet:          "Pickup selected.",
		MsgProductUnavailable: "Sorry, {product} is not available right now.",
		MsgOrderPlaced:        "Order {number} received! Total: {total} {currency}. We'll keep you posted.",
		MsgOrderStatusChanged: "Order {number} is now {status}.",
		MsgOrderReadyPickup:   "Order {number} is ready for pickup!",
		MsgOrderCancelled:     "Order {number} was cancelled.",
		MsgNewOrderAdmin:      "New order {number} from {name} ({phone})\n{lines}\nTotal: {total} {currency}\n{delivery}",
		MsgDailySummaryAdmin:  "Daily summary for {date}: {count} orders, {total} {currency} revenue.",
		MsgMyOrders:           "Your recent orders:\n{lines}",
		MsgNoOrders:           "You have no orders yet.",
		MsgUnknownCommand:     "I didn't understand that. Use the buttons below.",
		MsgRateLimited:        "Too many messages, please slow down.",
		MsgSomethingWrong:     "Something went wrong, please try again.",

		BtnMenu:     "Menu",
		BtnCart:     "My Cart",
		BtnCheckout: "Checkout",
		BtnPickup:   "Pickup",
		BtnDelivery: "Delivery",
		BtnClear:    "Clear Cart",
		BtnMyOrders: "My Orders",
		BtnLanguage: "Language",
	},
	LangHebrew: {
		MsgWelcome:            "ברוכים הבאים ל{business}! מה תרצו לעשות?",
		MsgAskName:            "מה שמך המלא?",
		MsgAskPhone:           "אנא שלחו מספר טלפון (למשל 050-1234567).",
		MsgInvalidPhone:       "מספר הטלפון לא תקין. נסו שוב.",
		MsgRegistered:         "נרשמת בהצלחה, {name}!",
		MsgLanguageSet:        "השפה עודכנה.",
		MsgMenuTitle:          "התפריט שלנו:",
		MsgItemAdded:          "{product} x{quantity} נוסף לסל.",
		MsgItemRemoved:        "{product} הוסר מהסל.",
		MsgCartEmpty:          "הסל שלך ריק.",
		MsgCartSummary:        "הסל שלך:\n{lines}\nסה\"כ: {total} {currency}",
		MsgCartCleared:        "הסל נוקה.",
		MsgAskAddress:         "אנא שלחו כתובת למשלוח.",
		MsgDeliverySet:        "משלוח ל{address} (דמי משלוח: {fee} {currency}).",
		MsgPickupSet:          "נבחר איסוף עצמי.",
		MsgProductUnavailable: "מצטערים, {product} אינו זמין כעת.",
		MsgOrderPlaced:        "הזמנה {number} התקבלה! סה\"כ: {total} {currency}. נעדכן אתכם.",
		MsgOrderStatusChanged: "הזמנה {number} עברה לסטטוס {status}.",
		MsgOrderReadyPickup:   "הזמנה {number} מוכנה לאיסוף!",
		MsgOrderCancelled:     "הזמנה {number} בוטלה.",
		MsgMyOrders:           "ההזמנות האחרונות שלך:\n{lines}",
		MsgNoOrders:           "אין לך הזמנות עדיין.",
		MsgUnknownCommand:     "לא הבנתי. השתמשו בכפתורים למטה.",
		MsgRateLimited:        "יותר מדי הודעות, האטו בבקשה.",
		MsgSomethingWrong:     "משהו השתבש, נסו שוב.",

		BtnMenu:     "תפריט",
		BtnCart:     "הסל שלי",
		BtnCheckout: "לתשלום",
		BtnPickup:   "איסוף עצמי",
		BtnDelivery: "משלוח",
		BtnClear:    "ניקוי סל",
		BtnMyOrders: "ההזמנות שלי",
		BtnLanguage: "שפה",
	},
}

// Order status display names, interpolated into status-change messages.
var statusNames = map[string]map[string]string{
	LangEnglish: {
		"pending":   "pending",
		"confirmed": "confirmed",
		"preparing": "being prepared",
		"ready":     "ready",
		"completed": "completed",
		"cancelled": "cancelled",
	},
	LangHebrew: {
		"pending":   "ממתינה לאישור",
		"confirmed": "אושרה",
		"preparing": "בהכנה",
		"ready":     "מוכנה",
		"completed": "הושלמה",
		"cancelled": "בוטלה",
	},
}

// StatusName localizes an order status for display. Unknown statuses
// and languages fall back to English, then to the raw value.
func StatusName(status, lang string) string {
	if byStatus, ok := statusNames[lang]; ok {
		if name, ok := byStatus[status]; ok {
			return name
		}
	}
	if name, ok := statusNames[LangEnglish][status]; ok {
		return name
	}
	return status
}
