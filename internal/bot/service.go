// Package bot turns parsed customer intents into localized replies. It
// is transport-agnostic: the webhook feeds it intents and renders the
// Reply through the Telegram sender.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	cartmodel "orderbot-backend/internal/domains/cart/model"
	cartservice "orderbot-backend/internal/domains/cart/service"
	categoryservice "orderbot-backend/internal/domains/category/service"
	customermodel "orderbot-backend/internal/domains/customer/model"
	customerservice "orderbot-backend/internal/domains/customer/service"
	ordermodel "orderbot-backend/internal/domains/order/model"
	orderservice "orderbot-backend/internal/domains/order/service"
	productmodel "orderbot-backend/internal/domains/product/model"
	productservice "orderbot-backend/internal/domains/product/service"
	"orderbot-backend/internal/infrastructure/telegram"
	"orderbot-backend/internal/shared/i18n"
	"orderbot-backend/internal/shared/utils"
	"orderbot-backend/pkg/cache"
	"orderbot-backend/pkg/logger"
)

// Conversation steps for multi-message flows.
const (
	stepAwaitingName    = "awaiting_name"
	stepAwaitingPhone   = "awaiting_phone"
	stepAwaitingAddress = "awaiting_address"
)

const stateTTL = 30 * time.Minute

type conversationState struct {
	Step string `json:"step"`
	Name string `json:"name"`
}

// Settings carries the business values the bot needs for rendering.
// Location is the business timezone; availability filtering in the menu
// uses it. Nil means UTC.
type Settings struct {
	BusinessName    string
	Currency        string
	DefaultLanguage string
	Location        *time.Location
}

// Service orchestrates the domain services per incoming intent.
type Service struct {
	customers  customerservice.ServiceInterface
	categories categoryservice.ServiceInterface
	products   productservice.ServiceInterface
	carts      cartservice.ServiceInterface
	orders     orderservice.ServiceInterface
	state      cache.Cache
	settings   Settings
	now        func() time.Time
}

func NewService(
	customers customerservice.ServiceInterface,
	categories categoryservice.ServiceInterface,
	products productservice.ServiceInterface,
	carts cartservice.ServiceInterface,
	orders orderservice.ServiceInterface,
	state cache.Cache,
	settings Settings,
) *Service {
	loc := settings.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		customers:  customers,
		categories: categories,
		products:   products,
		carts:      carts,
		orders:     orders,
		state:      state,
		settings:   settings,
		now:        func() time.Time { return time.Now().In(loc) },
	}
}

// Handle resolves one intent into a reply. It never returns an error:
// failures become an apologetic message in the customer's language.
func (s *Service) Handle(ctx context.Context, intent Intent) Reply {
	customer, err := s.customers.GetByTelegramID(ctx, intent.ChatID)
	if err != nil {
		logger.Error("customer lookup failed", err)
		return s.errorReply(s.settings.DefaultLanguage)
	}

	lang := s.settings.DefaultLanguage
	if customer != nil {
		lang = customer.Language
	}

	switch intent.Kind {
	case KindStart:
		return s.handleStart(ctx, customer, intent, lang)
	case KindText:
		return s.handleText(ctx, customer, intent, lang)
	case KindSetLanguage:
		return s.handleSetLanguage(ctx, intent, lang)
	}

	// Everything below needs a registered customer.
	if customer == nil {
		return s.handleStart(ctx, nil, intent, lang)
	}

	switch intent.Kind {
	case KindBrowseMenu:
		return s.handleBrowseMenu(ctx, lang)
	case KindShowCategory:
		return s.handleShowCategory(ctx, intent, lang)
	case KindAddItem:
		return s.handleAddItem(ctx, customer, intent, lang)
	case KindViewCart:
		return s.handleViewCart(ctx, customer, lang)
	case KindUpdateQty:
		return s.handleUpdateQty(ctx, customer, intent, lang)
	case KindRemoveItem:
		return s.handleRemoveItem(ctx, customer, intent, lang)
	case KindClearCart:
		return s.handleClearCart(ctx, customer, lang)
	case KindSetDelivery:
		return s.handleSetDelivery(ctx, customer, intent, lang)
	case KindConfirmOrder:
		return s.handleConfirmOrder(ctx, customer, lang)
	case KindMyOrders:
		return s.handleMyOrders(ctx, customer, lang)
	default:
		return Reply{Text: i18n.Render(i18n.MsgUnknownCommand, lang, nil), Keyboard: s.mainMenu(lang)}
	}
}

func (s *Service) handleStart(ctx context.Context, customer *customermodel.Customer, intent Intent, lang string) Reply {
	if customer != nil {
		s.clearState(ctx, intent.ChatID)
		return Reply{
			Text:     i18n.Render(i18n.MsgWelcome, lang, map[string]string{"business": s.settings.BusinessName}),
			Keyboard: s.mainMenu(lang),
		}
	}

	s.setState(ctx, intent.ChatID, &conversationState{Step: stepAwaitingName})
	return Reply{Text: i18n.Render(i18n.MsgAskName, lang, nil)}
}

func (s *Service) handleText(ctx context.Context, customer *customermodel.Customer, intent Intent, lang string) Reply {
	state, ok := s.getState(ctx, intent.ChatID)
	if !ok {
		return Reply{Text: i18n.Render(i18n.MsgUnknownCommand, lang, nil), Keyboard: s.mainMenu(lang)}
	}

	switch state.Step {
	case stepAwaitingName:
		if intent.Text == "" {
			return Reply{Text: i18n.Render(i18n.MsgAskName, lang, nil)}
		}
		// The onboarding language follows the script of the name.
		nameLang := i18n.DetectLanguage(intent.Text)
		s.setState(ctx, intent.ChatID, &conversationState{Step: stepAwaitingPhone, Name: intent.Text})
		return Reply{Text: i18n.Render(i18n.MsgAskPhone, nameLang, nil)}

	case stepAwaitingPhone:
		nameLang := i18n.DetectLanguage(state.Name)
		if !utils.ValidIsraeliMobile(utils.SanitizePhone(intent.Text)) {
			return Reply{Text: i18n.Render(i18n.MsgInvalidPhone, nameLang, nil)}
		}
		registered, err := s.customers.Register(ctx, &customermodel.RegisterRequest{
			TelegramID: intent.ChatID,
			FullName:   state.Name,
			Phone:      intent.Text,
			Language:   nameLang,
		})
		if err != nil {
			logger.Error("registration failed", err)
			return s.errorReply(nameLang)
		}
		s.clearState(ctx, intent.ChatID)
		return Reply{
			Text:     i18n.Render(i18n.MsgRegistered, registered.Language, map[string]string{"name": registered.FullName}),
			Keyboard: s.mainMenu(registered.Language),
		}

	case stepAwaitingAddress:
		if customer == nil {
			s.clearState(ctx, intent.ChatID)
			return s.handleStart(ctx, nil, intent, lang)
		}
		if intent.Text == "" {
			return Reply{Text: i18n.Render(i18n.MsgAskAddress, lang, nil)}
		}
		return s.applyDeliveryAddress(ctx, customer, intent.Text, lang)
	}

	return Reply{Text: i18n.Render(i18n.MsgUnknownCommand, lang, nil), Keyboard: s.mainMenu(lang)}
}

func (s *Service) handleSetLanguage(ctx context.Context, intent Intent, lang string) Reply {
	if err := s.customers.SetLanguage(ctx, intent.ChatID, intent.Language); err != nil {
		logger.Error("language change failed", err)
		return s.errorReply(lang)
	}
	return Reply{
		Text:     i18n.Render(i18n.MsgLanguageSet, intent.Language, nil),
		Keyboard: s.mainMenu(intent.Language),
	}
}

func (s *Service) handleBrowseMenu(ctx context.Context, lang string) Reply {
	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		logger.Error("category listing failed", err)
		return s.errorReply(lang)
	}

	var keyboard [][]telegram.Button
	for _, c := range categories {
		keyboard = append(keyboard, []telegram.Button{{
			Label:  c.DisplayName(lang),
			Action: "cat:" + c.ID.String(),
		}})
	}
	keyboard = append(keyboard, []telegram.Button{
		{Label: i18n.Render(i18n.BtnCart, lang, nil), Action: "cart"},
	})

	return Reply{Text: i18n.Render(i18n.MsgMenuTitle, lang, nil), Keyboard: keyboard}
}

func (s *Service) handleShowCategory(ctx context.Context, intent Intent, lang string) Reply {
	products, err := s.products.ListActiveByCategory(ctx, intent.CategoryID)
	if err != nil {
		logger.Error("product listing failed", err)
		return s.errorReply(lang)
	}

	now := s.now()
	var keyboard [][]telegram.Button
	for i := range products {
		p := &products[i]
		if !p.Availability.IsAvailableAt(now) {
			continue
		}
		label := fmt.Sprintf("%s — %s %s", p.DisplayName(lang), utils.FormatMoney(p.Price), s.settings.Currency)
		keyboard = append(keyboard, []telegram.Button{{Label: label, Action: "add:" + p.ID.String()}})
	}
	keyboard = append(keyboard, []telegram.Button{
		{Label: i18n.Render(i18n.BtnMenu, lang, nil), Action: "menu"},
	})

	return Reply{Text: i18n.Render(i18n.MsgMenuTitle, lang, nil), Keyboard: keyboard}
}

func (s *Service) handleAddItem(ctx context.Context, customer *customermodel.Customer, intent Intent, lang string) Reply {
	quantity := intent.Quantity
	if quantity < 1 {
		quantity = 1
	}

	err := s.carts.AddItem(ctx, customer.ID, &cartmodel.AddItemRequest{
		ProductID: intent.ProductID,
		Quantity:  quantity,
	})
	if err != nil {
		if errors.Is(err, productmodel.ErrProductUnavailable) || errors.Is(err, productmodel.ErrProductNotFound) {
			return Reply{Text: i18n.Render(i18n.MsgProductUnavailable, lang, map[string]string{"product": ""})}
		}
		logger.Error("add to cart failed", err)
		return s.errorReply(lang)
	}

	product, err := s.products.GetByID(ctx, intent.ProductID)
	if err != nil {
		logger.Error("product lookup failed", err)
		return s.errorReply(lang)
	}

	return Reply{
		Text: i18n.Render(i18n.MsgItemAdded, lang, map[string]string{
			"product":  product.DisplayName(lang),
			"quantity": fmt.Sprintf("%d", quantity),
		}),
		Keyboard: s.cartMenu(lang),
	}
}

func (s *Service) handleViewCart(ctx context.Context, customer *customermodel.Customer, lang string) Reply {
	summary, err := s.carts.Summary(ctx, customer.ID, lang)
	if err != nil {
		logger.Error("cart summary failed", err)
		return s.errorReply(lang)
	}

	if summary.IsEmpty() {
		return Reply{Text: i18n.Render(i18n.MsgCartEmpty, lang, nil), Keyboard: s.mainMenu(lang)}
	}

	return Reply{
		Text: i18n.Render(i18n.MsgCartSummary, lang, map[string]string{
			"lines":    summaryLines(summary),
			"total":    utils.FormatMoney(summary.Total),
			"currency": s.settings.Currency,
		}),
		Keyboard: s.cartMenu(lang),
	}
}

func (s *Service) handleUpdateQty(ctx context.Context, customer *customermodel.Customer, intent Intent, lang string) Reply {
	if err := s.carts.UpdateQuantity(ctx, customer.ID, intent.ItemID, intent.Quantity); err != nil {
		logger.Error("quantity update failed", err)
		return s.errorReply(lang)
	}
	return s.handleViewCart(ctx, customer, lang)
}

func (s *Service) handleRemoveItem(ctx context.Context, customer *customermodel.Customer, intent Intent, lang string) Reply {
	if err := s.carts.RemoveItem(ctx, customer.ID, intent.ItemID); err != nil {
		logger.Error("item removal failed", err)
		return s.errorReply(lang)
	}
	return s.handleViewCart(ctx, customer, lang)
}

func (s *Service) handleClearCart(ctx context.Context, customer *customermodel.Customer, lang string) Reply {
	if err := s.carts.Clear(ctx, customer.ID); err != nil {
		logger.Error("cart clear failed", err)
		return s.errorReply(lang)
	}
	return Reply{Text: i18n.Render(i18n.MsgCartCleared, lang, nil), Keyboard: s.mainMenu(lang)}
}

func (s *Service) handleSetDelivery(ctx context.Context, customer *customermodel.Customer, intent Intent, lang string) Reply {
	if intent.Method == cartmodel.DeliveryMethodPickup {
		err := s.carts.SetDelivery(ctx, customer.ID, &cartmodel.SetDeliveryRequest{Method: intent.Method})
		if err != nil {
			logger.Error("delivery update failed", err)
			return s.errorReply(lang)
		}
		return Reply{Text: i18n.Render(i18n.MsgPickupSet, lang, nil), Keyboard: s.cartMenu(lang)}
	}

	if customer.HasAddress() {
		return s.applyDeliveryAddress(ctx, customer, *customer.DeliveryAddress, lang)
	}

	s.setState(ctx, customer.TelegramID, &conversationState{Step: stepAwaitingAddress})
	return Reply{Text: i18n.Render(i18n.MsgAskAddress, lang, nil)}
}

func (s *Service) applyDeliveryAddress(ctx context.Context, customer *customermodel.Customer, address string, lang string) Reply {
	err := s.carts.SetDelivery(ctx, customer.ID, &cartmodel.SetDeliveryRequest{
		Method:  cartmodel.DeliveryMethodDelivery,
		Address: &address,
	})
	if err != nil {
		logger.Error("delivery update failed", err)
		return s.errorReply(lang)
	}

	if !customer.HasAddress() {
		if err := s.customers.SetAddress(ctx, customer.TelegramID, address); err != nil {
			logger.Error("address save failed", err)
		}
	}
	s.clearState(ctx, customer.TelegramID)

	summary, err := s.carts.Summary(ctx, customer.ID, lang)
	if err != nil {
		logger.Error("cart summary failed", err)
		return s.errorReply(lang)
	}

	return Reply{
		Text: i18n.Render(i18n.MsgDeliverySet, lang, map[string]string{
			"address":  address,
			"fee":      utils.FormatMoney(summary.DeliveryFee),
			"currency": s.settings.Currency,
		}),
		Keyboard: s.cartMenu(lang),
	}
}

func (s *Service) handleConfirmOrder(ctx context.Context, customer *customermodel.Customer, lang string) Reply {
	order, err := s.orders.Create(ctx, customer, &ordermodel.CreateOrderRequest{})
	if err != nil {
		switch {
		case errors.Is(err, ordermodel.ErrCartEmpty):
			return Reply{Text: i18n.Render(i18n.MsgCartEmpty, lang, nil), Keyboard: s.mainMenu(lang)}
		case errors.Is(err, ordermodel.ErrMissingAddress):
			s.setState(ctx, customer.TelegramID, &conversationState{Step: stepAwaitingAddress})
			return Reply{Text: i18n.Render(i18n.MsgAskAddress, lang, nil)}
		}
		logger.Error("order creation failed", err)
		return s.errorReply(lang)
	}

	return Reply{
		Text: i18n.Render(i18n.MsgOrderPlaced, lang, map[string]string{
			"number":   order.OrderNumber,
			"total":    utils.FormatMoney(order.Total),
			"currency": s.settings.Currency,
		}),
		Keyboard: s.mainMenu(lang),
	}
}

func (s *Service) handleMyOrders(ctx context.Context, customer *customermodel.Customer, lang string) Reply {
	orders, err := s.orders.ListByCustomer(ctx, customer.ID, 5)
	if err != nil {
		logger.Error("order listing failed", err)
		return s.errorReply(lang)
	}

	if len(orders) == 0 {
		return Reply{Text: i18n.Render(i18n.MsgNoOrders, lang, nil), Keyboard: s.mainMenu(lang)}
	}

	var lines []string
	for i := range orders {
		o := &orders[i]
		lines = append(lines, fmt.Sprintf("%s — %s %s (%s)",
			o.OrderNumber, utils.FormatMoney(o.Total), s.settings.Currency, o.Status))
	}

	return Reply{
		Text:     i18n.Render(i18n.MsgMyOrders, lang, map[string]string{"lines": strings.Join(lines, "\n")}),
		Keyboard: s.mainMenu(lang),
	}
}

func summaryLines(summary *cartmodel.Summary) string {
	var lines []string
	for _, l := range summary.Lines {
		lines = append(lines, fmt.Sprintf("%dx %s — %s", l.Quantity, l.Name, utils.FormatMoney(l.LineTotal)))
	}
	return strings.Join(lines, "\n")
}

func (s *Service) mainMenu(lang string) [][]telegram.Button {
	return [][]telegram.Button{
		{
			{Label: i18n.Render(i18n.BtnMenu, lang, nil), Action: "menu"},
			{Label: i18n.Render(i18n.BtnCart, lang, nil), Action: "cart"},
		},
		{
			{Label: i18n.Render(i18n.BtnMyOrders, lang, nil), Action: "myorders"},
			{Label: i18n.Render(i18n.BtnLanguage, lang, nil), Action: languageToggle(lang)},
		},
	}
}

func (s *Service) cartMenu(lang string) [][]telegram.Button {
	return [][]telegram.Button{
		{
			{Label: i18n.Render(i18n.BtnCheckout, lang, nil), Action: "checkout"},
			{Label: i18n.Render(i18n.BtnClear, lang, nil), Action: "clear"},
		},
		{
			{Label: i18n.Render(i18n.BtnPickup, lang, nil), Action: "pickup"},
			{Label: i18n.Render(i18n.BtnDelivery, lang, nil), Action: "delivery"},
		},
		{
			{Label: i18n.Render(i18n.BtnMenu, lang, nil), Action: "menu"},
		},
	}
}

func languageToggle(lang string) string {
	if lang == i18n.LangHebrew {
		return "lang:" + i18n.LangEnglish
	}
	return "lang:" + i18n.LangHebrew
}

func (s *Service) errorReply(lang string) Reply {
	return Reply{Text: i18n.Render(i18n.MsgSomethingWrong, lang, nil)}
}

func stateKey(chatID int64) string {
	return fmt.Sprintf("bot:state:%d", chatID)
}

func (s *Service) getState(ctx context.Context, chatID int64) (*conversationState, bool) {
	var state conversationState
	found, err := s.state.Get(ctx, stateKey(chatID), &state)
	if err != nil {
		logger.Error("conversation state read failed", err)
		return nil, false
	}
	return &state, found
}

func (s *Service) setState(ctx context.Context, chatID int64, state *conversationState) {
	if err := s.state.Set(ctx, stateKey(chatID), state, stateTTL); err != nil {
		logger.Error("conversation state write failed", err)
	}
}

func (s *Service) clearState(ctx context.Context, chatID int64) {
	if err := s.state.Delete(ctx, stateKey(chatID)); err != nil {
		logger.Error("conversation state delete failed", err)
	}
}
