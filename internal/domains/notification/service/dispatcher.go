package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"

	"orderbot-backend/internal/domains/notification/model"
	ordermodel "orderbot-backend/internal/domains/order/model"
	"orderbot-backend/internal/shared"
	"orderbot-backend/internal/shared/i18n"
	"orderbot-backend/internal/shared/utils"
)

// TaskEnqueuer is the asynq client surface the dispatcher needs.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type dispatcher struct {
	client      TaskEnqueuer
	adminChatID int64
	currency    string
}

func NewDispatcher(client TaskEnqueuer, adminChatID int64, currency string) DispatcherInterface {
	return &dispatcher{
		client:      client,
		adminChatID: adminChatID,
		currency:    currency,
	}
}

func (d *dispatcher) enqueue(ctx context.Context, msg *model.Message) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}

	task := asynq.NewTask(shared.TypeSendNotification, payload)
	_, err = d.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueNotifications),
		asynq.MaxRetry(5),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue notification: %w", err)
	}

	return nil
}

func (d *dispatcher) NotifyNewOrder(ctx context.Context, order *ordermodel.Detail) error {
	delivery := "Pickup"
	if order.DeliveryAddress != nil {
		delivery = "Delivery: " + *order.DeliveryAddress
	}

	// Admin messages are not localized; the admin catalog entry exists
	// only in English.
	return d.enqueue(ctx, &model.Message{
		ChatID:   d.adminChatID,
		Key:      i18n.MsgNewOrderAdmin,
		Language: i18n.LangEnglish,
		Params: map[string]string{
			"number":   order.OrderNumber,
			"name":     order.CustomerName,
			"phone":    order.CustomerPhone,
			"lines":    itemLines(order.Items),
			"total":    utils.FormatMoney(order.Total),
			"currency": d.currency,
			"delivery": delivery,
		},
	})
}

func (d *dispatcher) NotifyStatusChange(ctx context.Context, order *ordermodel.Detail, to ordermodel.Status) error {
	key := i18n.MsgOrderStatusChanged
	switch {
	case to == ordermodel.StatusCancelled:
		key = i18n.MsgOrderCancelled
	case to == ordermodel.StatusReady && order.DeliveryAddress == nil:
		key = i18n.MsgOrderReadyPickup
	}

	return d.enqueue(ctx, &model.Message{
		ChatID:   order.CustomerChatID,
		Key:      key,
		Language: order.CustomerLanguage,
		Params: map[string]string{
			"number": order.OrderNumber,
			"status": i18n.StatusName(string(to), order.CustomerLanguage),
		},
	})
}

func (d *dispatcher) NotifyDailySummary(ctx context.Context, totals *ordermodel.DailyTotals) error {
	return d.enqueue(ctx, &model.Message{
		ChatID:   d.adminChatID,
		Key:      i18n.MsgDailySummaryAdmin,
		Language: i18n.LangEnglish,
		Params: map[string]string{
			"date":     totals.Date.Format("2006-01-02"),
			"count":    fmt.Sprintf("%d", totals.OrderCount),
			"total":    utils.FormatMoney(totals.Revenue),
			"currency": d.currency,
		},
	})
}

func itemLines(items []ordermodel.OrderItem) string {
	var b strings.Builder
	for i, item := range items {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%dx %s", item.Quantity, item.ProductName)
	}
	return b.String()
}
