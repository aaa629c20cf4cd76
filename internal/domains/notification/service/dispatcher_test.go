package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderbot-backend/internal/domains/notification/model"
	ordermodel "orderbot-backend/internal/domains/order/model"
	"orderbot-backend/internal/shared"
	"orderbot-backend/internal/shared/i18n"
)

type capturingEnqueuer struct {
	tasks []*asynq.Task
}

func (c *capturingEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	c.tasks = append(c.tasks, task)
	return &asynq.TaskInfo{}, nil
}

func (c *capturingEnqueuer) lastMessage(t *testing.T) model.Message {
	t.Helper()
	require.NotEmpty(t, c.tasks)

	var msg model.Message
	require.NoError(t, json.Unmarshal(c.tasks[len(c.tasks)-1].Payload(), &msg))
	return msg
}

func strPtr(s string) *string { return &s }

func testDetail() *ordermodel.Detail {
	return &ordermodel.Detail{
		Order: ordermodel.Order{
			OrderNumber: "ORD-20260830-0007",
			Total:       decimal.RequireFromString("70.00"),
			Status:      ordermodel.StatusPending,
			Items: []ordermodel.OrderItem{
				{ProductName: "Kubaneh", Quantity: 2},
				{ProductName: "Hilbeh", Quantity: 1},
			},
		},
		CustomerName:     "Dana Levi",
		CustomerPhone:    "+972501234567",
		CustomerChatID:   4242,
		CustomerLanguage: "he",
	}
}

func TestNotifyNewOrderTargetsAdmin(t *testing.T) {
	enq := &capturingEnqueuer{}
	d := NewDispatcher(enq, 999, "ILS")

	require.NoError(t, d.NotifyNewOrder(context.Background(), testDetail()))

	require.Len(t, enq.tasks, 1)
	assert.Equal(t, shared.TypeSendNotification, enq.tasks[0].Type())

	msg := enq.lastMessage(t)
	assert.Equal(t, int64(999), msg.ChatID)
	assert.Equal(t, i18n.MsgNewOrderAdmin, msg.Key)
	assert.Equal(t, "ORD-20260830-0007", msg.Params["number"])
	assert.Equal(t, "2x Kubaneh\n1x Hilbeh", msg.Params["lines"])
	assert.Equal(t, "70.00", msg.Params["total"])
}

func TestNotifyStatusChangePicksMessageKey(t *testing.T) {
	enq := &capturingEnqueuer{}
	d := NewDispatcher(enq, 999, "ILS")
	ctx := context.Background()

	detail := testDetail()

	require.NoError(t, d.NotifyStatusChange(ctx, detail, ordermodel.StatusConfirmed))
	msg := enq.lastMessage(t)
	assert.Equal(t, i18n.MsgOrderStatusChanged, msg.Key)
	// The status name is localized to the customer's language.
	assert.Equal(t, "אושרה", msg.Params["status"])

	// Ready on a pickup order gets the dedicated message.
	require.NoError(t, d.NotifyStatusChange(ctx, detail, ordermodel.StatusReady))
	assert.Equal(t, i18n.MsgOrderReadyPickup, enq.lastMessage(t).Key)

	// Ready on a delivery order stays generic.
	detail.DeliveryAddress = strPtr("10 Herzl St")
	require.NoError(t, d.NotifyStatusChange(ctx, detail, ordermodel.StatusReady))
	assert.Equal(t, i18n.MsgOrderStatusChanged, enq.lastMessage(t).Key)

	require.NoError(t, d.NotifyStatusChange(ctx, detail, ordermodel.StatusCancelled))
	assert.Equal(t, i18n.MsgOrderCancelled, enq.lastMessage(t).Key)

	// Customer messages go to the customer in their language.
	msg = enq.lastMessage(t)
	assert.Equal(t, int64(4242), msg.ChatID)
	assert.Equal(t, "he", msg.Language)
}

func TestNotifyDailySummary(t *testing.T) {
	enq := &capturingEnqueuer{}
	d := NewDispatcher(enq, 999, "ILS")

	totals := &ordermodel.DailyTotals{
		Date:       time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
		OrderCount: 12,
		Revenue:    decimal.RequireFromString("840.50"),
	}
	require.NoError(t, d.NotifyDailySummary(context.Background(), totals))

	msg := enq.lastMessage(t)
	assert.Equal(t, i18n.MsgDailySummaryAdmin, msg.Key)
	assert.Equal(t, "2026-08-29", msg.Params["date"])
	assert.Equal(t, "12", msg.Params["count"])
	assert.Equal(t, "840.50", msg.Params["total"])
}
