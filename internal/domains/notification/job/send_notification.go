package job

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"orderbot-backend/internal/domains/notification/model"
	"orderbot-backend/internal/infrastructure/telegram"
	"orderbot-backend/internal/shared"
	"orderbot-backend/internal/shared/i18n"
	"orderbot-backend/internal/shared/utils"
	"orderbot-backend/pkg/logger"
)

// Register adds the notification handlers to the worker mux.
func Register(mux *asynq.ServeMux, sender telegram.Sender) {
	mux.Handle(shared.TypeSendNotification, NewSendNotificationHandler(sender))
}

// SendNotificationHandler delivers queued messages through the Telegram
// sender. Failures return the error so asynq retries with backoff.
type SendNotificationHandler struct {
	sender telegram.Sender
}

func NewSendNotificationHandler(sender telegram.Sender) *SendNotificationHandler {
	return &SendNotificationHandler{sender: sender}
}

func (h *SendNotificationHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var msg model.Message
	if err := utils.UnmarshalTask(t, &msg); err != nil {
		// A payload that cannot decode will never succeed.
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	text := i18n.Render(msg.Key, msg.Language, msg.Params)

	if err := h.sender.SendMessage(ctx, msg.ChatID, text, nil); err != nil {
		logger.Error("notification delivery failed", err)
		return err
	}

	logger.Info("notification delivered", map[string]interface{}{
		"chat_id": msg.ChatID,
		"key":     msg.Key,
	})

	return nil
}
