package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"orderbot-backend/internal/bot"
	"orderbot-backend/internal/shared/i18n"
	"orderbot-backend/pkg/container"
	"orderbot-backend/pkg/logger"
)

// update is the subset of the Telegram Update payload the bot consumes.
type update struct {
	UpdateID int64 `json:"update_id"`
	Message  *struct {
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
		Text string `json:"text"`
	} `json:"message"`
	CallbackQuery *struct {
		Message *struct {
			Chat struct {
				ID int64 `json:"id"`
			} `json:"chat"`
		} `json:"message"`
		Data string `json:"data"`
	} `json:"callback_query"`
}

type webhookHandler struct {
	c *container.Container
}

func newWebhookHandler(c *container.Container) *webhookHandler {
	return &webhookHandler{c: c}
}

// Handle processes POST /telegram/webhook. It always answers 200 so
// Telegram does not re-deliver updates we have already consumed; errors
// are logged and swallowed.
func (h *webhookHandler) Handle(ctx *gin.Context) {
	secret := h.c.Config.Telegram.WebhookSecret
	if secret != "" && ctx.GetHeader("X-Telegram-Bot-Api-Secret-Token") != secret {
		ctx.Status(http.StatusForbidden)
		return
	}

	var u update
	if err := ctx.ShouldBindJSON(&u); err != nil {
		logger.Error("webhook payload decode failed", err)
		ctx.Status(http.StatusOK)
		return
	}

	intent, ok := parseUpdate(&u)
	if !ok {
		ctx.Status(http.StatusOK)
		return
	}

	reqCtx := ctx.Request.Context()

	if !h.c.RateLimiter.Allow(reqCtx, intent.ChatID) {
		text := i18n.Render(i18n.MsgRateLimited, h.c.Config.Business.DefaultLanguage, nil)
		if err := h.c.Sender.SendMessage(reqCtx, intent.ChatID, text, nil); err != nil {
			logger.Error("rate limit reply failed", err)
		}
		ctx.Status(http.StatusOK)
		return
	}

	reply := h.c.Bot.Handle(reqCtx, intent)
	if reply.Text != "" {
		if err := h.c.Sender.SendMessage(reqCtx, intent.ChatID, reply.Text, reply.Keyboard); err != nil {
			logger.Error("reply delivery failed", err)
		}
	}

	ctx.Status(http.StatusOK)
}

func parseUpdate(u *update) (bot.Intent, bool) {
	switch {
	case u.Message != nil:
		return bot.ParseText(u.Message.Chat.ID, u.Message.Text), true
	case u.CallbackQuery != nil && u.CallbackQuery.Message != nil:
		return bot.ParseCallback(u.CallbackQuery.Message.Chat.ID, u.CallbackQuery.Data), true
	}
	return bot.Intent{}, false
}
