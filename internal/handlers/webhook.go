// internal/handlers/webhook.go
package handlers

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/shopbot/internal/bot"
	"github.com/javajoker/shopbot/internal/utils"
)

// Submitter accepts events for asynchronous handling.
type Submitter interface {
	Submit(ctx context.Context, ev bot.Event) error
}

type WebhookHandler struct {
	secret    string
	submitter Submitter
}

func NewWebhookHandler(secret string, submitter Submitter) *WebhookHandler {
	return &WebhookHandler{
		secret:    secret,
		submitter: submitter,
	}
}

// POST /telegram/webhook/:secret
//
// Telegram retries on any non-2xx status, so only a dispatcher shutdown is
// reported as a failure.
func (h *WebhookHandler) Receive(c *gin.Context) {
	if subtle.ConstantTimeCompare([]byte(c.Param("secret")), []byte(h.secret)) != 1 {
		utils.NotFoundResponse(c, "Webhook")
		return
	}

	var update tgbotapi.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.BadRequestResponse(c, "Invalid update payload", nil)
		return
	}

	ev, ok := bot.EventFromUpdate(update)
	if !ok {
		c.Status(http.StatusOK)
		return
	}

	if err := h.submitter.Submit(c.Request.Context(), ev); err != nil {
		logrus.WithError(err).WithField("update_id", update.UpdateID).Warn("Failed to submit webhook update")
		if errors.Is(err, bot.ErrDispatcherStopped) {
			utils.ErrorResponse(c, http.StatusServiceUnavailable, "UNAVAILABLE", "Bot is shutting down", nil)
			return
		}
	}
	c.Status(http.StatusOK)
}
