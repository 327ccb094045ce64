// internal/bot/admin.go
package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/shopbot/internal/messages"
	"github.com/javajoker/shopbot/internal/models"
	"github.com/javajoker/shopbot/internal/services"
)

// MarkDelivered moves an order to DELIVERED on behalf of actorID and pushes
// the review invitation to the customer. The chat button and the admin HTTP
// API both go through here.
func (b *Bot) MarkDelivered(ctx context.Context, actorID, orderID int64) (*models.Order, error) {
	if !b.notifier.IsAdmin(actorID) {
		return nil, fmt.Errorf("user %d: %w", actorID, services.ErrUnauthorized)
	}

	order, err := b.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := b.orders.SetOrderStatus(ctx, orderID, models.OrderStatusDelivered); err != nil {
		return order, err
	}
	order.Status = models.OrderStatusDelivered

	logrus.WithFields(logrus.Fields{
		"order_id": order.ID,
		"user_id":  order.UserID,
	}).Info("Order delivered")

	b.notifier.Push(deliveryNoticeReply(order))
	return order, nil
}

func (b *Bot) markDelivered(ctx context.Context, ev Event, orderID int64) (ack, error) {
	_, err := b.MarkDelivered(ctx, ev.UserID, orderID)
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return alert(messages.T(messages.KeyAdminForbidden)), nil
	case errors.Is(err, services.ErrNotFound):
		return alert(messages.T(messages.KeyAdminOrderNotFound)), nil
	case errors.Is(err, services.ErrInvalidTransition):
		return alert(messages.T(messages.KeyAdminAlreadyDelivered, orderID)), nil
	case err != nil:
		return ack{}, err
	}

	if err := b.notifier.Reply(ctx, editText(ev, messages.T(messages.KeyAdminMarkedDelivered, orderID))); err != nil {
		return ack{}, err
	}
	return ack{text: messages.T(messages.KeyAdminAcknowledged)}, nil
}
