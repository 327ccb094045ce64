// internal/bot/cart.go
package bot

import (
	"context"
	"errors"
	"strconv"

	"github.com/javajoker/shopbot/internal/messages"
	"github.com/javajoker/shopbot/internal/services"
	"github.com/javajoker/shopbot/internal/session"
	"github.com/javajoker/shopbot/internal/utils"
)

type quantityInput struct {
	Qty int `validate:"min=1,max=999"`
}

func (b *Bot) showCart(ctx context.Context, ev Event) error {
	if err := b.resetFlow(ctx, ev); err != nil {
		return err
	}

	cart, err := b.carts.GetCart(ctx, ev.UserID)
	if err != nil {
		return err
	}
	if cart.IsEmpty() {
		return b.replyWithMenu(ctx, ev, messages.T(messages.KeyCartEmpty))
	}
	return b.notifier.Reply(ctx, cartReply(ev.ChatID, cart))
}

func (b *Bot) askQuantity(ctx context.Context, ev Event, productID int64) (ack, error) {
	if _, err := b.catalog.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return alert(messages.T(messages.KeyProductNotFound)), nil
		}
		return ack{}, err
	}

	if err := b.setStep(ctx, ev, session.AskQuantity{ProductID: productID}); err != nil {
		return ack{}, err
	}
	return ack{}, b.reply(ctx, ev, messages.T(messages.KeyCartAskQuantity))
}

func (b *Bot) enterQuantity(ctx context.Context, ev Event, step session.AskQuantity, text string) error {
	qty, ok := parseQuantity(text)
	if !ok {
		return b.reply(ctx, ev, messages.T(messages.KeyCartInvalidQuantity))
	}

	err := b.carts.AddItem(ctx, ev.UserID, step.ProductID, qty)
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return b.reply(ctx, ev, messages.T(messages.KeyCartInvalidQuantity))
	case errors.Is(err, services.ErrNotFound):
		if err := b.resetFlow(ctx, ev); err != nil {
			return err
		}
		return b.replyWithMenu(ctx, ev, messages.T(messages.KeyProductNotFound))
	case err != nil:
		return err
	}

	if err := b.resetFlow(ctx, ev); err != nil {
		return err
	}
	eventLogger(ev).WithField("product_id", step.ProductID).WithField("qty", qty).Info("Added to cart")
	return b.replyWithMenu(ctx, ev, messages.T(messages.KeyCartAdded))
}

// parseQuantity accepts plain decimal digits within the cart bounds.
func parseQuantity(text string) (int, bool) {
	n, err := strconv.ParseUint(text, 10, 32)
	if err != nil {
		return 0, false
	}
	if err := utils.ValidateStruct(quantityInput{Qty: int(n)}); err != nil {
		return 0, false
	}
	return int(n), true
}

func (b *Bot) clearCart(ctx context.Context, ev Event) (ack, error) {
	if err := b.resetFlow(ctx, ev); err != nil {
		return ack{}, err
	}
	if err := b.carts.ClearCart(ctx, ev.UserID); err != nil {
		return ack{}, err
	}
	return ack{}, b.notifier.Reply(ctx, editText(ev, messages.T(messages.KeyCartCleared)))
}
