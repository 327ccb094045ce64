// internal/bot/checkout.go
package bot

import (
	"context"
	"errors"

	"github.com/javajoker/shopbot/internal/messages"
	"github.com/javajoker/shopbot/internal/services"
	"github.com/javajoker/shopbot/internal/session"
	"github.com/javajoker/shopbot/internal/utils"
)

// Bounds match services.CheckoutDetails so a field accepted here is
// accepted at order creation.
type nameInput struct {
	FullName string `validate:"trimmed_min=2,max=255"`
}

type phoneInput struct {
	Phone string `validate:"trimmed_min=7,max=32"`
}

type addressInput struct {
	Address string `validate:"trimmed_min=5,max=1000"`
}

func (b *Bot) startCheckout(ctx context.Context, ev Event) (ack, error) {
	cart, err := b.carts.GetCart(ctx, ev.UserID)
	if err != nil {
		return ack{}, err
	}
	if cart.IsEmpty() {
		return alert(messages.T(messages.KeyCheckoutEmptyAlert)), nil
	}

	if err := b.setStep(ctx, ev, session.CheckoutName{}); err != nil {
		return ack{}, err
	}
	return ack{}, b.reply(ctx, ev, messages.T(messages.KeyCheckoutAskName))
}

func (b *Bot) enterName(ctx context.Context, ev Event, text string) error {
	if err := utils.ValidateStruct(nameInput{FullName: text}); err != nil {
		return b.reply(ctx, ev, lengthMessage(err, messages.KeyCheckoutNameShort, messages.KeyCheckoutNameLong))
	}
	if err := b.setStep(ctx, ev, session.CheckoutPhone{FullName: text}); err != nil {
		return err
	}
	return b.reply(ctx, ev, messages.T(messages.KeyCheckoutAskPhone))
}

func (b *Bot) enterPhone(ctx context.Context, ev Event, step session.CheckoutPhone, text string) error {
	if err := utils.ValidateStruct(phoneInput{Phone: text}); err != nil {
		return b.reply(ctx, ev, lengthMessage(err, messages.KeyCheckoutPhoneInvalid, messages.KeyCheckoutPhoneLong))
	}
	next := session.CheckoutAddress{FullName: step.FullName, Phone: text}
	if err := b.setStep(ctx, ev, next); err != nil {
		return err
	}
	return b.reply(ctx, ev, messages.T(messages.KeyCheckoutAskAddress))
}

// enterAddress completes checkout. On a backend failure the step is kept so
// the user can resend the address.
func (b *Bot) enterAddress(ctx context.Context, ev Event, step session.CheckoutAddress, text string) error {
	if err := utils.ValidateStruct(addressInput{Address: text}); err != nil {
		return b.reply(ctx, ev, lengthMessage(err, messages.KeyCheckoutAddressShort, messages.KeyCheckoutAddressLong))
	}

	order, err := b.orders.CreateOrderFromCart(ctx, ev.UserID, services.CheckoutDetails{
		FullName: step.FullName,
		Phone:    step.Phone,
		Address:  text,
	})
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		if err := b.resetFlow(ctx, ev); err != nil {
			return err
		}
		return b.replyWithMenu(ctx, ev, messages.T(messages.KeyCheckoutEmptyCart))
	case errors.Is(err, services.ErrInvalidInput):
		// stored name or phone no longer passes, collect them again
		eventLogger(ev).WithError(err).Warn("Checkout details rejected, restarting from name")
		if err := b.setStep(ctx, ev, session.CheckoutName{}); err != nil {
			return err
		}
		return b.reply(ctx, ev, messages.T(messages.KeyCheckoutDetailsInvalid))
	case err != nil:
		return err
	}

	if err := b.resetFlow(ctx, ev); err != nil {
		return err
	}
	eventLogger(ev).WithField("order_id", order.ID).WithField("total", order.Total()).Info("Order created")

	b.notifier.NotifyAdmin(adminOrderReply(order, ev.Username))
	return b.replyWithMenu(ctx, ev, messages.T(messages.KeyCheckoutOrderAccepted, order.ID))
}

// lengthMessage picks the too long text when err came from a max bound.
func lengthMessage(err error, shortKey, longKey string) string {
	if utils.FailedOn(err, "max") {
		return messages.T(longKey)
	}
	return messages.T(shortKey)
}
