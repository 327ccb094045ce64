// internal/bot/conversation.go
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/shopbot/internal/chat"
	"github.com/javajoker/shopbot/internal/messages"
	"github.com/javajoker/shopbot/internal/services"
	"github.com/javajoker/shopbot/internal/session"
)

const CommandStart = "/start"

// Bot is the per-user conversation state machine. It owns no state itself;
// steps live in the injected session store.
type Bot struct {
	catalog  *services.CatalogService
	carts    *services.CartService
	orders   *services.OrderService
	reviews  *services.ReviewService
	notifier *services.NotificationService
	sessions session.Store
}

type Deps struct {
	Catalog  *services.CatalogService
	Carts    *services.CartService
	Orders   *services.OrderService
	Reviews  *services.ReviewService
	Notifier *services.NotificationService
	Sessions session.Store
}

func New(deps Deps) *Bot {
	return &Bot{
		catalog:  deps.Catalog,
		carts:    deps.Carts,
		orders:   deps.Orders,
		reviews:  deps.Reviews,
		notifier: deps.Notifier,
		sessions: deps.Sessions,
	}
}

// ack is the answer to a button press: empty text just stops the spinner.
type ack struct {
	text  string
	alert bool
}

func alert(text string) ack {
	return ack{text: text, alert: true}
}

// HandleEvent routes one event. Validation problems are answered in chat;
// the returned error is only for backend failures, after the user has
// already been shown the generic failure notice.
func (b *Bot) HandleEvent(ctx context.Context, ev Event) error {
	log := eventLogger(ev)

	var err error
	if ev.IsCallback() {
		err = b.handleCallback(ctx, ev)
	} else {
		err = b.handleMessage(ctx, ev)
	}
	if err != nil {
		log.WithError(err).Error("Failed to handle event")
	}
	return err
}

// Throttled tells the user an event was dropped by the rate limiter, so a
// typed quantity or address is resent rather than lost.
func (b *Bot) Throttled(ctx context.Context, ev Event) {
	eventLogger(ev).Warn("Event dropped by rate limiter")
	if ev.IsCallback() {
		b.notifier.Answer(ctx, ev.CallbackID, messages.T(messages.KeyRateLimited), false)
		return
	}
	if err := b.reply(ctx, ev, messages.T(messages.KeyRateLimited)); err != nil {
		eventLogger(ev).WithError(err).Warn("Failed to send rate limit notice")
	}
}

func (b *Bot) handleCallback(ctx context.Context, ev Event) error {
	action, err := ParseAction(ev.Data)
	if err != nil {
		eventLogger(ev).WithField("data", ev.Data).Debug("Ignoring unknown callback")
		b.notifier.Answer(ctx, ev.CallbackID, "", false)
		return nil
	}

	var reply ack
	switch action.Kind {
	case ActionCategory:
		reply, err = b.showCategory(ctx, ev, action.Category)
	case ActionCategoriesBack:
		reply, err = b.backToCategories(ctx, ev)
	case ActionProduct:
		reply, err = b.showProduct(ctx, ev, action.ProductID)
	case ActionCartAdd:
		reply, err = b.askQuantity(ctx, ev, action.ProductID)
	case ActionCartClear:
		reply, err = b.clearCart(ctx, ev)
	case ActionCheckoutStart:
		reply, err = b.startCheckout(ctx, ev)
	case ActionMarkDelivered:
		reply, err = b.markDelivered(ctx, ev, action.OrderID)
	case ActionReviewStart:
		reply, err = b.startReview(ctx, ev, action.OrderID)
	case ActionReviewPick:
		reply, err = b.pickReviewProduct(ctx, ev, action.OrderID, action.ProductID)
	case ActionReviewRate:
		reply, err = b.pickRating(ctx, ev, action.OrderID, action.ProductID, action.Rating)
	}

	if err != nil {
		reply = alert(messages.T(messages.KeyGenericError))
	}
	b.notifier.Answer(ctx, ev.CallbackID, reply.text, reply.alert)
	return err
}

func (b *Bot) handleMessage(ctx context.Context, ev Event) error {
	text := ev.TrimmedText()

	var err error
	switch {
	case isStartCommand(text):
		err = b.start(ctx, ev)
	case text == messages.T(messages.KeyMenuCatalog):
		err = b.showCategories(ctx, ev)
	case text == messages.T(messages.KeyMenuCart):
		err = b.showCart(ctx, ev)
	default:
		err = b.handleStepInput(ctx, ev, text)
	}

	if err != nil {
		if sendErr := b.reply(ctx, ev, messages.T(messages.KeyGenericError)); sendErr != nil {
			return errors.Join(err, sendErr)
		}
	}
	return err
}

func (b *Bot) handleStepInput(ctx context.Context, ev Event, text string) error {
	step, err := b.sessions.Get(ctx, ev.UserID)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	switch s := step.(type) {
	case nil:
		// no flow in progress, free text is ignored
		return nil
	case session.AskQuantity:
		return b.enterQuantity(ctx, ev, s, text)
	case session.CheckoutName:
		return b.enterName(ctx, ev, text)
	case session.CheckoutPhone:
		return b.enterPhone(ctx, ev, s, text)
	case session.CheckoutAddress:
		return b.enterAddress(ctx, ev, s, text)
	case session.ReviewText:
		return b.enterReviewText(ctx, ev, s, text)
	default:
		eventLogger(ev).WithField("step", step.StepName()).Warn("Unhandled session step, clearing")
		return b.sessions.Clear(ctx, ev.UserID)
	}
}

// isStartCommand accepts "/start", "/start payload" and "/start@botname".
func isStartCommand(text string) bool {
	if !strings.HasPrefix(text, CommandStart) {
		return false
	}
	rest := text[len(CommandStart):]
	return rest == "" || rest[0] == ' ' || rest[0] == '@'
}

func (b *Bot) start(ctx context.Context, ev Event) error {
	if err := b.resetFlow(ctx, ev); err != nil {
		return err
	}
	return b.notifier.Reply(ctx, startReply(ev.ChatID))
}

// resetFlow drops any half finished step before a new top level flow.
func (b *Bot) resetFlow(ctx context.Context, ev Event) error {
	if err := b.sessions.Clear(ctx, ev.UserID); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

func (b *Bot) setStep(ctx context.Context, ev Event, step session.Step) error {
	if err := b.sessions.Set(ctx, ev.UserID, step); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	eventLogger(ev).WithField("step", step.StepName()).Debug("Session step set")
	return nil
}

func (b *Bot) reply(ctx context.Context, ev Event, text string) error {
	return b.notifier.Reply(ctx, chat.Reply{ChatID: ev.ChatID, Text: text})
}

func (b *Bot) replyWithMenu(ctx context.Context, ev Event, text string) error {
	return b.notifier.Reply(ctx, chat.Reply{ChatID: ev.ChatID, Text: text, MainMenu: true})
}

func eventLogger(ev Event) *logrus.Entry {
	fields := logrus.Fields{
		"user_id": ev.UserID,
	}
	if ev.TraceID != "" {
		fields["trace_id"] = ev.TraceID
	}
	if ev.Data != "" {
		fields["action"] = ev.Data
	}
	return logrus.WithFields(fields)
}
