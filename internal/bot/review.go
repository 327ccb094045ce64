// internal/bot/review.go
package bot

import (
	"context"
	"errors"

	"github.com/javajoker/shopbot/internal/messages"
	"github.com/javajoker/shopbot/internal/services"
	"github.com/javajoker/shopbot/internal/session"
	"github.com/javajoker/shopbot/internal/utils"
)

type reviewTextInput struct {
	Text string `validate:"trimmed_min=3,max=2000"`
}

func (b *Bot) startReview(ctx context.Context, ev Event, orderID int64) (ack, error) {
	if err := b.resetFlow(ctx, ev); err != nil {
		return ack{}, err
	}

	products, err := b.reviews.EligibleProducts(ctx, ev.UserID, orderID)
	if err != nil {
		return ack{}, err
	}
	if len(products) == 0 {
		return alert(messages.T(messages.KeyReviewNothingToRate)), nil
	}
	return ack{}, b.notifier.Reply(ctx, reviewPickReply(ev.ChatID, orderID, products))
}

func (b *Bot) pickReviewProduct(ctx context.Context, ev Event, orderID, productID int64) (ack, error) {
	ok, err := b.reviews.IsEligible(ctx, ev.UserID, orderID, productID)
	if err != nil {
		return ack{}, err
	}
	if !ok {
		return alert(messages.T(messages.KeyReviewNotEligible)), nil
	}
	return ack{}, b.notifier.Reply(ctx, ratingReply(ev.ChatID, orderID, productID))
}

// pickRating checks eligibility again; a concurrent submission may have
// landed since the product was listed.
func (b *Bot) pickRating(ctx context.Context, ev Event, orderID, productID int64, rating int) (ack, error) {
	if rating < 1 || rating > 5 {
		return alert(messages.T(messages.KeyReviewNotEligible)), nil
	}

	ok, err := b.reviews.IsEligible(ctx, ev.UserID, orderID, productID)
	if err != nil {
		return ack{}, err
	}
	if !ok {
		return alert(messages.T(messages.KeyReviewNotEligible)), nil
	}

	step := session.ReviewText{OrderID: orderID, ProductID: productID, Rating: rating}
	if err := b.setStep(ctx, ev, step); err != nil {
		return ack{}, err
	}
	return ack{}, b.reply(ctx, ev, messages.T(messages.KeyReviewAskText))
}

func (b *Bot) enterReviewText(ctx context.Context, ev Event, step session.ReviewText, text string) error {
	if err := utils.ValidateStruct(reviewTextInput{Text: text}); err != nil {
		return b.reply(ctx, ev, lengthMessage(err, messages.KeyReviewTextShort, messages.KeyReviewTextLong))
	}

	_, err := b.reviews.AddReview(ctx, services.NewReview{
		UserID:    ev.UserID,
		ProductID: step.ProductID,
		OrderID:   step.OrderID,
		Rating:    step.Rating,
		Text:      text,
	})
	switch {
	case errors.Is(err, services.ErrDuplicateReview):
		if err := b.resetFlow(ctx, ev); err != nil {
			return err
		}
		return b.replyWithMenu(ctx, ev, messages.T(messages.KeyReviewDuplicate))
	case errors.Is(err, services.ErrInvalidInput):
		return b.reply(ctx, ev, messages.T(messages.KeyReviewTextShort))
	case err != nil:
		return err
	}

	if err := b.resetFlow(ctx, ev); err != nil {
		return err
	}
	eventLogger(ev).WithField("order_id", step.OrderID).WithField("product_id", step.ProductID).Info("Review saved")
	return b.replyWithMenu(ctx, ev, messages.T(messages.KeyReviewSaved))
}
