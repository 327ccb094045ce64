// internal/bot/catalog.go
package bot

import (
	"context"
	"errors"

	"github.com/javajoker/shopbot/internal/messages"
	"github.com/javajoker/shopbot/internal/services"
)

// showCategories answers the Catalog menu button with a fresh message.
func (b *Bot) showCategories(ctx context.Context, ev Event) error {
	if err := b.resetFlow(ctx, ev); err != nil {
		return err
	}

	categories, err := b.catalog.ListCategories(ctx)
	if err != nil {
		return err
	}
	if len(categories) == 0 {
		return b.reply(ctx, ev, messages.T(messages.KeyCatalogEmpty))
	}
	return b.notifier.Reply(ctx, categoriesReply(ev.ChatID, categories, 0))
}

// backToCategories redraws the category picker in place.
func (b *Bot) backToCategories(ctx context.Context, ev Event) (ack, error) {
	categories, err := b.catalog.ListCategories(ctx)
	if err != nil {
		return ack{}, err
	}
	if len(categories) == 0 {
		return ack{}, b.notifier.Reply(ctx, editText(ev, messages.T(messages.KeyCatalogEmpty)))
	}
	return ack{}, b.notifier.Reply(ctx, categoriesReply(ev.ChatID, categories, ev.MessageID))
}

func (b *Bot) showCategory(ctx context.Context, ev Event, category string) (ack, error) {
	products, err := b.catalog.ListProductsByCategory(ctx, category)
	if err != nil {
		return ack{}, err
	}
	if len(products) == 0 {
		return ack{}, b.notifier.Reply(ctx, editText(ev, messages.T(messages.KeyCategoryEmpty, category)))
	}
	return ack{}, b.notifier.Reply(ctx, categoryReply(ev.ChatID, category, products, ev.MessageID))
}

func (b *Bot) showProduct(ctx context.Context, ev Event, productID int64) (ack, error) {
	product, err := b.catalog.GetProduct(ctx, productID)
	if errors.Is(err, services.ErrNotFound) {
		return alert(messages.T(messages.KeyProductNotFound)), nil
	}
	if err != nil {
		return ack{}, err
	}

	reviews, err := b.catalog.RecentReviews(ctx, productID, services.ProductPageReviews)
	if err != nil {
		return ack{}, err
	}
	return ack{}, b.notifier.Reply(ctx, productReply(ev.ChatID, product, reviews, ev.MessageID))
}
