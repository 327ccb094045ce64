// internal/bot/render.go
package bot

import (
	"html"
	"strings"

	"github.com/javajoker/shopbot/internal/chat"
	"github.com/javajoker/shopbot/internal/messages"
	"github.com/javajoker/shopbot/internal/models"
	"github.com/javajoker/shopbot/internal/utils"
)

func startReply(chatID int64) chat.Reply {
	return chat.Reply{ChatID: chatID, Text: messages.T(messages.KeyStartGreeting), MainMenu: true}
}

// editText replaces the text of the message that carried the pressed button.
func editText(ev Event, text string) chat.Reply {
	return chat.Reply{ChatID: ev.ChatID, Text: text, EditMessageID: ev.MessageID}
}

// grid lays buttons out perRow to a row.
func grid(buttons []chat.Button, perRow int) [][]chat.Button {
	var rows [][]chat.Button
	for len(buttons) > 0 {
		n := perRow
		if len(buttons) < n {
			n = len(buttons)
		}
		rows = append(rows, buttons[:n])
		buttons = buttons[n:]
	}
	return rows
}

func button(label string, action Action) chat.Button {
	return chat.Button{Label: label, Data: action.Data()}
}

func categoriesReply(chatID int64, categories []string, editID int) chat.Reply {
	buttons := make([]chat.Button, 0, len(categories))
	for _, c := range categories {
		buttons = append(buttons, button(c, CategoryAction(c)))
	}
	return chat.Reply{
		ChatID:        chatID,
		Text:          messages.T(messages.KeyCatalogPick),
		Buttons:       grid(buttons, 2),
		EditMessageID: editID,
	}
}

func categoryReply(chatID int64, category string, products []models.Product, editID int) chat.Reply {
	lines := []string{messages.T(messages.KeyCategoryHeader, category)}
	var rows [][]chat.Button
	for _, p := range products {
		lines = append(lines, messages.T(messages.KeyCategoryLine, p.Name, utils.FormatMoney(p.Price)))
		rows = append(rows, chat.Row(button(messages.T(messages.KeyCategoryProductBtn, p.Name), ProductAction(p.ID))))
	}
	rows = append(rows, chat.Row(button(messages.T(messages.KeyCategoriesBack), Action{Kind: ActionCategoriesBack})))

	return chat.Reply{
		ChatID:        chatID,
		Text:          strings.Join(lines, "\n"),
		Buttons:       rows,
		EditMessageID: editID,
	}
}

func productReply(chatID int64, p *models.Product, reviews []models.Review, editID int) chat.Reply {
	var sb strings.Builder
	sb.WriteString(messages.T(messages.KeyProductReviewsHead))
	if len(reviews) == 0 {
		sb.WriteString(messages.T(messages.KeyProductNoReviews))
	}
	for _, r := range reviews {
		sb.WriteString(messages.T(messages.KeyProductReviewLine, r.Rating, r.Text))
	}

	return chat.Reply{
		ChatID: chatID,
		Text:   messages.T(messages.KeyProductCard, p.Name, utils.FormatMoney(p.Price), p.Description, sb.String()),
		Buttons: [][]chat.Button{
			chat.Row(button(messages.T(messages.KeyProductAddToCart), CartAddAction(p.ID))),
			chat.Row(button(messages.T(messages.KeyProductBack), CategoryAction(p.Category))),
		},
		EditMessageID: editID,
	}
}

func cartReply(chatID int64, cart *models.Cart) chat.Reply {
	lines := make([]string, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		lines = append(lines, messages.T(messages.KeyCartLine, html.EscapeString(l.Name), l.Qty, utils.FormatMoney(l.Subtotal())))
	}
	text := messages.T(messages.KeyCartHeader) +
		strings.Join(lines, "\n") +
		"\n\n" + messages.T(messages.KeyCartTotal, utils.FormatMoney(cart.Total()))

	return chat.Reply{
		ChatID: chatID,
		Text:   text,
		HTML:   true,
		Buttons: [][]chat.Button{
			chat.Row(button(messages.T(messages.KeyCartCheckout), Action{Kind: ActionCheckoutStart})),
			chat.Row(button(messages.T(messages.KeyCartClear), Action{Kind: ActionCartClear})),
		},
	}
}

// adminOrderReply is the new order notice. ChatID is filled in by
// NotifyAdmin.
func adminOrderReply(order *models.Order, username string) chat.Reply {
	if username == "" {
		username = messages.T(messages.KeyAdminUnknownUsername)
	}

	lines := []string{
		messages.T(messages.KeyAdminOrderHeader, order.ID),
		messages.T(messages.KeyAdminOrderUser, html.EscapeString(username), order.UserID),
		messages.T(messages.KeyAdminOrderName, html.EscapeString(order.FullName)),
		messages.T(messages.KeyAdminOrderPhone, html.EscapeString(order.Phone)),
		messages.T(messages.KeyAdminOrderAddress, html.EscapeString(order.Address)),
		"",
		messages.T(messages.KeyAdminOrderItems),
	}
	for _, it := range order.Items {
		lines = append(lines, messages.T(messages.KeyCartLine, html.EscapeString(it.Name), it.Qty, utils.FormatMoney(it.Subtotal())))
	}
	lines = append(lines, "\n"+messages.T(messages.KeyCartTotal, utils.FormatMoney(order.Total())))

	return chat.Reply{
		Text:    strings.Join(lines, "\n"),
		HTML:    true,
		Buttons: [][]chat.Button{chat.Row(button(messages.T(messages.KeyAdminDeliveredButton), MarkDeliveredAction(order.ID)))},
	}
}

// deliveryNoticeReply goes to the customer's private chat, whose id equals
// the user id.
func deliveryNoticeReply(order *models.Order) chat.Reply {
	return chat.Reply{
		ChatID:  order.UserID,
		Text:    messages.T(messages.KeyDeliveryNotice, order.ID),
		Buttons: [][]chat.Button{chat.Row(button(messages.T(messages.KeyReviewStartButton), ReviewStartAction(order.ID)))},
	}
}

func reviewPickReply(chatID, orderID int64, products []models.ReviewableProduct) chat.Reply {
	rows := make([][]chat.Button, 0, len(products))
	for _, p := range products {
		rows = append(rows, chat.Row(button(p.Name, ReviewPickAction(orderID, p.ProductID))))
	}
	return chat.Reply{ChatID: chatID, Text: messages.T(messages.KeyReviewPickProduct), Buttons: rows}
}

func ratingReply(chatID, orderID, productID int64) chat.Reply {
	buttons := make([]chat.Button, 0, 5)
	for r := 1; r <= 5; r++ {
		buttons = append(buttons, button(messages.T(messages.KeyReviewRatingButton, r), ReviewRateAction(orderID, productID, r)))
	}
	return chat.Reply{ChatID: chatID, Text: messages.T(messages.KeyReviewPickRating), Buttons: grid(buttons, 5)}
}
