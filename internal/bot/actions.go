// internal/bot/actions.go
package bot

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ActionKind identifies an inline button press. The string values are the
// callback data prefixes carried by the buttons.
type ActionKind string

const (
	ActionCategory       ActionKind = "cat"
	ActionCategoriesBack ActionKind = "cats:back"
	ActionProduct        ActionKind = "prod"
	ActionCartAdd        ActionKind = "cart:add"
	ActionCartClear      ActionKind = "cart:clear"
	ActionCheckoutStart  ActionKind = "checkout:start"
	ActionMarkDelivered  ActionKind = "admin:delivered"
	ActionReviewStart    ActionKind = "review:start"
	ActionReviewPick     ActionKind = "review:pick"
	ActionReviewRate     ActionKind = "review:rate"
)

var ErrUnknownAction = errors.New("unknown action")

type Action struct {
	Kind      ActionKind
	Category  string
	ProductID int64
	OrderID   int64
	Rating    int
}

func CategoryAction(category string) Action { return Action{Kind: ActionCategory, Category: category} }
func ProductAction(id int64) Action          { return Action{Kind: ActionProduct, ProductID: id} }
func CartAddAction(id int64) Action          { return Action{Kind: ActionCartAdd, ProductID: id} }
func MarkDeliveredAction(id int64) Action    { return Action{Kind: ActionMarkDelivered, OrderID: id} }
func ReviewStartAction(id int64) Action      { return Action{Kind: ActionReviewStart, OrderID: id} }

func ReviewPickAction(orderID, productID int64) Action {
	return Action{Kind: ActionReviewPick, OrderID: orderID, ProductID: productID}
}

func ReviewRateAction(orderID, productID int64, rating int) Action {
	return Action{Kind: ActionReviewRate, OrderID: orderID, ProductID: productID, Rating: rating}
}

// Data encodes the action as callback data.
func (a Action) Data() string {
	switch a.Kind {
	case ActionCategory:
		return "cat:" + a.Category
	case ActionProduct:
		return fmt.Sprintf("prod:%d", a.ProductID)
	case ActionCartAdd:
		return fmt.Sprintf("cart:add:%d", a.ProductID)
	case ActionMarkDelivered:
		return fmt.Sprintf("admin:delivered:%d", a.OrderID)
	case ActionReviewStart:
		return fmt.Sprintf("review:start:%d", a.OrderID)
	case ActionReviewPick:
		return fmt.Sprintf("review:pick:%d:%d", a.OrderID, a.ProductID)
	case ActionReviewRate:
		return fmt.Sprintf("review:rate:%d:%d:%d", a.OrderID, a.ProductID, a.Rating)
	default:
		return string(a.Kind)
	}
}

func ParseAction(data string) (Action, error) {
	switch {
	case data == string(ActionCategoriesBack):
		return Action{Kind: ActionCategoriesBack}, nil
	case data == string(ActionCartClear):
		return Action{Kind: ActionCartClear}, nil
	case data == string(ActionCheckoutStart):
		return Action{Kind: ActionCheckoutStart}, nil
	case strings.HasPrefix(data, "cat:"):
		// category labels may themselves contain ':'
		return CategoryAction(strings.TrimPrefix(data, "cat:")), nil
	}

	parts := strings.Split(data, ":")
	var kind ActionKind
	var want int
	switch {
	case len(parts) == 2 && parts[0] == "prod":
		kind, want = ActionProduct, 1
	case len(parts) >= 2 && parts[0]+":"+parts[1] == string(ActionCartAdd):
		kind, want = ActionCartAdd, 1
	case len(parts) >= 2 && parts[0]+":"+parts[1] == string(ActionMarkDelivered):
		kind, want = ActionMarkDelivered, 1
	case len(parts) >= 2 && parts[0]+":"+parts[1] == string(ActionReviewStart):
		kind, want = ActionReviewStart, 1
	case len(parts) >= 2 && parts[0]+":"+parts[1] == string(ActionReviewPick):
		kind, want = ActionReviewPick, 2
	case len(parts) >= 2 && parts[0]+":"+parts[1] == string(ActionReviewRate):
		kind, want = ActionReviewRate, 3
	default:
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, data)
	}

	args := parts[1:]
	if kind != ActionProduct {
		args = parts[2:]
	}
	if len(args) != want {
		return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, data)
	}

	nums := make([]int64, len(args))
	for i, arg := range args {
		n, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, data)
		}
		nums[i] = n
	}

	switch kind {
	case ActionProduct:
		return ProductAction(nums[0]), nil
	case ActionCartAdd:
		return CartAddAction(nums[0]), nil
	case ActionMarkDelivered:
		return MarkDeliveredAction(nums[0]), nil
	case ActionReviewStart:
		return ReviewStartAction(nums[0]), nil
	case ActionReviewPick:
		return ReviewPickAction(nums[0], nums[1]), nil
	default:
		return ReviewRateAction(nums[0], nums[1], int(nums[2])), nil
	}
}
