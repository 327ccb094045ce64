// internal/session/step.go
package session

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Step is the free-text input a user is expected to send next. Each variant
// carries exactly the fields collected so far in its flow.
type Step interface {
	StepName() string
}

const (
	StepAskQuantity     = "ask_qty"
	StepCheckoutName    = "checkout_name"
	StepCheckoutPhone   = "checkout_phone"
	StepCheckoutAddress = "checkout_address"
	StepReviewText      = "review_text"
)

type AskQuantity struct {
	ProductID int64 `json:"product_id"`
}

type CheckoutName struct{}

type CheckoutPhone struct {
	FullName string `json:"full_name"`
}

type CheckoutAddress struct {
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
}

type ReviewText struct {
	OrderID   int64 `json:"order_id"`
	ProductID int64 `json:"product_id"`
	Rating    int   `json:"rating"`
}

func (AskQuantity) StepName() string     { return StepAskQuantity }
func (CheckoutName) StepName() string    { return StepCheckoutName }
func (CheckoutPhone) StepName() string   { return StepCheckoutPhone }
func (CheckoutAddress) StepName() string { return StepCheckoutAddress }
func (ReviewText) StepName() string      { return StepReviewText }

var ErrUnknownStep = errors.New("unknown session step")

type envelope struct {
	Step string          `json:"step"`
	Data json.RawMessage `json:"data"`
}

// Encode serializes a step with its discriminator so Decode can restore the
// concrete variant.
func Encode(step Step) ([]byte, error) {
	if step == nil {
		return nil, ErrUnknownStep
	}
	data, err := json.Marshal(step)
	if err != nil {
		return nil, fmt.Errorf("marshal step failed: %w", err)
	}
	return json.Marshal(envelope{Step: step.StepName(), Data: data})
}

func Decode(raw []byte) (Step, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("unmarshal step failed: %w", err)
	}

	var step Step
	switch env.Step {
	case StepAskQuantity:
		var s AskQuantity
		if err := unmarshalData(env.Data, &s); err != nil {
			return nil, err
		}
		step = s
	case StepCheckoutName:
		step = CheckoutName{}
	case StepCheckoutPhone:
		var s CheckoutPhone
		if err := unmarshalData(env.Data, &s); err != nil {
			return nil, err
		}
		step = s
	case StepCheckoutAddress:
		var s CheckoutAddress
		if err := unmarshalData(env.Data, &s); err != nil {
			return nil, err
		}
		step = s
	case StepReviewText:
		var s ReviewText
		if err := unmarshalData(env.Data, &s); err != nil {
			return nil, err
		}
		step = s
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStep, env.Step)
	}
	return step, nil
}

func unmarshalData(data json.RawMessage, v interface{}) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unmarshal step data failed: %w", err)
	}
	return nil
}
