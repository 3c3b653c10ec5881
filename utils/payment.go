package utils

import (
	"context"
	"fmt"

	"github.com/HamidAbid/modifyx-backend/config"
	"github.com/HamidAbid/modifyx-backend/services"
	"github.com/stripe/stripe-go/v78"
	"github.com/stripe/stripe-go/v78/checkout/session"
)

// StripeGateway creates hosted checkout sessions for order payments.
type StripeGateway struct {
	successURL string
	cancelURL  string
	currency   string
}

func NewStripeGateway() *StripeGateway {
	stripe.Key = config.GetEnv("STRIPE_SECRET_KEY", "")
	return &StripeGateway{
		successURL: config.GetEnv("CHECKOUT_SUCCESS_URL", "https://modifyx.vercel.app/"),
		cancelURL:  config.GetEnv("CHECKOUT_CANCEL_URL", "https://modifyx.vercel.app/"),
		currency:   config.GetEnv("CHECKOUT_CURRENCY", "usd"),
	}
}

// CreateCheckoutSession builds one Stripe line item per order line and
// returns the session identifier the client redirects with.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, items []services.CheckoutLineItem) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(items))
	for _, item := range items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(g.currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(g.successURL),
		CancelURL:          stripe.String(g.cancelURL),
	}

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return sess.ID, nil
}
