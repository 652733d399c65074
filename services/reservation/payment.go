package reservation

import (
	"context"
	"fmt"

	"sitekit/config"
	"sitekit/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// PaymentProcessor abstracts the deposit flow: create a resumable embedded
// checkout session for a held reservation, and expire one that was abandoned.
type PaymentProcessor interface {
	CreateCheckoutSession(ctx context.Context, res models.Reservation, amountCents int64, currency string) (clientSecret, sessionID string, err error)
	ExpireSession(ctx context.Context, sessionID string) error
}

// StripeProcessor implements PaymentProcessor on Stripe embedded checkout.
type StripeProcessor struct {
	Logger *zap.Logger
}

func NewStripeProcessor(logger *zap.Logger) *StripeProcessor {
	return &StripeProcessor{Logger: logger}
}

func (p *StripeProcessor) CreateCheckoutSession(ctx context.Context, res models.Reservation, amountCents int64, currency string) (string, string, error) {
	if currency == "" {
		currency = "usd"
	}
	params := &stripe.CheckoutSessionParams{
		UIMode:    stripe.String(string(stripe.CheckoutSessionUIModeEmbedded)),
		Mode:      stripe.String(string(stripe.CheckoutSessionModePayment)),
		ReturnURL: stripe.String(config.AppConfig.CheckoutReturnURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(amountCents),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Booking deposit for %s", res.Date)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		Metadata: map[string]string{
			"reservationId": res.ID,
			"siteId":        res.SiteID,
			"date":          res.Date,
		},
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return "", "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	p.Logger.Info("Created embedded checkout session",
		zap.String("reservationId", res.ID), zap.String("sessionId", sess.ID))
	return sess.ClientSecret, sess.ID, nil
}

func (p *StripeProcessor) ExpireSession(ctx context.Context, sessionID string) error {
	params := &stripe.CheckoutSessionExpireParams{}
	params.Context = ctx
	if _, err := session.Expire(sessionID, params); err != nil {
		return fmt.Errorf("failed to expire checkout session %s: %w", sessionID, err)
	}
	return nil
}
