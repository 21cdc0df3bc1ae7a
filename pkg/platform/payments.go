package platform

import (
	"context"

	"github.com/shopspring/decimal"
)

// PaymentContact identifies who the payment gateway should bill.
type PaymentContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// SubscriptionPaymentRequest initializes payment for the selected packages.
type SubscriptionPaymentRequest struct {
	OrganizationID string                      `json:"organizationId"`
	Contact        PaymentContact              `json:"contact"`
	Selections     []PackageSelectionReference `json:"selections"`
	Amount         decimal.Decimal             `json:"amount"`
}

// PackageSelectionReference names one purchased package/cycle pair.
type PackageSelectionReference struct {
	PackageID    string `json:"packageId"`
	BillingCycle string `json:"billingCycle"`
}

// LocationPaymentRequest initializes payment of location verification fees.
type LocationPaymentRequest struct {
	OrganizationID string          `json:"organizationId"`
	Contact        PaymentContact  `json:"contact"`
	LocationIDs    []string        `json:"locationIds"`
	Amount         decimal.Decimal `json:"amount"`
}

// PaymentRedirect is the gateway handoff returned by payment initialization.
type PaymentRedirect struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorizationUrl"`
}

// InitSubscriptionPayment asks the backend to initialize package payment.
func (c *Client) InitSubscriptionPayment(ctx context.Context, req SubscriptionPaymentRequest) (*PaymentRedirect, error) {
	var redirect PaymentRedirect
	if err := c.post(ctx, "/api/v1/payments/subscription/init", req, &redirect); err != nil {
		return nil, err
	}
	return &redirect, nil
}

// InitLocationPayment asks the backend to initialize verification-fee payment.
func (c *Client) InitLocationPayment(ctx context.Context, req LocationPaymentRequest) (*PaymentRedirect, error) {
	var redirect PaymentRedirect
	if err := c.post(ctx, "/api/v1/payments/location-verification/init", req, &redirect); err != nil {
		return nil, err
	}
	return &redirect, nil
}
