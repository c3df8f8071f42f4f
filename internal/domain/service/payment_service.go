package service

import (
	"context"
)

// PaymentIntentRequest carries everything the processor needs to set up a
// card payment with the platform fee split out. Amounts are in minor units
// (pence).
type PaymentIntentRequest struct {
	AmountMinor  int64
	FeeMinor     int64
	Currency     string
	Description  string
	ReceiptEmail string
	Metadata     map[string]string
}

// PaymentIntentResponse is the processor's view of an intent. ClientSecret is
// handed to the client for card confirmation; ID is the durable payment
// reference stored on the Agreement.
type PaymentIntentResponse struct {
	ID           string
	ClientSecret string
	Status       string
}

// PaymentService is the narrow surface consumed from the payment processor.
type PaymentService interface {
	CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntentResponse, error)
	GetPaymentIntent(ctx context.Context, id string) (*PaymentIntentResponse, error)
}
