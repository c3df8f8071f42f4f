package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// StripePaymentService - Stripe PaymentIntents implementation using the HTTP API
type StripePaymentService struct {
	secretKey string
	baseURL   string
	client    *http.Client
}

func NewStripePaymentService(secretKey string) *StripePaymentService {
	return &StripePaymentService{
		secretKey: secretKey,
		baseURL:   "https://api.stripe.com/v1",
		// Pre-emptive timeout; a hung processor call is treated as failed,
		// never retried.
		client: &http.Client{Timeout: 8 * time.Second},
	}
}

// stripeIntentResponse is the subset of the PaymentIntent object we consume.
type stripeIntentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
	Error        *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *StripePaymentService) CreatePaymentIntent(ctx context.Context, req PaymentIntentRequest) (*PaymentIntentResponse, error) {
	log.Printf("Creating payment intent: amount=%d fee=%d currency=%s", req.AmountMinor, req.FeeMinor, req.Currency)

	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.AmountMinor, 10))
	form.Set("currency", req.Currency)
	if req.FeeMinor > 0 {
		form.Set("application_fee_amount", strconv.FormatInt(req.FeeMinor, 10))
	}
	if req.Description != "" {
		form.Set("description", req.Description)
	}
	if req.ReceiptEmail != "" {
		form.Set("receipt_email", req.ReceiptEmail)
	}
	for key, value := range req.Metadata {
		form.Set(fmt.Sprintf("metadata[%s]", key), value)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", s.baseURL+"/payment_intents", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	var intent stripeIntentResponse
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to parse response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		if intent.Error != nil {
			log.Printf("Stripe API error: %s", intent.Error.Message)
			return nil, fmt.Errorf("stripe API error: %s", intent.Error.Message)
		}
		return nil, fmt.Errorf("stripe API error: %s", string(body))
	}

	log.Printf("Payment intent created: %s", intent.ID)
	return &PaymentIntentResponse{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       intent.Status,
	}, nil
}

func (s *StripePaymentService) GetPaymentIntent(ctx context.Context, id string) (*PaymentIntentResponse, error) {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", s.baseURL+"/payment_intents/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.secretKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	var intent stripeIntentResponse
	if err := json.Unmarshal(body, &intent); err != nil {
		return nil, fmt.Errorf("failed to parse response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		if intent.Error != nil {
			return nil, fmt.Errorf("stripe API error: %s", intent.Error.Message)
		}
		return nil, fmt.Errorf("stripe API error: %s", string(body))
	}

	return &PaymentIntentResponse{
		ID:           intent.ID,
		ClientSecret: intent.ClientSecret,
		Status:       intent.Status,
	}, nil
}
