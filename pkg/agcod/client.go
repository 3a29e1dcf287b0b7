// Package agcod is a client for the Amazon Gift Codes On Demand API.
//
// A useful URL for manual testing is the API Scratchpad:
// https://s3.amazonaws.com/AGCOD/htmlSDKv2/htmlSDKv2_NAEUFE/index.html
package agcod

import (
	"context"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	serviceName  = "AGCODService"
	targetPrefix = "com.amazonaws.agcod"

	// DefaultCurrency is used when the caller does not care.
	DefaultCurrency = "USD"
)

// Config carries everything the client needs. Every field is required;
// construction fails fast on a missing one rather than failing on the
// first live call.
type Config struct {
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Region          string `mapstructure:"region"`
	EndpointHost    string `mapstructure:"endpoint_host"`
	PartnerID       string `mapstructure:"partner_id"`
}

func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.AccessKeyID, validation.Required),
		validation.Field(&c.SecretAccessKey, validation.Required),
		validation.Field(&c.Region, validation.Required),
		validation.Field(&c.EndpointHost, validation.Required),
		validation.Field(&c.PartnerID, validation.Required),
	)
}

// Client exposes the gift card operations the contest engine needs.
type Client struct {
	partnerID string
	sc        *SignedClient
}

// Option tweaks a Client; used by tests to fix the transport and clock.
type Option func(*Client)

func WithInvoker(invoke Invoker) Option {
	return func(c *Client) { c.sc.invoke = invoke }
}

func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.sc.now = now }
}

func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("agcod: invalid config -> %w", err)
	}

	c := &Client{
		partnerID: cfg.PartnerID,
		sc: NewSignedClient(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			cfg.Region,
			serviceName,
			cfg.EndpointHost,
			targetPrefix,
		),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// MakeRequestID builds a creation request id from a suffix that must be
// fixed at entry-creation time. The vendor's idempotency is keyed on
// (creationRequestId, amount, currencyCode): reusing the tuple returns
// the same gift card instead of funding a second one, so the suffix must
// never be regenerated.
func (c *Client) MakeRequestID(suffix string) string {
	return fmt.Sprintf("%s-%s", c.partnerID, suffix)
}

// CreateGiftCard creates a gift card, or returns an existing one when
// called with a previously used request id. Amazon's documentation
// recommends never storing the returned claim code locally; store the
// creation details and re-check the card as needed.
func (c *Client) CreateGiftCard(ctx context.Context, amount int, creationRequestID, currencyCode string) (*CreateGiftCardResponse, error) {
	if currencyCode == "" {
		currencyCode = DefaultCurrency
	}
	payload := createGiftCardRequest{
		CreationRequestID: creationRequestID,
		PartnerID:         c.partnerID,
		Value: MonetaryValue{
			Amount:       amount,
			CurrencyCode: currencyCode,
		},
	}

	var resp CreateGiftCardResponse
	if err := c.sc.PostJSON(ctx, "CreateGiftCard", payload, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}

// CheckGiftCard re-fetches an existing gift card. Only call this with a
// request id that has actually been used before; with a fresh id the
// vendor would mint a new card.
func (c *Client) CheckGiftCard(ctx context.Context, amount int, creationRequestID, currencyCode string) (*CreateGiftCardResponse, error) {
	return c.CreateGiftCard(ctx, amount, creationRequestID, currencyCode)
}

// GetAvailableFunds returns the partner's remaining balance. The balance
// is vendor-owned shared state; overdraft is prevented by the vendor,
// not by us.
func (c *Client) GetAvailableFunds(ctx context.Context) (*GetAvailableFundsResponse, error) {
	var resp GetAvailableFundsResponse
	if err := c.sc.PostJSON(ctx, "GetAvailableFunds", getAvailableFundsRequest{PartnerID: c.partnerID}, &resp); err != nil {
		return nil, err
	}

	return &resp, nil
}
