package agcod

import (
	"encoding/json"
	"fmt"
	"time"
)

// Gift card statuses reported by the vendor.
const (
	StatusSuccess = "SUCCESS"
	StatusFailure = "FAILURE"
	StatusResend  = "RESEND"

	CardFulfilled           = "Fulfilled"
	CardRefundedToPurchaser = "RefundedToPurchaser"
	CardExpired             = "Expired"
)

// timestampLayout is the vendor's fixed format, e.g. "20240515T051000Z".
const timestampLayout = "20060102T150405Z0700"

// Timestamp parses the vendor's YYYYMMDDTHHMMSSZ format.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var raw *string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(timestampLayout, *raw)
	if err != nil {
		return fmt.Errorf("agcod: invalid timestamp %q: %w", *raw, err)
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(timestampLayout))
}

// MonetaryValue is the vendor's money shape: integer amount + ISO code.
type MonetaryValue struct {
	Amount       int    `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type CardInfo struct {
	CardNumber     *string       `json:"cardNumber"`
	CardStatus     string        `json:"cardStatus"`
	ExpirationDate *Timestamp    `json:"expirationDate"`
	Value          MonetaryValue `json:"value"`
}

type CreateGiftCardResponse struct {
	CardInfo          CardInfo   `json:"cardInfo"`
	CreationRequestID string     `json:"creationRequestId"`
	GcClaimCode       string     `json:"gcClaimCode"`
	GcExpirationDate  *Timestamp `json:"gcExpirationDate"`
	GcID              string     `json:"gcId"`
	Status            string     `json:"status"`
}

type GetAvailableFundsResponse struct {
	AvailableFunds MonetaryValue `json:"availableFunds"`
	Status         string        `json:"status"`
	Timestamp      *Timestamp    `json:"timestamp"`
}

type createGiftCardRequest struct {
	CreationRequestID string        `json:"creationRequestId"`
	PartnerID         string        `json:"partnerId"`
	Value             MonetaryValue `json:"value"`
}

type getAvailableFundsRequest struct {
	PartnerID string `json:"partnerId"`
}
