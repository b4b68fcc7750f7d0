package request

import (
	"github.com/google/uuid"
)

type CreateCreditLineRequest struct {
	BorrowerID uuid.UUID `json:"borrower_id" binding:"required"`
	// Either an explicit limit or a wallet address to derive an advisory
	// limit from the risk engine.
	LimitCents    *int64  `json:"limit_cents,omitempty"`
	WalletAddress *string `json:"wallet_address,omitempty"`
}

type DrawRequest struct {
	BorrowerID  uuid.UUID `json:"borrower_id" binding:"required"`
	AmountCents int64     `json:"amount_cents" binding:"required"`
	Currency    *string   `json:"currency,omitempty"`
}

type RepayRequest struct {
	AmountCents int64   `json:"amount_cents" binding:"required"`
	Currency    *string `json:"currency,omitempty"`
}

const DefaultCurrency = "USD"

func (r DrawRequest) GetCurrency() string {
	if r.Currency == nil || *r.Currency == "" {
		return DefaultCurrency
	}
	return *r.Currency
}

func (r RepayRequest) GetCurrency() string {
	if r.Currency == nil || *r.Currency == "" {
		return DefaultCurrency
	}
	return *r.Currency
}
