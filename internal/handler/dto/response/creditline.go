package response

import (
	"time"

	"creditline-service/internal/domain/creditline"
	"creditline-service/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreditLineResponse struct {
	ID             uuid.UUID       `json:"id"`
	BorrowerID     uuid.UUID       `json:"borrowerId"`
	LimitCents     int64           `json:"limitCents"`
	UtilizedCents  int64           `json:"utilizedCents"`
	AvailableCents int64           `json:"availableCents"`
	Status         string          `json:"status"`
	Events         []EventResponse `json:"events"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type EventResponse struct {
	Action     string    `json:"action"`
	OccurredAt time.Time `json:"occurredAt"`
}

func FromCreditLine(line *creditline.CreditLine) *CreditLineResponse {
	events := make([]EventResponse, 0, len(line.Events()))
	for _, ev := range line.Events() {
		events = append(events, EventResponse{
			Action:     string(ev.Action),
			OccurredAt: ev.OccurredAt,
		})
	}
	return &CreditLineResponse{
		ID:             line.ID(),
		BorrowerID:     line.BorrowerID(),
		LimitCents:     line.Limit().Cents(),
		UtilizedCents:  line.Utilized().Cents(),
		AvailableCents: line.Available().Cents(),
		Status:         line.Status().String(),
		Events:         events,
		CreatedAt:      line.CreatedAt(),
		UpdatedAt:      line.UpdatedAt(),
	}
}

type TransactionResponse struct {
	ID           uuid.UUID         `json:"id"`
	CreditLineID uuid.UUID         `json:"creditLineId"`
	Type         string            `json:"type"`
	AmountCents  *int64            `json:"amountCents,omitempty"`
	Currency     *string           `json:"currency,omitempty"`
	OccurredAt   time.Time         `json:"occurredAt"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

type TransactionPageResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
	Page         int                   `json:"page"`
	Limit        int                   `json:"limit"`
	TotalPages   int                   `json:"totalPages"`
}

func FromTransactionPage(page *queries.TransactionPage) *TransactionPageResponse {
	txns := make([]TransactionResponse, 0, len(page.Transactions))
	for _, tx := range page.Transactions {
		txns = append(txns, TransactionResponse{
			ID:           tx.ID,
			CreditLineID: tx.CreditLineID,
			Type:         tx.Type.String(),
			AmountCents:  tx.AmountCents,
			Currency:     tx.Currency,
			OccurredAt:   tx.OccurredAt,
			Metadata:     tx.Metadata,
		})
	}
	return &TransactionPageResponse{
		Transactions: txns,
		Total:        page.Total,
		Page:         page.Page,
		Limit:        page.Limit,
		TotalPages:   page.TotalPages,
	}
}
