package creditline

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is an immutable ledger entry. One entry is appended per draw,
// per repayment, and per status transition.
type Transaction struct {
	id           uuid.UUID
	creditLineID uuid.UUID
	txType       TransactionType
	amount       *Money
	currency     *string
	occurredAt   time.Time
	metadata     map[string]string
}

func NewDrawTransaction(creditLineID uuid.UUID, amount Money, currency string, now time.Time) *Transaction {
	return &Transaction{
		id:           uuid.New(),
		creditLineID: creditLineID,
		txType:       TransactionDraw,
		amount:       &amount,
		currency:     &currency,
		occurredAt:   now,
	}
}

func NewRepaymentTransaction(creditLineID uuid.UUID, amount Money, currency string, now time.Time) *Transaction {
	return &Transaction{
		id:           uuid.New(),
		creditLineID: creditLineID,
		txType:       TransactionRepayment,
		amount:       &amount,
		currency:     &currency,
		occurredAt:   now,
	}
}

func NewStatusChangeTransaction(creditLineID uuid.UUID, action EventAction, now time.Time) *Transaction {
	return &Transaction{
		id:           uuid.New(),
		creditLineID: creditLineID,
		txType:       TransactionStatusChange,
		occurredAt:   now,
		metadata:     map[string]string{"action": string(action)},
	}
}

func (t *Transaction) ID() uuid.UUID           { return t.id }
func (t *Transaction) CreditLineID() uuid.UUID { return t.creditLineID }
func (t *Transaction) Type() TransactionType   { return t.txType }
func (t *Transaction) Amount() *Money          { return t.amount }
func (t *Transaction) Currency() *string       { return t.currency }
func (t *Transaction) OccurredAt() time.Time   { return t.occurredAt }

func (t *Transaction) Metadata() map[string]string {
	if t.metadata == nil {
		return nil
	}
	out := make(map[string]string, len(t.metadata))
	for k, v := range t.metadata {
		out[k] = v
	}
	return out
}
