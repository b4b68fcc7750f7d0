package queries

import (
	"context"
	"time"

	"creditline-service/internal/domain/creditline"

	"github.com/google/uuid"
)

type CreditLineReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*creditline.CreditLine, error)
}

type TransactionReadStore interface {
	ListByCreditLine(ctx context.Context, creditLineID uuid.UUID) ([]*creditline.Transaction, error)
}

type TransactionView struct {
	ID           uuid.UUID
	CreditLineID uuid.UUID
	Type         creditline.TransactionType
	AmountCents  *int64
	Currency     *string
	OccurredAt   time.Time
	Metadata     map[string]string
}

type TransactionFilters struct {
	Type *creditline.TransactionType
	From *time.Time
	To   *time.Time
}

type TransactionPage struct {
	Transactions []*TransactionView
	Total        int
	Page         int
	Limit        int
	TotalPages   int
}

type CreditLineQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*creditline.CreditLine, error)
	ListTransactions(ctx context.Context, creditLineID uuid.UUID, filters TransactionFilters, page, limit int) (*TransactionPage, error)
}

type creditLineQueriesImpl struct {
	lines CreditLineReadStore
	txns  TransactionReadStore
}

func NewCreditLineQueries(lines CreditLineReadStore, txns TransactionReadStore) CreditLineQueries {
	return &creditLineQueriesImpl{lines: lines, txns: txns}
}

func (q *creditLineQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*creditline.CreditLine, error) {
	return q.lines.FindByID(ctx, id)
}

// ListTransactions filters by type, then by inclusive from/to range, computes
// the total, then slices one page. Entries are exposed newest-first.
func (q *creditLineQueriesImpl) ListTransactions(ctx context.Context, creditLineID uuid.UUID, filters TransactionFilters, page, limit int) (*TransactionPage, error) {
	if _, err := q.lines.FindByID(ctx, creditLineID); err != nil {
		return nil, err
	}

	entries, err := q.txns.ListByCreditLine(ctx, creditLineID)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	limit = ValidateLimit(limit)

	filtered := make([]*creditline.Transaction, 0, len(entries))
	// Insertion order reversed: newest first.
	for i := len(entries) - 1; i >= 0; i-- {
		tx := entries[i]
		if filters.Type != nil && tx.Type() != *filters.Type {
			continue
		}
		if filters.From != nil && tx.OccurredAt().Before(*filters.From) {
			continue
		}
		if filters.To != nil && tx.OccurredAt().After(*filters.To) {
			continue
		}
		filtered = append(filtered, tx)
	}

	total := len(filtered)
	totalPages := (total + limit - 1) / limit
	if totalPages < 1 {
		totalPages = 1
	}

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	views := make([]*TransactionView, 0, end-start)
	for _, tx := range filtered[start:end] {
		views = append(views, toTransactionView(tx))
	}

	return &TransactionPage{
		Transactions: views,
		Total:        total,
		Page:         page,
		Limit:        limit,
		TotalPages:   totalPages,
	}, nil
}

func toTransactionView(tx *creditline.Transaction) *TransactionView {
	view := &TransactionView{
		ID:           tx.ID(),
		CreditLineID: tx.CreditLineID(),
		Type:         tx.Type(),
		Currency:     tx.Currency(),
		OccurredAt:   tx.OccurredAt(),
		Metadata:     tx.Metadata(),
	}
	if amount := tx.Amount(); amount != nil {
		cents := amount.Cents()
		view.AmountCents = &cents
	}
	return view
}
