package commands

import (
	"context"
	"time"

	"creditline-service/internal/domain/creditline"
	"creditline-service/internal/domain/risk"

	"github.com/google/uuid"
)

// CreditLineRepository is the write-side port for credit lines. Update runs
// the mutation under the store's exclusive lock so read-modify-write cycles
// (the over-limit check and the utilization increment) are atomic.
type CreditLineRepository interface {
	Create(ctx context.Context, line *creditline.CreditLine) error
	FindByID(ctx context.Context, id uuid.UUID) (*creditline.CreditLine, error)
	Update(ctx context.Context, id uuid.UUID, mutate func(*creditline.CreditLine) error) (*creditline.CreditLine, error)
}

// TransactionRepository is the append-only ledger port. Entries are immutable
// once written.
type TransactionRepository interface {
	Append(ctx context.Context, tx *creditline.Transaction) error
	ListByCreditLine(ctx context.Context, creditLineID uuid.UUID) ([]*creditline.Transaction, error)
}

// RiskEvaluationRepository stores risk snapshots. History is append-only;
// LatestByWallet returns errs.ErrEvaluationNotFound on a miss.
type RiskEvaluationRepository interface {
	Append(ctx context.Context, eval *risk.Evaluation) error
	LatestByWallet(ctx context.Context, walletAddress string) (*risk.Evaluation, error)
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
}
