package builder

import (
	"time"

	"creditline-service/internal/domain/creditline"

	"github.com/google/uuid"
)

// CreditLineBuilder assembles credit lines for tests through the entity's
// public operations only.
type CreditLineBuilder struct {
	id            uuid.UUID
	borrowerID    uuid.UUID
	limitCents    int64
	utilizedCents int64
	status        creditline.Status
	now           time.Time
}

func NewCreditLineBuilder() *CreditLineBuilder {
	return &CreditLineBuilder{
		id:         uuid.New(),
		borrowerID: uuid.New(),
		limitCents: 100000,
		status:     creditline.StatusActive,
		now:        time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (b *CreditLineBuilder) WithID(id uuid.UUID) *CreditLineBuilder {
	b.id = id
	return b
}

func (b *CreditLineBuilder) WithBorrowerID(id uuid.UUID) *CreditLineBuilder {
	b.borrowerID = id
	return b
}

func (b *CreditLineBuilder) WithLimitCents(cents int64) *CreditLineBuilder {
	b.limitCents = cents
	return b
}

func (b *CreditLineBuilder) WithUtilizedCents(cents int64) *CreditLineBuilder {
	b.utilizedCents = cents
	return b
}

func (b *CreditLineBuilder) WithStatus(status creditline.Status) *CreditLineBuilder {
	b.status = status
	return b
}

func (b *CreditLineBuilder) WithNow(now time.Time) *CreditLineBuilder {
	b.now = now
	return b
}

func (b *CreditLineBuilder) BorrowerID() uuid.UUID {
	return b.borrowerID
}

func (b *CreditLineBuilder) BuildDomain() (*creditline.CreditLine, error) {
	limit, err := creditline.NewMoney(b.limitCents)
	if err != nil {
		return nil, err
	}

	line := creditline.NewCreditLine(b.id, b.borrowerID, limit, b.now)
	if b.utilizedCents > 0 {
		if err := line.Draw(b.borrowerID, b.utilizedCents, b.now); err != nil {
			return nil, err
		}
	}
	switch b.status {
	case creditline.StatusSuspended:
		if err := line.Suspend(b.now); err != nil {
			return nil, err
		}
	case creditline.StatusClosed:
		if err := line.Close(b.now); err != nil {
			return nil, err
		}
	}
	return line, nil
}
