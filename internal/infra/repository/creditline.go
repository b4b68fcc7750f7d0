package repository

import (
	"context"
	"sync"

	"creditline-service/internal/domain/creditline"
	"creditline-service/internal/pkg/errs"

	"github.com/google/uuid"
)

// CreditLineMemoryRepository is the authoritative, process-lifetime store for
// credit lines. One exclusive lock guards every public operation; the Update
// closure runs under it so balance checks and mutations are atomic.
type CreditLineMemoryRepository struct {
	mu    sync.RWMutex
	lines map[uuid.UUID]*creditline.CreditLine
}

func NewCreditLineMemoryRepository() *CreditLineMemoryRepository {
	return &CreditLineMemoryRepository{lines: make(map[uuid.UUID]*creditline.CreditLine)}
}

func (r *CreditLineMemoryRepository) Create(_ context.Context, line *creditline.CreditLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines[line.ID()] = line
	return nil
}

func (r *CreditLineMemoryRepository) FindByID(_ context.Context, id uuid.UUID) (*creditline.CreditLine, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	line, ok := r.lines[id]
	if !ok {
		return nil, errs.ErrCreditLineNotFound
	}
	return snapshot(line), nil
}

func (r *CreditLineMemoryRepository) Update(_ context.Context, id uuid.UUID, mutate func(*creditline.CreditLine) error) (*creditline.CreditLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	line, ok := r.lines[id]
	if !ok {
		return nil, errs.ErrCreditLineNotFound
	}
	if err := mutate(line); err != nil {
		return nil, err
	}
	return snapshot(line), nil
}

// snapshot detaches the caller from the stored entity so readers never
// observe a mutation in progress.
func snapshot(l *creditline.CreditLine) *creditline.CreditLine {
	return creditline.ReconstructCreditLine(
		l.ID(), l.BorrowerID(),
		l.Limit(), l.Utilized(),
		l.Status(), l.Events(),
		l.CreatedAt(), l.UpdatedAt(),
	)
}
