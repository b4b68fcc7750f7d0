package repository

import (
	"context"
	"sync"

	"creditline-service/internal/domain/creditline"

	"github.com/google/uuid"
)

// TransactionMemoryRepository keeps the append-only per-line ledger in
// insertion order. Entries are immutable, so listings share them.
type TransactionMemoryRepository struct {
	mu      sync.RWMutex
	entries map[uuid.UUID][]*creditline.Transaction
}

func NewTransactionMemoryRepository() *TransactionMemoryRepository {
	return &TransactionMemoryRepository{entries: make(map[uuid.UUID][]*creditline.Transaction)}
}

func (r *TransactionMemoryRepository) Append(_ context.Context, tx *creditline.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[tx.CreditLineID()] = append(r.entries[tx.CreditLineID()], tx)
	return nil
}

func (r *TransactionMemoryRepository) ListByCreditLine(_ context.Context, creditLineID uuid.UUID) ([]*creditline.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.entries[creditLineID]
	out := make([]*creditline.Transaction, len(stored))
	copy(out, stored)
	return out, nil
}
