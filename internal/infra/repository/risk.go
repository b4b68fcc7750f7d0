package repository

import (
	"context"
	"sync"
	"time"

	"creditline-service/internal/domain/risk"
	"creditline-service/internal/pkg/errs"
)

// RiskEvaluationMemoryRepository keeps per-wallet evaluation history in
// insertion order. History only grows except through the explicit expiry
// sweep.
type RiskEvaluationMemoryRepository struct {
	mu      sync.RWMutex
	history map[string][]*risk.Evaluation
}

func NewRiskEvaluationMemoryRepository() *RiskEvaluationMemoryRepository {
	return &RiskEvaluationMemoryRepository{history: make(map[string][]*risk.Evaluation)}
}

func (r *RiskEvaluationMemoryRepository) Append(_ context.Context, eval *risk.Evaluation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	wallet := eval.WalletAddress()
	r.history[wallet] = append(r.history[wallet], eval)
	return nil
}

func (r *RiskEvaluationMemoryRepository) LatestByWallet(_ context.Context, walletAddress string) (*risk.Evaluation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.history[walletAddress]
	if len(entries) == 0 {
		return nil, errs.ErrEvaluationNotFound
	}
	return entries[len(entries)-1], nil
}

func (r *RiskEvaluationMemoryRepository) DeleteExpired(_ context.Context, before time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for wallet, entries := range r.history {
		kept := entries[:0]
		for _, eval := range entries {
			if eval.ExpiresAt().Before(before) {
				removed++
				continue
			}
			kept = append(kept, eval)
		}
		if len(kept) == 0 {
			delete(r.history, wallet)
			continue
		}
		r.history[wallet] = kept
	}
	return removed, nil
}
