package commands

import (
	"context"
	"errors"

	"creditline-service/internal/domain/risk"
	"creditline-service/internal/pkg/clock"
	"creditline-service/internal/pkg/config"
	"creditline-service/internal/pkg/errs"
	"creditline-service/internal/telemetry"
)

// EvaluationResult tags an evaluation with its origin: served from the cache
// window or freshly computed.
type EvaluationResult struct {
	Evaluation *risk.Evaluation
	Cached     bool
}

type RiskCommands interface {
	Evaluate(ctx context.Context, walletAddress string, forceRefresh bool) (*EvaluationResult, error)
	DeleteExpired(ctx context.Context) (int, error)
	IsValid(ctx context.Context, walletAddress string) (bool, error)
}

type riskCommandsImpl struct {
	evals   RiskEvaluationRepository
	factors risk.FactorSource
	cfg     config.RiskConfig
	clock   clock.Clock
}

func NewRiskCommands(evals RiskEvaluationRepository, factors risk.FactorSource, cfg config.RiskConfig, clk clock.Clock) RiskCommands {
	return &riskCommandsImpl{evals: evals, factors: factors, cfg: cfg, clock: clk}
}

func (uc *riskCommandsImpl) Evaluate(ctx context.Context, walletAddress string, forceRefresh bool) (*EvaluationResult, error) {
	now := uc.clock.Now()

	if !forceRefresh {
		latest, err := uc.evals.LatestByWallet(ctx, walletAddress)
		switch {
		case err == nil && latest.IsValidAt(now):
			telemetry.RiskCacheHits.Inc()
			return &EvaluationResult{Evaluation: latest, Cached: true}, nil
		case err != nil && !errors.Is(err, errs.ErrEvaluationNotFound):
			return nil, err
		}
	}

	eval := risk.NewEvaluation(
		walletAddress,
		uc.factors.Factors(walletAddress),
		uc.cfg.BaseCreditLimitCents,
		uc.cfg.BaseRateBps,
		uc.cfg.EvaluationTTL,
		now,
	)
	if err := uc.evals.Append(ctx, eval); err != nil {
		return nil, err
	}
	telemetry.RiskCacheMisses.Inc()
	return &EvaluationResult{Evaluation: eval, Cached: false}, nil
}

func (uc *riskCommandsImpl) DeleteExpired(ctx context.Context) (int, error) {
	return uc.evals.DeleteExpired(ctx, uc.clock.Now())
}

func (uc *riskCommandsImpl) IsValid(ctx context.Context, walletAddress string) (bool, error) {
	latest, err := uc.evals.LatestByWallet(ctx, walletAddress)
	if err != nil {
		if errors.Is(err, errs.ErrEvaluationNotFound) {
			return false, nil
		}
		return false, err
	}
	return latest.IsValidAt(uc.clock.Now()), nil
}
