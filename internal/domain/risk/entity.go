package risk

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// Factor is one weighted input to a wallet's risk score. Value is normalized
// to [0,1].
type Factor struct {
	Name        string  `json:"name"`
	Value       float64 `json:"value"`
	Weight      float64 `json:"weight"`
	Description string  `json:"description"`
}

// Evaluation is a scored risk snapshot for a wallet, valid until expiresAt.
type Evaluation struct {
	id              uuid.UUID
	walletAddress   string
	riskScore       int
	creditLimit     string
	interestRateBps int
	factors         []Factor
	evaluatedAt     time.Time
	expiresAt       time.Time
}

// NewEvaluation scores the given factors and derives the advisory credit
// limit and interest rate.
func NewEvaluation(
	walletAddress string,
	factors []Factor,
	baseCreditLimitCents int64,
	baseRateBps int,
	ttl time.Duration,
	now time.Time,
) *Evaluation {
	score := Score(factors)

	limitCents := baseCreditLimitCents * int64(score) / 100
	rateBps := int(math.Round(float64(baseRateBps) + float64(baseRateBps)*(1-float64(100-score)/100)))

	return &Evaluation{
		id:              uuid.New(),
		walletAddress:   walletAddress,
		riskScore:       score,
		creditLimit:     formatCents(limitCents),
		interestRateBps: rateBps,
		factors:         factors,
		evaluatedAt:     now,
		expiresAt:       now.Add(ttl),
	}
}

func ReconstructEvaluation(
	id uuid.UUID,
	walletAddress string,
	riskScore int,
	creditLimit string,
	interestRateBps int,
	factors []Factor,
	evaluatedAt, expiresAt time.Time,
) *Evaluation {
	return &Evaluation{
		id:              id,
		walletAddress:   walletAddress,
		riskScore:       riskScore,
		creditLimit:     creditLimit,
		interestRateBps: interestRateBps,
		factors:         factors,
		evaluatedAt:     evaluatedAt,
		expiresAt:       expiresAt,
	}
}

// Score computes round(100 * Σ value·weight), clamped to [0,100].
func Score(factors []Factor) int {
	var weighted float64
	for _, f := range factors {
		weighted += f.Value * f.Weight
	}
	score := int(math.Round(weighted * 100))
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// IsValidAt reports whether the evaluation is still inside its validity
// window at t.
func (e *Evaluation) IsValidAt(t time.Time) bool {
	return t.Before(e.expiresAt)
}

func (e *Evaluation) ID() uuid.UUID         { return e.id }
func (e *Evaluation) WalletAddress() string { return e.walletAddress }
func (e *Evaluation) RiskScore() int        { return e.riskScore }
func (e *Evaluation) CreditLimit() string   { return e.creditLimit }
func (e *Evaluation) InterestRateBps() int  { return e.interestRateBps }
func (e *Evaluation) EvaluatedAt() time.Time { return e.evaluatedAt }
func (e *Evaluation) ExpiresAt() time.Time  { return e.expiresAt }

func (e *Evaluation) Factors() []Factor {
	out := make([]Factor, len(e.factors))
	copy(out, e.factors)
	return out
}

func formatCents(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
