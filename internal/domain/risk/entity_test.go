//go:build unit

package risk_test

import (
	"testing"
	"time"

	"creditline-service/internal/domain/risk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestScore(t *testing.T) {
	cases := []struct {
		name    string
		factors []risk.Factor
		want    int
	}{
		{
			name:    "placeholder factor set",
			factors: risk.NewPlaceholderFactorSource().Factors("0xabc"),
			want:    76,
		},
		{
			name: "single factor",
			factors: []risk.Factor{
				{Name: "a", Value: 0.5, Weight: 1.0},
			},
			want: 50,
		},
		{
			name:    "no factors",
			factors: nil,
			want:    0,
		},
		{
			name: "rounding",
			factors: []risk.Factor{
				{Name: "a", Value: 0.505, Weight: 1.0},
			},
			want: 51,
		},
		{
			name: "clamped to 100",
			factors: []risk.Factor{
				{Name: "a", Value: 1.0, Weight: 1.5},
			},
			want: 100,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, risk.Score(tc.factors))
		})
	}
}

func TestNewEvaluation(t *testing.T) {
	factors := risk.NewPlaceholderFactorSource().Factors("0xabc")
	eval := risk.NewEvaluation("0xabc", factors, 1000000, 500, 24*time.Hour, now)

	assert.Equal(t, "0xabc", eval.WalletAddress())
	assert.Equal(t, 76, eval.RiskScore())
	// 1000000 cents scaled by 76/100
	assert.Equal(t, "7600.00", eval.CreditLimit())
	// 500 + 500 * (1 - 24/100)
	assert.Equal(t, 880, eval.InterestRateBps())
	assert.Equal(t, now, eval.EvaluatedAt())
	assert.Equal(t, now.Add(24*time.Hour), eval.ExpiresAt())
	assert.Len(t, eval.Factors(), 4)
}

func TestEvaluationValidity(t *testing.T) {
	eval := risk.NewEvaluation("0xabc", nil, 1000000, 500, 24*time.Hour, now)

	require.True(t, eval.ExpiresAt().After(eval.EvaluatedAt()))
	assert.True(t, eval.IsValidAt(now))
	assert.True(t, eval.IsValidAt(now.Add(24*time.Hour-time.Second)))
	assert.False(t, eval.IsValidAt(now.Add(24*time.Hour)))
	assert.False(t, eval.IsValidAt(now.Add(48*time.Hour)))
}
