package response

import (
	"time"

	"creditline-service/internal/domain/risk"
	"creditline-service/internal/jobqueue"
	"creditline-service/internal/usecase/commands"

	"github.com/google/uuid"
)

type RiskEvaluationResponse struct {
	ID              uuid.UUID     `json:"id"`
	WalletAddress   string        `json:"walletAddress"`
	RiskScore       int           `json:"riskScore"`
	CreditLimit     string        `json:"creditLimit"`
	InterestRateBps int           `json:"interestRateBps"`
	Factors         []risk.Factor `json:"factors"`
	EvaluatedAt     time.Time     `json:"evaluatedAt"`
	ExpiresAt       time.Time     `json:"expiresAt"`
	Cached          bool          `json:"cached"`
}

func FromEvaluationResult(result *commands.EvaluationResult) *RiskEvaluationResponse {
	eval := result.Evaluation
	return &RiskEvaluationResponse{
		ID:              eval.ID(),
		WalletAddress:   eval.WalletAddress(),
		RiskScore:       eval.RiskScore(),
		CreditLimit:     eval.CreditLimit(),
		InterestRateBps: eval.InterestRateBps(),
		Factors:         eval.Factors(),
		EvaluatedAt:     eval.EvaluatedAt(),
		ExpiresAt:       eval.ExpiresAt(),
		Cached:          result.Cached,
	}
}

type EvaluationValidityResponse struct {
	WalletAddress string `json:"walletAddress"`
	Valid         bool   `json:"valid"`
}

type SweepResponse struct {
	Removed int `json:"removed"`
}

type FailedJobResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Attempts    int       `json:"attempts"`
	MaxAttempts int       `json:"maxAttempts"`
	LastError   string    `json:"lastError"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func FromFailedJobs(jobs []jobqueue.Job) []FailedJobResponse {
	out := make([]FailedJobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, FailedJobResponse{
			ID:          j.ID,
			Type:        j.Type,
			Attempts:    j.Attempts,
			MaxAttempts: j.MaxAttempts,
			LastError:   j.LastError,
			CreatedAt:   j.CreatedAt,
			UpdatedAt:   j.UpdatedAt,
		})
	}
	return out
}

type EnqueueJobResponse struct {
	JobID string `json:"jobId"`
}
