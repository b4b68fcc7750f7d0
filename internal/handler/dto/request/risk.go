package request

import "strings"

type EvaluateRiskRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required"`
	ForceRefresh  bool   `json:"force_refresh"`
}

func (r EvaluateRiskRequest) GetWalletAddress() string {
	return strings.TrimSpace(r.WalletAddress)
}

type EnqueueJobRequest struct {
	Type        string         `json:"type" binding:"required"`
	Payload     map[string]any `json:"payload,omitempty"`
	MaxAttempts *int           `json:"max_attempts,omitempty"`
	DelayMs     *int64         `json:"delay_ms,omitempty"`
}
