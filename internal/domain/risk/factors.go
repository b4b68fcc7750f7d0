package risk

// FactorSource gathers the weighted inputs for a wallet's risk score.
type FactorSource interface {
	Factors(walletAddress string) []Factor
}

// PlaceholderFactorSource returns a fixed factor set until a real scoring
// model is plugged in.
type PlaceholderFactorSource struct{}

func NewPlaceholderFactorSource() *PlaceholderFactorSource {
	return &PlaceholderFactorSource{}
}

func (s *PlaceholderFactorSource) Factors(_ string) []Factor {
	return []Factor{
		{Name: "wallet_age", Value: 0.8, Weight: 0.25, Description: "Age of the wallet on chain"},
		{Name: "transaction_history", Value: 0.7, Weight: 0.35, Description: "Volume and regularity of past transactions"},
		{Name: "collateral_ratio", Value: 0.9, Weight: 0.25, Description: "Value of collateral relative to requested credit"},
		{Name: "protocol_reputation", Value: 0.6, Weight: 0.15, Description: "Standing across integrated lending protocols"},
	}
}
