package curator

import "github.com/desertthunder/showtunes/internal/models"

const (
	avgTokensPerRequest   = 200
	costPerThousandTokens = 0.002 // gpt-3.5-turbo pricing
)

// EstimateCost returns the approximate token usage and cost of one generation
// call. The estimate is fixed regardless of the show title; it exists so
// callers can display an expected cost before committing, never to enforce a
// budget.
func EstimateCost(show string) models.CostEstimate {
	return models.CostEstimate{
		EstimatedTokens: avgTokensPerRequest,
		EstimatedCost:   float64(avgTokensPerRequest) / 1000 * costPerThousandTokens,
	}
}
