// Package risk provides the advisory risk evaluator plugged into the
// transfer engine. Assessments are signals only; the engine logs them
// and never blocks a transfer on their account.
package risk

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/peerpay/peerledger/internal/infrastructure/metrics"
	"github.com/peerpay/peerledger/internal/usecase"
)

// Pattern is a single detection rule contributing a weighted score.
type Pattern struct {
	Name   string
	Detect func(usecase.RiskInput) bool
	Weight int
}

// Evaluator scores transfer attempts against a set of patterns.
type Evaluator struct {
	patterns []Pattern
	metrics  *metrics.Metrics
}

// NewEvaluator creates an Evaluator with the default pattern set.
// metrics may be nil.
func NewEvaluator(m *metrics.Metrics) *Evaluator {
	largeMultiple := decimal.NewFromInt(5)
	largeAbsolute := decimal.NewFromInt(10000)

	return &Evaluator{
		metrics: m,
		patterns: []Pattern{
			{
				// Amount dwarfing the sender's balance is the classic
				// fat-finger or account-takeover signal.
				Name: "amount_exceeds_balance_multiple",
				Detect: func(in usecase.RiskInput) bool {
					if in.SenderBalance.LessThanOrEqual(decimal.Zero) {
						return false
					}
					return in.Amount.GreaterThan(in.SenderBalance.Mul(largeMultiple))
				},
				Weight: 40,
			},
			{
				Name: "large_amount",
				Detect: func(in usecase.RiskInput) bool {
					return in.Amount.GreaterThan(largeAbsolute)
				},
				Weight: 30,
			},
			{
				Name: "drains_balance",
				Detect: func(in usecase.RiskInput) bool {
					return in.SenderBalance.IsPositive() && in.Amount.Equal(in.SenderBalance)
				},
				Weight: 10,
			},
		},
	}
}

// NewEvaluatorWithPatterns creates an Evaluator with a custom pattern
// set, for callers that tune or extend the defaults.
func NewEvaluatorWithPatterns(patterns []Pattern) *Evaluator {
	return &Evaluator{patterns: patterns}
}

// Evaluate scores the input against every pattern. The score is capped
// at 100.
func (e *Evaluator) Evaluate(_ context.Context, input usecase.RiskInput) usecase.RiskAssessment {
	var assessment usecase.RiskAssessment

	for _, p := range e.patterns {
		if p.Detect(input) {
			assessment.Score += p.Weight
			assessment.Flags = append(assessment.Flags, p.Name)

			if e.metrics != nil {
				e.metrics.RiskFlags.WithLabelValues(p.Name).Inc()
			}
		}
	}

	if assessment.Score > 100 {
		assessment.Score = 100
	}

	return assessment
}
