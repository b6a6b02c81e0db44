// Package engine routes transactions across providers: it orders candidates
// by strategy, drives the attempt loop against the outcome simulator, and
// classifies each decline to decide between failover and giving up.
//
// The engine holds no state across calls. Every Route invocation is a pure
// computation over its inputs, so independent transactions may be routed
// concurrently without coordination.
package engine

import (
	"github.com/rs/zerolog/log"

	"github.com/fashionforward/psp-router/internal/catalog"
	"github.com/fashionforward/psp-router/internal/model"
	"github.com/fashionforward/psp-router/internal/simulator"
)

// maxDeclineAttempts caps how many counting (non-cascade) declines are
// tolerated before the transaction is declared final-declined.
const maxDeclineAttempts = 3

// Engine orchestrates provider selection and the retry loop.
type Engine struct {
	catalog *catalog.Catalog
	sim     *simulator.Simulator
}

// New creates a routing engine over the given catalog and simulator.
func New(cat *catalog.Catalog, sim *simulator.Simulator) *Engine {
	return &Engine{catalog: cat, sim: sim}
}

// Route attempts a transaction across the country's providers in strategy
// order. Retryable declines fail over to the next provider until the decline
// budget is spent; terminal declines stop immediately; unavailable providers
// are skipped without consuming budget. The provider list length is a hard
// outer bound regardless of budget.
func (e *Engine) Route(tx *model.Transaction, strategy model.RoutingStrategy) (*model.RoutingResult, error) {
	return e.route(tx, strategy, maxDeclineAttempts)
}

// RouteSingleAttempt is the no-retry baseline: identical machinery, but the
// loop ends after the first counting attempt whether it was terminal or
// retryable. Genuinely down providers are still skipped, matching how a
// naive integration behaves today.
func (e *Engine) RouteSingleAttempt(tx *model.Transaction) (*model.RoutingResult, error) {
	return e.route(tx, model.DefaultStrategy, 1)
}

func (e *Engine) route(tx *model.Transaction, strategy model.RoutingStrategy, declineBudget int) (*model.RoutingResult, error) {
	providers, err := e.catalog.ProvidersFor(tx.Country)
	if err != nil {
		return nil, err
	}
	ordered := OrderProviders(providers, strategy)

	result := &model.RoutingResult{
		TransactionID: tx.ID,
		Strategy:      strategy,
	}
	declineAttempts := 0

	for i := range ordered {
		provider := &ordered[i]
		outcome := e.sim.Simulate(tx, provider)

		record := model.AttemptRecord{
			ProviderID:    outcome.ProviderID,
			ProviderName:  outcome.ProviderName,
			Approved:      outcome.Approved,
			DeclineReason: outcome.DeclineReason,
			LatencyMS:     outcome.LatencyMS,
			AttemptNumber: len(result.Attempts) + 1,
			Counted:       true,
		}

		if outcome.Approved {
			result.Attempts = append(result.Attempts, record)
			result.TotalLatencyMS += outcome.LatencyMS
			result.Approved = true
			result.FinalProvider = provider.ID
			break
		}

		switch Classify(outcome.DeclineReason) {
		case CategoryCascade:
			// Provider was down: record the attempt but spend no budget.
			record.Counted = false
			result.Attempts = append(result.Attempts, record)
			result.TotalLatencyMS += outcome.LatencyMS
			log.Debug().
				Str("transaction_id", tx.ID).
				Str("provider_id", provider.ID).
				Msg("provider unavailable, cascading")
			continue

		case CategoryTerminal:
			result.Attempts = append(result.Attempts, record)
			result.TotalLatencyMS += outcome.LatencyMS
			log.Debug().
				Str("transaction_id", tx.ID).
				Str("provider_id", provider.ID).
				Str("reason", string(outcome.DeclineReason)).
				Msg("terminal decline, stopping")
			result.TotalAttempts = len(result.Attempts)
			return result, nil

		case CategoryRetryable:
			result.Attempts = append(result.Attempts, record)
			result.TotalLatencyMS += outcome.LatencyMS
			declineAttempts++
			if declineAttempts >= declineBudget {
				result.TotalAttempts = len(result.Attempts)
				return result, nil
			}
		}
	}

	result.TotalAttempts = len(result.Attempts)
	return result, nil
}
