// Package simulator derives provider outcomes deterministically from
// transaction and provider identity. It stands in for real network calls:
// the same (transaction, provider) pair yields the identical outcome and
// latency on every call, in every process, with no wall-clock or OS entropy.
//
// Three tiers of outcomes fall out of the seeding scheme:
//
//   - Terminal declines (~6% of cards): seeded from card fields only, so the
//     same card fails identically at every provider.
//   - Retryable declines: seeded from card fields plus the provider ID, so a
//     card declined by one provider may be approved by another. This is what
//     makes failover worth doing.
//   - Unavailability (~8% of requests): seeded from transaction + provider,
//     independent of the other gates.
package simulator

import (
	"hash/fnv"
	"math/rand"
	"strconv"

	"github.com/fashionforward/psp-router/internal/model"
)

// terminalDeclineRate is the share of cards that fail at every provider.
const terminalDeclineRate = 0.06

// unavailableRate is the share of requests that hit a downed provider.
const unavailableRate = 0.08

// Simulator produces deterministic provider outcomes. It holds no state;
// a single instance is safe for concurrent use.
type Simulator struct{}

// New creates a Simulator.
func New() *Simulator {
	return &Simulator{}
}

// Simulate runs one provider attempt for a transaction.
//
// Decision order: terminal-decline gate, provider-unavailability gate,
// approval roll, retryable-reason selection. Latency is drawn from its own
// seed and populated on every path.
func (s *Simulator) Simulate(tx *model.Transaction, provider *model.ProviderProfile) model.Outcome {
	latency := s.latency(tx, provider)

	if s.isTerminalDeclineCard(tx.CardBIN, tx.CardLast4) {
		return model.Outcome{
			ProviderID:    provider.ID,
			ProviderName:  provider.Name,
			Approved:      false,
			DeclineReason: s.terminalReason(tx.CardBIN, tx.CardLast4),
			LatencyMS:     latency,
		}
	}

	if s.isUnavailable(tx, provider) {
		return model.Outcome{
			ProviderID:    provider.ID,
			ProviderName:  provider.Name,
			Approved:      false,
			DeclineReason: model.ReasonProviderUnavailable,
			LatencyMS:     latency,
		}
	}

	rng := newRNG(approvalSeed(tx.CardBIN, tx.CardLast4, provider.ID, tx.AmountMinorUnits()))
	if rng.Float64() < provider.ApprovalRate {
		return model.Outcome{
			ProviderID:   provider.ID,
			ProviderName: provider.Name,
			Approved:     true,
			LatencyMS:    latency,
		}
	}

	// Next draw from the same stream picks the retryable reason.
	return model.Outcome{
		ProviderID:    provider.ID,
		ProviderName:  provider.Name,
		Approved:      false,
		DeclineReason: retryableReason(rng, provider.DeclineWeights),
		LatencyMS:     latency,
	}
}

// isTerminalDeclineCard gates on card fields only, never the provider, so
// a terminally declining card behaves the same across the whole catalog.
func (s *Simulator) isTerminalDeclineCard(cardBIN, cardLast4 string) bool {
	rng := newRNG(cardSeed(cardBIN, cardLast4))
	return rng.Float64() < terminalDeclineRate
}

// terminalReason picks one of the four terminal reasons with fixed weights
// 45/30/15/10, from a second card-only seed so the reason is also
// provider-independent.
func (s *Simulator) terminalReason(cardBIN, cardLast4 string) model.DeclineReason {
	rng := newRNG(cardSeed(cardBIN, cardLast4) + 1)
	roll := rng.Float64()

	switch {
	case roll < 0.45:
		return model.ReasonInsufficientFunds
	case roll < 0.75:
		return model.ReasonCardExpired
	case roll < 0.90:
		return model.ReasonInvalidCard
	default:
		return model.ReasonStolenCard
	}
}

// isUnavailable gates per attempt on transaction + provider identity. It may
// fire even for cards that would otherwise approve or terminally decline.
func (s *Simulator) isUnavailable(tx *model.Transaction, provider *model.ProviderProfile) bool {
	rng := newRNG(hashFields(tx.ID, provider.ID, "unavailable_check"))
	return rng.Float64() < unavailableRate
}

// latency draws uniformly within the provider's configured bounds.
func (s *Simulator) latency(tx *model.Transaction, provider *model.ProviderProfile) int64 {
	rng := newRNG(hashFields(tx.ID, provider.ID, "latency"))
	span := provider.LatencyMaxMS - provider.LatencyMinMS + 1
	return provider.LatencyMinMS + rng.Int63n(span)
}

// retryableReason walks the provider's weight distribution cumulatively.
func retryableReason(rng *rand.Rand, dist []model.DeclineWeight) model.DeclineReason {
	roll := rng.Float64()
	cumulative := 0.0
	for _, dw := range dist {
		cumulative += dw.Weight
		if roll < cumulative {
			return dw.Reason
		}
	}
	// Unreachable when weights sum to 1.0; the catalog guarantees that.
	return dist[len(dist)-1].Reason
}

// cardSeed hashes card fields only (no provider).
func cardSeed(cardBIN, cardLast4 string) uint64 {
	return hashFields(cardBIN, cardLast4, "card_seed")
}

// approvalSeed hashes card fields, provider ID, and the amount in minor
// units. The provider ID in this seed is what lets the same card approve at
// one provider and decline at another.
func approvalSeed(cardBIN, cardLast4, providerID string, amountMinor int64) uint64 {
	return hashFields(cardBIN, cardLast4, providerID, strconv.FormatInt(amountMinor, 10))
}

// hashFields folds the given fields into a 64-bit FNV-1a digest. Each field
// is terminated with a NUL byte so adjacent fields cannot collide by
// shifting bytes between them.
func hashFields(fields ...string) uint64 {
	h := fnv.New64a()
	for _, f := range fields {
		h.Write([]byte(f))
		h.Write([]byte{0})
	}
	return h.Sum64()
}

// newRNG builds a seeded generator. math/rand's source is covered by the
// Go 1 compatibility promise, so draws are bit-reproducible across builds
// and platforms.
func newRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(int64(seed)))
}
