package model

// DeclineReason identifies why a provider declined a transaction. The set is
// closed: the classifier in internal/engine maps every member to exactly one
// retry category, and a value outside this set is a programming error.
type DeclineReason string

const (
	// Terminal declines: the card fails at every provider.
	ReasonInsufficientFunds DeclineReason = "insufficient_funds"
	ReasonCardExpired       DeclineReason = "card_expired"
	ReasonInvalidCard       DeclineReason = "invalid_card"
	ReasonStolenCard        DeclineReason = "stolen_card"

	// Retryable declines: a different provider may approve.
	ReasonIssuerUnavailable DeclineReason = "issuer_unavailable"
	ReasonSuspectedFraud    DeclineReason = "suspected_fraud"
	ReasonDoNotHonor        DeclineReason = "do_not_honor"
	ReasonProcessorDeclined DeclineReason = "processor_declined"

	// The provider itself was down; cascade without penalty.
	ReasonProviderUnavailable DeclineReason = "provider_unavailable"
)

// DeclineReasons lists every member of the closed reason set.
func DeclineReasons() []DeclineReason {
	return []DeclineReason{
		ReasonInsufficientFunds,
		ReasonCardExpired,
		ReasonInvalidCard,
		ReasonStolenCard,
		ReasonIssuerUnavailable,
		ReasonSuspectedFraud,
		ReasonDoNotHonor,
		ReasonProcessorDeclined,
		ReasonProviderUnavailable,
	}
}

// DeclineWeight pairs a retryable reason with its probability mass in a
// provider's decline distribution.
type DeclineWeight struct {
	Reason DeclineReason
	Weight float64
}

// ProviderProfile is the static configuration of one payment processor.
// Profiles are loaded once at startup and never mutated.
type ProviderProfile struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Country       Country `json:"country"`
	ApprovalRate  float64 `json:"approval_rate"`
	LatencyMinMS  int64   `json:"latency_min_ms"`
	LatencyMaxMS  int64   `json:"latency_max_ms"`
	FeePercent    float64 `json:"fee_percent"`
	FeeFixedCents int64   `json:"fee_fixed_cents"`

	// DeclineWeights is the provider's retryable-reason distribution. Weights
	// sum to 1.0, with BiasReason carrying the heaviest share.
	DeclineWeights []DeclineWeight `json:"-"`
	BiasReason     DeclineReason   `json:"bias_reason"`
}

// EffectiveFee collapses the fee model into a single comparable number:
// percentage points plus the fixed fee expressed in the same scale.
func (p *ProviderProfile) EffectiveFee() float64 {
	return p.FeePercent + float64(p.FeeFixedCents)/100.0
}

// Outcome is the simulated result of one provider attempt. Approved and
// DeclineReason are mutually exclusive; LatencyMS is always populated.
type Outcome struct {
	ProviderID    string        `json:"provider_id"`
	ProviderName  string        `json:"provider_name"`
	Approved      bool          `json:"approved"`
	DeclineReason DeclineReason `json:"decline_reason,omitempty"`
	LatencyMS     int64         `json:"latency_ms"`
}
