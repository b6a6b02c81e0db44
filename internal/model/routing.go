package model

import "fmt"

// RoutingStrategy selects how providers are ordered before attempting.
type RoutingStrategy string

const (
	// StrategyApprovals tries the highest approval rate first.
	StrategyApprovals RoutingStrategy = "optimize_for_approvals"
	// StrategyCost tries the cheapest provider first.
	StrategyCost RoutingStrategy = "optimize_for_cost"
	// StrategyBalanced weighs approval rate (70%) against cost (30%).
	StrategyBalanced RoutingStrategy = "balanced"
)

// DefaultStrategy is used when a caller does not pick one.
const DefaultStrategy = StrategyApprovals

// ParseStrategy maps a wire tag to a RoutingStrategy. An empty tag falls back
// to the default; anything else unrecognized is ErrInvalidStrategy.
func ParseStrategy(s string) (RoutingStrategy, error) {
	switch RoutingStrategy(s) {
	case StrategyApprovals, StrategyCost, StrategyBalanced:
		return RoutingStrategy(s), nil
	case "":
		return DefaultStrategy, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStrategy, s)
}

// AttemptRecord is one entry in a transaction's routing trail. Counted is
// false only for provider-unavailable cascades, which do not consume the
// retry budget.
type AttemptRecord struct {
	ProviderID    string        `json:"provider_id"`
	ProviderName  string        `json:"provider_name"`
	Approved      bool          `json:"approved"`
	DeclineReason DeclineReason `json:"decline_reason,omitempty"`
	LatencyMS     int64         `json:"latency_ms"`
	AttemptNumber int           `json:"attempt_number"`
	Counted       bool          `json:"counted"`
}

// RoutingResult is the final verdict for one transaction. It is constructed
// once by the engine and never mutated afterwards.
type RoutingResult struct {
	TransactionID  string          `json:"transaction_id"`
	Approved       bool            `json:"approved"`
	FinalProvider  string          `json:"final_provider,omitempty"`
	Attempts       []AttemptRecord `json:"attempts"`
	TotalAttempts  int             `json:"total_attempts"`
	TotalLatencyMS int64           `json:"total_latency_ms"`
	Strategy       RoutingStrategy `json:"strategy"`
}
