package model

// ScenarioResult aggregates routing outcomes for one scenario of a
// performance run (no-retry baseline or smart retry).
type ScenarioResult struct {
	Approved          int     `json:"approved"`
	Declined          int     `json:"declined"`
	AuthorizationRate float64 `json:"authorization_rate"`
	AvgAttempts       float64 `json:"avg_attempts"`
	AvgLatencyMS      float64 `json:"avg_latency_ms"`
}

// ImprovementMetrics quantifies what smart retry recovered over the
// single-attempt baseline.
type ImprovementMetrics struct {
	RateLiftPercentage        float64 `json:"rate_lift_percentage"`
	AdditionalApprovals       int     `json:"additional_approvals"`
	EstimatedRevenueRecovered float64 `json:"estimated_revenue_recovered_usd"`
}

// CountryMetrics compares auth rates per country across the two scenarios.
type CountryMetrics struct {
	NoRetryRate       float64 `json:"no_retry_rate"`
	SmartRetryRate    float64 `json:"smart_retry_rate"`
	Improvement       float64 `json:"improvement"`
	TotalTransactions int     `json:"total_transactions"`
}

// ProviderMetrics summarizes one provider's attempts in the smart-retry
// scenario.
type ProviderMetrics struct {
	TotalAttempts int     `json:"total_attempts"`
	Approvals     int     `json:"approvals"`
	Declines      int     `json:"declines"`
	ApprovalRate  float64 `json:"approval_rate"`
	AvgLatencyMS  float64 `json:"avg_latency_ms"`
}

// PerformanceReport is the full no-retry vs smart-retry comparison for a
// batch of transactions.
type PerformanceReport struct {
	TotalTransactions int                        `json:"total_transactions"`
	Strategy          RoutingStrategy            `json:"strategy"`
	NoRetry           ScenarioResult             `json:"no_retry"`
	SmartRetry        ScenarioResult             `json:"smart_retry"`
	Improvement       ImprovementMetrics         `json:"improvement"`
	ByCountry         map[string]CountryMetrics  `json:"by_country"`
	ByProvider        map[string]ProviderMetrics `json:"by_psp"`
}
