package service

import (
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/fashionforward/psp-router/internal/dataset"
	"github.com/fashionforward/psp-router/internal/engine"
	"github.com/fashionforward/psp-router/internal/model"
)

// avgOrderValueUSD is the reference ticket used to express recovered
// approvals as revenue; amounts stay in local currency and the core does no
// FX conversion.
const avgOrderValueUSD = 250.0

// ReportService runs a transaction batch through the no-retry baseline and
// smart retry, then aggregates the comparison into a PerformanceReport.
type ReportService struct {
	engine *engine.Engine
}

func NewReportService(eng *engine.Engine) *ReportService {
	return &ReportService{engine: eng}
}

// GenerateFromDataset builds the seeded test dataset of the given size and
// reports on it. A non-positive count falls back to the canonical size.
func (s *ReportService) GenerateFromDataset(ctx context.Context, count int, strategyTag string) (*model.PerformanceReport, error) {
	strategy, err := model.ParseStrategy(strategyTag)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		count = dataset.DefaultSize
	}
	return s.Generate(ctx, dataset.Generate(count), strategy)
}

// Generate routes every transaction twice (baseline and smart retry) and
// folds the outcomes into scenario, country, and provider aggregates.
func (s *ReportService) Generate(ctx context.Context, transactions []model.Transaction, strategy model.RoutingStrategy) (*model.PerformanceReport, error) {
	baseline := make([]*model.RoutingResult, len(transactions))
	smart := make([]*model.RoutingResult, len(transactions))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(batchConcurrency)

	for i := range transactions {
		i := i
		tx := &transactions[i]
		g.Go(func() error {
			noRetry, err := s.engine.RouteSingleAttempt(tx)
			if err != nil {
				return err
			}
			withRetry, err := s.engine.Route(tx, strategy)
			if err != nil {
				return err
			}
			baseline[i] = noRetry
			smart[i] = withRetry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &model.PerformanceReport{
		TotalTransactions: len(transactions),
		Strategy:          strategy,
		NoRetry:           summarize(baseline),
		SmartRetry:        summarize(smart),
		ByCountry:         byCountry(transactions, baseline, smart),
		ByProvider:        byProvider(smart),
	}

	additional := report.SmartRetry.Approved - report.NoRetry.Approved
	report.Improvement = model.ImprovementMetrics{
		RateLiftPercentage:        report.SmartRetry.AuthorizationRate - report.NoRetry.AuthorizationRate,
		AdditionalApprovals:       additional,
		EstimatedRevenueRecovered: float64(additional) * avgOrderValueUSD,
	}

	log.Info().
		Int("transactions", len(transactions)).
		Str("strategy", string(strategy)).
		Float64("rate_lift", report.Improvement.RateLiftPercentage).
		Msg("performance report generated")

	return report, nil
}

// summarize folds a scenario's results into counts, rates, and averages.
func summarize(results []*model.RoutingResult) model.ScenarioResult {
	var summary model.ScenarioResult
	if len(results) == 0 {
		return summary
	}

	var attempts, latency int64
	for _, r := range results {
		if r.Approved {
			summary.Approved++
		} else {
			summary.Declined++
		}
		attempts += int64(r.TotalAttempts)
		latency += r.TotalLatencyMS
	}

	n := float64(len(results))
	summary.AuthorizationRate = float64(summary.Approved) / n * 100.0
	summary.AvgAttempts = float64(attempts) / n
	summary.AvgLatencyMS = float64(latency) / n
	return summary
}

// byCountry splits the scenario comparison per country.
func byCountry(transactions []model.Transaction, baseline, smart []*model.RoutingResult) map[string]model.CountryMetrics {
	type tally struct {
		total, noRetry, smartRetry int
	}
	tallies := map[string]*tally{}

	for i := range transactions {
		key := string(transactions[i].Country)
		t, ok := tallies[key]
		if !ok {
			t = &tally{}
			tallies[key] = t
		}
		t.total++
		if baseline[i].Approved {
			t.noRetry++
		}
		if smart[i].Approved {
			t.smartRetry++
		}
	}

	metrics := make(map[string]model.CountryMetrics, len(tallies))
	for country, t := range tallies {
		noRetryRate := float64(t.noRetry) / float64(t.total) * 100.0
		smartRate := float64(t.smartRetry) / float64(t.total) * 100.0
		metrics[country] = model.CountryMetrics{
			NoRetryRate:       noRetryRate,
			SmartRetryRate:    smartRate,
			Improvement:       smartRate - noRetryRate,
			TotalTransactions: t.total,
		}
	}
	return metrics
}

// byProvider aggregates every smart-retry attempt per provider.
func byProvider(smart []*model.RoutingResult) map[string]model.ProviderMetrics {
	type tally struct {
		attempts, approvals int
		latency             int64
	}
	tallies := map[string]*tally{}

	for _, r := range smart {
		for _, a := range r.Attempts {
			t, ok := tallies[a.ProviderName]
			if !ok {
				t = &tally{}
				tallies[a.ProviderName] = t
			}
			t.attempts++
			t.latency += a.LatencyMS
			if a.Approved {
				t.approvals++
			}
		}
	}

	metrics := make(map[string]model.ProviderMetrics, len(tallies))
	for name, t := range tallies {
		metrics[name] = model.ProviderMetrics{
			TotalAttempts: t.attempts,
			Approvals:     t.approvals,
			Declines:      t.attempts - t.approvals,
			ApprovalRate:  float64(t.approvals) / float64(t.attempts) * 100.0,
			AvgLatencyMS:  float64(t.latency) / float64(t.attempts),
		}
	}
	return metrics
}
