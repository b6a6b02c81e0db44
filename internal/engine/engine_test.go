package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fashionforward/psp-router/internal/catalog"
	"github.com/fashionforward/psp-router/internal/model"
	"github.com/fashionforward/psp-router/internal/simulator"
)

func newTestEngine() *Engine {
	return New(catalog.New(), simulator.New())
}

func makeTransaction(last4 string, amount float64) *model.Transaction {
	return &model.Transaction{
		ID:         fmt.Sprintf("txn_%s", last4),
		Amount:     decimal.NewFromFloat(amount),
		Currency:   model.CurrencyBRL,
		Country:    model.CountryBrazil,
		CardBIN:    "411111",
		CardLast4:  last4,
		CustomerID: "cust_001",
		Timestamp:  time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func countingDeclines(result *model.RoutingResult) int {
	n := 0
	for _, a := range result.Attempts {
		if a.Counted && !a.Approved {
			n++
		}
	}
	return n
}

func TestRoute_UnknownCountry(t *testing.T) {
	eng := newTestEngine()
	tx := makeTransaction("0001", 100.0)
	tx.Country = model.Country("Atlantis")

	_, err := eng.Route(tx, model.StrategyApprovals)
	assert.ErrorIs(t, err, model.ErrUnknownCountry)

	_, err = eng.RouteSingleAttempt(tx)
	assert.ErrorIs(t, err, model.ErrUnknownCountry)
}

func TestRoute_Deterministic(t *testing.T) {
	eng := newTestEngine()
	tx := makeTransaction("1234", 150.0)

	first, err := eng.Route(tx, model.StrategyApprovals)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := eng.Route(tx, model.StrategyApprovals)
		require.NoError(t, err)
		assert.Equal(t, first, again, "replaying the same transaction must reproduce the result")
	}
}

func TestRoute_InvariantsOverSample(t *testing.T) {
	eng := newTestEngine()

	for i := 0; i < 500; i++ {
		tx := makeTransaction(fmt.Sprintf("%04d", i), 50.0+float64(i))
		result, err := eng.Route(tx, model.StrategyApprovals)
		require.NoError(t, err)

		// Hard outer bound: never more attempts than providers.
		assert.LessOrEqual(t, result.TotalAttempts, 3)
		assert.Equal(t, len(result.Attempts), result.TotalAttempts)

		// Counting declines never exceed the retry budget.
		assert.LessOrEqual(t, countingDeclines(result), 3)

		// Total latency is the sum over every attempt, cascades included.
		var latency int64
		for _, a := range result.Attempts {
			latency += a.LatencyMS
			if a.DeclineReason == model.ReasonProviderUnavailable {
				assert.False(t, a.Counted, "cascade attempts must not count")
			} else {
				assert.True(t, a.Counted)
			}
		}
		assert.Equal(t, latency, result.TotalLatencyMS)

		// Sequence numbers are 1..n in order.
		for j, a := range result.Attempts {
			assert.Equal(t, j+1, a.AttemptNumber)
		}

		if result.Approved {
			last := result.Attempts[len(result.Attempts)-1]
			assert.True(t, last.Approved)
			assert.Equal(t, last.ProviderID, result.FinalProvider)
		} else {
			assert.Empty(t, result.FinalProvider)
		}
	}
}

func TestRoute_TerminalShortCircuit(t *testing.T) {
	eng := newTestEngine()

	found := false
	for i := 0; i < 500; i++ {
		tx := makeTransaction(fmt.Sprintf("%04d", i), 100.0)
		result, err := eng.Route(tx, model.StrategyApprovals)
		require.NoError(t, err)

		for j, a := range result.Attempts {
			if a.DeclineReason == "" || Classify(a.DeclineReason) != CategoryTerminal {
				continue
			}
			found = true
			assert.Equal(t, len(result.Attempts)-1, j,
				"no provider may be attempted after a terminal decline")
			assert.False(t, result.Approved)
		}
	}
	require.True(t, found, "sample should contain at least one terminal decline")
}

func TestRoute_RetryableFailoverCanApprove(t *testing.T) {
	eng := newTestEngine()

	// Probe cards until one declines retryably at the first provider and is
	// approved by a later one; failover exists precisely for these.
	found := false
	for i := 0; i < 1000 && !found; i++ {
		tx := makeTransaction(fmt.Sprintf("%04d", i), 150.0)
		result, err := eng.Route(tx, model.StrategyApprovals)
		require.NoError(t, err)

		if len(result.Attempts) < 2 || !result.Approved {
			continue
		}
		first := result.Attempts[0]
		if first.Counted && !first.Approved && Classify(first.DeclineReason) == CategoryRetryable {
			found = true
			assert.True(t, result.Attempts[len(result.Attempts)-1].Approved)
			assert.GreaterOrEqual(t, result.TotalAttempts, 2)
		}
	}
	assert.True(t, found, "some card should be rescued by failover")
}

func TestRouteSingleAttempt_OneCountingAttempt(t *testing.T) {
	eng := newTestEngine()

	for i := 0; i < 300; i++ {
		tx := makeTransaction(fmt.Sprintf("%04d", i), 80.0)
		result, err := eng.RouteSingleAttempt(tx)
		require.NoError(t, err)

		counting := 0
		for _, a := range result.Attempts {
			if a.Counted {
				counting++
			}
		}
		assert.LessOrEqual(t, counting, 1,
			"baseline must stop after the first counting attempt")

		// Any preceding entries can only be cascades.
		for _, a := range result.Attempts[:len(result.Attempts)-1] {
			assert.False(t, a.Counted)
			assert.Equal(t, model.ReasonProviderUnavailable, a.DeclineReason)
		}
	}
}

func TestRouteSingleAttempt_DeclinedEvenIfLaterProviderWouldApprove(t *testing.T) {
	eng := newTestEngine()

	found := false
	for i := 0; i < 1000 && !found; i++ {
		tx := makeTransaction(fmt.Sprintf("%04d", i), 150.0)

		smart, err := eng.Route(tx, model.StrategyApprovals)
		require.NoError(t, err)
		baseline, err := eng.RouteSingleAttempt(tx)
		require.NoError(t, err)

		if smart.Approved && smart.TotalAttempts > 1 && !baseline.Approved {
			found = true
			assert.False(t, baseline.Approved)
			assert.Equal(t, 1, countingAttempts(baseline))
		}
	}
	assert.True(t, found, "failover should rescue transactions the baseline loses")
}

func countingAttempts(result *model.RoutingResult) int {
	n := 0
	for _, a := range result.Attempts {
		if a.Counted {
			n++
		}
	}
	return n
}

func TestRoute_SmartRetryNeverLosesToBaseline(t *testing.T) {
	eng := newTestEngine()

	for i := 0; i < 300; i++ {
		tx := makeTransaction(fmt.Sprintf("%04d", i), 120.0)

		smart, err := eng.Route(tx, model.StrategyApprovals)
		require.NoError(t, err)
		baseline, err := eng.RouteSingleAttempt(tx)
		require.NoError(t, err)

		if baseline.Approved {
			assert.True(t, smart.Approved,
				"smart retry starts with the same provider, so it keeps every baseline approval")
		}
	}
}

func TestRoute_StrategyRecordedOnResult(t *testing.T) {
	eng := newTestEngine()
	tx := makeTransaction("1234", 150.0)

	for _, strategy := range []model.RoutingStrategy{model.StrategyApprovals, model.StrategyCost, model.StrategyBalanced} {
		result, err := eng.Route(tx, strategy)
		require.NoError(t, err)
		assert.Equal(t, strategy, result.Strategy)
		assert.NotEmpty(t, result.Attempts)
	}
}

func TestRoute_CostStrategyTriesCheapestFirst(t *testing.T) {
	eng := newTestEngine()

	// Stone is Brazil's cheapest provider (2.5% + 35c = 2.85).
	for i := 0; i < 50; i++ {
		tx := makeTransaction(fmt.Sprintf("%04d", i), 60.0)
		result, err := eng.Route(tx, model.StrategyCost)
		require.NoError(t, err)
		require.NotEmpty(t, result.Attempts)
		assert.Equal(t, "psp_br_3", result.Attempts[0].ProviderID)
	}
}
