package dataset

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fashionforward/psp-router/internal/model"
)

func TestGenerate_Count(t *testing.T) {
	assert.Len(t, Generate(200), 200)
	assert.Len(t, Default(), DefaultSize)
}

func TestGenerate_Deterministic(t *testing.T) {
	first := Generate(50)
	second := Generate(50)

	require.Len(t, second, len(first))
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
		assert.True(t, first[i].Amount.Equal(second[i].Amount))
		assert.Equal(t, first[i].CardBIN, second[i].CardBIN)
		assert.Equal(t, first[i].CardLast4, second[i].CardLast4)
		assert.Equal(t, first[i].Timestamp, second[i].Timestamp)
	}
}

func TestGenerate_CountryDistribution(t *testing.T) {
	data := Default()

	counts := map[model.Country]int{}
	for _, tx := range data {
		counts[tx.Country]++
	}

	assert.Equal(t, 70, counts[model.CountryBrazil])
	assert.Equal(t, 70, counts[model.CountryMexico])
	assert.Equal(t, 70, counts[model.CountryColombia])
}

func TestGenerate_TransactionsAreValid(t *testing.T) {
	for _, tx := range Default() {
		tx := tx
		require.NoError(t, tx.Validate(), "transaction %s", tx.ID)
	}
}

func TestGenerate_AmountRange(t *testing.T) {
	lo := decimal.NewFromInt(10)
	hi := decimal.NewFromInt(500)

	for _, tx := range Default() {
		assert.True(t, tx.Amount.GreaterThanOrEqual(lo), "amount %s too small for %s", tx.Amount, tx.ID)
		assert.True(t, tx.Amount.LessThanOrEqual(hi), "amount %s too large for %s", tx.Amount, tx.ID)
		assert.True(t, tx.Amount.Exponent() >= -2, "amount %s has sub-cent precision", tx.Amount)
	}
}

func TestGenerate_BINsMatchCountry(t *testing.T) {
	pools := map[model.Country][]string{
		model.CountryBrazil:   brazilBINs,
		model.CountryMexico:   mexicoBINs,
		model.CountryColombia: colombiaBINs,
	}

	for _, tx := range Default() {
		assert.Contains(t, pools[tx.Country], tx.CardBIN,
			"BIN %s invalid for %s", tx.CardBIN, tx.Country)
	}
}

func TestGenerate_UniqueTransactionIDs(t *testing.T) {
	data := Default()
	seen := make(map[string]bool, len(data))
	for _, tx := range data {
		assert.False(t, seen[tx.ID], "duplicate id %s", tx.ID)
		seen[tx.ID] = true
	}
}

func TestGenerate_CustomerSpread(t *testing.T) {
	customers := make(map[string]bool)
	for _, tx := range Default() {
		customers[tx.CustomerID] = true
	}
	assert.GreaterOrEqual(t, len(customers), 10, "expected a spread of distinct customers")
	assert.LessOrEqual(t, len(customers), 15)
}
