// Package dataset generates reproducible test transactions for
// FashionForward's Brazil, Mexico, and Colombia operations. A fixed seed
// drives the generator, so every run produces the same batch; performance
// reports built from it are comparable across runs.
package dataset

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fashionforward/psp-router/internal/model"
)

// Realistic but fake BIN pools per country.
var (
	brazilBINs   = []string{"411111", "510510", "376411"}
	mexicoBINs   = []string{"424242", "551234", "371449"}
	colombiaBINs = []string{"431940", "520082", "378282"}
)

// dataSeed makes the generator reproducible.
const dataSeed = 42

// DefaultSize is the canonical dataset size used for reports and demos.
const DefaultSize = 210

// businessDay is the date the generated timestamps are spread across.
var businessDay = time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

// Generate produces count transactions split in thirds across the three
// countries, with weighted amounts, a small recurring customer base, and
// timestamps across a business day (08:00-20:00 UTC).
func Generate(count int) []model.Transaction {
	rng := rand.New(rand.NewSource(dataSeed))
	transactions := make([]model.Transaction, 0, count)

	countries := []struct {
		country  model.Country
		currency model.Currency
		bins     []string
	}{
		{model.CountryBrazil, model.CurrencyBRL, brazilBINs},
		{model.CountryMexico, model.CurrencyMXN, mexicoBINs},
		{model.CountryColombia, model.CurrencyCOP, colombiaBINs},
	}

	for i := 0; i < count; i++ {
		c := countries[i%3]

		bin := c.bins[rng.Intn(len(c.bins))]
		last4 := fmt.Sprintf("%04d", rng.Intn(10000))
		customerID := fmt.Sprintf("cust_%03d", pickCustomer(rng))

		hour := 8 + (i * 12 / count)
		timestamp := businessDay.Add(
			time.Duration(hour)*time.Hour +
				time.Duration(rng.Intn(60))*time.Minute +
				time.Duration(rng.Intn(60))*time.Second)

		transactions = append(transactions, model.Transaction{
			ID:         fmt.Sprintf("txn_%04d", i+1),
			Amount:     pickAmount(rng),
			Currency:   c.currency,
			Country:    c.country,
			CardBIN:    bin,
			CardLast4:  last4,
			CustomerID: customerID,
			Timestamp:  timestamp,
		})
	}

	return transactions
}

// Default returns the canonical 210-transaction dataset.
func Default() []model.Transaction {
	return Generate(DefaultSize)
}

// pickCustomer models 15 customers with a top-heavy distribution: 30% of
// transactions from the top three, 30% from a mid tier, the rest long tail.
func pickCustomer(rng *rand.Rand) int {
	roll := rng.Float64()
	switch {
	case roll < 0.30:
		return 1 + rng.Intn(3)
	case roll < 0.60:
		return 4 + rng.Intn(5)
	default:
		return 9 + rng.Intn(7)
	}
}

// pickAmount draws a cent-precise amount with a weighted split: 40% small
// (10-100), 35% medium (100-300), 25% large (300-500).
func pickAmount(rng *rand.Rand) decimal.Decimal {
	roll := rng.Float64()
	var lo, hi int64
	switch {
	case roll < 0.40:
		lo, hi = 10_00, 100_00
	case roll < 0.75:
		lo, hi = 100_00, 300_00
	default:
		lo, hi = 300_00, 500_00
	}
	cents := lo + rng.Int63n(hi-lo)
	return decimal.New(cents, -2)
}
