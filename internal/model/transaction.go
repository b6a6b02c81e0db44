package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Country where FashionForward operates.
type Country string

const (
	CountryBrazil   Country = "Brazil"
	CountryMexico   Country = "Mexico"
	CountryColombia Country = "Colombia"
)

// Currency of a transaction.
type Currency string

const (
	CurrencyBRL Currency = "BRL"
	CurrencyMXN Currency = "MXN"
	CurrencyCOP Currency = "COP"
)

// Countries lists every supported country in catalog order.
func Countries() []Country {
	return []Country{CountryBrazil, CountryMexico, CountryColombia}
}

// CurrencyFor returns the local currency of a supported country.
func CurrencyFor(country Country) (Currency, bool) {
	switch country {
	case CountryBrazil:
		return CurrencyBRL, true
	case CountryMexico:
		return CurrencyMXN, true
	case CountryColombia:
		return CurrencyCOP, true
	}
	return "", false
}

// Transaction is a single payment to be routed. It is immutable input to the
// routing core; card data is limited to the BIN prefix and last four digits.
type Transaction struct {
	ID         string          `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Currency   Currency        `json:"currency"`
	Country    Country         `json:"country"`
	CardBIN    string          `json:"card_bin"`
	CardLast4  string          `json:"card_last4"`
	CustomerID string          `json:"customer_id"`
	Timestamp  time.Time       `json:"timestamp"`
}

// Validate checks the transaction invariants: a positive amount and a
// recognized country/currency pair.
func (t *Transaction) Validate() error {
	if !t.Amount.IsPositive() {
		return fmt.Errorf("amount must be greater than 0, got %s", t.Amount)
	}
	currency, ok := CurrencyFor(t.Country)
	if !ok {
		return fmt.Errorf("unsupported country %q", t.Country)
	}
	if t.Currency != currency {
		return fmt.Errorf("currency %q does not match country %q (expected %s)", t.Currency, t.Country, currency)
	}
	return nil
}

// AmountMinorUnits returns the amount in minor units (cents). The approval
// seed consumes this value, so it must be derived the same way everywhere.
func (t *Transaction) AmountMinorUnits() int64 {
	return t.Amount.Shift(2).IntPart()
}
