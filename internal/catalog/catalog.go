// Package catalog holds the static provider configuration: three processors
// per supported country, nine in total, with approval rates, latency
// profiles, fees, and decline-reason distributions modeled on LatAm payment
// processors. The catalog is built once at startup and is read-only, so it
// can be shared across concurrent routing calls without synchronization.
package catalog

import (
	"fmt"

	"github.com/fashionforward/psp-router/internal/model"
)

// Catalog is an immutable lookup of provider profiles by country.
type Catalog struct {
	byCountry map[model.Country][]model.ProviderProfile
}

// New builds the fixed provider catalog. Each country carries a primary
// provider with moderate rates, a premium one with the best rate but higher
// fees, and a budget one with a lower rate but cheaper fees.
func New() *Catalog {
	byCountry := map[model.Country][]model.ProviderProfile{
		model.CountryBrazil: {
			{
				ID: "psp_br_1", Name: "PagSeguro", Country: model.CountryBrazil,
				ApprovalRate: 0.78, LatencyMinMS: 200, LatencyMaxMS: 400,
				FeePercent: 2.9, FeeFixedCents: 30,
				BiasReason:     model.ReasonIssuerUnavailable,
				DeclineWeights: weights(model.ReasonIssuerUnavailable, 0.45, 0.20, 0.20, 0.15),
			},
			{
				ID: "psp_br_2", Name: "Cielo", Country: model.CountryBrazil,
				ApprovalRate: 0.82, LatencyMinMS: 150, LatencyMaxMS: 250,
				FeePercent: 3.2, FeeFixedCents: 25,
				BiasReason:     model.ReasonSuspectedFraud,
				DeclineWeights: weights(model.ReasonSuspectedFraud, 0.15, 0.45, 0.25, 0.15),
			},
			{
				ID: "psp_br_3", Name: "Stone", Country: model.CountryBrazil,
				ApprovalRate: 0.68, LatencyMinMS: 300, LatencyMaxMS: 600,
				FeePercent: 2.5, FeeFixedCents: 35,
				BiasReason:     model.ReasonDoNotHonor,
				DeclineWeights: weights(model.ReasonDoNotHonor, 0.15, 0.20, 0.45, 0.20),
			},
		},
		model.CountryMexico: {
			{
				ID: "psp_mx_1", Name: "Conekta", Country: model.CountryMexico,
				ApprovalRate: 0.75, LatencyMinMS: 180, LatencyMaxMS: 350,
				FeePercent: 2.8, FeeFixedCents: 28,
				BiasReason:     model.ReasonProcessorDeclined,
				DeclineWeights: weights(model.ReasonProcessorDeclined, 0.20, 0.15, 0.20, 0.45),
			},
			{
				ID: "psp_mx_2", Name: "OpenPay", Country: model.CountryMexico,
				ApprovalRate: 0.80, LatencyMinMS: 200, LatencyMaxMS: 300,
				FeePercent: 3.1, FeeFixedCents: 22,
				BiasReason:     model.ReasonIssuerUnavailable,
				DeclineWeights: weights(model.ReasonIssuerUnavailable, 0.45, 0.20, 0.15, 0.20),
			},
			{
				ID: "psp_mx_3", Name: "SR Pago", Country: model.CountryMexico,
				ApprovalRate: 0.70, LatencyMinMS: 250, LatencyMaxMS: 500,
				FeePercent: 2.6, FeeFixedCents: 32,
				BiasReason:     model.ReasonSuspectedFraud,
				DeclineWeights: weights(model.ReasonSuspectedFraud, 0.15, 0.45, 0.20, 0.20),
			},
		},
		model.CountryColombia: {
			{
				ID: "psp_co_1", Name: "PayU", Country: model.CountryColombia,
				ApprovalRate: 0.76, LatencyMinMS: 190, LatencyMaxMS: 380,
				FeePercent: 2.7, FeeFixedCents: 29,
				BiasReason:     model.ReasonDoNotHonor,
				DeclineWeights: weights(model.ReasonDoNotHonor, 0.20, 0.15, 0.45, 0.20),
			},
			{
				ID: "psp_co_2", Name: "Wompi", Country: model.CountryColombia,
				ApprovalRate: 0.83, LatencyMinMS: 160, LatencyMaxMS: 280,
				FeePercent: 3.3, FeeFixedCents: 20,
				BiasReason:     model.ReasonIssuerUnavailable,
				DeclineWeights: weights(model.ReasonIssuerUnavailable, 0.45, 0.20, 0.20, 0.15),
			},
			{
				ID: "psp_co_3", Name: "Bold", Country: model.CountryColombia,
				ApprovalRate: 0.65, LatencyMinMS: 280, LatencyMaxMS: 550,
				FeePercent: 2.4, FeeFixedCents: 38,
				BiasReason:     model.ReasonProcessorDeclined,
				DeclineWeights: weights(model.ReasonProcessorDeclined, 0.15, 0.20, 0.20, 0.45),
			},
		},
	}

	return &Catalog{byCountry: byCountry}
}

// ProvidersFor returns the configured providers for a country in catalog
// order. The returned slice is a fresh copy; callers may reorder it freely.
func (c *Catalog) ProvidersFor(country model.Country) ([]model.ProviderProfile, error) {
	providers, ok := c.byCountry[country]
	if !ok {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownCountry, country)
	}
	out := make([]model.ProviderProfile, len(providers))
	copy(out, providers)
	return out, nil
}

// All returns every configured provider across all countries, in country
// then catalog order.
func (c *Catalog) All() []model.ProviderProfile {
	var all []model.ProviderProfile
	for _, country := range model.Countries() {
		all = append(all, c.byCountry[country]...)
	}
	return all
}

// Size returns the number of configured providers.
func (c *Catalog) Size() int {
	n := 0
	for _, providers := range c.byCountry {
		n += len(providers)
	}
	return n
}

// weights builds a decline distribution in the fixed reason order
// issuer_unavailable, suspected_fraud, do_not_honor, processor_declined.
// The order matters: the simulator walks it cumulatively.
func weights(bias model.DeclineReason, issuer, fraud, honor, processor float64) []model.DeclineWeight {
	dist := []model.DeclineWeight{
		{Reason: model.ReasonIssuerUnavailable, Weight: issuer},
		{Reason: model.ReasonSuspectedFraud, Weight: fraud},
		{Reason: model.ReasonDoNotHonor, Weight: honor},
		{Reason: model.ReasonProcessorDeclined, Weight: processor},
	}
	for _, dw := range dist {
		if dw.Reason == bias && dw.Weight < 0.45 {
			panic(fmt.Sprintf("bias reason %s must carry the heaviest weight", bias))
		}
	}
	return dist
}
