package calc

import "github.com/shopspring/decimal"

var one = decimal.NewFromInt(1)

// ConsumerPrice turns a spot price into what is actually paid per kWh:
// the spot price plus a fixed surcharge (grid tariff, energy tax), with VAT
// applied to the sum. vat is a fraction, i.e. 0.25 for 25%.
func ConsumerPrice(spot, surcharge, vat decimal.Decimal) decimal.Decimal {
	return spot.Add(surcharge).Mul(one.Add(vat))
}

// PriceAdjuster converts spot prices from providers that publish raw market
// prices, making them comparable with providers that publish totals.
type PriceAdjuster struct {
	Surcharge decimal.Decimal // Per kWh, excluding VAT
	Vat       decimal.Decimal // Fraction, 0.25 for 25%
}

func (a PriceAdjuster) Apply(spot decimal.Decimal) decimal.Decimal {
	return ConsumerPrice(spot, a.Surcharge, a.Vat)
}
