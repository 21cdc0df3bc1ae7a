package packages

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// ComputePrices returns the package total and its discounted price: the sum
// of each service's price at its chosen cycle, minus the discount
// percentage. Callers must recompute whenever the service list or the
// discount changes.
func ComputePrices(services []ServiceSelection, discountPercentage decimal.Decimal) (total, discounted decimal.Decimal) {
	total = decimal.Zero
	for _, svc := range services {
		total = total.Add(svc.CyclePrices[svc.Cycle])
	}

	discounted = total
	if discountPercentage.IsPositive() {
		factor := oneHundred.Sub(discountPercentage).Div(oneHundred)
		discounted = total.Mul(factor).Round(2)
	}
	return total, discounted
}
