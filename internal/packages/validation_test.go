package packages

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verilocal/admin-gateway/pkg/enums"
)

func TestValidateTitle(t *testing.T) {
	assert.NotEmpty(t, ValidateTitle(""))
	assert.NotEmpty(t, ValidateTitle("a"))
	assert.NotEmpty(t, ValidateTitle(strings.Repeat("x", 101)))
	assert.Empty(t, ValidateTitle("Starter"))
	assert.Empty(t, ValidateTitle(strings.Repeat("x", 100)))
}

func TestValidateDescription(t *testing.T) {
	assert.NotEmpty(t, ValidateDescription("too short"))
	assert.Empty(t, ValidateDescription("long enough description"))
}

func TestValidatePromoCode(t *testing.T) {
	assert.Empty(t, ValidatePromoCode(""), "promo code is optional")
	assert.Empty(t, ValidatePromoCode("SUMMER-2026"))
	assert.Empty(t, ValidatePromoCode("abc"))
	assert.NotEmpty(t, ValidatePromoCode("ab"))
	assert.NotEmpty(t, ValidatePromoCode("has space"))
	assert.NotEmpty(t, ValidatePromoCode(strings.Repeat("A", 21)))
}

func TestValidateDiscountBounds(t *testing.T) {
	assert.NotEmpty(t, ValidateDiscount(decimal.NewFromInt(-1)))
	assert.NotEmpty(t, ValidateDiscount(decimal.NewFromInt(101)))
	assert.Empty(t, ValidateDiscount(decimal.Zero))
	assert.Empty(t, ValidateDiscount(decimal.NewFromInt(100)))
	assert.Empty(t, ValidateDiscount(decimal.NewFromFloat(12.5)))
}

func TestValidatePromoDates(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour)
	later := now.Add(48 * time.Hour)
	past := now.Add(-time.Hour)

	assert.Empty(t, ValidatePromoDates(nil, nil, now), "empty pair is acceptable")
	assert.NotEmpty(t, ValidatePromoDates(&future, nil, now))
	assert.NotEmpty(t, ValidatePromoDates(nil, &future, now))
	assert.NotEmpty(t, ValidatePromoDates(&later, &future, now), "start after end")
	assert.NotEmpty(t, ValidatePromoDates(&past, &future, now), "start in the past")
	assert.Empty(t, ValidatePromoDates(&future, &later, now))
}

func TestValidateMaxUsers(t *testing.T) {
	assert.NotEmpty(t, ValidateMaxUsers(0))
	assert.NotEmpty(t, ValidateMaxUsers(10001))
	assert.Empty(t, ValidateMaxUsers(1))
	assert.Empty(t, ValidateMaxUsers(10000))
}

func TestAddFeatureRejectsDuplicates(t *testing.T) {
	features := []string{"Priority support"}

	updated, msg := AddFeature(features, "Priority support")
	assert.Equal(t, "feature already exists", msg)
	assert.Len(t, updated, 1, "list must stay unchanged on duplicate")

	updated, msg = AddFeature(features, "priority SUPPORT")
	assert.Equal(t, "feature already exists", msg, "duplicate check ignores case")
	assert.Len(t, updated, 1)

	updated, msg = AddFeature(features, "Dedicated manager")
	assert.Empty(t, msg)
	assert.Equal(t, []string{"Priority support", "Dedicated manager"}, updated)
}

func TestAddFeatureRejectsInvalid(t *testing.T) {
	features := []string{"Priority support"}

	updated, msg := AddFeature(features, "   ")
	assert.NotEmpty(t, msg)
	assert.Len(t, updated, 1)

	_, msg = AddFeature(features, strings.Repeat("x", 201))
	assert.NotEmpty(t, msg)
}

func TestComputePrices(t *testing.T) {
	services := []ServiceSelection{
		{
			ServiceID: "svc-1",
			CyclePrices: map[enums.BillingCycle]decimal.Decimal{
				enums.BillingCycleMonthly: decimal.NewFromInt(1000),
				enums.BillingCycleYearly:  decimal.NewFromInt(10000),
			},
			Cycle: enums.BillingCycleMonthly,
		},
		{
			ServiceID: "svc-2",
			CyclePrices: map[enums.BillingCycle]decimal.Decimal{
				enums.BillingCycleMonthly: decimal.NewFromInt(500),
			},
			Cycle: enums.BillingCycleMonthly,
		},
	}

	total, discounted := ComputePrices(services, decimal.Zero)
	assert.True(t, total.Equal(decimal.NewFromInt(1500)), "total %s", total)
	assert.True(t, discounted.Equal(total), "no discount leaves the price untouched")

	total, discounted = ComputePrices(services, decimal.NewFromInt(10))
	assert.True(t, total.Equal(decimal.NewFromInt(1500)))
	assert.True(t, discounted.Equal(decimal.NewFromInt(1350)), "discounted %s", discounted)
}

func TestComputePricesUsesChosenCycle(t *testing.T) {
	services := []ServiceSelection{
		{
			ServiceID: "svc-1",
			CyclePrices: map[enums.BillingCycle]decimal.Decimal{
				enums.BillingCycleMonthly: decimal.NewFromInt(1000),
				enums.BillingCycleYearly:  decimal.NewFromInt(10000),
			},
			Cycle: enums.BillingCycleYearly,
		},
	}

	total, _ := ComputePrices(services, decimal.Zero)
	assert.True(t, total.Equal(decimal.NewFromInt(10000)))
}

func TestComputePricesRounds(t *testing.T) {
	services := []ServiceSelection{
		{
			ServiceID: "svc-1",
			CyclePrices: map[enums.BillingCycle]decimal.Decimal{
				enums.BillingCycleMonthly: decimal.NewFromFloat(99.99),
			},
			Cycle: enums.BillingCycleMonthly,
		},
	}

	_, discounted := ComputePrices(services, decimal.NewFromInt(33))
	assert.True(t, discounted.Equal(decimal.NewFromFloat(66.99)), "discounted %s", discounted)
}

func TestValidateInput(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	input := validInput()
	require.Empty(t, ValidateInput(input, now))

	input = validInput()
	input.Title = "x"
	errs := ValidateInput(input, now)
	assert.Contains(t, errs, "title")

	input = validInput()
	input.Services = nil
	errs = ValidateInput(input, now)
	assert.Contains(t, errs, "services")

	input = validInput()
	input.Services[0].Cycle = enums.BillingCycleYearly
	errs = ValidateInput(input, now)
	assert.Equal(t, "service has no price for the chosen billing cycle", errs["service-0"])

	input = validInput()
	input.Features = []string{"Support", "support"}
	errs = ValidateInput(input, now)
	assert.Equal(t, "feature already exists", errs["feature-1"])

	input = validInput()
	input.DiscountPercentage = decimal.NewFromInt(101)
	errs = ValidateInput(input, now)
	assert.Contains(t, errs, "discount_percentage")
}

func validInput() Input {
	return Input{
		Title:       "Starter",
		Description: "entry level subscription package",
		Services: []ServiceSelection{
			{
				ServiceID: "svc-1",
				Name:      "Location verification",
				CyclePrices: map[enums.BillingCycle]decimal.Decimal{
					enums.BillingCycleMonthly: decimal.NewFromInt(1000),
				},
				Cycle: enums.BillingCycleMonthly,
			},
		},
		MaxUsers: 10,
		Features: []string{"Support"},
		Active:   true,
	}
}
