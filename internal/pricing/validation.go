package pricing

import (
	"strings"

	"github.com/verilocal/admin-gateway/pkg/enums"
)

// ValidateEntryInput checks a default pricing form against its chosen level.
// The returned map is keyed by field name and empty when the form is valid.
func ValidateEntryInput(input EntryInput) map[string]string {
	errs := map[string]string{}

	if !input.Level.IsValid() {
		errs["level"] = "a pricing level is required"
		return errs
	}

	if strings.TrimSpace(input.Country) == "" {
		errs["country"] = "country is required"
	}

	switch input.Level {
	case enums.PricingLevelCity:
		if strings.TrimSpace(input.City) == "" {
			errs["city"] = "city is required for city-level pricing"
		}
		fallthrough
	case enums.PricingLevelLGA:
		if strings.TrimSpace(input.LGA) == "" {
			errs["lga"] = "LGA is required for this pricing level"
		}
		fallthrough
	case enums.PricingLevelState:
		if strings.TrimSpace(input.State) == "" {
			errs["state"] = "state is required for this pricing level"
		}
	}

	if !input.Fee.IsPositive() {
		errs["default_fee"] = "default fee must be greater than zero"
	}

	return errs
}

// normalizeForLevel blanks every scope field below the chosen level so the
// record sent upstream implies exactly that level.
func normalizeForLevel(input EntryInput) EntryInput {
	out := input
	out.Country = strings.TrimSpace(out.Country)
	out.State = strings.TrimSpace(out.State)
	out.LGA = strings.TrimSpace(out.LGA)
	out.City = strings.TrimSpace(out.City)

	switch input.Level {
	case enums.PricingLevelCountry:
		out.State, out.LGA, out.City = "", "", ""
	case enums.PricingLevelState:
		out.LGA, out.City = "", ""
	case enums.PricingLevelLGA:
		out.City = ""
	}
	return out
}
