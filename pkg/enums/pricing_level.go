package enums

import "fmt"

// PricingLevel is the administrative granularity a default pricing entry
// applies to, implied by which scope fields the entry populates.
type PricingLevel string

const (
	PricingLevelCountry PricingLevel = "country"
	PricingLevelState   PricingLevel = "state"
	PricingLevelLGA     PricingLevel = "lga"
	PricingLevelCity    PricingLevel = "city"
)

var validPricingLevels = []PricingLevel{
	PricingLevelCountry,
	PricingLevelState,
	PricingLevelLGA,
	PricingLevelCity,
}

// String implements fmt.Stringer.
func (p PricingLevel) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PricingLevel.
func (p PricingLevel) IsValid() bool {
	for _, candidate := range validPricingLevels {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePricingLevel converts raw input into a PricingLevel.
func ParsePricingLevel(value string) (PricingLevel, error) {
	for _, candidate := range validPricingLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid pricing level %q", value)
}
