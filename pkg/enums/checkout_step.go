package enums

import "fmt"

// CheckoutStep names one stage of the subscription purchase wizard.
type CheckoutStep string

const (
	CheckoutStepPackages        CheckoutStep = "packages"
	CheckoutStepProfile         CheckoutStep = "profile"
	CheckoutStepLocations       CheckoutStep = "locations"
	CheckoutStepLocationPayment CheckoutStep = "location_payment"
	CheckoutStepPayment         CheckoutStep = "payment"
	CheckoutStepCompleted       CheckoutStep = "completed"
)

var validCheckoutSteps = []CheckoutStep{
	CheckoutStepPackages,
	CheckoutStepProfile,
	CheckoutStepLocations,
	CheckoutStepLocationPayment,
	CheckoutStepPayment,
	CheckoutStepCompleted,
}

// String implements fmt.Stringer.
func (c CheckoutStep) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CheckoutStep.
func (c CheckoutStep) IsValid() bool {
	for _, candidate := range validCheckoutSteps {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCheckoutStep converts raw input into a CheckoutStep.
func ParseCheckoutStep(value string) (CheckoutStep, error) {
	for _, candidate := range validCheckoutSteps {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid checkout step %q", value)
}
