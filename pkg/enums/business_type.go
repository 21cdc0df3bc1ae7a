package enums

import "fmt"

// BusinessType captures whether an organization is formally registered.
type BusinessType string

const (
	BusinessTypeRegistered   BusinessType = "registered"
	BusinessTypeUnregistered BusinessType = "unregistered"
)

var validBusinessTypes = []BusinessType{
	BusinessTypeRegistered,
	BusinessTypeUnregistered,
}

// String implements fmt.Stringer.
func (b BusinessType) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BusinessType.
func (b BusinessType) IsValid() bool {
	for _, candidate := range validBusinessTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBusinessType converts raw input into a BusinessType.
func ParseBusinessType(value string) (BusinessType, error) {
	for _, candidate := range validBusinessTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid business type %q", value)
}
