package packages

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const (
	titleMinLen       = 2
	titleMaxLen       = 100
	descriptionMinLen = 10
	featureMaxLen     = 200
	maxUsersFloor     = 1
	maxUsersCeiling   = 10000
)

var promoCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,20}$`)

// Field validators return an empty string when the value is acceptable.

func ValidateTitle(title string) string {
	length := utf8.RuneCountInString(strings.TrimSpace(title))
	if length < titleMinLen || length > titleMaxLen {
		return fmt.Sprintf("title must be between %d and %d characters", titleMinLen, titleMaxLen)
	}
	return ""
}

func ValidateDescription(description string) string {
	if utf8.RuneCountInString(strings.TrimSpace(description)) < descriptionMinLen {
		return fmt.Sprintf("description must be at least %d characters", descriptionMinLen)
	}
	return ""
}

func ValidatePromoCode(code string) string {
	if code == "" {
		return ""
	}
	if !promoCodePattern.MatchString(code) {
		return "promo code must be 3-20 letters, digits, hyphens, or underscores"
	}
	return ""
}

func ValidateDiscount(percentage decimal.Decimal) string {
	if percentage.IsNegative() || percentage.GreaterThan(oneHundred) {
		return "discount percentage must be between 0 and 100"
	}
	return ""
}

// ValidatePromoDates accepts an empty pair; when set, the start must not be
// after the end and must not already be in the past.
func ValidatePromoDates(start, end *time.Time, now time.Time) string {
	if start == nil && end == nil {
		return ""
	}
	if start == nil || end == nil {
		return "promo start and end dates must both be set"
	}
	if start.After(*end) {
		return "promo start date must not be after the end date"
	}
	if start.Before(now) {
		return "promo start date must not be in the past"
	}
	return ""
}

func ValidateMaxUsers(maxUsers int) string {
	if maxUsers < maxUsersFloor || maxUsers > maxUsersCeiling {
		return fmt.Sprintf("max users must be between %d and %d", maxUsersFloor, maxUsersCeiling)
	}
	return ""
}

func ValidateFeature(feature string) string {
	trimmed := strings.TrimSpace(feature)
	if trimmed == "" {
		return "feature must not be empty"
	}
	if utf8.RuneCountInString(trimmed) > featureMaxLen {
		return fmt.Sprintf("feature must be at most %d characters", featureMaxLen)
	}
	return ""
}

// AddFeature appends a feature to the list, rejecting duplicates at
// insertion time. The original list is returned unchanged on error.
func AddFeature(features []string, feature string) ([]string, string) {
	if msg := ValidateFeature(feature); msg != "" {
		return features, msg
	}
	trimmed := strings.TrimSpace(feature)
	for _, existing := range features {
		if strings.EqualFold(existing, trimmed) {
			return features, "feature already exists"
		}
	}
	return append(features, trimmed), ""
}

// ValidateInput aggregates every field validator into an error map keyed by
// field name, with per-service errors keyed service-{index}. Submission is
// blocked whenever the map is non-empty.
func ValidateInput(input Input, now time.Time) map[string]string {
	errs := map[string]string{}

	setIf := func(field, msg string) {
		if msg != "" {
			errs[field] = msg
		}
	}

	setIf("title", ValidateTitle(input.Title))
	setIf("description", ValidateDescription(input.Description))
	setIf("promo_code", ValidatePromoCode(input.PromoCode))
	setIf("discount_percentage", ValidateDiscount(input.DiscountPercentage))
	setIf("promo_dates", ValidatePromoDates(input.PromoStart, input.PromoEnd, now))
	setIf("max_users", ValidateMaxUsers(input.MaxUsers))

	if len(input.Services) == 0 {
		errs["services"] = "at least one service is required"
	}
	for i, svc := range input.Services {
		field := fmt.Sprintf("service-%d", i)
		if strings.TrimSpace(svc.ServiceID) == "" {
			errs[field] = "service id is required"
			continue
		}
		if !svc.Cycle.IsValid() {
			errs[field] = "a billing cycle must be chosen"
			continue
		}
		if _, ok := svc.CyclePrices[svc.Cycle]; !ok {
			errs[field] = "service has no price for the chosen billing cycle"
		}
	}

	if len(input.Features) == 0 {
		errs["features"] = "at least one feature is required"
	}
	seen := map[string]bool{}
	for i, feature := range input.Features {
		field := fmt.Sprintf("feature-%d", i)
		if msg := ValidateFeature(feature); msg != "" {
			errs[field] = msg
			continue
		}
		key := strings.ToLower(strings.TrimSpace(feature))
		if seen[key] {
			errs[field] = "feature already exists"
			continue
		}
		seen[key] = true
	}

	return errs
}
