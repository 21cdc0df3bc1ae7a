package organizations

import (
	"strings"

	"github.com/verilocal/admin-gateway/pkg/enums"
)

// ValidateProfile checks the profile form. The verification status is only
// meaningful on public profiles; sending one on a private profile is
// rejected rather than silently dropped.
func ValidateProfile(profile Profile) map[string]string {
	errs := map[string]string{}

	if !profile.BusinessType.IsValid() {
		errs["business_type"] = "business type must be registered or unregistered"
	}
	if profile.IsPublicProfile {
		if !profile.VerificationStatus.IsValid() {
			errs["verification_status"] = "public profiles must choose verified or unverified"
		}
	} else if profile.VerificationStatus != "" {
		errs["verification_status"] = "verification status only applies to public profiles"
	}

	return errs
}

// ValidateLocation checks one location form.
func ValidateLocation(location Location) map[string]string {
	errs := map[string]string{}

	if !location.Type.IsValid() {
		errs["type"] = "location type must be headquarters or branch"
	}
	required := map[string]string{
		"brand_name":   location.BrandName,
		"country":      location.Country,
		"state":        location.State,
		"city":         location.City,
		"house_number": location.HouseNumber,
		"street":       location.Street,
	}
	for field, value := range required {
		if strings.TrimSpace(value) == "" {
			errs[field] = field + " is required"
		}
	}
	for _, media := range location.Gallery {
		if !media.Kind.IsValid() {
			errs["gallery"] = "gallery entries must be images or videos"
			break
		}
		if media.FileRef == "" && media.URL == "" {
			errs["gallery"] = "gallery entries need a file or a url"
			break
		}
	}

	return errs
}

// CheckLocationSet enforces the profile-wide location rules: an unverified
// public organization is limited to exactly one headquarters location.
// Returns an empty string when the set is acceptable.
func CheckLocationSet(profile Profile, locations []Location) string {
	if !profile.IsPublicProfile {
		return ""
	}
	if profile.VerificationStatus != enums.VerificationStatusUnverified {
		return ""
	}
	if len(locations) != 1 {
		return "unverified organizations must have exactly one location"
	}
	if locations[0].Type != enums.LocationTypeHeadquarters {
		return "unverified organizations may only register a headquarters location"
	}
	return ""
}

// CanAddLocation reports whether another location may be added to the
// profile, with the reason when it may not.
func CanAddLocation(profile Profile, existing []Location) string {
	if profile.IsPublicProfile &&
		profile.VerificationStatus == enums.VerificationStatusUnverified &&
		len(existing) >= 1 {
		return "unverified organizations are limited to a single headquarters location"
	}
	return ""
}
