package organizations

import (
	"github.com/shopspring/decimal"

	"github.com/verilocal/admin-gateway/pkg/enums"
	"github.com/verilocal/admin-gateway/pkg/platform"
)

// Profile is an organization profile as the admin UI works with it.
type Profile struct {
	ID                 string                   `json:"id,omitempty"`
	BusinessType       enums.BusinessType       `json:"business_type"`
	IsPublicProfile    bool                     `json:"is_public_profile"`
	VerificationStatus enums.VerificationStatus `json:"verification_status,omitempty"`
}

// Media is one gallery entry of a location: an uploaded file reference or
// an existing URL.
type Media struct {
	Kind    enums.MediaKind `json:"kind"`
	FileRef string          `json:"file_ref,omitempty"`
	URL     string          `json:"url,omitempty"`
}

// Location is one physical business location. CityRegionFee and
// PricingSource carry the resolved verification fee; a nil fee means the
// location has not been priced yet.
type Location struct {
	ID            string             `json:"id"`
	Type          enums.LocationType `json:"type"`
	BrandName     string             `json:"brand_name"`
	Country       string             `json:"country"`
	State         string             `json:"state"`
	LGA           string             `json:"lga,omitempty"`
	City          string             `json:"city"`
	CityRegion    string             `json:"city_region,omitempty"`
	HouseNumber   string             `json:"house_number"`
	Street        string             `json:"street"`
	Landmark      string             `json:"landmark,omitempty"`
	PostalCode    string             `json:"postal_code,omitempty"`
	CityRegionFee *decimal.Decimal   `json:"city_region_fee,omitempty"`
	PricingSource string             `json:"pricing_source,omitempty"`
	Gallery       []Media            `json:"gallery,omitempty"`
}

func profileRecord(profile Profile) platform.OrganizationProfileRecord {
	record := platform.OrganizationProfileRecord{
		ID:              profile.ID,
		BusinessType:    string(profile.BusinessType),
		IsPublicProfile: profile.IsPublicProfile,
	}
	if profile.IsPublicProfile {
		record.VerificationStatus = string(profile.VerificationStatus)
	}
	return record
}

func profileFromRecord(record platform.OrganizationProfileRecord) Profile {
	return Profile{
		ID:                 record.ID,
		BusinessType:       enums.BusinessType(record.BusinessType),
		IsPublicProfile:    record.IsPublicProfile,
		VerificationStatus: enums.VerificationStatus(record.VerificationStatus),
	}
}

func locationRecord(location Location) platform.LocationRecord {
	gallery := make([]platform.LocationMediaRecord, 0, len(location.Gallery))
	for _, media := range location.Gallery {
		gallery = append(gallery, platform.LocationMediaRecord{
			Kind:    string(media.Kind),
			FileRef: media.FileRef,
			URL:     media.URL,
		})
	}
	return platform.LocationRecord{
		ID:            location.ID,
		Type:          string(location.Type),
		BrandName:     location.BrandName,
		Country:       location.Country,
		State:         location.State,
		LGA:           location.LGA,
		City:          location.City,
		CityRegion:    location.CityRegion,
		HouseNumber:   location.HouseNumber,
		Street:        location.Street,
		Landmark:      location.Landmark,
		PostalCode:    location.PostalCode,
		CityRegionFee: location.CityRegionFee,
		PricingSource: location.PricingSource,
		Gallery:       gallery,
	}
}
