package platform

import (
	"context"
	"fmt"
	"net/url"

	"github.com/shopspring/decimal"
)

// OrganizationProfileRecord mirrors the profile payload the backend accepts.
type OrganizationProfileRecord struct {
	ID                 string `json:"id,omitempty"`
	BusinessType       string `json:"businessType"`
	IsPublicProfile    bool   `json:"isPublicProfile"`
	VerificationStatus string `json:"verificationStatus,omitempty"`
}

// LocationMediaRecord is one gallery entry: either an uploaded file
// reference or an existing URL.
type LocationMediaRecord struct {
	Kind    string `json:"kind"`
	FileRef string `json:"fileRef,omitempty"`
	URL     string `json:"url,omitempty"`
}

// LocationRecord mirrors one physical business location.
type LocationRecord struct {
	ID            string                `json:"id,omitempty"`
	Type          string                `json:"type"`
	BrandName     string                `json:"brandName"`
	Country       string                `json:"country"`
	State         string                `json:"state"`
	LGA           string                `json:"lga,omitempty"`
	City          string                `json:"city"`
	CityRegion    string                `json:"cityRegion,omitempty"`
	HouseNumber   string                `json:"houseNumber"`
	Street        string                `json:"street"`
	Landmark      string                `json:"landmark,omitempty"`
	PostalCode    string                `json:"postalCode,omitempty"`
	CityRegionFee *decimal.Decimal      `json:"cityRegionFee,omitempty"`
	PricingSource string                `json:"pricingSource,omitempty"`
	Gallery       []LocationMediaRecord `json:"gallery,omitempty"`
}

// SaveOrganizationProfile creates or updates an organization profile and
// returns the record with its backend-assigned ID.
func (c *Client) SaveOrganizationProfile(ctx context.Context, record OrganizationProfileRecord) (*OrganizationProfileRecord, error) {
	var saved OrganizationProfileRecord
	if record.ID == "" {
		if err := c.post(ctx, "/api/v1/organizations/profile", record, &saved); err != nil {
			return nil, err
		}
		return &saved, nil
	}
	endpoint := fmt.Sprintf("/api/v1/organizations/profile/%s", url.PathEscape(record.ID))
	if err := c.put(ctx, endpoint, record, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// AddOrganizationLocation attaches a location to an organization profile.
func (c *Client) AddOrganizationLocation(ctx context.Context, orgID string, record LocationRecord) (*LocationRecord, error) {
	var saved LocationRecord
	endpoint := fmt.Sprintf("/api/v1/organizations/%s/locations", url.PathEscape(orgID))
	if err := c.post(ctx, endpoint, record, &saved); err != nil {
		return nil, err
	}
	return &saved, nil
}
