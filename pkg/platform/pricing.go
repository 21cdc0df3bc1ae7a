package platform

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/verilocal/admin-gateway/pkg/types"
)

// PricingRule is the fee the backend resolved for a location scope, with the
// provenance label of the rule that matched. The backend applies its own
// specificity ordering; the gateway only forwards the scope it has.
type PricingRule struct {
	Fee    decimal.Decimal `json:"fee"`
	Source string          `json:"source"`
}

// LookupLocationPricing queries the most specific applicable pricing rule.
// found is false when the call succeeded but no rule matched.
func (c *Client) LookupLocationPricing(ctx context.Context, scope types.LocationScope) (rule *PricingRule, found bool, err error) {
	scope = scope.Normalize()
	query := url.Values{}
	if scope.Country != "" {
		query.Set("country", scope.Country)
	}
	if scope.State != "" {
		query.Set("state", scope.State)
	}
	if scope.LGA != "" {
		query.Set("lga", scope.LGA)
	}
	if scope.City != "" {
		query.Set("city", scope.City)
	}
	if scope.CityRegion != "" {
		query.Set("cityRegion", scope.CityRegion)
	}

	var decoded PricingRule
	if err := c.get(ctx, "/api/v1/pricing/location-verification", query, &decoded); err != nil {
		return nil, false, err
	}
	if decoded.Source == "" && decoded.Fee.IsZero() {
		return nil, false, nil
	}
	return &decoded, true, nil
}

// DefaultPricingRecord mirrors one default pricing entry as the backend
// stores it. Which optional scope fields are populated implies the level.
type DefaultPricingRecord struct {
	ID      string          `json:"id,omitempty"`
	Country string          `json:"country"`
	State   string          `json:"state,omitempty"`
	LGA     string          `json:"lga,omitempty"`
	City    string          `json:"city,omitempty"`
	Fee     decimal.Decimal `json:"defaultFee"`
	Active  bool            `json:"isActive"`
}

// DefaultPricingPage is one server-paginated slice of default pricing entries.
type DefaultPricingPage struct {
	Entries []DefaultPricingRecord `json:"entries"`
	Total   int                    `json:"total"`
}

// ListDefaultPricingParams carries the server-side filters of the list page.
type ListDefaultPricingParams struct {
	Page    int
	Limit   int
	Country string
	State   string
}

// ListDefaultPricing fetches one page of default pricing entries.
func (c *Client) ListDefaultPricing(ctx context.Context, params ListDefaultPricingParams) (*DefaultPricingPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("limit", strconv.Itoa(params.Limit))
	if trimmed := strings.TrimSpace(params.Country); trimmed != "" {
		query.Set("country", trimmed)
	}
	if trimmed := strings.TrimSpace(params.State); trimmed != "" {
		query.Set("state", trimmed)
	}

	var page DefaultPricingPage
	if err := c.get(ctx, "/api/v1/default-pricing", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateDefaultPricing persists a new default pricing entry.
func (c *Client) CreateDefaultPricing(ctx context.Context, record DefaultPricingRecord) (*DefaultPricingRecord, error) {
	var created DefaultPricingRecord
	if err := c.post(ctx, "/api/v1/default-pricing", record, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateDefaultPricing replaces an existing default pricing entry.
func (c *Client) UpdateDefaultPricing(ctx context.Context, record DefaultPricingRecord) (*DefaultPricingRecord, error) {
	var updated DefaultPricingRecord
	endpoint := fmt.Sprintf("/api/v1/default-pricing/%s", url.PathEscape(record.ID))
	if err := c.put(ctx, endpoint, record, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteDefaultPricing removes a default pricing entry.
func (c *Client) DeleteDefaultPricing(ctx context.Context, id string) error {
	return c.delete(ctx, fmt.Sprintf("/api/v1/default-pricing/%s", url.PathEscape(id)))
}

// SetDefaultPricingStatus toggles a default pricing entry's active flag.
func (c *Client) SetDefaultPricingStatus(ctx context.Context, id string, active bool) (*DefaultPricingRecord, error) {
	var updated DefaultPricingRecord
	endpoint := fmt.Sprintf("/api/v1/default-pricing/%s/status", url.PathEscape(id))
	if err := c.post(ctx, endpoint, map[string]bool{"isActive": active}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
