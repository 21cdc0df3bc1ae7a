package platform

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// CityRegionRecord mirrors a named sub-area of a city, the finest
// pricing/verification granularity the backend supports.
type CityRegionRecord struct {
	ID      string          `json:"id,omitempty"`
	Name    string          `json:"name"`
	Country string          `json:"country"`
	State   string          `json:"state"`
	LGA     string          `json:"lga"`
	City    string          `json:"city"`
	Fee     decimal.Decimal `json:"fee"`
	Active  bool            `json:"isActive"`
}

// CityRegionPage is one server-paginated slice of city regions.
type CityRegionPage struct {
	Entries []CityRegionRecord `json:"entries"`
	Total   int                `json:"total"`
}

// ListCityRegionsParams carries the server-side filters of the list page.
type ListCityRegionsParams struct {
	Page    int
	Limit   int
	Country string
	State   string
	City    string
}

// ListCityRegions fetches one page of city regions.
func (c *Client) ListCityRegions(ctx context.Context, params ListCityRegionsParams) (*CityRegionPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("limit", strconv.Itoa(params.Limit))
	if trimmed := strings.TrimSpace(params.Country); trimmed != "" {
		query.Set("country", trimmed)
	}
	if trimmed := strings.TrimSpace(params.State); trimmed != "" {
		query.Set("state", trimmed)
	}
	if trimmed := strings.TrimSpace(params.City); trimmed != "" {
		query.Set("city", trimmed)
	}

	var page CityRegionPage
	if err := c.get(ctx, "/api/v1/city-regions", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// CreateCityRegion persists a new city region.
func (c *Client) CreateCityRegion(ctx context.Context, record CityRegionRecord) (*CityRegionRecord, error) {
	var created CityRegionRecord
	if err := c.post(ctx, "/api/v1/city-regions", record, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCityRegion replaces an existing city region.
func (c *Client) UpdateCityRegion(ctx context.Context, record CityRegionRecord) (*CityRegionRecord, error) {
	var updated CityRegionRecord
	endpoint := fmt.Sprintf("/api/v1/city-regions/%s", url.PathEscape(record.ID))
	if err := c.put(ctx, endpoint, record, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCityRegion removes a city region.
func (c *Client) DeleteCityRegion(ctx context.Context, id string) error {
	return c.delete(ctx, fmt.Sprintf("/api/v1/city-regions/%s", url.PathEscape(id)))
}
