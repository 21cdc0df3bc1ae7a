package platform

import (
	"context"
	"net/url"
	"strings"

	"github.com/verilocal/admin-gateway/pkg/types"
)

// RefOption is one entry of a geographic reference dropdown.
type RefOption struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Countries fetches the country reference list.
func (c *Client) Countries(ctx context.Context) ([]RefOption, error) {
	var options []RefOption
	if err := c.get(ctx, "/api/v1/geo/countries", nil, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// States fetches the states of a country.
func (c *Client) States(ctx context.Context, country string) ([]RefOption, error) {
	query := url.Values{}
	query.Set("country", strings.TrimSpace(country))
	var options []RefOption
	if err := c.get(ctx, "/api/v1/geo/states", query, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// LGAs fetches the local government areas of a state.
func (c *Client) LGAs(ctx context.Context, country, state string) ([]RefOption, error) {
	query := url.Values{}
	query.Set("country", strings.TrimSpace(country))
	query.Set("state", strings.TrimSpace(state))
	var options []RefOption
	if err := c.get(ctx, "/api/v1/geo/lgas", query, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// Cities fetches the cities of a state, optionally narrowed to an LGA.
func (c *Client) Cities(ctx context.Context, country, state, lga string) ([]RefOption, error) {
	query := url.Values{}
	query.Set("country", strings.TrimSpace(country))
	query.Set("state", strings.TrimSpace(state))
	if trimmed := strings.TrimSpace(lga); trimmed != "" {
		query.Set("lga", trimmed)
	}
	var options []RefOption
	if err := c.get(ctx, "/api/v1/geo/cities", query, &options); err != nil {
		return nil, err
	}
	return options, nil
}

// CityRegionOptions fetches the named sub-areas of a city.
func (c *Client) CityRegionOptions(ctx context.Context, scope types.LocationScope) ([]RefOption, error) {
	scope = scope.Normalize()
	query := url.Values{}
	query.Set("country", scope.Country)
	query.Set("state", scope.State)
	if scope.LGA != "" {
		query.Set("lga", scope.LGA)
	}
	query.Set("city", scope.City)
	var options []RefOption
	if err := c.get(ctx, "/api/v1/geo/city-regions", query, &options); err != nil {
		return nil, err
	}
	return options, nil
}
