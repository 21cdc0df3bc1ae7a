package platform

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PackageServiceRecord is one service bundled into a subscription package,
// with its per-cycle price table and the cycle chosen for this package.
type PackageServiceRecord struct {
	ServiceID     string                     `json:"serviceId"`
	Name          string                     `json:"name"`
	CyclePrices   map[string]decimal.Decimal `json:"cyclePrices"`
	SelectedCycle string                     `json:"selectedCycle"`
	SelectedPrice decimal.Decimal            `json:"selectedPrice"`
}

// PackageRecord mirrors a subscription package as the backend stores it.
type PackageRecord struct {
	ID                 string                 `json:"id,omitempty"`
	Title              string                 `json:"title"`
	Description        string                 `json:"description"`
	Services           []PackageServiceRecord `json:"services"`
	TotalPrice         decimal.Decimal        `json:"totalPrice"`
	DiscountedPrice    decimal.Decimal        `json:"discountedPrice"`
	PromoCode          string                 `json:"promoCode,omitempty"`
	DiscountPercentage decimal.Decimal        `json:"discountPercentage"`
	PromoStart         *time.Time             `json:"promoStart,omitempty"`
	PromoEnd           *time.Time             `json:"promoEnd,omitempty"`
	MaxUsers           int                    `json:"maxUsers"`
	Features           []string               `json:"features"`
	Note               string                 `json:"note,omitempty"`
	Active             bool                   `json:"isActive"`
}

// PackagePage is one server-paginated slice of packages.
type PackagePage struct {
	Entries []PackageRecord `json:"entries"`
	Total   int             `json:"total"`
}

// ListPackagesParams carries the server-side filters of the package list.
type ListPackagesParams struct {
	Page   int
	Limit  int
	Search string
}

// ListPackages fetches one page of subscription packages.
func (c *Client) ListPackages(ctx context.Context, params ListPackagesParams) (*PackagePage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(params.Page))
	query.Set("limit", strconv.Itoa(params.Limit))
	if trimmed := strings.TrimSpace(params.Search); trimmed != "" {
		query.Set("search", trimmed)
	}

	var page PackagePage
	if err := c.get(ctx, "/api/v1/packages", query, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetPackage fetches one package by ID.
func (c *Client) GetPackage(ctx context.Context, id string) (*PackageRecord, error) {
	var record PackageRecord
	if err := c.get(ctx, fmt.Sprintf("/api/v1/packages/%s", url.PathEscape(id)), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// CreatePackage persists a new subscription package.
func (c *Client) CreatePackage(ctx context.Context, record PackageRecord) (*PackageRecord, error) {
	var created PackageRecord
	if err := c.post(ctx, "/api/v1/packages", record, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdatePackage replaces an existing subscription package.
func (c *Client) UpdatePackage(ctx context.Context, record PackageRecord) (*PackageRecord, error) {
	var updated PackageRecord
	endpoint := fmt.Sprintf("/api/v1/packages/%s", url.PathEscape(record.ID))
	if err := c.put(ctx, endpoint, record, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeletePackage removes a subscription package.
func (c *Client) DeletePackage(ctx context.Context, id string) error {
	return c.delete(ctx, fmt.Sprintf("/api/v1/packages/%s", url.PathEscape(id)))
}

// SetPackageStatus toggles a package's active flag.
func (c *Client) SetPackageStatus(ctx context.Context, id string, active bool) (*PackageRecord, error) {
	var updated PackageRecord
	endpoint := fmt.Sprintf("/api/v1/packages/%s/status", url.PathEscape(id))
	if err := c.post(ctx, endpoint, map[string]bool{"isActive": active}, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
