package cityregions

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/verilocal/admin-gateway/internal/upstream"
	pkgerrors "github.com/verilocal/admin-gateway/pkg/errors"
	"github.com/verilocal/admin-gateway/pkg/pagination"
	"github.com/verilocal/admin-gateway/pkg/platform"
)

type platformClient interface {
	ListCityRegions(ctx context.Context, params platform.ListCityRegionsParams) (*platform.CityRegionPage, error)
	CreateCityRegion(ctx context.Context, record platform.CityRegionRecord) (*platform.CityRegionRecord, error)
	UpdateCityRegion(ctx context.Context, record platform.CityRegionRecord) (*platform.CityRegionRecord, error)
	DeleteCityRegion(ctx context.Context, id string) error
}

// Region is a named sub-area of a city with its own verification fee.
type Region struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Country string          `json:"country"`
	State   string          `json:"state"`
	LGA     string          `json:"lga"`
	City    string          `json:"city"`
	Fee     decimal.Decimal `json:"fee"`
	Active  bool            `json:"is_active"`
}

// Input is the create/update form payload.
type Input struct {
	Name    string          `json:"name"`
	Country string          `json:"country"`
	State   string          `json:"state"`
	LGA     string          `json:"lga"`
	City    string          `json:"city"`
	Fee     decimal.Decimal `json:"fee"`
	Active  bool            `json:"is_active"`
}

// ListParams carries the list page's pagination and geographic filters.
type ListParams struct {
	Page    int
	Limit   int
	Country string
	State   string
	City    string
}

// ListResult is one page of regions with its pagination metadata.
type ListResult struct {
	Entries []Region        `json:"entries"`
	Page    pagination.Page `json:"page"`
}

// Service manages city regions through the upstream backend.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Create(ctx context.Context, input Input) (*Region, error)
	Update(ctx context.Context, id string, input Input) (*Region, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	client platformClient
}

// NewService builds the city region service.
func NewService(client platformClient) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("platform client required")
	}
	return &service{client: client}, nil
}

// ValidateInput checks the form fields, returning an error map keyed by
// field name. A region needs a name, a full geographic scope down to the
// city, and a positive fee.
func ValidateInput(input Input) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(input.Name) == "" {
		errs["name"] = "region name is required"
	}
	if strings.TrimSpace(input.Country) == "" {
		errs["country"] = "country is required"
	}
	if strings.TrimSpace(input.State) == "" {
		errs["state"] = "state is required"
	}
	if strings.TrimSpace(input.LGA) == "" {
		errs["lga"] = "lga is required"
	}
	if strings.TrimSpace(input.City) == "" {
		errs["city"] = "city is required"
	}
	if !input.Fee.IsPositive() {
		errs["fee"] = "fee must be greater than zero"
	}

	return errs
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	page := pagination.NormalizePage(params.Page)
	limit := pagination.NormalizeLimit(params.Limit)

	fetched, err := s.client.ListCityRegions(ctx, platform.ListCityRegionsParams{
		Page:    page,
		Limit:   limit,
		Country: params.Country,
		State:   params.State,
		City:    params.City,
	})
	if err != nil {
		return nil, upstream.DependencyError(err, "could not load city regions")
	}

	entries := make([]Region, 0, len(fetched.Entries))
	for _, record := range fetched.Entries {
		entries = append(entries, regionFromRecord(record))
	}
	return &ListResult{
		Entries: entries,
		Page:    pagination.NewPage(page, limit, fetched.Total),
	}, nil
}

func (s *service) Create(ctx context.Context, input Input) (*Region, error) {
	if errs := ValidateInput(input); len(errs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "city region form has errors").WithDetails(errs)
	}
	created, err := s.client.CreateCityRegion(ctx, recordFromInput("", input))
	if err != nil {
		return nil, upstream.DependencyError(err, "could not save city region")
	}
	region := regionFromRecord(*created)
	return &region, nil
}

func (s *service) Update(ctx context.Context, id string, input Input) (*Region, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "city region id is required")
	}
	if errs := ValidateInput(input); len(errs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "city region form has errors").WithDetails(errs)
	}
	updated, err := s.client.UpdateCityRegion(ctx, recordFromInput(id, input))
	if err != nil {
		return nil, upstream.DependencyError(err, "could not update city region")
	}
	region := regionFromRecord(*updated)
	return &region, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "city region id is required")
	}
	if err := s.client.DeleteCityRegion(ctx, id); err != nil {
		return upstream.DependencyError(err, "could not delete city region")
	}
	return nil
}

func regionFromRecord(record platform.CityRegionRecord) Region {
	return Region{
		ID:      record.ID,
		Name:    record.Name,
		Country: record.Country,
		State:   record.State,
		LGA:     record.LGA,
		City:    record.City,
		Fee:     record.Fee,
		Active:  record.Active,
	}
}

func recordFromInput(id string, input Input) platform.CityRegionRecord {
	return platform.CityRegionRecord{
		ID:      id,
		Name:    strings.TrimSpace(input.Name),
		Country: strings.TrimSpace(input.Country),
		State:   strings.TrimSpace(input.State),
		LGA:     strings.TrimSpace(input.LGA),
		City:    strings.TrimSpace(input.City),
		Fee:     input.Fee,
		Active:  input.Active,
	}
}
