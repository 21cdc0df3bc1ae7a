package pricing

import (
	"context"
	"fmt"
	"strings"

	"github.com/verilocal/admin-gateway/internal/upstream"
	pkgerrors "github.com/verilocal/admin-gateway/pkg/errors"
	"github.com/verilocal/admin-gateway/pkg/pagination"
	"github.com/verilocal/admin-gateway/pkg/platform"
)

type platformClient interface {
	ListDefaultPricing(ctx context.Context, params platform.ListDefaultPricingParams) (*platform.DefaultPricingPage, error)
	CreateDefaultPricing(ctx context.Context, record platform.DefaultPricingRecord) (*platform.DefaultPricingRecord, error)
	UpdateDefaultPricing(ctx context.Context, record platform.DefaultPricingRecord) (*platform.DefaultPricingRecord, error)
	DeleteDefaultPricing(ctx context.Context, id string) error
	SetDefaultPricingStatus(ctx context.Context, id string, active bool) (*platform.DefaultPricingRecord, error)
}

// Service manages default pricing entries through the upstream backend.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Create(ctx context.Context, input EntryInput) (*Entry, error)
	Update(ctx context.Context, id string, input EntryInput) (*Entry, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, active bool) (*Entry, error)
}

type service struct {
	client platformClient
}

// NewService builds the default pricing service.
func NewService(client platformClient) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("platform client required")
	}
	return &service{client: client}, nil
}

// List fetches one upstream page and layers the free-text search and level
// filters on top of that page only, mirroring how the list screen behaves.
func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	page := pagination.NormalizePage(params.Page)
	limit := pagination.NormalizeLimit(params.Limit)

	fetched, err := s.client.ListDefaultPricing(ctx, platform.ListDefaultPricingParams{
		Page:    page,
		Limit:   limit,
		Country: params.Country,
		State:   params.State,
	})
	if err != nil {
		return nil, upstream.DependencyError(err, "could not load default pricing entries")
	}

	entries := make([]Entry, 0, len(fetched.Entries))
	for _, record := range fetched.Entries {
		entry := entryFromRecord(record)
		if !matchesSearch(entry, params.Search) {
			continue
		}
		if params.Level != "" && entry.Level != params.Level {
			continue
		}
		entries = append(entries, entry)
	}

	return &ListResult{
		Entries: entries,
		Page:    pagination.NewPage(page, limit, fetched.Total),
	}, nil
}

func (s *service) Create(ctx context.Context, input EntryInput) (*Entry, error) {
	record, err := recordFromInput(input)
	if err != nil {
		return nil, err
	}
	created, createErr := s.client.CreateDefaultPricing(ctx, record)
	if createErr != nil {
		return nil, upstream.DependencyError(createErr, "could not save default pricing entry")
	}
	entry := entryFromRecord(*created)
	return &entry, nil
}

func (s *service) Update(ctx context.Context, id string, input EntryInput) (*Entry, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "entry id is required")
	}
	record, err := recordFromInput(input)
	if err != nil {
		return nil, err
	}
	record.ID = id
	updated, updateErr := s.client.UpdateDefaultPricing(ctx, record)
	if updateErr != nil {
		return nil, upstream.DependencyError(updateErr, "could not update default pricing entry")
	}
	entry := entryFromRecord(*updated)
	return &entry, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "entry id is required")
	}
	if err := s.client.DeleteDefaultPricing(ctx, id); err != nil {
		return upstream.DependencyError(err, "could not delete default pricing entry")
	}
	return nil
}

func (s *service) SetStatus(ctx context.Context, id string, active bool) (*Entry, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "entry id is required")
	}
	updated, err := s.client.SetDefaultPricingStatus(ctx, id, active)
	if err != nil {
		return nil, upstream.DependencyError(err, "could not change default pricing status")
	}
	entry := entryFromRecord(*updated)
	return &entry, nil
}

func recordFromInput(input EntryInput) (platform.DefaultPricingRecord, error) {
	if errs := ValidateEntryInput(input); len(errs) > 0 {
		return platform.DefaultPricingRecord{}, pkgerrors.New(pkgerrors.CodeValidation, "default pricing form has errors").WithDetails(errs)
	}
	normalized := normalizeForLevel(input)
	return platform.DefaultPricingRecord{
		Country: normalized.Country,
		State:   normalized.State,
		LGA:     normalized.LGA,
		City:    normalized.City,
		Fee:     normalized.Fee,
		Active:  normalized.Active,
	}, nil
}

func matchesSearch(entry Entry, search string) bool {
	needle := strings.ToLower(strings.TrimSpace(search))
	if needle == "" {
		return true
	}
	for _, field := range []string{entry.Country, entry.State, entry.LGA, entry.City, string(entry.Level)} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
