package packages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/verilocal/admin-gateway/internal/upstream"
	pkgerrors "github.com/verilocal/admin-gateway/pkg/errors"
	"github.com/verilocal/admin-gateway/pkg/pagination"
	"github.com/verilocal/admin-gateway/pkg/platform"
)

type platformClient interface {
	ListPackages(ctx context.Context, params platform.ListPackagesParams) (*platform.PackagePage, error)
	GetPackage(ctx context.Context, id string) (*platform.PackageRecord, error)
	CreatePackage(ctx context.Context, record platform.PackageRecord) (*platform.PackageRecord, error)
	UpdatePackage(ctx context.Context, record platform.PackageRecord) (*platform.PackageRecord, error)
	DeletePackage(ctx context.Context, id string) error
	SetPackageStatus(ctx context.Context, id string, active bool) (*platform.PackageRecord, error)
}

// Service manages subscription packages through the upstream backend.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Get(ctx context.Context, id string) (*Package, error)
	Create(ctx context.Context, input Input) (*Package, error)
	Update(ctx context.Context, id string, input Input) (*Package, error)
	Delete(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, active bool) (*Package, error)
	Validate(input Input) map[string]string
}

type service struct {
	client platformClient
	now    func() time.Time
}

// NewService builds the package service.
func NewService(client platformClient) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("platform client required")
	}
	return &service{client: client, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	page := pagination.NormalizePage(params.Page)
	limit := pagination.NormalizeLimit(params.Limit)

	fetched, err := s.client.ListPackages(ctx, platform.ListPackagesParams{
		Page:   page,
		Limit:  limit,
		Search: params.Search,
	})
	if err != nil {
		return nil, upstream.DependencyError(err, "could not load subscription packages")
	}

	entries := make([]Package, 0, len(fetched.Entries))
	for _, record := range fetched.Entries {
		entries = append(entries, packageFromRecord(record))
	}
	return &ListResult{
		Entries: entries,
		Page:    pagination.NewPage(page, limit, fetched.Total),
	}, nil
}

func (s *service) Get(ctx context.Context, id string) (*Package, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "package id is required")
	}
	record, err := s.client.GetPackage(ctx, id)
	if err != nil {
		return nil, upstream.DependencyError(err, "could not load subscription package")
	}
	pkg := packageFromRecord(*record)
	return &pkg, nil
}

func (s *service) Create(ctx context.Context, input Input) (*Package, error) {
	pkg, err := s.buildPackage(input)
	if err != nil {
		return nil, err
	}
	created, createErr := s.client.CreatePackage(ctx, recordFromPackage(pkg))
	if createErr != nil {
		return nil, upstream.DependencyError(createErr, "could not save subscription package")
	}
	result := packageFromRecord(*created)
	return &result, nil
}

func (s *service) Update(ctx context.Context, id string, input Input) (*Package, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "package id is required")
	}
	pkg, err := s.buildPackage(input)
	if err != nil {
		return nil, err
	}
	pkg.ID = id
	updated, updateErr := s.client.UpdatePackage(ctx, recordFromPackage(pkg))
	if updateErr != nil {
		return nil, upstream.DependencyError(updateErr, "could not update subscription package")
	}
	result := packageFromRecord(*updated)
	return &result, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "package id is required")
	}
	if err := s.client.DeletePackage(ctx, id); err != nil {
		return upstream.DependencyError(err, "could not delete subscription package")
	}
	return nil
}

func (s *service) SetStatus(ctx context.Context, id string, active bool) (*Package, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "package id is required")
	}
	updated, err := s.client.SetPackageStatus(ctx, id, active)
	if err != nil {
		return nil, upstream.DependencyError(err, "could not change package status")
	}
	result := packageFromRecord(*updated)
	return &result, nil
}

// Validate runs the aggregate form validator without touching the backend,
// backing the form's dry-run validation endpoint.
func (s *service) Validate(input Input) map[string]string {
	return ValidateInput(input, s.now())
}

// buildPackage validates the form and recomputes both prices from the
// current service selections and discount.
func (s *service) buildPackage(input Input) (Package, error) {
	if errs := ValidateInput(input, s.now()); len(errs) > 0 {
		return Package{}, pkgerrors.New(pkgerrors.CodeValidation, "package form has errors").WithDetails(errs)
	}

	total, discounted := ComputePrices(input.Services, input.DiscountPercentage)
	return Package{
		Title:              strings.TrimSpace(input.Title),
		Description:        strings.TrimSpace(input.Description),
		Services:           input.Services,
		TotalPrice:         total,
		DiscountedPrice:    discounted,
		PromoCode:          strings.TrimSpace(input.PromoCode),
		DiscountPercentage: input.DiscountPercentage,
		PromoStart:         input.PromoStart,
		PromoEnd:           input.PromoEnd,
		MaxUsers:           input.MaxUsers,
		Features:           input.Features,
		Note:               strings.TrimSpace(input.Note),
		Active:             input.Active,
	}, nil
}
