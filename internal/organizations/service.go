package organizations

import (
	"context"
	"fmt"

	"github.com/verilocal/admin-gateway/internal/upstream"
	pkgerrors "github.com/verilocal/admin-gateway/pkg/errors"
	"github.com/verilocal/admin-gateway/pkg/platform"
)

type platformClient interface {
	SaveOrganizationProfile(ctx context.Context, record platform.OrganizationProfileRecord) (*platform.OrganizationProfileRecord, error)
	AddOrganizationLocation(ctx context.Context, orgID string, record platform.LocationRecord) (*platform.LocationRecord, error)
}

// Service pushes organization profiles and their locations to the backend.
type Service interface {
	SaveProfile(ctx context.Context, profile Profile) (*Profile, error)
	SaveProfileWithLocations(ctx context.Context, profile Profile, locations []Location) (*Profile, error)
}

type service struct {
	client platformClient
}

// NewService builds the organization service.
func NewService(client platformClient) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("platform client required")
	}
	return &service{client: client}, nil
}

func (s *service) SaveProfile(ctx context.Context, profile Profile) (*Profile, error) {
	if errs := ValidateProfile(profile); len(errs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile form has errors").WithDetails(errs)
	}
	saved, err := s.client.SaveOrganizationProfile(ctx, profileRecord(profile))
	if err != nil {
		return nil, upstream.DependencyError(err, "could not save organization profile")
	}
	result := profileFromRecord(*saved)
	return &result, nil
}

// SaveProfileWithLocations persists the profile, then attaches every
// location to the returned organization ID. The location-set rules are
// checked before anything is sent upstream.
func (s *service) SaveProfileWithLocations(ctx context.Context, profile Profile, locations []Location) (*Profile, error) {
	if msg := CheckLocationSet(profile, locations); msg != "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msg)
	}
	for _, location := range locations {
		if errs := ValidateLocation(location); len(errs) > 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "location form has errors").WithDetails(errs)
		}
	}

	saved, err := s.SaveProfile(ctx, profile)
	if err != nil {
		return nil, err
	}
	for _, location := range locations {
		if _, err := s.client.AddOrganizationLocation(ctx, saved.ID, locationRecord(location)); err != nil {
			return nil, upstream.DependencyError(err, "could not save organization location")
		}
	}
	return saved, nil
}
