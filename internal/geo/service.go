package geo

import (
	"context"
	"fmt"
	"strings"

	"github.com/verilocal/admin-gateway/internal/upstream"
	pkgerrors "github.com/verilocal/admin-gateway/pkg/errors"
	"github.com/verilocal/admin-gateway/pkg/platform"
	"github.com/verilocal/admin-gateway/pkg/types"
)

type platformClient interface {
	Countries(ctx context.Context) ([]platform.RefOption, error)
	States(ctx context.Context, country string) ([]platform.RefOption, error)
	LGAs(ctx context.Context, country, state string) ([]platform.RefOption, error)
	Cities(ctx context.Context, country, state, lga string) ([]platform.RefOption, error)
	CityRegionOptions(ctx context.Context, scope types.LocationScope) ([]platform.RefOption, error)
}

// Service serves the geographic reference lists behind the cascading
// dropdowns. Each level requires its parents: states need a country,
// LGAs a state, and so on.
type Service interface {
	Countries(ctx context.Context) ([]platform.RefOption, error)
	States(ctx context.Context, country string) ([]platform.RefOption, error)
	LGAs(ctx context.Context, country, state string) ([]platform.RefOption, error)
	Cities(ctx context.Context, country, state, lga string) ([]platform.RefOption, error)
	CityRegions(ctx context.Context, scope types.LocationScope) ([]platform.RefOption, error)
}

type service struct {
	client platformClient
}

// NewService builds the geo lookup service.
func NewService(client platformClient) (Service, error) {
	if client == nil {
		return nil, fmt.Errorf("platform client required")
	}
	return &service{client: client}, nil
}

func (s *service) Countries(ctx context.Context) ([]platform.RefOption, error) {
	options, err := s.client.Countries(ctx)
	if err != nil {
		return nil, upstream.DependencyError(err, "could not load countries")
	}
	return options, nil
}

func (s *service) States(ctx context.Context, country string) ([]platform.RefOption, error) {
	if strings.TrimSpace(country) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "country is required")
	}
	options, err := s.client.States(ctx, country)
	if err != nil {
		return nil, upstream.DependencyError(err, "could not load states")
	}
	return options, nil
}

func (s *service) LGAs(ctx context.Context, country, state string) ([]platform.RefOption, error) {
	if strings.TrimSpace(country) == "" || strings.TrimSpace(state) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "country and state are required")
	}
	options, err := s.client.LGAs(ctx, country, state)
	if err != nil {
		return nil, upstream.DependencyError(err, "could not load local government areas")
	}
	return options, nil
}

func (s *service) Cities(ctx context.Context, country, state, lga string) ([]platform.RefOption, error) {
	if strings.TrimSpace(country) == "" || strings.TrimSpace(state) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "country and state are required")
	}
	options, err := s.client.Cities(ctx, country, state, lga)
	if err != nil {
		return nil, upstream.DependencyError(err, "could not load cities")
	}
	return options, nil
}

func (s *service) CityRegions(ctx context.Context, scope types.LocationScope) ([]platform.RefOption, error) {
	scope = scope.Normalize()
	if scope.Country == "" || scope.State == "" || scope.City == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "country, state, and city are required")
	}
	options, err := s.client.CityRegionOptions(ctx, scope)
	if err != nil {
		return nil, upstream.DependencyError(err, "could not load city regions")
	}
	return options, nil
}
