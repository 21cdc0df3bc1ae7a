package geo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/verilocal/admin-gateway/pkg/errors"
	"github.com/verilocal/admin-gateway/pkg/platform"
	"github.com/verilocal/admin-gateway/pkg/types"
)

type stubPlatform struct {
	options []platform.RefOption
	err     error
	calls   int
}

func (s *stubPlatform) Countries(context.Context) ([]platform.RefOption, error) {
	s.calls++
	return s.options, s.err
}

func (s *stubPlatform) States(context.Context, string) ([]platform.RefOption, error) {
	s.calls++
	return s.options, s.err
}

func (s *stubPlatform) LGAs(context.Context, string, string) ([]platform.RefOption, error) {
	s.calls++
	return s.options, s.err
}

func (s *stubPlatform) Cities(context.Context, string, string, string) ([]platform.RefOption, error) {
	s.calls++
	return s.options, s.err
}

func (s *stubPlatform) CityRegionOptions(context.Context, types.LocationScope) ([]platform.RefOption, error) {
	s.calls++
	return s.options, s.err
}

func TestLookupsRequireParents(t *testing.T) {
	stub := &stubPlatform{}
	svc, err := NewService(stub)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.States(ctx, "")
	require.Error(t, err)

	_, err = svc.LGAs(ctx, "NG", " ")
	require.Error(t, err)

	_, err = svc.Cities(ctx, "", "Lagos", "")
	require.Error(t, err)

	_, err = svc.CityRegions(ctx, types.LocationScope{Country: "NG", State: "Lagos"})
	require.Error(t, err, "city regions need a city")

	assert.Zero(t, stub.calls, "missing parents never reach the backend")
}

func TestLookupsPassThrough(t *testing.T) {
	stub := &stubPlatform{options: []platform.RefOption{{Code: "NG", Name: "Nigeria"}}}
	svc, err := NewService(stub)
	require.NoError(t, err)

	options, err := svc.Countries(context.Background())
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, "Nigeria", options[0].Name)
}

func TestLookupsMapUpstreamErrors(t *testing.T) {
	stub := &stubPlatform{err: platform.NewError(503, "geo service warming up", "/api/v1/geo/states")}
	svc, err := NewService(stub)
	require.NoError(t, err)

	_, err = svc.States(context.Background(), "NG")
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeDependency, appErr.Code())
	assert.Equal(t, "geo service warming up", appErr.Message())
}
