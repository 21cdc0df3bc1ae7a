package packages

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/verilocal/admin-gateway/pkg/errors"
	"github.com/verilocal/admin-gateway/pkg/platform"
)

type stubPlatform struct {
	listPage    *platform.PackagePage
	record      *platform.PackageRecord
	err         error
	calls       int
	lastRecord  platform.PackageRecord
	lastListReq platform.ListPackagesParams
	lastID      string
	lastActive  bool
}

func (s *stubPlatform) ListPackages(_ context.Context, params platform.ListPackagesParams) (*platform.PackagePage, error) {
	s.calls++
	s.lastListReq = params
	return s.listPage, s.err
}

func (s *stubPlatform) GetPackage(_ context.Context, id string) (*platform.PackageRecord, error) {
	s.calls++
	s.lastID = id
	return s.record, s.err
}

func (s *stubPlatform) CreatePackage(_ context.Context, record platform.PackageRecord) (*platform.PackageRecord, error) {
	s.calls++
	s.lastRecord = record
	if s.err != nil {
		return nil, s.err
	}
	if s.record != nil {
		return s.record, nil
	}
	created := record
	created.ID = "pkg-1"
	return &created, nil
}

func (s *stubPlatform) UpdatePackage(_ context.Context, record platform.PackageRecord) (*platform.PackageRecord, error) {
	s.calls++
	s.lastRecord = record
	if s.err != nil {
		return nil, s.err
	}
	updated := record
	return &updated, nil
}

func (s *stubPlatform) DeletePackage(_ context.Context, id string) error {
	s.calls++
	s.lastID = id
	return s.err
}

func (s *stubPlatform) SetPackageStatus(_ context.Context, id string, active bool) (*platform.PackageRecord, error) {
	s.calls++
	s.lastID = id
	s.lastActive = active
	return s.record, s.err
}

func newTestService(t *testing.T, stub *stubPlatform) Service {
	t.Helper()
	svc, err := NewService(stub)
	require.NoError(t, err)
	return svc
}

func TestNewServiceRequiresClient(t *testing.T) {
	_, err := NewService(nil)
	require.Error(t, err)
}

func TestCreateRecomputesPrices(t *testing.T) {
	stub := &stubPlatform{}
	svc := newTestService(t, stub)

	input := validInput()
	input.DiscountPercentage = decimal.NewFromInt(10)

	created, err := svc.Create(context.Background(), input)
	require.NoError(t, err)

	assert.True(t, stub.lastRecord.TotalPrice.Equal(decimal.NewFromInt(1000)),
		"sent total %s", stub.lastRecord.TotalPrice)
	assert.True(t, stub.lastRecord.DiscountedPrice.Equal(decimal.NewFromInt(900)),
		"sent discounted %s", stub.lastRecord.DiscountedPrice)
	assert.True(t, created.TotalPrice.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, "pkg-1", created.ID)
}

func TestCreateSetsSelectedPriceFromCycle(t *testing.T) {
	stub := &stubPlatform{}
	svc := newTestService(t, stub)

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	require.Len(t, stub.lastRecord.Services, 1)
	sent := stub.lastRecord.Services[0]
	assert.Equal(t, "monthly", sent.SelectedCycle)
	assert.True(t, sent.SelectedPrice.Equal(decimal.NewFromInt(1000)))
}

func TestCreateValidationBlocksUpstream(t *testing.T) {
	stub := &stubPlatform{}
	svc := newTestService(t, stub)

	input := validInput()
	input.Title = ""

	_, err := svc.Create(context.Background(), input)
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
	assert.Contains(t, appErr.Details(), "title")
	assert.Zero(t, stub.calls, "invalid form must not reach the backend")
}

func TestUpdateKeepsID(t *testing.T) {
	stub := &stubPlatform{}
	svc := newTestService(t, stub)

	updated, err := svc.Update(context.Background(), "pkg-9", validInput())
	require.NoError(t, err)
	assert.Equal(t, "pkg-9", stub.lastRecord.ID)
	assert.Equal(t, "pkg-9", updated.ID)
}

func TestUpdateRequiresID(t *testing.T) {
	stub := &stubPlatform{}
	svc := newTestService(t, stub)

	_, err := svc.Update(context.Background(), "  ", validInput())
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
	assert.Zero(t, stub.calls)
}

func TestListForwardsPagination(t *testing.T) {
	stub := &stubPlatform{
		listPage: &platform.PackagePage{
			Entries: []platform.PackageRecord{{ID: "pkg-1", Title: "Starter"}},
			Total:   60,
		},
	}
	svc := newTestService(t, stub)

	result, err := svc.List(context.Background(), ListParams{Page: 2, Limit: 25, Search: "star"})
	require.NoError(t, err)

	assert.Equal(t, 2, stub.lastListReq.Page)
	assert.Equal(t, 25, stub.lastListReq.Limit)
	assert.Equal(t, "star", stub.lastListReq.Search)

	require.Len(t, result.Entries, 1)
	assert.Equal(t, 2, result.Page.Page)
	assert.Equal(t, 60, result.Page.Total)
	assert.Equal(t, 3, result.Page.TotalPages)
	assert.True(t, result.Page.HasNext)
	assert.True(t, result.Page.HasPrev)
}

func TestListNormalizesPagination(t *testing.T) {
	stub := &stubPlatform{listPage: &platform.PackagePage{}}
	svc := newTestService(t, stub)

	_, err := svc.List(context.Background(), ListParams{Page: 0, Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 1, stub.lastListReq.Page)
	assert.Equal(t, 100, stub.lastListReq.Limit)
}

func TestGetMapsUpstreamNotFound(t *testing.T) {
	stub := &stubPlatform{err: platform.NewError(404, "package not found", "/api/v1/packages/nope")}
	svc := newTestService(t, stub)

	_, err := svc.Get(context.Background(), "nope")
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestGetSurfacesUpstreamMessage(t *testing.T) {
	stub := &stubPlatform{err: platform.NewError(422, "package title already in use", "/api/v1/packages")}
	svc := newTestService(t, stub)

	_, err := svc.Get(context.Background(), "pkg-1")
	require.Error(t, err)

	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeDependency, appErr.Code())
	assert.Equal(t, "package title already in use", appErr.Message(),
		"backend message must reach the caller verbatim")
}

func TestDelete(t *testing.T) {
	stub := &stubPlatform{}
	svc := newTestService(t, stub)

	require.NoError(t, svc.Delete(context.Background(), "pkg-1"))
	assert.Equal(t, "pkg-1", stub.lastID)
}

func TestSetStatus(t *testing.T) {
	stub := &stubPlatform{record: &platform.PackageRecord{ID: "pkg-1", Active: false}}
	svc := newTestService(t, stub)

	pkg, err := svc.SetStatus(context.Background(), "pkg-1", false)
	require.NoError(t, err)
	assert.Equal(t, "pkg-1", stub.lastID)
	assert.False(t, stub.lastActive)
	assert.False(t, pkg.Active)
}

func TestValidateDryRun(t *testing.T) {
	stub := &stubPlatform{}
	svc := newTestService(t, stub)

	input := validInput()
	past := time.Now().Add(-time.Hour)
	end := time.Now().Add(time.Hour)
	input.PromoStart = &past
	input.PromoEnd = &end

	errs := svc.Validate(input)
	assert.Contains(t, errs, "promo_dates")
	assert.Zero(t, stub.calls, "dry-run validation never calls the backend")
}
