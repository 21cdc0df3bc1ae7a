package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	checkoutsvc "github.com/verilocal/admin-gateway/internal/checkout"
	cityregionsvc "github.com/verilocal/admin-gateway/internal/cityregions"
	"github.com/verilocal/admin-gateway/internal/organizations"
	packagesvc "github.com/verilocal/admin-gateway/internal/packages"
	pricingsvc "github.com/verilocal/admin-gateway/internal/pricing"
	pkgauth "github.com/verilocal/admin-gateway/pkg/auth"
	"github.com/verilocal/admin-gateway/pkg/config"
	"github.com/verilocal/admin-gateway/pkg/logger"
	"github.com/verilocal/admin-gateway/pkg/pagination"
	"github.com/verilocal/admin-gateway/pkg/platform"
	"github.com/verilocal/admin-gateway/pkg/redis"
	"github.com/verilocal/admin-gateway/pkg/types"
)

type stubPackageService struct{}

func (stubPackageService) List(context.Context, packagesvc.ListParams) (*packagesvc.ListResult, error) {
	return &packagesvc.ListResult{Entries: []packagesvc.Package{}, Page: pagination.NewPage(1, 20, 0)}, nil
}

func (stubPackageService) Get(context.Context, string) (*packagesvc.Package, error) {
	return &packagesvc.Package{ID: "pkg-1", Title: "Starter"}, nil
}

func (stubPackageService) Create(context.Context, packagesvc.Input) (*packagesvc.Package, error) {
	return &packagesvc.Package{ID: "pkg-1"}, nil
}

func (stubPackageService) Update(context.Context, string, packagesvc.Input) (*packagesvc.Package, error) {
	return &packagesvc.Package{ID: "pkg-1"}, nil
}

func (stubPackageService) Delete(context.Context, string) error { return nil }

func (stubPackageService) SetStatus(context.Context, string, bool) (*packagesvc.Package, error) {
	return &packagesvc.Package{ID: "pkg-1"}, nil
}

func (stubPackageService) Validate(packagesvc.Input) map[string]string { return nil }

type stubPricingService struct{}

func (stubPricingService) List(context.Context, pricingsvc.ListParams) (*pricingsvc.ListResult, error) {
	return &pricingsvc.ListResult{Entries: []pricingsvc.Entry{}, Page: pagination.NewPage(1, 20, 0)}, nil
}

func (stubPricingService) Create(context.Context, pricingsvc.EntryInput) (*pricingsvc.Entry, error) {
	return &pricingsvc.Entry{ID: "price-1"}, nil
}

func (stubPricingService) Update(context.Context, string, pricingsvc.EntryInput) (*pricingsvc.Entry, error) {
	return &pricingsvc.Entry{ID: "price-1"}, nil
}

func (stubPricingService) Delete(context.Context, string) error { return nil }

func (stubPricingService) SetStatus(context.Context, string, bool) (*pricingsvc.Entry, error) {
	return &pricingsvc.Entry{ID: "price-1"}, nil
}

type stubLookup struct{}

func (stubLookup) LookupLocationPricing(context.Context, types.LocationScope) (*platform.PricingRule, bool, error) {
	return nil, false, nil
}

type stubCityRegionService struct{}

func (stubCityRegionService) List(context.Context, cityregionsvc.ListParams) (*cityregionsvc.ListResult, error) {
	return &cityregionsvc.ListResult{Entries: []cityregionsvc.Region{}, Page: pagination.NewPage(1, 20, 0)}, nil
}

func (stubCityRegionService) Create(context.Context, cityregionsvc.Input) (*cityregionsvc.Region, error) {
	return &cityregionsvc.Region{ID: "region-1"}, nil
}

func (stubCityRegionService) Update(context.Context, string, cityregionsvc.Input) (*cityregionsvc.Region, error) {
	return &cityregionsvc.Region{ID: "region-1"}, nil
}

func (stubCityRegionService) Delete(context.Context, string) error { return nil }

type stubGeoService struct{}

func (stubGeoService) Countries(context.Context) ([]platform.RefOption, error) {
	return []platform.RefOption{{Code: "NG", Name: "Nigeria"}}, nil
}

func (stubGeoService) States(context.Context, string) ([]platform.RefOption, error) {
	return nil, nil
}

func (stubGeoService) LGAs(context.Context, string, string) ([]platform.RefOption, error) {
	return nil, nil
}

func (stubGeoService) Cities(context.Context, string, string, string) ([]platform.RefOption, error) {
	return nil, nil
}

func (stubGeoService) CityRegions(context.Context, types.LocationScope) ([]platform.RefOption, error) {
	return nil, nil
}

type stubCheckoutService struct{}

func (stubCheckoutService) Start(context.Context, checkoutsvc.StartInput) (*checkoutsvc.Session, error) {
	return &checkoutsvc.Session{ID: "sess-1"}, nil
}

func (stubCheckoutService) Get(context.Context, string) (*checkoutsvc.Session, error) {
	return &checkoutsvc.Session{ID: "sess-1"}, nil
}

func (stubCheckoutService) SelectPackages(context.Context, string, []checkoutsvc.PackageSelection) (*checkoutsvc.Session, error) {
	return &checkoutsvc.Session{ID: "sess-1"}, nil
}

func (stubCheckoutService) SubmitProfile(context.Context, string, organizations.Profile) (*checkoutsvc.Session, error) {
	return &checkoutsvc.Session{ID: "sess-1"}, nil
}

func (stubCheckoutService) AddLocation(context.Context, string, organizations.Location) (*checkoutsvc.Session, error) {
	return &checkoutsvc.Session{ID: "sess-1"}, nil
}

func (stubCheckoutService) RemoveLocation(context.Context, string, string) (*checkoutsvc.Session, error) {
	return &checkoutsvc.Session{ID: "sess-1"}, nil
}

func (stubCheckoutService) OverrideLocationFee(context.Context, string, string, decimal.Decimal) (*checkoutsvc.Session, error) {
	return &checkoutsvc.Session{ID: "sess-1"}, nil
}

func (stubCheckoutService) SubmitLocations(context.Context, string) (*checkoutsvc.Session, error) {
	return &checkoutsvc.Session{ID: "sess-1"}, nil
}

func (stubCheckoutService) InitLocationPayment(context.Context, string, *checkoutsvc.Contact) (*checkoutsvc.Session, *checkoutsvc.Redirect, error) {
	return &checkoutsvc.Session{ID: "sess-1"}, &checkoutsvc.Redirect{Reference: "ref-1"}, nil
}

func (stubCheckoutService) InitPayment(context.Context, string, *checkoutsvc.Contact) (*checkoutsvc.Session, *checkoutsvc.Redirect, error) {
	return &checkoutsvc.Session{ID: "sess-1"}, &checkoutsvc.Redirect{Reference: "ref-1"}, nil
}

func (stubCheckoutService) Back(context.Context, string) (*checkoutsvc.Session, error) {
	return &checkoutsvc.Session{ID: "sess-1"}, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient, err := redis.New(context.Background(), config.RedisConfig{Address: mr.Addr()}, nil)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}

	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})

	resolver, err := pricingsvc.NewResolver(stubLookup{}, config.PricingConfig{DefaultVerificationFee: "5000"}, logg)
	if err != nil {
		t.Fatalf("resolver: %v", err)
	}

	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT = config.JWTConfig{Secret: "test-secret", Issuer: "verilocal-auth"}

	return NewRouter(
		cfg,
		logg,
		redisClient,
		prometheus.NewRegistry(),
		stubPackageService{},
		stubPricingService{},
		resolver,
		stubCityRegionService{},
		stubGeoService{},
		stubCheckoutService{},
	)
}

func adminToken(t *testing.T) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(
		config.JWTConfig{Secret: "test-secret", Issuer: "verilocal-auth"},
		time.Now(),
		pkgauth.AccessTokenPayload{UserID: uuid.New(), Role: pkgauth.AdminRole},
	)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthEndpointsArePublic(t *testing.T) {
	router := newTestRouter(t)

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
		if env := w.Header().Get("X-VeriLocal-Env"); env != "test" {
			t.Fatalf("%s: expected env header, got %q", path, env)
		}
	}
}

func TestMetricsEndpointIsPublic(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	router := newTestRouter(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/admin/v1/packages/"},
		{http.MethodGet, "/api/admin/v1/default-pricing/"},
		{http.MethodGet, "/api/admin/v1/city-regions/"},
		{http.MethodGet, "/api/admin/v1/geo/countries"},
		{http.MethodPost, "/api/admin/v1/checkout/sessions/"},
	}
	for _, tc := range paths {
		req := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s %s: expected 401, got %d", tc.method, tc.path, w.Code)
		}
	}
}

func TestAdminRoutesAcceptAdminToken(t *testing.T) {
	router := newTestRouter(t)
	token := adminToken(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/v1/packages/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var envelope struct {
		Success bool `json:"success"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success {
		t.Fatalf("expected success envelope, got %s", w.Body.String())
	}
}

func TestCheckoutRoutesAreWired(t *testing.T) {
	router := newTestRouter(t)
	token := adminToken(t)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/v1/checkout/sessions/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodPost, "/api/admin/v1/checkout/sessions/sess-1/back", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}
