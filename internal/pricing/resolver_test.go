package pricing

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/verilocal/admin-gateway/pkg/config"
	"github.com/verilocal/admin-gateway/pkg/platform"
	"github.com/verilocal/admin-gateway/pkg/types"
)

type stubLookup struct {
	rule  *platform.PricingRule
	found bool
	err   error
	calls int
}

func (s *stubLookup) LookupLocationPricing(_ context.Context, _ types.LocationScope) (*platform.PricingRule, bool, error) {
	s.calls++
	return s.rule, s.found, s.err
}

var testScope = types.LocationScope{Country: "NG", State: "Lagos", City: "Ikeja City"}

func newResolver(t *testing.T, client lookupClient) *Resolver {
	t.Helper()
	r, err := NewResolver(client, config.PricingConfig{DefaultVerificationFee: "5000"}, nil)
	if err != nil {
		t.Fatalf("new resolver: %v", err)
	}
	return r
}

func TestNewResolverRejectsBadDefaultFee(t *testing.T) {
	if _, err := NewResolver(&stubLookup{}, config.PricingConfig{DefaultVerificationFee: "abc"}, nil); err == nil {
		t.Fatal("expected error for unparsable fee")
	}
	if _, err := NewResolver(&stubLookup{}, config.PricingConfig{DefaultVerificationFee: "0"}, nil); err == nil {
		t.Fatal("expected error for non-positive fee")
	}
}

func TestResolveUsesBackendRule(t *testing.T) {
	lookup := &stubLookup{rule: &platform.PricingRule{Fee: decimal.NewFromInt(7500), Source: "City Region Pricing"}, found: true}
	r := newResolver(t, lookup)

	res := r.Resolve(context.Background(), testScope, nil)
	if !res.Applied {
		t.Fatal("expected resolution to apply")
	}
	if !res.Fee.Equal(decimal.NewFromInt(7500)) {
		t.Fatalf("expected backend fee, got %s", res.Fee)
	}
	if res.Source != "City Region Pricing" {
		t.Fatalf("expected backend source, got %q", res.Source)
	}
}

func TestResolveFallsBackWhenNoRule(t *testing.T) {
	r := newResolver(t, &stubLookup{found: false})

	res := r.Resolve(context.Background(), testScope, nil)
	if !res.Fee.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("expected default 5000, got %s", res.Fee)
	}
	if res.Source != SourceDefault {
		t.Fatalf("expected %q, got %q", SourceDefault, res.Source)
	}
}

func TestResolveFallsBackOnError(t *testing.T) {
	r := newResolver(t, &stubLookup{err: errors.New("upstream down")})

	res := r.Resolve(context.Background(), testScope, nil)
	if !res.Fee.Equal(decimal.NewFromInt(5000)) {
		t.Fatalf("expected default 5000, got %s", res.Fee)
	}
	if res.Source != SourceErrorFallback {
		t.Fatalf("expected %q, got %q", SourceErrorFallback, res.Source)
	}
}

func TestResolveNeverClobbersExistingFee(t *testing.T) {
	lookup := &stubLookup{rule: &platform.PricingRule{Fee: decimal.NewFromInt(9999), Source: "should not win"}, found: true}
	r := newResolver(t, lookup)

	existing := decimal.NewFromInt(1200)
	res := r.Resolve(context.Background(), testScope, &existing)
	if res.Applied {
		t.Fatal("expected existing fee to be preserved")
	}
	if !res.Fee.Equal(existing) {
		t.Fatalf("expected existing fee %s, got %s", existing, res.Fee)
	}
	if lookup.calls != 0 {
		t.Fatalf("expected no lookup when fee already set, got %d calls", lookup.calls)
	}
}
