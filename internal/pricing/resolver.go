package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/verilocal/admin-gateway/pkg/config"
	"github.com/verilocal/admin-gateway/pkg/logger"
	"github.com/verilocal/admin-gateway/pkg/platform"
	"github.com/verilocal/admin-gateway/pkg/types"
)

// Provenance labels for fees the resolver assigns itself.
const (
	SourceDefault       = "Default System Pricing"
	SourceErrorFallback = "Default System Pricing (Error Fallback)"
)

type lookupClient interface {
	LookupLocationPricing(ctx context.Context, scope types.LocationScope) (*platform.PricingRule, bool, error)
}

// Resolution is the outcome of a verification-fee lookup.
type Resolution struct {
	Fee    decimal.Decimal
	Source string
	// Applied is false when an existing fee was left untouched.
	Applied bool
}

// Resolver determines the verification fee for a location by forwarding the
// most specific scope it has to the backend. The backend applies its own
// specificity ordering (city region > city > LGA > state > country); the
// resolver never re-ranks, it only falls back to the configured default fee
// when no rule matches or the call fails.
type Resolver struct {
	client     lookupClient
	defaultFee decimal.Decimal
	logg       *logger.Logger
}

// NewResolver builds a resolver with the configured fallback fee.
func NewResolver(client lookupClient, cfg config.PricingConfig, logg *logger.Logger) (*Resolver, error) {
	if client == nil {
		return nil, fmt.Errorf("pricing lookup client required")
	}
	fee, err := decimal.NewFromString(cfg.DefaultVerificationFee)
	if err != nil {
		return nil, fmt.Errorf("parsing default verification fee: %w", err)
	}
	if !fee.IsPositive() {
		return nil, fmt.Errorf("default verification fee must be positive")
	}
	return &Resolver{client: client, defaultFee: fee, logg: logg}, nil
}

// Resolve returns the fee for the scope. When existing is non-nil a fee is
// already present, manually entered or previously resolved, and must not be
// overwritten: the resolution comes back with Applied=false and the existing
// value untouched. There is deliberately no path that clears a set fee.
func (r *Resolver) Resolve(ctx context.Context, scope types.LocationScope, existing *decimal.Decimal) Resolution {
	if existing != nil {
		return Resolution{Fee: *existing, Applied: false}
	}

	rule, found, err := r.client.LookupLocationPricing(ctx, scope)
	if err != nil {
		if r.logg != nil {
			r.logg.Warn(r.logg.WithField(ctx, "scope", scope), "pricing lookup failed, using error fallback fee")
		}
		return Resolution{Fee: r.defaultFee, Source: SourceErrorFallback, Applied: true}
	}
	if !found {
		return Resolution{Fee: r.defaultFee, Source: SourceDefault, Applied: true}
	}
	return Resolution{Fee: rule.Fee, Source: rule.Source, Applied: true}
}
