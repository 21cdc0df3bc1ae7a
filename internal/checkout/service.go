package checkout

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/verilocal/admin-gateway/internal/geo"
	"github.com/verilocal/admin-gateway/internal/organizations"
	"github.com/verilocal/admin-gateway/internal/pricing"
	"github.com/verilocal/admin-gateway/internal/upstream"
	"github.com/verilocal/admin-gateway/pkg/enums"
	pkgerrors "github.com/verilocal/admin-gateway/pkg/errors"
	"github.com/verilocal/admin-gateway/pkg/logger"
	"github.com/verilocal/admin-gateway/pkg/platform"
	"github.com/verilocal/admin-gateway/pkg/types"
)

type paymentClient interface {
	InitSubscriptionPayment(ctx context.Context, req platform.SubscriptionPaymentRequest) (*platform.PaymentRedirect, error)
	InitLocationPayment(ctx context.Context, req platform.LocationPaymentRequest) (*platform.PaymentRedirect, error)
}

type feeResolver interface {
	Resolve(ctx context.Context, scope types.LocationScope, existing *decimal.Decimal) pricing.Resolution
}

// StartInput seeds a new session with the admin's identity; the contact
// details default from it and can be replaced at payment time.
type StartInput struct {
	AdminID string
	Name    string
	Email   string
}

// Redirect is the payment gateway handoff returned by the payment steps.
type Redirect struct {
	Reference        string `json:"reference"`
	AuthorizationURL string `json:"authorization_url"`
}

// Service drives the checkout wizard. All state lives in the session
// store; every operation loads the session, verifies the current step,
// applies the change, and saves.
type Service interface {
	Start(ctx context.Context, input StartInput) (*Session, error)
	Get(ctx context.Context, sessionID string) (*Session, error)
	SelectPackages(ctx context.Context, sessionID string, selections []PackageSelection) (*Session, error)
	SubmitProfile(ctx context.Context, sessionID string, profile organizations.Profile) (*Session, error)
	AddLocation(ctx context.Context, sessionID string, location organizations.Location) (*Session, error)
	RemoveLocation(ctx context.Context, sessionID, locationID string) (*Session, error)
	OverrideLocationFee(ctx context.Context, sessionID, locationID string, fee decimal.Decimal) (*Session, error)
	SubmitLocations(ctx context.Context, sessionID string) (*Session, error)
	InitLocationPayment(ctx context.Context, sessionID string, contact *Contact) (*Session, *Redirect, error)
	InitPayment(ctx context.Context, sessionID string, contact *Contact) (*Session, *Redirect, error)
	Back(ctx context.Context, sessionID string) (*Session, error)
}

type service struct {
	store    *Store
	orgs     organizations.Service
	payments paymentClient
	resolver feeResolver
	lookups  *geo.Coordinator
	logg     *logger.Logger
	now      func() time.Time
	newID    func() string
}

// NewService wires the wizard service.
func NewService(store *Store, orgs organizations.Service, payments paymentClient, resolver feeResolver, logg *logger.Logger) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("session store required")
	}
	if orgs == nil {
		return nil, fmt.Errorf("organization service required")
	}
	if payments == nil {
		return nil, fmt.Errorf("payment client required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("fee resolver required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		store:    store,
		orgs:     orgs,
		payments: payments,
		resolver: resolver,
		lookups:  geo.NewCoordinator(),
		logg:     logg,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
	}, nil
}

func (s *service) Start(ctx context.Context, input StartInput) (*Session, error) {
	if strings.TrimSpace(input.AdminID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "admin id is required")
	}
	now := s.now().UTC()
	session := &Session{
		ID:        s.newID(),
		AdminID:   input.AdminID,
		Step:      enums.CheckoutStepPackages,
		Contact:   Contact{Name: input.Name, Email: input.Email},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Create(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "could not create checkout session")
	}
	s.logg.Info(s.logg.WithCheckoutSession(ctx, session.ID), "checkout session started")
	return session, nil
}

func (s *service) Get(ctx context.Context, sessionID string) (*Session, error) {
	return s.store.Get(ctx, sessionID)
}

func (s *service) SelectPackages(ctx context.Context, sessionID string, selections []PackageSelection) (*Session, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStep(session, enums.CheckoutStepPackages); err != nil {
		return nil, err
	}
	if len(selections) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one package must be selected")
	}
	for _, selection := range selections {
		if strings.TrimSpace(selection.PackageID) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "every selection needs a package id")
		}
		if !selection.Cycle.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "every selection needs a valid billing cycle")
		}
		if !selection.Price.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "every selection needs a positive price")
		}
	}

	session.Selections = selections
	session.Step = enums.CheckoutStepProfile
	if err := s.store.Save(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "could not save checkout session")
	}
	return session, nil
}

// SubmitProfile stores the profile and branches: private organizations go
// straight to payment, so their profile is pushed upstream here; public
// ones continue to the locations step and are pushed together with their
// locations later.
func (s *service) SubmitProfile(ctx context.Context, sessionID string, profile organizations.Profile) (*Session, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStep(session, enums.CheckoutStepProfile); err != nil {
		return nil, err
	}
	if errs := organizations.ValidateProfile(profile); len(errs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "profile form has errors").WithDetails(errs)
	}

	if !profile.IsPublicProfile {
		saved, err := s.orgs.SaveProfile(ctx, profile)
		if err != nil {
			return nil, err
		}
		profile = *saved
		session.OrganizationID = saved.ID
	}

	session.Profile = &profile
	session.Step = stepAfterProfile(session)
	if err := s.store.Save(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "could not save checkout session")
	}
	return session, nil
}

// AddLocation validates and stores a location, resolving its verification
// fee. A fee the admin already set on the form is kept as-is.
func (s *service) AddLocation(ctx context.Context, sessionID string, location organizations.Location) (*Session, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStep(session, enums.CheckoutStepLocations); err != nil {
		return nil, err
	}
	if session.Profile == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "profile must be submitted before locations")
	}
	if msg := organizations.CanAddLocation(*session.Profile, session.Locations); msg != "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msg)
	}
	if errs := organizations.ValidateLocation(location); len(errs) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location form has errors").WithDetails(errs)
	}

	if location.ID == "" {
		location.ID = s.newID()
	}
	scope := types.LocationScope{
		Country:    location.Country,
		State:      location.State,
		LGA:        location.LGA,
		City:       location.City,
		CityRegion: location.CityRegion,
	}
	if location.CityRegionFee != nil && location.PricingSource == "" {
		location.PricingSource = SourceManualOverride
	}
	// A manual override entered while the lookup is in flight wins: the
	// resolved fee is discarded when a newer request superseded it.
	lookupKey := feeLookupKey(session.ID, location.ID)
	seq := s.lookups.Begin(lookupKey)
	resolution := s.resolver.Resolve(ctx, scope, location.CityRegionFee)
	if resolution.Applied {
		applyErr := s.lookups.Apply(lookupKey, seq, func() {
			fee := resolution.Fee
			location.CityRegionFee = &fee
			location.PricingSource = resolution.Source
		})
		if applyErr != nil {
			s.logg.Info(s.logg.WithCheckoutSession(ctx, session.ID), "discarding superseded fee resolution")
		}
	}

	session.Locations = append(session.Locations, location)
	if err := s.store.Save(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "could not save checkout session")
	}
	return session, nil
}

func (s *service) RemoveLocation(ctx context.Context, sessionID, locationID string) (*Session, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStep(session, enums.CheckoutStepLocations); err != nil {
		return nil, err
	}
	if !session.RemoveLocation(locationID) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location not found in this session")
	}
	s.lookups.Forget(feeLookupKey(session.ID, locationID))
	if err := s.store.Save(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "could not save checkout session")
	}
	return session, nil
}

// OverrideLocationFee replaces a location's fee with a manual value. The
// override sticks: later resolutions will not touch it.
func (s *service) OverrideLocationFee(ctx context.Context, sessionID, locationID string, fee decimal.Decimal) (*Session, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStep(session, enums.CheckoutStepLocations); err != nil {
		return nil, err
	}
	if !fee.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "fee must be greater than zero")
	}
	location, _ := session.Location(locationID)
	if location == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location not found in this session")
	}

	// Supersede any fee resolution still in flight for this location.
	s.lookups.Begin(feeLookupKey(session.ID, locationID))
	location.CityRegionFee = &fee
	location.PricingSource = SourceManualOverride
	if err := s.store.Save(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "could not save checkout session")
	}
	return session, nil
}

// SubmitLocations pushes the profile and its locations upstream, then
// branches: verified organizations pay verification fees next, unverified
// ones continue straight to the subscription payment.
func (s *service) SubmitLocations(ctx context.Context, sessionID string) (*Session, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := requireStep(session, enums.CheckoutStepLocations); err != nil {
		return nil, err
	}
	if session.Profile == nil {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "profile must be submitted before locations")
	}
	if len(session.Locations) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one location is required")
	}

	saved, err := s.orgs.SaveProfileWithLocations(ctx, *session.Profile, session.Locations)
	if err != nil {
		return nil, err
	}
	session.OrganizationID = saved.ID
	session.Profile = saved
	session.Step = stepAfterLocations(session)
	if err := s.store.Save(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "could not save checkout session")
	}
	return session, nil
}

// InitLocationPayment starts payment of the verification fees. On failure
// the session stays at its current step so the admin can retry.
func (s *service) InitLocationPayment(ctx context.Context, sessionID string, contact *Contact) (*Session, *Redirect, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if err := requireStep(session, enums.CheckoutStepLocationPayment); err != nil {
		return nil, nil, err
	}

	billing := session.Contact
	if contact != nil {
		billing = *contact
	}
	locationIDs := make([]string, 0, len(session.Locations))
	for _, location := range session.Locations {
		locationIDs = append(locationIDs, location.ID)
	}

	redirect, err := s.payments.InitLocationPayment(ctx, platform.LocationPaymentRequest{
		OrganizationID: session.OrganizationID,
		Contact:        platform.PaymentContact{Name: billing.Name, Email: billing.Email, Phone: billing.Phone},
		LocationIDs:    locationIDs,
		Amount:         session.VerificationTotal(),
	})
	if err != nil {
		return nil, nil, upstream.DependencyError(err, "could not initialize verification fee payment")
	}

	session.Contact = billing
	session.LocationPayRef = redirect.Reference
	session.Step = enums.CheckoutStepPayment
	if err := s.store.Save(ctx, session); err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "could not save checkout session")
	}
	return session, &Redirect{Reference: redirect.Reference, AuthorizationURL: redirect.AuthorizationURL}, nil
}

// InitPayment starts the subscription payment and completes the wizard on
// success. On failure the session stays at the payment step.
func (s *service) InitPayment(ctx context.Context, sessionID string, contact *Contact) (*Session, *Redirect, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if err := requireStep(session, enums.CheckoutStepPayment); err != nil {
		return nil, nil, err
	}

	billing := session.Contact
	if contact != nil {
		billing = *contact
	}
	selections := make([]platform.PackageSelectionReference, 0, len(session.Selections))
	for _, selection := range session.Selections {
		selections = append(selections, platform.PackageSelectionReference{
			PackageID:    selection.PackageID,
			BillingCycle: string(selection.Cycle),
		})
	}

	redirect, err := s.payments.InitSubscriptionPayment(ctx, platform.SubscriptionPaymentRequest{
		OrganizationID: session.OrganizationID,
		Contact:        platform.PaymentContact{Name: billing.Name, Email: billing.Email, Phone: billing.Phone},
		Selections:     selections,
		Amount:         session.SubscriptionTotal(),
	})
	if err != nil {
		return nil, nil, upstream.DependencyError(err, "could not initialize subscription payment")
	}

	session.Contact = billing
	session.PaymentRef = redirect.Reference
	session.Step = enums.CheckoutStepCompleted
	if err := s.store.Save(ctx, session); err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "could not save checkout session")
	}
	s.logg.Info(s.logg.WithCheckoutSession(ctx, session.ID), "checkout completed")
	return session, &Redirect{Reference: redirect.Reference, AuthorizationURL: redirect.AuthorizationURL}, nil
}

// Back moves to the immediate predecessor of the current step. Forward
// progress is only ever made through the step operations themselves.
func (s *service) Back(ctx context.Context, sessionID string) (*Session, error) {
	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	previous, ok := previousStep(session)
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "cannot go back from the "+session.Step.String()+" step")
	}
	session.Step = previous
	if err := s.store.Save(ctx, session); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "could not save checkout session")
	}
	return session, nil
}

func feeLookupKey(sessionID, locationID string) string {
	return sessionID + ":" + locationID + ":fee"
}
