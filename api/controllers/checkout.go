package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/verilocal/admin-gateway/api/middleware"
	"github.com/verilocal/admin-gateway/api/responses"
	"github.com/verilocal/admin-gateway/api/validators"
	checkoutsvc "github.com/verilocal/admin-gateway/internal/checkout"
	"github.com/verilocal/admin-gateway/internal/organizations"
	"github.com/verilocal/admin-gateway/pkg/enums"
	pkgerrors "github.com/verilocal/admin-gateway/pkg/errors"
	"github.com/verilocal/admin-gateway/pkg/logger"
)

// StartCheckout opens a wizard session for the authenticated admin. The
// contact details default from the token claims and can be replaced at
// payment time.
func StartCheckout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		adminID := middleware.AdminIDFromContext(r.Context())
		if adminID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "admin context missing"))
			return
		}

		session, err := svc.Start(r.Context(), checkoutsvc.StartInput{
			AdminID: adminID,
			Name:    middleware.AdminNameFromContext(r.Context()),
			Email:   middleware.AdminEmailFromContext(r.Context()),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, session)
	}
}

func GetCheckoutSession(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID, err := checkoutSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

func SelectCheckoutPackages(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID, err := checkoutSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload selectPackagesRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		selections, err := payload.toSelections()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.SelectPackages(r.Context(), sessionID, selections)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

func SubmitCheckoutProfile(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID, err := checkoutSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload profileRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		profile, err := payload.toProfile()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.SubmitProfile(r.Context(), sessionID, profile)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

func AddCheckoutLocation(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID, err := checkoutSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload locationRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		location, err := payload.toLocation()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.AddLocation(r.Context(), sessionID, location)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

func RemoveCheckoutLocation(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID, err := checkoutSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		locationID := strings.TrimSpace(chi.URLParam(r, "locationId"))
		if locationID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "location id is required"))
			return
		}

		session, err := svc.RemoveLocation(r.Context(), sessionID, locationID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

// OverrideCheckoutLocationFee replaces a location's resolved fee with a
// manual amount. The session keeps the override through re-resolution.
func OverrideCheckoutLocationFee(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID, err := checkoutSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		locationID := strings.TrimSpace(chi.URLParam(r, "locationId"))
		if locationID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "location id is required"))
			return
		}

		var payload overrideFeeRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.OverrideLocationFee(r.Context(), sessionID, locationID, payload.Fee)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

func SubmitCheckoutLocations(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID, err := checkoutSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.SubmitLocations(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

func InitCheckoutLocationPayment(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID, err := checkoutSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contact, err := optionalContact(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, redirect, err := svc.InitLocationPayment(r.Context(), sessionID, contact)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, paymentResponse{Session: session, Redirect: redirect})
	}
}

func InitCheckoutPayment(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID, err := checkoutSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contact, err := optionalContact(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, redirect, err := svc.InitPayment(r.Context(), sessionID, contact)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, paymentResponse{Session: session, Redirect: redirect})
	}
}

// CheckoutBack steps the wizard to the previous page along the branch the
// session actually took.
func CheckoutBack(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID, err := checkoutSessionID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		session, err := svc.Back(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, session)
	}
}

func checkoutSessionID(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "sessionId"))
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "checkout session id is required")
	}
	return id, nil
}

// optionalContact decodes the payment body when one was sent. An empty
// body means bill the session's stored contact.
func optionalContact(r *http.Request) (*checkoutsvc.Contact, error) {
	if r.Body == nil || r.ContentLength == 0 {
		return nil, nil
	}
	var payload contactRequest
	if err := validators.DecodeJSONBody(r, &payload); err != nil {
		return nil, err
	}
	return &checkoutsvc.Contact{
		Name:  strings.TrimSpace(payload.Name),
		Email: strings.TrimSpace(payload.Email),
		Phone: strings.TrimSpace(payload.Phone),
	}, nil
}

type selectPackagesRequest struct {
	Selections []packageSelectionRequest `json:"selections" validate:"required,min=1,dive"`
}

type packageSelectionRequest struct {
	PackageID string          `json:"package_id" validate:"required"`
	Title     string          `json:"title" validate:"required"`
	Cycle     string          `json:"cycle" validate:"required"`
	Price     decimal.Decimal `json:"price"`
}

type profileRequest struct {
	BusinessType       string `json:"business_type" validate:"required"`
	IsPublicProfile    bool   `json:"is_public_profile"`
	VerificationStatus string `json:"verification_status,omitempty"`
}

type locationRequest struct {
	Type          string               `json:"type" validate:"required"`
	BrandName     string               `json:"brand_name" validate:"required"`
	Country       string               `json:"country" validate:"required"`
	State         string               `json:"state" validate:"required"`
	LGA           string               `json:"lga,omitempty"`
	City          string               `json:"city" validate:"required"`
	CityRegion    string               `json:"city_region,omitempty"`
	HouseNumber   string               `json:"house_number" validate:"required"`
	Street        string               `json:"street" validate:"required"`
	Landmark      string               `json:"landmark,omitempty"`
	PostalCode    string               `json:"postal_code,omitempty"`
	CityRegionFee *decimal.Decimal     `json:"city_region_fee,omitempty"`
	Gallery       []galleryItemRequest `json:"gallery,omitempty" validate:"omitempty,dive"`
}

type galleryItemRequest struct {
	Kind    string `json:"kind" validate:"required"`
	FileRef string `json:"file_ref,omitempty"`
	URL     string `json:"url,omitempty"`
}

type overrideFeeRequest struct {
	Fee decimal.Decimal `json:"fee" validate:"required"`
}

type contactRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
	Phone string `json:"phone,omitempty"`
}

type paymentResponse struct {
	Session  *checkoutsvc.Session  `json:"session"`
	Redirect *checkoutsvc.Redirect `json:"redirect"`
}

func (p selectPackagesRequest) toSelections() ([]checkoutsvc.PackageSelection, error) {
	selections := make([]checkoutsvc.PackageSelection, 0, len(p.Selections))
	for _, sel := range p.Selections {
		cycle, err := enums.ParseBillingCycle(strings.TrimSpace(sel.Cycle))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid billing cycle")
		}
		selections = append(selections, checkoutsvc.PackageSelection{
			PackageID: strings.TrimSpace(sel.PackageID),
			Title:     strings.TrimSpace(sel.Title),
			Cycle:     cycle,
			Price:     sel.Price,
		})
	}
	return selections, nil
}

func (p profileRequest) toProfile() (organizations.Profile, error) {
	businessType, err := enums.ParseBusinessType(strings.TrimSpace(p.BusinessType))
	if err != nil {
		return organizations.Profile{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid business type")
	}

	profile := organizations.Profile{
		BusinessType:    businessType,
		IsPublicProfile: p.IsPublicProfile,
	}
	if raw := strings.TrimSpace(p.VerificationStatus); raw != "" {
		status, err := enums.ParseVerificationStatus(raw)
		if err != nil {
			return organizations.Profile{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid verification status")
		}
		profile.VerificationStatus = status
	}
	return profile, nil
}

func (p locationRequest) toLocation() (organizations.Location, error) {
	locationType, err := enums.ParseLocationType(strings.TrimSpace(p.Type))
	if err != nil {
		return organizations.Location{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid location type")
	}

	gallery := make([]organizations.Media, 0, len(p.Gallery))
	for _, item := range p.Gallery {
		kind, err := enums.ParseMediaKind(strings.TrimSpace(item.Kind))
		if err != nil {
			return organizations.Location{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid media kind")
		}
		gallery = append(gallery, organizations.Media{
			Kind:    kind,
			FileRef: strings.TrimSpace(item.FileRef),
			URL:     strings.TrimSpace(item.URL),
		})
	}

	return organizations.Location{
		Type:          locationType,
		BrandName:     strings.TrimSpace(p.BrandName),
		Country:       strings.TrimSpace(p.Country),
		State:         strings.TrimSpace(p.State),
		LGA:           strings.TrimSpace(p.LGA),
		City:          strings.TrimSpace(p.City),
		CityRegion:    strings.TrimSpace(p.CityRegion),
		HouseNumber:   strings.TrimSpace(p.HouseNumber),
		Street:        strings.TrimSpace(p.Street),
		Landmark:      strings.TrimSpace(p.Landmark),
		PostalCode:    strings.TrimSpace(p.PostalCode),
		CityRegionFee: p.CityRegionFee,
		Gallery:       gallery,
	}, nil
}
