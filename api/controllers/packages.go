package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/verilocal/admin-gateway/api/responses"
	"github.com/verilocal/admin-gateway/api/validators"
	packagesvc "github.com/verilocal/admin-gateway/internal/packages"
	"github.com/verilocal/admin-gateway/pkg/enums"
	pkgerrors "github.com/verilocal/admin-gateway/pkg/errors"
	"github.com/verilocal/admin-gateway/pkg/logger"
)

// ListPackages serves the package list page with pagination and search.
func ListPackages(svc packagesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "package service unavailable"))
			return
		}

		page, err := validators.ParseQueryInt(r, "page", 1, 1, 10000)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", 20, 1, 100)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), packagesvc.ListParams{
			Page:   page,
			Limit:  limit,
			Search: validators.SanitizeString(r.URL.Query().Get("search"), 120),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func GetPackage(svc packagesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "package service unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "packageId"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "package id is required"))
			return
		}

		record, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

func CreatePackage(svc packagesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "package service unavailable"))
			return
		}

		var payload packageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

func UpdatePackage(svc packagesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "package service unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "packageId"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "package id is required"))
			return
		}

		var payload packageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

func DeletePackage(svc packagesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "package service unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "packageId"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "package id is required"))
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"id": id, "status": "deleted"})
	}
}

// SetPackageStatus toggles a package between active and inactive without
// touching the rest of the record.
func SetPackageStatus(svc packagesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "package service unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "packageId"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "package id is required"))
			return
		}

		var payload statusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.SetStatus(r.Context(), id, *payload.Active)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// ValidatePackage dry-runs the form payload and returns per-field
// messages without saving anything. The admin UI calls it on blur.
func ValidatePackage(svc packagesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "package service unavailable"))
			return
		}

		var payload packageRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		fields := svc.Validate(input)
		responses.WriteSuccess(w, map[string]any{
			"valid":  len(fields) == 0,
			"fields": fields,
		})
	}
}

type packageRequest struct {
	Title              string                    `json:"title" validate:"required"`
	Description        string                    `json:"description" validate:"required"`
	Services           []serviceSelectionRequest `json:"services" validate:"required,min=1,dive"`
	PromoCode          string                    `json:"promo_code,omitempty"`
	DiscountPercentage decimal.Decimal           `json:"discount_percentage"`
	PromoStart         *time.Time                `json:"promo_start,omitempty"`
	PromoEnd           *time.Time                `json:"promo_end,omitempty"`
	MaxUsers           int                       `json:"max_users" validate:"required,min=1"`
	Features           []string                  `json:"features,omitempty"`
	Note               string                    `json:"note,omitempty"`
	Active             bool                      `json:"is_active"`
}

type serviceSelectionRequest struct {
	ServiceID   string                     `json:"service_id" validate:"required"`
	Name        string                     `json:"name" validate:"required"`
	CyclePrices map[string]decimal.Decimal `json:"cycle_prices" validate:"required,min=1"`
	Cycle       string                     `json:"cycle" validate:"required"`
}

type statusRequest struct {
	Active *bool `json:"is_active" validate:"required"`
}

func (p packageRequest) toInput() (packagesvc.Input, error) {
	services := make([]packagesvc.ServiceSelection, 0, len(p.Services))
	for _, svc := range p.Services {
		cycle, err := enums.ParseBillingCycle(strings.TrimSpace(svc.Cycle))
		if err != nil {
			return packagesvc.Input{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid billing cycle")
		}
		prices := make(map[enums.BillingCycle]decimal.Decimal, len(svc.CyclePrices))
		for raw, price := range svc.CyclePrices {
			parsed, err := enums.ParseBillingCycle(strings.TrimSpace(raw))
			if err != nil {
				return packagesvc.Input{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid billing cycle")
			}
			prices[parsed] = price
		}
		services = append(services, packagesvc.ServiceSelection{
			ServiceID:   strings.TrimSpace(svc.ServiceID),
			Name:        strings.TrimSpace(svc.Name),
			CyclePrices: prices,
			Cycle:       cycle,
		})
	}

	return packagesvc.Input{
		Title:              strings.TrimSpace(p.Title),
		Description:        strings.TrimSpace(p.Description),
		Services:           services,
		PromoCode:          strings.TrimSpace(p.PromoCode),
		DiscountPercentage: p.DiscountPercentage,
		PromoStart:         p.PromoStart,
		PromoEnd:           p.PromoEnd,
		MaxUsers:           p.MaxUsers,
		Features:           p.Features,
		Note:               strings.TrimSpace(p.Note),
		Active:             p.Active,
	}, nil
}
