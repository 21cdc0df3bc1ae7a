package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/verilocal/admin-gateway/api/responses"
	"github.com/verilocal/admin-gateway/api/validators"
	pricingsvc "github.com/verilocal/admin-gateway/internal/pricing"
	"github.com/verilocal/admin-gateway/pkg/enums"
	pkgerrors "github.com/verilocal/admin-gateway/pkg/errors"
	"github.com/verilocal/admin-gateway/pkg/logger"
	"github.com/verilocal/admin-gateway/pkg/types"
)

// ListDefaultPricing serves the default pricing list page. Country and
// state filter upstream; search and level narrow the fetched page only.
func ListDefaultPricing(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
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

		params := pricingsvc.ListParams{
			Page:    page,
			Limit:   limit,
			Country: validators.SanitizeString(r.URL.Query().Get("country"), 80),
			State:   validators.SanitizeString(r.URL.Query().Get("state"), 80),
			Search:  validators.SanitizeString(r.URL.Query().Get("search"), 120),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("level")); raw != "" {
			level, err := enums.ParsePricingLevel(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid pricing level"))
				return
			}
			params.Level = level
		}

		result, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func CreateDefaultPricing(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		var payload pricingEntryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, entry)
	}
}

func UpdateDefaultPricing(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "entryId"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "pricing entry id is required"))
			return
		}

		var payload pricingEntryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.Update(r.Context(), id, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entry)
	}
}

func DeleteDefaultPricing(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "entryId"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "pricing entry id is required"))
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"id": id, "status": "deleted"})
	}
}

func SetDefaultPricingStatus(svc pricingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing service unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "entryId"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "pricing entry id is required"))
			return
		}

		var payload statusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entry, err := svc.SetStatus(r.Context(), id, *payload.Active)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entry)
	}
}

// ResolvePricing previews the verification fee a location scope would be
// charged. When an existing fee is supplied it is kept as-is so manual
// overrides survive re-resolution.
func ResolvePricing(resolver *pricingsvc.Resolver, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if resolver == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing resolver unavailable"))
			return
		}

		var payload resolvePricingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		resolution := resolver.Resolve(r.Context(), types.LocationScope{
			Country:    payload.Country,
			State:      payload.State,
			LGA:        payload.LGA,
			City:       payload.City,
			CityRegion: payload.CityRegion,
		}, payload.ExistingFee)

		responses.WriteSuccess(w, resolvePricingResponse{
			Fee:     resolution.Fee,
			Source:  resolution.Source,
			Applied: resolution.Applied,
		})
	}
}

type pricingEntryRequest struct {
	Country string          `json:"country" validate:"required"`
	State   string          `json:"state,omitempty"`
	LGA     string          `json:"lga,omitempty"`
	City    string          `json:"city,omitempty"`
	Fee     decimal.Decimal `json:"default_fee"`
	Active  bool            `json:"is_active"`
	Level   string          `json:"level" validate:"required"`
}

type resolvePricingRequest struct {
	Country     string           `json:"country" validate:"required"`
	State       string           `json:"state,omitempty"`
	LGA         string           `json:"lga,omitempty"`
	City        string           `json:"city,omitempty"`
	CityRegion  string           `json:"city_region,omitempty"`
	ExistingFee *decimal.Decimal `json:"existing_fee,omitempty"`
}

type resolvePricingResponse struct {
	Fee     decimal.Decimal `json:"fee"`
	Source  string          `json:"source"`
	Applied bool            `json:"applied"`
}

func (p pricingEntryRequest) toInput() (pricingsvc.EntryInput, error) {
	level, err := enums.ParsePricingLevel(strings.TrimSpace(p.Level))
	if err != nil {
		return pricingsvc.EntryInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid pricing level")
	}
	return pricingsvc.EntryInput{
		Country: strings.TrimSpace(p.Country),
		State:   strings.TrimSpace(p.State),
		LGA:     strings.TrimSpace(p.LGA),
		City:    strings.TrimSpace(p.City),
		Fee:     p.Fee,
		Active:  p.Active,
		Level:   level,
	}, nil
}
