package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/verilocal/admin-gateway/api/responses"
	"github.com/verilocal/admin-gateway/api/validators"
	cityregionsvc "github.com/verilocal/admin-gateway/internal/cityregions"
	pkgerrors "github.com/verilocal/admin-gateway/pkg/errors"
	"github.com/verilocal/admin-gateway/pkg/logger"
)

func ListCityRegions(svc cityregionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "city region service unavailable"))
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

		result, err := svc.List(r.Context(), cityregionsvc.ListParams{
			Page:    page,
			Limit:   limit,
			Country: validators.SanitizeString(r.URL.Query().Get("country"), 80),
			State:   validators.SanitizeString(r.URL.Query().Get("state"), 80),
			City:    validators.SanitizeString(r.URL.Query().Get("city"), 80),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func CreateCityRegion(svc cityregionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "city region service unavailable"))
			return
		}

		var payload cityRegionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		region, err := svc.Create(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, region)
	}
}

func UpdateCityRegion(svc cityregionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "city region service unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "regionId"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "city region id is required"))
			return
		}

		var payload cityRegionRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		region, err := svc.Update(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, region)
	}
}

func DeleteCityRegion(svc cityregionsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "city region service unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "regionId"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "city region id is required"))
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"id": id, "status": "deleted"})
	}
}

type cityRegionRequest struct {
	Name    string          `json:"name" validate:"required"`
	Country string          `json:"country" validate:"required"`
	State   string          `json:"state" validate:"required"`
	LGA     string          `json:"lga" validate:"required"`
	City    string          `json:"city" validate:"required"`
	Fee     decimal.Decimal `json:"fee"`
	Active  bool            `json:"is_active"`
}

func (p cityRegionRequest) toInput() cityregionsvc.Input {
	return cityregionsvc.Input{
		Name:    p.Name,
		Country: p.Country,
		State:   p.State,
		LGA:     p.LGA,
		City:    p.City,
		Fee:     p.Fee,
		Active:  p.Active,
	}
}
