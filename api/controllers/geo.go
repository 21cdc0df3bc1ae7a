package controllers

import (
	"net/http"

	"github.com/verilocal/admin-gateway/api/responses"
	"github.com/verilocal/admin-gateway/api/validators"
	geosvc "github.com/verilocal/admin-gateway/internal/geo"
	pkgerrors "github.com/verilocal/admin-gateway/pkg/errors"
	"github.com/verilocal/admin-gateway/pkg/logger"
	"github.com/verilocal/admin-gateway/pkg/types"
)

// The geo controllers back the cascading location dropdowns. Each level
// takes its parents as query parameters; the service rejects requests
// with a missing parent before anything goes upstream.

func ListCountries(svc geosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "geo service unavailable"))
			return
		}

		options, err := svc.Countries(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, options)
	}
}

func ListStates(svc geosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "geo service unavailable"))
			return
		}

		options, err := svc.States(r.Context(), validators.SanitizeString(r.URL.Query().Get("country"), 80))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, options)
	}
}

func ListLGAs(svc geosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "geo service unavailable"))
			return
		}

		options, err := svc.LGAs(r.Context(),
			validators.SanitizeString(r.URL.Query().Get("country"), 80),
			validators.SanitizeString(r.URL.Query().Get("state"), 80),
		)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, options)
	}
}

func ListCities(svc geosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "geo service unavailable"))
			return
		}

		options, err := svc.Cities(r.Context(),
			validators.SanitizeString(r.URL.Query().Get("country"), 80),
			validators.SanitizeString(r.URL.Query().Get("state"), 80),
			validators.SanitizeString(r.URL.Query().Get("lga"), 80),
		)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, options)
	}
}

func ListCityRegionOptions(svc geosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "geo service unavailable"))
			return
		}

		scope := types.LocationScope{
			Country: validators.SanitizeString(r.URL.Query().Get("country"), 80),
			State:   validators.SanitizeString(r.URL.Query().Get("state"), 80),
			LGA:     validators.SanitizeString(r.URL.Query().Get("lga"), 80),
			City:    validators.SanitizeString(r.URL.Query().Get("city"), 80),
		}

		options, err := svc.CityRegions(r.Context(), scope)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, options)
	}
}
