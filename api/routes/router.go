package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/verilocal/admin-gateway/api/controllers"
	"github.com/verilocal/admin-gateway/api/middleware"
	checkoutsvc "github.com/verilocal/admin-gateway/internal/checkout"
	cityregionsvc "github.com/verilocal/admin-gateway/internal/cityregions"
	geosvc "github.com/verilocal/admin-gateway/internal/geo"
	packagesvc "github.com/verilocal/admin-gateway/internal/packages"
	pricingsvc "github.com/verilocal/admin-gateway/internal/pricing"
	"github.com/verilocal/admin-gateway/pkg/config"
	"github.com/verilocal/admin-gateway/pkg/logger"
	"github.com/verilocal/admin-gateway/pkg/redis"
)

// NewRouter wires every admin endpoint. Health and metrics stay public;
// everything under /api/admin/v1 requires an admin bearer token.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	registry *prometheus.Registry,
	packageService packagesvc.Service,
	pricingService pricingsvc.Service,
	pricingResolver *pricingsvc.Resolver,
	cityRegionService cityregionsvc.Service,
	geoService geosvc.Service,
	checkoutService checkoutsvc.Service,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, redisClient, logg))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/packages", func(r chi.Router) {
			r.Get("/", controllers.ListPackages(packageService, logg))
			r.Post("/", controllers.CreatePackage(packageService, logg))
			r.Post("/validate", controllers.ValidatePackage(packageService, logg))
			r.Get("/{packageId}", controllers.GetPackage(packageService, logg))
			r.Put("/{packageId}", controllers.UpdatePackage(packageService, logg))
			r.Delete("/{packageId}", controllers.DeletePackage(packageService, logg))
			r.Post("/{packageId}/status", controllers.SetPackageStatus(packageService, logg))
		})

		r.Route("/default-pricing", func(r chi.Router) {
			r.Get("/", controllers.ListDefaultPricing(pricingService, logg))
			r.Post("/", controllers.CreateDefaultPricing(pricingService, logg))
			r.Put("/{entryId}", controllers.UpdateDefaultPricing(pricingService, logg))
			r.Delete("/{entryId}", controllers.DeleteDefaultPricing(pricingService, logg))
			r.Post("/{entryId}/status", controllers.SetDefaultPricingStatus(pricingService, logg))
		})

		r.Post("/pricing/resolve", controllers.ResolvePricing(pricingResolver, logg))

		r.Route("/city-regions", func(r chi.Router) {
			r.Get("/", controllers.ListCityRegions(cityRegionService, logg))
			r.Post("/", controllers.CreateCityRegion(cityRegionService, logg))
			r.Put("/{regionId}", controllers.UpdateCityRegion(cityRegionService, logg))
			r.Delete("/{regionId}", controllers.DeleteCityRegion(cityRegionService, logg))
		})

		r.Route("/geo", func(r chi.Router) {
			r.Get("/countries", controllers.ListCountries(geoService, logg))
			r.Get("/states", controllers.ListStates(geoService, logg))
			r.Get("/lgas", controllers.ListLGAs(geoService, logg))
			r.Get("/cities", controllers.ListCities(geoService, logg))
			r.Get("/city-regions", controllers.ListCityRegionOptions(geoService, logg))
		})

		r.Route("/checkout/sessions", func(r chi.Router) {
			r.Post("/", controllers.StartCheckout(checkoutService, logg))
			r.Route("/{sessionId}", func(r chi.Router) {
				r.Get("/", controllers.GetCheckoutSession(checkoutService, logg))
				r.Post("/packages", controllers.SelectCheckoutPackages(checkoutService, logg))
				r.Post("/profile", controllers.SubmitCheckoutProfile(checkoutService, logg))
				r.Post("/locations", controllers.AddCheckoutLocation(checkoutService, logg))
				r.Delete("/locations/{locationId}", controllers.RemoveCheckoutLocation(checkoutService, logg))
				r.Put("/locations/{locationId}/fee", controllers.OverrideCheckoutLocationFee(checkoutService, logg))
				r.Post("/locations/submit", controllers.SubmitCheckoutLocations(checkoutService, logg))
				r.Post("/location-payment", controllers.InitCheckoutLocationPayment(checkoutService, logg))
				r.Post("/payment", controllers.InitCheckoutPayment(checkoutService, logg))
				r.Post("/back", controllers.CheckoutBack(checkoutService, logg))
			})
		})
	})

	return r
}
