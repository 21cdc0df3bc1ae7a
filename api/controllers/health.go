package controllers

import (
	"net/http"

	"github.com/verilocal/admin-gateway/api/responses"
	"github.com/verilocal/admin-gateway/pkg/config"
	pkgerrors "github.com/verilocal/admin-gateway/pkg/errors"
	"github.com/verilocal/admin-gateway/pkg/logger"
	"github.com/verilocal/admin-gateway/pkg/redis"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VeriLocal-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports ready only when the session store answers a ping.
// The upstream platform API is deliberately not probed here: the gateway
// can serve logins and cached pages while the backend is briefly down.
func HealthReady(cfg *config.Config, store redis.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-VeriLocal-Env", cfg.App.Env)
		if store == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session store unavailable"))
			return
		}
		if err := store.Ping(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "session store unreachable"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
