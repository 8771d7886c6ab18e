package controllers

import (
	"net/http"

	"github.com/Harshalkatakiya/invoice-maker/api/responses"
	"github.com/Harshalkatakiya/invoice-maker/pkg/config"
	"github.com/Harshalkatakiya/invoice-maker/pkg/db"
	pkgerrors "github.com/Harshalkatakiya/invoice-maker/pkg/errors"
	"github.com/Harshalkatakiya/invoice-maker/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Invoice-Env", cfg.App.Env)
		responses.WriteJSON(w, http.StatusOK, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, pinger db.Pinger, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Invoice-Env", cfg.App.Env)

		if pinger != nil {
			if err := pinger.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "database unreachable"))
				return
			}
		}

		responses.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
