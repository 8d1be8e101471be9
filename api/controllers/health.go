package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/jmcalloway/insuquote-backend/api/responses"
	"github.com/jmcalloway/insuquote-backend/pkg/config"
	pkgerrors "github.com/jmcalloway/insuquote-backend/pkg/errors"
	"github.com/jmcalloway/insuquote-backend/pkg/logger"
)

// ReadinessProbes collects the backing dependencies the readiness check pings.
// A nil entry is skipped, which keeps local setups without that dependency green.
type ReadinessProbes struct {
	Database interface {
		Ping(ctx context.Context) error
	}
	Cache interface {
		Ping(ctx context.Context) error
	}
	ObjectStorage interface {
		Ping(ctx context.Context) error
	}
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-InsuQuote-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

func HealthReady(cfg *config.Config, probes ReadinessProbes, logg *logger.Logger) http.HandlerFunc {
	type probe struct {
		name   string
		pinger interface {
			Ping(ctx context.Context) error
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-InsuQuote-Env", cfg.App.Env)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := []probe{
			{"database", probes.Database},
			{"cache", probes.Cache},
			{"object_storage", probes.ObjectStorage},
		}

		status := map[string]string{}
		for _, c := range checks {
			if c.pinger == nil {
				continue
			}
			if err := c.pinger.Ping(ctx); err != nil {
				status[c.name] = "down"
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, c.name+" unavailable"))
				return
			}
			status[c.name] = "up"
		}

		status["status"] = "ready"
		responses.WriteSuccess(w, status)
	}
}
