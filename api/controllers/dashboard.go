package controllers

import (
	"net/http"

	"github.com/jmcalloway/insuquote-backend/api/responses"
	"github.com/jmcalloway/insuquote-backend/internal/dashboard"
	pkgerrors "github.com/jmcalloway/insuquote-backend/pkg/errors"
	"github.com/jmcalloway/insuquote-backend/pkg/logger"
)

// DashboardStats serves the cached monthly snapshot for the contractor.
func DashboardStats(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "dashboard service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		stats, err := svc.Stats(ctx, userID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
