package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jmcalloway/insuquote-backend/api/middleware"
	"github.com/jmcalloway/insuquote-backend/api/responses"
	"github.com/jmcalloway/insuquote-backend/api/validators"
	"github.com/jmcalloway/insuquote-backend/internal/quotes"
	"github.com/jmcalloway/insuquote-backend/pkg/enums"
	pkgerrors "github.com/jmcalloway/insuquote-backend/pkg/errors"
	"github.com/jmcalloway/insuquote-backend/pkg/logger"
	"github.com/jmcalloway/insuquote-backend/pkg/pagination"
)

// statsInvalidator drops the cached dashboard snapshot after a quote mutation.
type statsInvalidator interface {
	Invalidate(userID uuid.UUID)
}

type updateQuoteStatusPayload struct {
	Status string `json:"status" validate:"required"`
}

func requireUser(r *http.Request) (uuid.UUID, error) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == uuid.Nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing identity")
	}
	return userID, nil
}

func parsePathID(r *http.Request, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(chi.URLParam(r, name))
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+name)
	}
	return id, nil
}

// QuoteCreate prices and stores a new quote for the authenticated contractor.
func QuoteCreate(svc quotes.Service, stats statsInvalidator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body quotes.CreateQuoteDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quote, err := svc.Create(ctx, userID, body)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if stats != nil {
			stats.Invalidate(userID)
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, quote)
	}
}

// QuoteList returns a filtered keyset page of the contractor's quotes.
func QuoteList(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		params := quotes.ListParams{
			Search: strings.TrimSpace(r.URL.Query().Get("search")),
			Cursor: strings.TrimSpace(r.URL.Query().Get("cursor")),
			Limit:  limit,
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseQuoteStatus(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown status filter"))
				return
			}
			params.Status = &status
		}

		page, err := svc.List(ctx, userID, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, page)
	}
}

// QuoteGet fetches a single quote owned by the contractor.
func QuoteGet(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		id, err := parsePathID(r, "quoteID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quote, err := svc.Get(ctx, userID, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// QuoteUpdate reprices and persists changes to an existing quote.
func QuoteUpdate(svc quotes.Service, stats statsInvalidator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		id, err := parsePathID(r, "quoteID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body quotes.UpdateQuoteDTO
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		quote, err := svc.Update(ctx, userID, id, body)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if stats != nil {
			stats.Invalidate(userID)
		}
		responses.WriteSuccess(w, quote)
	}
}

// QuoteUpdateStatus moves a quote through its lifecycle.
func QuoteUpdateStatus(svc quotes.Service, stats statsInvalidator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		id, err := parsePathID(r, "quoteID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body updateQuoteStatusPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		status, err := enums.ParseQuoteStatus(body.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "unknown status"))
			return
		}

		quote, err := svc.UpdateStatus(ctx, userID, id, status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if stats != nil {
			stats.Invalidate(userID)
		}
		responses.WriteSuccess(w, quote)
	}
}

// QuoteDelete removes a quote owned by the contractor.
func QuoteDelete(svc quotes.Service, stats statsInvalidator, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote service unavailable"))
			return
		}

		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		id, err := parsePathID(r, "quoteID")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, userID, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if stats != nil {
			stats.Invalidate(userID)
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
