// Package controllers holds the HTTP handlers. Controllers bind and
// validate input, resolve the store scope from the URL, call a service, and
// translate domain errors into response envelopes.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/app/repositories"
	"github.com/shashiranjanraj/vendika/pkg/auth"
	"github.com/shashiranjanraj/vendika/pkg/logger"
	"github.com/shashiranjanraj/vendika/pkg/middleware"
	"github.com/shashiranjanraj/vendika/pkg/response"
)

var stores = repositories.NewStoreRepository()

// storeFromRequest resolves the {storeSlug} URL segment to an active store.
func storeFromRequest(r *http.Request) (models.Store, error) {
	return stores.FindActiveBySlug(chi.URLParam(r, "storeSlug"))
}

// customerScope returns the authenticated customer id for the store, or an
// error when the token belongs to another store. The auth middleware has
// already verified the token itself.
func customerScope(r *http.Request, store models.Store) (uint, error) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil || claims.Role != auth.RoleCustomer {
		return 0, errs.ErrUnauthenticated
	}
	if claims.StoreID != store.ID {
		return 0, errs.ErrForbidden
	}
	return claims.SubjectID, nil
}

// merchantScope returns the authenticated merchant user id.
func merchantScope(r *http.Request) (uint, error) {
	claims := middleware.ClaimsFromCtx(r.Context())
	if claims == nil || claims.Role != auth.RoleMerchant {
		return 0, errs.ErrUnauthenticated
	}
	return claims.SubjectID, nil
}

// uintParam parses a numeric URL parameter.
func uintParam(r *http.Request, name string) (uint, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, errs.ErrNotFound
	}
	return uint(n), nil
}

// pageParams reads ?page= and ?limit= with sane defaults.
func pageParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

// fail maps a domain error onto the response envelope.
func fail(w http.ResponseWriter, r *http.Request, err error) {
	var stock *errs.InsufficientStockError
	var provider *errs.ProviderError

	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		response.Unauthorized(w)
	case errors.Is(err, errs.ErrForbidden):
		response.Forbidden(w)
	case errors.Is(err, errs.ErrNotFound):
		response.NotFound(w)
	case errors.Is(err, errs.ErrEmptyCart),
		errors.Is(err, errs.ErrInvalidQuantity),
		errors.Is(err, errs.ErrNotConfigured):
		response.Error(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, errs.ErrInvalidTransition):
		response.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrIntegrationUnavailable):
		response.Error(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &stock):
		response.Error(w, http.StatusConflict, stock.Error())
	case errors.As(err, &provider):
		response.Error(w, http.StatusBadGateway, provider.Error())
	default:
		logger.WithCtx(r.Context()).Error("request failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "something went wrong")
	}
}
