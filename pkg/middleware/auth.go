package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shashiranjanraj/vendika/pkg/auth"
	"github.com/shashiranjanraj/vendika/pkg/response"
)

type claimsKey struct{}

// ClaimsFromCtx returns the validated JWT claims stored by CustomerAuth or
// MerchantAuth, or nil when the request was not authenticated.
func ClaimsFromCtx(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims
}

func bearerToken(r *http.Request) string {
	return strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "))
}

// CustomerAuth rejects requests without a valid customer token. The
// store-scope check (token store vs. URL store) happens in the controllers,
// which are the ones that resolve the store slug.
func CustomerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := validate(w, r)
		if claims == nil {
			return
		}
		if claims.Role != auth.RoleCustomer {
			response.Forbidden(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}

// MerchantAuth rejects requests without a valid merchant token.
func MerchantAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := validate(w, r)
		if claims == nil {
			return
		}
		if claims.Role != auth.RoleMerchant {
			response.Forbidden(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}

func validate(w http.ResponseWriter, r *http.Request) *auth.Claims {
	token := bearerToken(r)
	if token == "" {
		response.Unauthorized(w)
		return nil
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		response.Unauthorized(w)
		return nil
	}
	return claims
}
