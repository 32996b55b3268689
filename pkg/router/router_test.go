package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shashiranjanraj/vendika/pkg/router"
)

func ok(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func TestNamedRouteURL(t *testing.T) {
	r := router.New()
	store := r.Group("/store/{storeSlug}")
	store.Get("/payments/paypal/capture", "payments.paypal.capture", ok)

	url, err := r.URL("payments.paypal.capture", map[string]string{"storeSlug": "demo-store"})
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if url != "/store/demo-store/payments/paypal/capture" {
		t.Errorf("unexpected url: %s", url)
	}
}

func TestURLMissingParam(t *testing.T) {
	r := router.New()
	r.Get("/orders/{id}", "orders.show", ok)

	if _, err := r.URL("orders.show", nil); err == nil {
		t.Error("expected error for missing param")
	}
	if _, err := r.URL("nope", nil); err == nil {
		t.Error("expected error for unknown route name")
	}
}

func TestGroupMiddlewareApplies(t *testing.T) {
	var hit bool
	mw := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hit = true
			next.ServeHTTP(w, r)
		})
	}

	r := router.New()
	g := r.Group("/api", mw)
	g.Get("/ping", "ping", ok)

	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !hit {
		t.Error("group middleware did not run")
	}
}
