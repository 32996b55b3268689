// Package routes registers the HTTP surface: a storefront API scoped by
// store slug, a merchant API scoped by store ownership, and the provider
// redirect endpoints.
package routes

import (
	"github.com/shashiranjanraj/vendika/app/controllers"
	"github.com/shashiranjanraj/vendika/app/services/payment"
	"github.com/shashiranjanraj/vendika/pkg/middleware"
	"github.com/shashiranjanraj/vendika/pkg/router"
)

func Register(r *router.Router, payments *payment.Service) {
	customerAuth := controllers.NewCustomerAuthController()
	merchantAuth := controllers.NewMerchantAuthController()
	cart := controllers.NewCartController()
	checkout := controllers.NewCheckoutController(payments, r)
	paypal := controllers.NewPayPalPaymentController(payments)
	customerOrders := controllers.NewCustomerOrderController()
	orders := controllers.NewOrderController()
	integrations := controllers.NewIntegrationController(payments, r)

	// Storefront surface, scoped by store slug.
	store := r.Group("/store/{storeSlug}")
	store.Post("/register", "customer.register", customerAuth.Register)
	store.Post("/login", "customer.login", customerAuth.Login)

	shop := store.Group("", middleware.CustomerAuth)
	shop.Get("/cart", "cart.index", cart.Index)
	shop.Post("/cart", "cart.add", cart.Add)
	shop.Put("/cart/{id}", "cart.update", cart.Update)
	shop.Delete("/cart/{id}", "cart.remove", cart.Remove)

	shop.Post("/checkout", "checkout.place", checkout.PlaceOrder)
	shop.Post("/orders/{id}/pay", "checkout.pay", checkout.Pay)
	shop.Get("/orders", "customer.orders.index", customerOrders.Index)
	shop.Get("/orders/{id}", "customer.orders.show", customerOrders.Show)
	shop.Post("/orders/{id}/cancel", "customer.orders.cancel", customerOrders.Cancel)

	// Provider redirects land on the customer's authenticated session.
	shop.Get("/payments/paypal/capture", "payments.paypal.capture", paypal.Capture)
	shop.Get("/payments/paypal/cancel", "payments.paypal.cancel", paypal.Cancel)

	// Merchant surface.
	api := r.Group("/api")
	api.Post("/login", "merchant.login", merchantAuth.Login)

	admin := api.Group("/stores/{storeID}", middleware.MerchantAuth)
	admin.Get("/orders", "orders.index", orders.Index)
	admin.Get("/orders/{id}", "orders.show", orders.Show)
	admin.Post("/orders/{id}/cancel", "orders.cancel", orders.Cancel)

	admin.Get("/integrations", "integrations.index", integrations.Index)
	admin.Post("/integrations/{provider}/toggle", "integrations.toggle", integrations.Toggle)
	admin.Post("/integrations/paypal/onboard", "integrations.paypal.onboard", integrations.Onboard)

	// PayPal's onboarding return is a bare browser redirect without a token.
	api.Get("/stores/{storeID}/integrations/paypal/return", "integrations.paypal.return", integrations.OnboardingReturn)
}
