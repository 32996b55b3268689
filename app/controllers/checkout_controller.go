package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/app/repositories"
	"github.com/shashiranjanraj/vendika/app/services"
	"github.com/shashiranjanraj/vendika/app/services/payment"
	"github.com/shashiranjanraj/vendika/config"
	"github.com/shashiranjanraj/vendika/pkg/bind"
	"github.com/shashiranjanraj/vendika/pkg/logger"
	"github.com/shashiranjanraj/vendika/pkg/response"
	"github.com/shashiranjanraj/vendika/pkg/router"
)

// CheckoutController places orders and hands them to the payment boundary.
// The response carries the order plus the provider approval redirect; a
// provider failure after the order committed is reported alongside the order
// rather than discarding it, since the order is retryable.
type CheckoutController struct {
	checkout *services.CheckoutService
	payments *payment.Service
	orders   *repositories.OrderRepository
	routes   *router.Router
}

func NewCheckoutController(payments *payment.Service, routes *router.Router) *CheckoutController {
	return &CheckoutController{
		checkout: services.NewCheckoutService(),
		payments: payments,
		orders:   repositories.NewOrderRepository(),
		routes:   routes,
	}
}

// returnURLs builds the absolute store-scoped capture and cancel redirects,
// threading the order number through as the correlation key.
func (c *CheckoutController) returnURLs(store models.Store, orderNumber string) (payment.ReturnURLs, error) {
	params := map[string]string{"storeSlug": store.Slug}

	capture, err := c.routes.URL("payments.paypal.capture", params)
	if err != nil {
		return payment.ReturnURLs{}, err
	}
	cancel, err := c.routes.URL("payments.paypal.cancel", params)
	if err != nil {
		return payment.ReturnURLs{}, err
	}

	base := config.AppURL()
	return payment.ReturnURLs{
		Return: base + capture + "?order=" + orderNumber,
		Cancel: base + cancel + "?order=" + orderNumber,
	}, nil
}

// PlaceOrder turns the cart into a pending order and starts the remote
// payment.
func (c *CheckoutController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	store, err := storeFromRequest(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	customerID, err := customerScope(r, store)
	if err != nil {
		fail(w, r, err)
		return
	}

	var body services.CheckoutRequest
	if verrs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if verrs != nil {
		response.ValidationError(w, verrs)
		return
	}

	order, err := c.checkout.PlaceOrder(customerID, store.ID, body)
	if err != nil {
		fail(w, r, err)
		return
	}

	c.respondWithPayment(w, r, store, order)
}

// Pay retries the remote payment for an existing pending order, e.g. after
// the provider was unreachable during checkout.
func (c *CheckoutController) Pay(w http.ResponseWriter, r *http.Request) {
	store, err := storeFromRequest(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	customerID, err := customerScope(r, store)
	if err != nil {
		fail(w, r, err)
		return
	}
	orderID, err := uintParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}

	order, err := c.orders.FindForCustomer(orderID, customerID, store.ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	if order.Status != models.OrderStatusPending {
		fail(w, r, errs.ErrInvalidTransition)
		return
	}

	c.respondWithPayment(w, r, store, order)
}

func (c *CheckoutController) respondWithPayment(w http.ResponseWriter, r *http.Request, store models.Store, order models.Order) {
	urls, err := c.returnURLs(store, order.OrderNumber)
	if err != nil {
		fail(w, r, err)
		return
	}

	result, err := c.payments.Start(r.Context(), &order, urls)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("payment start failed",
			"order_number", order.OrderNumber,
			"error", err,
		)
		response.Created(w, map[string]interface{}{
			"order":         order,
			"payment_error": err.Error(),
		})
		return
	}

	response.Created(w, map[string]interface{}{
		"order":   order,
		"payment": result,
	})
}
