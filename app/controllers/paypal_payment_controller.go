package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/app/repositories"
	"github.com/shashiranjanraj/vendika/app/services"
	"github.com/shashiranjanraj/vendika/app/services/payment"
	"github.com/shashiranjanraj/vendika/pkg/response"
)

// PayPalPaymentController handles the browser redirects PayPal sends the
// customer back on. The approval return carries PayPal's token plus the
// order number we threaded through the return URL.
type PayPalPaymentController struct {
	payments  *payment.Service
	orders    *repositories.OrderRepository
	lifecycle *services.OrderService
}

func NewPayPalPaymentController(payments *payment.Service) *PayPalPaymentController {
	return &PayPalPaymentController{
		payments:  payments,
		orders:    repositories.NewOrderRepository(),
		lifecycle: services.NewOrderService(),
	}
}

// Capture reconciles the payment result into the order. Safe to hit twice;
// a replay finds the order already settled and reports its current state.
func (c *PayPalPaymentController) Capture(w http.ResponseWriter, r *http.Request) {
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

	token := r.URL.Query().Get("token")
	orderNumber := r.URL.Query().Get("order")

	order, err := c.payments.Capture(r.Context(), models.ProviderPayPal, token, orderNumber, customerID, store.ID)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"order":  order,
		"status": order.Status,
	})
}

// Cancel is the provider's cancel redirect: the customer backed out at the
// approval screen. A still-pending order is cancelled and its stock
// restored; the cart was never cleared, so the customer can check out again.
func (c *PayPalPaymentController) Cancel(w http.ResponseWriter, r *http.Request) {
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

	orderNumber := r.URL.Query().Get("order")
	order, err := c.orders.FindByOrderNumber(orderNumber, customerID, store.ID)
	if err != nil {
		fail(w, r, err)
		return
	}

	if order.Status == models.OrderStatusPending {
		if err := c.lifecycle.Cancel(&order); err != nil {
			fail(w, r, err)
			return
		}
	}

	response.Success(w, map[string]interface{}{
		"message": "payment cancelled",
		"order":   order,
	})
}
