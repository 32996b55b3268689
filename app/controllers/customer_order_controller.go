package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vendika/app/repositories"
	"github.com/shashiranjanraj/vendika/app/services"
	"github.com/shashiranjanraj/vendika/pkg/response"
)

// CustomerOrderController is the storefront's order history surface.
type CustomerOrderController struct {
	orders    *repositories.OrderRepository
	lifecycle *services.OrderService
}

func NewCustomerOrderController() *CustomerOrderController {
	return &CustomerOrderController{
		orders:    repositories.NewOrderRepository(),
		lifecycle: services.NewOrderService(),
	}
}

func (c *CustomerOrderController) Index(w http.ResponseWriter, r *http.Request) {
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

	page, limit := pageParams(r)
	orders, pagination, err := c.lifecycle.ListForCustomer(customerID, store.ID, page, limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, orders, pagination)
}

func (c *CustomerOrderController) Show(w http.ResponseWriter, r *http.Request) {
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
	response.Success(w, order)
}

// Cancel cancels a pending order and restores its stock.
func (c *CustomerOrderController) Cancel(w http.ResponseWriter, r *http.Request) {
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

	order, err := c.lifecycle.CancelForCustomer(orderID, customerID, store.ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, order)
}
