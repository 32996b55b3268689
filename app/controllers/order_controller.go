package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/app/repositories"
	"github.com/shashiranjanraj/vendika/app/services"
	"github.com/shashiranjanraj/vendika/pkg/response"
)

// OrderController is the merchant-facing order surface, scoped to stores the
// authenticated merchant owns.
type OrderController struct {
	orders    *repositories.OrderRepository
	lifecycle *services.OrderService
}

func NewOrderController() *OrderController {
	return &OrderController{
		orders:    repositories.NewOrderRepository(),
		lifecycle: services.NewOrderService(),
	}
}

// ownedStore resolves {storeID} and verifies the merchant owns it.
func ownedStore(r *http.Request) (models.Store, error) {
	userID, err := merchantScope(r)
	if err != nil {
		return models.Store{}, err
	}
	storeID, err := uintParam(r, "storeID")
	if err != nil {
		return models.Store{}, err
	}
	return stores.FindByIDForUser(storeID, userID)
}

func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	store, err := ownedStore(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	page, limit := pageParams(r)
	status := r.URL.Query().Get("status")

	orders, pagination, err := c.lifecycle.ListForStore(store.ID, status, page, limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, orders, pagination)
}

func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	store, err := ownedStore(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	orderID, err := uintParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}

	order, err := c.orders.FindForStore(orderID, store.ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, order)
}

// Cancel cancels a pending order on the merchant's behalf, restoring stock.
func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	store, err := ownedStore(r)
	if err != nil {
		fail(w, r, err)
		return
	}
	orderID, err := uintParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}

	order, err := c.lifecycle.CancelForStore(orderID, store.ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, order)
}
