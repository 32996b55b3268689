package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vendika/app/services"
	"github.com/shashiranjanraj/vendika/pkg/bind"
	"github.com/shashiranjanraj/vendika/pkg/response"
)

type CartController struct {
	service *services.CartService
}

func NewCartController() *CartController {
	return &CartController{service: services.NewCartService()}
}

// Index returns the customer's cart for the store, priced at current
// product prices.
func (c *CartController) Index(w http.ResponseWriter, r *http.Request) {
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

	summary, err := c.service.Summary(customerID, store.ID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, summary)
}

type addToCartRequest struct {
	ProductID uint `json:"product_id" validate:"required,numeric"`
	Quantity  int  `json:"quantity" validate:"required,integer,min=1"`
}

func (c *CartController) Add(w http.ResponseWriter, r *http.Request) {
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

	var body addToCartRequest
	if verrs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if verrs != nil {
		response.ValidationError(w, verrs)
		return
	}

	line, err := c.service.Add(customerID, store.ID, body.ProductID, body.Quantity)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, line)
}

type updateCartRequest struct {
	Quantity int `json:"quantity" validate:"integer,min=0"`
}

func (c *CartController) Update(w http.ResponseWriter, r *http.Request) {
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
	lineID, err := uintParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}

	var body updateCartRequest
	if verrs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if verrs != nil {
		response.ValidationError(w, verrs)
		return
	}

	line, err := c.service.UpdateQuantity(customerID, store.ID, lineID, body.Quantity)
	if err != nil {
		fail(w, r, err)
		return
	}
	if body.Quantity == 0 {
		response.Success(w, map[string]string{"message": "item removed"})
		return
	}
	response.Success(w, line)
}

func (c *CartController) Remove(w http.ResponseWriter, r *http.Request) {
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
	lineID, err := uintParam(r, "id")
	if err != nil {
		fail(w, r, err)
		return
	}

	if err := c.service.Remove(customerID, store.ID, lineID); err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, map[string]string{"message": "item removed"})
}
