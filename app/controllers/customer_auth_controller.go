package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vendika/app/services"
	"github.com/shashiranjanraj/vendika/pkg/bind"
	"github.com/shashiranjanraj/vendika/pkg/response"
)

type CustomerAuthController struct {
	service *services.AuthService
}

func NewCustomerAuthController() *CustomerAuthController {
	return &CustomerAuthController{service: services.NewAuthService()}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (c *CustomerAuthController) Register(w http.ResponseWriter, r *http.Request) {
	store, err := storeFromRequest(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	var body registerRequest
	if verrs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if verrs != nil {
		response.ValidationError(w, verrs)
		return
	}

	customer, token, err := c.service.RegisterCustomer(store.ID, body.Name, body.Email, body.Password)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Created(w, map[string]interface{}{
		"customer": customer,
		"token":    token,
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (c *CustomerAuthController) Login(w http.ResponseWriter, r *http.Request) {
	store, err := storeFromRequest(r)
	if err != nil {
		fail(w, r, err)
		return
	}

	var body loginRequest
	if verrs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if verrs != nil {
		response.ValidationError(w, verrs)
		return
	}

	customer, token, err := c.service.LoginCustomer(store.ID, body.Email, body.Password)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"customer": customer,
		"token":    token,
	})
}
