package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/vendika/app/services"
	"github.com/shashiranjanraj/vendika/pkg/bind"
	"github.com/shashiranjanraj/vendika/pkg/response"
)

type MerchantAuthController struct {
	service *services.AuthService
}

func NewMerchantAuthController() *MerchantAuthController {
	return &MerchantAuthController{service: services.NewAuthService()}
}

func (c *MerchantAuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body loginRequest
	if verrs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if verrs != nil {
		response.ValidationError(w, verrs)
		return
	}

	user, token, err := c.service.LoginMerchant(body.Email, body.Password)
	if err != nil {
		fail(w, r, err)
		return
	}

	response.Success(w, map[string]interface{}{
		"user":  user,
		"token": token,
	})
}
