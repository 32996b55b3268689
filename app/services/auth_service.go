package services

import (
	"errors"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/app/repositories"
	"github.com/shashiranjanraj/vendika/pkg/auth"
	"github.com/shashiranjanraj/vendika/pkg/orm"
)

// AuthService issues tokens for the two user classes. Customer tokens are
// scoped to one store; a token minted against store A never authenticates
// against store B.
type AuthService struct {
	customers *repositories.CustomerRepository
}

func NewAuthService() *AuthService {
	return &AuthService{customers: repositories.NewCustomerRepository()}
}

// RegisterCustomer creates a customer within the store and returns a token.
// The same email may already exist in other stores.
func (s *AuthService) RegisterCustomer(storeID uint, name, email, password string) (models.Customer, string, error) {
	if _, err := s.customers.FindByEmail(storeID, email); err == nil {
		return models.Customer{}, "", errs.ErrForbidden
	} else if !errors.Is(err, errs.ErrNotFound) {
		return models.Customer{}, "", err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return models.Customer{}, "", err
	}

	customer := models.Customer{
		StoreID:  storeID,
		Name:     name,
		Email:    email,
		Password: hash,
	}
	if err := s.customers.Create(&customer); err != nil {
		return models.Customer{}, "", err
	}

	token, err := auth.GenerateCustomerToken(customer.ID, storeID)
	if err != nil {
		return models.Customer{}, "", err
	}
	return customer, token, nil
}

// LoginCustomer checks credentials within the store scope. A wrong password
// and an unknown email both come back as ErrUnauthenticated.
func (s *AuthService) LoginCustomer(storeID uint, email, password string) (models.Customer, string, error) {
	customer, err := s.customers.FindByEmail(storeID, email)
	if errors.Is(err, errs.ErrNotFound) {
		return models.Customer{}, "", errs.ErrUnauthenticated
	}
	if err != nil {
		return models.Customer{}, "", err
	}
	if !auth.CheckPassword(customer.Password, password) {
		return models.Customer{}, "", errs.ErrUnauthenticated
	}

	token, err := auth.GenerateCustomerToken(customer.ID, storeID)
	if err != nil {
		return models.Customer{}, "", err
	}
	return customer, token, nil
}

// LoginMerchant checks a platform user's credentials.
func (s *AuthService) LoginMerchant(email, password string) (models.User, string, error) {
	var user models.User
	err := orm.DB().Model(&models.User{}).Where("email = ?", email).First(&user)
	if err != nil {
		return models.User{}, "", errs.ErrUnauthenticated
	}
	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", errs.ErrUnauthenticated
	}

	token, err := auth.GenerateMerchantToken(user.ID)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}
