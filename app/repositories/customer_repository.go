package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/pkg/orm"
)

type CustomerRepository struct{}

func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{}
}

// FindByEmail looks a customer up within one store. The same email may exist
// independently under different stores.
func (r *CustomerRepository) FindByEmail(storeID uint, email string) (models.Customer, error) {
	var customer models.Customer
	err := orm.DB().Model(&models.Customer{}).
		Where("store_id = ? AND email = ?", storeID, email).
		First(&customer)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return customer, errs.ErrNotFound
	}
	return customer, err
}

func (r *CustomerRepository) FindByID(id uint) (models.Customer, error) {
	var customer models.Customer
	err := orm.DB().Model(&models.Customer{}).Where("id = ?", id).First(&customer)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return customer, errs.ErrNotFound
	}
	return customer, err
}

func (r *CustomerRepository) Create(customer *models.Customer) error {
	return orm.DB().Create(customer)
}

func (r *CustomerRepository) Save(customer *models.Customer) error {
	return orm.DB().Save(customer)
}
