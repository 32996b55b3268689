package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/pkg/orm"
)

type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create persists the order header and its items inside the given
// transaction. Items ride along through the association.
func (r *OrderRepository) Create(tx *gorm.DB, order *models.Order) error {
	return tx.Create(order).Error
}

// FindForStore loads an order that belongs to the store, items included.
func (r *OrderRepository) FindForStore(id, storeID uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).
		Where("id = ? AND store_id = ?", id, storeID).
		Preload("Items").
		Preload("Items.Product").
		First(&order)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return order, errs.ErrNotFound
	}
	return order, err
}

// FindForCustomer loads an order scoped to both the customer and the store.
func (r *OrderRepository) FindForCustomer(id, customerID, storeID uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).
		Where("id = ? AND customer_id = ? AND store_id = ?", id, customerID, storeID).
		Preload("Items").
		Preload("Items.Product").
		First(&order)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return order, errs.ErrNotFound
	}
	return order, err
}

// FindByPaymentID resolves an order by the gateway's remote order id.
func (r *OrderRepository) FindByPaymentID(paymentID string, customerID uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).
		Where("payment_id = ? AND customer_id = ?", paymentID, customerID).
		Preload("Items").
		First(&order)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return order, errs.ErrNotFound
	}
	return order, err
}

// FindByOrderNumber resolves an order by its human-readable number, scoped to
// the owning customer and store. Used as the capture correlation key carried
// through the provider's return URL.
func (r *OrderRepository) FindByOrderNumber(orderNumber string, customerID, storeID uint) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).
		Where("order_number = ? AND customer_id = ? AND store_id = ?", orderNumber, customerID, storeID).
		Preload("Items").
		First(&order)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return order, errs.ErrNotFound
	}
	return order, err
}

// ListForStore pages through a store's orders, newest first, optionally
// filtered by status.
func (r *OrderRepository) ListForStore(storeID uint, status string, page, limit int) ([]models.Order, orm.Pagination, error) {
	q := orm.DB().Model(&models.Order{}).Where("store_id = ?", storeID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	p, err := q.Order("id desc").Preload("Items").GetWithPagination(&orders, page, limit)
	return orders, p, err
}

// ListForCustomer pages through a customer's orders within one store.
func (r *OrderRepository) ListForCustomer(customerID, storeID uint, page, limit int) ([]models.Order, orm.Pagination, error) {
	var orders []models.Order
	p, err := orm.DB().Model(&models.Order{}).
		Where("customer_id = ? AND store_id = ?", customerID, storeID).
		Order("id desc").
		Preload("Items").
		GetWithPagination(&orders, page, limit)
	return orders, p, err
}
