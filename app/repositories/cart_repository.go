package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/pkg/orm"
)

type CartRepository struct{}

func NewCartRepository() *CartRepository {
	return &CartRepository{}
}

// FindLineForStore loads a cart line owned by the customer whose product
// belongs to the given store. A line for another store's product resolves to
// ErrNotFound like any other foreign resource.
func (r *CartRepository) FindLineForStore(id, customerID, storeID uint) (models.CartItem, error) {
	var item models.CartItem
	err := orm.DB().Model(&models.CartItem{}).
		Joins("JOIN products ON products.id = cart_items.product_id AND products.deleted_at IS NULL").
		Where("cart_items.id = ? AND cart_items.customer_id = ? AND products.store_id = ?", id, customerID, storeID).
		First(&item)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return item, errs.ErrNotFound
	}
	return item, err
}

// FindLineByProduct returns the customer's existing line for a product, if any.
func (r *CartRepository) FindLineByProduct(customerID, productID uint) (models.CartItem, error) {
	var item models.CartItem
	err := orm.DB().Model(&models.CartItem{}).
		Where("customer_id = ? AND product_id = ?", customerID, productID).
		First(&item)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return item, errs.ErrNotFound
	}
	return item, err
}

func (r *CartRepository) Create(item *models.CartItem) error {
	return orm.DB().Create(item)
}

func (r *CartRepository) Save(item *models.CartItem) error {
	return orm.DB().Save(item)
}

func (r *CartRepository) Delete(item *models.CartItem) error {
	return orm.DB().Delete(item)
}

// SnapshotForStore returns the customer's cart lines whose products belong to
// the given store and are not soft-deleted. Lines pointing at deleted
// products drop out of the join rather than surfacing as errors.
func (r *CartRepository) SnapshotForStore(customerID, storeID uint) ([]models.CartItem, error) {
	var items []models.CartItem
	err := orm.DB().Model(&models.CartItem{}).
		Joins("JOIN products ON products.id = cart_items.product_id AND products.deleted_at IS NULL").
		Where("cart_items.customer_id = ? AND products.store_id = ?", customerID, storeID).
		Preload("Product").
		Order("cart_items.id asc").
		Get(&items)
	return items, err
}

// ClearForStore removes the customer's lines for one store's products,
// leaving lines for other stores untouched.
func (r *CartRepository) ClearForStore(tx *gorm.DB, customerID, storeID uint) error {
	sub := tx.Session(&gorm.Session{NewDB: true}).
		Model(&models.Product{}).
		Select("id").
		Where("store_id = ?", storeID)
	return tx.
		Where("customer_id = ? AND product_id IN (?)", customerID, sub).
		Delete(&models.CartItem{}).Error
}
