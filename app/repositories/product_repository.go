package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/pkg/orm"
)

// ProductRepository owns product reads and the inventory ledger: stock moves
// only through Reserve and Release, both of which are single atomic UPDATEs
// so concurrent checkouts serialize on the product row.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// FindForStore loads a product within a store scope. A valid id belonging to
// another store resolves to ErrNotFound.
func (r *ProductRepository) FindForStore(id, storeID uint) (models.Product, error) {
	var product models.Product
	err := orm.DB().Model(&models.Product{}).
		Where("id = ? AND store_id = ?", id, storeID).
		First(&product)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return product, errs.ErrNotFound
	}
	return product, err
}

// Reserve decrements stock by qty, but only if the row still holds at least
// qty units: the guard and the decrement are one UPDATE, so two checkouts
// racing for the last unit cannot both succeed. Returns
// InsufficientStockError when the guard fails.
func (r *ProductRepository) Reserve(tx *gorm.DB, productID uint, qty int) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		UpdateColumn("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			return err
		}
		return &errs.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   qty,
			Available:   product.Stock,
		}
	}
	return nil
}

// Release returns qty units to stock. Used when a pending order is cancelled.
func (r *ProductRepository) Release(tx *gorm.DB, productID uint, qty int) error {
	return tx.Model(&models.Product{}).
		Where("id = ?", productID).
		UpdateColumn("stock", gorm.Expr("stock + ?", qty)).Error
}
