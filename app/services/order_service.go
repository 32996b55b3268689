package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/app/repositories"
	"github.com/shashiranjanraj/vendika/pkg/database"
	"github.com/shashiranjanraj/vendika/pkg/logger"
	"github.com/shashiranjanraj/vendika/pkg/orm"
)

// legalTransitions is the whole lifecycle: pending is the only state with
// exits. Everything else is terminal.
var legalTransitions = map[string][]string{
	models.OrderStatusPending: {
		models.OrderStatusPaid,
		models.OrderStatusPaymentFailed,
		models.OrderStatusCancelled,
	},
}

func canTransition(from, to string) bool {
	for _, s := range legalTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// OrderService owns lifecycle transitions. The paid transition is driven by
// the payment gateway inside its capture transaction; cancel is driven by
// customer or merchant action.
type OrderService struct {
	orders   *repositories.OrderRepository
	products *repositories.ProductRepository
	carts    *repositories.CartRepository
}

func NewOrderService() *OrderService {
	return &OrderService{
		orders:   repositories.NewOrderRepository(),
		products: repositories.NewProductRepository(),
		carts:    repositories.NewCartRepository(),
	}
}

// MarkPaid transitions pending → paid inside the given transaction, stamps
// the completion time and clears the originating cart. Stock was already
// committed at order creation.
//
// The UPDATE is guarded by the current row status, so two callbacks racing
// on the same order cannot both win; the loser sees zero rows affected even
// when its in-memory copy still reads pending.
func (s *OrderService) MarkPaid(tx *gorm.DB, order *models.Order, paymentStatus string) error {
	if !canTransition(order.Status, models.OrderStatusPaid) {
		return errs.ErrInvalidTransition
	}

	now := time.Now()
	res := tx.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, models.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":               models.OrderStatusPaid,
			"payment_status":       paymentStatus,
			"payment_completed_at": now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrInvalidTransition
	}

	order.Status = models.OrderStatusPaid
	order.PaymentStatus = paymentStatus
	order.PaymentCompletedAt = &now
	return s.carts.ClearForStore(tx, order.CustomerID, order.StoreID)
}

// MarkPaymentFailed transitions pending → payment_failed, recording the
// provider's reported status or decline reason. Stock stays committed
// against the order; the customer's cart survives for a retry. Guarded the
// same way as MarkPaid.
func (s *OrderService) MarkPaymentFailed(tx *gorm.DB, order *models.Order, paymentStatus string) error {
	if !canTransition(order.Status, models.OrderStatusPaymentFailed) {
		return errs.ErrInvalidTransition
	}

	res := tx.Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, models.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":         models.OrderStatusPaymentFailed,
			"payment_status": paymentStatus,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errs.ErrInvalidTransition
	}

	order.Status = models.OrderStatusPaymentFailed
	order.PaymentStatus = paymentStatus
	return nil
}

// Cancel transitions pending → cancelled and returns every line's quantity
// to stock. Any other starting state fails with ErrInvalidTransition and
// leaves the order untouched.
func (s *OrderService) Cancel(order *models.Order) error {
	if !canTransition(order.Status, models.OrderStatusCancelled) {
		return errs.ErrInvalidTransition
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		// Win the row first; a concurrent capture that settled the order
		// makes this a no-op and the whole cancel rolls back.
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, models.OrderStatusPending).
			Update("status", models.OrderStatusCancelled)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return errs.ErrInvalidTransition
		}

		for i := range order.Items {
			item := &order.Items[i]
			if err := s.products.Release(tx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		order.Status = models.OrderStatusCancelled
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("order cancelled",
		"order_number", order.OrderNumber,
		"store_id", order.StoreID,
	)
	return nil
}

// CancelForCustomer loads and cancels an order the customer owns.
func (s *OrderService) CancelForCustomer(orderID, customerID, storeID uint) (models.Order, error) {
	order, err := s.orders.FindForCustomer(orderID, customerID, storeID)
	if err != nil {
		return models.Order{}, err
	}
	if err := s.Cancel(&order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

// CancelForStore loads and cancels an order on behalf of the merchant.
func (s *OrderService) CancelForStore(orderID, storeID uint) (models.Order, error) {
	order, err := s.orders.FindForStore(orderID, storeID)
	if err != nil {
		return models.Order{}, err
	}
	if err := s.Cancel(&order); err != nil {
		return models.Order{}, err
	}
	return order, nil
}

func (s *OrderService) ListForStore(storeID uint, status string, page, limit int) ([]models.Order, orm.Pagination, error) {
	return s.orders.ListForStore(storeID, status, page, limit)
}

func (s *OrderService) ListForCustomer(customerID, storeID uint, page, limit int) ([]models.Order, orm.Pagination, error) {
	return s.orders.ListForCustomer(customerID, storeID, page, limit)
}
