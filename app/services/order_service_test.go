package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/app/services"
	"github.com/shashiranjanraj/vendika/pkg/database"
)

// placeTestOrder runs a real checkout so the order under test carries
// committed stock, exactly like production orders do.
func placeTestOrder(t *testing.T, store models.Store, customer models.Customer, product models.Product, qty int) models.Order {
	t.Helper()
	addCartLine(t, customer.ID, product.ID, qty)
	order, err := services.NewCheckoutService().PlaceOrder(customer.ID, store.ID, validCheckout())
	require.NoError(t, err)
	return order
}

func TestCancelPendingRestoresStock(t *testing.T) {
	setup(t)
	store := makeStore(t, "shop")
	mug := makeProduct(t, store.ID, "mug", 1000, 5)
	customer := makeCustomer(t, store.ID, "a@example.com")
	order := placeTestOrder(t, store, customer, mug, 2)
	require.Equal(t, 3, productStock(t, mug.ID))

	svc := services.NewOrderService()
	cancelled, err := svc.CancelForCustomer(order.ID, customer.ID, store.ID)
	require.NoError(t, err)

	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, 5, productStock(t, mug.ID))
}

func TestCancelPaidOrderRejected(t *testing.T) {
	setup(t)
	store := makeStore(t, "shop")
	mug := makeProduct(t, store.ID, "mug", 1000, 5)
	customer := makeCustomer(t, store.ID, "a@example.com")
	order := placeTestOrder(t, store, customer, mug, 2)

	svc := services.NewOrderService()
	require.NoError(t, database.DB.Transaction(func(tx *gorm.DB) error {
		return svc.MarkPaid(tx, &order, "COMPLETED")
	}))

	_, err := svc.CancelForCustomer(order.ID, customer.ID, store.ID)
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	// Status and stock are untouched by the rejected cancel.
	var fresh models.Order
	require.NoError(t, database.DB.First(&fresh, order.ID).Error)
	assert.Equal(t, models.OrderStatusPaid, fresh.Status)
	assert.Equal(t, 3, productStock(t, mug.ID))
}

func TestMarkPaidClearsCartAndStampsTime(t *testing.T) {
	setup(t)
	store := makeStore(t, "shop")
	mug := makeProduct(t, store.ID, "mug", 1000, 5)
	customer := makeCustomer(t, store.ID, "a@example.com")
	order := placeTestOrder(t, store, customer, mug, 2)
	require.Equal(t, int64(1), cartCount(t, customer.ID))

	svc := services.NewOrderService()
	require.NoError(t, database.DB.Transaction(func(tx *gorm.DB) error {
		return svc.MarkPaid(tx, &order, "COMPLETED")
	}))

	assert.Equal(t, models.OrderStatusPaid, order.Status)
	require.NotNil(t, order.PaymentCompletedAt)
	assert.Equal(t, int64(0), cartCount(t, customer.ID))
	// Stock does not move on the paid transition.
	assert.Equal(t, 3, productStock(t, mug.ID))
}

func TestMarkPaidClearsOnlyThisStoresLines(t *testing.T) {
	setup(t)
	storeA := makeStore(t, "store-a")
	storeB := makeStore(t, "store-b")
	mug := makeProduct(t, storeA.ID, "mug", 1000, 5)
	tote := makeProduct(t, storeB.ID, "tote", 2000, 5)
	customer := makeCustomer(t, storeA.ID, "a@example.com")

	order := placeTestOrder(t, storeA, customer, mug, 1)
	addCartLine(t, customer.ID, tote.ID, 1)

	svc := services.NewOrderService()
	require.NoError(t, database.DB.Transaction(func(tx *gorm.DB) error {
		return svc.MarkPaid(tx, &order, "COMPLETED")
	}))

	var remaining []models.CartItem
	require.NoError(t, database.DB.Where("customer_id = ?", customer.ID).Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, tote.ID, remaining[0].ProductID)
}

func TestMarkPaidTwiceRejected(t *testing.T) {
	setup(t)
	store := makeStore(t, "shop")
	mug := makeProduct(t, store.ID, "mug", 1000, 5)
	customer := makeCustomer(t, store.ID, "a@example.com")
	order := placeTestOrder(t, store, customer, mug, 1)

	svc := services.NewOrderService()
	require.NoError(t, database.DB.Transaction(func(tx *gorm.DB) error {
		return svc.MarkPaid(tx, &order, "COMPLETED")
	}))

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return svc.MarkPaid(tx, &order, "COMPLETED")
	})
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestMarkPaidStaleCopyLosesRace(t *testing.T) {
	setup(t)
	store := makeStore(t, "shop")
	mug := makeProduct(t, store.ID, "mug", 1000, 5)
	customer := makeCustomer(t, store.ID, "a@example.com")
	order := placeTestOrder(t, store, customer, mug, 1)

	// Two handlers holding the same pending order, as concurrent capture
	// callbacks would. The second copy still looks pending in memory, so
	// only the status guard on the row stands between it and a double
	// settle.
	copy1 := order
	copy2 := order

	svc := services.NewOrderService()
	require.NoError(t, database.DB.Transaction(func(tx *gorm.DB) error {
		return svc.MarkPaid(tx, &copy1, "COMPLETED")
	}))

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return svc.MarkPaid(tx, &copy2, "COMPLETED")
	})
	assert.ErrorIs(t, err, errs.ErrInvalidTransition)

	var fresh models.Order
	require.NoError(t, database.DB.First(&fresh, order.ID).Error)
	assert.Equal(t, models.OrderStatusPaid, fresh.Status)
	assert.Equal(t, "COMPLETED", fresh.PaymentStatus)
}

func TestPaymentFailedKeepsStockCommitted(t *testing.T) {
	setup(t)
	store := makeStore(t, "shop")
	mug := makeProduct(t, store.ID, "mug", 1000, 5)
	customer := makeCustomer(t, store.ID, "a@example.com")
	order := placeTestOrder(t, store, customer, mug, 2)

	svc := services.NewOrderService()
	require.NoError(t, database.DB.Transaction(func(tx *gorm.DB) error {
		return svc.MarkPaymentFailed(tx, &order, "DECLINED")
	}))

	assert.Equal(t, models.OrderStatusPaymentFailed, order.Status)
	assert.Equal(t, 3, productStock(t, mug.ID))
	// The cart survives for a retry.
	assert.Equal(t, int64(1), cartCount(t, customer.ID))
}

func TestCrossStoreOrderAccessDenied(t *testing.T) {
	setup(t)
	storeA := makeStore(t, "store-a")
	storeB := makeStore(t, "store-b")
	mug := makeProduct(t, storeA.ID, "mug", 1000, 5)
	customerA := makeCustomer(t, storeA.ID, "a@example.com")
	customerB := makeCustomer(t, storeB.ID, "b@example.com")
	order := placeTestOrder(t, storeA, customerA, mug, 1)

	svc := services.NewOrderService()

	// A valid numeric id from another store resolves to not-found.
	_, err := svc.CancelForCustomer(order.ID, customerB.ID, storeB.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = svc.CancelForStore(order.ID, storeB.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
