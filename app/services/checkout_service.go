package services

import (
	"crypto/rand"
	"strconv"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/app/repositories"
	"github.com/shashiranjanraj/vendika/pkg/database"
	"github.com/shashiranjanraj/vendika/pkg/logger"
	"github.com/shashiranjanraj/vendika/pkg/metrics"
)

// CheckoutRequest carries the address fields and payment method submitted
// with a place-order call. Address fields are snapshotted onto the order and
// written back to the customer record as their last-used address.
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" validate:"required,in=paypal,stripe"`
	Notes         string `json:"notes" validate:"nullable,max=1000"`

	BillingAddress string `json:"billing_address" validate:"required,max=255"`
	BillingCity    string `json:"billing_city" validate:"required,max=100"`
	BillingState   string `json:"billing_state" validate:"required,max=100"`
	BillingZipCode string `json:"billing_zip_code" validate:"required,max=20"`
	BillingCountry string `json:"billing_country" validate:"required,max=100"`

	ShippingAddress string `json:"shipping_address" validate:"required,max=255"`
	ShippingCity    string `json:"shipping_city" validate:"required,max=100"`
	ShippingState   string `json:"shipping_state" validate:"required,max=100"`
	ShippingZipCode string `json:"shipping_zip_code" validate:"required,max=20"`
	ShippingCountry string `json:"shipping_country" validate:"required,max=100"`
	Phone           string `json:"phone" validate:"nullable,max=50"`
}

// CheckoutService turns a cart snapshot into a persisted order. Header,
// items, stock decrements and the customer address write-back commit in one
// transaction; the cart is left intact until payment is confirmed.
type CheckoutService struct {
	carts     *repositories.CartRepository
	products  *repositories.ProductRepository
	orders    *repositories.OrderRepository
	customers *repositories.CustomerRepository
}

func NewCheckoutService() *CheckoutService {
	return &CheckoutService{
		carts:     repositories.NewCartRepository(),
		products:  repositories.NewProductRepository(),
		orders:    repositories.NewOrderRepository(),
		customers: repositories.NewCustomerRepository(),
	}
}

// PlaceOrder creates a pending order from the customer's cart for the store.
//
// Stock is validated against the live product rows first so a doomed
// checkout fails before any write, then re-checked inside the transaction by
// the guarded decrement, which is what actually serializes concurrent
// checkouts on the same product.
func (s *CheckoutService) PlaceOrder(customerID, storeID uint, req CheckoutRequest) (models.Order, error) {
	items, err := s.carts.SnapshotForStore(customerID, storeID)
	if err != nil {
		return models.Order{}, err
	}
	if len(items) == 0 {
		return models.Order{}, errs.ErrEmptyCart
	}

	var total int64
	for i := range items {
		item := &items[i]
		if item.Product == nil {
			return models.Order{}, errs.ErrNotFound
		}
		if item.Product.Stock < item.Quantity {
			return models.Order{}, &errs.InsufficientStockError{
				ProductID:   item.Product.ID,
				ProductName: item.Product.Name,
				Requested:   item.Quantity,
				Available:   item.Product.Stock,
			}
		}
		total += item.Product.Price * int64(item.Quantity)
	}

	customer, err := s.customers.FindByID(customerID)
	if err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		StoreID:     storeID,
		CustomerID:  customerID,
		OrderNumber: generateOrderNumber(),
		TotalAmount: total,
		Status:      models.OrderStatusPending,
		Notes:       req.Notes,

		BillingAddress:  req.BillingAddress,
		BillingCity:     req.BillingCity,
		BillingState:    req.BillingState,
		BillingZipCode:  req.BillingZipCode,
		BillingCountry:  req.BillingCountry,
		ShippingAddress: req.ShippingAddress,
		ShippingCity:    req.ShippingCity,
		ShippingState:   req.ShippingState,
		ShippingZipCode: req.ShippingZipCode,
		ShippingCountry: req.ShippingCountry,

		PaymentProvider: req.PaymentMethod,
	}
	for i := range items {
		item := &items[i]
		order.Items = append(order.Items, models.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
			Subtotal:  item.Product.Price * int64(item.Quantity),
		})
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		for i := range items {
			if err := s.products.Reserve(tx, items[i].ProductID, items[i].Quantity); err != nil {
				if errs.IsInsufficientStock(err) {
					metrics.StockConflicts.Inc()
				}
				return err
			}
		}

		if err := s.orders.Create(tx, &order); err != nil {
			return err
		}

		customer.Phone = req.Phone
		customer.Address = req.ShippingAddress
		customer.City = req.ShippingCity
		customer.State = req.ShippingState
		customer.ZipCode = req.ShippingZipCode
		customer.Country = req.ShippingCountry
		return tx.Save(&customer).Error
	})
	if err != nil {
		return models.Order{}, err
	}

	metrics.OrdersCreated.WithLabelValues(strconv.FormatUint(uint64(storeID), 10)).Inc()
	logger.Info("order placed",
		"order_number", order.OrderNumber,
		"store_id", storeID,
		"customer_id", customerID,
		"total", order.TotalAmount,
	)
	return order, nil
}

const orderNumberAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// generateOrderNumber returns "ORD-" plus ten random characters from an
// unambiguous alphabet. 32^10 values make a per-store collision negligible.
func generateOrderNumber() string {
	buf := make([]byte, 10)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	for i, b := range buf {
		buf[i] = orderNumberAlphabet[int(b)%len(orderNumberAlphabet)]
	}
	return "ORD-" + string(buf)
}
