package services

import (
	"errors"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/app/repositories"
)

// CartLine is a cart item joined with its product, priced at the product's
// current price. Carts never snapshot prices; orders do.
type CartLine struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice int64           `json:"unit_price"`
	Subtotal  int64           `json:"subtotal"`
	Product   *models.Product `json:"product,omitempty"`
}

type CartSummary struct {
	Items     []CartLine `json:"items"`
	ItemCount int        `json:"item_count"`
	Total     int64      `json:"total"`
}

type CartService struct {
	carts    *repositories.CartRepository
	products *repositories.ProductRepository
}

func NewCartService() *CartService {
	return &CartService{
		carts:    repositories.NewCartRepository(),
		products: repositories.NewProductRepository(),
	}
}

// Add puts qty units of a product in the customer's cart. A repeat add for
// the same product increments the existing line instead of creating a second
// one. Stock is not reserved here; availability is enforced at checkout.
func (s *CartService) Add(customerID, storeID, productID uint, qty int) (models.CartItem, error) {
	if qty < 1 {
		return models.CartItem{}, errs.ErrInvalidQuantity
	}

	product, err := s.products.FindForStore(productID, storeID)
	if err != nil {
		return models.CartItem{}, err
	}
	if !product.IsActive {
		return models.CartItem{}, errs.ErrNotFound
	}

	line, err := s.carts.FindLineByProduct(customerID, product.ID)
	if errors.Is(err, errs.ErrNotFound) {
		line = models.CartItem{
			CustomerID: customerID,
			ProductID:  product.ID,
			Quantity:   qty,
		}
		if err := s.carts.Create(&line); err != nil {
			return models.CartItem{}, err
		}
		line.Product = &product
		return line, nil
	}
	if err != nil {
		return models.CartItem{}, err
	}

	line.Quantity += qty
	if err := s.carts.Save(&line); err != nil {
		return models.CartItem{}, err
	}
	line.Product = &product
	return line, nil
}

// UpdateQuantity sets a line to an exact quantity. Zero removes the line.
// The line must belong to the customer and its product to the store context
// the request came through.
func (s *CartService) UpdateQuantity(customerID, storeID, lineID uint, qty int) (models.CartItem, error) {
	if qty < 0 {
		return models.CartItem{}, errs.ErrInvalidQuantity
	}

	line, err := s.carts.FindLineForStore(lineID, customerID, storeID)
	if err != nil {
		return models.CartItem{}, err
	}

	if qty == 0 {
		return models.CartItem{}, s.carts.Delete(&line)
	}

	line.Quantity = qty
	if err := s.carts.Save(&line); err != nil {
		return models.CartItem{}, err
	}
	return line, nil
}

// Remove deletes a line the customer owns, scoped like UpdateQuantity.
func (s *CartService) Remove(customerID, storeID, lineID uint) error {
	line, err := s.carts.FindLineForStore(lineID, customerID, storeID)
	if err != nil {
		return err
	}
	return s.carts.Delete(&line)
}

// Summary returns the customer's cart for one store, priced at current
// product prices.
func (s *CartService) Summary(customerID, storeID uint) (CartSummary, error) {
	items, err := s.carts.SnapshotForStore(customerID, storeID)
	if err != nil {
		return CartSummary{}, err
	}

	summary := CartSummary{Items: make([]CartLine, 0, len(items))}
	for i := range items {
		item := &items[i]
		if item.Product == nil {
			continue
		}
		line := CartLine{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.Product.Price,
			Subtotal:  item.Product.Price * int64(item.Quantity),
			Product:   item.Product,
		}
		summary.Items = append(summary.Items, line)
		summary.ItemCount += item.Quantity
		summary.Total += line.Subtotal
	}
	return summary, nil
}
