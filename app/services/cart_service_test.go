package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/services"
)

func TestCartAddCreatesLine(t *testing.T) {
	setup(t)
	store := makeStore(t, "shop")
	product := makeProduct(t, store.ID, "mug", 1000, 10)
	customer := makeCustomer(t, store.ID, "a@example.com")

	svc := services.NewCartService()
	line, err := svc.Add(customer.ID, store.ID, product.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, line.Quantity)

	// Adding the same product again increments the existing line.
	line, err = svc.Add(customer.ID, store.ID, product.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, line.Quantity)
	assert.Equal(t, int64(1), cartCount(t, customer.ID))
}

func TestCartAddRejectsBadQuantity(t *testing.T) {
	setup(t)
	store := makeStore(t, "shop")
	product := makeProduct(t, store.ID, "mug", 1000, 10)
	customer := makeCustomer(t, store.ID, "a@example.com")

	svc := services.NewCartService()
	_, err := svc.Add(customer.ID, store.ID, product.ID, 0)
	assert.ErrorIs(t, err, errs.ErrInvalidQuantity)

	_, err = svc.Add(customer.ID, store.ID, product.ID, -1)
	assert.ErrorIs(t, err, errs.ErrInvalidQuantity)
}

func TestCartAddRejectsCrossStoreProduct(t *testing.T) {
	setup(t)
	storeA := makeStore(t, "store-a")
	storeB := makeStore(t, "store-b")
	other := makeProduct(t, storeB.ID, "tote", 2000, 5)
	customer := makeCustomer(t, storeA.ID, "a@example.com")

	svc := services.NewCartService()
	_, err := svc.Add(customer.ID, storeA.ID, other.ID, 1)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCartSummaryFiltersByStore(t *testing.T) {
	setup(t)
	storeA := makeStore(t, "store-a")
	storeB := makeStore(t, "store-b")
	mug := makeProduct(t, storeA.ID, "mug", 1000, 10)
	tote := makeProduct(t, storeB.ID, "tote", 2000, 5)
	customer := makeCustomer(t, storeA.ID, "a@example.com")

	addCartLine(t, customer.ID, mug.ID, 2)
	addCartLine(t, customer.ID, tote.ID, 1)

	svc := services.NewCartService()
	summary, err := svc.Summary(customer.ID, storeA.ID)
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, mug.ID, summary.Items[0].ProductID)
	assert.Equal(t, int64(2000), summary.Total)
	assert.Equal(t, 2, summary.ItemCount)
}

func TestCartUpdateRequiresOwnership(t *testing.T) {
	setup(t)
	store := makeStore(t, "shop")
	product := makeProduct(t, store.ID, "mug", 1000, 10)
	owner := makeCustomer(t, store.ID, "owner@example.com")
	stranger := makeCustomer(t, store.ID, "stranger@example.com")

	line := addCartLine(t, owner.ID, product.ID, 1)

	svc := services.NewCartService()
	_, err := svc.UpdateQuantity(stranger.ID, store.ID, line.ID, 5)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	err = svc.Remove(stranger.ID, store.ID, line.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestCartUpdateRequiresStoreScope(t *testing.T) {
	setup(t)
	storeA := makeStore(t, "store-a")
	storeB := makeStore(t, "store-b")
	tote := makeProduct(t, storeB.ID, "tote", 2000, 5)
	customer := makeCustomer(t, storeA.ID, "a@example.com")

	// A line for another store's product cannot be touched through store A.
	line := addCartLine(t, customer.ID, tote.ID, 1)

	svc := services.NewCartService()
	_, err := svc.UpdateQuantity(customer.ID, storeA.ID, line.ID, 3)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	err = svc.Remove(customer.ID, storeA.ID, line.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	// Through its own store the line is reachable.
	updated, err := svc.UpdateQuantity(customer.ID, storeB.ID, line.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, updated.Quantity)
}

func TestCartUpdateZeroRemovesLine(t *testing.T) {
	setup(t)
	store := makeStore(t, "shop")
	product := makeProduct(t, store.ID, "mug", 1000, 10)
	customer := makeCustomer(t, store.ID, "a@example.com")
	line := addCartLine(t, customer.ID, product.ID, 3)

	svc := services.NewCartService()
	_, err := svc.UpdateQuantity(customer.ID, store.ID, line.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), cartCount(t, customer.ID))
}
