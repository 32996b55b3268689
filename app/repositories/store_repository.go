package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vendika/app/errs"
	"github.com/shashiranjanraj/vendika/app/models"
	"github.com/shashiranjanraj/vendika/pkg/orm"
)

// storeCacheTTL bounds how long a deactivated or renamed store keeps
// resolving; there is no write path through this repository to invalidate on.
const storeCacheTTL = time.Minute

func storeSlugKey(slug string) string {
	return "store:slug:" + slug
}

// StoreRepository resolves the tenant for slug-addressed storefront routes.
type StoreRepository struct{}

func NewStoreRepository() *StoreRepository {
	return &StoreRepository{}
}

// FindActiveBySlug resolves a storefront slug to an active store. Every
// storefront request passes through here, so hits are served from the cache.
func (r *StoreRepository) FindActiveBySlug(slug string) (models.Store, error) {
	var store models.Store
	err := orm.DB().Model(&models.Store{}).
		Where("slug = ? AND is_active = ?", slug, true).
		FirstCached(storeSlugKey(slug), storeCacheTTL, &store)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store, errs.ErrNotFound
	}
	return store, err
}

// FindByIDForUser loads a store owned by the given merchant user.
func (r *StoreRepository) FindByIDForUser(id, userID uint) (models.Store, error) {
	var store models.Store
	err := orm.DB().Model(&models.Store{}).
		Where("id = ? AND user_id = ?", id, userID).
		First(&store)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store, errs.ErrNotFound
	}
	return store, err
}
