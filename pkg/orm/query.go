// Package orm is a thin fluent wrapper over GORM for the common read and
// CRUD paths. Multi-statement transactional work (checkout, capture) talks
// to gorm.DB directly via database.DB.Transaction.
package orm

import (
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vendika/pkg/database"
)

// Cacher is the cache bridge injected at bootstrap (avoids an import cycle
// between orm and cache).
type Cacher interface {
	Get(key string, dest interface{}) bool
	Set(key string, value interface{}, ttl time.Duration) error
	Forget(key string) error
}

// CacheStore is set once by the application kernel.
var CacheStore Cacher

// ForgetCache drops cached keys, if a cache is installed. Writers call this
// so reads never serve a row staler than the TTL after a change.
func ForgetCache(keys ...string) {
	if CacheStore == nil {
		return
	}
	for _, key := range keys {
		_ = CacheStore.Forget(key)
	}
}

// Pagination describes one page of a paginated result set.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

type Query struct {
	db *gorm.DB
}

func DB() *Query {
	return &Query{db: database.DB}
}

// With wraps an existing gorm handle (e.g. a transaction) in a Query.
func With(db *gorm.DB) *Query {
	return &Query{db: db}
}

func (q *Query) Model(v interface{}) *Query {
	return &Query{db: q.db.Model(v)}
}

func (q *Query) Where(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Where(query, args...)}
}

func (q *Query) Joins(query string, args ...interface{}) *Query {
	return &Query{db: q.db.Joins(query, args...)}
}

func (q *Query) Order(value string) *Query {
	return &Query{db: q.db.Order(value)}
}

func (q *Query) Preload(association string) *Query {
	return &Query{db: q.db.Preload(association)}
}

func (q *Query) Get(dest interface{}) error {
	return q.db.Find(dest).Error
}

func (q *Query) First(dest interface{}) error {
	return q.db.First(dest).Error
}

func (q *Query) Create(v interface{}) error {
	return q.db.Create(v).Error
}

func (q *Query) Save(v interface{}) error {
	return q.db.Save(v).Error
}

func (q *Query) Delete(v interface{}) error {
	return q.db.Delete(v).Error
}

func (q *Query) Count(n *int64) error {
	return q.db.Count(n).Error
}

// GetWithPagination fills dest with one page and returns the page metadata.
func (q *Query) GetWithPagination(dest interface{}, page, limit int) (Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var total int64
	if err := q.db.Count(&total).Error; err != nil {
		return Pagination{}, err
	}

	offset := (page - 1) * limit
	if err := q.db.Offset(offset).Limit(limit).Find(dest).Error; err != nil {
		return Pagination{}, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, TotalPages: totalPages}, nil
}

// FirstCached serves a single row from the cache under key when possible,
// falling back to First and populating the cache on a hit. Not-found is
// never cached, so a missing row costs a query every time.
func (q *Query) FirstCached(key string, ttl time.Duration, dest interface{}) error {
	if CacheStore != nil && CacheStore.Get(key, dest) {
		return nil
	}

	if err := q.db.First(dest).Error; err != nil {
		return err
	}

	if CacheStore != nil {
		_ = CacheStore.Set(key, dest, ttl)
	}
	return nil
}
