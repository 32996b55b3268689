// Package migration provides a named, batched database migration runner.
//
// Usage (in database/migrations):
//
//	func init() {
//	    migration.Register("20260115000000_create_stores_table", &CreateStoresTable{})
//	}
//
// Run from the CLI:
//
//	vendika migrate             // run all pending
//	vendika migrate:rollback    // rollback last batch
package migration

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/vendika/pkg/logger"
)

// Migration is the interface every migration must implement.
type Migration interface {
	// Up applies the migration.
	Up(db *gorm.DB) error
	// Down reverses the migration.
	Down(db *gorm.DB) error
}

// migrationRecord is the GORM model stored in the tracking table.
type migrationRecord struct {
	ID    uint      `gorm:"primaryKey;autoIncrement"`
	Name  string    `gorm:"uniqueIndex;size:255;not null"`
	Batch int       `gorm:"not null"`
	RunAt time.Time `gorm:"autoCreateTime"`
}

func (migrationRecord) TableName() string { return "vendika_migrations" }

type registeredMigration struct {
	name string
	m    Migration
}

var registry []registeredMigration

// Register adds a migration to the global registry.
// name should be a timestamp-prefixed string; migrations run in registration
// order, so call Register in chronological order from init() funcs.
func Register(name string, m Migration) {
	registry = append(registry, registeredMigration{name: name, m: m})
}

// Runner executes and tracks migrations.
type Runner struct {
	db *gorm.DB
}

// New creates a Runner backed by the provided gorm.DB.
func New(db *gorm.DB) *Runner {
	return &Runner{db: db}
}

// EnsureTable creates the tracking table if it does not exist.
func (r *Runner) EnsureTable() error {
	return r.db.AutoMigrate(&migrationRecord{})
}

func (r *Runner) pending() ([]registeredMigration, error) {
	var ran []migrationRecord
	if err := r.db.Find(&ran).Error; err != nil {
		return nil, err
	}

	done := make(map[string]bool, len(ran))
	for _, rec := range ran {
		done[rec.Name] = true
	}

	var out []registeredMigration
	for _, reg := range registry {
		if !done[reg.name] {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (r *Runner) lastBatch() (int, error) {
	var max int
	err := r.db.Model(&migrationRecord{}).Select("COALESCE(MAX(batch), 0)").Scan(&max).Error
	return max, err
}

// Up runs every pending migration in one new batch.
func (r *Runner) Up() error {
	if err := r.EnsureTable(); err != nil {
		return err
	}

	todo, err := r.pending()
	if err != nil {
		return err
	}
	if len(todo) == 0 {
		logger.Info("migrate: nothing to run")
		return nil
	}

	batch, err := r.lastBatch()
	if err != nil {
		return err
	}
	batch++

	for _, reg := range todo {
		logger.Info("migrate: running", "migration", reg.name)
		if err := reg.m.Up(r.db); err != nil {
			return fmt.Errorf("migration: %s: %w", reg.name, err)
		}
		rec := migrationRecord{Name: reg.name, Batch: batch}
		if err := r.db.Create(&rec).Error; err != nil {
			return fmt.Errorf("migration: record %s: %w", reg.name, err)
		}
	}
	return nil
}

// Rollback reverses every migration in the most recent batch, newest first.
func (r *Runner) Rollback() error {
	if err := r.EnsureTable(); err != nil {
		return err
	}

	batch, err := r.lastBatch()
	if err != nil {
		return err
	}
	if batch == 0 {
		logger.Info("migrate: nothing to roll back")
		return nil
	}

	var recs []migrationRecord
	if err := r.db.Where("batch = ?", batch).Order("id DESC").Find(&recs).Error; err != nil {
		return err
	}

	byName := make(map[string]Migration, len(registry))
	for _, reg := range registry {
		byName[reg.name] = reg.m
	}

	for _, rec := range recs {
		m, ok := byName[rec.Name]
		if !ok {
			return fmt.Errorf("migration: %s is recorded but not registered", rec.Name)
		}
		logger.Info("migrate: rolling back", "migration", rec.Name)
		if err := m.Down(r.db); err != nil {
			return fmt.Errorf("migration: rollback %s: %w", rec.Name, err)
		}
		if err := r.db.Delete(&rec).Error; err != nil {
			return err
		}
	}
	return nil
}

// Status returns (name, ran) pairs for every registered migration.
func (r *Runner) Status() ([]string, map[string]bool, error) {
	if err := r.EnsureTable(); err != nil {
		return nil, nil, err
	}

	var ran []migrationRecord
	if err := r.db.Find(&ran).Error; err != nil {
		return nil, nil, err
	}

	done := make(map[string]bool, len(ran))
	for _, rec := range ran {
		done[rec.Name] = true
	}

	names := make([]string, 0, len(registry))
	for _, reg := range registry {
		names = append(names, reg.name)
	}
	return names, done, nil
}
