package testkit

import (
	"strings"
	"testing"

	"github.com/shashiranjanraj/vendika/config"
	"github.com/shashiranjanraj/vendika/pkg/database"
)

// SetupDB points the global database handle at a fresh in-memory SQLite
// database named after the test and migrates the given models into it.
func SetupDB(t *testing.T, models ...interface{}) {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	config.Set("DB_DRIVER", "sqlite")
	config.Set("DATABASE_DSN", "file:"+name+"?mode=memory&cache=shared")

	if err := database.Connect(); err != nil {
		t.Fatalf("connect test database: %v", err)
	}
	if len(models) > 0 {
		if err := database.DB.AutoMigrate(models...); err != nil {
			t.Fatalf("migrate test database: %v", err)
		}
	}
}
