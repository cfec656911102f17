package testdb

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "anggotaku_backend/internals/databases"
)

// NewSQLite: DB in-memory per test, sudah dimigrasi pakai migrasi goose yang sama dengan produksi.
func NewSQLite(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(uuid.NewString(), "-", "")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	db, err := gorm.Open(sqlite.Open(dsn), database.NewGormConfig(gormLogger.Default.LogMode(gormLogger.Silent)))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// satu koneksi: DB memory hidup selama koneksi ini terbuka
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	_, err = database.Migrate(context.Background(), db)
	require.NoError(t, err)
	return db
}
