// Package testutil opens throwaway databases for package tests.
package testutil

import (
	"fmt"
	"testing"

	"carwash/internal/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewTestDB returns a migrated in-memory sqlite database private to t. The
// pool is pinned to one connection, so code under test must run every
// statement inside a transaction on that transaction's handle.
func NewTestDB(t *testing.T) database.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	sql, err := gorm.Open(sqlite.Open(dsn), database.GormConfig())
	require.NoError(t, err)

	sqlDB, err := sql.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	t.Cleanup(func() { _ = sqlDB.Close() })

	for _, model := range database.Models() {
		require.NoError(t, sql.AutoMigrate(model))
	}

	return database.NewWithSQL(sql)
}
