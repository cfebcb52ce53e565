package helpers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/andrescamacho/spaceeconomy-go/internal/infrastructure/database"
)

// NewTestDB opens a migrated in-memory SQLite store that is closed when t ends
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewTestConnection()
	require.NoError(t, err, "open in-memory world store")
	t.Cleanup(func() { database.Close(db) })
	return db
}

// CountRows returns the number of rows stored for model, e.g. &persistence.SupplyConnectionModel{}
func CountRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}
