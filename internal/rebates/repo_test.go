package rebates

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	pkgdb "github.com/jmcalloway/insuquote-backend/pkg/db"
	"github.com/jmcalloway/insuquote-backend/pkg/db/models"
)

const savedRebatesTableSQL = `
CREATE TABLE saved_rebates (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    rebate_id TEXT NOT NULL,
    rebate_name TEXT NOT NULL,
    rebate_provider TEXT NOT NULL,
    rebate_amount TEXT NOT NULL,
    rebate_url TEXT NOT NULL,
    created_at DATETIME NOT NULL,
    updated_at DATETIME NOT NULL
);
CREATE UNIQUE INDEX idx_saved_rebates_user_rebate ON saved_rebates (user_id, rebate_id)`

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(savedRebatesTableSQL).Error)
	return conn
}

func seedSaved(t *testing.T, db *gorm.DB, userID uuid.UUID, rebateID string) *models.SavedRebate {
	t.Helper()

	saved := &models.SavedRebate{
		ID:             uuid.New(),
		UserID:         userID,
		RebateID:       rebateID,
		RebateName:     "Program " + rebateID,
		RebateProvider: "Provider",
		RebateAmount:   "Up to $5,000",
		RebateURL:      "https://example.com/" + rebateID,
	}
	require.NoError(t, db.Create(saved).Error)
	return saved
}

func TestRepositoryUniqueIndexRejectsDuplicate(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	seedSaved(t, db, userID, "RB-001")

	_, err := repo.Create(ctx, &models.SavedRebate{
		ID:       uuid.New(),
		UserID:   userID,
		RebateID: "RB-001",
	})
	require.Error(t, err)
	assert.True(t, pkgdb.IsUniqueViolation(err))

	// the same program for a different user is fine
	_, err = repo.Create(ctx, &models.SavedRebate{
		ID:       uuid.New(),
		UserID:   uuid.New(),
		RebateID: "RB-001",
	})
	require.NoError(t, err)
}

func TestRepositoryListOwnerScopedNewestFirst(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	seedSaved(t, db, userID, "RB-001")
	seedSaved(t, db, userID, "RB-002")
	seedSaved(t, db, uuid.New(), "RB-003")

	saved, err := repo.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	for _, row := range saved {
		assert.Equal(t, userID, row.UserID)
	}
}

func TestRepositoryFindAndDeleteByRebateID(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	seedSaved(t, db, userID, "RB-004")

	found, err := repo.FindByRebateID(ctx, userID, "RB-004")
	require.NoError(t, err)
	assert.Equal(t, "RB-004", found.RebateID)

	_, err = repo.FindByRebateID(ctx, uuid.New(), "RB-004")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	affected, err := repo.DeleteByRebateID(ctx, uuid.New(), "RB-004")
	require.NoError(t, err)
	assert.Zero(t, affected)

	affected, err = repo.DeleteByRebateID(ctx, userID, "RB-004")
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)
}
