package notifications

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jmcalloway/insuquote-backend/pkg/db/models"
	"github.com/jmcalloway/insuquote-backend/pkg/enums"
	"github.com/jmcalloway/insuquote-backend/pkg/pagination"
)

const notificationsTableSQL = `
CREATE TABLE notifications (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    type TEXT NOT NULL,
    title TEXT NOT NULL,
    body TEXT NOT NULL DEFAULT '',
    read_at DATETIME,
    created_at DATETIME NOT NULL
)`

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(notificationsTableSQL).Error)
	return conn
}

func seedNotification(t *testing.T, db *gorm.DB, userID uuid.UUID, title string, createdAt time.Time) *models.Notification {
	t.Helper()

	row := &models.Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      enums.NotificationTypeQuoteCreated,
		Title:     title,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(row).Error)
	return row
}

func TestRepositoryListPaginatesNewestFirst(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		seedNotification(t, db, userID, fmt.Sprintf("n%d", i), base.Add(time.Duration(i)*time.Minute))
	}
	seedNotification(t, db, uuid.New(), "foreign", base)

	rows, unread, next, err := repo.List(ctx, userID, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "n4", rows[0].Title)
	assert.Equal(t, "n3", rows[1].Title)
	assert.EqualValues(t, 5, unread)
	require.NotEmpty(t, next)

	rows, _, next, err = repo.List(ctx, userID, pagination.Params{Limit: 2, Cursor: next})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "n2", rows[0].Title)
	assert.Equal(t, "n1", rows[1].Title)
	require.NotEmpty(t, next)

	rows, _, next, err = repo.List(ctx, userID, pagination.Params{Limit: 2, Cursor: next})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "n0", rows[0].Title)
	assert.Empty(t, next)
}

func TestRepositoryMarkReadAndUnreadCount(t *testing.T) {
	db := openTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	now := time.Now().UTC()
	first := seedNotification(t, db, userID, "first", now.Add(-time.Minute))
	seedNotification(t, db, userID, "second", now)

	affected, err := repo.MarkRead(ctx, userID, first.ID, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	// a stranger cannot mark another user's row
	affected, err = repo.MarkRead(ctx, uuid.New(), first.ID, now)
	require.NoError(t, err)
	assert.Zero(t, affected)

	_, unread, _, err := repo.List(ctx, userID, pagination.Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)

	affected, err = repo.MarkAllRead(ctx, userID, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, affected)

	_, unread, _, err = repo.List(ctx, userID, pagination.Params{})
	require.NoError(t, err)
	assert.Zero(t, unread)
}
