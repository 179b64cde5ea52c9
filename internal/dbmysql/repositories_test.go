package dbmysql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"parentforum/internal/common"
)

func setupTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
	}

	return gormDB, mock, cleanup
}

func strPtr(s string) *string { return &s }

func TestNotificationRepository_Create(t *testing.T) {
	tests := []struct {
		name        string
		mockSetup   func(sqlmock.Sqlmock)
		expectError bool
	}{
		{
			name: "successful create",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `notifications`")).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "database error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `notifications`")).
					WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()
			tt.mockSetup(mock)

			n := &Notification{
				UserID:        "recipient",
				Type:          string(common.NotificationReaction),
				PostID:        strPtr("post-1"),
				TriggerUserID: "actor",
			}
			err := NewNotificationRepository(db).Create(context.Background(), n)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Len(t, n.ID, 36, "id is assigned before insert")
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNotificationRepository_ByRecipient(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "user_id", "type", "post_id", "comment_id", "trigger_user_id", "message", "is_read", "created_at",
		"post_title", "post_category",
	}).
		AddRow("n2", "u1", "reply", "p1", "c1", "u2", nil, false, now, "Sleep tips", "sleep").
		AddRow("n1", "u1", "comment_like", nil, "c9", "u3", nil, true, now.Add(-time.Hour), nil, nil)

	mock.ExpectQuery(`SELECT n\.\*, p\.title AS post_title, p\.category AS post_category FROM notifications AS n LEFT JOIN posts p ON p\.id = n\.post_id WHERE n\.user_id = \? ORDER BY n\.created_at DESC`).
		WithArgs("u1").
		WillReturnRows(rows)

	got, err := NewNotificationRepository(db).ByRecipient(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "n2", got[0].ID)
	require.NotNil(t, got[0].PostTitle)
	assert.Equal(t, "Sleep tips", *got[0].PostTitle)
	assert.False(t, got[0].Read)

	assert.Nil(t, got[1].PostID)
	assert.Nil(t, got[1].PostTitle)
	assert.True(t, got[1].Read)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_MarkAllRead(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE `notifications` SET `is_read`=? WHERE user_id = ?")).
		WithArgs(true, "u1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, NewNotificationRepository(db).MarkAllRead(context.Background(), "u1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_ReactionsBy(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewNotificationRepository(db)

	got, err := repo.ReactionsBy(context.Background(), nil, []string{"u1"})
	require.NoError(t, err)
	assert.Empty(t, got)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT `post_id`,`user_id`,`reaction_type` FROM `post_reactions` WHERE post_id IN (?) AND user_id IN (?,?)")).
		WithArgs("p1", "u1", "u2").
		WillReturnRows(sqlmock.NewRows([]string{"post_id", "user_id", "reaction_type"}).
			AddRow("p1", "u2", "love"))

	got, err = repo.ReactionsBy(context.Background(), []string{"p1"}, []string{"u1", "u2"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "love", got[0].ReactionType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_ByIDs(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	got, err := repo.ByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `profiles` WHERE id IN (?,?)")).
		WithArgs("a", "b").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "current_city", "updated_at"}).
			AddRow("a", "sana", "Lahore", time.Now()))

	got, err = repo.ByIDs(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "sana", got[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepository_SyncProfile(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `profiles` .* ON DUPLICATE KEY UPDATE").
		WithArgs("uid-1", "sana", "Lahore", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := NewProfileRepository(db).SyncProfile(context.Background(), "uid-1", "sana", "Lahore")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPost_ScopeInvariant(t *testing.T) {
	tests := []struct {
		name     string
		feedType string
		city     *string
		wantErr  bool
	}{
		{"global without city", "global", nil, false},
		{"city with city", "city", strPtr("Lahore"), false},
		{"city without city", "city", nil, true},
		{"global with city", "global", strPtr("Lahore"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Post{FeedType: tt.feedType, City: tt.city}
			err := p.BeforeSave(nil)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, 400, common.HTTPStatus(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMediaRefRepository_ByFileID(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `media_refs` WHERE file_id = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "file_id"}))

	_, err := NewMediaRefRepository(db).ByFileID(context.Background(), "64f1c0ffee0000000000abcd")
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, LogLevel("silent"))
	assert.Equal(t, logger.Error, LogLevel("ERROR"))
	assert.Equal(t, logger.Info, LogLevel("info"))
	assert.Equal(t, logger.Warn, LogLevel("nonsense"))
}
