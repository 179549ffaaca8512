package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/skillforge/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupNotificationTestRepository creates a notification repository with a mock database
func setupNotificationTestRepository(t *testing.T) (*notificationRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewNotificationRepository(db)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewNotificationRepository(t *testing.T) {
	db := &sql.DB{}

	repo := NewNotificationRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestNotificationRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO notifications`).
					WithArgs(2, "ivan@example.com;petr@example.com", "Материалы курса \"Go с нуля\" были обновлены", models.NotificationStatusEnqueued).
					WillReturnResult(sqlmock.NewResult(6, 1))
			},
			expectedID: 6,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO notifications`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupNotificationTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			notification := &models.Notification{
				CourseID:   2,
				Recipients: "ivan@example.com;petr@example.com",
				Message:    "Материалы курса \"Go с нуля\" были обновлены",
			}
			err := repo.Create(context.Background(), notification)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedID, notification.ID)
				assert.Equal(t, models.NotificationStatusEnqueued, notification.Status)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNotificationRepository_GetByID(t *testing.T) {
	tests := []struct {
		name          string
		id            int
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name: "success",
			id:   6,
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "course_id", "recipients", "message", "created_at", "status", "error"}).
					AddRow(6, 2, "ivan@example.com", "Материалы курса \"Go с нуля\" были обновлены", time.Now(), "Enqueued", nil)
				mock.ExpectQuery(`SELECT id, course_id, recipients, message, created_at, status, error.*FROM notifications.*WHERE id = \?`).
					WithArgs(6).
					WillReturnRows(rows)
			},
		},
		{
			name: "notification not found",
			id:   999999,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, course_id, recipients, message, created_at, status, error.*FROM notifications.*WHERE id = \?`).
					WithArgs(999999).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: true,
			errorContains: "notification not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupNotificationTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			notification, err := repo.GetByID(context.Background(), tt.id)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
				assert.Nil(t, notification)
			} else {
				assert.NoError(t, err)
				require.NotNil(t, notification)
				assert.Equal(t, 2, notification.CourseID)
				assert.Equal(t, models.NotificationStatusEnqueued, notification.Status)
				assert.Empty(t, notification.Error)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestNotificationRepository_UpdateStatus(t *testing.T) {
	tests := []struct {
		name          string
		id            int
		status        models.NotificationStatus
		errorMessage  string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		errorContains string
	}{
		{
			name:   "completed",
			id:     6,
			status: models.NotificationStatusCompleted,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE notifications.*SET status = \?, error = \?.*WHERE id = \?`).
					WithArgs(models.NotificationStatusCompleted, sqlmock.AnyArg(), 6).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:         "failed with error message",
			id:           6,
			status:       models.NotificationStatusFailed,
			errorMessage: "smtp: connection refused",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE notifications.*SET status = \?, error = \?.*WHERE id = \?`).
					WithArgs(models.NotificationStatusFailed, sqlmock.AnyArg(), 6).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name:   "notification not found",
			id:     999999,
			status: models.NotificationStatusCompleted,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE notifications.*SET status = \?, error = \?.*WHERE id = \?`).
					WithArgs(models.NotificationStatusCompleted, sqlmock.AnyArg(), 999999).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedError: true,
			errorContains: "notification not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupNotificationTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.UpdateStatus(context.Background(), tt.id, tt.status, tt.errorMessage)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
