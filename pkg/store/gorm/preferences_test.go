package gorm

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionTimeoutMinutes(t *testing.T) {
	db, mock := setupTestDB(t)
	preferences := NewPreferenceStore(db)

	rows := sqlmock.NewRows([]string{"session_timeout_minutes"}).AddRow(30)
	mock.ExpectQuery(`SELECT session_timeout_minutes FROM user_preferences`).
		WithArgs(int64(7)).
		WillReturnRows(rows)

	minutes, err := preferences.SessionTimeoutMinutes(7)
	require.NoError(t, err)
	assert.Equal(t, 30, minutes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionTimeoutMinutes_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	preferences := NewPreferenceStore(db)

	mock.ExpectQuery(`SELECT session_timeout_minutes FROM user_preferences`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"session_timeout_minutes"}))

	_, err := preferences.SessionTimeoutMinutes(7)
	assert.ErrorIs(t, err, ErrPreferenceNotFound)
}

func TestSessionTimeoutMinutes_QueryError(t *testing.T) {
	db, mock := setupTestDB(t)
	preferences := NewPreferenceStore(db)

	mock.ExpectQuery(`SELECT session_timeout_minutes FROM user_preferences`).
		WithArgs(int64(7)).
		WillReturnError(assert.AnError)

	_, err := preferences.SessionTimeoutMinutes(7)
	assert.Error(t, err)
}
