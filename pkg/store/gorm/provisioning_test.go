package gorm

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureUser_Existing(t *testing.T) {
	db, mock := setupTestDB(t)
	provisioning := NewProvisioningStore(db)

	rows := sqlmock.NewRows([]string{"id", "login", "display_name"}).
		AddRow(42, "alice@example.com", "Alice")
	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WithArgs("alice@example.com").
		WillReturnRows(rows)

	id, err := provisioning.EnsureUser("alice@example.com", "Alice")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureUser_QueryError(t *testing.T) {
	db, mock := setupTestDB(t)
	provisioning := NewProvisioningStore(db)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnError(errors.New("connection refused"))

	_, err := provisioning.EnsureUser("alice@example.com", "Alice")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ensure user alice@example.com")
}

func TestEnsureOrganization_Existing(t *testing.T) {
	db, mock := setupTestDB(t)
	provisioning := NewProvisioningStore(db)

	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow(7, "acme")
	mock.ExpectQuery(`SELECT \* FROM "organizations"`).
		WithArgs("acme").
		WillReturnRows(rows)

	id, err := provisioning.EnsureOrganization("acme")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureOrganization_QueryError(t *testing.T) {
	db, mock := setupTestDB(t)
	provisioning := NewProvisioningStore(db)

	mock.ExpectQuery(`SELECT \* FROM "organizations"`).
		WillReturnError(errors.New("connection refused"))

	_, err := provisioning.EnsureOrganization("acme")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ensure organization acme")
}
