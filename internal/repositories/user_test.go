package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/horizonbank/horizon/internal/models"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

var userColumns = []string{"user_id", "username", "email", "password_hash", "role", "created_at", "updated_at"}

func TestUserReadRepository_GetByUsernameOrEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db)

	now := time.Now()
	username := "alice"

	mock.ExpectQuery("SELECT user_id, username").
		WithArgs("alice", nil).
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(1, "alice", "alice@example.com", "hash", models.RoleCustomer, now, now))

	user, err := repo.GetByUsernameOrEmail(context.Background(), &username, nil)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, int64(1), user.UserID)
	assert.Equal(t, "alice@example.com", user.Email)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserReadRepository_GetByUsernameOrEmail_NotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db)

	username := "ghost"
	mock.ExpectQuery("SELECT user_id, username").
		WithArgs("ghost", nil).
		WillReturnRows(sqlmock.NewRows(userColumns))

	user, err := repo.GetByUsernameOrEmail(context.Background(), &username, nil)
	assert.NoError(t, err)
	assert.Nil(t, user)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserReadRepository_List(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserReadRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT user_id, username").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(2, "bob", "bob@example.com", "hash", models.RoleCustomer, now, now).
			AddRow(1, "alice", "alice@example.com", "hash", models.RoleCustomer, now, now))

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "bob", users[0].Username)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Save(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db, nil)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("alice", "alice@example.com", "hash", models.RoleCustomer).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))

	id, err := repo.Save(context.Background(), "alice", "hash", "alice@example.com", models.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserWriteRepository_Save_Error(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserWriteRepository(db, nil)

	mock.ExpectQuery("INSERT INTO users").
		WillReturnError(errors.New("duplicate key"))

	_, err := repo.Save(context.Background(), "alice", "hash", "alice@example.com", models.RoleCustomer)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
