package users

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgerrors "github.com/wearhaus/wearhaus-backend/pkg/errors"
	"github.com/wearhaus/wearhaus-backend/pkg/logger"
)

const usersDDL = `
CREATE TABLE users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  first_name TEXT NOT NULL DEFAULT '',
  last_name TEXT NOT NULL DEFAULT '',
  phone_number TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  is_staff INTEGER NOT NULL DEFAULT 0,
  date_joined DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(usersDDL).Error)
	return conn
}

func newTestService(t *testing.T) (Service, *Repository) {
	t.Helper()
	repo := NewRepository(openTestDB(t))
	logg := logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
	return NewService(ServiceParams{Repo: repo, Logger: logg}), repo
}

func seedUser(t *testing.T, repo *Repository, email string) uuid.UUID {
	t.Helper()
	user, err := repo.Create(context.Background(), CreateUserDTO{
		Email:        email,
		PasswordHash: "x",
		FirstName:    "Anna",
		LastName:     "Schmidt",
	})
	require.NoError(t, err)
	return user.ID
}

func TestUpdateProfileField(t *testing.T) {
	ctx := context.Background()

	t.Run("stores names capitalized", func(t *testing.T) {
		svc, repo := newTestService(t)
		id := seedUser(t, repo, "anna@example.com")

		user, changed, err := svc.UpdateProfileField(ctx, id, "first_name", "mARIA")
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "Maria", user.FirstName)
	})

	t.Run("stores email lowercased", func(t *testing.T) {
		svc, repo := newTestService(t)
		id := seedUser(t, repo, "anna@example.com")

		user, changed, err := svc.UpdateProfileField(ctx, id, "email", "New.Mail@Example.COM")
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "new.mail@example.com", user.Email)
	})

	t.Run("rejects email owned by another user", func(t *testing.T) {
		svc, repo := newTestService(t)
		id := seedUser(t, repo, "anna@example.com")
		seedUser(t, repo, "taken@example.com")

		_, _, err := svc.UpdateProfileField(ctx, id, "email", "Taken@Example.com")
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
	})

	t.Run("duplicate email racing past the lookup is a conflict", func(t *testing.T) {
		_, repo := newTestService(t)
		id := seedUser(t, repo, "anna@example.com")
		seedUser(t, repo, "taken@example.com")

		// write straight into the unique index, the way a concurrent request
		// lands after the advisory lookup has already passed
		err := repo.UpdateField(ctx, id, "email", "taken@example.com")
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(translateUpdateError(err)).Code())
	})

	t.Run("keeping own email is not a conflict", func(t *testing.T) {
		svc, repo := newTestService(t)
		id := seedUser(t, repo, "anna@example.com")

		_, changed, err := svc.UpdateProfileField(ctx, id, "email", "ANNA@example.com")
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("invalid phone yields validation error", func(t *testing.T) {
		svc, repo := newTestService(t)
		id := seedUser(t, repo, "anna@example.com")

		_, _, err := svc.UpdateProfileField(ctx, id, "phone_number", "not-a-phone")
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
	})

	t.Run("unknown field is ignored", func(t *testing.T) {
		svc, repo := newTestService(t)
		id := seedUser(t, repo, "anna@example.com")

		user, changed, err := svc.UpdateProfileField(ctx, id, "is_staff", "true")
		require.NoError(t, err)
		assert.False(t, changed)
		assert.False(t, user.IsStaff)
	})

	t.Run("empty phone clears the stored value", func(t *testing.T) {
		svc, repo := newTestService(t)
		id := seedUser(t, repo, "anna@example.com")

		_, _, err := svc.UpdateProfileField(ctx, id, "phone_number", "+4915112345678")
		require.NoError(t, err)

		user, changed, err := svc.UpdateProfileField(ctx, id, "phone_number", "")
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, "", user.PhoneNumber)
	})
}

func TestProfileNotFound(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Profile(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.As(err).Code())
}
