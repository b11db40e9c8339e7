package auth

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wearhaus/wearhaus-backend/internal/users"
	pkgauth "github.com/wearhaus/wearhaus-backend/pkg/auth"
	"github.com/wearhaus/wearhaus-backend/pkg/config"
	"github.com/wearhaus/wearhaus-backend/pkg/db"
	pkgerrors "github.com/wearhaus/wearhaus-backend/pkg/errors"
	"github.com/wearhaus/wearhaus-backend/pkg/logger"
)

const usersDDL = `
CREATE TABLE users (
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  first_name TEXT NOT NULL DEFAULT '',
  last_name TEXT NOT NULL DEFAULT '',
  phone_number TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  is_staff INTEGER NOT NULL DEFAULT 0,
  date_joined DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
  CONSTRAINT users_email_key UNIQUE (email)
);`

type stubSessions struct {
	created map[string]uuid.UUID
	revoked []string
}

func newStubSessions() *stubSessions {
	return &stubSessions{created: map[string]uuid.UUID{}}
}

func (s *stubSessions) Create(_ context.Context, sessionID string, userID uuid.UUID) error {
	s.created[sessionID] = userID
	return nil
}

func (s *stubSessions) Revoke(_ context.Context, sessionID string) error {
	s.revoked = append(s.revoked, sessionID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "wearhaus-test",
		ExpirationMinutes: 15,
		SessionTTLMinutes: 60,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     8,
		ArgonKeyLen:      16,
	}
}

func newTestService(t *testing.T) (Service, *stubSessions) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(usersDDL).Error)

	sessions := newStubSessions()
	svc := NewService(ServiceParams{
		DB:       db.NewWithConn(conn),
		Repo:     users.NewRepository(conn),
		Sessions: sessions,
		JWT:      testJWTConfig(),
		Password: testPasswordConfig(),
		Logger:   logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	return svc, sessions
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("creates account and opens session", func(t *testing.T) {
		svc, sessions := newTestService(t)

		result, err := svc.Register(ctx, RegisterDTO{
			Email:           "Anna@Example.com",
			Password:        "Sommer2024",
			PasswordConfirm: "Sommer2024",
			FirstName:       "anna",
			LastName:        "schmidt",
		})
		require.NoError(t, err)
		assert.Equal(t, "anna@example.com", result.User.Email)
		assert.Equal(t, "Anna", result.User.FirstName)
		assert.Equal(t, "Schmidt", result.User.LastName)
		assert.NotEmpty(t, result.Token)

		claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.Token)
		require.NoError(t, err)
		assert.Equal(t, result.User.ID, claims.UserID)
		assert.False(t, claims.IsStaff)

		_, ok := sessions.created[claims.ID]
		assert.True(t, ok, "session should be keyed by the token JTI")
	})

	t.Run("aggregates all validation problems", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Register(ctx, RegisterDTO{
			Email:           "not-an-email",
			Password:        "short",
			PasswordConfirm: "different",
		})
		require.Error(t, err)

		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

		fields, ok := typed.Details().([]pkgerrors.FieldError)
		require.True(t, ok)
		assert.GreaterOrEqual(t, len(fields), 4)
		assert.Equal(t, "email", fields[0].Field)
	})

	t.Run("duplicate email with different casing conflicts", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.Register(ctx, RegisterDTO{
			Email:           "anna@example.com",
			Password:        "Sommer2024",
			PasswordConfirm: "Sommer2024",
		})
		require.NoError(t, err)

		_, err = svc.Register(ctx, RegisterDTO{
			Email:           "ANNA@EXAMPLE.COM",
			Password:        "Sommer2024",
			PasswordConfirm: "Sommer2024",
		})
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T, svc Service) *SessionDTO {
		t.Helper()
		result, err := svc.Register(ctx, RegisterDTO{
			Email:           "anna@example.com",
			Password:        "Sommer2024",
			PasswordConfirm: "Sommer2024",
		})
		require.NoError(t, err)
		return result
	}

	t.Run("succeeds with correct credentials", func(t *testing.T) {
		svc, sessions := newTestService(t)
		register(t, svc)

		result, err := svc.Login(ctx, LoginDTO{Email: "ANNA@example.com", Password: "Sommer2024"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Len(t, sessions.created, 2)
	})

	t.Run("wrong password and unknown email share one message", func(t *testing.T) {
		svc, _ := newTestService(t)
		register(t, svc)

		_, errWrongPass := svc.Login(ctx, LoginDTO{Email: "anna@example.com", Password: "Winter2024"})
		_, errUnknown := svc.Login(ctx, LoginDTO{Email: "nobody@example.com", Password: "Sommer2024"})

		require.Error(t, errWrongPass)
		require.Error(t, errUnknown)
		assert.Equal(t, errWrongPass.Error(), errUnknown.Error())
		assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(errWrongPass).Code())
	})

	t.Run("inactive account is rejected with a distinct message", func(t *testing.T) {
		svc, _ := newTestService(t)
		result := register(t, svc)

		conn := svcConn(t, svc)
		require.NoError(t, conn.Exec("UPDATE users SET is_active = 0 WHERE id = ?", result.User.ID).Error)

		_, err := svc.Login(ctx, LoginDTO{Email: "anna@example.com", Password: "Sommer2024"})
		require.Error(t, err)
		typed := pkgerrors.As(err)
		assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())
		assert.Equal(t, "account is inactive", typed.Message())
	})
}

func TestLogout(t *testing.T) {
	svc, sessions := newTestService(t)

	require.NoError(t, svc.Logout(context.Background(), "session-123"))
	assert.Equal(t, []string{"session-123"}, sessions.revoked)
}

// svcConn reaches into the service for direct row updates in tests.
func svcConn(t *testing.T, svc Service) *gorm.DB {
	t.Helper()
	impl, ok := svc.(*service)
	require.True(t, ok)
	return impl.db.DB()
}
