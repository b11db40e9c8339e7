package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wearhaus/wearhaus-backend/internal/users"
	pkgauth "github.com/wearhaus/wearhaus-backend/pkg/auth"
	"github.com/wearhaus/wearhaus-backend/pkg/auth/session"
	"github.com/wearhaus/wearhaus-backend/pkg/config"
	"github.com/wearhaus/wearhaus-backend/pkg/db"
	"github.com/wearhaus/wearhaus-backend/pkg/db/models"
	pkgerrors "github.com/wearhaus/wearhaus-backend/pkg/errors"
	"github.com/wearhaus/wearhaus-backend/pkg/logger"
	"github.com/wearhaus/wearhaus-backend/pkg/security"
)

// SessionWriter is the slice of the session manager the auth service needs.
type SessionWriter interface {
	Create(ctx context.Context, sessionID string, userID uuid.UUID) error
	Revoke(ctx context.Context, sessionID string) error
}

var _ SessionWriter = (*session.Manager)(nil)

// Service implements account registration and session lifecycle.
type Service interface {
	Register(ctx context.Context, dto RegisterDTO) (*SessionDTO, error)
	Login(ctx context.Context, dto LoginDTO) (*SessionDTO, error)
	Logout(ctx context.Context, sessionID string) error
}

type service struct {
	db       *db.Client
	repo     *users.Repository
	sessions SessionWriter
	jwt      config.JWTConfig
	password config.PasswordConfig
	logg     *logger.Logger
}

// ServiceParams bundles the dependencies for NewService.
type ServiceParams struct {
	DB       *db.Client
	Repo     *users.Repository
	Sessions SessionWriter
	JWT      config.JWTConfig
	Password config.PasswordConfig
	Logger   *logger.Logger
}

func NewService(params ServiceParams) Service {
	return &service{
		db:       params.DB,
		repo:     params.Repo,
		sessions: params.Sessions,
		jwt:      params.JWT,
		password: params.Password,
		logg:     params.Logger,
	}
}

// Register validates the signup form, creates the account and opens a session.
// All field problems are reported together so the caller can render them in
// one pass.
func (s *service) Register(ctx context.Context, dto RegisterDTO) (*SessionDTO, error) {
	var fields []pkgerrors.FieldError

	email, ferr := users.NormalizeEmail(dto.Email)
	if ferr != nil {
		fields = append(fields, *ferr)
	}
	fields = append(fields, ValidatePassword(dto.Password, dto.PasswordConfirm)...)

	firstName := ""
	if dto.FirstName != "" {
		name, nerr := users.NormalizeName("first_name", dto.FirstName)
		if nerr != nil {
			fields = append(fields, *nerr)
		} else {
			firstName = name
		}
	}
	lastName := ""
	if dto.LastName != "" {
		name, nerr := users.NormalizeName("last_name", dto.LastName)
		if nerr != nil {
			fields = append(fields, *nerr)
		} else {
			lastName = name
		}
	}

	if len(fields) > 0 {
		return nil, pkgerrors.Validation(fields...)
	}

	hash, err := security.HashPassword(dto.Password, s.password)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hashing password")
	}

	var created *models.User
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		user, err := s.repo.WithTx(tx).Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: hash,
			FirstName:    firstName,
			LastName:     lastName,
		})
		if err != nil {
			return err
		}
		created = user
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err, "users_email_key") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email is already registered")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating user")
	}

	s.logg.Info(s.logg.WithUserID(ctx, created.ID.String()), "user registered")

	return s.openSession(ctx, created)
}

// Login verifies credentials. Unknown emails and wrong passwords share one
// message so the response does not leak which accounts exist.
func (s *service) Login(ctx context.Context, dto LoginDTO) (*SessionDTO, error) {
	invalid := pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")

	user, err := s.repo.FindByEmail(ctx, dto.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}

	ok, err := security.VerifyPassword(dto.Password, user.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verifying password")
	}
	if !ok {
		return nil, invalid
	}

	if !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account is inactive")
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "user logged in")

	return s.openSession(ctx, user)
}

// Logout revokes the server-side session tied to the access token.
func (s *service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Revoke(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "revoking session")
	}
	return nil
}

func (s *service) openSession(ctx context.Context, user *models.User) (*SessionDTO, error) {
	sessionID := session.NewSessionID()

	token, err := pkgauth.MintAccessToken(s.jwt, time.Now(), pkgauth.AccessTokenPayload{
		UserID:  user.ID,
		IsStaff: user.IsStaff,
		JTI:     sessionID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "minting access token")
	}

	if err := s.sessions.Create(ctx, sessionID, user.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating session")
	}

	return &SessionDTO{Token: token, User: users.ToProfileDTO(user)}, nil
}
