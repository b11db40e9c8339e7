package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wearhaus/wearhaus-backend/pkg/db"
	"github.com/wearhaus/wearhaus-backend/pkg/db/models"
	pkgerrors "github.com/wearhaus/wearhaus-backend/pkg/errors"
	"github.com/wearhaus/wearhaus-backend/pkg/logger"
)

// Service implements profile reads and single-field profile updates.
type Service interface {
	Profile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfileField(ctx context.Context, userID uuid.UUID, field, value string) (*models.User, bool, error)
}

type service struct {
	repo *Repository
	logg *logger.Logger
}

// ServiceParams bundles the dependencies for NewService.
type ServiceParams struct {
	Repo   *Repository
	Logger *logger.Logger
}

func NewService(params ServiceParams) Service {
	return &service{repo: params.Repo, logg: params.Logger}
}

func (s *service) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading user")
	}
	return user, nil
}

// UpdateProfileField validates and persists a single profile column through
// the field dispatch table. Unknown fields are a no-op; the second return
// value reports whether a write happened.
func (s *service) UpdateProfileField(ctx context.Context, userID uuid.UUID, field, value string) (*models.User, bool, error) {
	apply, ok := profileFields[field]
	if !ok {
		user, err := s.Profile(ctx, userID)
		return user, false, err
	}

	normalized, err := apply(ctx, s.repo, userID, value)
	if err != nil {
		return nil, false, err
	}

	if err := s.repo.UpdateField(ctx, userID, field, normalized); err != nil {
		return nil, false, translateUpdateError(err)
	}

	s.logg.Info(s.logg.WithField(ctx, "field", field), "profile field updated")

	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	return user, true, nil
}

// translateUpdateError converts a unique-index hit into a conflict. The
// advisory duplicate lookup in the email validator cannot close the window
// against a concurrent write, so the constraint is the last line of defense.
func translateUpdateError(err error) error {
	if db.IsUniqueViolation(err, "users_email_key") {
		return pkgerrors.New(pkgerrors.CodeConflict, "email is already in use")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "updating profile field")
}
