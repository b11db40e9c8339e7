package users

import (
	"github.com/google/uuid"

	"github.com/wearhaus/wearhaus-backend/pkg/db/models"
)

// CreateUserDTO carries the normalized values for a new account row.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	PhoneNumber  string
	IsStaff      bool
}

// ToModel converts the DTO into a persistable user.
func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		ID:           uuid.New(),
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		PhoneNumber:  d.PhoneNumber,
		IsActive:     true,
		IsStaff:      d.IsStaff,
	}
}

// ProfileDTO is the account view of a user.
type ProfileDTO struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	PhoneNumber string    `json:"phone_number"`
	IsStaff     bool      `json:"is_staff"`
	DateJoined  string    `json:"date_joined"`
}

// ToProfileDTO maps a user row onto its public shape.
func ToProfileDTO(user *models.User) ProfileDTO {
	return ProfileDTO{
		ID:          user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		PhoneNumber: user.PhoneNumber,
		IsStaff:     user.IsStaff,
		DateJoined:  user.DateJoined.Format("2006-01-02"),
	}
}
