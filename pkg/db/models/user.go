package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a shopper or staff account. Email is stored lowercased and
// names are stored capitalized; normalization happens in the service layer
// before the row is written.
type User struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	FirstName    string    `gorm:"column:first_name;not null;default:''"`
	LastName     string    `gorm:"column:last_name;not null;default:''"`
	PhoneNumber  string    `gorm:"column:phone_number;not null;default:''"`
	IsActive     bool      `gorm:"column:is_active;not null;default:true"`
	IsStaff      bool      `gorm:"column:is_staff;not null;default:false"`
	DateJoined   time.Time `gorm:"column:date_joined;autoCreateTime"`

	// Orders reference the user with ON DELETE RESTRICT; a user cannot be
	// removed while orders exist.
	Orders []Order `gorm:"foreignKey:UserID"`
}
