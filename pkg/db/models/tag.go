package models

import "github.com/google/uuid"

// Tag labels products for search; linked to products through the product_tags
// join table.
type Tag struct {
	ID   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name string    `gorm:"column:name;not null;uniqueIndex"`
}
